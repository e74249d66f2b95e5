package main

import (
	"fmt"
	"os"

	"github.com/aria7-op/School-MIS-sub029/app/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log := logger.WithComponent("duesctl")
		log.Error().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
