package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/aria7-op/School-MIS-sub029/app/config"
	"github.com/aria7-op/School-MIS-sub029/app/database"
	"github.com/aria7-op/School-MIS-sub029/app/logger"
	"github.com/golang-migrate/migrate/v4"
)

const usage = "usage: migrate up | down [steps] | version | force <version>"

func main() {
	cfg := config.Load()
	if err := logger.Setup(cfg.LogConfig()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.WithComponent("migrate")

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot establish database connection")
	}
	defer db.Close()

	m, err := database.NewMigrator(db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create migrator")
	}

	if err := run(m, os.Args[1:]); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("Migration failed")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatal().Err(err).Msg("Failed to read schema version")
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Migration completed successfully")
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		return m.Up()
	case "down":
		if len(args) > 1 {
			steps, err := strconv.Atoi(args[1])
			if err != nil || steps < 1 {
				return fmt.Errorf("invalid step count %q", args[1])
			}
			return m.Steps(-steps)
		}
		return m.Down()
	case "version":
		return nil
	case "force":
		if len(args) < 2 {
			return errors.New(usage)
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[1])
		}
		return m.Force(v)
	}
	return fmt.Errorf("unknown command %q: %s", args[0], usage)
}
