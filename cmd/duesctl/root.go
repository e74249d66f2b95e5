package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aria7-op/School-MIS-sub029/app/calendar"
	"github.com/aria7-op/School-MIS-sub029/app/config"
	"github.com/aria7-op/School-MIS-sub029/app/database"
	"github.com/aria7-op/School-MIS-sub029/app/logger"
	"github.com/aria7-op/School-MIS-sub029/app/services"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

// serviceFactory opens the fee service for a command. Tests replace it.
type serviceFactory func(cfg *config.Config) (*services.FeeService, io.Closer, error)

type cli struct {
	schoolID string
	cfg      *config.Config
	open     serviceFactory
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(openPostgres)
}

func newRootCmdWith(open serviceFactory) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:   "duesctl",
		Short: "Inspect student balances and dues, and reconcile payment statuses",
		Long: `duesctl runs the fee engine against the configured PostgreSQL database.

Configuration is read from .env and the environment (DATABASE_URL or DB_*,
ACADEMIC_MONTH_OFFSET, LOG_LEVEL, JWT_SECRET).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.cfg = config.Load()
			time.Local = c.cfg.Location()
			logCfg := c.cfg.LogConfig()
			logCfg.Output = "stderr"
			return logger.Setup(logCfg)
		},
	}
	root.PersistentFlags().StringVarP(&c.schoolID, "school", "s", "", "school id")

	root.AddCommand(
		c.balanceCmd(),
		c.expectedCmd(),
		c.duesCmd(),
		c.scanCmd(),
		c.reconcileCmd(),
		c.tokenCmd(),
	)
	return root
}

func (c *cli) requireSchool() error {
	if c.schoolID == "" {
		return fmt.Errorf("--school is required")
	}
	return nil
}

// withService opens the service, runs fn and closes the connection.
func (c *cli) withService(fn func(*services.FeeService) error) error {
	if err := c.requireSchool(); err != nil {
		return err
	}
	svc, closer, err := c.open(c.cfg)
	if err != nil {
		return err
	}
	defer closer.Close()
	return fn(svc)
}

func openPostgres(cfg *config.Config) (*services.FeeService, io.Closer, error) {
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cal, err := calendar.Solar(cfg.AcademicMonthOffset)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return services.NewFeeService(database.NewStore(db), services.WithCalendar(cal)), dbCloser{db}, nil
}

type dbCloser struct{ db *sql.DB }

func (d dbCloser) Close() error { return d.db.Close() }

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
