package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	app "github.com/okian/pitchlens/internal/app"
	"github.com/okian/pitchlens/internal/config"
	"github.com/okian/pitchlens/pkg/logger"
)

// cli holds state shared by every subcommand.
type cli struct {
	dbPath   string
	logLevel string
	asJSON   bool

	cfg *config.Config
	svc *app.Service
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "matchctl",
		Short:         "Football match analytics tool",
		Long:          "Seed an event store with matches and compute pass, lane, set-piece, xG and work-time analytics.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.start(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.svc != nil {
				c.svc.Stop()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.dbPath, "db", "", "path to the SQLite event store (overrides db_path)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (overrides log_level)")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "print JSON instead of tables")

	root.AddCommand(
		newSeedCmd(c),
		newListCmd(c),
		newReportCmd(c),
		newCompareCmd(c),
		newPlayersCmd(c),
		newWorkTimeCmd(c),
	)
	return root
}

// start loads configuration, applies flag overrides and starts the service.
func (c *cli) start(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if err := logger.InitTo(cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if c.dbPath != "" {
		cfg.DBPath = c.dbPath
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}
	c.cfg = cfg

	c.svc = app.New(app.WithConfig(cfg), app.WithLogger(logger.Get()))
	return c.svc.Start(ctx)
}

// output prints v as JSON when --json is set and otherwise calls table.
func (c *cli) output(w io.Writer, v any, table func()) error {
	if !c.asJSON {
		table()
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
