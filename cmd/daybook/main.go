package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"daybook/internal/cli"
	"daybook/internal/config"
	"daybook/internal/constants"
	"daybook/internal/logger"
	"daybook/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"SQLite file path or postgres:// DSN. Overrides DAYBOOK_DB."`
	Debug   bool   `help:"Verbose logging to stderr. Overrides DAYBOOK_DEBUG."`

	Serve    cli.ServeCmd   `cmd:"" help:"Run the HTTP API server." default:"1"`
	Init     cli.InitCmd    `cmd:"" help:"Initialize daybook storage."`
	Migrate  cli.MigrateCmd `cmd:"" help:"Apply pending schema migrations."`
	Doctor   cli.DoctorCmd  `cmd:"" help:"Check storage, PIN, and process health."`
	Reminder struct {
		Add  cli.ReminderAddCmd  `cmd:"" help:"Add a reminder interactively."`
		List cli.ReminderListCmd `cmd:"" help:"List reminders."`
		Next cli.ReminderNextCmd `cmd:"" help:"Show the next occurrence of a reminder."`
	} `cmd:"" help:"Manage reminders."`
	Pin struct {
		Set   cli.PinSetCmd   `cmd:"" help:"Set the API access PIN."`
		Clear cli.PinClearCmd `cmd:"" help:"Remove the API access PIN."`
	} `cmd:"" help:"Manage the API access PIN."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal planner backend: tasks, reminders, meetings, journals, and kcal tracking"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if CLI.DB != "" {
		cfg.Database = CLI.DB
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, LogDir: cfg.LogDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Store:  storage.New(cfg.Database),
		Config: cfg,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
