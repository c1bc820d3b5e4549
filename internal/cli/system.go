package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-ps"

	"daybook/internal/constants"
	"daybook/internal/keyring"
)

type InitCmd struct{}

func (cmd *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("initialized storage at %s\n", ctx.Store.GetConfigPath())
	return nil
}

type MigrateCmd struct{}

func (cmd *MigrateCmd) Run(ctx *Context) error {
	// Init applies any pending migrations on an existing database.
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Println("database schema is up to date")
	return nil
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	failed := false

	// Storage reachability
	if err := ctx.EnsureLoaded(); err != nil {
		fmt.Printf("✗ storage: %v\n", err)
		failed = true
	} else if _, err := ctx.Store.GetSettings(); err != nil {
		fmt.Printf("✗ storage: cannot read settings: %v\n", err)
		failed = true
	} else {
		fmt.Printf("✓ storage reachable (%s)\n", ctx.Store.GetConfigPath())
	}

	// Duplicate server process
	procs, err := ps.Processes()
	if err != nil {
		fmt.Printf("? process check unavailable: %v\n", err)
	} else {
		running := 0
		for _, p := range procs {
			if p.Pid() != os.Getpid() && strings.Contains(p.Executable(), constants.AppName) {
				running++
			}
		}
		if running > 0 {
			fmt.Printf("! %d other %s process(es) running\n", running, constants.AppName)
		} else {
			fmt.Println("✓ no other daybook process running")
		}
	}

	// PIN configuration
	switch _, err := keyring.GetPin(); {
	case err == nil:
		fmt.Println("✓ access PIN stored in OS keyring")
	case errors.Is(err, keyring.ErrNotFound):
		if ctx.Config.Pin != "" {
			fmt.Println("✓ access PIN set via environment")
		} else {
			fmt.Println("! no access PIN configured, API will be open")
		}
	default:
		fmt.Printf("? keyring unavailable: %v\n", err)
	}

	if failed {
		return errors.New("doctor found problems")
	}
	return nil
}
