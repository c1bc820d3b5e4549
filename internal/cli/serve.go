package cli

import (
	"errors"
	"fmt"

	"daybook/internal/keyring"
	"daybook/internal/logger"
	"daybook/internal/server"
)

type ServeCmd struct {
	Addr string `short:"a" help:"Listen address." default:""`
}

func (cmd *ServeCmd) Run(ctx *Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	addr := cmd.Addr
	if addr == "" {
		addr = ctx.Config.Addr
	}

	pin, err := resolvePin(ctx)
	if err != nil {
		return err
	}
	if pin == "" {
		logger.Warn("no access PIN configured, API is open")
	}

	srv := server.New(ctx.Store, pin, ctx.Config.Debug)
	logger.Info("starting HTTP server", "addr", addr)
	fmt.Printf("daybook listening on %s\n", addr)
	return srv.Run(addr)
}

// resolvePin prefers the environment PIN, then the OS keyring. A missing
// keyring entry just means no PIN is set.
func resolvePin(ctx *Context) (string, error) {
	if ctx.Config.Pin != "" {
		return ctx.Config.Pin, nil
	}
	pin, err := keyring.GetPin()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) || errors.Is(err, keyring.ErrKeyringUnavailable) {
			return "", nil
		}
		return "", err
	}
	return pin, nil
}
