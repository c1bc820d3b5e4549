// Package cli implements the daybook command surface: running the HTTP
// server, schema management, diagnostics, and a small reminder admin toolset.
package cli

import (
	"daybook/internal/config"
	"daybook/internal/storage"
)

// Context is shared by all commands.
type Context struct {
	Store  storage.Provider
	Config *config.Config

	loaded bool
}

// EnsureLoaded opens the store once for commands that read or write data.
// Init-style commands manage the store themselves.
func (c *Context) EnsureLoaded() error {
	if c.loaded {
		return nil
	}
	if err := c.Store.Load(); err != nil {
		return err
	}
	c.loaded = true
	return nil
}
