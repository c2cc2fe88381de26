package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sodam-app/sodam/internal/config"
)

type InitCmd struct {
	Force bool `help:"Delete the existing database before initializing."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.printf("Deleted existing database at: %s\n", dbPath)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.printf("Initialized sodam storage at: %s\n", ctx.Store.GetConfigPath())

	if ctx.ConfigFile != "" {
		created, err := config.WriteDefault(ctx.ConfigFile)
		if err != nil {
			return err
		}
		if created {
			ctx.printf("Wrote default config to: %s\n", ctx.ConfigFile)
		}
	}
	return nil
}
