package cli

import (
	"encoding/json"
	"fmt"
)

type DebugCmd struct {
	DBPath        DebugDBPathCmd        `cmd:"" help:"Show database path."`
	DumpHangdam   DebugDumpHangdamCmd   `cmd:"" help:"Dump a hangdam and its happinesses as JSON."`
	DumpHappiness DebugDumpHappinessCmd `cmd:"" help:"Dump a single happiness as JSON."`
	DumpSettings  DebugDumpSettingsCmd  `cmd:"" help:"Dump all raw settings as JSON."`
}

func (c *Context) printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	return ctx.printJSON(map[string]string{
		"path":   ctx.Store.GetConfigPath(),
		"config": ctx.ConfigFile,
	})
}

type DebugDumpHangdamCmd struct {
	ID string `arg:"" optional:"" help:"Hangdam id (defaults to the current one)."`
}

func (cmd *DebugDumpHangdamCmd) Run(ctx *Context) error {
	repo, err := ctx.Repository()
	if err != nil {
		return err
	}

	h, err := repo.GetCurrentHangdam()
	if err != nil {
		return err
	}
	if cmd.ID != "" {
		if h, err = repo.GetHangdam(cmd.ID); err != nil {
			return err
		}
	}
	entries, err := repo.GetHappinesses(h.ID)
	if err != nil {
		return err
	}

	return ctx.printJSON(map[string]any{
		"hangdam":     h,
		"happinesses": entries,
	})
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *Context) error {
	all, err := ctx.Store.GetAllSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return ctx.printJSON(all)
}

type DebugDumpHappinessCmd struct {
	ID string `arg:"" help:"Happiness id."`
}

func (cmd *DebugDumpHappinessCmd) Run(ctx *Context) error {
	h, err := ctx.Store.GetHappiness(cmd.ID)
	if err != nil {
		return fmt.Errorf("failed to get happiness: %w", err)
	}
	return ctx.printJSON(h)
}
