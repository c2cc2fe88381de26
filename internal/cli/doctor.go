package cli

import (
	"fmt"
	"time"

	"github.com/sodam-app/sodam/internal/backup"
	"github.com/sodam-app/sodam/internal/storage/sqlite"
	"github.com/sodam-app/sodam/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(ctx *Context) error
	warning bool
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	checks := []check{
		{name: "Database reachable", run: checkDBReachable},
		{name: "Schema version", run: checkSchemaVersion},
		{name: "Backups present", run: checkBackupsPresent, warning: true},
		{name: "Hangdam data", run: checkHangdams},
		{name: "Settings", run: checkSettings},
		{name: "Clock/timezone", run: checkClock},
	}

	hasError := false
	for _, c := range checks {
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.printf("✓ %s: OK\n", c.name)
		case c.warning:
			ctx.printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			hasError = true
		}
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if s, ok := ctx.Store.(*sqlite.Store); ok {
		var result int
		if err := s.GetDB().QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	s, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// JSON store has no schema
		return nil
	}
	current, latest, err := s.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'sodam backup create'")
	}
	return nil
}

func checkHangdams(ctx *Context) error {
	hangdams, err := ctx.Store.GetAllHangdams()
	if err != nil {
		return fmt.Errorf("failed to get hangdams: %w", err)
	}

	active := 0
	for _, h := range hangdams {
		if err := validation.Struct(h); err != nil {
			return fmt.Errorf("hangdam %s: %w", h.ID, err)
		}
		if h.IsActive() {
			active++
		}
		if h.EndDate != nil && h.EndDate.Before(h.StartDate) {
			return fmt.Errorf("hangdam %s ends before it starts", h.ID)
		}
	}
	if active > 1 {
		return fmt.Errorf("%d hangdams are active at once", active)
	}
	return nil
}

func checkSettings(ctx *Context) error {
	s, err := ctx.Settings().Snapshot()
	if err != nil {
		return err
	}
	if err := validation.TimeOfDay(s.NotificationTime); err != nil {
		return err
	}
	return validation.FontName(s.FontName)
}

func checkClock(ctx *Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if name, offset := now.Zone(); offset == 0 && name == "UTC" {
		ctx.println("   Note: timezone is UTC, days roll over at UTC midnight")
	}
	return nil
}
