package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sodam-app/sodam/internal/backup"
	"github.com/sodam-app/sodam/internal/config"
	"github.com/sodam-app/sodam/internal/hangdam"
	"github.com/sodam-app/sodam/internal/logger"
	"github.com/sodam-app/sodam/internal/reminder"
	"github.com/sodam-app/sodam/internal/repository"
	"github.com/sodam-app/sodam/internal/settings"
	"github.com/sodam-app/sodam/internal/storage"
)

type Context struct {
	Store      storage.Provider
	Config     *config.Config
	ConfigFile string

	// Out receives command output; stdout when nil.
	Out io.Writer
	// Now replaces time.Now in tests.
	Now func() time.Time
	// Confirm asks for reminder permission; a huh prompt when nil.
	Confirm func(context.Context) (bool, error)

	repo *repository.Repository
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) confirm() func(context.Context) (bool, error) {
	if c.Confirm == nil {
		return reminder.ConfirmPrompt
	}
	return c.Confirm
}

func (c *Context) config() *config.Config {
	if c.Config == nil {
		c.Config = config.Default()
	}
	return c.Config
}

// Settings returns typed access to the settings of the loaded store.
func (c *Context) Settings() *settings.Manager {
	return settings.NewManager(c.Store)
}

// Repository wires the Hangdam lifecycle over the loaded store.
func (c *Context) Repository() (*repository.Repository, error) {
	if c.repo != nil {
		return c.repo, nil
	}
	opts := []hangdam.Option{}
	if c.Now != nil {
		opts = append(opts, hangdam.WithClock(c.Now))
	}
	manager, err := hangdam.NewManager(c.Store, c.config().Growth, opts...)
	if err != nil {
		return nil, err
	}
	c.repo = repository.New(manager, c.Settings())
	if c.Now != nil {
		c.repo.SetClock(c.Now)
	}
	return c.repo, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// splitPaths accepts repeated flags as well as comma separated lists.
func splitPaths(values []string) []string {
	var paths []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
	}
	return paths
}

func yesNo(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
