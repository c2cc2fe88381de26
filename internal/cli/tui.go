package cli

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sodam-app/sodam/internal/logger"
	"github.com/sodam-app/sodam/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := prepareLaunch(ctx); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	model, err := tui.NewModel(repo)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// prepareLaunch greets first-time users and checks the reminder setup on
// every launch.
func prepareLaunch(ctx *Context) error {
	sm := ctx.Settings()
	first, err := sm.IsFirstLaunch()
	if err != nil {
		return err
	}
	if first {
		ctx.println("Welcome to sodam! Each happiness you write feeds your hangdam.")
	}

	if _, err := checkReminderSetup(ctx); err != nil {
		// a dismissed prompt must not keep the diary from opening
		logger.Warn("Reminder setup failed", "error", err)
		if first {
			return sm.MarkLaunched()
		}
	}
	return nil
}
