package cli

import (
	"strings"

	"github.com/sodam-app/sodam/internal/constants"
	"github.com/sodam-app/sodam/internal/logger"
	"github.com/sodam-app/sodam/internal/reminder"
)

// daemonScheduler stands in for the scheduler of a running 'sodam remind',
// which reloads reminder settings on its own.
type daemonScheduler struct{}

func (daemonScheduler) ScheduleDaily(timeOfDay string) error {
	logger.Debug("Reminder change left to the daemon", "time", timeOfDay)
	return nil
}

func (daemonScheduler) CancelAll() {
	logger.Debug("Reminder cancellation left to the daemon")
}

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Notifications *bool   `help:"Enable or disable the daily reminder."`
	Time          *string `help:"Reminder time of day (HH:MM)."`
	Font          *string `help:"Font name (${fonts})." placeholder:"FONT"`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	sm := ctx.Settings()
	controller := reminder.NewController(sm, daemonScheduler{})

	updated := false
	if c.Time != nil {
		if err := controller.SetTime(*c.Time); err != nil {
			return err
		}
		updated = true
	}
	if c.Notifications != nil {
		if err := controller.SetToggle(*c.Notifications); err != nil {
			return err
		}
		updated = true
	}
	if c.Font != nil {
		if err := sm.SetFont(*c.Font); err != nil {
			return err
		}
		updated = true
	}

	if c.List || !updated {
		s, err := sm.Snapshot()
		if err != nil {
			return err
		}
		if !c.List {
			ctx.println("No changes specified. Use --list to view settings or flags to update them.")
			return nil
		}
		ctx.println("Current Settings:")
		ctx.printf("  Reminder:          %s\n", yesNo(s.NotificationsEnabled))
		ctx.printf("  Reminder Time:     %s\n", s.NotificationTime)
		ctx.printf("  Permission:        %s\n", permissionLabel(s.PermissionRequested, s.PermissionGranted))
		ctx.printf("  Font:              %s\n", s.FontName)
		ctx.printf("  Last Written:      %s\n", orDash(s.LastWrittenDate))
		ctx.printf("  Available Fonts:   %s\n", strings.Join(constants.Fonts, ", "))
		return nil
	}

	ctx.println("Settings updated successfully.")
	return nil
}

func permissionLabel(requested, granted bool) string {
	switch {
	case !requested && !granted:
		return "not asked (run 'sodam setup')"
	case granted:
		return "granted"
	default:
		return "denied"
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
