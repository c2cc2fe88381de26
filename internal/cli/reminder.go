package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sodam-app/sodam/internal/constants"
	"github.com/sodam-app/sodam/internal/logger"
	"github.com/sodam-app/sodam/internal/notifier"
	"github.com/sodam-app/sodam/internal/reminder"
	"github.com/sodam-app/sodam/internal/settings"
)

type SetupCmd struct{}

func (c *SetupCmd) Run(ctx *Context) error {
	status, err := checkReminderSetup(ctx)
	if err != nil {
		return err
	}
	if status == reminder.PermissionAuthorized {
		tm, err := ctx.Settings().GetNotificationTime()
		if err != nil {
			return err
		}
		ctx.printf("Daily reminder at %s. Keep 'sodam remind' running to receive it.\n", tm)
	}
	return nil
}

// checkReminderSetup runs the reminder permission flow and marks the app as
// launched. It only prompts while the permission is undetermined.
func checkReminderSetup(ctx *Context) (reminder.PermissionStatus, error) {
	sm := ctx.Settings()
	auth := reminder.NewStoredAuthorizer(sm, ctx.confirm())
	setup := reminder.NewSetup(sm, daemonScheduler{}, auth, ctx.config().Reminder.DefaultTime, func(msg string) {
		ctx.println(msg)
	})

	status, err := setup.Run(context.Background())
	if err != nil {
		return status, err
	}
	return status, sm.MarkLaunched()
}

// deliveryFor picks the desktop notifier or a printer for dry runs.
func deliveryFor(ctx *Context, dryRun bool) reminder.Notifier {
	if dryRun {
		return reminder.PrintNotifier{W: ctx.out()}
	}
	return notifier.New()
}

type RemindCmd struct {
	DryRun bool          `help:"Print reminders to stdout instead of showing them."`
	Reload time.Duration `help:"How often to pick up changed reminder settings." default:"1m"`
}

func (c *RemindCmd) Run(ctx *Context) error {
	sm := ctx.Settings()

	sched := reminder.NewScheduler(deliveryFor(ctx, c.DryRun),
		reminder.WithLocation(ctx.now().Location()),
		reminder.WithSkip(func() bool {
			written, err := sm.HasAlreadyWrittenToday(ctx.now())
			if err != nil {
				logger.Warn("Failed to read written status", "error", err)
				return false
			}
			return written
		}),
	)

	if err := sched.ScheduleMidnightReset(func() {
		if err := sm.ResetWrittenStatus(ctx.now()); err != nil {
			logger.Warn("Failed to reset written status", "error", err)
		}
	}); err != nil {
		return err
	}

	w := newReminderWatcher(ctx, sched)
	if err := w.apply(); err != nil {
		return err
	}

	sched.Start()
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(c.Reload)
	defer ticker.Stop()

	for {
		select {
		case <-sigCtx.Done():
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			sched.Stop(stopCtx)
			ctx.println("Reminder daemon stopped.")
			return nil
		case <-ticker.C:
			if _, err := w.poll(); err != nil {
				logger.Warn("Failed to refresh reminder settings", "error", err)
			}
		}
	}
}

// reminderSettings is the part of the settings the daemon reacts to.
type reminderSettings struct {
	on   bool
	time string
}

func readReminderSettings(sm *settings.Manager) (reminderSettings, error) {
	on, err := sm.GetToggleState()
	if err != nil {
		return reminderSettings{}, err
	}
	tm, err := sm.GetNotificationTime()
	if err != nil {
		return reminderSettings{}, err
	}
	return reminderSettings{on: on, time: tm}, nil
}

// reloader is implemented by stores that cache data across processes.
type reloader interface {
	Reload() error
}

// reminderWatcher keeps the daemon schedule in line with settings written
// by other sodam processes.
type reminderWatcher struct {
	ctx        *Context
	sm         *settings.Manager
	sched      *reminder.Scheduler
	controller *reminder.Controller
	state      reminderSettings
}

func newReminderWatcher(ctx *Context, sched *reminder.Scheduler) *reminderWatcher {
	sm := ctx.Settings()
	return &reminderWatcher{
		ctx:        ctx,
		sm:         sm,
		sched:      sched,
		controller: reminder.NewController(sm, sched),
	}
}

// apply restores the saved reminder and reports it.
func (w *reminderWatcher) apply() error {
	state, err := readReminderSettings(w.sm)
	if err != nil {
		return err
	}
	if _, err := w.controller.Restore(); err != nil {
		return err
	}
	w.state = state
	w.report()
	return nil
}

// poll re-reads the settings and reapplies them when they changed.
func (w *reminderWatcher) poll() (bool, error) {
	if r, ok := w.ctx.Store.(reloader); ok {
		if err := r.Reload(); err != nil {
			return false, err
		}
	}
	next, err := readReminderSettings(w.sm)
	if err != nil {
		return false, err
	}
	if next == w.state {
		return false, nil
	}
	return true, w.apply()
}

func (w *reminderWatcher) report() {
	if !w.state.on {
		w.ctx.println("Reminders are off. Enable them with 'sodam settings --notifications'.")
		return
	}
	if next, ok := w.sched.NextReminder(w.ctx.now()); ok {
		w.ctx.printf("Next reminder: %s\n", next.Format(constants.DisplayDateFormat+" "+constants.TimeFormat))
	}
}

type NotifyCmd struct {
	DryRun bool `help:"Print the reminder to stdout instead of showing it."`
	Force  bool `help:"Remind even if today's happiness is already written."`
}

// Run sends a single reminder now, for use from system schedulers.
func (c *NotifyCmd) Run(ctx *Context) error {
	sm := ctx.Settings()

	on, err := sm.GetToggleState()
	if err != nil {
		return err
	}
	if !on && !c.Force {
		if c.DryRun {
			ctx.println("Reminders are disabled in settings.")
		}
		return nil
	}
	written, err := sm.HasAlreadyWrittenToday(ctx.now())
	if err != nil {
		return err
	}
	if written && !c.Force {
		if c.DryRun {
			ctx.println("Today's happiness is already written.")
		}
		return nil
	}

	return deliveryFor(ctx, c.DryRun).Notify(context.Background(), constants.ReminderTitle, constants.ReminderMessage)
}
