package reminder

import (
	"github.com/sodam-app/sodam/internal/logger"
	"github.com/sodam-app/sodam/internal/settings"
)

// Controller applies reminder setting changes to the store and the scheduler.
type Controller struct {
	settings  *settings.Manager
	scheduler DailyScheduler
}

func NewController(settings *settings.Manager, scheduler DailyScheduler) *Controller {
	return &Controller{settings: settings, scheduler: scheduler}
}

// SetToggle turns the daily reminder on or off.
func (c *Controller) SetToggle(on bool) error {
	if err := c.settings.SetToggleState(on); err != nil {
		return err
	}
	if err := c.settings.SetUserSetToggle(true); err != nil {
		return err
	}
	if !on {
		c.scheduler.CancelAll()
		return nil
	}
	return c.scheduleSaved()
}

// SetTime saves a new reminder time and reschedules when reminders are on.
func (c *Controller) SetTime(timeOfDay string) error {
	if err := c.settings.SetNotificationTime(timeOfDay); err != nil {
		return err
	}
	on, err := c.settings.GetToggleState()
	if err != nil || !on {
		return err
	}
	return c.scheduler.ScheduleDaily(timeOfDay)
}

// Restore re-applies the stored reminder state, e.g. at daemon start.
func (c *Controller) Restore() (bool, error) {
	on, err := c.settings.GetToggleState()
	if err != nil {
		return false, err
	}
	if !on {
		c.scheduler.CancelAll()
		logger.Info("Reminders are off")
		return false, nil
	}
	return true, c.scheduleSaved()
}

func (c *Controller) scheduleSaved() error {
	tm, err := c.settings.GetNotificationTime()
	if err != nil {
		return err
	}
	return c.scheduler.ScheduleDaily(tm)
}
