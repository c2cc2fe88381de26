// Package reminder schedules the daily writing reminder and drives the
// reminder settings and first-run permission flows.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sodam-app/sodam/internal/constants"
	"github.com/sodam-app/sodam/internal/logger"
	"github.com/sodam-app/sodam/internal/validation"
)

const midnightSpec = "0 0 * * *"

// DailyScheduler is the part of Scheduler the settings flows need.
type DailyScheduler interface {
	ScheduleDaily(timeOfDay string) error
	CancelAll()
}

// Scheduler fires the daily reminder and the midnight reset on a cron.
type Scheduler struct {
	cron     *cron.Cron
	notifier Notifier
	timeout  time.Duration
	skip     func() bool

	mu       sync.Mutex
	daily    cron.EntryID
	hasDaily bool
	reset    cron.EntryID
	hasReset bool
}

type SchedulerOption func(*Scheduler)

// WithLocation evaluates schedules in loc instead of time.Local.
func WithLocation(loc *time.Location) SchedulerOption {
	return func(s *Scheduler) {
		s.cron = cron.New(cron.WithLocation(loc), cron.WithLogger(cronLogger{}))
	}
}

// WithSkip suppresses a due reminder when skip reports true, e.g. when
// today's happiness is already written.
func WithSkip(skip func() bool) SchedulerOption {
	return func(s *Scheduler) {
		s.skip = skip
	}
}

func NewScheduler(notifier Notifier, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		cron:     cron.New(cron.WithLogger(cronLogger{})),
		notifier: notifier,
		timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScheduleDaily replaces the daily reminder with one at timeOfDay (HH:MM).
func (s *Scheduler) ScheduleDaily(timeOfDay string) error {
	spec, err := dailySpec(timeOfDay)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasDaily {
		s.cron.Remove(s.daily)
		s.hasDaily = false
	}
	id, err := s.cron.AddFunc(spec, s.remind)
	if err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}
	s.daily, s.hasDaily = id, true
	logger.Info("Daily reminder scheduled", "time", timeOfDay)
	return nil
}

// CancelAll removes the daily reminder. The midnight reset stays.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasDaily {
		s.cron.Remove(s.daily)
		s.hasDaily = false
		logger.Info("Daily reminder cancelled")
	}
}

// ScheduleMidnightReset runs fn at the start of every day.
func (s *Scheduler) ScheduleMidnightReset(fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasReset {
		s.cron.Remove(s.reset)
	}
	id, err := s.cron.AddFunc(midnightSpec, fn)
	if err != nil {
		return fmt.Errorf("failed to schedule midnight reset: %w", err)
	}
	s.reset, s.hasReset = id, true
	return nil
}

// NextReminder returns when the daily reminder fires next after from.
func (s *Scheduler) NextReminder(from time.Time) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasDaily {
		return time.Time{}, false
	}
	entry := s.cron.Entry(s.daily)
	if !entry.Valid() {
		return time.Time{}, false
	}
	return entry.Schedule.Next(from), true
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) remind() {
	if s.skip != nil && s.skip() {
		logger.Debug("Reminder skipped")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.notifier.Notify(ctx, constants.ReminderTitle, constants.ReminderMessage); err != nil {
		logger.Warn("Failed to deliver reminder", "error", err)
		return
	}
	logger.Debug("Reminder delivered")
}

func dailySpec(timeOfDay string) (string, error) {
	if err := validation.TimeOfDay(timeOfDay); err != nil {
		return "", err
	}
	t, _ := time.Parse(constants.TimeFormat, timeOfDay)
	return fmt.Sprintf("%d %d * * *", t.Minute(), t.Hour()), nil
}

// cronLogger routes cron's own logging into the app log.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
