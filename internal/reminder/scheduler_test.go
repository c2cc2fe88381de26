package reminder

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sodam-app/sodam/internal/constants"
)

type recordingNotifier struct {
	mu     sync.Mutex
	titles []string
	texts  []string
	err    error
}

func (r *recordingNotifier) Notify(_ context.Context, title, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles = append(r.titles, title)
	r.texts = append(r.texts, text)
	return r.err
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.texts)
}

func TestScheduleDaily(t *testing.T) {
	s := NewScheduler(&recordingNotifier{}, WithLocation(time.UTC))
	from := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)

	_, ok := s.NextReminder(from)
	assert.False(t, ok)

	require.NoError(t, s.ScheduleDaily("21:00"))
	next, ok := s.NextReminder(from)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 2, 10, 21, 0, 0, 0, time.UTC), next)

	// rescheduling replaces the job
	require.NoError(t, s.ScheduleDaily("07:15"))
	next, ok = s.NextReminder(from)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 2, 11, 7, 15, 0, 0, time.UTC), next)
	assert.Len(t, s.cron.Entries(), 1)

	s.CancelAll()
	_, ok = s.NextReminder(from)
	assert.False(t, ok)
	assert.Empty(t, s.cron.Entries())
}

func TestScheduleDaily_InvalidTime(t *testing.T) {
	s := NewScheduler(&recordingNotifier{})
	assert.Error(t, s.ScheduleDaily("9pm"))
	assert.Error(t, s.ScheduleDaily("24:00"))
}

func TestScheduleMidnightReset(t *testing.T) {
	s := NewScheduler(&recordingNotifier{}, WithLocation(time.UTC))
	calls := 0
	require.NoError(t, s.ScheduleMidnightReset(func() { calls++ }))
	require.NoError(t, s.ScheduleMidnightReset(func() { calls++ }))
	require.NoError(t, s.ScheduleDaily("21:00"))

	s.CancelAll()
	entries := s.cron.Entries()
	require.Len(t, entries, 1, "cancelling reminders keeps the midnight reset")

	from := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 2, 11, 0, 0, 0, 0, time.UTC), entries[0].Schedule.Next(from))
	entries[0].Job.Run()
	assert.Equal(t, 1, calls)
}

func TestReminderJobNotifies(t *testing.T) {
	n := &recordingNotifier{}
	s := NewScheduler(n)
	require.NoError(t, s.ScheduleDaily("21:00"))

	s.cron.Entry(s.daily).Job.Run()
	require.Equal(t, 1, n.count())
	assert.Equal(t, constants.ReminderTitle, n.titles[0])
	assert.Equal(t, constants.ReminderMessage, n.texts[0])

	// delivery failures are logged, not fatal
	n.err = errors.New("tray gone")
	s.cron.Entry(s.daily).Job.Run()
	assert.Equal(t, 2, n.count())
}

func TestReminderSkip(t *testing.T) {
	n := &recordingNotifier{}
	written := true
	s := NewScheduler(n, WithSkip(func() bool { return written }))
	require.NoError(t, s.ScheduleDaily("21:00"))

	s.cron.Entry(s.daily).Job.Run()
	assert.Zero(t, n.count())

	written = false
	s.cron.Entry(s.daily).Job.Run()
	assert.Equal(t, 1, n.count())
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(&recordingNotifier{})
	require.NoError(t, s.ScheduleDaily("21:00"))
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
	assert.NoError(t, ctx.Err())
}

func TestPrintNotifier(t *testing.T) {
	var buf bytes.Buffer
	p := PrintNotifier{W: &buf, Now: func() time.Time { return time.Date(2025, 1, 1, 21, 0, 0, 0, time.UTC) }}

	require.NoError(t, p.Notify(context.Background(), "Sodam", "write today"))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[21:00]"))
	assert.Contains(t, out, "write today")
}
