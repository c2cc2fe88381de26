package reminder

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sodam-app/sodam/internal/constants"
	"github.com/sodam-app/sodam/internal/settings"
	"github.com/sodam-app/sodam/internal/storage/jsonstore"
)

type fakeScheduler struct {
	scheduled []string
	cancelled int
}

func (f *fakeScheduler) ScheduleDaily(timeOfDay string) error {
	f.scheduled = append(f.scheduled, timeOfDay)
	return nil
}

func (f *fakeScheduler) CancelAll() {
	f.cancelled++
}

func setupSettings(t *testing.T) *settings.Manager {
	t.Helper()
	store := jsonstore.NewStore(filepath.Join(t.TempDir(), "sodam.json"))
	require.NoError(t, store.Init())
	return settings.NewManager(store)
}

func TestController_SetToggle(t *testing.T) {
	sm := setupSettings(t)
	sched := &fakeScheduler{}
	c := NewController(sm, sched)

	require.NoError(t, c.SetToggle(true))
	assert.Equal(t, []string{constants.DefaultNotificationTime}, sched.scheduled)
	userSet, err := sm.HasUserSetToggle()
	require.NoError(t, err)
	assert.True(t, userSet)

	require.NoError(t, c.SetToggle(false))
	assert.Equal(t, 1, sched.cancelled)
	on, err := sm.GetToggleState()
	require.NoError(t, err)
	assert.False(t, on)
}

func TestController_SetTime(t *testing.T) {
	sm := setupSettings(t)
	sched := &fakeScheduler{}
	c := NewController(sm, sched)

	// saved but not scheduled while reminders are off
	require.NoError(t, c.SetTime("08:30"))
	assert.Empty(t, sched.scheduled)
	tm, err := sm.GetNotificationTime()
	require.NoError(t, err)
	assert.Equal(t, "08:30", tm)

	require.NoError(t, c.SetToggle(true))
	require.NoError(t, c.SetTime("22:10"))
	assert.Equal(t, []string{"08:30", "22:10"}, sched.scheduled)

	assert.Error(t, c.SetTime("late"))
}

func TestController_Restore(t *testing.T) {
	sm := setupSettings(t)
	sched := &fakeScheduler{}
	c := NewController(sm, sched)

	on, err := c.Restore()
	require.NoError(t, err)
	assert.False(t, on)
	assert.Empty(t, sched.scheduled)

	require.NoError(t, sm.SetToggleState(true))
	require.NoError(t, sm.SetNotificationTime("06:00"))
	on, err = c.Restore()
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, []string{"06:00"}, sched.scheduled)
}

func TestStoredAuthorizer(t *testing.T) {
	sm := setupSettings(t)
	prompts := 0
	auth := NewStoredAuthorizer(sm, func(context.Context) (bool, error) {
		prompts++
		return true, nil
	})

	status, err := auth.Status()
	require.NoError(t, err)
	assert.Equal(t, PermissionNotDetermined, status)

	for i := 0; i < 3; i++ {
		granted, err := auth.Request(context.Background())
		require.NoError(t, err)
		assert.True(t, granted)
	}
	assert.Equal(t, 1, prompts, "request completes once")

	require.NoError(t, sm.SetPermissionRequested(true))
	require.NoError(t, sm.SetPermissionGranted(false))
	status, err = auth.Status()
	require.NoError(t, err)
	assert.Equal(t, PermissionDenied, status)
}
