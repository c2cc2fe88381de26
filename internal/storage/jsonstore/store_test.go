package jsonstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sodam-app/sodam/internal/models"
	"github.com/sodam-app/sodam/internal/storage"
)

func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sodam.json")
	store := NewStore(path)
	require.NoError(t, store.Init())
	return store, path
}

func TestLoad_Uninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, store.Load())

	_, err := store.GetAllHangdams()
	assert.ErrorIs(t, err, errNotLoaded)
}

func TestPersistsAcrossReload(t *testing.T) {
	store, path := setupTestStore(t)

	h := models.Hangdam{ID: uuid.New().String(), StartDate: time.Now()}
	require.NoError(t, store.AddHangdam(h))
	entry := models.Happiness{
		ID:         uuid.New().String(),
		HangdamID:  h.ID,
		Content:    "first snow",
		ImagePaths: []string{"a.jpg", "b.jpg"},
		CreatedAt:  time.Now(),
	}
	h.Level = 1
	require.NoError(t, store.CommitHappiness(entry, h, 1))
	require.NoError(t, store.SetSetting("font_name", "MaruBuri"))

	reloaded := NewStore(path)
	require.NoError(t, reloaded.Load())

	got, err := reloaded.GetHangdam(h.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Level)

	entries, err := reloaded.GetHappinesses(h.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, entries[0].ImagePaths)

	font, ok, err := reloaded.GetSetting("font_name")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "MaruBuri", font)
}

func TestReloadSeesOtherWriters(t *testing.T) {
	store, path := setupTestStore(t)
	other := NewStore(path)
	require.NoError(t, other.Load())

	require.NoError(t, other.SetSetting("notification_time", "07:00"))
	_, ok, err := store.GetSetting("notification_time")
	require.NoError(t, err)
	assert.False(t, ok, "cached document is not refreshed implicitly")

	require.NoError(t, store.Reload())
	value, ok, err := store.GetSetting("notification_time")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "07:00", value)
}

func TestWritersOnOneFileKeepEachOthersCommits(t *testing.T) {
	cli, path := setupTestStore(t)
	daemon := NewStore(path)
	require.NoError(t, daemon.Load())

	h := models.Hangdam{ID: uuid.New().String(), StartDate: time.Now()}
	require.NoError(t, cli.AddHangdam(h))
	entry := models.Happiness{ID: uuid.New().String(), HangdamID: h.ID, Content: "sunset", CreatedAt: time.Now()}
	h.Level = 1
	require.NoError(t, cli.CommitHappiness(entry, h, 1))
	require.NoError(t, cli.SetSetting("last_written_date", "2025-05-05"))

	// the daemon still holds the document from before the commit
	require.NoError(t, daemon.RemoveSetting("last_written_date"))

	fresh := NewStore(path)
	require.NoError(t, fresh.Load())
	count, err := fresh.CountHappinesses(h.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	got, err := fresh.GetHangdam(h.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Level)
	_, ok, err := fresh.GetSetting("last_written_date")
	require.NoError(t, err)
	assert.False(t, ok)

	// the stale writer picked up the commit as part of its own write
	count, err = daemon.CountHappinesses(h.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHangdamOrderAndSingleActive(t *testing.T) {
	store, _ := setupTestStore(t)
	start := time.Now()

	first := models.Hangdam{ID: uuid.New().String(), StartDate: start}
	require.NoError(t, store.AddHangdam(first))
	assert.Error(t, store.AddHangdam(models.Hangdam{ID: uuid.New().String(), StartDate: start}))

	end := start.Add(time.Hour)
	first.EndDate = &end
	require.NoError(t, store.UpdateHangdam(first))

	second := models.Hangdam{ID: uuid.New().String(), StartDate: end}
	require.NoError(t, store.AddHangdam(second))

	all, err := store.GetAllHangdams()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)

	_, err = store.GetHangdam(uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCommitHappiness_RollsBackOnWriteFailure(t *testing.T) {
	store, path := setupTestStore(t)

	h := models.Hangdam{ID: uuid.New().String(), StartDate: time.Now()}
	require.NoError(t, store.AddHangdam(h))

	// replace the document with a directory so the next write cannot land
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.MkdirAll(filepath.Join(path, "blocker"), 0700))

	entry := models.Happiness{ID: uuid.New().String(), HangdamID: h.ID, CreatedAt: time.Now()}
	h.Level = 1
	require.Error(t, store.CommitHappiness(entry, h, 1))

	count, err := store.CountHappinesses(h.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	got, err := store.GetHangdam(h.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Level)
}

func TestCommitHappiness_UnknownHangdam(t *testing.T) {
	store, _ := setupTestStore(t)

	missing := models.Hangdam{ID: uuid.New().String(), StartDate: time.Now()}
	entry := models.Happiness{ID: uuid.New().String(), HangdamID: missing.ID, CreatedAt: time.Now()}

	err := store.CommitHappiness(entry, missing, 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSettings(t *testing.T) {
	store, _ := setupTestStore(t)

	require.NoError(t, store.SetSetting("content", "draft"))
	all, err := store.GetAllSettings()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"content": "draft"}, all)

	require.NoError(t, store.RemoveSetting("content"))
	_, ok, err := store.GetSetting("content")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCommitHappiness_RejectsStaleWriters(t *testing.T) {
	store, _ := setupTestStore(t)
	h := models.Hangdam{ID: uuid.New().String(), StartDate: time.Now()}
	require.NoError(t, store.AddHangdam(h))

	first := models.Happiness{ID: uuid.New().String(), HangdamID: h.ID, CreatedAt: time.Now()}
	end := time.Now()
	archived := h
	archived.EndDate = &end
	require.NoError(t, store.CommitHappiness(first, archived, 1))

	stale := models.Happiness{ID: uuid.New().String(), HangdamID: h.ID, CreatedAt: time.Now()}
	err := store.CommitHappiness(stale, h, 1)
	require.ErrorIs(t, err, storage.ErrConflict)

	count, err := store.CountHappinesses(h.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	got, err := store.GetHangdam(h.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EndDate)
	assert.True(t, got.EndDate.Equal(end))
}
