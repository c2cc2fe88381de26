package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sodam-app/sodam/internal/hangdam"
	"github.com/sodam-app/sodam/internal/models"
	"github.com/sodam-app/sodam/internal/settings"
	"github.com/sodam-app/sodam/internal/storage/sqlite"
)

func setupRepository(t *testing.T, table hangdam.LevelTable) *Repository {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "sodam.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	hm, err := hangdam.NewManager(store, table)
	require.NoError(t, err)
	return New(hm, settings.NewManager(store))
}

func TestAddHappiness(t *testing.T) {
	repo := setupRepository(t, hangdam.DefaultLevelTable())
	today := time.Date(2025, 5, 5, 20, 0, 0, 0, time.Local)
	repo.SetClock(func() time.Time { return today })

	require.NoError(t, repo.Settings().SaveContent("half written"))
	require.NoError(t, repo.Settings().SaveImagePaths([]string{"draft.png"}))

	rec, err := repo.AddHappiness("picnic", []string{"park.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "picnic", rec.Happiness.Content)
	assert.Equal(t, 1, rec.Hangdam.Level)
	assert.False(t, rec.Archived)

	written, err := repo.Settings().HasAlreadyWrittenToday(today)
	require.NoError(t, err)
	assert.True(t, written)

	draft, err := repo.Settings().GetContent()
	require.NoError(t, err)
	assert.Empty(t, draft)
	images, err := repo.Settings().GetImagePaths()
	require.NoError(t, err)
	assert.Empty(t, images)

	current, err := repo.GetCurrentHangdam()
	require.NoError(t, err)
	assert.Equal(t, rec.Hangdam.ID, current.ID)
	list, err := repo.GetHappinesses(current.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"park.jpg"}, list[0].ImagePaths)
}

func TestAddHappiness_ArchivesAtCapacity(t *testing.T) {
	table := hangdam.LevelTable{
		Thresholds: []hangdam.Threshold{{Count: 1, Level: 1}, {Count: 2, Level: 2}},
		Capacity:   2,
	}
	repo := setupRepository(t, table)

	first, err := repo.AddHappiness("one", nil)
	require.NoError(t, err)
	second, err := repo.AddHappiness("two", nil)
	require.NoError(t, err)
	assert.True(t, second.Archived)
	assert.Equal(t, first.Hangdam.ID, second.Hangdam.ID)

	saved, err := repo.GetSavedHangdams()
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, first.Hangdam.ID, saved[0].ID)

	third, err := repo.AddHappiness("three", nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.Hangdam.ID, third.Hangdam.ID)
	assert.Equal(t, 1, third.EntryCount)
}

func TestNameHangdam(t *testing.T) {
	repo := setupRepository(t, hangdam.DefaultLevelTable())

	current, err := repo.GetCurrentHangdam()
	require.NoError(t, err)
	named, err := repo.NameHangdam(current.ID, "콩이")
	require.NoError(t, err)
	assert.Equal(t, "콩이", named.DisplayName())

	_, err = repo.NameHangdam("00000000-0000-0000-0000-000000000000", "x")
	assert.ErrorIs(t, err, hangdam.ErrCycleNotFound)

	trimmed, err := repo.NameHangdam(current.ID, "  두부 ")
	require.NoError(t, err)
	assert.Equal(t, "두부", trimmed.Name)

	_, err = repo.NameHangdam(current.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyName)
	kept, err := repo.GetHangdam(current.ID)
	require.NoError(t, err)
	assert.Equal(t, "두부", kept.Name, "a blank name leaves the old one")
}

func TestStatus(t *testing.T) {
	repo := setupRepository(t, hangdam.DefaultLevelTable())

	_, err := repo.AddHappiness("first", nil)
	require.NoError(t, err)
	current, err := repo.GetCurrentHangdam()
	require.NoError(t, err)

	status, err := repo.Status(current)
	require.NoError(t, err)
	assert.Equal(t, "Lv.1 행담이", status.Title())
	assert.Equal(t, 1, status.Entries)
	assert.Equal(t, 30, status.Max)
	assert.Regexp(t, `^\d{4}\.\d{2}\.\d{2} ~$`, status.Period)
}

func TestPeriod(t *testing.T) {
	start := time.Date(2025, 1, 21, 12, 0, 0, 0, time.Local)
	end := time.Date(2025, 3, 2, 12, 0, 0, 0, time.Local)

	assert.Equal(t, "2025.01.21 ~", Period(models.Hangdam{StartDate: start}))
	assert.Equal(t, "2025.01.21 ~ 2025.03.02", Period(models.Hangdam{StartDate: start, EndDate: &end}))
}
