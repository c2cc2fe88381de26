package hangdam

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sodam-app/sodam/internal/logger"
	"github.com/sodam-app/sodam/internal/models"
	"github.com/sodam-app/sodam/internal/storage"
	"github.com/sodam-app/sodam/internal/validation"
)

// Manager owns the Hangdam lifecycle: it keeps exactly one Hangdam active,
// grows it as happinesses are recorded and archives it once full.
//
// Mutations are serialized; reads go straight to the store.
type Manager struct {
	store storage.HangdamStore
	table LevelTable
	now   func() time.Time

	mu sync.Mutex
}

// Option customizes a Manager.
type Option func(*Manager)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a lifecycle manager over store using the given level table.
func NewManager(store storage.HangdamStore, table LevelTable, opts ...Option) (*Manager, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	m := &Manager{
		store: store,
		table: table,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Table returns the level table in use.
func (m *Manager) Table() LevelTable {
	return m.table
}

// Recorded describes the outcome of RecordHappiness.
type Recorded struct {
	Happiness  models.Happiness
	Hangdam    models.Hangdam
	EntryCount int
	LeveledUp  bool
	Archived   bool
}

// GetActiveHangdam returns the Hangdam that receives new happinesses,
// hatching a new one when none exists or the latest one is archived.
func (m *Manager) GetActiveHangdam() (models.Hangdam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hangdams, err := m.store.GetAllHangdams()
	if err != nil {
		return models.Hangdam{}, fmt.Errorf("failed to load hangdams: %w", err)
	}
	if n := len(hangdams); n > 0 && hangdams[n-1].IsActive() {
		return hangdams[n-1], nil
	}

	h := models.Hangdam{
		ID:        uuid.New().String(),
		Level:     0,
		StartDate: m.now(),
	}
	if err := m.store.AddHangdam(h); err != nil {
		return models.Hangdam{}, fmt.Errorf("failed to create hangdam: %w", err)
	}
	logger.Info("New hangdam hatched", "id", h.ID, "previous", len(hangdams))
	return h, nil
}

// RecordHappiness stores a happiness for the given Hangdam, recomputes its
// level and archives it when the entry fills it. The entry and the Hangdam
// update are committed together.
func (m *Manager) RecordHappiness(hangdamID, content string, imagePaths []string) (Recorded, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, err := m.get(hangdamID)
	if err != nil {
		return Recorded{}, err
	}
	if !h.IsActive() {
		return Recorded{}, fmt.Errorf("%w: %s", ErrCycleAlreadyArchived, hangdamID)
	}

	count, err := m.store.CountHappinesses(hangdamID)
	if err != nil {
		return Recorded{}, fmt.Errorf("failed to count happinesses: %w", err)
	}
	count++

	now := m.now()
	happiness := models.Happiness{
		ID:         uuid.New().String(),
		HangdamID:  hangdamID,
		Content:    content,
		ImagePaths: append([]string(nil), imagePaths...),
		CreatedAt:  now,
	}
	if err := validation.Struct(happiness); err != nil {
		return Recorded{}, err
	}

	previousLevel := h.Level
	if level := m.table.LevelFor(count); level > h.Level {
		h.Level = level
	}
	if m.table.IsFull(count) {
		h.EndDate = &now
	}

	if err := m.store.CommitHappiness(happiness, h, count); err != nil {
		logger.Error("Failed to commit happiness", "hangdam", hangdamID, "error", err)
		return Recorded{}, fmt.Errorf("%w: %w", ErrEntryPersistFailed, err)
	}

	rec := Recorded{
		Happiness:  happiness,
		Hangdam:    h,
		EntryCount: count,
		LeveledUp:  h.Level > previousLevel,
		Archived:   !h.IsActive(),
	}
	logger.Debug("Happiness recorded", "hangdam", hangdamID, "count", count, "level", h.Level)
	if rec.Archived {
		logger.Info("Hangdam archived", "id", hangdamID, "level", h.Level, "count", count)
	}
	return rec, nil
}

// RenameHangdam sets the name of any Hangdam, archived or not.
func (m *Manager) RenameHangdam(id, name string) (models.Hangdam, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, err := m.get(id)
	if err != nil {
		return models.Hangdam{}, err
	}
	if h.Name == name {
		return h, nil
	}

	h.Name = name
	if err := m.store.UpdateHangdam(h); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Hangdam{}, fmt.Errorf("%w: %s", ErrCycleNotFound, id)
		}
		return models.Hangdam{}, fmt.Errorf("failed to rename hangdam: %w", err)
	}
	return h, nil
}

// ListArchivedHangdams returns archived Hangdams, most recent first.
func (m *Manager) ListArchivedHangdams() ([]models.Hangdam, error) {
	hangdams, err := m.store.GetAllHangdams()
	if err != nil {
		return nil, fmt.Errorf("failed to load hangdams: %w", err)
	}

	archived := make([]models.Hangdam, 0, len(hangdams))
	for i := len(hangdams) - 1; i >= 0; i-- {
		if !hangdams[i].IsActive() {
			archived = append(archived, hangdams[i])
		}
	}
	return archived, nil
}

// GetHangdam resolves a Hangdam by id.
func (m *Manager) GetHangdam(id string) (models.Hangdam, error) {
	return m.get(id)
}

// ListHappinesses returns the happinesses of a Hangdam in the order they were written.
func (m *Manager) ListHappinesses(hangdamID string) ([]models.Happiness, error) {
	if _, err := m.get(hangdamID); err != nil {
		return nil, err
	}
	return m.store.GetHappinesses(hangdamID)
}

// EntryCount returns how many happinesses a Hangdam owns.
func (m *Manager) EntryCount(hangdamID string) (int, error) {
	if _, err := m.get(hangdamID); err != nil {
		return 0, err
	}
	return m.store.CountHappinesses(hangdamID)
}

func (m *Manager) get(id string) (models.Hangdam, error) {
	h, err := m.store.GetHangdam(id)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Hangdam{}, fmt.Errorf("%w: %s", ErrCycleNotFound, id)
	}
	if err != nil {
		return models.Hangdam{}, fmt.Errorf("failed to load hangdam %s: %w", id, err)
	}
	return h, nil
}
