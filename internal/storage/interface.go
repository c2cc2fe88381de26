package storage

import (
	"errors"

	"github.com/sodam-app/sodam/internal/models"
)

// ErrNotFound is returned when a record does not resolve.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a conditional write lost to another writer.
var ErrConflict = errors.New("record changed by another writer")

// HangdamStore is the record store behind the Hangdam lifecycle.
type HangdamStore interface {
	AddHangdam(models.Hangdam) error
	GetHangdam(id string) (models.Hangdam, error)
	// GetAllHangdams returns every Hangdam in creation order.
	GetAllHangdams() ([]models.Hangdam, error)
	UpdateHangdam(models.Hangdam) error

	GetHappiness(id string) (models.Happiness, error)
	// GetHappinesses returns the entries of a Hangdam in creation order.
	GetHappinesses(hangdamID string) ([]models.Happiness, error)
	CountHappinesses(hangdamID string) (int, error)
	// CommitHappiness inserts the entry and writes its owning Hangdam
	// atomically: either both are persisted or neither is. entryCount is the
	// number of entries the Hangdam owns once the entry is stored; when the
	// stored Hangdam is archived or owns a different number of entries
	// nothing is written and ErrConflict is returned.
	CommitHappiness(h models.Happiness, owner models.Hangdam, entryCount int) error
}

// SettingsStore is a flat key-value store for app settings.
// GetSetting reports false when the key is absent.
type SettingsStore interface {
	GetSetting(key string) (string, bool, error)
	SetSetting(key, value string) error
	RemoveSetting(key string) error
	GetAllSettings() (map[string]string, error)
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	HangdamStore
	SettingsStore

	// Utils
	GetConfigPath() string
}
