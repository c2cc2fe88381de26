// Package repository is the single entry point the CLI and TUI use for
// Hangdams, happinesses and the day's written status.
package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sodam-app/sodam/internal/constants"
	"github.com/sodam-app/sodam/internal/hangdam"
	"github.com/sodam-app/sodam/internal/logger"
	"github.com/sodam-app/sodam/internal/models"
	"github.com/sodam-app/sodam/internal/settings"
)

// ErrEmptyName is returned when a Hangdam would be named with blank text.
var ErrEmptyName = errors.New("name cannot be empty")

type Repository struct {
	hangdams *hangdam.Manager
	settings *settings.Manager
	now      func() time.Time
}

func New(hangdams *hangdam.Manager, settings *settings.Manager) *Repository {
	return &Repository{
		hangdams: hangdams,
		settings: settings,
		now:      time.Now,
	}
}

// SetClock replaces time.Now for the written-status bookkeeping.
func (r *Repository) SetClock(now func() time.Time) {
	r.now = now
}

// Table returns the growth table of the underlying manager.
func (r *Repository) Table() hangdam.LevelTable {
	return r.hangdams.Table()
}

func (r *Repository) Settings() *settings.Manager {
	return r.settings
}

func (r *Repository) GetCurrentHangdam() (models.Hangdam, error) {
	return r.hangdams.GetActiveHangdam()
}

// GetSavedHangdams returns archived Hangdams, most recent first.
func (r *Repository) GetSavedHangdams() ([]models.Hangdam, error) {
	return r.hangdams.ListArchivedHangdams()
}

func (r *Repository) GetHangdam(id string) (models.Hangdam, error) {
	return r.hangdams.GetHangdam(id)
}

func (r *Repository) GetHappinesses(hangdamID string) ([]models.Happiness, error) {
	return r.hangdams.ListHappinesses(hangdamID)
}

func (r *Repository) EntryCount(hangdamID string) (int, error) {
	return r.hangdams.EntryCount(hangdamID)
}

// NameHangdam trims name and stores it; blank names are rejected.
func (r *Repository) NameHangdam(id, name string) (models.Hangdam, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Hangdam{}, ErrEmptyName
	}
	return r.hangdams.RenameHangdam(id, name)
}

// AddHappiness records a happiness against the current Hangdam. Once it is
// committed the day is marked as written and the draft is discarded.
func (r *Repository) AddHappiness(content string, imagePaths []string) (hangdam.Recorded, error) {
	current, err := r.hangdams.GetActiveHangdam()
	if err != nil {
		return hangdam.Recorded{}, err
	}
	rec, err := r.hangdams.RecordHappiness(current.ID, content, imagePaths)
	if err != nil {
		return hangdam.Recorded{}, err
	}

	// The entry is already stored; bookkeeping failures are logged only.
	if err := r.settings.MarkAsWrittenToday(r.now()); err != nil {
		logger.Warn("Failed to mark day as written", "error", err)
	}
	if err := r.settings.DeleteTemporaryPost(); err != nil {
		logger.Warn("Failed to clear draft", "error", err)
	}
	return rec, nil
}

// Status is the text of the Hangdam status card.
type Status struct {
	Level   string // "Lv.2"
	Name    string
	Period  string // "2025.01.21 ~" or "2025.01.21 ~ 2025.03.02"
	Entries int
	Max     int
}

func (s Status) Title() string {
	return s.Level + " " + s.Name
}

// Status builds the status card for h.
func (r *Repository) Status(h models.Hangdam) (Status, error) {
	count, err := r.hangdams.EntryCount(h.ID)
	if err != nil {
		return Status{}, err
	}
	return Status{
		Level:   fmt.Sprintf("Lv.%d", h.Level),
		Name:    h.DisplayName(),
		Period:  Period(h),
		Entries: count,
		Max:     r.hangdams.Table().Capacity,
	}, nil
}

// Period formats the life span of a Hangdam.
func Period(h models.Hangdam) string {
	start := h.StartDate.Local().Format(constants.DisplayDateFormat)
	if h.EndDate == nil {
		return start + " ~"
	}
	return start + " ~ " + h.EndDate.Local().Format(constants.DisplayDateFormat)
}
