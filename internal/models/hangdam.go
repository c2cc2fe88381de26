package models

import (
	"time"

	"github.com/sodam-app/sodam/internal/constants"
)

// Hangdam is one lifespan of the virtual pet. It stays active until it has
// eaten its capacity of happinesses, then EndDate is set and it is archived.
type Hangdam struct {
	ID        string     `json:"id" validate:"required,uuid"`
	Name      string     `json:"name"`
	Level     int        `json:"level" validate:"gte=0"`
	StartDate time.Time  `json:"start_date" validate:"required"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// IsActive reports whether the Hangdam can still receive happinesses.
func (h Hangdam) IsActive() bool {
	return h.EndDate == nil
}

// DisplayName returns the user-assigned name or the placeholder.
func (h Hangdam) DisplayName() string {
	if h.Name == "" {
		return constants.DefaultHangdamName
	}
	return h.Name
}

// Happiness is a single diary entry owned by exactly one Hangdam
type Happiness struct {
	ID         string    `json:"id" validate:"required,uuid"`
	HangdamID  string    `json:"hangdam_id" validate:"required,uuid"`
	Content    string    `json:"content"`
	ImagePaths []string  `json:"image_paths" validate:"dive,required"`
	CreatedAt  time.Time `json:"created_at" validate:"required"`
}
