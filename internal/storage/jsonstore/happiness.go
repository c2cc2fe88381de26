package jsonstore

import (
	"fmt"

	"github.com/sodam-app/sodam/internal/models"
	"github.com/sodam-app/sodam/internal/storage"
)

func (s *Store) GetHappiness(id string) (models.Happiness, error) {
	var h models.Happiness
	err := s.read(func(doc *document) error {
		found, ok := doc.Happinesses[id]
		if !ok {
			return fmt.Errorf("happiness %s: %w", id, storage.ErrNotFound)
		}
		h = found
		return nil
	})
	return h, err
}

func (s *Store) GetHappinesses(hangdamID string) ([]models.Happiness, error) {
	var happinesses []models.Happiness
	err := s.read(func(doc *document) error {
		for _, id := range doc.HappinessOrder {
			if h := doc.Happinesses[id]; h.HangdamID == hangdamID {
				happinesses = append(happinesses, h)
			}
		}
		return nil
	})
	return happinesses, err
}

func (s *Store) CountHappinesses(hangdamID string) (int, error) {
	count := 0
	err := s.read(func(doc *document) error {
		count = doc.countHappinesses(hangdamID)
		return nil
	})
	return count, err
}

func (d *document) countHappinesses(hangdamID string) int {
	count := 0
	for _, h := range d.Happinesses {
		if h.HangdamID == hangdamID {
			count++
		}
	}
	return count
}

func (s *Store) CommitHappiness(happiness models.Happiness, hangdam models.Hangdam, entryCount int) error {
	return s.mutate(func(doc *document) error {
		if _, ok := doc.Hangdams[happiness.HangdamID]; !ok {
			return fmt.Errorf("hangdam %s: %w", happiness.HangdamID, storage.ErrNotFound)
		}
		stored, ok := doc.Hangdams[hangdam.ID]
		if !ok {
			return fmt.Errorf("hangdam %s: %w", hangdam.ID, storage.ErrNotFound)
		}
		if stored.EndDate != nil {
			return fmt.Errorf("hangdam %s is archived: %w", hangdam.ID, storage.ErrConflict)
		}
		if count := doc.countHappinesses(happiness.HangdamID); count+1 != entryCount {
			return fmt.Errorf("hangdam %s holds %d happinesses, expected %d: %w", happiness.HangdamID, count, entryCount-1, storage.ErrConflict)
		}
		if _, exists := doc.Happinesses[happiness.ID]; exists {
			return fmt.Errorf("happiness %s already exists", happiness.ID)
		}
		happiness.ImagePaths = append([]string(nil), happiness.ImagePaths...)
		doc.Happinesses[happiness.ID] = happiness
		doc.HappinessOrder = append(doc.HappinessOrder, happiness.ID)
		return putHangdam(doc, hangdam)
	})
}
