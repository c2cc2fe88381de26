package jsonstore

import (
	"fmt"

	"github.com/sodam-app/sodam/internal/models"
	"github.com/sodam-app/sodam/internal/storage"
)

func (s *Store) AddHangdam(h models.Hangdam) error {
	return s.mutate(func(doc *document) error {
		if _, exists := doc.Hangdams[h.ID]; exists {
			return fmt.Errorf("hangdam %s already exists", h.ID)
		}
		if h.EndDate == nil {
			for _, other := range doc.Hangdams {
				if other.EndDate == nil {
					return fmt.Errorf("hangdam %s is still active", other.ID)
				}
			}
		}
		doc.Hangdams[h.ID] = h
		doc.HangdamOrder = append(doc.HangdamOrder, h.ID)
		return nil
	})
}

func (s *Store) GetHangdam(id string) (models.Hangdam, error) {
	var h models.Hangdam
	err := s.read(func(doc *document) error {
		found, ok := doc.Hangdams[id]
		if !ok {
			return fmt.Errorf("hangdam %s: %w", id, storage.ErrNotFound)
		}
		h = found
		return nil
	})
	return h, err
}

func (s *Store) GetAllHangdams() ([]models.Hangdam, error) {
	var hangdams []models.Hangdam
	err := s.read(func(doc *document) error {
		hangdams = make([]models.Hangdam, 0, len(doc.HangdamOrder))
		for _, id := range doc.HangdamOrder {
			hangdams = append(hangdams, doc.Hangdams[id])
		}
		return nil
	})
	return hangdams, err
}

func (s *Store) UpdateHangdam(h models.Hangdam) error {
	return s.mutate(func(doc *document) error {
		return putHangdam(doc, h)
	})
}

func putHangdam(doc *document, h models.Hangdam) error {
	existing, ok := doc.Hangdams[h.ID]
	if !ok {
		return fmt.Errorf("hangdam %s: %w", h.ID, storage.ErrNotFound)
	}
	// start date is fixed at creation
	h.StartDate = existing.StartDate
	doc.Hangdams[h.ID] = h
	return nil
}
