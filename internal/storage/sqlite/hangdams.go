package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sodam-app/sodam/internal/models"
	"github.com/sodam-app/sodam/internal/storage"
)

const hangdamColumns = "id, name, level, start_date, end_date"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHangdam(row rowScanner) (models.Hangdam, error) {
	var h models.Hangdam
	var startDate string
	var endDate sql.NullString

	if err := row.Scan(&h.ID, &h.Name, &h.Level, &startDate, &endDate); err != nil {
		return models.Hangdam{}, err
	}

	var err error
	h.StartDate, err = time.Parse(time.RFC3339Nano, startDate)
	if err != nil {
		return models.Hangdam{}, fmt.Errorf("failed to parse start_date for hangdam %s: %w", h.ID, err)
	}
	if endDate.Valid {
		t, err := time.Parse(time.RFC3339Nano, endDate.String)
		if err != nil {
			return models.Hangdam{}, fmt.Errorf("failed to parse end_date for hangdam %s: %w", h.ID, err)
		}
		h.EndDate = &t
	}

	return h, nil
}

func formatEndDate(end *time.Time) sql.NullString {
	if end == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: end.Format(time.RFC3339Nano), Valid: true}
}

func (s *Store) AddHangdam(h models.Hangdam) error {
	_, err := s.db.Exec(`
		INSERT INTO hangdams (id, name, level, start_date, end_date)
		VALUES (?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.Level, h.StartDate.Format(time.RFC3339Nano), formatEndDate(h.EndDate))
	if err != nil {
		return fmt.Errorf("failed to insert hangdam %s: %w", h.ID, err)
	}
	return nil
}

func (s *Store) GetHangdam(id string) (models.Hangdam, error) {
	row := s.db.QueryRow("SELECT "+hangdamColumns+" FROM hangdams WHERE id = ?", id)
	h, err := scanHangdam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Hangdam{}, fmt.Errorf("hangdam %s: %w", id, storage.ErrNotFound)
	}
	return h, err
}

func (s *Store) GetAllHangdams() ([]models.Hangdam, error) {
	rows, err := s.db.Query("SELECT " + hangdamColumns + " FROM hangdams ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hangdams []models.Hangdam
	for rows.Next() {
		h, err := scanHangdam(rows)
		if err != nil {
			return nil, err
		}
		hangdams = append(hangdams, h)
	}
	return hangdams, rows.Err()
}

func (s *Store) UpdateHangdam(h models.Hangdam) error {
	return updateHangdam(s.db, h)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func updateHangdam(db execer, h models.Hangdam) error {
	result, err := db.Exec(`
		UPDATE hangdams SET name = ?, level = ?, end_date = ?
		WHERE id = ?`,
		h.Name, h.Level, formatEndDate(h.EndDate), h.ID)
	if err != nil {
		return fmt.Errorf("failed to update hangdam %s: %w", h.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("hangdam %s: %w", h.ID, storage.ErrNotFound)
	}
	return nil
}
