package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sodam-app/sodam/internal/models"
	"github.com/sodam-app/sodam/internal/storage"
)

func (s *Store) GetHappiness(id string) (models.Happiness, error) {
	var h models.Happiness
	var createdAt string

	err := s.db.QueryRow(`
		SELECT id, hangdam_id, content, created_at
		FROM happinesses WHERE id = ?`, id).Scan(&h.ID, &h.HangdamID, &h.Content, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Happiness{}, fmt.Errorf("happiness %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Happiness{}, err
	}

	h.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return models.Happiness{}, fmt.Errorf("failed to parse created_at for happiness %s: %w", id, err)
	}

	images, err := s.imagePaths("SELECT happiness_id, path FROM happiness_images WHERE happiness_id = ? ORDER BY position", id)
	if err != nil {
		return models.Happiness{}, err
	}
	h.ImagePaths = images[id]

	return h, nil
}

func (s *Store) GetHappinesses(hangdamID string) ([]models.Happiness, error) {
	rows, err := s.db.Query(`
		SELECT id, hangdam_id, content, created_at
		FROM happinesses WHERE hangdam_id = ? ORDER BY seq`, hangdamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var happinesses []models.Happiness
	for rows.Next() {
		var h models.Happiness
		var createdAt string
		if err := rows.Scan(&h.ID, &h.HangdamID, &h.Content, &createdAt); err != nil {
			return nil, err
		}
		h.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for happiness %s: %w", h.ID, err)
		}
		happinesses = append(happinesses, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	images, err := s.imagePaths(`
		SELECT i.happiness_id, i.path
		FROM happiness_images i
		JOIN happinesses h ON h.id = i.happiness_id
		WHERE h.hangdam_id = ?
		ORDER BY i.happiness_id, i.position`, hangdamID)
	if err != nil {
		return nil, err
	}
	for i := range happinesses {
		happinesses[i].ImagePaths = images[happinesses[i].ID]
	}

	return happinesses, nil
}

// imagePaths runs a (happiness_id, path) query and groups paths by entry.
func (s *Store) imagePaths(query string, args ...any) (map[string][]string, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paths := make(map[string][]string)
	for rows.Next() {
		var id, path string
		if err := rows.Scan(&id, &path); err != nil {
			return nil, err
		}
		paths[id] = append(paths[id], path)
	}
	return paths, rows.Err()
}

func (s *Store) CountHappinesses(hangdamID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT count(*) FROM happinesses WHERE hangdam_id = ?", hangdamID).Scan(&count)
	return count, err
}

func (s *Store) CommitHappiness(happiness models.Happiness, hangdam models.Hangdam, entryCount int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var endDate sql.NullString
	err = tx.QueryRow("SELECT end_date FROM hangdams WHERE id = ?", hangdam.ID).Scan(&endDate)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("hangdam %s: %w", hangdam.ID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read hangdam %s: %w", hangdam.ID, err)
	}
	if endDate.Valid {
		return fmt.Errorf("hangdam %s is archived: %w", hangdam.ID, storage.ErrConflict)
	}

	var count int
	if err := tx.QueryRow("SELECT count(*) FROM happinesses WHERE hangdam_id = ?", happiness.HangdamID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count happinesses: %w", err)
	}
	if count+1 != entryCount {
		return fmt.Errorf("hangdam %s holds %d happinesses, expected %d: %w", happiness.HangdamID, count, entryCount-1, storage.ErrConflict)
	}

	_, err = tx.Exec(`
		INSERT INTO happinesses (id, hangdam_id, content, created_at)
		VALUES (?, ?, ?, ?)`,
		happiness.ID, happiness.HangdamID, happiness.Content, happiness.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert happiness %s: %w", happiness.ID, err)
	}

	for i, path := range happiness.ImagePaths {
		if _, err := tx.Exec(`
			INSERT INTO happiness_images (happiness_id, position, path)
			VALUES (?, ?, ?)`, happiness.ID, i, path); err != nil {
			return fmt.Errorf("failed to insert image %d for happiness %s: %w", i, happiness.ID, err)
		}
	}

	result, err := tx.Exec(`
		UPDATE hangdams SET name = ?, level = ?, end_date = ?
		WHERE id = ? AND end_date IS NULL`,
		hangdam.Name, hangdam.Level, formatEndDate(hangdam.EndDate), hangdam.ID)
	if err != nil {
		return fmt.Errorf("failed to update hangdam %s: %w", hangdam.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("hangdam %s is archived: %w", hangdam.ID, storage.ErrConflict)
	}

	return tx.Commit()
}
