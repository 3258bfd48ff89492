package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// SaveReading persists a completed reading.
func (s *Store) SaveReading(r ReadingRecord) error {
	source := r.NarrativeSource
	if source == "" {
		source = "template"
	}
	_, err := s.db.Exec(`
		INSERT INTO readings (id, created_at, profile_json, cards_json, narrative_source)
		VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC().Format(time.RFC3339), r.ProfileJSON, r.CardsJSON, source,
	)
	return err
}

// GetReading returns a saved reading by id.
func (s *Store) GetReading(id string) (ReadingRecord, error) {
	var r ReadingRecord
	var createdAt string
	err := s.db.QueryRow(`
		SELECT id, created_at, profile_json, cards_json, narrative_source
		FROM readings WHERE id = ?`, id,
	).Scan(&r.ID, &createdAt, &r.ProfileJSON, &r.CardsJSON, &r.NarrativeSource)
	if err == sql.ErrNoRows {
		return ReadingRecord{}, ErrNotFound
	}
	if err != nil {
		return ReadingRecord{}, err
	}
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return ReadingRecord{}, fmt.Errorf("parsing created_at: %w", err)
	}
	r.CreatedAt = t
	return r, nil
}

// ListReadings returns the most recent readings, newest first.
func (s *Store) ListReadings(limit int) ([]ReadingRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, created_at, profile_json, cards_json, narrative_source
		FROM readings ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ReadingRecord
	for rows.Next() {
		var r ReadingRecord
		var createdAt string
		if err := rows.Scan(&r.ID, &createdAt, &r.ProfileJSON, &r.CardsJSON, &r.NarrativeSource); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		r.CreatedAt = t
		results = append(results, r)
	}
	return results, rows.Err()
}

// DeleteReading removes a saved reading.
func (s *Store) DeleteReading(id string) error {
	res, err := s.db.Exec(`DELETE FROM readings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// PruneReadingsBefore deletes readings created before cutoff and returns
// how many were removed.
func (s *Store) PruneReadingsBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM readings WHERE created_at < ?`,
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
