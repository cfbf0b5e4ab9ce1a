package model

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/username/amlview/backend/src/models"
)

const (
	settingsKeyThresholds = "thresholds"
	settingsKeyScores     = "flag_scores"
)

// SettingsStore persists thresholds and flag scores as JSON blobs in the
// settings table. Implements services.SettingsStore.
type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) load(key string, dst any) (bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(value), dst); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SettingsStore) save(key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	query := `
	INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	_, err = s.db.Exec(query, key, string(payload), time.Now())
	return err
}

func (s *SettingsStore) LoadThresholds() (*models.Thresholds, error) {
	var t models.Thresholds
	found, err := s.load(settingsKeyThresholds, &t)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &t, nil
}

func (s *SettingsStore) SaveThresholds(t models.Thresholds) error {
	return s.save(settingsKeyThresholds, t)
}

func (s *SettingsStore) LoadScores() (models.FlagScores, error) {
	var scores models.FlagScores
	found, err := s.load(settingsKeyScores, &scores)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return scores, nil
}

func (s *SettingsStore) SaveScores(scores models.FlagScores) error {
	return s.save(settingsKeyScores, scores)
}
