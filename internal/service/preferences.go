package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"homebite/internal/model"
)

type PreferencesService struct {
	db *sql.DB
}

func NewPreferencesService(db *sql.DB) *PreferencesService {
	return &PreferencesService{db: db}
}

func (s *PreferencesService) Get(ctx context.Context, userID string) (model.DietaryPreferences, error) {
	var prefs model.DietaryPreferences

	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT dietary_preferences FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return prefs, nil
	} else if err != nil {
		return prefs, fmt.Errorf("get preferences: %w", err)
	}

	if err := json.Unmarshal(raw, &prefs); err != nil {
		return prefs, fmt.Errorf("unmarshal preferences: %w", err)
	}
	return prefs, nil
}

func (s *PreferencesService) Save(ctx context.Context, userID string, prefs model.DietaryPreferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE profiles SET dietary_preferences = $1 WHERE user_id = $2`,
		raw, userID,
	)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
