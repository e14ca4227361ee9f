package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"homebite/internal/model"
)

type RatingService struct {
	db *sql.DB
}

func NewRatingService(db *sql.DB) *RatingService {
	return &RatingService{db: db}
}

// Submit records a 1-5 score for a picked-up order. The unique constraint
// on ratings.order_id enforces one rating per order; a violation maps to
// ErrDuplicateRating so clients can show "already rated" instead of a
// generic failure.
func (s *RatingService) Submit(ctx context.Context, orderID, eaterID string, score int) error {
	if score < 1 || score > 5 {
		return ErrInvalidScore
	}

	var cookID, orderEaterID, status string
	err := s.db.QueryRowContext(ctx,
		`SELECT cook_id, eater_id, status FROM orders WHERE id = $1`,
		orderID,
	).Scan(&cookID, &orderEaterID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	} else if err != nil {
		return fmt.Errorf("get order: %w", err)
	}

	if orderEaterID != eaterID {
		return ErrNotOrderParty
	}
	if status != model.StatusPickedUp {
		return ErrNotEligible
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO ratings (order_id, cook_id, eater_id, score) VALUES ($1, $2, $3, $4)`,
		orderID, cookID, eaterID, score,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrDuplicateRating
		}
		return fmt.Errorf("insert rating: %w", err)
	}

	return nil
}

// CookRating computes the cook's rating aggregate on demand. Average is
// nil when no ratings exist.
func (s *RatingService) CookRating(ctx context.Context, cookID string) (*model.CookRating, error) {
	agg := model.CookRating{CookID: cookID}

	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT AVG(score), COUNT(*) FROM ratings WHERE cook_id = $1`,
		cookID,
	).Scan(&avg, &agg.Count)
	if err != nil {
		return nil, fmt.Errorf("get cook rating: %w", err)
	}
	if avg.Valid {
		agg.Average = &avg.Float64
	}

	return &agg, nil
}
