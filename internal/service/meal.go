package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"homebite/internal/model"
)

type MealService struct {
	db *sql.DB
}

func NewMealService(db *sql.DB) *MealService {
	return &MealService{db: db}
}

type CreateMealInput struct {
	DishName      string
	Description   string
	Price         float64
	TotalPortions int
	ImageURL      string
	Tags          []string
}

func (s *MealService) Create(ctx context.Context, cookID string, in CreateMealInput) (*model.Meal, error) {
	if in.Tags == nil {
		in.Tags = []string{}
	}
	tagsJSON, err := json.Marshal(in.Tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}

	// Meals posted with tags skip the tagging worker.
	tagged := len(in.Tags) > 0

	query := `
		INSERT INTO meals (cook_id, dish_name, description, price, total_portions, remaining_portions, image_url, tags, tagged)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $5, NULLIF($6, ''), $7, $8)
		RETURNING id, created_at
	`
	var meal model.Meal
	err = s.db.QueryRowContext(ctx, query,
		cookID, in.DishName, in.Description, in.Price, in.TotalPortions, in.ImageURL, tagsJSON, tagged,
	).Scan(&meal.ID, &meal.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert meal: %w", err)
	}

	meal.CookID = cookID
	meal.DishName = in.DishName
	meal.Description = in.Description
	meal.Price = in.Price
	meal.TotalPortions = in.TotalPortions
	meal.RemainingPortions = in.TotalPortions
	meal.ImageURL = in.ImageURL
	meal.Tags = in.Tags

	return &meal, nil
}

// ListFeed returns all meals newest first, joined with cook profile info
// and the cook's rating aggregate.
func (s *MealService) ListFeed(ctx context.Context) ([]model.MealWithCook, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.cook_id, m.dish_name, COALESCE(m.description, ''), m.price,
		       m.total_portions, m.remaining_portions, COALESCE(m.image_url, ''), m.tags, m.created_at,
		       COALESCE(p.display_name, 'Anonymous Cook'), COALESCE(p.avatar_url, ''),
		       COALESCE(p.neighborhood, ''), COALESCE(p.nationality, ''),
		       AVG(r.score), COUNT(r.id)
		FROM meals m
		LEFT JOIN profiles p ON p.user_id = m.cook_id
		LEFT JOIN ratings r ON r.cook_id = m.cook_id
		GROUP BY m.id, p.display_name, p.avatar_url, p.neighborhood, p.nationality
		ORDER BY m.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query meals: %w", err)
	}
	defer rows.Close()

	var meals []model.MealWithCook
	for rows.Next() {
		var m model.MealWithCook
		var tagsJSON []byte
		var avg sql.NullFloat64
		if err := rows.Scan(
			&m.ID, &m.CookID, &m.DishName, &m.Description, &m.Price,
			&m.TotalPortions, &m.RemainingPortions, &m.ImageURL, &tagsJSON, &m.CreatedAt,
			&m.CookName, &m.CookAvatar, &m.Neighborhood, &m.Nationality,
			&avg, &m.CookRatingCount,
		); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		if err := json.Unmarshal(tagsJSON, &m.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
		if avg.Valid {
			m.CookRating = &avg.Float64
		}
		meals = append(meals, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return meals, nil
}

func (s *MealService) ListByCook(ctx context.Context, cookID string) ([]model.Meal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, cook_id, dish_name, COALESCE(description, ''), price,
		       total_portions, remaining_portions, COALESCE(image_url, ''), tags, created_at
		FROM meals
		WHERE cook_id = $1
		ORDER BY created_at DESC
	`, cookID)
	if err != nil {
		return nil, fmt.Errorf("query meals: %w", err)
	}
	defer rows.Close()

	var meals []model.Meal
	for rows.Next() {
		var m model.Meal
		var tagsJSON []byte
		if err := rows.Scan(
			&m.ID, &m.CookID, &m.DishName, &m.Description, &m.Price,
			&m.TotalPortions, &m.RemainingPortions, &m.ImageURL, &tagsJSON, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		if err := json.Unmarshal(tagsJSON, &m.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
		meals = append(meals, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return meals, nil
}

// GetUntagged returns meals the tagging worker has not yet processed.
func (s *MealService) GetUntagged(ctx context.Context, limit int) ([]model.Meal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, cook_id, dish_name, COALESCE(description, ''), price,
		       total_portions, remaining_portions, COALESCE(image_url, ''), tags, created_at
		FROM meals
		WHERE NOT tagged
		ORDER BY created_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query untagged: %w", err)
	}
	defer rows.Close()

	var meals []model.Meal
	for rows.Next() {
		var m model.Meal
		var tagsJSON []byte
		if err := rows.Scan(
			&m.ID, &m.CookID, &m.DishName, &m.Description, &m.Price,
			&m.TotalPortions, &m.RemainingPortions, &m.ImageURL, &tagsJSON, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		if err := json.Unmarshal(tagsJSON, &m.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
		meals = append(meals, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return meals, nil
}

// SetTags stores worker-suggested tags and marks the meal processed so it
// is not picked up again, even when the suggestion came back empty.
func (s *MealService) SetTags(ctx context.Context, mealID string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE meals SET tags = $1, tagged = TRUE WHERE id = $2`,
		tagsJSON, mealID,
	)
	if err != nil {
		return fmt.Errorf("update tags: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMealNotFound
	}
	return nil
}
