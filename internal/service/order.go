package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"homebite/internal/model"
)

type OrderService struct {
	db *sql.DB
}

func NewOrderService(db *sql.DB) *OrderService {
	return &OrderService{db: db}
}

// Place claims one portion of a meal for the eater. The decrement is a
// single conditional UPDATE, so when several callers race for the last
// portion exactly one row is updated and the rest get ErrSoldOut.
func (s *OrderService) Place(ctx context.Context, eaterID, mealID string) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var cookID string
	err = tx.QueryRowContext(ctx, `
		UPDATE meals
		SET remaining_portions = remaining_portions - 1
		WHERE id = $1 AND remaining_portions > 0
		RETURNING cook_id
	`, mealID).Scan(&cookID)
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM meals WHERE id = $1)`, mealID,
		).Scan(&exists); err != nil {
			return "", fmt.Errorf("check meal: %w", err)
		}
		if !exists {
			return "", ErrMealNotFound
		}
		return "", ErrSoldOut
	} else if err != nil {
		return "", fmt.Errorf("decrement portions: %w", err)
	}

	var orderID string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (meal_id, eater_id, cook_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, mealID, eaterID, cookID, model.StatusPlaced).Scan(&orderID)
	if err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit tx: %w", err)
	}

	return orderID, nil
}

// Advance moves an order to the requested status. Forward steps are
// restricted to the order's cook; cancellation is allowed to the cook or
// the eater. Cancellation does not restore portions.
func (s *OrderService) Advance(ctx context.Context, orderID, callerID, requested string) error {
	if !model.ValidStatus(requested) || requested == model.StatusPlaced {
		return ErrInvalidTransition
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var current, cookID, eaterID string
	err = tx.QueryRowContext(ctx,
		`SELECT status, cook_id, eater_id FROM orders WHERE id = $1 FOR UPDATE`,
		orderID,
	).Scan(&current, &cookID, &eaterID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	} else if err != nil {
		return fmt.Errorf("get order: %w", err)
	}

	if requested == model.StatusCancelled {
		if callerID != cookID && callerID != eaterID {
			return ErrNotOrderParty
		}
	} else if callerID != cookID {
		return ErrNotOrderParty
	}

	if !model.ValidTransition(current, requested) {
		return ErrInvalidTransition
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE orders SET status = $1 WHERE id = $2`,
		requested, orderID,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	return tx.Commit()
}

// ListByUser returns the caller's orders, as eater or as cook, newest
// first, joined with the display fields clients render.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]model.OrderWithDetails, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.meal_id, o.eater_id, o.cook_id, o.status, o.created_at,
		       m.dish_name, m.price,
		       COALESCE(cp.display_name, 'Cook'), COALESCE(ep.display_name, 'Customer')
		FROM orders o
		JOIN meals m ON m.id = o.meal_id
		LEFT JOIN profiles cp ON cp.user_id = o.cook_id
		LEFT JOIN profiles ep ON ep.user_id = o.eater_id
		WHERE o.eater_id = $1 OR o.cook_id = $1
		ORDER BY o.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.OrderWithDetails
	for rows.Next() {
		var o model.OrderWithDetails
		if err := rows.Scan(
			&o.ID, &o.MealID, &o.EaterID, &o.CookID, &o.Status, &o.CreatedAt,
			&o.DishName, &o.Price, &o.CookName, &o.EaterName,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return orders, nil
}
