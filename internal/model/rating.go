package model

import "time"

type Rating struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	CookID    string    `json:"cook_id"`
	EaterID   string    `json:"eater_id"`
	Score     int       `json:"score"` // 1..5
	CreatedAt time.Time `json:"created_at"`
}

// CookRating is the on-demand aggregate over all ratings for a cook.
// Average is nil when the cook has no ratings yet.
type CookRating struct {
	CookID  string   `json:"cook_id"`
	Average *float64 `json:"average_rating"`
	Count   int      `json:"total_ratings"`
}
