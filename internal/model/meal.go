package model

import "time"

type Meal struct {
	ID                string    `json:"id"`
	CookID            string    `json:"cook_id"`
	DishName          string    `json:"dish_name"`
	Description       string    `json:"description,omitempty"`
	Price             float64   `json:"price"`
	TotalPortions     int       `json:"total_portions"`
	RemainingPortions int       `json:"remaining_portions"`
	ImageURL          string    `json:"image_url,omitempty"`
	Tags              []string  `json:"tags"`
	CreatedAt         time.Time `json:"created_at"`
}

// MealWithCook is the feed view of a meal joined with its cook's profile
// and rating aggregate.
type MealWithCook struct {
	Meal
	CookName        string   `json:"cook_name"`
	CookAvatar      string   `json:"cook_avatar,omitempty"`
	Neighborhood    string   `json:"neighborhood,omitempty"`
	Nationality     string   `json:"nationality,omitempty"`
	CookRating      *float64 `json:"cook_rating,omitempty"`
	CookRatingCount int      `json:"cook_rating_count"`
}
