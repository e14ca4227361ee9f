// Package recommend ranks visible meals against an eater's dietary
// preferences. Scoring is deterministic and has no side effects: the same
// meal snapshot and preferences always produce the same result.
package recommend

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"homebite/internal/model"
)

var ErrInvalidInput = errors.New("meals list is required")

// Meal is the scoring view of a meal: the fields the scorer reads plus
// the ones echoed back to the client for display.
type Meal struct {
	ID                string   `json:"id"`
	DishName          string   `json:"dish_name"`
	Description       string   `json:"description,omitempty"`
	Price             float64  `json:"price"`
	Tags              []string `json:"tags"`
	RemainingPortions int      `json:"remaining_portions"`
}

type RecommendedMeal struct {
	Meal
	AIReason   string `json:"aiReason"`
	MatchScore int    `json:"matchScore"`
}

// restrictionScores maps a dietary restriction to the tag it matches on,
// its score weight, and the reason shown to the eater. Restrictions
// outside this table contribute nothing.
var restrictionScores = map[string]struct {
	score  int
	reason string
}{
	"Vegetarian":  {30, "Vegetarian"},
	"Vegan":       {30, "Vegan"},
	"Halal":       {30, "Halal-friendly"},
	"Gluten-Free": {25, "Gluten-Free"},
}

const maxResults = 5

// Recommend filters and ranks meals for the given preferences. Meals
// carrying a "Contains <allergy>" tag are excluded outright; every other
// match adds to the score, and only meals with a positive score qualify.
// The result is sorted by descending score (stable for ties) and capped
// at five entries.
func Recommend(meals []Meal, prefs model.DietaryPreferences) ([]RecommendedMeal, error) {
	if meals == nil {
		return nil, ErrInvalidInput
	}

	var out []RecommendedMeal

	for _, meal := range meals {
		if meal.RemainingPortions <= 0 {
			continue
		}

		tags := make(map[string]bool, len(meal.Tags))
		for _, t := range meal.Tags {
			tags[t] = true
		}

		score := 0
		var reasons []string
		excluded := false

		for _, allergy := range prefs.Allergies {
			if tags["Contains "+allergy] {
				excluded = true
				break
			}
			if tags[allergy+"-Free"] {
				score += 20
				reasons = append(reasons, allergy+"-Free")
			}
		}
		if excluded {
			continue
		}

		for _, restriction := range prefs.Restrictions {
			if m, ok := restrictionScores[restriction]; ok && tags[restriction] {
				score += m.score
				reasons = append(reasons, m.reason)
			}
		}

		if prefs.MaxBudget != nil {
			budget := *prefs.MaxBudget
			if meal.Price <= budget {
				score += 15
				reasons = append(reasons, fmt.Sprintf("Within your €%v budget", budget))
			} else if meal.Price <= budget*1.1 {
				score += 5
				reasons = append(reasons, fmt.Sprintf("Close to your €%v budget", budget))
			}
		}

		if meal.RemainingPortions <= 3 {
			score += 10
			reasons = append(reasons, "Low stock - order soon!")
		}

		if score <= 0 {
			continue
		}

		out = append(out, RecommendedMeal{
			Meal:       meal,
			AIReason:   composeReason(reasons),
			MatchScore: score,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchScore > out[j].MatchScore
	})

	if len(out) > maxResults {
		out = out[:maxResults]
	}
	return out, nil
}

// composeReason folds the fired reasons into one human-readable line:
// a single reason stands alone; a budget reason pairs with the first
// non-budget, non-stock reason; otherwise the first two reasons join.
func composeReason(reasons []string) string {
	if len(reasons) == 1 {
		return reasons[0]
	}

	var budgetReason string
	for _, r := range reasons {
		if strings.Contains(r, "budget") {
			budgetReason = r
			break
		}
	}

	if budgetReason != "" {
		for _, r := range reasons {
			if !strings.Contains(r, "budget") && !strings.Contains(r, "stock") {
				return r + " & " + budgetReason
			}
		}
		return budgetReason
	}

	return reasons[0] + " & " + reasons[1]
}
