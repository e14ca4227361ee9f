package model

import "time"

// Order statuses. An order moves forward one step at a time
// (placed -> packing -> ready -> picked_up) or is cancelled from any
// non-terminal state. picked_up and cancelled are terminal.
const (
	StatusPlaced    = "placed"
	StatusPacking   = "packing"
	StatusReady     = "ready"
	StatusPickedUp  = "picked_up"
	StatusCancelled = "cancelled"
)

var forwardSteps = map[string]string{
	StatusPlaced:  StatusPacking,
	StatusPacking: StatusReady,
	StatusReady:   StatusPickedUp,
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPlaced, StatusPacking, StatusReady, StatusPickedUp, StatusCancelled:
		return true
	}
	return false
}

func TerminalStatus(s string) bool {
	return s == StatusPickedUp || s == StatusCancelled
}

// ValidTransition reports whether an order may move from one status to
// the requested one: the single next forward step, or cancellation from
// any non-terminal state. Nothing leaves a terminal state.
func ValidTransition(from, to string) bool {
	if TerminalStatus(from) {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return forwardSteps[from] == to
}

type Order struct {
	ID        string    `json:"id"`
	MealID    string    `json:"meal_id"`
	EaterID   string    `json:"eater_id"`
	CookID    string    `json:"cook_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderWithDetails is the listing view of an order joined with the
// display fields clients need alongside it.
type OrderWithDetails struct {
	Order
	DishName  string  `json:"dish_name"`
	Price     float64 `json:"price"`
	CookName  string  `json:"cook_name"`
	EaterName string  `json:"eater_name"`
}
