package service

import "errors"

// Domain errors. Handlers match these with errors.Is to pick status codes
// and user-facing messages; everything else is an internal error.
var (
	ErrLoginTaken         = errors.New("login already exists")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrMealNotFound       = errors.New("meal not found")
	ErrSoldOut            = errors.New("no portions remaining")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrNotOrderParty      = errors.New("order does not belong to caller")
	ErrInvalidScore       = errors.New("score must be between 1 and 5")
	ErrDuplicateRating    = errors.New("order already rated")
	ErrNotEligible        = errors.New("order not eligible for rating")
)
