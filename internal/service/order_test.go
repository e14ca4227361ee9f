package service

import (
	"context"
	"errors"
	"testing"

	"homebite/internal/model"
)

func TestAdvanceRejectsBadTargets(t *testing.T) {
	s := NewOrderService(nil)

	tests := []struct {
		name      string
		requested string
	}{
		{"unknown status", "shipped"},
		{"back to placed", model.StatusPlaced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Advance(context.Background(), "o1", "u1", tt.requested)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}
