package model

import "testing"

func TestValidTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		ok   bool
	}{
		{"placed to packing", StatusPlaced, StatusPacking, true},
		{"packing to ready", StatusPacking, StatusReady, true},
		{"ready to picked_up", StatusReady, StatusPickedUp, true},
		{"skip packing", StatusPlaced, StatusReady, false},
		{"skip to picked_up", StatusPlaced, StatusPickedUp, false},
		{"backward", StatusPacking, StatusPlaced, false},
		{"repeat current", StatusPacking, StatusPacking, false},
		{"cancel from placed", StatusPlaced, StatusCancelled, true},
		{"cancel from packing", StatusPacking, StatusCancelled, true},
		{"cancel from ready", StatusReady, StatusCancelled, true},
		{"cancel after pickup", StatusPickedUp, StatusCancelled, false},
		{"cancel after cancel", StatusCancelled, StatusCancelled, false},
		{"advance after pickup", StatusPickedUp, StatusPacking, false},
		{"advance after cancel", StatusCancelled, StatusPacking, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidTransition(tt.from, tt.to); got != tt.ok {
				t.Fatalf("ValidTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.ok)
			}
		})
	}
}

// Advancing twice with what was each time the direct successor: the first
// call succeeds, the second (now requesting the already-left status) must
// be rejected.
func TestTransitionNotIdempotent(t *testing.T) {
	if !ValidTransition(StatusPlaced, StatusPacking) {
		t.Fatal("first advance should be valid")
	}
	if ValidTransition(StatusPacking, StatusPacking) {
		t.Fatal("repeated advance to the same status should be invalid")
	}
}

func TestStatusSequences(t *testing.T) {
	// Every full lifecycle is a walk through the forward chain, optionally
	// cut short by a single cancellation.
	full := []string{StatusPlaced, StatusPacking, StatusReady, StatusPickedUp}
	for i := 0; i < len(full)-1; i++ {
		if !ValidTransition(full[i], full[i+1]) {
			t.Fatalf("expected %s -> %s to be valid", full[i], full[i+1])
		}
	}

	for _, s := range []string{StatusPlaced, StatusPacking, StatusReady} {
		if TerminalStatus(s) {
			t.Fatalf("%s should not be terminal", s)
		}
	}
	for _, s := range []string{StatusPickedUp, StatusCancelled} {
		if !TerminalStatus(s) {
			t.Fatalf("%s should be terminal", s)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPlaced, StatusPacking, StatusReady, StatusPickedUp, StatusCancelled} {
		if !ValidStatus(s) {
			t.Fatalf("%s should be a valid status", s)
		}
	}
	if ValidStatus("shipped") {
		t.Fatal("unknown status should be invalid")
	}
}
