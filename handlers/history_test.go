package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Transition rules are checked in priority order; the first match decides
// the event.
func TestClassifyTransition(t *testing.T) {
	tests := []struct {
		name         string
		prevAssigned string
		nextAssigned string
		prevStatus   string
		nextStatus   string
		wantType     string
		wantAction   string
	}{
		{"checkout", "", "Ravi", "available", "assigned", "checkout", "checked out"},
		{"checkin", "Ravi", "", "assigned", "available", "checkin", "checked in"},
		{"reassign", "Ravi", "Priya", "assigned", "assigned", "checkout", "re-assigned"},
		{"to maintenance", "", "", "available", "maintenance", "maintenance", "moved to maintenance"},
		{"to broken", "", "", "available", "broken", "broken", "marked broken"},
		{"plain update", "", "", "available", "available", "updated", "updated"},
		{"status unchanged", "Ravi", "Ravi", "maintenance", "maintenance", "updated", "updated"},
		// Assignment change outranks a simultaneous status change.
		{"checkout wins over broken", "", "Ravi", "available", "broken", "checkout", "checked out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotAction := classifyTransition(tt.prevAssigned, tt.nextAssigned, tt.prevStatus, tt.nextStatus)
			assert.Equal(t, tt.wantType, gotType)
			assert.Equal(t, tt.wantAction, gotAction)
		})
	}
}
