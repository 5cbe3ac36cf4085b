package models

import (
	"time"

	"github.com/chrisdamba/cafesim/internal/equipment"
	"github.com/chrisdamba/cafesim/internal/memory"
)

// SessionSnapshot is the saveable slice of a running game: everything
// needed to close the café tonight and reopen it tomorrow.
type SessionSnapshot struct {
	Name       string          `json:"name"`
	Day        int             `json:"day"`
	Clock      time.Time       `json:"clock"`
	Money      float64         `json:"money"`
	Reputation float64         `json:"reputation"`
	Equipment  equipment.State `json:"equipment"`
	Memory     *memory.State   `json:"memory"`
	Customers  []*Customer     `json:"customers,omitempty"`
	SavedAt    time.Time       `json:"saved_at"`
}
