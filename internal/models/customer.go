package models

import "time"

// Customer is one simulated neighborhood regular-to-be. The profile the
// café accumulates about them lives in the memory store; this struct is
// only the actor driving arrivals and order choices.
type Customer struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Persona        string    `json:"persona"`
	FavoriteDrink  string    `json:"favorite_drink"`
	PreferredMilk  string    `json:"preferred_milk,omitempty"`
	SweetTooth     bool      `json:"sweet_tooth"`
	DecafOnly      bool      `json:"decaf_only"`
	Allergens      []string  `json:"allergens,omitempty"`
	VisitFrequency float64   `json:"visit_frequency"` // expected visits per day
	TipGenerosity  float64   `json:"tip_generosity"`  // fraction of the bill
	JoinDate       time.Time `json:"join_date"`
	LastVisitTime  time.Time `json:"last_visit_time"`
}
