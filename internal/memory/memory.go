// Package memory is the customer relationship ledger. Every visit a
// customer pays is appended to their profile; relationship level,
// preferences and aggregates are all derived from that ledger. State
// transitions return fresh state values and never mutate their argument,
// so a host can keep old versions for undo or replay.
package memory

import "time"

// RelationshipLevel is the loyalty tier derived from cumulative visits.
type RelationshipLevel string

const (
	LevelStranger RelationshipLevel = "stranger"
	LevelNewcomer RelationshipLevel = "newcomer"
	LevelFamiliar RelationshipLevel = "familiar"
	LevelRegular  RelationshipLevel = "regular"
	LevelFavorite RelationshipLevel = "favorite"
)

// Visit-count breakpoints for each tier. A count at or above a breakpoint
// reaches that tier; the first visit is always a stranger.
const (
	NewcomerThreshold = 2
	FamiliarThreshold = 4
	RegularThreshold  = 9
	FavoriteThreshold = 16
)

// Satisfaction qualifiers used by CustomerInsights, on the 0-5 scale.
const (
	VerySatisfiedThreshold = 4.5
	SatisfiedThreshold     = 3.5
)

// Visit is one completed transaction as the ledger records it.
type Visit struct {
	Drink        string    `json:"drink"`
	Milk         string    `json:"milk,omitempty"`
	Quality      float64   `json:"quality"`      // brew score, 0-100
	Satisfaction float64   `json:"satisfaction"` // 0-5
	Payment      float64   `json:"payment"`
	Tip          float64   `json:"tip,omitempty"`
	Allergens    []string  `json:"allergens,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// DrinkCount pairs a drink with how often a customer ordered it. Kept as
// a slice so first-order wins ties after any serialization round-trip.
type DrinkCount struct {
	Drink string `json:"drink"`
	Count int    `json:"count"`
}

// MilkCount pairs a milk type with how often it was requested.
type MilkCount struct {
	Milk  string `json:"milk"`
	Count int    `json:"count"`
}

// CustomerProfile is everything the café remembers about one customer.
type CustomerProfile struct {
	Name                string            `json:"name"`
	Visits              []Visit           `json:"visits"`
	VisitCount          int               `json:"visit_count"`
	RelationshipLevel   RelationshipLevel `json:"relationship_level"`
	FavoriteDrinks      []DrinkCount      `json:"favorite_drinks"`
	PreferredMilk       string            `json:"preferred_milk,omitempty"`
	Allergens           []string          `json:"allergens,omitempty"`
	AverageSatisfaction float64           `json:"average_satisfaction"`
	TotalSpent          float64           `json:"total_spent"`
	Notes               []string          `json:"notes,omitempty"`
}

// State is the whole store. Names holds customer keys in first-seen
// order; Customers is the lookup index over the same profiles.
type State struct {
	Customers            map[string]*CustomerProfile `json:"customers"`
	Names                []string                    `json:"names"`
	TotalCustomersServed int                         `json:"total_customers_served"`
}

// NewState returns an empty store.
func NewState() *State {
	return &State{Customers: make(map[string]*CustomerProfile)}
}

// RecordVisit appends a visit to the named customer, creating the profile
// on first sight, and returns a new state. The old state is untouched:
// only the changed profile is copied, untouched profiles are shared.
func RecordVisit(state *State, name string, visit Visit) *State {
	next := cloneState(state)

	profile, ok := next.Customers[name]
	if !ok {
		profile = &CustomerProfile{Name: name, RelationshipLevel: LevelStranger}
		next.Names = append(next.Names, name)
	} else {
		profile = cloneProfile(profile)
	}

	profile.Visits = append(profile.Visits, visit)
	profile.VisitCount++
	profile.RelationshipLevel = relationshipFor(profile.VisitCount)
	profile.TotalSpent += visit.Payment + visit.Tip

	if visit.Drink != "" {
		bumpDrink(profile, visit.Drink)
	}
	profile.PreferredMilk = preferredMilk(profile.Visits)
	profile.AverageSatisfaction = meanSatisfaction(profile.Visits)

	for _, allergen := range visit.Allergens {
		if !contains(profile.Allergens, allergen) {
			profile.Allergens = append(profile.Allergens, allergen)
		}
	}

	next.Customers[name] = profile
	next.TotalCustomersServed++
	return next
}

// AddNote appends a free-text note to an existing customer and returns a
// new state. For an unknown customer it returns the argument itself,
// unchanged: callers detect the no-op by reference equality.
func AddNote(state *State, name, text string) *State {
	profile, ok := state.Customers[name]
	if !ok {
		return state
	}

	next := cloneState(state)
	profile = cloneProfile(profile)
	profile.Notes = append(profile.Notes, text)
	next.Customers[name] = profile
	return next
}

// IsReturningCustomer reports whether the café has seen this name before.
func IsReturningCustomer(state *State, name string) bool {
	_, ok := state.Customers[name]
	return ok
}

func relationshipFor(visitCount int) RelationshipLevel {
	switch {
	case visitCount >= FavoriteThreshold:
		return LevelFavorite
	case visitCount >= RegularThreshold:
		return LevelRegular
	case visitCount >= FamiliarThreshold:
		return LevelFamiliar
	case visitCount >= NewcomerThreshold:
		return LevelNewcomer
	default:
		return LevelStranger
	}
}

func bumpDrink(profile *CustomerProfile, drink string) {
	for i := range profile.FavoriteDrinks {
		if profile.FavoriteDrinks[i].Drink == drink {
			profile.FavoriteDrinks[i].Count++
			return
		}
	}
	profile.FavoriteDrinks = append(profile.FavoriteDrinks, DrinkCount{Drink: drink, Count: 1})
}

// preferredMilk recomputes the most-requested milk over the whole visit
// history. Counting walks visits in order, so the first milk to reach the
// top count keeps the crown on ties.
func preferredMilk(visits []Visit) string {
	var counts []MilkCount
	for _, visit := range visits {
		if visit.Milk == "" {
			continue
		}
		found := false
		for i := range counts {
			if counts[i].Milk == visit.Milk {
				counts[i].Count++
				found = true
				break
			}
		}
		if !found {
			counts = append(counts, MilkCount{Milk: visit.Milk, Count: 1})
		}
	}

	best := ""
	bestCount := 0
	for _, mc := range counts {
		if mc.Count > bestCount {
			best = mc.Milk
			bestCount = mc.Count
		}
	}
	return best
}

func meanSatisfaction(visits []Visit) float64 {
	if len(visits) == 0 {
		return 0
	}
	var sum float64
	for _, visit := range visits {
		sum += visit.Satisfaction
	}
	return sum / float64(len(visits))
}

func cloneState(state *State) *State {
	next := &State{
		Customers:            make(map[string]*CustomerProfile, len(state.Customers)),
		Names:                append([]string(nil), state.Names...),
		TotalCustomersServed: state.TotalCustomersServed,
	}
	for name, profile := range state.Customers {
		next.Customers[name] = profile
	}
	return next
}

func cloneProfile(profile *CustomerProfile) *CustomerProfile {
	next := *profile
	next.Visits = append([]Visit(nil), profile.Visits...)
	next.FavoriteDrinks = append([]DrinkCount(nil), profile.FavoriteDrinks...)
	next.Allergens = append([]string(nil), profile.Allergens...)
	next.Notes = append([]string(nil), profile.Notes...)
	return &next
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
