package memory

import (
	"fmt"
	"sort"
	"strings"
)

// Stats aggregates the whole store for dashboards and day summaries.
type Stats struct {
	TotalCustomers      int     `json:"total_customers"`
	ReturningCustomers  int     `json:"returning_customers"`
	RegularCustomers    int     `json:"regular_customers"`
	FavoriteCustomers   int     `json:"favorite_customers"`
	TotalRevenue        float64 `json:"total_revenue"`
	AverageSatisfaction float64 `json:"average_satisfaction"`
}

var levelPhrases = map[RelationshipLevel]string{
	LevelStranger: "a new face",
	LevelNewcomer: "a newcomer",
	LevelFamiliar: "a familiar face",
	LevelRegular:  "a regular",
	LevelFavorite: "a favorite customer",
}

// FavoriteDrink returns the customer's most-ordered drink. Ties go to the
// drink ordered first.
func FavoriteDrink(profile *CustomerProfile) string {
	best := ""
	bestCount := 0
	for _, dc := range profile.FavoriteDrinks {
		if dc.Count > bestCount {
			best = dc.Drink
			bestCount = dc.Count
		}
	}
	return best
}

// RegularCustomers returns everyone at regular level or above, most
// visits first. Customers tied on visits keep first-seen order.
func RegularCustomers(state *State) []*CustomerProfile {
	var regulars []*CustomerProfile
	for _, name := range state.Names {
		profile := state.Customers[name]
		if profile.RelationshipLevel == LevelRegular || profile.RelationshipLevel == LevelFavorite {
			regulars = append(regulars, profile)
		}
	}
	sort.SliceStable(regulars, func(i, j int) bool {
		return regulars[i].VisitCount > regulars[j].VisitCount
	})
	return regulars
}

// CustomerInsights composes a short natural-language summary of one
// profile, for the barista's screen and for narrative prompts.
func CustomerInsights(profile *CustomerProfile) string {
	parts := []string{fmt.Sprintf("%s is %s.", profile.Name, levelPhrases[profile.RelationshipLevel])}

	if profile.VisitCount == 1 {
		parts = append(parts, "This is their first visit.")
	} else if favorite := FavoriteDrink(profile); favorite != "" {
		parts = append(parts, fmt.Sprintf("They usually order %s.", favorite))
	}

	if profile.PreferredMilk != "" {
		parts = append(parts, fmt.Sprintf("Prefers %s milk.", profile.PreferredMilk))
	}
	if len(profile.Allergens) > 0 {
		parts = append(parts, fmt.Sprintf("Allergic to %s.", strings.Join(profile.Allergens, ", ")))
	}

	switch {
	case profile.AverageSatisfaction >= VerySatisfiedThreshold:
		parts = append(parts, "A very satisfied customer.")
	case profile.AverageSatisfaction >= SatisfiedThreshold:
		parts = append(parts, "Generally happy with their visits.")
	}

	return strings.Join(parts, " ")
}

// ReturningRate is the percentage of distinct customers seen more than
// once. An empty store returns 0.
func ReturningRate(state *State) float64 {
	if len(state.Names) == 0 {
		return 0
	}
	returning := 0
	for _, profile := range state.Customers {
		if profile.VisitCount > 1 {
			returning++
		}
	}
	return float64(returning) / float64(len(state.Names)) * 100
}

// MemoryStats summarizes the store: distinct and returning customer
// counts, per-tier counts, lifetime revenue, and the mean of every
// customer's average satisfaction.
func MemoryStats(state *State) Stats {
	stats := Stats{TotalCustomers: len(state.Names)}

	var satisfactionSum float64
	for _, name := range state.Names {
		profile := state.Customers[name]
		if profile.VisitCount > 1 {
			stats.ReturningCustomers++
		}
		switch profile.RelationshipLevel {
		case LevelRegular:
			stats.RegularCustomers++
		case LevelFavorite:
			stats.FavoriteCustomers++
		}
		stats.TotalRevenue += profile.TotalSpent
		satisfactionSum += profile.AverageSatisfaction
	}

	if stats.TotalCustomers > 0 {
		stats.AverageSatisfaction = satisfactionSum / float64(stats.TotalCustomers)
	}
	return stats
}
