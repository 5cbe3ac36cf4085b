// Package equipment is the progression ledger: which gear the café owns,
// what the next upgrades cost, and the brew bonuses ownership feeds into
// scoring. Purchases are pure transitions over a small state value, so a
// failed purchase can never leave money and gear out of step.
package equipment

import (
	"errors"
	"fmt"

	"github.com/chrisdamba/cafesim/internal/scoring"
)

const MaxTier = 3

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidUpgrade    = errors.New("invalid upgrade")
)

// Category is one of the four equipment slots.
type Category string

const (
	CategoryEspressoMachine Category = "espresso_machine"
	CategoryGrinder         Category = "grinder"
	CategoryMilkSteamer     Category = "milk_steamer"
	CategoryBrewingStation  Category = "brewing_station"
)

// Effects are the gameplay adjustments one item grants. Bonuses add to
// the matching scoring component; Consistency and BrewTimeReduction tune
// the brew simulation; the capability flags unlock parallel brewing.
type Effects struct {
	QualityBonus      float64 `json:"quality_bonus,omitempty"`
	GrindBonus        float64 `json:"grind_bonus,omitempty"`
	MilkBonus         float64 `json:"milk_bonus,omitempty"`
	TemperatureBonus  float64 `json:"temperature_bonus,omitempty"`
	Consistency       float64 `json:"consistency,omitempty"`
	BrewTimeReduction float64 `json:"brew_time_reduction,omitempty"`
	DualBrewing       bool    `json:"dual_brewing,omitempty"`
	TripleBrewing     bool    `json:"triple_brewing,omitempty"`
}

// Item is one purchasable piece of equipment.
type Item struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Tier        int      `json:"tier"`
	Price       float64  `json:"price"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Effects     Effects  `json:"effects"`
}

// State maps each category to the owned tier. At most one item per
// category is owned; upgrading replaces the previous tier.
type State struct {
	Owned map[Category]int `json:"owned"`
}

// StarterState returns the gear a new café opens with: tier 1 in every
// category.
func StarterState() State {
	owned := make(map[Category]int, len(categoryOrder))
	for _, category := range categoryOrder {
		owned[category] = 1
	}
	return State{Owned: owned}
}

// CurrentItems returns the owned item per category, in shop order.
func CurrentItems(state State) []Item {
	items := make([]Item, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		tier, ok := state.Owned[category]
		if !ok {
			continue
		}
		if item, found := itemAt(category, tier); found {
			items = append(items, item)
		}
	}
	return items
}

// AvailableUpgrades returns the single next tier per category, skipping
// categories already at tier 3.
func AvailableUpgrades(state State) []Item {
	upgrades := make([]Item, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		tier := state.Owned[category]
		if tier >= MaxTier {
			continue
		}
		if item, found := itemAt(category, tier+1); found {
			upgrades = append(upgrades, item)
		}
	}
	return upgrades
}

// TotalValue sums the prices of all owned items.
func TotalValue(state State) float64 {
	var value float64
	for _, item := range CurrentItems(state) {
		value += item.Price
	}
	return value
}

// TotalEffects folds the owned items' effects into one record. Numeric
// effects add; capability flags are true once any owned item grants them.
func TotalEffects(state State) Effects {
	var total Effects
	for _, item := range CurrentItems(state) {
		total.QualityBonus += item.Effects.QualityBonus
		total.GrindBonus += item.Effects.GrindBonus
		total.MilkBonus += item.Effects.MilkBonus
		total.TemperatureBonus += item.Effects.TemperatureBonus
		total.Consistency += item.Effects.Consistency
		total.BrewTimeReduction += item.Effects.BrewTimeReduction
		total.DualBrewing = total.DualBrewing || item.Effects.DualBrewing
		total.TripleBrewing = total.TripleBrewing || item.Effects.TripleBrewing
	}
	return total
}

// Bonuses converts owned-equipment effects into the adjustment record the
// scoring engine consumes.
func Bonuses(state State) scoring.Bonuses {
	effects := TotalEffects(state)
	return scoring.Bonuses{
		Quality:     effects.QualityBonus,
		Grind:       effects.GrindBonus,
		Milk:        effects.MilkBonus,
		Temperature: effects.TemperatureBonus,
	}
}

// Purchase buys the identified item and returns the new gear state and
// remaining money. Tiers are strictly sequential: the item must be
// exactly one tier above the owned one. On any failure the inputs come
// back unchanged alongside the error, so there are no partial purchases.
func Purchase(state State, money float64, itemID string) (State, float64, error) {
	item, found := itemByID(itemID)
	if !found {
		return state, money, fmt.Errorf("%w: unknown equipment %q", ErrInvalidUpgrade, itemID)
	}

	owned := state.Owned[item.Category]
	if item.Tier != owned+1 {
		return state, money, fmt.Errorf("%w: %s requires tier %d, currently own tier %d",
			ErrInvalidUpgrade, item.ID, item.Tier-1, owned)
	}
	if money < item.Price {
		return state, money, fmt.Errorf("%w: %s costs %.2f, have %.2f",
			ErrInsufficientFunds, item.ID, item.Price, money)
	}

	next := State{Owned: make(map[Category]int, len(state.Owned))}
	for category, tier := range state.Owned {
		next.Owned[category] = tier
	}
	next.Owned[item.Category] = item.Tier
	return next, money - item.Price, nil
}

func itemAt(category Category, tier int) (Item, bool) {
	for _, item := range Catalog {
		if item.Category == category && item.Tier == tier {
			return item, true
		}
	}
	return Item{}, false
}

func itemByID(id string) (Item, bool) {
	for _, item := range Catalog {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}
