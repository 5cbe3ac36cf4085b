package equipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarterState(t *testing.T) {
	state := StarterState()

	items := CurrentItems(state)
	require.Len(t, items, 4)
	for _, item := range items {
		assert.Equal(t, 1, item.Tier, "category %s", item.Category)
	}
	assert.InDelta(t, 1150, TotalValue(state), 1e-9)
}

func TestCatalogShape(t *testing.T) {
	perCategory := make(map[Category][]int)
	seen := make(map[string]bool)
	for _, item := range Catalog {
		require.False(t, seen[item.ID], "duplicate id %s", item.ID)
		seen[item.ID] = true
		perCategory[item.Category] = append(perCategory[item.Category], item.Tier)
	}

	require.Len(t, perCategory, 4)
	for _, category := range Categories() {
		assert.ElementsMatch(t, []int{1, 2, 3}, perCategory[category], "category %s", category)
	}
}

func TestAvailableUpgrades(t *testing.T) {
	state := StarterState()

	upgrades := AvailableUpgrades(state)
	require.Len(t, upgrades, 4)
	for _, item := range upgrades {
		assert.Equal(t, 2, item.Tier, "category %s", item.Category)
	}

	state.Owned[CategoryGrinder] = 3
	upgrades = AvailableUpgrades(state)
	require.Len(t, upgrades, 3)
	for _, item := range upgrades {
		assert.NotEqual(t, CategoryGrinder, item.Category, "maxed categories are excluded")
	}
}

func TestPurchase(t *testing.T) {
	state := StarterState()

	next, money, err := Purchase(state, 1000, "grinder_2")
	require.NoError(t, err)
	assert.Equal(t, 2, next.Owned[CategoryGrinder])
	assert.InDelta(t, 400, money, 1e-9)
	assert.Equal(t, 1, state.Owned[CategoryGrinder], "argument state stays untouched")
}

func TestPurchaseSequentialTiers(t *testing.T) {
	state := StarterState()

	// tier 3 straight from tier 1 is rejected
	_, _, err := Purchase(state, 10000, "grinder_3")
	require.ErrorIs(t, err, ErrInvalidUpgrade)

	state, money, err := Purchase(state, 10000, "grinder_2")
	require.NoError(t, err)

	state, money, err = Purchase(state, money, "grinder_3")
	require.NoError(t, err)
	assert.Equal(t, 3, state.Owned[CategoryGrinder])
	assert.InDelta(t, 10000-600-1500, money, 1e-9)

	// nothing above tier 3
	_, _, err = Purchase(state, 10000, "grinder_3")
	require.ErrorIs(t, err, ErrInvalidUpgrade)
}

func TestPurchaseFailures(t *testing.T) {
	state := StarterState()

	_, _, err := Purchase(state, 10000, "espresso_machine_9")
	require.ErrorIs(t, err, ErrInvalidUpgrade)

	// rebuying the owned tier is not an upgrade
	_, _, err = Purchase(state, 10000, "grinder_1")
	require.ErrorIs(t, err, ErrInvalidUpgrade)

	next, money, err := Purchase(state, 100, "grinder_2")
	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, state, next, "no partial purchase")
	assert.InDelta(t, 100, money, 1e-9)
}

func TestTotalEffects(t *testing.T) {
	state := StarterState()
	assert.Zero(t, TotalEffects(state), "starter gear grants no bonuses")

	state.Owned[CategoryEspressoMachine] = 3
	state.Owned[CategoryGrinder] = 2

	effects := TotalEffects(state)
	assert.InDelta(t, 6, effects.QualityBonus, 1e-9)
	assert.InDelta(t, 4, effects.GrindBonus, 1e-9)
	assert.InDelta(t, 0.3, effects.Consistency, 1e-9)
	assert.True(t, effects.TripleBrewing)
	assert.False(t, effects.BrewTimeReduction > 0)
}

func TestBonusesFeedScoring(t *testing.T) {
	state := StarterState()
	state.Owned[CategoryMilkSteamer] = 3
	state.Owned[CategoryBrewingStation] = 2

	bonuses := Bonuses(state)
	assert.InDelta(t, 1, bonuses.Quality, 1e-9)
	assert.InDelta(t, 8, bonuses.Milk, 1e-9)
	assert.InDelta(t, 3, bonuses.Temperature, 1e-9)
	assert.Zero(t, bonuses.Grind)
}
