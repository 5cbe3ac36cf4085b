package memory

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func visit(drink, milk string, satisfaction, payment, tip float64) Visit {
	return Visit{Drink: drink, Milk: milk, Satisfaction: satisfaction, Payment: payment, Tip: tip}
}

func recordN(state *State, name string, n int, v Visit) *State {
	for i := 0; i < n; i++ {
		state = RecordVisit(state, name, v)
	}
	return state
}

func TestRecordVisitCreatesProfile(t *testing.T) {
	state := RecordVisit(NewState(), "Sarah", visit("latte", "oat", 4.2, 5.25, 1.00))

	profile, ok := state.Customers["Sarah"]
	require.True(t, ok)
	assert.Equal(t, "Sarah", profile.Name)
	assert.Equal(t, 1, profile.VisitCount)
	assert.Equal(t, LevelStranger, profile.RelationshipLevel)
	assert.Equal(t, []string{"Sarah"}, state.Names)
	assert.Equal(t, 1, state.TotalCustomersServed)
	assert.InDelta(t, 6.25, profile.TotalSpent, 1e-9)
	assert.InDelta(t, 4.2, profile.AverageSatisfaction, 1e-9)
}

func TestRecordVisitCountsEveryCall(t *testing.T) {
	state := recordN(NewState(), "Ben", 7, visit("espresso", "", 4, 3, 0))
	assert.Equal(t, 7, state.Customers["Ben"].VisitCount)
	assert.Equal(t, 7, state.TotalCustomersServed)
}

func TestRecordVisitNeverMutatesArgument(t *testing.T) {
	before := RecordVisit(NewState(), "Sarah", visit("latte", "", 4, 4.5, 0))
	after := RecordVisit(before, "Sarah", visit("mocha", "", 5, 5, 1))

	assert.Equal(t, 1, before.Customers["Sarah"].VisitCount)
	assert.Equal(t, 1, before.TotalCustomersServed)
	assert.Len(t, before.Customers["Sarah"].Visits, 1)

	assert.Equal(t, 2, after.Customers["Sarah"].VisitCount)
	assert.Equal(t, 2, after.TotalCustomersServed)
}

func TestRelationshipLevelTransitions(t *testing.T) {
	tests := []struct {
		visits int
		want   RelationshipLevel
	}{
		{1, LevelStranger},
		{2, LevelNewcomer},
		{3, LevelNewcomer},
		{4, LevelFamiliar},
		{8, LevelFamiliar},
		{9, LevelRegular},
		{15, LevelRegular},
		{16, LevelFavorite},
		{40, LevelFavorite},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d visits", tt.visits), func(t *testing.T) {
			state := recordN(NewState(), "Ana", tt.visits, visit("latte", "", 4, 4.5, 0))
			assert.Equal(t, tt.want, state.Customers["Ana"].RelationshipLevel)
		})
	}
}

func TestTotalCustomersServedSumsVisitCounts(t *testing.T) {
	state := NewState()
	state = recordN(state, "A", 3, visit("latte", "", 4, 4.5, 0))
	state = recordN(state, "B", 2, visit("mocha", "", 4, 5, 0))
	state = recordN(state, "C", 1, visit("espresso", "", 4, 3, 0))

	sum := 0
	for _, profile := range state.Customers {
		sum += profile.VisitCount
	}
	assert.Equal(t, sum, state.TotalCustomersServed)
	assert.Equal(t, 6, state.TotalCustomersServed)
}

func TestFavoriteDrinkFirstOrderWinsTies(t *testing.T) {
	state := NewState()
	state = RecordVisit(state, "Kai", visit("cappuccino", "", 4, 4.25, 0))
	state = RecordVisit(state, "Kai", visit("latte", "", 4, 4.5, 0))
	state = RecordVisit(state, "Kai", visit("latte", "", 4, 4.5, 0))
	state = RecordVisit(state, "Kai", visit("cappuccino", "", 4, 4.25, 0))

	// 2-2 tie, cappuccino was seen first
	assert.Equal(t, "cappuccino", FavoriteDrink(state.Customers["Kai"]))

	state = RecordVisit(state, "Kai", visit("latte", "", 4, 4.5, 0))
	assert.Equal(t, "latte", FavoriteDrink(state.Customers["Kai"]))
}

func TestPreferredMilk(t *testing.T) {
	state := NewState()
	state = RecordVisit(state, "Mia", visit("latte", "oat", 4, 5.25, 0))
	state = RecordVisit(state, "Mia", visit("latte", "", 4, 4.5, 0)) // no milk recorded
	state = RecordVisit(state, "Mia", visit("latte", "almond", 4, 5.25, 0))
	state = RecordVisit(state, "Mia", visit("latte", "almond", 4, 5.25, 0))

	assert.Equal(t, "almond", state.Customers["Mia"].PreferredMilk)
}

func TestPreferredMilkFirstSeenWinsTies(t *testing.T) {
	state := NewState()
	state = RecordVisit(state, "Mia", visit("latte", "oat", 4, 5.25, 0))
	state = RecordVisit(state, "Mia", visit("latte", "almond", 4, 5.25, 0))

	assert.Equal(t, "oat", state.Customers["Mia"].PreferredMilk)
}

func TestAllergensAreSticky(t *testing.T) {
	state := NewState()
	state = RecordVisit(state, "Noa", Visit{Drink: "latte", Allergens: []string{"nuts"}})
	state = RecordVisit(state, "Noa", Visit{Drink: "latte"})
	state = RecordVisit(state, "Noa", Visit{Drink: "latte", Allergens: []string{"soy", "nuts"}})

	assert.Equal(t, []string{"nuts", "soy"}, state.Customers["Noa"].Allergens)
}

func TestTotalSpentAddsPaymentAndTip(t *testing.T) {
	state := NewState()
	state = RecordVisit(state, "Leo", visit("mocha", "", 4, 5.40, 1.10))
	state = RecordVisit(state, "Leo", visit("mocha", "", 4, 5.40, 0))

	assert.InDelta(t, 11.90, state.Customers["Leo"].TotalSpent, 1e-9)
}

func TestAverageSatisfactionIsRunningMean(t *testing.T) {
	state := NewState()
	state = RecordVisit(state, "Ada", visit("latte", "", 5, 4.5, 0))
	state = RecordVisit(state, "Ada", visit("latte", "", 3, 4.5, 0))
	state = RecordVisit(state, "Ada", visit("latte", "", 4, 4.5, 0))

	assert.InDelta(t, 4.0, state.Customers["Ada"].AverageSatisfaction, 1e-9)
}

func TestAddNote(t *testing.T) {
	state := RecordVisit(NewState(), "Sarah", visit("latte", "", 4, 4.5, 0))

	noted := AddNote(state, "Sarah", "asked about the house blend")
	require.NotSame(t, state, noted)
	assert.Equal(t, []string{"asked about the house blend"}, noted.Customers["Sarah"].Notes)
	assert.Empty(t, state.Customers["Sarah"].Notes, "original stays untouched")
}

func TestAddNoteUnknownCustomerIsNoOp(t *testing.T) {
	state := RecordVisit(NewState(), "Sarah", visit("latte", "", 4, 4.5, 0))

	same := AddNote(state, "Nobody", "should not stick")
	assert.Same(t, state, same)
}

func TestIsReturningCustomer(t *testing.T) {
	state := RecordVisit(NewState(), "Sarah", visit("latte", "", 4, 4.5, 0))

	assert.True(t, IsReturningCustomer(state, "Sarah"))
	assert.False(t, IsReturningCustomer(state, "Nobody"))
}

func TestReturningRate(t *testing.T) {
	state := NewState()
	assert.Zero(t, ReturningRate(state))

	state = recordN(state, "A", 2, visit("latte", "", 4, 4.5, 0))
	state = recordN(state, "B", 1, visit("mocha", "", 4, 5, 0))

	assert.InDelta(t, 50, ReturningRate(state), 1e-9)
}

func TestRegularCustomersOrdering(t *testing.T) {
	state := NewState()
	state = recordN(state, "Casual", 3, visit("latte", "", 4, 4.5, 0))
	state = recordN(state, "Regular", 10, visit("latte", "", 4, 4.5, 0))
	state = recordN(state, "Favorite", 20, visit("latte", "", 4, 4.5, 0))
	state = recordN(state, "AnotherRegular", 10, visit("latte", "", 4, 4.5, 0))

	regulars := RegularCustomers(state)
	require.Len(t, regulars, 3)
	assert.Equal(t, "Favorite", regulars[0].Name)
	assert.Equal(t, "Regular", regulars[1].Name) // seen before AnotherRegular
	assert.Equal(t, "AnotherRegular", regulars[2].Name)
}

func TestCustomerInsights(t *testing.T) {
	state := RecordVisit(NewState(), "Sarah", visit("latte", "", 4.8, 4.5, 0))
	insights := CustomerInsights(state.Customers["Sarah"])
	assert.Contains(t, insights, "Sarah is a new face.")
	assert.Contains(t, insights, "This is their first visit.")
	assert.Contains(t, insights, "A very satisfied customer.")

	state = recordN(state, "Sarah", 9, Visit{Drink: "latte", Milk: "oat", Satisfaction: 4, Allergens: []string{"nuts"}})
	insights = CustomerInsights(state.Customers["Sarah"])
	assert.Contains(t, insights, "Sarah is a regular.")
	assert.Contains(t, insights, "They usually order latte.")
	assert.Contains(t, insights, "Prefers oat milk.")
	assert.Contains(t, insights, "Allergic to nuts.")
	assert.NotContains(t, insights, "first visit")
}

func TestMemoryStats(t *testing.T) {
	state := NewState()
	state = recordN(state, "Fav", 16, visit("latte", "", 5, 4.5, 0.5))
	state = recordN(state, "Reg", 9, visit("mocha", "", 4, 5, 0))
	state = recordN(state, "Once", 1, visit("espresso", "", 3, 3, 0))

	stats := MemoryStats(state)
	assert.Equal(t, 3, stats.TotalCustomers)
	assert.Equal(t, 2, stats.ReturningCustomers)
	assert.Equal(t, 1, stats.RegularCustomers)
	assert.Equal(t, 1, stats.FavoriteCustomers)
	assert.InDelta(t, 16*5.0+9*5.0+3.0, stats.TotalRevenue, 1e-9)
	assert.InDelta(t, 4.0, stats.AverageSatisfaction, 1e-9)
}

func TestStateSurvivesSerialization(t *testing.T) {
	state := NewState()
	state = RecordVisit(state, "Kai", visit("cappuccino", "oat", 4, 4.25, 0))
	state = RecordVisit(state, "Kai", visit("latte", "almond", 4, 4.5, 0))
	state = RecordVisit(state, "Ana", visit("mocha", "", 5, 5, 1))

	raw, err := json.Marshal(state)
	require.NoError(t, err)

	restored := NewState()
	require.NoError(t, json.Unmarshal(raw, restored))

	assert.Equal(t, state.Names, restored.Names)
	assert.Equal(t, state.TotalCustomersServed, restored.TotalCustomersServed)

	// tie-break order must survive the round-trip
	assert.Equal(t, "cappuccino", FavoriteDrink(restored.Customers["Kai"]))
	assert.Equal(t, "oat", restored.Customers["Kai"].PreferredMilk)
}
