package scoring

// profileOrder fixes the menu order of the built-in drinks.
var profileOrder = []DrinkType{
	DrinkEspresso,
	DrinkLatte,
	DrinkCappuccino,
	DrinkPourOver,
	DrinkAeropress,
	DrinkMocha,
	DrinkAmericano,
	DrinkMatcha,
}

// DefaultProfiles holds the shipped tuning for every drink. Which
// components a drink weighs decides which parameters matter for it:
// filter drinks carry no milk component, matcha carries neither grind
// nor ratio.
var DefaultProfiles = map[DrinkType]DrinkProfile{
	DrinkEspresso: {
		Drink:       DrinkEspresso,
		Temperature: Target{Ideal: 92, Tolerance: 2},
		Time:        Target{Ideal: 27, Tolerance: 3},
		Ratio:       Target{Ideal: 2.0, Tolerance: 0.25},
		IdealGrind:  GrindFine,
		Weights: map[Component]float64{
			ComponentTemperature: 0.3,
			ComponentTiming:      0.3,
			ComponentGrind:       0.3,
			ComponentRatio:       0.1,
		},
	},
	DrinkLatte: {
		Drink:       DrinkLatte,
		Temperature: Target{Ideal: 92, Tolerance: 2},
		Time:        Target{Ideal: 27, Tolerance: 3},
		Ratio:       Target{Ideal: 2.0, Tolerance: 0.25},
		IdealGrind:  GrindFine,
		UsesMilk:    true,
		MilkTemp:    Target{Ideal: 60, Tolerance: 5},
		Weights: map[Component]float64{
			ComponentTemperature: 0.25,
			ComponentTiming:      0.2,
			ComponentGrind:       0.2,
			ComponentRatio:       0.1,
			ComponentMilk:        0.25,
		},
	},
	DrinkCappuccino: {
		Drink:       DrinkCappuccino,
		Temperature: Target{Ideal: 92, Tolerance: 2},
		Time:        Target{Ideal: 27, Tolerance: 3},
		Ratio:       Target{Ideal: 2.0, Tolerance: 0.25},
		IdealGrind:  GrindFine,
		UsesMilk:    true,
		MilkTemp:    Target{Ideal: 65, Tolerance: 5},
		Weights: map[Component]float64{
			ComponentTemperature: 0.25,
			ComponentTiming:      0.2,
			ComponentGrind:       0.2,
			ComponentRatio:       0.1,
			ComponentMilk:        0.25,
		},
	},
	DrinkPourOver: {
		Drink:       DrinkPourOver,
		Temperature: Target{Ideal: 94, Tolerance: 2},
		Time:        Target{Ideal: 195, Tolerance: 45},
		IdealGrind:  GrindMedium,
		Weights: map[Component]float64{
			ComponentTemperature: 0.35,
			ComponentTiming:      0.35,
			ComponentGrind:       0.3,
		},
	},
	DrinkAeropress: {
		Drink:       DrinkAeropress,
		Temperature: Target{Ideal: 85, Tolerance: 5},
		Time:        Target{Ideal: 90, Tolerance: 30},
		IdealGrind:  GrindMediumFine,
		Weights: map[Component]float64{
			ComponentTemperature: 0.35,
			ComponentTiming:      0.35,
			ComponentGrind:       0.3,
		},
	},
	DrinkMocha: {
		Drink:       DrinkMocha,
		Temperature: Target{Ideal: 92, Tolerance: 2},
		Time:        Target{Ideal: 27, Tolerance: 3},
		Ratio:       Target{Ideal: 2.0, Tolerance: 0.25},
		IdealGrind:  GrindFine,
		UsesMilk:    true,
		MilkTemp:    Target{Ideal: 60, Tolerance: 5},
		Weights: map[Component]float64{
			ComponentTemperature: 0.25,
			ComponentTiming:      0.2,
			ComponentGrind:       0.2,
			ComponentRatio:       0.1,
			ComponentMilk:        0.25,
		},
	},
	DrinkAmericano: {
		Drink:       DrinkAmericano,
		Temperature: Target{Ideal: 92, Tolerance: 2},
		Time:        Target{Ideal: 27, Tolerance: 3},
		Ratio:       Target{Ideal: 2.0, Tolerance: 0.25},
		IdealGrind:  GrindFine,
		Weights: map[Component]float64{
			ComponentTemperature: 0.3,
			ComponentTiming:      0.3,
			ComponentGrind:       0.3,
			ComponentRatio:       0.1,
		},
	},
	DrinkMatcha: {
		Drink:       DrinkMatcha,
		Temperature: Target{Ideal: 75, Tolerance: 5},
		Time:        Target{Ideal: 60, Tolerance: 20},
		UsesMilk:    true,
		MilkTemp:    Target{Ideal: 60, Tolerance: 5},
		Weights: map[Component]float64{
			ComponentTemperature: 0.4,
			ComponentTiming:      0.3,
			ComponentMilk:        0.3,
		},
	},
}
