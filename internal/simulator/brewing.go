package simulator

import (
	"fmt"

	"github.com/chrisdamba/cafesim/internal/equipment"
	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/chrisdamba/cafesim/internal/pricing"
	"github.com/chrisdamba/cafesim/internal/scoring"
)

// baseBrewSeconds is how long each drink holds the bar before equipment
// speedups.
var baseBrewSeconds = map[scoring.DrinkType]float64{
	scoring.DrinkEspresso:   90,
	scoring.DrinkAmericano:  120,
	scoring.DrinkLatte:      180,
	scoring.DrinkCappuccino: 180,
	scoring.DrinkMocha:      210,
	scoring.DrinkPourOver:   270,
	scoring.DrinkAeropress:  210,
	scoring.DrinkMatcha:     150,
}

// brewOrder pulls every drink on the order and returns the brews in
// order. Food items skip the machines.
func (s *Simulator) brewOrder(order *models.Order) ([]models.Brew, error) {
	drinks := countDrinks(order.Items)
	var brews []models.Brew
	for _, item := range order.Items {
		if item.Kind == pricing.ItemFood {
			continue
		}
		for i := 0; i < item.Quantity; i++ {
			brew, err := s.brewDrink(order.ID, item, drinks)
			if err != nil {
				return nil, err
			}
			brews = append(brews, brew)
		}
	}
	return brews, nil
}

// brewDrink runs one drink through the machines: the barista dials in
// each parameter with some hand wobble, the equipment adds its bonuses
// and the scoring engine grades the result.
func (s *Simulator) brewDrink(orderID string, item pricing.OrderItem, drinksInOrder int) (models.Brew, error) {
	profile, err := scoring.ProfileFor(scoring.DrinkType(item.SKU))
	if err != nil {
		return models.Brew{}, fmt.Errorf("cannot brew %q: %w", item.SKU, err)
	}

	effects := equipment.TotalEffects(s.Equipment)
	params := s.generateBrewParameters(item, profile, effects)

	result, err := scoring.ScoreBrew(params, profile, equipment.Bonuses(s.Equipment))
	if err != nil {
		return models.Brew{}, err
	}

	return models.Brew{
		OrderID:  orderID,
		Drink:    item.SKU,
		Params:   params,
		Result:   result,
		Duration: s.brewDuration(profile.Drink, effects, drinksInOrder),
	}, nil
}

func (s *Simulator) generateBrewParameters(item pricing.OrderItem, profile scoring.DrinkProfile, effects equipment.Effects) scoring.BrewParameters {
	params := scoring.BrewParameters{
		Drink:     profile.Drink,
		WaterTemp: profile.Temperature.Ideal + s.brewDeviation(profile.Temperature.Tolerance, effects.Consistency),
		BrewTime:  profile.Time.Ideal + s.brewDeviation(profile.Time.Tolerance, effects.Consistency),
	}

	if _, scored := profile.Weights[scoring.ComponentRatio]; scored {
		params.Ratio = profile.Ratio.Ideal + s.brewDeviation(profile.Ratio.Tolerance, effects.Consistency)
	}
	if _, scored := profile.Weights[scoring.ComponentGrind]; scored {
		params.Grind = s.dialGrind(profile.IdealGrind, effects)
	}
	if profile.UsesMilk {
		params.Milk = item.Modifiers.Milk
		if params.Milk == "" {
			params.Milk = "whole"
		}
		params.MilkTemp = profile.MilkTemp.Ideal + s.brewDeviation(profile.MilkTemp.Tolerance, effects.Consistency)
	}

	return params
}

// dialGrind starts from the ideal setting and occasionally slips a
// notch, rarely two.
func (s *Simulator) dialGrind(ideal scoring.GrindSize, effects equipment.Effects) scoring.GrindSize {
	if s.Rng.Float64() >= s.grindSlipChance(effects.Consistency) {
		return ideal
	}

	scale := scoring.GrindSizes()
	index := 0
	for i, g := range scale {
		if g == ideal {
			index = i
			break
		}
	}

	step := 1
	if s.Rng.Float64() < 0.25 {
		step = 2
	}
	if s.Rng.Float64() < 0.5 {
		step = -step
	}

	index += step
	if index < 0 {
		index = 0
	}
	if index >= len(scale) {
		index = len(scale) - 1
	}
	return scale[index]
}

// brewDuration estimates seconds at the bar for one drink. Faster
// stations shave time off, and a dual or triple boiler helps when
// several drinks stack up on one order.
func (s *Simulator) brewDuration(drink scoring.DrinkType, effects equipment.Effects, drinksInOrder int) float64 {
	base, ok := baseBrewSeconds[drink]
	if !ok {
		base = 180
	}

	duration := base * (1 - effects.BrewTimeReduction)

	if drinksInOrder > 1 {
		if effects.TripleBrewing {
			duration *= 0.7
		} else if effects.DualBrewing {
			duration *= 0.85
		}
	}

	randomFactor := 1 + (s.Rng.Float64()-0.5)*0.1 // ±5% variation
	return duration * randomFactor
}

// orderQuality is the mean brew score across an order's drinks. Orders
// with no drinks (food only) default to a neutral 80.
func orderQuality(brews []models.Brew) float64 {
	if len(brews) == 0 {
		return 80
	}
	var total float64
	for _, brew := range brews {
		total += brew.Result.Total
	}
	return total / float64(len(brews))
}
