// Package scoring converts brewing parameters into 0-100 quality scores.
// Every function is deterministic and side-effect free: the same inputs
// always produce the same result, so callers can treat the engine as an
// oracle for replay, testing and UI preview.
package scoring

import (
	"errors"
	"fmt"
	"math"
)

const (
	// PerfectScore is awarded at zero deviation from the ideal.
	PerfectScore = 100.0
	// MinToleranceScore is the score at the edge of the tolerance band.
	MinToleranceScore = 75.0
	// ExcessPenaltyRate is subtracted per unit of deviation beyond the band.
	ExcessPenaltyRate = 15.0
)

// Grind distance scores, by absolute ordinal distance on the grind scale.
const (
	GrindPerfect = 100.0
	GrindOneOff  = 85.0
	GrindTwoOff  = 60.0
	GrindWayOff  = 25.0
)

var (
	ErrUnknownDrink = errors.New("unknown drink type")
	ErrUnknownGrind = errors.New("unknown grind size")
)

// GrindSize is one step on the fixed ordinal grind scale.
type GrindSize string

const (
	GrindCoarse       GrindSize = "coarse"
	GrindMediumCoarse GrindSize = "medium-coarse"
	GrindMedium       GrindSize = "medium"
	GrindMediumFine   GrindSize = "medium-fine"
	GrindFine         GrindSize = "fine"
)

var grindOrder = []GrindSize{
	GrindCoarse,
	GrindMediumCoarse,
	GrindMedium,
	GrindMediumFine,
	GrindFine,
}

var grindOrdinals = map[GrindSize]int{
	GrindCoarse:       1,
	GrindMediumCoarse: 2,
	GrindMedium:       3,
	GrindMediumFine:   4,
	GrindFine:         5,
}

// DrinkType identifies a brewable drink.
type DrinkType string

const (
	DrinkEspresso   DrinkType = "espresso"
	DrinkLatte      DrinkType = "latte"
	DrinkCappuccino DrinkType = "cappuccino"
	DrinkPourOver   DrinkType = "pour_over"
	DrinkAeropress  DrinkType = "aeropress"
	DrinkMocha      DrinkType = "mocha"
	DrinkAmericano  DrinkType = "americano"
	DrinkMatcha     DrinkType = "matcha"
)

// Component names a scored brewing dimension.
type Component string

const (
	ComponentTemperature Component = "temperature"
	ComponentTiming      Component = "timing"
	ComponentGrind       Component = "grind"
	ComponentRatio       Component = "ratio"
	ComponentMilk        Component = "milk"
)

// BrewParameters captures what the player actually achieved for one brew
// attempt. Fields a drink's profile does not score are ignored.
type BrewParameters struct {
	Drink     DrinkType `json:"drink"`
	WaterTemp float64   `json:"water_temp"` // degrees C at brew start
	BrewTime  float64   `json:"brew_time"`  // seconds
	Grind     GrindSize `json:"grind"`
	Ratio     float64   `json:"ratio"`     // yield to dose, e.g. 2.0 for espresso
	Milk      string    `json:"milk"`      // milk type poured, "" for none
	MilkTemp  float64   `json:"milk_temp"` // degrees C after steaming
}

// Target is an ideal value with a forgiving band around it.
type Target struct {
	Ideal     float64 `json:"ideal"`
	Tolerance float64 `json:"tolerance"`
}

// DrinkProfile holds the ideals, tolerances and component weights for one
// drink type. Profiles are configuration data, not engine logic: the engine
// scores whatever profile it is handed, so game balance changes never touch
// the scoring math.
type DrinkProfile struct {
	Drink       DrinkType
	Temperature Target
	Time        Target
	Ratio       Target // ignored unless the profile weights ComponentRatio
	IdealGrind  GrindSize
	UsesMilk    bool
	MilkTemp    Target
	Weights     map[Component]float64
}

// Bonuses are additive equipment adjustments applied per component before
// aggregation. Quality lifts every component; the rest map to their
// namesake dimension.
type Bonuses struct {
	Quality     float64 `json:"quality"`
	Grind       float64 `json:"grind"`
	Milk        float64 `json:"milk"`
	Temperature float64 `json:"temperature"`
}

// QualityResult is the scored outcome of a single brew attempt.
type QualityResult struct {
	Total      float64               `json:"total"`
	Components map[Component]float64 `json:"components"`
}

// ToleranceScore models any continuous brewing parameter as a two-slope
// function of deviation from the ideal. Inside the tolerance band the score
// falls linearly from PerfectScore at zero deviation to MinToleranceScore
// at the band edge; past the edge it falls by ExcessPenaltyRate per unit of
// excess, floored at zero. Overshoot and undershoot are penalized
// identically.
func ToleranceScore(actual, ideal, tolerance float64) float64 {
	deviation := math.Abs(actual - ideal)
	if deviation == 0 {
		return PerfectScore
	}
	if deviation <= tolerance {
		return PerfectScore - (deviation/tolerance)*(PerfectScore-MinToleranceScore)
	}
	return math.Max(0, MinToleranceScore-(deviation-tolerance)*ExcessPenaltyRate)
}

// ScoreGrindSize scores a grind choice by its absolute ordinal distance
// from the ideal. The mapping is symmetric: swapping actual and ideal
// yields the same score. Unknown grind names are an error, never a default.
func ScoreGrindSize(actual, ideal GrindSize) (float64, error) {
	a, ok := grindOrdinals[actual]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownGrind, string(actual))
	}
	b, ok := grindOrdinals[ideal]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownGrind, string(ideal))
	}

	switch distance := abs(a - b); distance {
	case 0:
		return GrindPerfect, nil
	case 1:
		return GrindOneOff, nil
	case 2:
		return GrindTwoOff, nil
	default:
		return GrindWayOff, nil
	}
}

// ScoreBrew scores one brew attempt against a drink profile. Each weighted
// component is scored by its primitive, lifted by the matching equipment
// bonus (capped at 100), then folded into a weighted mean. The total is
// clamped to [0, 100] and independent of component iteration order.
func ScoreBrew(params BrewParameters, profile DrinkProfile, bonuses Bonuses) (QualityResult, error) {
	if len(profile.Weights) == 0 {
		return QualityResult{}, fmt.Errorf("drink profile %q has no scored components", string(profile.Drink))
	}

	components := make(map[Component]float64, len(profile.Weights))
	var weightedSum, totalWeight float64

	for component, weight := range profile.Weights {
		if weight <= 0 {
			continue
		}

		var score float64
		switch component {
		case ComponentTemperature:
			score = ToleranceScore(params.WaterTemp, profile.Temperature.Ideal, profile.Temperature.Tolerance)
			score += bonuses.Temperature
		case ComponentTiming:
			score = ToleranceScore(params.BrewTime, profile.Time.Ideal, profile.Time.Tolerance)
		case ComponentGrind:
			grindScore, err := ScoreGrindSize(params.Grind, profile.IdealGrind)
			if err != nil {
				return QualityResult{}, err
			}
			score = grindScore + bonuses.Grind
		case ComponentRatio:
			score = ToleranceScore(params.Ratio, profile.Ratio.Ideal, profile.Ratio.Tolerance)
		case ComponentMilk:
			if !profile.UsesMilk {
				continue
			}
			score = ToleranceScore(params.MilkTemp, profile.MilkTemp.Ideal, profile.MilkTemp.Tolerance)
			score += bonuses.Milk
		default:
			return QualityResult{}, fmt.Errorf("drink profile %q weights unknown component %q", string(profile.Drink), string(component))
		}

		score = math.Min(PerfectScore, score+bonuses.Quality)
		components[component] = score
		weightedSum += score * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return QualityResult{}, fmt.Errorf("drink profile %q has no scored components", string(profile.Drink))
	}

	total := weightedSum / totalWeight
	return QualityResult{
		Total:      math.Max(0, math.Min(PerfectScore, total)),
		Components: components,
	}, nil
}

// ProfileFor returns the default profile for a drink type, failing fast on
// drinks the engine does not know.
func ProfileFor(drink DrinkType) (DrinkProfile, error) {
	profile, ok := DefaultProfiles[drink]
	if !ok {
		return DrinkProfile{}, fmt.Errorf("%w: %q", ErrUnknownDrink, string(drink))
	}
	return profile, nil
}

// DrinkTypes lists every drink with a default profile, in menu order.
func DrinkTypes() []DrinkType {
	return append([]DrinkType(nil), profileOrder...)
}

// GrindSizes lists the grind scale from coarsest to finest.
func GrindSizes() []GrindSize {
	return append([]GrindSize(nil), grindOrder...)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
