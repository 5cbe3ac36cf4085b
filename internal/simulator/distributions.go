package simulator

import (
	"math"
)

// satisfactionCurve maps brew quality bands to the mean 0-5 satisfaction
// a customer reports before personal noise is applied.
var satisfactionCurve = []struct {
	MinQuality float64
	Mean       float64
}{
	{95, 4.9},
	{90, 4.6},
	{80, 4.2},
	{70, 3.7},
	{60, 3.1},
	{45, 2.4},
	{25, 1.6},
	{0, 0.8},
}

func satisfactionMean(quality float64) float64 {
	for _, band := range satisfactionCurve {
		if quality >= band.MinQuality {
			return band.Mean
		}
	}
	return satisfactionCurve[len(satisfactionCurve)-1].Mean
}

func (s *Simulator) generateNormalizedRating(mean, std, min, max float64) float64 {
	// Box-Muller transform for normal distribution
	u1 := s.Rng.Float64()
	u2 := s.Rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

	// scale and shift to desired mean and std
	rating := mean + z*std

	// clamp to allowed range
	return math.Max(min, math.Min(max, rating))
}

// generateSatisfaction turns a brew quality score into a 0-5 rating.
// Leniency shifts the mean up for customers with history; even regulars
// notice a bad pull, they just grumble less about it.
func (s *Simulator) generateSatisfaction(quality, leniency float64) float64 {
	mean := satisfactionMean(quality) + leniency
	return s.generateNormalizedRating(mean, 0.3, 0, 5)
}

// brewDeviation returns how far one dial lands from its ideal. Better
// skill and more consistent equipment tighten the spread.
func (s *Simulator) brewDeviation(tolerance, consistency float64) float64 {
	spread := tolerance * (1.4 - s.Config.BrewSkill) * s.Config.BrewVariability * (1 - consistency)
	if spread <= 0 {
		return 0
	}
	return s.generateNormalizedRating(0, spread, -3*tolerance, 3*tolerance)
}

// grindSlipChance is the probability the barista dials a neighbouring
// grind setting instead of the ideal one.
func (s *Simulator) grindSlipChance(consistency float64) float64 {
	chance := 0.3 * (1 - s.Config.BrewSkill) * s.Config.BrewVariability * (1 - consistency)
	return math.Max(0, math.Min(0.9, chance))
}
