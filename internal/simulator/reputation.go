package simulator

import (
	"math"
	"time"
)

// RatingWindow weights a slice of recent history when computing cafe
// reputation. Short windows carry more weight so the last day or two
// dominate, but a window only counts once enough visits sit inside it.
type RatingWindow struct {
	Duration  time.Duration
	Weight    float64
	MinVisits int
}

var RatingWindows = []RatingWindow{
	{Duration: 24 * time.Hour, Weight: 0.5, MinVisits: 3},      // today
	{Duration: 3 * 24 * time.Hour, Weight: 0.3, MinVisits: 5},  // last few days
	{Duration: 7 * 24 * time.Hour, Weight: 0.2, MinVisits: 10}, // last week
}

// ratedVisit is one serve kept for the rolling reputation calculation.
type ratedVisit struct {
	Satisfaction float64
	At           time.Time
}

// recordRating appends a serve to the rolling history and prunes
// anything older than the longest window.
func (s *Simulator) recordRating(satisfaction float64) {
	s.RatingHistory = append(s.RatingHistory, ratedVisit{Satisfaction: satisfaction, At: s.CurrentTime})

	cutoff := s.CurrentTime.Add(-RatingWindows[len(RatingWindows)-1].Duration)
	trimmed := s.RatingHistory[:0]
	for _, v := range s.RatingHistory {
		if v.At.After(cutoff) {
			trimmed = append(trimmed, v)
		}
	}
	s.RatingHistory = trimmed
}

// updateReputation recomputes the 0-5 reputation from time-weighted
// window averages plus a consistency bonus and the current trend. With
// too little history the reputation stays where it is.
func (s *Simulator) updateReputation() {
	var weightedSum, totalWeight float64

	for _, window := range RatingWindows {
		ratings := s.ratingsWithin(window.Duration)
		if len(ratings) < window.MinVisits {
			continue
		}
		weightedSum += mean(ratings) * window.Weight
		totalWeight += window.Weight
	}

	if totalWeight == 0 {
		return
	}

	reputation := weightedSum / totalWeight

	recent := s.ratingsWithin(RatingWindows[len(RatingWindows)-1].Duration)
	reputation += consistencyBonus(recent)
	reputation += trendBonus(recent)

	// ensure reputation stays within bounds
	s.Reputation = math.Max(0, math.Min(5.0, reputation))
}

func (s *Simulator) ratingsWithin(window time.Duration) []float64 {
	cutoff := s.CurrentTime.Add(-window)
	var ratings []float64
	for _, v := range s.RatingHistory {
		if v.At.After(cutoff) {
			ratings = append(ratings, v.Satisfaction)
		}
	}
	return ratings
}

// consistencyBonus rewards a steady hand. Customers enjoy knowing what
// they'll get more than they forgive a rough day.
func consistencyBonus(ratings []float64) float64 {
	if len(ratings) < 5 {
		return 0
	}

	sd := stddev(ratings)
	switch {
	case sd < 0.4:
		return 0.2
	case sd < 0.7:
		return 0.1
	case sd > 1.2:
		return -0.2
	default:
		return 0
	}
}

// trendBonus nudges reputation in the direction things are moving,
// comparing the newer half of recent ratings against the older half.
func trendBonus(ratings []float64) float64 {
	if len(ratings) < 6 {
		return 0
	}

	mid := len(ratings) / 2
	diff := mean(ratings[mid:]) - mean(ratings[:mid])
	return math.Max(-0.15, math.Min(0.15, diff*0.3))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
