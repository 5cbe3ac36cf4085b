package simulator

import (
	"math"
	"strings"
	"time"

	"github.com/chrisdamba/cafesim/internal/models"
)

// CommentPattern holds the template lines for one mood band
type CommentPattern struct {
	Liked     bool
	Templates []string
}

var (
	// hourlyTraffic maps hour of day to a multiplier on the base arrival
	// rate. The shape is a classic cafe day: a big morning rush, a lunch
	// bump, a quiet mid-afternoon and a slow fade towards close.
	hourlyTraffic = map[int]float64{
		6:  0.3,
		7:  1.6,
		8:  2.2,
		9:  1.8,
		10: 1.2,
		11: 1.0,
		12: 1.4,
		13: 1.3,
		14: 0.9,
		15: 0.8,
		16: 0.7,
		17: 0.9,
		18: 0.7,
		19: 0.5,
		20: 0.3,
		21: 0.2,
	}

	// weekdayTraffic gives each day of the week its own character.
	// Weekends are additionally scaled by the configured weekend factor.
	weekdayTraffic = map[time.Weekday]float64{
		time.Monday:    1.1,
		time.Tuesday:   1.0,
		time.Wednesday: 1.0,
		time.Thursday:  1.05,
		time.Friday:    1.15,
		time.Saturday:  0.9,
		time.Sunday:    0.8,
	}
)

var commentTemplates = map[string]CommentPattern{
	models.MoodDelighted: {
		Liked: true,
		Templates: []string{
			"This {drink} is perfect, exactly how I like it!",
			"Best {drink} I've had in ages.",
			"Wow, you really know how to make a {drink}.",
			"I'm telling everyone about this place.",
			"That {drink} made my whole morning.",
		},
	},
	models.MoodPleased: {
		Liked: true,
		Templates: []string{
			"Really nice {drink}, thanks!",
			"Good {drink} as always.",
			"That hits the spot.",
			"Solid {drink}, I'll be back.",
		},
	},
	models.MoodNeutral: {
		Liked: false,
		Templates: []string{
			"The {drink} was fine, I guess.",
			"Not bad, not great.",
			"It's drinkable.",
		},
	},
	models.MoodDisappointed: {
		Liked: false,
		Templates: []string{
			"This {drink} tastes off today.",
			"Hmm, not your best work.",
			"I've had better from a vending machine.",
			"Did something change? This isn't great.",
		},
	},
}

// hourMultiplier returns the traffic multiplier for an hour. Hours
// outside the table produce no arrivals.
func hourMultiplier(hour int) float64 {
	if m, ok := hourlyTraffic[hour]; ok {
		return m
	}
	return 0
}

// calculateArrivalProbability converts a customer's expected visits per
// day into a per-minute chance of walking in, shaped by the time of day
// and the day of the week.
func calculateArrivalProbability(customer *models.Customer, currentTime time.Time, config *models.Config) float64 {
	hourFactor := hourMultiplier(currentTime.Hour())
	if hourFactor == 0 {
		return 0
	}

	dayFactor := weekdayTraffic[currentTime.Weekday()]
	if isWeekend(currentTime) {
		dayFactor *= config.WeekendFactor
	}
	if isPeakHour(currentTime) {
		hourFactor *= config.PeakHourFactor
	}

	return customer.VisitFrequency * hourFactor * dayFactor / (24 * 60)
}

func calculateGrowthRate(baseRate float64, currentTime time.Time) float64 {
	dayOfYear := float64(currentTime.YearDay())
	seasonalFactor := math.Sin(2 * math.Pi * dayOfYear / 365.0)

	// cold months drive more first-timers in for a hot drink
	if currentTime.Month() <= time.March || currentTime.Month() >= time.October {
		seasonalFactor *= 1.4
	}

	// mondays bring new commuters trying the place out
	if currentTime.Weekday() == time.Monday {
		seasonalFactor *= 1.2
	}

	return baseRate + (seasonalFactor * 0.03)
}

// fillCommentTemplate substitutes the drink name into a comment line.
func fillCommentTemplate(template, drink string) string {
	return strings.ReplaceAll(template, "{drink}", strings.ReplaceAll(drink, "_", " "))
}
