package simulator

import (
	"fmt"
	"strings"
	"time"

	"github.com/chrisdamba/cafesim/internal/memory"
	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/chrisdamba/cafesim/internal/pricing"
	"github.com/lucsky/cuid"
)

// commentChance is the probability a customer says something out loud on
// their way out, by mood. Unhappy customers are the most vocal.
var commentChance = map[string]float64{
	models.MoodDelighted:    0.5,
	models.MoodPleased:      0.25,
	models.MoodNeutral:      0.1,
	models.MoodDisappointed: 0.6,
}

// tipMoodMultipliers scale a customer's base generosity by how the visit
// went.
var tipMoodMultipliers = map[string]float64{
	models.MoodDelighted:    1.5,
	models.MoodPleased:      1.0,
	models.MoodNeutral:      0.5,
	models.MoodDisappointed: 0.0,
}

func (s *Simulator) shouldCustomerArrive(customer *models.Customer) bool {
	probability := calculateArrivalProbability(customer, s.CurrentTime, s.Config)
	return s.Rng.Float64() < probability
}

func (s *Simulator) getCustomer(customerID string) *models.Customer {
	for _, customer := range s.Customers {
		if customer.ID == customerID {
			return customer
		}
	}
	return nil
}

// relationshipLeniency is the satisfaction cushion a customer's history
// with the cafe earns them.
func relationshipLeniency(level memory.RelationshipLevel) float64 {
	switch level {
	case memory.LevelFavorite:
		return 0.25
	case memory.LevelRegular:
		return 0.15
	case memory.LevelFamiliar:
		return 0.05
	default:
		return 0
	}
}

func (s *Simulator) calculateTip(customer *models.Customer, total float64, mood string) float64 {
	multiplier := tipMoodMultipliers[mood]
	if multiplier == 0 {
		return 0
	}
	tip := total * customer.TipGenerosity * multiplier
	return pricing.Round2(tip)
}

// generateComment picks a line matching the customer's mood, preferring
// configured comment data over the built-in templates.
func (s *Simulator) generateComment(mood, drink string) (string, bool) {
	liked := mood == models.MoodDelighted || mood == models.MoodPleased
	if len(s.Config.CommentData) > 0 {
		matching := make([]models.CommentData, 0, len(s.Config.CommentData))
		for _, cd := range s.Config.CommentData {
			if cd.Liked == liked {
				matching = append(matching, cd)
			}
		}
		if len(matching) > 0 {
			return matching[s.Rng.Intn(len(matching))].Comment, liked
		}
	}

	pattern := commentTemplates[mood]
	if len(pattern.Templates) == 0 {
		return "", liked
	}
	return fillCommentTemplate(pattern.Templates[s.Rng.Intn(len(pattern.Templates))], drink), pattern.Liked
}

func (s *Simulator) shouldComment(mood string) bool {
	return s.Rng.Float64() < commentChance[mood]
}

// describeOrder builds a single human-readable line for a whole order.
func describeOrder(items []pricing.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		label := pricing.DescribeOrderItem(item)
		if item.Quantity > 1 {
			label = fmt.Sprintf("%dx %s", item.Quantity, label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, ", ")
}

// firstDrink returns the SKU of the first drink on the order, which
// anchors comments and favorite-drink tracking.
func firstDrink(items []pricing.OrderItem) string {
	for _, item := range items {
		if item.Kind != pricing.ItemFood {
			return item.SKU
		}
	}
	return ""
}

func countDrinks(items []pricing.OrderItem) int {
	count := 0
	for _, item := range items {
		if item.Kind != pricing.ItemFood {
			count += item.Quantity
		}
	}
	return count
}

func isPeakHour(t time.Time) bool {
	hour := t.Hour()
	return (hour >= 7 && hour <= 9) || (hour >= 12 && hour <= 13)
}

func isWeekend(t time.Time) bool {
	day := t.Weekday()
	return day == time.Saturday || day == time.Sunday
}

func (s *Simulator) isOpen(t time.Time) bool {
	hour := t.Hour()
	return hour >= s.Config.OpeningHour && hour < s.Config.ClosingHour
}

func generateID() string {
	return cuid.New()
}
