package models

import (
	"time"

	"github.com/chrisdamba/cafesim/internal/pricing"
	"github.com/chrisdamba/cafesim/internal/scoring"
)

// Order is one customer's tab for a single visit.
type Order struct {
	ID           string              `json:"id"`
	CustomerID   string              `json:"customer_id"`
	CustomerName string              `json:"customer_name"`
	Items        []pricing.OrderItem `json:"items"`
	Quote        pricing.PriceQuote  `json:"quote"`
	Status       string              `json:"status"`
	PlacedAt     time.Time           `json:"placed_at"`
	ServedAt     time.Time           `json:"served_at"`
	Quality      float64             `json:"quality"`      // mean brew score across drinks
	Satisfaction float64             `json:"satisfaction"` // 0-5, set at serve time
	Tip          float64             `json:"tip"`
}

// Brew is one drink's trip through the machines.
type Brew struct {
	OrderID  string                 `json:"order_id"`
	Drink    string                 `json:"drink"`
	Params   scoring.BrewParameters `json:"params"`
	Result   scoring.QualityResult  `json:"result"`
	Duration float64                `json:"duration"` // seconds at the bar
}

// DaySummary totals one business day for reporting and reputation.
type DaySummary struct {
	Day             int     `json:"day"`
	CustomersServed int     `json:"customers_served"`
	DrinksServed    int     `json:"drinks_served"`
	Revenue         float64 `json:"revenue"`
	Tips            float64 `json:"tips"`
	AvgQuality      float64 `json:"avg_quality"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
	ReturningRate   float64 `json:"returning_rate"` // share of served visits from known faces
	ClosingMoney    float64 `json:"closing_money"`
	Reputation      float64 `json:"reputation"`
}
