package factories

import (
	"math/rand"
	"time"

	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/chrisdamba/cafesim/internal/pricing"
)

var drinkPopularity = map[string]float64{
	"latte":      0.26,
	"espresso":   0.12,
	"americano":  0.14,
	"cappuccino": 0.16,
	"mocha":      0.10,
	"pour_over":  0.08,
	"aeropress":  0.05,
	"matcha":     0.09,
}

var foodPopularity = map[string]float64{
	"croissant": 0.30,
	"muffin":    0.20,
	"bagel":     0.15,
	"scone":     0.10,
	"cookie":    0.15,
	"sandwich":  0.10,
}

var syrupPool = []string{"vanilla", "caramel", "hazelnut", "lavender"}

// milkDrinks take the customer's preferred milk by default.
var milkDrinks = map[string]bool{
	"latte":      true,
	"cappuccino": true,
	"mocha":      true,
	"matcha":     true,
}

// warmable food is usually asked for warm.
var warmable = map[string]bool{
	"croissant": true,
	"sandwich":  true,
}

type OrderFactory struct {
	Rng *rand.Rand
}

func NewOrderFactory(rng *rand.Rand) *OrderFactory {
	return &OrderFactory{Rng: rng}
}

// CreateOrder composes the items one customer asks for on one visit.
// Regulars lean on their favorite drink; time of day sways iced, decaf
// and extra-shot choices.
func (of *OrderFactory) CreateOrder(customer *models.Customer, config *models.Config, currentTime time.Time) []pricing.OrderItem {
	drink := of.pickDrink(customer)
	items := []pricing.OrderItem{{
		Kind:      pricing.ItemDrink,
		SKU:       drink,
		Quantity:  1,
		Modifiers: of.pickModifiers(customer, drink, config, currentTime),
	}}

	// one more drink for a friend, now and then
	if of.Rng.Float64() < 0.07 {
		second := of.weightedSKU(drinkPopularity, pricing.DrinkSKUs())
		items = append(items, pricing.OrderItem{
			Kind:     pricing.ItemDrink,
			SKU:      second,
			Quantity: 1,
			Modifiers: pricing.DrinkModifiers{
				Size: of.pickSize(),
			},
		})
	}

	if of.Rng.Float64() < config.FoodAttachRate {
		food := of.weightedSKU(foodPopularity, pricing.FoodSKUs())
		items = append(items, pricing.OrderItem{
			Kind:     pricing.ItemFood,
			SKU:      food,
			Quantity: 1,
			Warm:     warmable[food] && of.Rng.Float64() < 0.7,
		})
	}

	return items
}

func (of *OrderFactory) pickDrink(customer *models.Customer) string {
	if customer.FavoriteDrink != "" && of.Rng.Float64() < 0.6 {
		if _, ok := drinkPopularity[customer.FavoriteDrink]; ok {
			return customer.FavoriteDrink
		}
	}
	return of.weightedSKU(drinkPopularity, pricing.DrinkSKUs())
}

func (of *OrderFactory) pickModifiers(customer *models.Customer, drink string, config *models.Config, currentTime time.Time) pricing.DrinkModifiers {
	hour := currentTime.Hour()
	mods := pricing.DrinkModifiers{Size: of.pickSize()}

	icedChance := 0.1
	if hour >= 12 {
		icedChance = 0.3
	}
	mods.Iced = of.Rng.Float64() < icedChance

	if milkDrinks[drink] {
		mods.Milk = customer.PreferredMilk
	} else if of.Rng.Float64() < 0.15 {
		mods.Milk = customer.PreferredMilk
	}

	syrupChance := config.ModifierRate * 0.3
	if customer.SweetTooth {
		syrupChance = 0.5
	}
	if of.Rng.Float64() < syrupChance {
		mods.Syrup = syrupPool[of.Rng.Intn(len(syrupPool))]
	}

	extraShotChance := 0.1
	if hour < 10 {
		extraShotChance = 0.25
	}
	mods.ExtraShot = of.Rng.Float64() < extraShotChance

	whippedChance := 0.0
	if drink == "mocha" {
		whippedChance = 0.4
	} else if customer.SweetTooth {
		whippedChance = 0.15
	}
	mods.WhippedCream = of.Rng.Float64() < whippedChance

	if customer.DecafOnly {
		mods.Decaf = true
	} else if hour >= 17 {
		mods.Decaf = of.Rng.Float64() < 0.15
	}

	return mods
}

func (of *OrderFactory) pickSize() pricing.Size {
	r := of.Rng.Float64()
	switch {
	case r < 0.20:
		return pricing.SizeSmall
	case r < 0.75:
		return pricing.SizeMedium
	default:
		return pricing.SizeLarge
	}
}

// weightedSKU draws one SKU using the popularity table; order comes from
// the menu listing so equal seeds give equal picks.
func (of *OrderFactory) weightedSKU(popularity map[string]float64, order []string) string {
	totalWeight := 0.0
	for _, sku := range order {
		totalWeight += popularity[sku]
	}

	r := of.Rng.Float64() * totalWeight
	currentSum := 0.0
	for _, sku := range order {
		currentSum += popularity[sku]
		if r <= currentSum {
			return sku
		}
	}
	return order[len(order)-1]
}
