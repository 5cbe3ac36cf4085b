// Package pricing turns order items into priced quotes. All computation is
// pure: prices come from fixed tables, rounding is corrective (half up),
// and unit totals settle to whole cents before they aggregate, so a
// receipt's rows always sum to its subtotal.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownSKU  = errors.New("unknown SKU")
	ErrUnknownSize = errors.New("unknown size")
)

// Size is a drink cup size. The zero value means medium.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// ItemKind discriminates drink and food order items.
type ItemKind string

const (
	ItemDrink ItemKind = "drink"
	ItemFood  ItemKind = "food"
)

// DrinkModifiers are the per-drink customizations. Each toggles
// independently; only the additive ones carry a surcharge.
type DrinkModifiers struct {
	Size         Size   `json:"size,omitempty"`
	Iced         bool   `json:"iced,omitempty"`
	Milk         string `json:"milk,omitempty"`
	Syrup        string `json:"syrup,omitempty"`
	ExtraShot    bool   `json:"extra_shot,omitempty"`
	WhippedCream bool   `json:"whipped_cream,omitempty"`
	Decaf        bool   `json:"decaf,omitempty"`
}

// OrderItem is one line of an order, either a drink or a food item.
type OrderItem struct {
	Kind      ItemKind       `json:"kind"`
	SKU       string         `json:"sku"`
	Quantity  int            `json:"quantity"`
	Modifiers DrinkModifiers `json:"modifiers,omitempty"`
	Warm      bool           `json:"warm,omitempty"` // food only
}

// ItemPrice decomposes one unit's price. BasePrice already reflects the
// size multiplier; ModifierPrice is the sum of additive surcharges.
type ItemPrice struct {
	BasePrice     float64 `json:"base_price"`
	ModifierPrice float64 `json:"modifier_price"`
	TotalPrice    float64 `json:"total_price"`
}

// LineItem is one priced and described entry of a quote's breakdown.
type LineItem struct {
	SKU           string  `json:"sku"`
	Description   string  `json:"description"`
	Quantity      int     `json:"quantity"`
	BasePrice     float64 `json:"base_price"`
	ModifierPrice float64 `json:"modifier_price"`
	TotalPrice    float64 `json:"total_price"`
}

// PriceQuote is a fully priced order. Subtotal is the exact sum of the
// breakdown's settled line totals; Tax and Total derive from it.
type PriceQuote struct {
	Subtotal float64    `json:"subtotal"`
	Tax      float64    `json:"tax"`
	Total    float64    `json:"total"`
	Items    []LineItem `json:"items"`
}

// CalculateDrinkPrice prices a single drink unit. The size multiplier
// scales the base price first; additive surcharges (extra shot,
// alternative milk, syrup, whipped cream) then stack on top. Decaf and
// iced never change the price.
func CalculateDrinkPrice(sku string, mods DrinkModifiers) (ItemPrice, error) {
	base, ok := DrinkPrices[sku]
	if !ok {
		return ItemPrice{}, fmt.Errorf("%w: drink %q", ErrUnknownSKU, sku)
	}

	size := mods.Size
	if size == "" {
		size = SizeMedium
	}
	multiplier, ok := sizeMultipliers[size]
	if !ok {
		return ItemPrice{}, fmt.Errorf("%w: %q", ErrUnknownSize, string(size))
	}

	sized := base * multiplier

	var surcharge float64
	if mods.ExtraShot {
		surcharge += ExtraShotPrice
	}
	if !freeMilks[mods.Milk] {
		surcharge += AlternativeMilkPrice
	}
	if mods.Syrup != "" {
		surcharge += SyrupPrice
	}
	if mods.WhippedCream {
		surcharge += WhippedCreamPrice
	}

	return ItemPrice{
		BasePrice:     sized,
		ModifierPrice: surcharge,
		TotalPrice:    sized + surcharge,
	}, nil
}

// CalculateFoodPrice prices a single food unit. Warming is free.
func CalculateFoodPrice(sku string, warm bool) (ItemPrice, error) {
	base, ok := FoodPrices[sku]
	if !ok {
		return ItemPrice{}, fmt.Errorf("%w: food %q", ErrUnknownSKU, sku)
	}
	return ItemPrice{BasePrice: base, TotalPrice: base}, nil
}

// CalculatePriceQuote prices a whole order. Each unit total is settled to
// whole cents first, exactly the figure the breakdown shows, and the
// subtotal sums the settled amounts, so the breakdown rows always add up
// to the subtotal. Tax and total derive from that sum and total stays
// equal to subtotal plus tax.
func CalculatePriceQuote(items []OrderItem) (PriceQuote, error) {
	quote := PriceQuote{Items: make([]LineItem, 0, len(items))}

	var subtotal float64
	for _, item := range items {
		if item.Quantity < 1 {
			return PriceQuote{}, fmt.Errorf("order item %q: quantity must be at least 1", item.SKU)
		}

		var price ItemPrice
		var err error
		switch item.Kind {
		case ItemFood:
			price, err = CalculateFoodPrice(item.SKU, item.Warm)
		case ItemDrink, "":
			price, err = CalculateDrinkPrice(item.SKU, item.Modifiers)
		default:
			err = fmt.Errorf("order item %q: unknown kind %q", item.SKU, string(item.Kind))
		}
		if err != nil {
			return PriceQuote{}, err
		}

		unit := Round2(price.TotalPrice)
		quote.Items = append(quote.Items, LineItem{
			SKU:           item.SKU,
			Description:   DescribeOrderItem(item),
			Quantity:      item.Quantity,
			BasePrice:     Round2(price.BasePrice),
			ModifierPrice: Round2(price.ModifierPrice),
			TotalPrice:    unit,
		})
		subtotal += unit * float64(item.Quantity)
	}

	quote.Subtotal = Round2(subtotal)
	quote.Tax = Round2(subtotal * TaxRate)
	quote.Total = Round2(subtotal * (1 + TaxRate))
	return quote, nil
}

// DescribeOrderItem builds the receipt label for one order item. Size
// (when not medium) and "Iced" prefix the menu name; decaf, milk, syrup,
// extra shot and whipped cream follow in that fixed order after " w/ ".
func DescribeOrderItem(item OrderItem) string {
	name, ok := displayNames[item.SKU]
	if !ok {
		name = item.SKU
	}

	if item.Kind == ItemFood {
		if item.Warm {
			return name + " (warmed)"
		}
		return name
	}

	var label strings.Builder
	mods := item.Modifiers
	if sizeLabel, ok := sizeLabels[mods.Size]; ok {
		label.WriteString(sizeLabel)
		label.WriteString(" ")
	}
	if mods.Iced {
		label.WriteString("Iced ")
	}
	label.WriteString(name)

	var notes []string
	if mods.Decaf {
		notes = append(notes, "decaf")
	}
	if mods.Milk != "" && mods.Milk != "whole" {
		notes = append(notes, mods.Milk+" milk")
	}
	if mods.Syrup != "" {
		notes = append(notes, mods.Syrup+" syrup")
	}
	if mods.ExtraShot {
		notes = append(notes, "extra shot")
	}
	if mods.WhippedCream {
		notes = append(notes, "whipped cream")
	}
	if len(notes) > 0 {
		label.WriteString(" w/ ")
		label.WriteString(strings.Join(notes, ", "))
	}
	return label.String()
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatMoney renders an amount for receipts and logs.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
