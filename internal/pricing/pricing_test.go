package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDrinkPrice(t *testing.T) {
	tests := []struct {
		name      string
		sku       string
		mods      DrinkModifiers
		wantTotal float64
	}{
		{name: "plain latte", sku: "latte", mods: DrinkModifiers{}, wantTotal: 4.50},
		{name: "explicit medium", sku: "latte", mods: DrinkModifiers{Size: SizeMedium}, wantTotal: 4.50},
		{name: "small latte", sku: "latte", mods: DrinkModifiers{Size: SizeSmall}, wantTotal: 3.60},
		{name: "large latte", sku: "latte", mods: DrinkModifiers{Size: SizeLarge}, wantTotal: 5.85},
		{name: "extra shot", sku: "latte", mods: DrinkModifiers{ExtraShot: true}, wantTotal: 5.50},
		{name: "oat milk", sku: "latte", mods: DrinkModifiers{Milk: "oat"}, wantTotal: 5.25},
		{name: "almond milk", sku: "latte", mods: DrinkModifiers{Milk: "almond"}, wantTotal: 5.25},
		{name: "whole milk free", sku: "latte", mods: DrinkModifiers{Milk: "whole"}, wantTotal: 4.50},
		{name: "skim milk free", sku: "latte", mods: DrinkModifiers{Milk: "skim"}, wantTotal: 4.50},
		{name: "syrup", sku: "latte", mods: DrinkModifiers{Syrup: "vanilla"}, wantTotal: 5.00},
		{name: "whipped cream", sku: "latte", mods: DrinkModifiers{WhippedCream: true}, wantTotal: 5.00},
		{name: "decaf free", sku: "latte", mods: DrinkModifiers{Decaf: true}, wantTotal: 4.50},
		{name: "iced free", sku: "latte", mods: DrinkModifiers{Iced: true}, wantTotal: 4.50},
		{
			name:      "everything on a large",
			sku:       "latte",
			mods:      DrinkModifiers{Size: SizeLarge, ExtraShot: true, Milk: "oat", WhippedCream: true},
			wantTotal: 4.50*1.3 + 1.00 + 0.75 + 0.50,
		},
		{name: "espresso", sku: "espresso", mods: DrinkModifiers{}, wantTotal: 3.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := CalculateDrinkPrice(tt.sku, tt.mods)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantTotal, price.TotalPrice, 1e-9)
			assert.InDelta(t, price.BasePrice+price.ModifierPrice, price.TotalPrice, 1e-9)
		})
	}
}

func TestCalculateDrinkPriceSizeScalesBaseOnly(t *testing.T) {
	price, err := CalculateDrinkPrice("latte", DrinkModifiers{Size: SizeLarge, ExtraShot: true})
	require.NoError(t, err)

	// the multiplier applies to the 4.50 base, never to the surcharge
	assert.InDelta(t, 5.85, price.BasePrice, 1e-9)
	assert.InDelta(t, 1.00, price.ModifierPrice, 1e-9)
}

func TestCalculateDrinkPriceFailures(t *testing.T) {
	_, err := CalculateDrinkPrice("bubble_tea", DrinkModifiers{})
	require.ErrorIs(t, err, ErrUnknownSKU)

	_, err = CalculateDrinkPrice("latte", DrinkModifiers{Size: "venti"})
	require.ErrorIs(t, err, ErrUnknownSize)
}

func TestCalculateFoodPrice(t *testing.T) {
	cold, err := CalculateFoodPrice("croissant", false)
	require.NoError(t, err)
	assert.InDelta(t, 3.50, cold.TotalPrice, 1e-9)

	warm, err := CalculateFoodPrice("croissant", true)
	require.NoError(t, err)
	assert.InDelta(t, cold.TotalPrice, warm.TotalPrice, 1e-9, "warming is free")

	_, err = CalculateFoodPrice("pizza", false)
	require.ErrorIs(t, err, ErrUnknownSKU)
}

func TestCalculatePriceQuote(t *testing.T) {
	items := []OrderItem{
		{Kind: ItemDrink, SKU: "latte", Quantity: 2},
		{Kind: ItemFood, SKU: "croissant", Quantity: 1, Warm: true},
	}

	quote, err := CalculatePriceQuote(items)
	require.NoError(t, err)

	assert.InDelta(t, 12.50, quote.Subtotal, 1e-9)
	assert.InDelta(t, 1.00, quote.Tax, 1e-9)
	assert.InDelta(t, 13.50, quote.Total, 1e-9)

	require.Len(t, quote.Items, 2)
	assert.Equal(t, "Latte", quote.Items[0].Description)
	assert.Equal(t, 2, quote.Items[0].Quantity)
	assert.Equal(t, "Croissant (warmed)", quote.Items[1].Description)
}

func TestCalculatePriceQuoteRounding(t *testing.T) {
	tests := []struct {
		name         string
		items        []OrderItem
		wantSubtotal float64
		wantTax      float64
		wantTotal    float64
	}{
		{
			name:         "single espresso",
			items:        []OrderItem{{SKU: "espresso", Quantity: 1}},
			wantSubtotal: 3.00,
			wantTax:      0.24,
			wantTotal:    3.24,
		},
		{
			name:         "small latte needs half-up tax",
			items:        []OrderItem{{SKU: "latte", Quantity: 1, Modifiers: DrinkModifiers{Size: SizeSmall}}},
			wantSubtotal: 3.60,
			wantTax:      0.29, // 0.288 rounds up
			wantTotal:    3.89, // 3.888 rounds up
		},
		{
			name: "modifier heavy order",
			items: []OrderItem{
				{SKU: "latte", Quantity: 1, Modifiers: DrinkModifiers{Size: SizeLarge, ExtraShot: true, Milk: "oat", WhippedCream: true}},
				{SKU: "matcha", Quantity: 1, Modifiers: DrinkModifiers{Iced: true}},
			},
			wantSubtotal: 13.35,
			wantTax:      1.07, // 1.068 rounds up
			wantTotal:    14.42, // 14.418 rounds up
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := CalculatePriceQuote(tt.items)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantSubtotal, quote.Subtotal, 1e-9)
			assert.InDelta(t, tt.wantTax, quote.Tax, 1e-9)
			assert.InDelta(t, tt.wantTotal, quote.Total, 1e-9)
		})
	}
}

func TestCalculatePriceQuoteReceiptsAddUp(t *testing.T) {
	var items []OrderItem
	for _, sku := range DrinkSKUs() {
		for _, size := range []Size{SizeSmall, SizeMedium, SizeLarge} {
			items = append(items, OrderItem{SKU: sku, Modifiers: DrinkModifiers{Size: size}})
		}
	}
	for _, sku := range FoodSKUs() {
		items = append(items, OrderItem{Kind: ItemFood, SKU: sku})
	}

	for _, item := range items {
		for qty := 1; qty <= 3; qty++ {
			item.Quantity = qty
			quote, err := CalculatePriceQuote([]OrderItem{item})
			require.NoError(t, err)

			var rows float64
			for _, line := range quote.Items {
				rows += line.TotalPrice * float64(line.Quantity)
			}
			assert.InDelta(t, quote.Subtotal, rows, 1e-9, "%s %s x%d", item.Modifiers.Size, item.SKU, qty)
			assert.InDelta(t, Round2(quote.Subtotal*(1+TaxRate)), quote.Total, 1e-9, "%s %s x%d", item.Modifiers.Size, item.SKU, qty)
			assert.InDelta(t, Round2(quote.Subtotal+quote.Tax), quote.Total, 1e-9, "%s %s x%d", item.Modifiers.Size, item.SKU, qty)
		}
	}
}

func TestCalculatePriceQuoteSettlesHalfCentSizes(t *testing.T) {
	// the 4.25 and 5.25 bases land on half cents at the 1.3 multiplier;
	// the receipt charges the settled 5.53 and 6.83
	tests := []struct {
		name         string
		items        []OrderItem
		wantSubtotal float64
		wantTax      float64
		wantTotal    float64
	}{
		{
			name:         "one large matcha",
			items:        []OrderItem{{SKU: "matcha", Quantity: 1, Modifiers: DrinkModifiers{Size: SizeLarge}}},
			wantSubtotal: 6.83,
			wantTax:      0.55,
			wantTotal:    7.38,
		},
		{
			name:         "two large matchas",
			items:        []OrderItem{{SKU: "matcha", Quantity: 2, Modifiers: DrinkModifiers{Size: SizeLarge}}},
			wantSubtotal: 13.66,
			wantTax:      1.09,
			wantTotal:    14.75,
		},
		{
			name:         "three large cappuccinos",
			items:        []OrderItem{{SKU: "cappuccino", Quantity: 3, Modifiers: DrinkModifiers{Size: SizeLarge}}},
			wantSubtotal: 16.59,
			wantTax:      1.33,
			wantTotal:    17.92,
		},
		{
			name: "half cents mixed with food",
			items: []OrderItem{
				{SKU: "cappuccino", Quantity: 2, Modifiers: DrinkModifiers{Size: SizeLarge}},
				{SKU: "matcha", Quantity: 3, Modifiers: DrinkModifiers{Size: SizeLarge}},
				{Kind: ItemFood, SKU: "muffin", Quantity: 1},
			},
			wantSubtotal: 34.80,
			wantTax:      2.78,
			wantTotal:    37.58,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := CalculatePriceQuote(tt.items)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantSubtotal, quote.Subtotal, 1e-9)
			assert.InDelta(t, tt.wantTax, quote.Tax, 1e-9)
			assert.InDelta(t, tt.wantTotal, quote.Total, 1e-9)

			var rows float64
			for _, line := range quote.Items {
				rows += line.TotalPrice * float64(line.Quantity)
			}
			assert.InDelta(t, quote.Subtotal, rows, 1e-9)
		})
	}
}

func TestCalculatePriceQuoteFailures(t *testing.T) {
	_, err := CalculatePriceQuote([]OrderItem{{SKU: "latte", Quantity: 0}})
	require.Error(t, err)

	_, err = CalculatePriceQuote([]OrderItem{{SKU: "nope", Quantity: 1}})
	require.ErrorIs(t, err, ErrUnknownSKU)
}

func TestDescribeOrderItem(t *testing.T) {
	tests := []struct {
		name string
		item OrderItem
		want string
	}{
		{
			name: "plain drink",
			item: OrderItem{SKU: "latte", Quantity: 1},
			want: "Latte",
		},
		{
			name: "medium stays unlabelled",
			item: OrderItem{SKU: "latte", Quantity: 1, Modifiers: DrinkModifiers{Size: SizeMedium}},
			want: "Latte",
		},
		{
			name: "size prefix",
			item: OrderItem{SKU: "espresso", Quantity: 1, Modifiers: DrinkModifiers{Size: SizeSmall}},
			want: "Small Espresso",
		},
		{
			name: "iced prefix",
			item: OrderItem{SKU: "latte", Quantity: 1, Modifiers: DrinkModifiers{Iced: true}},
			want: "Iced Latte",
		},
		{
			name: "size before iced",
			item: OrderItem{SKU: "latte", Quantity: 1, Modifiers: DrinkModifiers{Size: SizeLarge, Iced: true}},
			want: "Large Iced Latte",
		},
		{
			name: "single annotation",
			item: OrderItem{SKU: "latte", Quantity: 1, Modifiers: DrinkModifiers{Milk: "oat"}},
			want: "Latte w/ oat milk",
		},
		{
			name: "skim is still announced",
			item: OrderItem{SKU: "latte", Quantity: 1, Modifiers: DrinkModifiers{Milk: "skim"}},
			want: "Latte w/ skim milk",
		},
		{
			name: "whole milk is the default",
			item: OrderItem{SKU: "latte", Quantity: 1, Modifiers: DrinkModifiers{Milk: "whole"}},
			want: "Latte",
		},
		{
			name: "annotations keep fixed order",
			item: OrderItem{SKU: "latte", Quantity: 1, Modifiers: DrinkModifiers{
				Size: SizeLarge, Iced: true, Decaf: true, Milk: "oat", Syrup: "vanilla", ExtraShot: true, WhippedCream: true,
			}},
			want: "Large Iced Latte w/ decaf, oat milk, vanilla syrup, extra shot, whipped cream",
		},
		{
			name: "food plain",
			item: OrderItem{Kind: ItemFood, SKU: "croissant", Quantity: 1},
			want: "Croissant",
		},
		{
			name: "food warmed",
			item: OrderItem{Kind: ItemFood, SKU: "croissant", Quantity: 1, Warm: true},
			want: "Croissant (warmed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DescribeOrderItem(tt.item))
		})
	}
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 3.89, Round2(3.888), 1e-9)
	assert.InDelta(t, 3.88, Round2(3.884), 1e-9)
	assert.InDelta(t, 0.29, Round2(0.288), 1e-9)
	assert.InDelta(t, 1.00, Round2(1.0), 1e-9)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$4.50", FormatMoney(4.5))
	assert.Equal(t, "$13.50", FormatMoney(13.5))
	assert.Equal(t, "$0.00", FormatMoney(0))
}
