package pricing

// Flat surcharges for additive drink modifiers. Decaf and iced are free.
const (
	ExtraShotPrice       = 1.00
	AlternativeMilkPrice = 0.75
	SyrupPrice           = 0.50
	WhippedCreamPrice    = 0.50
)

// TaxRate is applied once to the order subtotal.
const TaxRate = 0.08

// drinkOrder and foodOrder fix menu listing order.
var drinkOrder = []string{
	"espresso",
	"americano",
	"latte",
	"cappuccino",
	"mocha",
	"pour_over",
	"aeropress",
	"matcha",
}

var foodOrder = []string{
	"croissant",
	"muffin",
	"bagel",
	"scone",
	"cookie",
	"sandwich",
}

// DrinkPrices is the base price per drink SKU at medium size.
var DrinkPrices = map[string]float64{
	"espresso":   3.00,
	"americano":  3.50,
	"latte":      4.50,
	"cappuccino": 4.25,
	"mocha":      5.00,
	"pour_over":  4.00,
	"aeropress":  4.00,
	"matcha":     5.25,
}

// FoodPrices is the base price per food SKU.
var FoodPrices = map[string]float64{
	"croissant": 3.50,
	"muffin":    3.25,
	"bagel":     2.75,
	"scone":     3.00,
	"cookie":    2.50,
	"sandwich":  6.50,
}

// sizeMultipliers scale the base price before additive modifiers apply.
var sizeMultipliers = map[Size]float64{
	SizeSmall:  0.8,
	SizeMedium: 1.0,
	SizeLarge:  1.3,
}

// displayNames maps SKUs to menu-board labels.
var displayNames = map[string]string{
	"espresso":   "Espresso",
	"americano":  "Americano",
	"latte":      "Latte",
	"cappuccino": "Cappuccino",
	"mocha":      "Mocha",
	"pour_over":  "Pour Over",
	"aeropress":  "Aeropress",
	"matcha":     "Matcha Latte",
	"croissant":  "Croissant",
	"muffin":     "Muffin",
	"bagel":      "Bagel",
	"scone":      "Scone",
	"cookie":     "Cookie",
	"sandwich":   "Sandwich",
}

// sizeLabels prefix receipt descriptions. Medium is the default and
// stays unlabelled.
var sizeLabels = map[Size]string{
	SizeSmall: "Small",
	SizeLarge: "Large",
}

// freeMilks never incur the alternative-milk surcharge.
var freeMilks = map[string]bool{
	"":      true,
	"whole": true,
	"skim":  true,
}

// DrinkSKUs lists the drink menu in listing order.
func DrinkSKUs() []string {
	return append([]string(nil), drinkOrder...)
}

// FoodSKUs lists the food menu in listing order.
func FoodSKUs() []string {
	return append([]string(nil), foodOrder...)
}
