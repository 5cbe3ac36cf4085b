package factories

import (
	"math/rand"

	"github.com/chrisdamba/cafesim/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

// defaultPersonas seed the neighborhood when the config supplies none.
var defaultPersonas = []models.PersonaData{
	{Persona: "art student", FavoriteDrink: "latte", SweetTooth: true},
	{Persona: "night-shift nurse", FavoriteDrink: "americano"},
	{Persona: "remote developer", FavoriteDrink: "pour_over"},
	{Persona: "retired teacher", FavoriteDrink: "cappuccino"},
	{Persona: "food blogger", FavoriteDrink: "matcha", SweetTooth: true},
	{Persona: "cycling courier", FavoriteDrink: "espresso"},
	{Persona: "novelist", FavoriteDrink: "mocha", SweetTooth: true},
	{Persona: "yoga instructor", FavoriteDrink: "matcha"},
	{Persona: "law clerk", FavoriteDrink: "aeropress"},
	{Persona: "new parent", FavoriteDrink: "latte"},
}

var milkOptions = []string{"whole", "oat", "skim", "almond", "soy"}
var milkWeights = []float64{0.40, 0.20, 0.15, 0.15, 0.10}

var allergenPool = []string{"nuts", "dairy", "soy", "gluten"}

type CustomerFactory struct {
	Rng  *rand.Rand
	Fake faker.Faker
}

// NewCustomerFactory builds a factory whose output is fully determined by
// the given source.
func NewCustomerFactory(rng *rand.Rand) *CustomerFactory {
	return &CustomerFactory{
		Rng:  rng,
		Fake: faker.NewWithSeed(rng),
	}
}

// CreateCustomer generates one neighborhood customer. Persona data from
// the config takes precedence over the built-in pool.
func (cf *CustomerFactory) CreateCustomer(config *models.Config) *models.Customer {
	personas := config.PersonaData
	if len(personas) == 0 {
		personas = defaultPersonas
	}
	persona := personas[cf.Rng.Intn(len(personas))]

	customer := &models.Customer{
		ID:             cuid.New(),
		Name:           cf.Fake.Person().Name(),
		Persona:        persona.Persona,
		FavoriteDrink:  persona.FavoriteDrink,
		PreferredMilk:  cf.pickMilk(),
		SweetTooth:     persona.SweetTooth,
		DecafOnly:      cf.Rng.Float64() < 0.08,
		Allergens:      cf.pickAllergens(),
		VisitFrequency: cf.initialVisitFrequency(config),
		TipGenerosity:  cf.pickTipGenerosity(config),
		JoinDate:       cf.Fake.Time().TimeBetween(config.StartDate.AddDate(-1, 0, 0), config.StartDate),
	}
	return customer
}

func (cf *CustomerFactory) pickMilk() string {
	r := cf.Rng.Float64()
	cumulative := 0.0
	for i, milk := range milkOptions {
		cumulative += milkWeights[i]
		if r <= cumulative {
			return milk
		}
	}
	return milkOptions[len(milkOptions)-1]
}

func (cf *CustomerFactory) pickAllergens() []string {
	// most customers report none
	if cf.Rng.Float64() < 0.85 {
		return nil
	}
	return []string{allergenPool[cf.Rng.Intn(len(allergenPool))]}
}

func (cf *CustomerFactory) initialVisitFrequency(config *models.Config) float64 {
	randomFactor := 0.8 + (cf.Rng.Float64() * 0.4) // ±20%
	return config.VisitFrequency * randomFactor
}

func (cf *CustomerFactory) pickTipGenerosity(config *models.Config) float64 {
	base := config.BaseTipRate
	if base == 0 {
		base = 0.15
	}
	// squared draw skews toward modest tippers, topping out near twice the base
	r := cf.Rng.Float64()
	return 2 * base * r * r
}
