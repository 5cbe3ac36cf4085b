package equipment

// categoryOrder fixes listing order for shop screens and summaries.
var categoryOrder = []Category{
	CategoryEspressoMachine,
	CategoryGrinder,
	CategoryMilkSteamer,
	CategoryBrewingStation,
}

// Catalog is the full shop: four categories, three tiers each. Tier 1 is
// the starter gear every café opens with; higher tiers buy better brew
// bonuses and new capabilities.
var Catalog = []Item{
	{
		ID:          "espresso_machine_1",
		Category:    CategoryEspressoMachine,
		Tier:        1,
		Price:       500,
		Name:        "Secondhand Lever Machine",
		Description: "Temperamental but it pulls a shot.",
	},
	{
		ID:          "espresso_machine_2",
		Category:    CategoryEspressoMachine,
		Tier:        2,
		Price:       1200,
		Name:        "Prosumer Semi-Automatic",
		Description: "Stable pressure and a second group head.",
		Effects:     Effects{QualityBonus: 3, Consistency: 0.1, DualBrewing: true},
	},
	{
		ID:          "espresso_machine_3",
		Category:    CategoryEspressoMachine,
		Tier:        3,
		Price:       2800,
		Name:        "Competition Triple-Group",
		Description: "PID-controlled boilers, three shots at once.",
		Effects:     Effects{QualityBonus: 6, Consistency: 0.2, DualBrewing: true, TripleBrewing: true},
	},
	{
		ID:          "grinder_1",
		Category:    CategoryGrinder,
		Tier:        1,
		Price:       200,
		Name:        "Hand Crank Grinder",
		Description: "Honest burrs, tired wrists.",
	},
	{
		ID:          "grinder_2",
		Category:    CategoryGrinder,
		Tier:        2,
		Price:       600,
		Name:        "Flat Burr Grinder",
		Description: "Stepless adjustment, far tighter particle spread.",
		Effects:     Effects{GrindBonus: 4, Consistency: 0.1},
	},
	{
		ID:          "grinder_3",
		Category:    CategoryGrinder,
		Tier:        3,
		Price:       1500,
		Name:        "Single-Dose Titan Grinder",
		Description: "Zero retention and a grind-by-weight scale.",
		Effects:     Effects{GrindBonus: 8, QualityBonus: 2, Consistency: 0.2},
	},
	{
		ID:          "milk_steamer_1",
		Category:    CategoryMilkSteamer,
		Tier:        1,
		Price:       150,
		Name:        "Stovetop Steamer",
		Description: "Gets milk hot, eventually.",
	},
	{
		ID:          "milk_steamer_2",
		Category:    CategoryMilkSteamer,
		Tier:        2,
		Price:       450,
		Name:        "Dedicated Steam Wand",
		Description: "Dry steam on tap, microfoam within reach.",
		Effects:     Effects{MilkBonus: 4, Consistency: 0.1},
	},
	{
		ID:          "milk_steamer_3",
		Category:    CategoryMilkSteamer,
		Tier:        3,
		Price:       1100,
		Name:        "Auto-Texture Steamer",
		Description: "Temperature probe and programmable texture.",
		Effects:     Effects{MilkBonus: 8, QualityBonus: 1, Consistency: 0.2},
	},
	{
		ID:          "brewing_station_1",
		Category:    CategoryBrewingStation,
		Tier:        1,
		Price:       300,
		Name:        "Kitchen Kettle Corner",
		Description: "A kettle, a cone, and optimism.",
	},
	{
		ID:          "brewing_station_2",
		Category:    CategoryBrewingStation,
		Tier:        2,
		Price:       800,
		Name:        "Gooseneck Pour Station",
		Description: "Variable-temperature kettle and a proper scale.",
		Effects:     Effects{TemperatureBonus: 3, BrewTimeReduction: 0.1},
	},
	{
		ID:          "brewing_station_3",
		Category:    CategoryBrewingStation,
		Tier:        3,
		Price:       2000,
		Name:        "Automated Brew Bar",
		Description: "Programmable bloom, pour and hold profiles.",
		Effects:     Effects{TemperatureBonus: 6, QualityBonus: 2, BrewTimeReduction: 0.2},
	},
}

// Categories lists the equipment categories in shop order.
func Categories() []Category {
	return append([]Category(nil), categoryOrder...)
}
