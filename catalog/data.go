package catalog

// Upgrades lists every purchasable permanent upgrade.
var Upgrades = []Upgrade{
	// money per second
	{ID: "scratching_post_basic", Name: "Basic Scratching Post", Category: CategoryMoneyPassive, BaseCost: 10, CostMultiplier: 1.15, EffectPerLevel: 1},
	{ID: "milk_bowl", Name: "Milk Bowl", Category: CategoryMoneyPassive, BaseCost: 100, CostMultiplier: 1.15, EffectPerLevel: 5},
	{ID: "cardboard_box", Name: "Premium Cardboard Box", Category: CategoryMoneyPassive, BaseCost: 500, CostMultiplier: 1.15, EffectPerLevel: 15},
	{ID: "toy_mouse", Name: "Toy Mouse", Category: CategoryMoneyPassive, BaseCost: 2000, CostMultiplier: 1.15, EffectPerLevel: 50},
	{ID: "cat_tower", Name: "Cat Tower", Category: CategoryMoneyPassive, BaseCost: 10000, CostMultiplier: 1.15, EffectPerLevel: 150},

	// energy per second
	{ID: "short_nap", Name: "Short Nap", Category: CategoryEnergyPassive, BaseCost: 50, CostMultiplier: 1.2, EffectPerLevel: 1},
	{ID: "medium_nap", Name: "Medium Nap", Category: CategoryEnergyPassive, BaseCost: 300, CostMultiplier: 1.2, EffectPerLevel: 3},
	{ID: "deep_sleep", Name: "Deep Sleep", Category: CategoryEnergyPassive, BaseCost: 1500, CostMultiplier: 1.2, EffectPerLevel: 8},
	{ID: "cat_dream", Name: "Cat Dream", Category: CategoryEnergyPassive, BaseCost: 8000, CostMultiplier: 1.2, EffectPerLevel: 20},

	// max health
	{ID: "health_boost_1", Name: "Extra Life I", Category: CategoryHealthMax, BaseCost: 100, CostMultiplier: 1.5, EffectPerLevel: 50},
	{ID: "health_boost_2", Name: "Extra Life II", Category: CategoryHealthMax, BaseCost: 300, CostMultiplier: 1.5, EffectPerLevel: 100},
	{ID: "health_boost_3", Name: "Extra Life III", Category: CategoryHealthMax, BaseCost: 800, CostMultiplier: 1.5, EffectPerLevel: 200},

	// click power
	{ID: "sharper_claws", Name: "Sharper Claws", Category: CategoryClickPower, BaseCost: 25, CostMultiplier: 1.3, EffectPerLevel: 1},
}

// Attacks lists every purchasable attack. Instant attacks hit once on
// purchase; passive attacks raise the buyer's damage per second permanently.
var Attacks = []Attack{
	{ID: "quick_scratch", Name: "Quick Scratch", Type: AttackInstant, Damage: 10, FoodCost: 5},
	{ID: "feline_bite", Name: "Feline Bite", Type: AttackInstant, Damage: 25, FoodCost: 15},
	{ID: "wild_swipe", Name: "Wild Swipe", Type: AttackInstant, Damage: 50, FoodCost: 35},
	{ID: "acrobatic_leap", Name: "Acrobatic Leap", Type: AttackInstant, Damage: 100, FoodCost: 75},
	{ID: "cat_fury", Name: "Cat Fury", Type: AttackInstant, Damage: 200, FoodCost: 150},
	{ID: "mega_pounce", Name: "Mega Pounce", Type: AttackInstant, Damage: 500, FoodCost: 400},

	{ID: "intimidating_stare", Name: "Intimidating Stare", Type: AttackPassive, Damage: 1, FoodCost: 20},
	{ID: "deafening_purr", Name: "Deafening Purr", Type: AttackPassive, Damage: 3, FoodCost: 60},
	{ID: "poison_hairball", Name: "Poison Hairball", Type: AttackPassive, Damage: 8, FoodCost: 180},
	{ID: "cursed_meow", Name: "Cursed Meow", Type: AttackPassive, Damage: 20, FoodCost: 500},
}

// Items lists every purchasable item. Non-stackable items apply their effect
// immediately on purchase; stackable ones go to the inventory until used.
var Items = []Item{
	{ID: "tuna_can", Name: "Tuna Can", Cost: ItemCost{Type: CostMoney, Amount: 150},
		Effect: ItemEffect{Type: EffectInstantEnergy, Amount: 500}},
	{ID: "catnip", Name: "Catnip", Cost: ItemCost{Type: CostFood, Amount: 30},
		Effect: ItemEffect{Type: EffectClickMultiplier, Multiplier: 2}},
	{ID: "fish_feast", Name: "Fish Feast", Cost: ItemCost{Type: CostFood, Amount: 50},
		Effect: ItemEffect{Type: EffectInstantMoney, Amount: 1000}},
	{ID: "healing_treat", Name: "Healing Treat", Cost: ItemCost{Type: CostMoney, Amount: 200},
		Effect: ItemEffect{Type: EffectInstantHealth, Amount: 500}},

	{ID: "gold_collar", Name: "Gold Collar", Cost: ItemCost{Type: CostMoney, Amount: 500},
		Effect: ItemEffect{Type: EffectMoneyPerSecond, Amount: 5}, Stackable: true},
	{ID: "energy_crystal", Name: "Energy Crystal", Cost: ItemCost{Type: CostMoney, Amount: 400},
		Effect: ItemEffect{Type: EffectEnergyPerSecond, Amount: 2}, Stackable: true},
	{ID: "cursed_bell", Name: "Cursed Bell", Cost: ItemCost{Type: CostFood, Amount: 100},
		Effect: ItemEffect{Type: EffectDamagePerSecond, Amount: 1}, Stackable: true},
}

// EnergyChoices lists the one-shot options offered when a player's energy
// hits the cap.
var EnergyChoices = []EnergyChoice{
	{ID: "damage_enemy", Name: "Ultimate Swipe",
		Effect: ChoiceEffect{Type: ChoiceInstantDamage, Value: 100}},
	{ID: "heal_self", Name: "Lick Your Wounds",
		Effect: ChoiceEffect{Type: ChoiceInstantHeal, Value: 200}},
	{ID: "boost_earnings", Name: "Feline Fury",
		Effect: ChoiceEffect{Type: ChoicePermanentModifier, EarningsMultiplier: 1.15, DamageMultiplier: 1.10}},
	{ID: "defensive_stance", Name: "Defensive Stance",
		Effect: ChoiceEffect{Type: ChoicePermanentModifier, PassiveEarningsMultiplier: 0.90, DamageMultiplier: 0.95}},
}
