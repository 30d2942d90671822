// Package catalog holds the immutable reference data the simulation consumes:
// upgrades, attacks, items and energy choices. Entries are keyed by id and
// never change after process start.
package catalog

import "math"

type UpgradeCategory string

const (
	CategoryMoneyPassive  UpgradeCategory = "money_passive"
	CategoryEnergyPassive UpgradeCategory = "energy_passive"
	CategoryHealthMax     UpgradeCategory = "health_max"
	CategoryClickPower    UpgradeCategory = "click_power"
)

type Upgrade struct {
	ID             string
	Name           string
	Category       UpgradeCategory
	BaseCost       float64
	CostMultiplier float64
	EffectPerLevel float64
	MaxLevel       int // 0 means no cap
}

// CostAtLevel is floor(baseCost * costMultiplier^level). The epsilon keeps
// integral costs from landing a hair under the integer (100 * 1.15 is
// 114.999... in float64).
func (u Upgrade) CostAtLevel(level int) float64 {
	return math.Floor(u.BaseCost*math.Pow(u.CostMultiplier, float64(level)) + 1e-9)
}

type AttackType string

const (
	AttackInstant AttackType = "instant"
	AttackPassive AttackType = "passive"
)

type Attack struct {
	ID       string
	Name     string
	Type     AttackType
	Damage   float64
	FoodCost float64
}

type CostType string

const (
	CostMoney CostType = "money"
	CostFood  CostType = "food"
)

type ItemCost struct {
	Type   CostType
	Amount float64
}

type EffectType string

const (
	EffectInstantMoney    EffectType = "instant_money"
	EffectInstantEnergy   EffectType = "instant_energy"
	EffectInstantHealth   EffectType = "instant_health"
	EffectInstantDamage   EffectType = "instant_damage"
	EffectMoneyPerSecond  EffectType = "money_per_second"
	EffectEnergyPerSecond EffectType = "energy_per_second"
	EffectDamagePerSecond EffectType = "damage_per_second"
	EffectClickMultiplier EffectType = "click_multiplier"
)

// ItemEffect is a closed variant: Amount carries every effect value except
// click_multiplier, which uses Multiplier.
type ItemEffect struct {
	Type       EffectType
	Amount     float64
	Multiplier float64
}

type Item struct {
	ID        string
	Name      string
	Cost      ItemCost
	Effect    ItemEffect
	Stackable bool
}

type ChoiceEffectType string

const (
	ChoiceInstantDamage     ChoiceEffectType = "instant_damage"
	ChoiceInstantHeal       ChoiceEffectType = "instant_heal"
	ChoicePermanentModifier ChoiceEffectType = "permanent_modifier"
)

// ChoiceEffect for permanent_modifier multiplies every non-zero multiplier
// field into the player's running modifiers; Value carries damage/heal
// amounts for the instant branches.
type ChoiceEffect struct {
	Type                      ChoiceEffectType
	Value                     float64
	EarningsMultiplier        float64
	PassiveEarningsMultiplier float64
	DamageMultiplier          float64
}

type EnergyChoice struct {
	ID     string
	Name   string
	Effect ChoiceEffect
}

var (
	upgradesByID map[string]Upgrade
	attacksByID  map[string]Attack
	itemsByID    map[string]Item
	choicesByID  map[string]EnergyChoice
)

func init() {
	upgradesByID = make(map[string]Upgrade, len(Upgrades))
	for _, u := range Upgrades {
		upgradesByID[u.ID] = u
	}
	attacksByID = make(map[string]Attack, len(Attacks))
	for _, a := range Attacks {
		attacksByID[a.ID] = a
	}
	itemsByID = make(map[string]Item, len(Items))
	for _, it := range Items {
		itemsByID[it.ID] = it
	}
	choicesByID = make(map[string]EnergyChoice, len(EnergyChoices))
	for _, c := range EnergyChoices {
		choicesByID[c.ID] = c
	}
}

func UpgradeByID(id string) (Upgrade, bool) {
	u, ok := upgradesByID[id]
	return u, ok
}

func AttackByID(id string) (Attack, bool) {
	a, ok := attacksByID[id]
	return a, ok
}

func ItemByID(id string) (Item, bool) {
	it, ok := itemsByID[id]
	return it, ok
}

func EnergyChoiceByID(id string) (EnergyChoice, bool) {
	c, ok := choicesByID[id]
	return c, ok
}
