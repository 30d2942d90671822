package srv

import (
	"math"

	"gatos/server/protocol"
)

// playerState is the authoritative state of one side of a match. It is owned
// by its Room and only ever touched under the room lock.
type playerState struct {
	id   string
	name string

	ready bool

	health    float64
	maxHealth float64

	money  float64
	energy float64
	food   float64

	moneyPerSecond  float64
	energyPerSecond float64
	damagePerSecond float64
	clickPower      float64

	// Compounding multiplicative modifiers, never reset within a match.
	earningsMult        float64
	passiveEarningsMult float64
	damageMult          float64

	upgrades map[string]int
	items    map[string]int

	// energyNotified arms the one-shot threshold notification; cleared when
	// energy drops below the cap again.
	energyNotified bool
}

func newPlayerState(cfg Config, id, name string) *playerState {
	return &playerState{
		id:                  id,
		name:                name,
		health:              cfg.InitialHealth,
		maxHealth:           cfg.InitialHealth,
		money:               cfg.InitialMoney,
		energy:              cfg.InitialEnergy,
		moneyPerSecond:      cfg.BaseMoneyPerSecond,
		energyPerSecond:     cfg.BaseEnergyPerSecond,
		clickPower:          cfg.InitialClickPower,
		earningsMult:        1,
		passiveEarningsMult: 1,
		damageMult:          1,
		upgrades:            make(map[string]int),
		items:               make(map[string]int),
	}
}

// applyDamage lowers health, floored at zero.
func (p *playerState) applyDamage(amount float64) {
	p.health = math.Max(0, p.health-amount)
}

// heal raises health, clamped to maxHealth.
func (p *playerState) heal(amount float64) {
	p.health = math.Min(p.maxHealth, p.health+amount)
}

// gainEnergy raises energy, clamped to the cap.
func (p *playerState) gainEnergy(amount, cap float64) {
	p.energy = math.Min(cap, p.energy+amount)
}

func (p *playerState) view() protocol.PlayerView {
	upgrades := make(map[string]int, len(p.upgrades))
	for id, lvl := range p.upgrades {
		upgrades[id] = lvl
	}
	items := make(map[string]int, len(p.items))
	for id, n := range p.items {
		items[id] = n
	}
	return protocol.PlayerView{
		ID:              p.id,
		Name:            p.name,
		Ready:           p.ready,
		Health:          p.health,
		MaxHealth:       p.maxHealth,
		Money:           p.money,
		Energy:          p.energy,
		Food:            p.food,
		MoneyPerSecond:  p.moneyPerSecond,
		EnergyPerSecond: p.energyPerSecond,
		DamagePerSecond: p.damagePerSecond,
		ClickPower:      p.clickPower,
		Modifiers: protocol.Modifiers{
			EarningsMultiplier:        p.earningsMult,
			PassiveEarningsMultiplier: p.passiveEarningsMult,
			DamageMultiplier:          p.damageMult,
		},
		Upgrades: upgrades,
		Items:    items,
	}
}
