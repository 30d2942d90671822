package srv

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"gatos/server/catalog"
	"gatos/server/protocol"
)

type phase int

const (
	phaseWaiting phase = iota
	phaseActive
	phaseEnded
)

// Room owns the authoritative state of one match. All outbound events go
// through the broadcast/sendTo callbacks the hub installs at creation; the
// room never touches a connection. Every method serializes on r.mu, so the
// tick goroutine and inbound intents never interleave mid-mutation.
//
// Lock order is room -> hub: the emit callbacks take the hub lock, so the
// hub must never call into a room while holding its own.
type Room struct {
	id  string
	cfg Config

	mu      sync.Mutex
	phase   phase
	players map[string]*playerState
	order   []string // join order; fixed iteration order for ticks and ties
	winner  string

	tickStop chan struct{} // non-nil iff the tick goroutine is running

	// broadcast sends to every connection in the room except excludeID
	// (empty means everyone); sendTo targets a single player.
	broadcast func(event string, data any, excludeID string)
	sendTo    func(playerID, event string, data any)
}

// NewRoom creates an empty waiting room. The hub assigns the emit callbacks
// right after construction, before any client can reach the room.
func NewRoom(cfg Config) *Room {
	return &Room{
		id:        uuid.NewString()[:8],
		cfg:       cfg,
		phase:     phaseWaiting,
		players:   make(map[string]*playerState),
		broadcast: func(string, any, string) {},
		sendTo:    func(string, string, any) {},
	}
}

func (r *Room) ID() string { return r.id }

func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Joinable reports whether the room can still seat a participant.
func (r *Room) Joinable() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase == phaseWaiting && len(r.players) < 2
}

// AddPlayer creates a fresh player and broadcasts the room snapshot. It
// fails once the room is full or no longer waiting.
func (r *Room) AddPlayer(playerID, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != phaseWaiting || len(r.players) >= 2 {
		return false
	}
	r.players[playerID] = newPlayerState(r.cfg, playerID, name)
	r.order = append(r.order, playerID)
	r.broadcastStateLocked()
	return true
}

// SetReady marks a player ready and starts the match once both are. Calling
// it again after the player is ready is a no-op.
func (r *Room) SetReady(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.players[playerID]
	if p == nil {
		return false
	}
	if p.ready {
		return true
	}
	if r.phase != phaseWaiting {
		return false
	}
	p.ready = true
	r.broadcastStateLocked()

	if len(r.players) == 2 && r.allReadyLocked() {
		r.startGameLocked()
	}
	return true
}

func (r *Room) allReadyLocked() bool {
	for _, p := range r.players {
		if !p.ready {
			return false
		}
	}
	return true
}

func (r *Room) startGameLocked() {
	r.phase = phaseActive
	r.broadcastStateLocked()
	r.broadcast(protocol.EvtGameStart, protocol.GameStart{}, "")

	stop := make(chan struct{})
	r.tickStop = stop
	go r.runTicker(stop)
	log.Printf("room %s: game started", r.id)
}

func (r *Room) runTicker(stop <-chan struct{}) {
	ticker := time.NewTicker(r.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.tick()
		}
	}
}

// tick runs one simulation step: passive accrual for every player in join
// order, then passive damage, then a single win check, then the broadcast.
func (r *Room) tick() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != phaseActive {
		return
	}

	for _, id := range r.order {
		p := r.players[id]
		if p == nil {
			continue
		}
		enemy := r.enemyOfLocked(id)

		p.money += p.moneyPerSecond * p.earningsMult * p.passiveEarningsMult
		p.gainEnergy(p.energyPerSecond*p.earningsMult, r.cfg.EnergyCap)

		if p.energy >= r.cfg.EnergyCap {
			if !p.energyNotified {
				p.energyNotified = true
				r.sendTo(id, protocol.EvtEnergyThreshold, protocol.EnergyThresholdReached{})
			}
		} else {
			p.energyNotified = false
		}

		if p.damagePerSecond > 0 && enemy != nil {
			enemy.applyDamage(p.damagePerSecond * enemy.damageMult)
		}
	}

	r.checkWinLocked()

	r.broadcast(protocol.EvtGameTick, protocol.GameTick{Timestamp: time.Now().UnixMilli()}, "")
	for _, id := range r.order {
		r.sendPlayerUpdateLocked(id)
	}
}

// Click credits clickPower scaled by the earnings modifier.
func (r *Room) Click(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.players[playerID]
	if p == nil || r.phase != phaseActive {
		return false
	}
	p.money += p.clickPower * p.earningsMult
	r.sendPlayerUpdateLocked(playerID)
	return true
}

// BuyFood converts energy into food at the configured ratio.
func (r *Room) BuyFood(playerID string, amount float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.players[playerID]
	if p == nil || r.phase != phaseActive || amount <= 0 {
		return false
	}
	cost := amount * r.cfg.EnergyPerFood
	if p.energy < cost {
		return false
	}
	p.energy -= cost
	p.food += amount
	if p.energy < r.cfg.EnergyCap {
		p.energyNotified = false
	}
	r.sendPlayerUpdateLocked(playerID)
	return true
}

// BuyUpgrade debits the level-scaled cost, bumps the level and applies the
// category effect once.
func (r *Room) BuyUpgrade(playerID, upgradeID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.players[playerID]
	u, ok := catalog.UpgradeByID(upgradeID)
	if p == nil || !ok || r.phase != phaseActive {
		return false
	}

	level := p.upgrades[upgradeID]
	if u.MaxLevel > 0 && level >= u.MaxLevel {
		return false
	}
	cost := u.CostAtLevel(level)
	if p.money < cost {
		return false
	}

	p.money -= cost
	p.upgrades[upgradeID] = level + 1

	switch u.Category {
	case catalog.CategoryMoneyPassive:
		p.moneyPerSecond += u.EffectPerLevel
	case catalog.CategoryEnergyPassive:
		p.energyPerSecond += u.EffectPerLevel
	case catalog.CategoryHealthMax:
		p.maxHealth += u.EffectPerLevel
		p.health += u.EffectPerLevel
	case catalog.CategoryClickPower:
		p.clickPower += u.EffectPerLevel
	}

	r.sendPlayerUpdateLocked(playerID)
	return true
}

// BuyAttack spends food; instant attacks hit the enemy immediately, passive
// ones raise the buyer's damage per second for the rest of the match.
func (r *Room) BuyAttack(playerID, attackID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.players[playerID]
	enemy := r.enemyOfLocked(playerID)
	a, ok := catalog.AttackByID(attackID)
	if p == nil || enemy == nil || !ok || r.phase != phaseActive {
		return false
	}
	if p.food < a.FoodCost {
		return false
	}

	p.food -= a.FoodCost

	switch a.Type {
	case catalog.AttackInstant:
		dealt := a.Damage * enemy.damageMult
		enemy.applyDamage(dealt)
		r.sendTo(enemy.id, protocol.EvtAttackReceived, protocol.AttackReceived{AttackName: a.Name, Damage: dealt})
	case catalog.AttackPassive:
		p.damagePerSecond += a.Damage
	}

	r.sendPlayerUpdateLocked(playerID)
	r.sendPlayerUpdateLocked(enemy.id)
	r.checkWinLocked()
	return true
}

// BuyItem debits the item's cost; stackable items go to the inventory,
// single-use ones apply immediately.
func (r *Room) BuyItem(playerID, itemID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.players[playerID]
	item, ok := catalog.ItemByID(itemID)
	if p == nil || !ok || r.phase != phaseActive {
		return false
	}

	switch item.Cost.Type {
	case catalog.CostMoney:
		if p.money < item.Cost.Amount {
			return false
		}
		p.money -= item.Cost.Amount
	case catalog.CostFood:
		if p.food < item.Cost.Amount {
			return false
		}
		p.food -= item.Cost.Amount
	default:
		return false
	}

	if item.Stackable {
		p.items[itemID]++
		r.sendPlayerUpdateLocked(playerID)
		return true
	}

	r.applyItemEffectLocked(p, item)
	r.sendPlayerUpdateLocked(playerID)
	if enemy := r.enemyOfLocked(playerID); enemy != nil {
		r.sendPlayerUpdateLocked(enemy.id)
	}
	r.checkWinLocked()
	return true
}

// UseItem consumes one inventory entry and applies its effect.
func (r *Room) UseItem(playerID, itemID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.players[playerID]
	item, ok := catalog.ItemByID(itemID)
	if p == nil || !ok || r.phase != phaseActive {
		return false
	}
	if p.items[itemID] <= 0 {
		return false
	}

	p.items[itemID]--
	if p.items[itemID] <= 0 {
		delete(p.items, itemID)
	}

	r.applyItemEffectLocked(p, item)
	r.sendPlayerUpdateLocked(playerID)
	if enemy := r.enemyOfLocked(playerID); enemy != nil {
		r.sendPlayerUpdateLocked(enemy.id)
	}
	r.checkWinLocked()
	return true
}

func (r *Room) applyItemEffectLocked(p *playerState, item catalog.Item) {
	enemy := r.enemyOfLocked(p.id)

	switch item.Effect.Type {
	case catalog.EffectInstantMoney:
		p.money += item.Effect.Amount
	case catalog.EffectInstantEnergy:
		p.gainEnergy(item.Effect.Amount, r.cfg.EnergyCap)
	case catalog.EffectInstantHealth:
		p.heal(item.Effect.Amount)
	case catalog.EffectInstantDamage:
		if enemy != nil {
			dealt := item.Effect.Amount * enemy.damageMult
			enemy.applyDamage(dealt)
			r.sendTo(enemy.id, protocol.EvtAttackReceived, protocol.AttackReceived{AttackName: item.Name, Damage: dealt})
		}
	case catalog.EffectMoneyPerSecond:
		p.moneyPerSecond += item.Effect.Amount
	case catalog.EffectEnergyPerSecond:
		p.energyPerSecond += item.Effect.Amount
	case catalog.EffectDamagePerSecond:
		p.damagePerSecond += item.Effect.Amount
	case catalog.EffectClickMultiplier:
		// Permanent boost; the item description implies a timed buff but the
		// engine models no timed state.
		p.clickPower *= item.Effect.Multiplier
	}
}

// EnergyChoice resolves the forced selection a player gets at the energy
// cap. The choice must be known before any energy is consumed.
func (r *Room) EnergyChoice(playerID, choiceID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.players[playerID]
	choice, ok := catalog.EnergyChoiceByID(choiceID)
	if p == nil || !ok || r.phase != phaseActive {
		return false
	}
	if p.energy < r.cfg.EnergyCap {
		return false
	}

	p.energy = 0
	p.energyNotified = false

	enemy := r.enemyOfLocked(playerID)
	switch choice.Effect.Type {
	case catalog.ChoiceInstantDamage:
		if enemy != nil {
			dealt := choice.Effect.Value * enemy.damageMult
			enemy.applyDamage(dealt)
			r.sendTo(enemy.id, protocol.EvtAttackReceived, protocol.AttackReceived{AttackName: choice.Name, Damage: dealt})
		}
	case catalog.ChoiceInstantHeal:
		p.heal(choice.Effect.Value)
	case catalog.ChoicePermanentModifier:
		if choice.Effect.EarningsMultiplier != 0 {
			p.earningsMult *= choice.Effect.EarningsMultiplier
		}
		if choice.Effect.PassiveEarningsMultiplier != 0 {
			p.passiveEarningsMult *= choice.Effect.PassiveEarningsMultiplier
		}
		if choice.Effect.DamageMultiplier != 0 {
			p.damageMult *= choice.Effect.DamageMultiplier
		}
	}

	r.sendPlayerUpdateLocked(playerID)
	if enemy != nil {
		r.sendPlayerUpdateLocked(enemy.id)
	}
	r.checkWinLocked()
	return true
}

// RemovePlayer drops a player from the room. Leaving an active match ends it
// with the remaining player as winner.
func (r *Room) RemovePlayer(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.players[playerID] == nil {
		return
	}
	delete(r.players, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	if r.phase == phaseActive {
		if len(r.order) > 0 {
			r.endGameLocked(r.order[0])
		} else {
			r.endGameLocked("")
		}
	}
}

// checkWinLocked resolves the win condition exactly once. Players are
// scanned in join order, so a double knockout in the same tick always
// resolves with the first joiner as the loser.
func (r *Room) checkWinLocked() {
	if r.phase != phaseActive {
		return
	}

	loser := ""
	for _, id := range r.order {
		if p := r.players[id]; p != nil && p.health <= 0 {
			loser = id
			break
		}
	}
	if loser == "" {
		return
	}

	winner := ""
	for _, id := range r.order {
		if id != loser && r.players[id] != nil {
			winner = id
			break
		}
	}
	r.endGameLocked(winner)
}

func (r *Room) endGameLocked(winnerID string) {
	if r.phase == phaseEnded {
		return
	}
	r.phase = phaseEnded
	r.winner = winnerID
	r.stopTickerLocked()

	winnerName := ""
	if w := r.players[winnerID]; w != nil {
		winnerName = w.name
	}
	r.broadcast(protocol.EvtGameEnd, protocol.GameEnd{WinnerID: winnerID, WinnerName: winnerName}, "")
	log.Printf("room %s: game over, winner=%s", r.id, winnerID)
}

// stopTickerLocked cancels the tick goroutine; safe to call any number of
// times.
func (r *Room) stopTickerLocked() {
	if r.tickStop != nil {
		close(r.tickStop)
		r.tickStop = nil
	}
}

// Destroy stops the ticker and seals the room against further mutation.
func (r *Room) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phase = phaseEnded
	r.stopTickerLocked()
}

func (r *Room) enemyOfLocked(playerID string) *playerState {
	for _, id := range r.order {
		if id != playerID {
			return r.players[id]
		}
	}
	return nil
}

func (r *Room) sendPlayerUpdateLocked(playerID string) {
	p := r.players[playerID]
	if p == nil {
		return
	}
	update := protocol.PlayerUpdate{PlayerID: playerID, Player: p.view()}
	r.sendTo(playerID, protocol.EvtPlayerUpdate, update)
	r.broadcast(protocol.EvtEnemyUpdate, update, playerID)
}

func (r *Room) broadcastStateLocked() {
	r.broadcast(protocol.EvtRoomState, protocol.RoomState{GameState: r.snapshotLocked()}, "")
}

func (r *Room) snapshotLocked() protocol.GameState {
	players := make(map[string]protocol.PlayerView, len(r.players))
	for id, p := range r.players {
		players[id] = p.view()
	}
	var winner *string
	if r.winner != "" {
		w := r.winner
		winner = &w
	}
	return protocol.GameState{
		RoomID:      r.id,
		GameStarted: r.phase != phaseWaiting,
		GameEnded:   r.phase == phaseEnded,
		Winner:      winner,
		Players:     players,
	}
}
