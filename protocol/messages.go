package protocol

// ================= C -> S payloads =================

type Join struct {
	PlayerName string `json:"playerName"`
}

type BuyFood struct {
	Amount float64 `json:"amount"`
}

type BuyUpgrade struct {
	UpgradeID string `json:"upgradeId"`
}

type BuyAttack struct {
	AttackID string `json:"attackId"`
}

type BuyItem struct {
	ItemID string `json:"itemId"`
}

type UseItem struct {
	ItemID string `json:"itemId"`
}

type EnergyChoice struct {
	ChoiceID string `json:"choiceId"`
}

// ================= S -> C payloads =================

type Connected struct {
	PlayerID string `json:"playerId"`
	Message  string `json:"message"`
}

// Modifiers are the compounding multiplicative factors on a player.
type Modifiers struct {
	EarningsMultiplier        float64 `json:"earningsMultiplier"`
	PassiveEarningsMultiplier float64 `json:"passiveEarningsMultiplier"`
	DamageMultiplier          float64 `json:"damageMultiplier"`
}

// PlayerView is the full serialized state of one player. The same shape is
// sent as "player:update" to the owner and mirrored as "enemy:update" to the
// other side.
type PlayerView struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Ready           bool           `json:"ready"`
	Health          float64        `json:"health"`
	MaxHealth       float64        `json:"maxHealth"`
	Money           float64        `json:"money"`
	Energy          float64        `json:"energy"`
	Food            float64        `json:"food"`
	MoneyPerSecond  float64        `json:"moneyPerSecond"`
	EnergyPerSecond float64        `json:"energyPerSecond"`
	DamagePerSecond float64        `json:"damagePerSecond"`
	ClickPower      float64        `json:"clickPower"`
	Modifiers       Modifiers      `json:"modifiers"`
	Upgrades        map[string]int `json:"upgrades"`
	Items           map[string]int `json:"items"`
}

// GameState is the full room snapshot sent on join/ready/start transitions.
type GameState struct {
	RoomID      string                `json:"roomId"`
	GameStarted bool                  `json:"gameStarted"`
	GameEnded   bool                  `json:"gameEnded"`
	Winner      *string               `json:"winner"`
	Players     map[string]PlayerView `json:"players"`
}

type RoomState struct {
	GameState GameState `json:"gameState"`
}

type GameStart struct{}

type GameTick struct {
	Timestamp int64 `json:"timestamp"`
}

type PlayerUpdate struct {
	PlayerID string     `json:"playerId"`
	Player   PlayerView `json:"player"`
}

type AttackReceived struct {
	AttackName string  `json:"attackName"`
	Damage     float64 `json:"damage"`
}

type EnergyThresholdReached struct{}

type Disconnected struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type GameEnd struct {
	WinnerID   string `json:"winnerId"`
	WinnerName string `json:"winnerName"`
}

type ErrorMsg struct {
	Message string `json:"message"`
}
