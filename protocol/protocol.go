package protocol

import "encoding/json"

// Envelope wraps every message on the wire, in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ================= C -> S =================

const (
	EvtJoin         = "player:join"
	EvtReady        = "player:ready"
	EvtClick        = "player:click"
	EvtBuyFood      = "player:buy_food"
	EvtBuyUpgrade   = "player:buy_upgrade"
	EvtBuyAttack    = "player:buy_attack"
	EvtBuyItem      = "player:buy_item"
	EvtUseItem      = "player:use_item"
	EvtEnergyChoice = "player:energy_choice"
)

// ================= S -> C =================

const (
	EvtConnected       = "connected"
	EvtRoomState       = "room:state"
	EvtGameStart       = "game:start"
	EvtGameTick        = "game:tick"
	EvtPlayerUpdate    = "player:update"
	EvtEnemyUpdate     = "enemy:update"
	EvtAttackReceived  = "attack:received"
	EvtEnergyThreshold = "energy:threshold_reached"
	EvtDisconnected    = "player:disconnected"
	EvtGameEnd         = "game:end"
	EvtError           = "error"
)
