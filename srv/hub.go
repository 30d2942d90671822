package srv

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"gatos/server/protocol"
)

type client struct {
	conn *websocket.Conn
	send chan []byte
	id   string
	name string
	room *Room
}

// Hub owns the connection registry: it assigns participant ids, pairs
// joiners into rooms, routes inbound envelopes to room methods and fans
// room-emitted events back out to the right connections. It holds no
// simulation state of its own.
type Hub struct {
	cfg Config

	mu      sync.Mutex
	clients map[*client]struct{}
	byID    map[string]*client
	rooms   map[string]*Room
	waiting *Room // current room with a free seat, nil if none
}

func NewHub(cfg Config) *Hub {
	return &Hub{
		cfg:     cfg,
		clients: make(map[*client]struct{}),
		byID:    make(map[string]*client),
		rooms:   make(map[string]*Room),
	}
}

// HandleWS runs the session for one upgraded connection. name is the
// authenticated account name, or empty for a guest who will name themselves
// on join. Blocks until the connection closes.
func (h *Hub) HandleWS(conn *websocket.Conn, name string) {
	c := &client{
		conn: conn,
		send: make(chan []byte, 64),
		id:   "player-" + uuid.NewString()[:8],
		name: name,
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.byID[c.id] = c
	h.mu.Unlock()

	go c.writer()
	sendJSON(c, protocol.EvtConnected, protocol.Connected{
		PlayerID: c.id,
		Message:  "connected to cat battle server",
	})
	c.reader(h)
}

func (c *client) reader(h *Hub) {
	defer h.disconnect(c)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var env protocol.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.Printf("client %s: malformed message: %v", c.id, err)
			h.sendError(c, "malformed message")
			continue
		}

		switch env.Event {
		case protocol.EvtJoin:
			var msg protocol.Join
			_ = json.Unmarshal(env.Data, &msg)
			name := c.name // authenticated name wins over the payload
			if name == "" {
				name = strings.TrimSpace(msg.PlayerName)
			}
			if name == "" {
				h.sendError(c, "invalid player name")
				continue
			}
			h.joinRoom(c, name)

		case protocol.EvtReady:
			if room := h.roomOf(c); room == nil {
				h.sendError(c, "not in a room")
			} else if !room.SetReady(c.id) {
				h.sendError(c, "cannot ready up now")
			}

		case protocol.EvtClick:
			if room := h.roomOf(c); room != nil {
				room.Click(c.id)
			}

		case protocol.EvtBuyFood:
			var msg protocol.BuyFood
			_ = json.Unmarshal(env.Data, &msg)
			if msg.Amount <= 0 {
				msg.Amount = h.cfg.DefaultFoodAmount
			}
			if room := h.roomOf(c); room == nil || !room.BuyFood(c.id, msg.Amount) {
				h.sendError(c, "not enough energy")
			}

		case protocol.EvtBuyUpgrade:
			var msg protocol.BuyUpgrade
			_ = json.Unmarshal(env.Data, &msg)
			if room := h.roomOf(c); room == nil || !room.BuyUpgrade(c.id, msg.UpgradeID) {
				h.sendError(c, "cannot buy this upgrade")
			}

		case protocol.EvtBuyAttack:
			var msg protocol.BuyAttack
			_ = json.Unmarshal(env.Data, &msg)
			if room := h.roomOf(c); room == nil || !room.BuyAttack(c.id, msg.AttackID) {
				h.sendError(c, "not enough food")
			}

		case protocol.EvtBuyItem:
			var msg protocol.BuyItem
			_ = json.Unmarshal(env.Data, &msg)
			if room := h.roomOf(c); room == nil || !room.BuyItem(c.id, msg.ItemID) {
				h.sendError(c, "cannot buy this item")
			}

		case protocol.EvtUseItem:
			var msg protocol.UseItem
			_ = json.Unmarshal(env.Data, &msg)
			if room := h.roomOf(c); room == nil || !room.UseItem(c.id, msg.ItemID) {
				h.sendError(c, "cannot use this item")
			}

		case protocol.EvtEnergyChoice:
			var msg protocol.EnergyChoice
			_ = json.Unmarshal(env.Data, &msg)
			if room := h.roomOf(c); room == nil || !room.EnergyChoice(c.id, msg.ChoiceID) {
				h.sendError(c, "cannot make this choice")
			}

		default:
			h.sendError(c, "unknown event: "+env.Event)
		}
	}
}

// joinRoom seats a client in the waiting room, creating one when needed.
// Seat bookkeeping happens under the hub lock; the room mutation itself runs
// outside it (lock order is room -> hub). The retry loop covers the rare
// case where the chosen room died between the two steps.
func (h *Hub) joinRoom(c *client, name string) {
	for attempt := 0; attempt < 3; attempt++ {
		h.mu.Lock()
		if c.room != nil {
			h.mu.Unlock()
			h.sendError(c, "already in a room")
			return
		}
		c.name = name
		room := h.waiting
		if room == nil {
			room = h.createRoomLocked()
			h.waiting = room
		}
		c.room = room
		if h.seatedLocked(room) >= 2 {
			h.waiting = nil
		}
		h.mu.Unlock()

		if room.AddPlayer(c.id, name) {
			log.Printf("client %s (%s) joined room %s", c.id, name, room.ID())
			return
		}

		// The room filled or was destroyed under us; release the seat and
		// try again with a fresh one.
		h.mu.Lock()
		c.room = nil
		if h.waiting == room {
			h.waiting = nil
		}
		h.mu.Unlock()
	}
	h.sendError(c, "could not join a room")
}

func (h *Hub) createRoomLocked() *Room {
	room := NewRoom(h.cfg)
	room.broadcast = func(event string, data any, excludeID string) {
		h.broadcastToRoom(room, event, data, excludeID)
	}
	room.sendTo = func(playerID, event string, data any) {
		h.sendToPlayer(room, playerID, event, data)
	}
	h.rooms[room.ID()] = room
	log.Printf("room %s created", room.ID())
	return room
}

// seatedLocked counts connections assigned to a room, including seats whose
// AddPlayer call is still in flight.
func (h *Hub) seatedLocked(room *Room) int {
	n := 0
	for c := range h.clients {
		if c.room == room {
			n++
		}
	}
	return n
}

func (h *Hub) roomOf(c *client) *Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	return c.room
}

// disconnect tears a client down: registry removal, room leave, empty-room
// destruction, and the courtesy notification to whoever is left. Closing the
// send channel stops the writer, whose defer closes the connection.
func (h *Hub) disconnect(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	delete(h.byID, c.id)
	room := c.room
	c.room = nil
	h.mu.Unlock()

	// Nothing can reach c.send after registry removal.
	close(c.send)

	if room == nil {
		log.Printf("client %s disconnected", c.id)
		return
	}

	room.RemovePlayer(c.id)
	if room.PlayerCount() == 0 {
		room.Destroy()
		h.mu.Lock()
		delete(h.rooms, room.ID())
		if h.waiting == room {
			h.waiting = nil
		}
		h.mu.Unlock()
		log.Printf("room %s destroyed", room.ID())
	} else {
		h.broadcastToRoom(room, protocol.EvtDisconnected, protocol.Disconnected{
			PlayerID:   c.id,
			PlayerName: c.name,
		}, "")
		// A waiting room with a freed seat goes back to accepting joiners.
		if room.Joinable() {
			h.mu.Lock()
			if h.waiting == nil {
				h.waiting = room
			}
			h.mu.Unlock()
		}
	}
	log.Printf("client %s (%s) disconnected from room %s", c.id, c.name, room.ID())
}

// Shutdown destroys every room and closes every connection.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	rooms := make([]*Room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.rooms = make(map[string]*Room)
	h.waiting = nil
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c.conn)
	}
	h.mu.Unlock()

	for _, r := range rooms {
		r.Destroy()
	}
	for _, conn := range conns {
		if conn != nil {
			conn.Close()
		}
	}
}

func (h *Hub) broadcastToRoom(room *Room, event string, data any, excludeID string) {
	msg, err := marshalEnvelope(event, data)
	if err != nil {
		log.Printf("marshal %s: %v", event, err)
		return
	}
	h.mu.Lock()
	for c := range h.clients {
		if c.room == room && c.id != excludeID {
			c.enqueue(msg)
		}
	}
	h.mu.Unlock()
}

func (h *Hub) sendToPlayer(room *Room, playerID, event string, data any) {
	msg, err := marshalEnvelope(event, data)
	if err != nil {
		log.Printf("marshal %s: %v", event, err)
		return
	}
	h.mu.Lock()
	if c := h.byID[playerID]; c != nil && c.room == room {
		c.enqueue(msg)
	}
	h.mu.Unlock()
}

func (h *Hub) sendError(c *client, message string) {
	sendJSON(c, protocol.EvtError, protocol.ErrorMsg{Message: message})
}

func marshalEnvelope(event string, data any) ([]byte, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(protocol.Envelope{Event: event, Data: b})
}

func sendJSON(c *client, event string, data any) {
	msg, err := marshalEnvelope(event, data)
	if err != nil {
		log.Printf("marshal %s: %v", event, err)
		return
	}
	c.enqueue(msg)
}

// enqueue drops the message when the client's buffer is full rather than
// blocking the simulation on a slow reader.
func (c *client) enqueue(msg []byte) {
	select {
	case c.send <- msg:
	default:
	}
}

func (c *client) writer() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
