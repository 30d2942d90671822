package srv

import (
	"encoding/json"
	"testing"

	"gatos/server/protocol"
)

// newTestClient registers a client the way HandleWS does, without a real
// connection; the writer goroutine is never started, so messages pile up in
// the buffered send channel where tests can read them.
func newTestClient(h *Hub, id, name string) *client {
	c := &client{send: make(chan []byte, 64), id: id, name: name}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.byID[c.id] = c
	h.mu.Unlock()
	return c
}

func drain(c *client) []protocol.Envelope {
	var out []protocol.Envelope
	for {
		select {
		case msg := <-c.send:
			var env protocol.Envelope
			if json.Unmarshal(msg, &env) == nil {
				out = append(out, env)
			}
		default:
			return out
		}
	}
}

func hasEvent(envs []protocol.Envelope, event string) bool {
	for _, e := range envs {
		if e.Event == event {
			return true
		}
	}
	return false
}

func TestJoinPairsTwoClients(t *testing.T) {
	h := NewHub(testConfig())
	c1 := newTestClient(h, "p1", "")
	c2 := newTestClient(h, "p2", "")

	h.joinRoom(c1, "Whiskers")
	if c1.room == nil {
		t.Fatal("first joiner got no room")
	}
	if h.waiting != c1.room {
		t.Fatal("first joiner's room is not the waiting room")
	}

	h.joinRoom(c2, "Mittens")
	if c2.room != c1.room {
		t.Fatal("second joiner paired into a different room")
	}
	if h.waiting != nil {
		t.Fatal("full room still advertised as waiting")
	}
	if got := c1.room.PlayerCount(); got != 2 {
		t.Fatalf("room has %d players, want 2", got)
	}
}

func TestThirdJoinerGetsFreshRoom(t *testing.T) {
	h := NewHub(testConfig())
	c1 := newTestClient(h, "p1", "")
	c2 := newTestClient(h, "p2", "")
	c3 := newTestClient(h, "p3", "")

	h.joinRoom(c1, "Whiskers")
	h.joinRoom(c2, "Mittens")
	h.joinRoom(c3, "Tom")

	if c3.room == nil || c3.room == c1.room {
		t.Fatal("third joiner was not placed in a fresh room")
	}
	if h.waiting != c3.room {
		t.Fatal("fresh room is not the waiting room")
	}
	if len(h.rooms) != 2 {
		t.Fatalf("registry has %d rooms, want 2", len(h.rooms))
	}
}

func TestJoinTwiceRejected(t *testing.T) {
	h := NewHub(testConfig())
	c1 := newTestClient(h, "p1", "")

	h.joinRoom(c1, "Whiskers")
	room := c1.room
	drain(c1)

	h.joinRoom(c1, "Whiskers")
	if c1.room != room {
		t.Fatal("second join moved the client")
	}
	if !hasEvent(drain(c1), protocol.EvtError) {
		t.Fatal("second join did not produce an error")
	}
}

func TestBroadcastExcludesAndTargets(t *testing.T) {
	h := NewHub(testConfig())
	c1 := newTestClient(h, "p1", "")
	c2 := newTestClient(h, "p2", "")
	h.joinRoom(c1, "Whiskers")
	h.joinRoom(c2, "Mittens")
	room := c1.room
	drain(c1)
	drain(c2)

	h.broadcastToRoom(room, protocol.EvtGameStart, protocol.GameStart{}, "")
	if !hasEvent(drain(c1), protocol.EvtGameStart) || !hasEvent(drain(c2), protocol.EvtGameStart) {
		t.Fatal("broadcast missed a room member")
	}

	h.broadcastToRoom(room, protocol.EvtEnemyUpdate, protocol.PlayerUpdate{PlayerID: "p1"}, "p1")
	if hasEvent(drain(c1), protocol.EvtEnemyUpdate) {
		t.Fatal("excluded client received the broadcast")
	}
	if !hasEvent(drain(c2), protocol.EvtEnemyUpdate) {
		t.Fatal("other client missed the broadcast")
	}

	h.sendToPlayer(room, "p2", protocol.EvtAttackReceived, protocol.AttackReceived{})
	if hasEvent(drain(c1), protocol.EvtAttackReceived) {
		t.Fatal("targeted send leaked to the wrong client")
	}
	if !hasEvent(drain(c2), protocol.EvtAttackReceived) {
		t.Fatal("targeted send did not arrive")
	}
}

func TestDisconnectDestroysEmptyRoom(t *testing.T) {
	h := NewHub(testConfig())
	c1 := newTestClient(h, "p1", "")
	h.joinRoom(c1, "Whiskers")
	room := c1.room

	h.disconnect(c1)
	if _, ok := h.rooms[room.ID()]; ok {
		t.Fatal("empty room not destroyed")
	}
	if h.waiting != nil {
		t.Fatal("destroyed room still advertised as waiting")
	}
	if _, ok := h.byID["p1"]; ok {
		t.Fatal("client still registered after disconnect")
	}
}

func TestDisconnectNotifiesRemainingPlayer(t *testing.T) {
	h := NewHub(testConfig())
	c1 := newTestClient(h, "p1", "")
	c2 := newTestClient(h, "p2", "")
	h.joinRoom(c1, "Whiskers")
	h.joinRoom(c2, "Mittens")
	room := c1.room
	room.SetReady("p1")
	room.SetReady("p2")
	drain(c2)

	h.disconnect(c1)

	envs := drain(c2)
	if !hasEvent(envs, protocol.EvtDisconnected) {
		t.Fatal("remaining player not told about the disconnect")
	}
	if !hasEvent(envs, protocol.EvtGameEnd) {
		t.Fatal("active game did not end on disconnect")
	}
	var end protocol.GameEnd
	for _, e := range envs {
		if e.Event == protocol.EvtGameEnd {
			_ = json.Unmarshal(e.Data, &end)
		}
	}
	if end.WinnerID != "p2" {
		t.Fatalf("winner = %q, want the remaining player p2", end.WinnerID)
	}
	if _, ok := h.rooms[room.ID()]; !ok {
		t.Fatal("room with a remaining player was destroyed")
	}
}

func TestWaitingRoomReusedAfterLeave(t *testing.T) {
	h := NewHub(testConfig())
	c1 := newTestClient(h, "p1", "")
	c2 := newTestClient(h, "p2", "")
	c3 := newTestClient(h, "p3", "")

	h.joinRoom(c1, "Whiskers")
	h.joinRoom(c2, "Mittens") // room full, waiting cleared
	h.disconnect(c2)          // seat freed before the match started

	h.joinRoom(c3, "Tom")
	if c3.room != c1.room {
		t.Fatal("freed waiting-room seat was not reused")
	}
}

func TestEndedRoomNotReused(t *testing.T) {
	h := NewHub(testConfig())
	c1 := newTestClient(h, "p1", "")
	c2 := newTestClient(h, "p2", "")
	c3 := newTestClient(h, "p3", "")

	h.joinRoom(c1, "Whiskers")
	h.joinRoom(c2, "Mittens")
	room := c1.room
	room.SetReady("p1")
	room.SetReady("p2")
	h.disconnect(c2) // ends the match, c1 remains

	h.joinRoom(c3, "Tom")
	if c3.room == room {
		t.Fatal("joiner seated in an ended room")
	}
}
