package ws

import (
	"encoding/json"
	"testing"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/session"
)

func testManager(t *testing.T) (*Hub, *session.Manager) {
	t.Helper()
	hub := NewHub()
	mgr := session.NewManager(session.ManagerOptions{}, nil, hub, nil)
	t.Cleanup(mgr.DisposeAll)
	hub.Bind(mgr)
	return hub, mgr
}

func TestRoute_ReadyBeforeMatchJoinsQueue(t *testing.T) {
	hub, mgr := testManager(t)
	c := newClient(hub, nil, "sess-1", "user-1", "Zeca")

	c.route(inboundFrame{Type: msgReady})

	st := mgr.Queue().Snapshot()
	if len(st.Players) != 1 || st.Players[0].SessionID != "sess-1" {
		t.Fatalf("ready outside a match must enqueue the player, got %+v", st.Players)
	}
}

func TestRoute_ReadyInsideMatchMarksPlayerReady(t *testing.T) {
	hub, mgr := testManager(t)
	mgr.CreateMatch("M1")
	c := newClient(hub, nil, "sess-1", "user-1", "Zeca")

	c.route(inboundFrame{Type: msgJoinGame, Data: json.RawMessage(`{"match_id":"M1"}`)})
	c.route(inboundFrame{Type: msgReady})

	m, err := mgr.Match("M1")
	if err != nil {
		t.Fatalf("match lookup: %v", err)
	}
	st := m.Snapshot()
	if len(st.Players) != 1 || !st.Players[0].IsReady {
		t.Fatalf("ready inside a match must mark the seat ready, got %+v", st.Players)
	}
	if qst := mgr.Queue().Snapshot(); len(qst.Players) != 0 {
		t.Fatalf("ready inside a match must not touch the queue, got %+v", qst.Players)
	}
}

func TestRoute_JoinQueueFrameCarriesFaction(t *testing.T) {
	hub, mgr := testManager(t)
	c := newClient(hub, nil, "sess-2", "user-2", "Bia")

	c.route(inboundFrame{Type: msgJoinQueue, Data: json.RawMessage(`{"faction":"capoeira"}`)})

	st := mgr.Queue().Snapshot()
	if len(st.Players) != 1 || string(st.Players[0].Faction) != "capoeira" {
		t.Fatalf("join-queue must carry the chosen faction, got %+v", st.Players)
	}
}
