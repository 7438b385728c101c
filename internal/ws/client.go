package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/logging"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/session"
)

// Inbound frame types. Outbound types reuse the session event names.
const (
	msgJoinQueue   = "join-queue"
	msgCancelQueue = "cancel-queue"
	msgFindMatch   = "find-match"
	msgJoinGame    = "join-game"
	msgReady       = "ready"
	msgPlayCard    = "play-card"
	msgEndTurn     = "end-turn"
	msgConcede     = "concede"
)

const (
	// EventYou tells a client its own session id right after connecting.
	EventYou = "you"
	// EventError reports a rejected client request.
	EventError = "error"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 16
)

type inboundFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Client is one websocket connection. The write side is serialized through
// the outbound channel because gorilla connections do not allow concurrent
// writers.
type Client struct {
	sessionID string
	userID    string
	username  string

	hub  *Hub
	conn *websocket.Conn

	outbound  chan Frame
	closeOnce sync.Once
	closed    chan struct{}

	mu      sync.Mutex
	matchID string
}

func newClient(hub *Hub, conn *websocket.Conn, sessionID, userID, username string) *Client {
	return &Client{
		sessionID: sessionID,
		userID:    userID,
		username:  username,
		hub:       hub,
		conn:      conn,
		outbound:  make(chan Frame, sendBufferSize),
		closed:    make(chan struct{}),
	}
}

func (c *Client) enqueue(f Frame) {
	select {
	case c.outbound <- f:
	case <-c.closed:
	default:
		// A client that stops draining its socket loses the connection
		// instead of blocking the game loop.
		logging.Error("ws send buffer full, dropping client", nil, logging.Fields{"session_id": c.sessionID})
		c.close()
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		_ = c.conn.Close()
	})
}

func (c *Client) writePump() {
	for {
		select {
		case f := <-c.outbound:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(f); err != nil {
				c.close()
				return
			}
		case <-c.closed:
			return
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.close()
		c.hub.unregister(c)
	}()
	for {
		var in inboundFrame
		if err := c.conn.ReadJSON(&in); err != nil {
			return
		}
		c.route(in)
	}
}

func (c *Client) route(in inboundFrame) {
	mgr := c.hub.manager
	if mgr == nil {
		return
	}
	switch in.Type {
	case msgJoinQueue:
		var body struct {
			Faction game.Faction `json:"faction"`
		}
		_ = json.Unmarshal(in.Data, &body)
		c.joinQueue(body.Faction)
	case msgCancelQueue:
		mgr.Queue().Post(session.QueueCancel{SessionID: c.sessionID})
	case msgFindMatch:
		mgr.Queue().Post(session.FindMatch{SessionID: c.sessionID})
	case msgJoinGame:
		var body struct {
			MatchID string       `json:"match_id"`
			Faction game.Faction `json:"faction"`
		}
		_ = json.Unmarshal(in.Data, &body)
		m, err := mgr.Match(body.MatchID)
		if err != nil {
			c.enqueue(Frame{Type: EventError, Data: map[string]string{"message": err.Error()}})
			return
		}
		c.setMatch(body.MatchID)
		m.Post(session.Join{Player: game.GamePlayer{
			SessionID: c.sessionID,
			UserID:    c.userID,
			Username:  c.username,
			Faction:   body.Faction,
		}})
	case msgReady:
		// Before a match is joined, ready is the queue entry signal.
		if c.currentMatch() == "" {
			c.joinQueue("")
			return
		}
		c.postToMatch(session.Ready{SessionID: c.sessionID})
	case msgPlayCard:
		var body struct {
			TargetID string `json:"target_id"`
			Damage   int    `json:"damage"`
			CardID   string `json:"card_id"`
		}
		_ = json.Unmarshal(in.Data, &body)
		c.postToMatch(session.PlayCard{
			SessionID: c.sessionID,
			TargetID:  body.TargetID,
			Damage:    body.Damage,
			CardID:    body.CardID,
		})
	case msgEndTurn:
		c.postToMatch(session.EndTurn{SessionID: c.sessionID})
	case msgConcede:
		c.postToMatch(session.Concede{SessionID: c.sessionID})
	default:
		logging.Debug("ws unknown frame type", logging.Fields{"session_id": c.sessionID, "type": in.Type})
	}
}

func (c *Client) joinQueue(faction game.Faction) {
	err := c.hub.manager.Queue().Join(session.QueuedPlayer{
		SessionID: c.sessionID,
		UserID:    c.userID,
		Username:  c.username,
		Faction:   faction,
		JoinedAt:  time.Now(),
	})
	if err != nil {
		c.enqueue(Frame{Type: EventError, Data: map[string]string{"message": err.Error()}})
	}
}

func (c *Client) setMatch(matchID string) {
	c.mu.Lock()
	c.matchID = matchID
	c.mu.Unlock()
}

func (c *Client) currentMatch() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.matchID
}

func (c *Client) postToMatch(msg session.Msg) {
	matchID := c.currentMatch()
	if matchID == "" {
		c.enqueue(Frame{Type: EventError, Data: map[string]string{"message": session.ErrMatchNotFound.Error()}})
		return
	}
	m, err := c.hub.manager.Match(matchID)
	if err != nil {
		c.enqueue(Frame{Type: EventError, Data: map[string]string{"message": err.Error()}})
		return
	}
	m.Post(msg)
}
