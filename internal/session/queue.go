package session

import (
	"time"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
)

const (
	// DefaultQueueSize is the seat count for the 1v1 game mode.
	DefaultQueueSize = 2
	// DefaultMatchingDelay simulates the matching work before pairing.
	DefaultMatchingDelay = 1 * time.Second
	// DefaultHandoffDelay is the pause between announcing the match and
	// instructing each client to join it.
	DefaultHandoffDelay = 500 * time.Millisecond
)

// RoomFullReason is surfaced to a caller that tries to join a full queue.
const RoomFullReason = "room full"

// QueuedPlayer is one waiting entry in the matchmaking queue.
type QueuedPlayer struct {
	SessionID string       `json:"session_id"`
	UserID    string       `json:"user_id"`
	Username  string       `json:"username"`
	Faction   game.Faction `json:"faction"`
	Status    string       `json:"status"`
	JoinedAt  time.Time    `json:"joined_at"`
}

// QueueState is the pre-match pairing state machine.
type QueueState struct {
	Status     string         `json:"status"`
	MaxPlayers int            `json:"max_players"`
	Players    []QueuedPlayer `json:"players"`
	MatchID    string         `json:"match_id,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`

	MatchingDelay time.Duration `json:"-"`
	HandoffDelay  time.Duration `json:"-"`
}

// QueueOptions configures a new queue room.
type QueueOptions struct {
	MaxPlayers    int
	MatchingDelay time.Duration
	HandoffDelay  time.Duration
}

// NewQueueState builds an empty `waiting` queue.
func NewQueueState(opts QueueOptions, now time.Time) QueueState {
	st := QueueState{
		Status:        game.QueueWaiting,
		MaxPlayers:    opts.MaxPlayers,
		Players:       []QueuedPlayer{},
		CreatedAt:     now,
		MatchingDelay: opts.MatchingDelay,
		HandoffDelay:  opts.HandoffDelay,
	}
	if st.MaxPlayers <= 0 {
		st.MaxPlayers = DefaultQueueSize
	}
	if st.MatchingDelay <= 0 {
		st.MatchingDelay = DefaultMatchingDelay
	}
	if st.HandoffDelay <= 0 {
		st.HandoffDelay = DefaultHandoffDelay
	}
	return st
}

// ReduceQueue applies one message to a queue state. newID generates match
// identifiers and is injected so tests stay deterministic.
func ReduceQueue(st QueueState, msg Msg, newID func() string) (QueueState, []Effect) {
	st.Players = append([]QueuedPlayer(nil), st.Players...)
	switch m := msg.(type) {
	case QueueJoin:
		return reduceQueueJoin(st, m)
	case QueueCancel:
		return reduceQueueLeave(st, m.SessionID)
	case PlayerTimeout:
		return reduceQueueLeave(st, m.SessionID)
	case FindMatch:
		return maybeStartMatching(st, nil)
	case TimerFired:
		return reduceQueueTimer(st, m.Kind, newID)
	default:
		return st, nil
	}
}

func reduceQueueJoin(st QueueState, m QueueJoin) (QueueState, []Effect) {
	if st.Status == game.QueueMatched || st.Status == game.QueueCancelled {
		return st, nil
	}
	for i := range st.Players {
		if st.Players[i].SessionID == m.Player.SessionID {
			// Re-join with the same session id supports reconnection.
			return st, nil
		}
	}
	if len(st.Players) >= st.MaxPlayers {
		return st, []Effect{RejectJoin{SessionID: m.Player.SessionID, Reason: RoomFullReason}}
	}
	p := m.Player
	p.Status = game.QueueWaiting
	if p.Faction == "" {
		p.Faction = game.DefaultFaction
	}
	st.Players = append(st.Players, p)
	return maybeStartMatching(st, []Effect{Broadcast{Event: EventQueueState, Data: st}})
}

func reduceQueueLeave(st QueueState, sessionID string) (QueueState, []Effect) {
	if st.Status == game.QueueMatched {
		return st, nil
	}
	idx := -1
	for i := range st.Players {
		if st.Players[i].SessionID == sessionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return st, nil
	}
	st.Players = append(st.Players[:idx:idx], st.Players[idx+1:]...)

	effects := []Effect{Broadcast{Event: EventQueueState, Data: st}}
	if len(st.Players) < st.MaxPlayers && st.Status == game.QueueMatching {
		st.Status = game.QueueWaiting
		effects = append(effects, CancelTimer{Kind: TimerMatchingDelay})
	}
	return st, effects
}

// maybeStartMatching arms the matching delay once enough players wait.
// Idempotent when already matching or matched.
func maybeStartMatching(st QueueState, effects []Effect) (QueueState, []Effect) {
	if st.Status != game.QueueWaiting || len(st.Players) < st.MaxPlayers {
		return st, effects
	}
	st.Status = game.QueueMatching
	for i := range st.Players {
		st.Players[i].Status = game.QueueMatching
	}
	effects = append(effects, StartTimer{Kind: TimerMatchingDelay, After: st.MatchingDelay})
	return st, effects
}

func reduceQueueTimer(st QueueState, kind TimerKind, newID func() string) (QueueState, []Effect) {
	switch kind {
	case TimerMatchingDelay:
		if st.Status != game.QueueMatching {
			return st, nil
		}
		if len(st.Players) < st.MaxPlayers {
			st.Status = game.QueueWaiting
			return st, nil
		}
		st.Status = game.QueueMatched
		st.MatchID = newID()
		for i := range st.Players {
			st.Players[i].Status = game.QueueMatched
		}
		return st, []Effect{
			StartMatch{MatchID: st.MatchID, Players: st.Players},
			Broadcast{Event: EventMatchFound, Data: map[string]any{
				"match_id": st.MatchID,
				"players":  st.Players,
			}},
			StartTimer{Kind: TimerJoinHandoff, After: st.HandoffDelay},
		}
	case TimerJoinHandoff:
		if st.Status != game.QueueMatched {
			return st, nil
		}
		effects := make([]Effect, 0, len(st.Players))
		for _, p := range st.Players {
			effects = append(effects, SendTo{
				SessionID: p.SessionID,
				Event:     EventJoinGame,
				Data:      map[string]any{"match_id": st.MatchID},
			})
		}
		return st, effects
	default:
		return st, nil
	}
}
