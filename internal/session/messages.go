package session

import (
	"time"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
)

// Msg is one inbound session input: a player action, a join/leave event or
// a timer firing. Messages are processed strictly one at a time by the
// owning actor, so reducers never see concurrent mutation.
type Msg interface{ isMsg() }

// Match messages.

// Join adds a player to a match that still has a free seat.
type Join struct{ Player game.GamePlayer }

// Ready marks a player ready; when both seats are ready the match starts.
type Ready struct{ SessionID string }

// PlayCard is the simplified direct-damage channel: the acting player hits
// the named target. The authoritative round engine is ApplyRound.
type PlayCard struct {
	SessionID string
	TargetID  string
	Damage    int
	CardID    string
}

// EndTurn alternates the turn; a full cycle advances the round.
type EndTurn struct{ SessionID string }

// Concede ends the match immediately in favor of the other player.
type Concede struct{ SessionID string }

// Disconnect reports that a player's transport dropped.
type Disconnect struct{ SessionID string }

// Queue messages.

// QueueJoin enqueues a player for matchmaking.
type QueueJoin struct{ Player QueuedPlayer }

// QueueCancel removes a player from the queue.
type QueueCancel struct{ SessionID string }

// FindMatch explicitly re-triggers the matching check. Idempotent when the
// queue is already matching or matched.
type FindMatch struct{ SessionID string }

// PlayerTimeout removes a player whose liveness could not be confirmed,
// with the same semantics as a cancel.
type PlayerTimeout struct{ SessionID string }

// TimerFired is injected by the hosting actor when a scheduled timer
// elapses.
type TimerFired struct{ Kind TimerKind }

func (Join) isMsg()          {}
func (Ready) isMsg()         {}
func (PlayCard) isMsg()      {}
func (EndTurn) isMsg()       {}
func (Concede) isMsg()       {}
func (Disconnect) isMsg()    {}
func (QueueJoin) isMsg()     {}
func (QueueCancel) isMsg()   {}
func (FindMatch) isMsg()     {}
func (PlayerTimeout) isMsg() {}
func (TimerFired) isMsg()    {}

// TimerKind identifies a scheduled transition source. Every pending timer
// is cancelled on terminal transitions and on disposal.
type TimerKind string

const (
	TimerMatchTimeout  TimerKind = "match_timeout"
	TimerMatchingDelay TimerKind = "matching_delay"
	TimerJoinHandoff   TimerKind = "join_handoff"
)

// Outbound event types delivered through the transport sink.
const (
	EventState      = "state"
	EventGameEnded  = "game-ended"
	EventQueueState = "queue-state"
	EventMatchFound = "match-found"
	EventJoinGame   = "join-game"
)

// Effect is a side effect requested by a reducer. The hosting actor owns
// execution: scheduling, cancellation, transport writes and persistence.
type Effect interface{ isEffect() }

// Broadcast delivers an event to every player present in the session.
type Broadcast struct {
	Event string
	Data  any
}

// SendTo delivers an event to a single player.
type SendTo struct {
	SessionID string
	Event     string
	Data      any
}

// StartTimer schedules a TimerFired message after the given delay.
type StartTimer struct {
	Kind  TimerKind
	After time.Duration
}

// CancelTimer stops a pending timer, if any.
type CancelTimer struct{ Kind TimerKind }

// RecordMatch persists the terminal outcome of a match.
type RecordMatch struct{ Record game.MatchRecord }

// RejectJoin surfaces a capacity error to the joining caller. All other
// invalid inputs are absorbed silently.
type RejectJoin struct {
	SessionID string
	Reason    string
}

// StartMatch asks the hosting service to open a match session for the
// paired players.
type StartMatch struct {
	MatchID string
	Players []QueuedPlayer
}

func (Broadcast) isEffect()   {}
func (SendTo) isEffect()      {}
func (StartTimer) isEffect()  {}
func (CancelTimer) isEffect() {}
func (RecordMatch) isEffect() {}
func (RejectJoin) isEffect()  {}
func (StartMatch) isEffect()  {}
