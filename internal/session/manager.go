package session

import (
	"sync"
	"time"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/logging"
)

// disposalGrace keeps a finished match around long enough for clients to
// fetch the final state before the session is torn down.
const disposalGrace = 1 * time.Minute

// Manager owns the live session instances: the matchmaking queue and the
// match sessions it spawns. It is the MatchStarter the queue calls into,
// so the whole pairing-to-handoff path is explicit instance wiring rather
// than process-wide globals.
type Manager struct {
	mu      sync.RWMutex
	matches map[string]*MatchSession
	queue   *Queue

	clock    Clock
	sink     Sink
	recorder Recorder
	cardPool []game.Card
	timeout  time.Duration
}

// ManagerOptions configures the session manager.
type ManagerOptions struct {
	CardPool     []game.Card
	MatchTimeout time.Duration
	Queue        QueueOptions
}

// NewManager wires the queue and the match factory together.
func NewManager(opts ManagerOptions, clock Clock, sink Sink, recorder Recorder) *Manager {
	if clock == nil {
		clock = RealClock{}
	}
	m := &Manager{
		matches:  make(map[string]*MatchSession),
		clock:    clock,
		sink:     sink,
		recorder: recorder,
		cardPool: opts.CardPool,
		timeout:  opts.MatchTimeout,
	}
	m.queue = NewQueue(opts.Queue, clock, sink, m, nil)
	return m
}

// Queue returns the matchmaking queue room.
func (m *Manager) Queue() *Queue { return m.queue }

// StartMatch opens a match session pre-seeded with the paired players.
// Called by the queue when matching completes.
func (m *Manager) StartMatch(matchID string, players []QueuedPlayer) {
	seeded := make([]game.GamePlayer, 0, len(players))
	for _, p := range players {
		seeded = append(seeded, game.GamePlayer{
			SessionID: p.SessionID,
			UserID:    p.UserID,
			Username:  p.Username,
			Faction:   p.Faction,
		})
	}
	s := NewMatchSession(MatchOptions{
		MatchID:  matchID,
		Players:  seeded,
		CardPool: m.cardPool,
		Timeout:  m.timeout,
	}, m.clock, m.sink, m.recorder, nil)

	m.mu.Lock()
	m.matches[matchID] = s
	m.mu.Unlock()
	logging.Info("match session opened", logging.Fields{"match_id": matchID, "players": len(players)})
}

// CreateMatch opens an empty match session that accepts ad-hoc joins.
func (m *Manager) CreateMatch(matchID string) *MatchSession {
	s := NewMatchSession(MatchOptions{
		MatchID:  matchID,
		CardPool: m.cardPool,
		Timeout:  m.timeout,
	}, m.clock, m.sink, m.recorder, nil)
	m.mu.Lock()
	m.matches[matchID] = s
	m.mu.Unlock()
	return s
}

// Match looks a live session up by match identifier.
func (m *Manager) Match(matchID string) (*MatchSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.matches[matchID]; ok {
		return s, nil
	}
	return nil, ErrMatchNotFound
}

// Disconnect fans a transport drop out to every live session the player
// participates in.
func (m *Manager) Disconnect(sessionID string) {
	m.queue.Post(QueueCancel{SessionID: sessionID})
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.matches {
		s.Post(Disconnect{SessionID: sessionID})
	}
}

// Reap disposes sessions that finished more than the grace period ago.
// Invoked periodically by the scheduler.
func (m *Manager) Reap() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.matches {
		st, finishedAt := s.snapshot()
		if st.Status == game.StatusFinished && !finishedAt.IsZero() && m.clock.Now().Sub(finishedAt) > disposalGrace {
			s.Dispose()
			delete(m.matches, id)
			logging.Info("match session reaped", logging.Fields{"match_id": id})
		}
	}
}

// DisposeAll tears every live session down (shutdown path).
func (m *Manager) DisposeAll() {
	m.queue.Dispose()
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.matches {
		s.Dispose()
		delete(m.matches, id)
	}
}
