package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/logging"
)

// Timer is a cancellable handle returned when a transition is scheduled.
// Stopping it on terminal transitions and on disposal is what prevents a
// stale timer from firing against an already-finished session.
type Timer interface {
	Stop() bool
}

// Clock abstracts wall-clock scheduling so session tests can drive timers
// manually instead of sleeping.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// RealClock is the production clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

func (RealClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Sink delivers outbound events to a connected client by session id.
// Sends to unknown or disconnected sessions must be safe no-ops.
type Sink interface {
	Send(sessionID, event string, data any)
}

// Recorder persists terminal match outcomes.
type Recorder interface {
	SaveMatchRecord(rec *game.MatchRecord) error
}

// MatchStarter opens a match session for players paired by a queue. It is
// constructor-injected so queues never share hidden global state.
type MatchStarter interface {
	StartMatch(matchID string, players []QueuedPlayer)
}

type matchSnapshot struct {
	state      MatchState
	finishedAt time.Time
}

type snapshotMatchReq struct{ reply chan matchSnapshot }

func (snapshotMatchReq) isMsg() {}

// MatchSession hosts one live match state machine. It owns its state
// exclusively: every inbound message is processed to completion on a
// single goroutine, so reducers run without locks.
type MatchSession struct {
	inbox chan Msg
	done  chan struct{}
	once  sync.Once

	clock    Clock
	sink     Sink
	recorder Recorder
	rng      *rand.Rand

	state      MatchState
	timers     map[TimerKind]Timer
	finishedAt time.Time
}

// NewMatchSession creates the session actor and starts its message loop.
// A nil rng falls back to time-seeded randomness (the round-limit tie
// break is the sole non-deterministic transition).
func NewMatchSession(opts MatchOptions, clock Clock, sink Sink, recorder Recorder, rng *rand.Rand) *MatchSession {
	if clock == nil {
		clock = RealClock{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &MatchSession{
		inbox:    make(chan Msg, 32),
		done:     make(chan struct{}),
		clock:    clock,
		sink:     sink,
		recorder: recorder,
		rng:      rng,
		state:    NewMatchState(opts, clock.Now()),
		timers:   make(map[TimerKind]Timer),
	}
	go s.run()
	return s
}

// ID returns the match identifier.
func (s *MatchSession) ID() string { return s.state.MatchID }

// Post delivers a message to the session. Messages posted after disposal
// are dropped.
func (s *MatchSession) Post(msg Msg) {
	select {
	case s.inbox <- msg:
	case <-s.done:
	}
}

// Snapshot returns a copy of the current state, synchronized through the
// actor loop.
func (s *MatchSession) Snapshot() MatchState {
	st, _ := s.snapshot()
	return st
}

func (s *MatchSession) snapshot() (MatchState, time.Time) {
	req := snapshotMatchReq{reply: make(chan matchSnapshot, 1)}
	select {
	case s.inbox <- req:
	case <-s.done:
		return s.state, s.finishedAt
	}
	// Disposal can race the send: the inbox is buffered, so the request
	// may land after the loop has already exited and will never be
	// answered. The reply wait must watch done too.
	select {
	case snap := <-req.reply:
		return snap.state, snap.finishedAt
	case <-s.done:
		return s.state, s.finishedAt
	}
}

// Dispose tears the session down and cancels any pending timer.
func (s *MatchSession) Dispose() {
	s.once.Do(func() { close(s.done) })
}

func (s *MatchSession) run() {
	for {
		select {
		case <-s.done:
			s.stopAllTimers()
			return
		case msg := <-s.inbox:
			if req, ok := msg.(snapshotMatchReq); ok {
				req.reply <- matchSnapshot{state: s.state, finishedAt: s.finishedAt}
				continue
			}
			next, effects := ReduceMatch(s.state, msg, s.rng)
			if next.Status == game.StatusFinished && s.state.Status != game.StatusFinished {
				s.finishedAt = s.clock.Now()
			}
			s.state = next
			s.execute(effects)
		}
	}
}

func (s *MatchSession) execute(effects []Effect) {
	for _, e := range effects {
		switch ef := e.(type) {
		case Broadcast:
			for _, p := range s.state.Players {
				s.send(p.SessionID, ef.Event, ef.Data)
			}
		case SendTo:
			s.send(ef.SessionID, ef.Event, ef.Data)
		case StartTimer:
			s.startTimer(ef.Kind, ef.After)
		case CancelTimer:
			s.cancelTimer(ef.Kind)
		case RecordMatch:
			if s.recorder == nil {
				continue
			}
			rec := ef.Record
			if err := s.recorder.SaveMatchRecord(&rec); err != nil {
				logging.Error("failed to persist match record", err, logging.Fields{"match_id": rec.MatchID})
			}
		}
	}
}

func (s *MatchSession) send(sessionID, event string, data any) {
	if s.sink != nil {
		s.sink.Send(sessionID, event, data)
	}
}

func (s *MatchSession) startTimer(kind TimerKind, after time.Duration) {
	s.cancelTimer(kind)
	s.timers[kind] = s.clock.AfterFunc(after, func() {
		s.Post(TimerFired{Kind: kind})
	})
}

func (s *MatchSession) cancelTimer(kind TimerKind) {
	if t, ok := s.timers[kind]; ok {
		t.Stop()
		delete(s.timers, kind)
	}
}

func (s *MatchSession) stopAllTimers() {
	for kind, t := range s.timers {
		t.Stop()
		delete(s.timers, kind)
	}
}

type queueJoinReq struct {
	player QueuedPlayer
	reply  chan error
}

func (queueJoinReq) isMsg() {}

type snapshotQueueReq struct{ reply chan QueueState }

func (snapshotQueueReq) isMsg() {}

// Queue hosts one matchmaking queue state machine with the same actor
// discipline as MatchSession.
type Queue struct {
	inbox chan Msg
	done  chan struct{}
	once  sync.Once

	clock   Clock
	sink    Sink
	starter MatchStarter
	newID   func() string

	state  QueueState
	timers map[TimerKind]Timer
}

// NewQueue creates the queue actor. newID generates match identifiers and
// defaults to random UUIDs.
func NewQueue(opts QueueOptions, clock Clock, sink Sink, starter MatchStarter, newID func() string) *Queue {
	if clock == nil {
		clock = RealClock{}
	}
	if newID == nil {
		newID = uuid.NewString
	}
	q := &Queue{
		inbox:   make(chan Msg, 32),
		done:    make(chan struct{}),
		clock:   clock,
		sink:    sink,
		starter: starter,
		newID:   newID,
		state:   NewQueueState(opts, clock.Now()),
		timers:  make(map[TimerKind]Timer),
	}
	go q.run()
	return q
}

// Join enqueues a player. Joining a full queue is the one input surfaced
// as a hard failure; every other invalid input is absorbed silently.
func (q *Queue) Join(p QueuedPlayer) error {
	req := queueJoinReq{player: p, reply: make(chan error, 1)}
	select {
	case q.inbox <- req:
	case <-q.done:
		return ErrQueueClosed
	}
	// A buffered request can outlive the loop when disposal races the
	// send; never wait on the reply alone.
	select {
	case err := <-req.reply:
		return err
	case <-q.done:
		return ErrQueueClosed
	}
}

// Post delivers a non-join message (cancel, find-match, player timeout).
func (q *Queue) Post(msg Msg) {
	select {
	case q.inbox <- msg:
	case <-q.done:
	}
}

// Snapshot returns a copy of the current queue state.
func (q *Queue) Snapshot() QueueState {
	req := snapshotQueueReq{reply: make(chan QueueState, 1)}
	select {
	case q.inbox <- req:
	case <-q.done:
		return q.state
	}
	select {
	case st := <-req.reply:
		return st
	case <-q.done:
		return q.state
	}
}

// Dispose tears the queue down and cancels any pending timer.
func (q *Queue) Dispose() {
	q.once.Do(func() { close(q.done) })
}

func (q *Queue) run() {
	for {
		select {
		case <-q.done:
			q.stopAllTimers()
			return
		case msg := <-q.inbox:
			switch req := msg.(type) {
			case snapshotQueueReq:
				req.reply <- q.state
			case queueJoinReq:
				next, effects := ReduceQueue(q.state, QueueJoin{Player: req.player}, q.newID)
				q.state = next
				req.reply <- q.execute(effects, req.player.SessionID)
			default:
				next, effects := ReduceQueue(q.state, msg, q.newID)
				q.state = next
				q.execute(effects, "")
			}
		}
	}
}

// execute runs queue effects; when joinerID is set, a rejection addressed
// to that session is returned as the join error.
func (q *Queue) execute(effects []Effect, joinerID string) error {
	var joinErr error
	for _, e := range effects {
		switch ef := e.(type) {
		case Broadcast:
			for _, p := range q.state.Players {
				q.send(p.SessionID, ef.Event, ef.Data)
			}
		case SendTo:
			q.send(ef.SessionID, ef.Event, ef.Data)
		case StartTimer:
			q.startTimer(ef.Kind, ef.After)
		case CancelTimer:
			q.cancelTimer(ef.Kind)
		case RejectJoin:
			if ef.SessionID == joinerID {
				joinErr = ErrRoomFull
			}
		case StartMatch:
			if q.starter != nil {
				q.starter.StartMatch(ef.MatchID, ef.Players)
			}
		}
	}
	return joinErr
}

func (q *Queue) send(sessionID, event string, data any) {
	if q.sink != nil {
		q.sink.Send(sessionID, event, data)
	}
}

func (q *Queue) startTimer(kind TimerKind, after time.Duration) {
	q.cancelTimer(kind)
	q.timers[kind] = q.clock.AfterFunc(after, func() {
		q.Post(TimerFired{Kind: kind})
	})
}

func (q *Queue) cancelTimer(kind TimerKind) {
	if t, ok := q.timers[kind]; ok {
		t.Stop()
		delete(q.timers, kind)
	}
}

func (q *Queue) stopAllTimers() {
	for kind, t := range q.timers {
		t.Stop()
		delete(q.timers, kind)
	}
}
