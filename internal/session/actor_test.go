package session

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
)

type fakeTimer struct {
	clock   *fakeClock
	when    time.Time
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// fakeClock drives timers manually so actor tests never sleep.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, when: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock and fires every due timer on the caller's
// goroutine. Callbacks run outside the lock because they may schedule
// new timers.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	remaining := c.timers[:0]
	for _, t := range c.timers {
		if t.stopped {
			continue
		}
		if !t.when.After(c.now) {
			t.stopped = true
			due = append(due, t)
			continue
		}
		remaining = append(remaining, t)
	}
	c.timers = remaining
	c.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}

type sinkEvent struct {
	SessionID string
	Event     string
	Data      any
}

type fakeSink struct {
	mu     sync.Mutex
	events []sinkEvent
}

func (s *fakeSink) Send(sessionID, event string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, sinkEvent{SessionID: sessionID, Event: event, Data: data})
}

func (s *fakeSink) countEvent(event string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.events {
		if e.Event == event {
			n++
		}
	}
	return n
}

func (s *fakeSink) receivedEvent(sessionID, event string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.SessionID == sessionID && e.Event == event {
			return true
		}
	}
	return false
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []game.MatchRecord
}

func (r *fakeRecorder) SaveMatchRecord(rec *game.MatchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *rec)
	return nil
}

func (r *fakeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type fakeStarter struct {
	mu      sync.Mutex
	matchID string
	players []QueuedPlayer
}

func (f *fakeStarter) StartMatch(matchID string, players []QueuedPlayer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matchID = matchID
	f.players = players
}

func (f *fakeStarter) started() (string, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.matchID, len(f.players)
}

func testMatchPlayers() []game.GamePlayer {
	return []game.GamePlayer{
		{SessionID: "s1", UserID: "11111111-1111-1111-1111-111111111111", Username: "Zeca", Faction: game.FactionMotoboys},
		{SessionID: "s2", UserID: "22222222-2222-2222-2222-222222222222", Username: "Bia", Faction: game.FactionCapoeira},
	}
}

func TestMatchSession_TimeoutEndsMatch(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	sink := &fakeSink{}
	recorder := &fakeRecorder{}
	s := NewMatchSession(MatchOptions{
		MatchID:  "m-timeout",
		Players:  testMatchPlayers(),
		CardPool: testPool(12),
	}, clock, sink, recorder, rand.New(rand.NewSource(1)))
	defer s.Dispose()

	s.Post(Ready{SessionID: "s1"})
	s.Post(Ready{SessionID: "s2"})
	if st := s.Snapshot(); st.Status != game.StatusPlaying {
		t.Fatalf("expected playing before the timeout, got %s", st.Status)
	}

	clock.Advance(DefaultMatchTimeout)

	st := s.Snapshot()
	if st.Status != game.StatusFinished {
		t.Fatalf("expected finished after the timeout, got %s", st.Status)
	}
	if st.EndReason != game.EndReasonTimeout {
		t.Fatalf("expected timeout end reason, got %s", st.EndReason)
	}
	if sink.countEvent(EventGameEnded) != 2 {
		t.Fatalf("expected game-ended delivered to both players, got %d", sink.countEvent(EventGameEnded))
	}
	if recorder.count() != 1 {
		t.Fatalf("expected exactly one persisted match record, got %d", recorder.count())
	}
}

func TestMatchSession_ConcedeCancelsTimeout(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	sink := &fakeSink{}
	recorder := &fakeRecorder{}
	s := NewMatchSession(MatchOptions{
		MatchID:  "m-concede",
		Players:  testMatchPlayers(),
		CardPool: testPool(12),
	}, clock, sink, recorder, rand.New(rand.NewSource(1)))
	defer s.Dispose()

	s.Post(Ready{SessionID: "s1"})
	s.Post(Ready{SessionID: "s2"})
	s.Post(Concede{SessionID: "s2"})
	if st := s.Snapshot(); st.EndReason != game.EndReasonConcede {
		t.Fatalf("expected concession, got %s", st.EndReason)
	}

	// A stale timeout firing later must not produce a second terminal
	// broadcast or record.
	clock.Advance(DefaultMatchTimeout)
	s.Snapshot()
	if sink.countEvent(EventGameEnded) != 2 {
		t.Fatalf("terminal broadcast must happen once per player, got %d", sink.countEvent(EventGameEnded))
	}
	if recorder.count() != 1 {
		t.Fatalf("expected exactly one persisted match record, got %d", recorder.count())
	}
}

func TestMatchSession_SnapshotAfterDisposeReturns(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	s := NewMatchSession(MatchOptions{
		MatchID:  "m-disposed",
		Players:  testMatchPlayers(),
		CardPool: testPool(12),
	}, clock, &fakeSink{}, &fakeRecorder{}, rand.New(rand.NewSource(1)))
	s.Dispose()

	// The inbox is buffered, so a request sent after disposal can land
	// without anyone left to answer it. Every caller must still return.
	results := make(chan MatchState, 50)
	for i := 0; i < 50; i++ {
		go func() { results <- s.Snapshot() }()
	}
	for i := 0; i < 50; i++ {
		select {
		case st := <-results:
			if st.MatchID != "m-disposed" {
				t.Fatalf("expected the last known state, got match id %q", st.MatchID)
			}
		case <-time.After(time.Second):
			t.Fatalf("Snapshot blocked on a disposed session (%d/50 returned)", i)
		}
	}
}

func TestQueue_JoinAndSnapshotAfterDispose(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	q := NewQueue(QueueOptions{}, clock, &fakeSink{}, nil, fixedID)
	q.Dispose()

	errs := make(chan error, 1)
	go func() { errs <- q.Join(queuedPlayer("a")) }()
	select {
	case err := <-errs:
		if err != ErrQueueClosed {
			t.Fatalf("expected ErrQueueClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Join blocked on a disposed queue")
	}

	states := make(chan QueueState, 1)
	go func() { states <- q.Snapshot() }()
	select {
	case st := <-states:
		if st.Status != game.QueueWaiting {
			t.Fatalf("expected the last known state, got %s", st.Status)
		}
	case <-time.After(time.Second):
		t.Fatalf("Snapshot blocked on a disposed queue")
	}
}

func TestQueue_JoinReturnsRoomFullSynchronously(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	q := NewQueue(QueueOptions{}, clock, &fakeSink{}, nil, fixedID)
	defer q.Dispose()

	if err := q.Join(queuedPlayer("a")); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if err := q.Join(queuedPlayer("b")); err != nil {
		t.Fatalf("second join: %v", err)
	}
	if err := q.Join(queuedPlayer("c")); err != ErrRoomFull {
		t.Fatalf("expected ErrRoomFull, got %v", err)
	}
}

func TestQueue_PairingFlow(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	sink := &fakeSink{}
	starter := &fakeStarter{}
	q := NewQueue(QueueOptions{}, clock, sink, starter, fixedID)
	defer q.Dispose()

	if err := q.Join(queuedPlayer("a")); err != nil {
		t.Fatalf("join a: %v", err)
	}
	if err := q.Join(queuedPlayer("b")); err != nil {
		t.Fatalf("join b: %v", err)
	}
	if st := q.Snapshot(); st.Status != game.QueueMatching {
		t.Fatalf("expected matching, got %s", st.Status)
	}

	clock.Advance(DefaultMatchingDelay)
	st := q.Snapshot()
	if st.Status != game.QueueMatched || st.MatchID != "match-fixed" {
		t.Fatalf("expected matched with injected id, got %s/%s", st.Status, st.MatchID)
	}
	if id, n := starter.started(); id != "match-fixed" || n != 2 {
		t.Fatalf("expected the starter to receive both players, got %s/%d", id, n)
	}
	if sink.countEvent(EventMatchFound) != 2 {
		t.Fatalf("expected match-found broadcast to both players")
	}

	clock.Advance(DefaultHandoffDelay)
	q.Snapshot()
	if !sink.receivedEvent("a", EventJoinGame) || !sink.receivedEvent("b", EventJoinGame) {
		t.Fatalf("expected join-game sent to each queued client")
	}
}

func TestQueue_CancelStopsPairing(t *testing.T) {
	clock := newFakeClock(time.Unix(1_700_000_000, 0))
	starter := &fakeStarter{}
	q := NewQueue(QueueOptions{}, clock, &fakeSink{}, starter, fixedID)
	defer q.Dispose()

	if err := q.Join(queuedPlayer("a")); err != nil {
		t.Fatalf("join a: %v", err)
	}
	if err := q.Join(queuedPlayer("b")); err != nil {
		t.Fatalf("join b: %v", err)
	}
	q.Post(QueueCancel{SessionID: "a"})
	if st := q.Snapshot(); st.Status != game.QueueWaiting {
		t.Fatalf("expected waiting after cancel, got %s", st.Status)
	}

	clock.Advance(DefaultMatchingDelay)
	if st := q.Snapshot(); st.Status != game.QueueWaiting {
		t.Fatalf("cancelled pairing must not complete, got %s", st.Status)
	}
	if id, _ := starter.started(); id != "" {
		t.Fatalf("no match must start after cancel, got %s", id)
	}
}
