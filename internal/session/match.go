package session

import (
	"math/rand"
	"time"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/engine"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/shuffle"
)

// DefaultMatchTimeout is the wall-clock bound on a live match.
const DefaultMatchTimeout = 30 * time.Minute

// MatchState is the complete state of one live 1v1 match session. It is
// owned exclusively by its hosting actor; ReduceMatch never mutates the
// input value.
type MatchState struct {
	MatchID         string              `json:"match_id"`
	Round           int                 `json:"round"`
	MaxRounds       int                 `json:"max_rounds"`
	Status          string              `json:"status"`
	Players         []game.GamePlayer   `json:"players"`
	CurrentTurn     string              `json:"current_turn"`
	RoundHistory    []game.RoundSummary `json:"round_history"`
	WinnerSessionID string              `json:"winner_session_id,omitempty"`
	EndReason       string              `json:"end_reason,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`

	// Setup inputs, fixed at creation.
	CardPool    []game.Card   `json:"-"`
	HandSize    int           `json:"-"`
	ShuffleSeed int64         `json:"-"`
	Timeout     time.Duration `json:"-"`
}

// MatchOptions configures a new match session. Players may pre-seed the
// two seats (matchmade games) or be left empty for ad-hoc joins.
type MatchOptions struct {
	MatchID     string
	Players     []game.GamePlayer
	CardPool    []game.Card
	HandSize    int
	ShuffleSeed int64
	Timeout     time.Duration
}

// NewMatchState builds the initial `preparing` state.
func NewMatchState(opts MatchOptions, now time.Time) MatchState {
	st := MatchState{
		MatchID:      opts.MatchID,
		Round:        1,
		MaxRounds:    game.MaxRounds,
		Status:       game.StatusPreparing,
		Players:      make([]game.GamePlayer, 0, 2),
		RoundHistory: []game.RoundSummary{},
		CreatedAt:    now,
		CardPool:     opts.CardPool,
		HandSize:     opts.HandSize,
		ShuffleSeed:  opts.ShuffleSeed,
		Timeout:      opts.Timeout,
	}
	if st.HandSize <= 0 {
		st.HandSize = game.MaxRounds
	}
	if st.Timeout <= 0 {
		st.Timeout = DefaultMatchTimeout
	}
	for _, p := range opts.Players {
		if len(st.Players) == 2 {
			break
		}
		p.State = game.NewPlayerState()
		p.IsReady = false
		if p.Faction == "" {
			p.Faction = game.DefaultFaction
		}
		st.Players = append(st.Players, p)
	}
	return st
}

// ReduceMatch applies one message to a match state and returns the next
// state plus the effects the hosting actor must execute. Protocol-order
// violations (wrong phase, wrong turn, unknown player) are absorbed
// silently: the state comes back unchanged with no effects.
func ReduceMatch(st MatchState, msg Msg, rng *rand.Rand) (MatchState, []Effect) {
	st = cloneMatch(st)
	switch m := msg.(type) {
	case Join:
		return reduceMatchJoin(st, m)
	case Ready:
		return reduceReady(st, m)
	case PlayCard:
		return reducePlayCard(st, m)
	case EndTurn:
		return reduceEndTurn(st, m, rng)
	case Concede:
		return reduceConcede(st, m)
	case Disconnect:
		return reduceDisconnect(st, m)
	case TimerFired:
		if m.Kind == TimerMatchTimeout && st.Status == game.StatusPlaying {
			return finishByRespect(st, game.EndReasonTimeout, rng)
		}
		return st, nil
	default:
		return st, nil
	}
}

func reduceMatchJoin(st MatchState, m Join) (MatchState, []Effect) {
	if st.Status != game.StatusPreparing {
		return st, nil
	}
	if st.playerIndex(m.Player.SessionID) >= 0 {
		// Re-join with the same session id is a no-op.
		return st, nil
	}
	if len(st.Players) >= 2 {
		return st, nil
	}
	p := m.Player
	p.State = game.NewPlayerState()
	p.IsReady = false
	if p.Faction == "" {
		p.Faction = game.DefaultFaction
	}
	st.Players = append(st.Players, p)
	return st, []Effect{Broadcast{Event: EventState, Data: st}}
}

func reduceReady(st MatchState, m Ready) (MatchState, []Effect) {
	if st.Status != game.StatusPreparing {
		return st, nil
	}
	idx := st.playerIndex(m.SessionID)
	if idx < 0 {
		return st, nil
	}
	st.Players[idx].IsReady = true
	if len(st.Players) != 2 || !st.Players[0].IsReady || !st.Players[1].IsReady {
		return st, []Effect{Broadcast{Event: EventState, Data: st}}
	}

	// Both ready: deal hands, enter play, arm the match timeout.
	st.Status = game.StatusPlaying
	st.CurrentTurn = st.Players[0].SessionID
	st.dealHands()
	return st, []Effect{
		StartTimer{Kind: TimerMatchTimeout, After: st.Timeout},
		Broadcast{Event: EventState, Data: st},
	}
}

func reducePlayCard(st MatchState, m PlayCard) (MatchState, []Effect) {
	if st.Status != game.StatusPlaying || m.SessionID != st.CurrentTurn {
		return st, nil
	}
	actor := st.playerIndex(m.SessionID)
	target := st.playerIndex(m.TargetID)
	if actor < 0 || target < 0 || actor == target {
		return st, nil
	}
	dmg := m.Damage
	if dmg <= 0 {
		dmg = 1
	}
	st.Players[target].State.Respect -= dmg
	if st.Players[target].State.Respect <= 0 {
		st.Players[target].State.Respect = 0
		return finishMatch(st, st.Players[actor].SessionID, game.EndReasonKnockout)
	}
	return st, []Effect{Broadcast{Event: EventState, Data: st}}
}

func reduceEndTurn(st MatchState, m EndTurn, rng *rand.Rand) (MatchState, []Effect) {
	if st.Status != game.StatusPlaying || m.SessionID != st.CurrentTurn || len(st.Players) != 2 {
		return st, nil
	}
	other := 0
	if st.Players[0].SessionID == m.SessionID {
		other = 1
	}
	st.CurrentTurn = st.Players[other].SessionID

	// Turn returning to the first seat closes the round.
	if other != 0 {
		return st, []Effect{Broadcast{Event: EventState, Data: st}}
	}
	st.RoundHistory = append(st.RoundHistory, game.RoundSummary{
		Round:  st.Round,
		Detail: "round completed",
	})
	if st.Round >= st.MaxRounds {
		return finishByRespect(st, game.EndReasonRoundLimit, rng)
	}
	st.Round++
	for i := range st.Players {
		e := st.Players[i].State.Energy + 2
		if e > game.RoundEnergyCap {
			e = game.RoundEnergyCap
		}
		st.Players[i].State.Energy = e
	}
	return st, []Effect{Broadcast{Event: EventState, Data: st}}
}

func reduceConcede(st MatchState, m Concede) (MatchState, []Effect) {
	if st.Status == game.StatusFinished || len(st.Players) != 2 {
		return st, nil
	}
	idx := st.playerIndex(m.SessionID)
	if idx < 0 {
		return st, nil
	}
	return finishMatch(st, st.Players[1-idx].SessionID, game.EndReasonConcede)
}

func reduceDisconnect(st MatchState, m Disconnect) (MatchState, []Effect) {
	if st.Status == game.StatusFinished {
		return st, nil
	}
	idx := st.playerIndex(m.SessionID)
	if idx < 0 {
		return st, nil
	}
	winner := ""
	if len(st.Players) == 2 {
		winner = st.Players[1-idx].SessionID
	}
	return finishMatch(st, winner, game.EndReasonDisconnect)
}

// ApplyRound is the authoritative round-resolution entry point: it feeds
// one card clash through the round engine, writes the updated player
// states back, removes the played cards from hands, appends the history
// entry and evaluates the knockout condition. This path is intentionally
// distinct from the direct-damage PlayCard channel.
func ApplyRound(st MatchState, in engine.RoundInput) (MatchState, engine.RoundResult, []Effect) {
	st = cloneMatch(st)
	if st.Status != game.StatusPlaying || len(st.Players) != 2 {
		return st, engine.RoundResult{}, nil
	}
	ctx := engine.RoundContext{
		Round:   st.Round,
		Player1: st.Players[0].State,
		Player2: st.Players[1].State,
	}
	res, p1, p2 := engine.ResolveRound(in, ctx)
	st.Players[0].State = p1
	st.Players[1].State = p2
	st.Players[0].State.Hand = removeCard(st.Players[0].State.Hand, in.Card1.ID)
	st.Players[1].State.Hand = removeCard(st.Players[1].State.Hand, in.Card2.ID)
	st.RoundHistory = append(st.RoundHistory, game.RoundSummary{
		Round:   st.Round,
		Winner:  res.Winner,
		Damage:  res.Damage,
		Effects: res.Effects,
	})

	// Knockout check: the resolver lets respect go transiently negative;
	// the floor is enforced here.
	for i := range st.Players {
		if st.Players[i].State.Respect <= 0 {
			st.Players[i].State.Respect = 0
			next, effs := finishMatch(st, st.Players[1-i].SessionID, game.EndReasonKnockout)
			return next, res, effs
		}
	}
	return st, res, []Effect{Broadcast{Event: EventState, Data: st}}
}

func finishByRespect(st MatchState, reason string, rng *rand.Rand) (MatchState, []Effect) {
	if len(st.Players) != 2 {
		return finishMatch(st, "", reason)
	}
	r1 := st.Players[0].State.Respect
	r2 := st.Players[1].State.Respect
	switch {
	case r1 > r2:
		return finishMatch(st, st.Players[0].SessionID, reason)
	case r2 > r1:
		return finishMatch(st, st.Players[1].SessionID, reason)
	default:
		// Exact tie resolves to a uniformly random winner. The RNG is
		// injected so tests stay deterministic.
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		return finishMatch(st, st.Players[rng.Intn(2)].SessionID, reason)
	}
}

// finishMatch performs the single terminal transition: clamps respect,
// cancels the match timeout, broadcasts the outcome exactly once and asks
// the host to persist the record.
func finishMatch(st MatchState, winnerSessionID, reason string) (MatchState, []Effect) {
	st.Status = game.StatusFinished
	st.WinnerSessionID = winnerSessionID
	st.EndReason = reason
	for i := range st.Players {
		if st.Players[i].State.Respect < 0 {
			st.Players[i].State.Respect = 0
		}
	}

	rec := game.MatchRecord{
		MatchID:      st.MatchID,
		EndReason:    reason,
		RoundsPlayed: st.Round,
	}
	if len(st.Players) > 0 {
		rec.Player1UUID = st.Players[0].UserID
		rec.Player1Name = st.Players[0].Username
	}
	if len(st.Players) > 1 {
		rec.Player2UUID = st.Players[1].UserID
		rec.Player2Name = st.Players[1].Username
	}
	if idx := st.playerIndex(winnerSessionID); idx >= 0 {
		rec.WinnerUUID = st.Players[idx].UserID
	}

	return st, []Effect{
		CancelTimer{Kind: TimerMatchTimeout},
		Broadcast{Event: EventGameEnded, Data: map[string]any{
			"winner": winnerSessionID,
			"reason": reason,
			"state":  st,
		}},
		RecordMatch{Record: rec},
	}
}

func (st *MatchState) playerIndex(sessionID string) int {
	for i := range st.Players {
		if st.Players[i].SessionID == sessionID {
			return i
		}
	}
	return -1
}

// dealHands shuffles the card pool once and deals both opening hands.
func (st *MatchState) dealHands() {
	if len(st.CardPool) < st.HandSize*2 {
		return
	}
	var src shuffle.Source
	if st.ShuffleSeed != 0 {
		src = shuffle.SeededSource(st.ShuffleSeed)
	}
	deck := shuffle.Shuffle(st.CardPool, src)
	st.Players[0].State.Hand = append([]game.Card(nil), deck[:st.HandSize]...)
	st.Players[1].State.Hand = append([]game.Card(nil), deck[st.HandSize:st.HandSize*2]...)
}

func removeCard(hand []game.Card, id string) []game.Card {
	for i := range hand {
		if hand[i].ID == id {
			return append(hand[:i:i], hand[i+1:]...)
		}
	}
	return hand
}

// cloneMatch copies the mutable parts of the state so reducers stay pure.
func cloneMatch(st MatchState) MatchState {
	players := make([]game.GamePlayer, len(st.Players))
	copy(players, st.Players)
	st.Players = players
	st.RoundHistory = append([]game.RoundSummary(nil), st.RoundHistory...)
	return st
}
