package engine

import "github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"

// RoundInput carries the two cards played and the two energy amounts
// committed for one round. Transient, constructed per round.
type RoundInput struct {
	Card1   game.Card
	Card2   game.Card
	Energy1 int
	Energy2 int
}

// RoundContext is a read-only snapshot passed into the resolver: the
// 1-based round number, the two player states entering the round and the
// accumulated history.
type RoundContext struct {
	Round   int
	Player1 game.PlayerState
	Player2 game.PlayerState
	History []RoundResult
}

// RoundResult is the immutable outcome of one card clash.
type RoundResult struct {
	Attack1 int      `json:"attack1"`
	Attack2 int      `json:"attack2"`
	Winner  string   `json:"winner"` // player1 | player2 | tie
	Damage  int      `json:"damage"`
	Effects []string `json:"effects,omitempty"`
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
