// Package npc implements the time-gated computer-opponent battles:
// availability windows with defeat cooldowns, difficulty-scaled deck
// generation and the deck-aggregate battle simulation.
//
// The simulator intentionally compares total deck power instead of running
// the per-card round resolver; NPC battles operate at deck granularity.
package npc

import (
	"time"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/shuffle"
)

// Available reports whether the NPC can be challenged at the given time:
// the hour of day must be in its availability window and the defeat
// cooldown (in hours) must have fully elapsed.
func Available(n *game.NPC, now time.Time) bool {
	hour := now.Hour()
	inWindow := false
	for _, h := range n.AvailableHours {
		if h == hour {
			inWindow = true
			break
		}
	}
	if !inWindow {
		return false
	}
	if n.LastDefeated == nil {
		return true
	}
	cooldown := time.Duration(n.CooldownHours) * time.Hour
	return now.Sub(*n.LastDefeated) > cooldown
}

// GenerateDeck builds the NPC's deck from the catalog pool: cards of the
// NPC's faction are cycled until the tier's deck size is reached, then
// shuffled. A non-zero seed makes the deck reproducible. When the catalog
// has no card for the NPC's faction the whole pool is used instead.
func GenerateDeck(n *game.NPC, pool []game.Card, seed int64) []game.Card {
	factionPool := make([]game.Card, 0, len(pool))
	for _, c := range pool {
		if c.Faction == n.Faction {
			factionPool = append(factionPool, c)
		}
	}
	if len(factionPool) == 0 {
		factionPool = pool
	}
	if len(factionPool) == 0 {
		return nil
	}

	size := game.DeckSizeFor(n.Difficulty)
	deck := make([]game.Card, 0, size)
	for i := 0; len(deck) < size; i++ {
		deck = append(deck, factionPool[i%len(factionPool)])
	}

	var src shuffle.Source
	if seed != 0 {
		src = shuffle.SeededSource(seed)
	}
	return shuffle.Shuffle(deck, src)
}

// BattleResult is the outcome of one simulated NPC battle.
type BattleResult struct {
	PlayerWon   bool            `json:"player_won"`
	Tie         bool            `json:"tie"`
	PlayerPower int             `json:"player_power"`
	NPCPower    int             `json:"npc_power"`
	Reward      *game.NPCReward `json:"reward,omitempty"`
}

// Simulate compares total deck power: the strictly greater total wins,
// equal totals tie. Rewards are granted only on a player victory and equal
// the NPC's configured reward table.
func Simulate(playerDeck, npcDeck []game.Card, n *game.NPC) BattleResult {
	res := BattleResult{
		PlayerPower: totalPower(playerDeck),
		NPCPower:    totalPower(npcDeck),
	}
	switch {
	case res.PlayerPower > res.NPCPower:
		res.PlayerWon = true
		reward := n.Reward
		res.Reward = &reward
	case res.PlayerPower == res.NPCPower:
		res.Tie = true
	}
	return res
}

// AdjustReward enriches a base reward with performance bonuses: a
// health-remaining bonus (one experience point per 10 remaining health,
// half of that as respect) and a speed bonus for quick wins.
func AdjustReward(base game.NPCReward, remainingHealth, roundsTaken int) game.NPCReward {
	healthBonus := remainingHealth / 10
	speedBonus := 0
	if roundsTaken < 3 {
		speedBonus = 20
	} else if roundsTaken < 4 {
		speedBonus = 10
	}
	base.Experience += healthBonus + speedBonus
	base.Respect += healthBonus / 2
	return base
}

// MarkDefeated records a player victory on the NPC. Battles the computer
// wins leave the NPC untouched.
func MarkDefeated(n *game.NPC, now time.Time) {
	t := now
	n.LastDefeated = &t
}

func totalPower(deck []game.Card) int {
	total := 0
	for _, c := range deck {
		total += c.Power
	}
	return total
}
