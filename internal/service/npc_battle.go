package service

import (
	"errors"
	"time"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/dedupe"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/keys"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/logging"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/npc"
)

var (
	ErrNPCNotFound     = errors.New("npc not found")
	ErrNPCNotAvailable = errors.New("npc is not available right now")
	ErrEmptyDeck       = errors.New("deck must contain at least one card")
)

// NPCRepo is the persistence surface NPC battles need.
type NPCRepo interface {
	GetNPCByKey(key string) (*game.NPC, error)
	SetNPCLastDefeated(key string, at time.Time) error
	AddNPCVictory(playerUUID string, respectEarned int) error
}

// ChallengeRequest carries one player's NPC challenge.
type ChallengeRequest struct {
	PlayerUUID string
	PlayerName string
	DeckIDs    []string
	Seed       int64
	// RemainingRespect and RoundsTaken scale the reward for dominant or
	// fast victories. A zero RoundsTaken counts as an instant win.
	RemainingRespect int
	RoundsTaken      int
}

// ChallengeResult is the resolved battle plus the reward actually granted.
type ChallengeResult struct {
	NPCKey      string          `json:"npc_key"`
	PlayerWon   bool            `json:"player_won"`
	Tie         bool            `json:"tie"`
	PlayerPower int             `json:"player_power"`
	NPCPower    int             `json:"npc_power"`
	Reward      *game.NPCReward `json:"reward,omitempty"`
	NPCDeck     []game.Card     `json:"npc_deck"`
}

// ChallengeNPC resolves one battle against a computer opponent. Concurrent
// challenges by the same player against the same NPC collapse into a
// single resolution so the cooldown and the reward are applied once.
func ChallengeNPC(repo NPCRepo, cardPool []game.Card, npcKey string, req ChallengeRequest, now time.Time) (*ChallengeResult, error) {
	key := keys.BattleKey(req.PlayerUUID, npcKey)
	v, err, _ := dedupe.BattleGroup.Do(key, func() (interface{}, error) {
		return resolveChallenge(repo, cardPool, npcKey, req, now)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ChallengeResult), nil
}

func resolveChallenge(repo NPCRepo, cardPool []game.Card, npcKey string, req ChallengeRequest, now time.Time) (*ChallengeResult, error) {
	n, err := repo.GetNPCByKey(npcKey)
	if err != nil {
		return nil, ErrNPCNotFound
	}
	if !npc.Available(n, now) {
		return nil, ErrNPCNotAvailable
	}

	playerDeck := resolveDeck(cardPool, req.DeckIDs)
	if len(playerDeck) == 0 {
		return nil, ErrEmptyDeck
	}
	npcDeck := npc.GenerateDeck(n, cardPool, req.Seed)

	res := npc.Simulate(playerDeck, npcDeck, n)
	out := &ChallengeResult{
		NPCKey:      npcKey,
		PlayerWon:   res.PlayerWon,
		Tie:         res.Tie,
		PlayerPower: res.PlayerPower,
		NPCPower:    res.NPCPower,
		NPCDeck:     npcDeck,
	}
	if !res.PlayerWon {
		return out, nil
	}

	reward := npc.AdjustReward(n.Reward, req.RemainingRespect, req.RoundsTaken)
	out.Reward = &reward

	npc.MarkDefeated(n, now)
	if err := repo.SetNPCLastDefeated(npcKey, now); err != nil {
		logging.Error("failed to persist NPC cooldown", err, logging.Fields{"npc_key": npcKey})
	}
	if err := repo.AddNPCVictory(req.PlayerUUID, reward.Respect); err != nil {
		logging.Error("failed to credit NPC victory", err, logging.Fields{"npc_key": npcKey, "user_id": req.PlayerUUID})
	}
	logging.Info("npc defeated", logging.Fields{"npc_key": npcKey, "user_id": req.PlayerUUID, "player_power": res.PlayerPower, "npc_power": res.NPCPower})
	return out, nil
}

// resolveDeck maps card ids onto catalog cards, skipping unknown ids.
func resolveDeck(pool []game.Card, ids []string) []game.Card {
	byID := make(map[string]game.Card, len(pool))
	for _, c := range pool {
		byID[c.ID] = c
	}
	deck := make([]game.Card, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			deck = append(deck, c)
		}
	}
	return deck
}
