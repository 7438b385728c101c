package service

import (
	"testing"
	"time"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
)

type mockNPCRepo struct {
	n            *game.NPC
	cooldownSet  int
	victories    int
	respectGiven int
}

func (m *mockNPCRepo) GetNPCByKey(key string) (*game.NPC, error) {
	if m.n == nil || m.n.Key != key {
		return nil, ErrNPCNotFound
	}
	cp := *m.n
	return &cp, nil
}

func (m *mockNPCRepo) SetNPCLastDefeated(key string, at time.Time) error {
	m.cooldownSet++
	t := at
	m.n.LastDefeated = &t
	return nil
}

func (m *mockNPCRepo) AddNPCVictory(playerUUID string, respectEarned int) error {
	m.victories++
	m.respectGiven += respectEarned
	return nil
}

func battlePool() []game.Card {
	return []game.Card{
		{ID: "c1", Name: "Moleque", Faction: game.FactionMotoboys, Power: 1, Damage: 1},
		{ID: "c2", Name: "Capanga", Faction: game.FactionMotoboys, Power: 2, Damage: 2},
		{ID: "c3", Name: "Mestre", Faction: game.FactionCapoeira, Power: 9, Damage: 4},
	}
}

func battleNPC() *game.NPC {
	return &game.NPC{
		Key:            "maestro",
		Name:           "Maestro da Viela",
		Faction:        game.FactionCapoeira,
		Difficulty:     game.DifficultyMedium,
		AvailableHours: []int{10, 11},
		CooldownHours:  2,
		Reward:         game.NPCReward{Experience: 40, Respect: 6},
	}
}

func battleTime() time.Time {
	return time.Date(2025, 6, 10, 10, 15, 0, 0, time.UTC)
}

func TestChallengeNPC_WinGrantsRewardAndCooldown(t *testing.T) {
	repo := &mockNPCRepo{n: battleNPC()}
	req := ChallengeRequest{
		PlayerUUID:       "u-1",
		DeckIDs:          []string{"c3", "c3", "c3", "c3", "c3", "c3", "c3", "c3", "c3", "c3"},
		RemainingRespect: 10,
		RoundsTaken:      2,
	}
	res, err := ChallengeNPC(repo, battlePool(), "maestro", req, battleTime())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.PlayerWon {
		t.Fatalf("90 total power must beat a medium NPC from this pool (npc=%d)", res.NPCPower)
	}
	if res.Reward == nil {
		t.Fatalf("expected a reward on victory")
	}
	// base 40 + health bonus 1 + speed bonus 20
	if res.Reward.Experience != 61 {
		t.Fatalf("expected 61 experience, got %d", res.Reward.Experience)
	}
	if repo.cooldownSet != 1 {
		t.Fatalf("expected the cooldown to be persisted once, got %d", repo.cooldownSet)
	}
	if repo.victories != 1 || repo.respectGiven != res.Reward.Respect {
		t.Fatalf("expected one credited victory worth %d respect", res.Reward.Respect)
	}
}

func TestChallengeNPC_LossGrantsNothing(t *testing.T) {
	repo := &mockNPCRepo{n: battleNPC()}
	req := ChallengeRequest{PlayerUUID: "u-1", DeckIDs: []string{"c1"}}
	res, err := ChallengeNPC(repo, battlePool(), "maestro", req, battleTime())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PlayerWon || res.Reward != nil {
		t.Fatalf("a single weak card must lose, got won=%v reward=%v", res.PlayerWon, res.Reward)
	}
	if repo.cooldownSet != 0 || repo.victories != 0 {
		t.Fatalf("a loss must not touch cooldown or stats")
	}
}

func TestChallengeNPC_OutsideHoursRejected(t *testing.T) {
	repo := &mockNPCRepo{n: battleNPC()}
	late := time.Date(2025, 6, 10, 22, 0, 0, 0, time.UTC)
	_, err := ChallengeNPC(repo, battlePool(), "maestro", ChallengeRequest{PlayerUUID: "u-2", DeckIDs: []string{"c3"}}, late)
	if err != ErrNPCNotAvailable {
		t.Fatalf("expected ErrNPCNotAvailable, got %v", err)
	}
}

func TestChallengeNPC_CooldownRejected(t *testing.T) {
	n := battleNPC()
	recent := battleTime().Add(-30 * time.Minute)
	n.LastDefeated = &recent
	repo := &mockNPCRepo{n: n}
	_, err := ChallengeNPC(repo, battlePool(), "maestro", ChallengeRequest{PlayerUUID: "u-3", DeckIDs: []string{"c3"}}, battleTime())
	if err != ErrNPCNotAvailable {
		t.Fatalf("expected ErrNPCNotAvailable during cooldown, got %v", err)
	}
}

func TestChallengeNPC_UnknownNPC(t *testing.T) {
	repo := &mockNPCRepo{n: battleNPC()}
	_, err := ChallengeNPC(repo, battlePool(), "fantasma", ChallengeRequest{PlayerUUID: "u-4", DeckIDs: []string{"c3"}}, battleTime())
	if err != ErrNPCNotFound {
		t.Fatalf("expected ErrNPCNotFound, got %v", err)
	}
}

func TestChallengeNPC_EmptyDeckRejected(t *testing.T) {
	repo := &mockNPCRepo{n: battleNPC()}
	_, err := ChallengeNPC(repo, battlePool(), "maestro", ChallengeRequest{PlayerUUID: "u-5", DeckIDs: []string{"nope"}}, battleTime())
	if err != ErrEmptyDeck {
		t.Fatalf("expected ErrEmptyDeck for unknown ids, got %v", err)
	}
}
