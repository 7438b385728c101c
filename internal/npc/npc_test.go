package npc

import (
	"testing"
	"time"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/shuffle"
)

func testNPC() *game.NPC {
	return &game.NPC{
		Key:            "tio-da-esquina",
		Name:           "Tio da Esquina",
		Faction:        game.FactionMotoboys,
		Difficulty:     game.DifficultyMedium,
		Level:          3,
		Reward:         game.NPCReward{Experience: 50, Respect: 5},
		AvailableHours: []int{18, 19, 20},
		CooldownHours:  4,
	}
}

func atHour(hour int) time.Time {
	return time.Date(2025, 6, 10, hour, 30, 0, 0, time.UTC)
}

func TestAvailable_HourWindow(t *testing.T) {
	n := testNPC()
	if Available(n, atHour(12)) {
		t.Fatalf("NPC must be unavailable outside its hour window")
	}
	if !Available(n, atHour(19)) {
		t.Fatalf("NPC must be available inside its hour window")
	}
}

func TestAvailable_CooldownBlocksEvenInWindow(t *testing.T) {
	n := testNPC()
	now := atHour(19)
	defeated := now.Add(-30 * time.Minute)
	n.LastDefeated = &defeated
	if Available(n, now) {
		t.Fatalf("NPC defeated 30m ago must still be on a 4h cooldown")
	}

	// next day, back inside the window and past the 4h cooldown
	later := time.Date(2025, 6, 11, 18, 30, 0, 0, time.UTC)
	if !Available(n, later) {
		t.Fatalf("NPC must be available again after the cooldown elapses")
	}
}

func pool() []game.Card {
	return []game.Card{
		{ID: "m1", Faction: game.FactionMotoboys, Power: 2},
		{ID: "m2", Faction: game.FactionMotoboys, Power: 5},
		{ID: "c1", Faction: game.FactionCapoeira, Power: 4},
	}
}

func TestGenerateDeck_SizeByDifficulty(t *testing.T) {
	cases := []struct {
		tier game.Difficulty
		want int
	}{
		{game.DifficultyEasy, 6},
		{game.DifficultyMedium, 7},
		{game.DifficultyHard, 8},
		{game.DifficultyBoss, 10},
	}
	for _, c := range cases {
		n := testNPC()
		n.Difficulty = c.tier
		deck := GenerateDeck(n, pool(), 1)
		if len(deck) != c.want {
			t.Fatalf("tier %s: expected deck size %d, got %d", c.tier, c.want, len(deck))
		}
	}
}

func TestGenerateDeck_CyclesFactionPool(t *testing.T) {
	n := testNPC()
	deck := GenerateDeck(n, pool(), 7)
	for _, card := range deck {
		if card.Faction != game.FactionMotoboys {
			t.Fatalf("deck must only contain the NPC's faction, got %s", card.Faction)
		}
	}
}

func TestGenerateDeck_SeededReproducible(t *testing.T) {
	n := testNPC()
	a := GenerateDeck(n, pool(), 21)
	b := GenerateDeck(n, pool(), 21)
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("seeded NPC deck must be reproducible, differs at %d", i)
		}
	}
	if !shuffle.Validate(a, b) {
		t.Fatalf("decks must hold the same cards")
	}
}

func TestSimulate_Outcomes(t *testing.T) {
	n := testNPC()
	strong := []game.Card{{ID: "a", Power: 9}, {ID: "b", Power: 9}}
	weak := []game.Card{{ID: "c", Power: 1}, {ID: "d", Power: 2}}

	win := Simulate(strong, weak, n)
	if !win.PlayerWon || win.Tie {
		t.Fatalf("expected player victory, got %+v", win)
	}
	if win.Reward == nil || win.Reward.Experience != 50 || win.Reward.Respect != 5 {
		t.Fatalf("player victory must grant the NPC reward table, got %+v", win.Reward)
	}

	loss := Simulate(weak, strong, n)
	if loss.PlayerWon || loss.Tie || loss.Reward != nil {
		t.Fatalf("computer victory must grant nothing, got %+v", loss)
	}

	tie := Simulate(strong, strong, n)
	if !tie.Tie || tie.PlayerWon || tie.Reward != nil {
		t.Fatalf("equal totals must tie without rewards, got %+v", tie)
	}
}

func TestAdjustReward_Bonuses(t *testing.T) {
	base := game.NPCReward{Experience: 50, Respect: 5}

	fast := AdjustReward(base, 37, 2)
	// health bonus 3, speed bonus 20
	if fast.Experience != 73 {
		t.Fatalf("expected experience 73, got %d", fast.Experience)
	}
	if fast.Respect != 6 {
		t.Fatalf("expected respect 6, got %d", fast.Respect)
	}

	medium := AdjustReward(base, 20, 3)
	// health bonus 2, speed bonus 10
	if medium.Experience != 62 {
		t.Fatalf("expected experience 62, got %d", medium.Experience)
	}

	slow := AdjustReward(base, 5, 4)
	// health bonus 0, no speed bonus
	if slow.Experience != 50 || slow.Respect != 5 {
		t.Fatalf("expected unadjusted reward, got %+v", slow)
	}
}

func TestMarkDefeated_SetsTimestamp(t *testing.T) {
	n := testNPC()
	now := atHour(19)
	MarkDefeated(n, now)
	if n.LastDefeated == nil || !n.LastDefeated.Equal(now) {
		t.Fatalf("expected lastDefeated to be set to now")
	}
}
