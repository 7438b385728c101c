package engine

import (
	"testing"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
)

func baseContext() RoundContext {
	return RoundContext{
		Round:   1,
		Player1: game.NewPlayerState(),
		Player2: game.NewPlayerState(),
	}
}

func TestAttackValue(t *testing.T) {
	cases := []struct{ power, energy, want int }{
		{0, 0, 0},
		{1, 0, 10},
		{0, 5, 5},
		{7, 3, 73},
		{10, 12, 112},
	}
	for _, c := range cases {
		if got := AttackValue(c.power, c.energy); got != c.want {
			t.Fatalf("AttackValue(%d,%d)=%d, want %d", c.power, c.energy, got, c.want)
		}
	}
}

func TestResolveRound_HigherAttackWins(t *testing.T) {
	in := RoundInput{
		Card1:   game.Card{ID: "c1", Faction: game.FactionMotoboys, Power: 5, Damage: 3},
		Card2:   game.Card{ID: "c2", Faction: game.FactionMotoboys, Power: 4, Damage: 2},
		Energy1: 2,
		Energy2: 2,
	}
	res, _, p2 := ResolveRound(in, baseContext())
	if res.Winner != game.WinnerPlayer1 {
		t.Fatalf("expected player1 to win, got %s", res.Winner)
	}
	if res.Damage != 3 {
		t.Fatalf("expected damage 3, got %d", res.Damage)
	}
	if p2.Respect != game.RespectStart-3 {
		t.Fatalf("expected loser respect %d, got %d", game.RespectStart-3, p2.Respect)
	}
}

func TestResolveRound_EnergyAsTiebreaker(t *testing.T) {
	in := RoundInput{
		Card1:   game.Card{ID: "c1", Power: 5, Damage: 2},
		Card2:   game.Card{ID: "c2", Power: 5, Damage: 2},
		Energy1: 1,
		Energy2: 3,
	}
	res, _, _ := ResolveRound(in, baseContext())
	if res.Winner != game.WinnerPlayer2 {
		t.Fatalf("expected energy to break the tie for player2, got %s", res.Winner)
	}
}

func TestResolveRound_TieDealsNoDamageAndNoEffects(t *testing.T) {
	in := RoundInput{
		Card1:   game.Card{ID: "c1", Faction: game.FactionMotoboys, Power: 5, Damage: 4},
		Card2:   game.Card{ID: "c2", Faction: game.FactionCapoeira, Power: 5, Damage: 4},
		Energy1: 2,
		Energy2: 2,
	}
	res, p1, p2 := ResolveRound(in, baseContext())
	if res.Winner != game.WinnerTie {
		t.Fatalf("expected tie, got %s", res.Winner)
	}
	if res.Damage != 0 {
		t.Fatalf("tie must deal zero damage, got %d", res.Damage)
	}
	if len(res.Effects) != 0 {
		t.Fatalf("tie must not trigger on-win effects, got %v", res.Effects)
	}
	if p1.Respect != game.RespectStart || p2.Respect != game.RespectStart {
		t.Fatalf("tie must not change respect: %d/%d", p1.Respect, p2.Respect)
	}
}

func TestResolveRound_MotoboysWinnerGainsEnergy(t *testing.T) {
	ctx := baseContext()
	in := RoundInput{
		Card1:   game.Card{ID: "c1", Faction: game.FactionMotoboys, Power: 6, Damage: 2},
		Card2:   game.Card{ID: "c2", Faction: game.FactionCapoeira, Power: 1, Damage: 2},
		Energy1: 3,
		Energy2: 3,
	}
	res, p1, p2 := ResolveRound(in, ctx)
	if res.Winner != game.WinnerPlayer1 {
		t.Fatalf("expected player1 to win, got %s", res.Winner)
	}
	// 8 - 3 spent + 1 regen + 1 faction bonus
	if p1.Energy != 7 {
		t.Fatalf("expected winner energy 7, got %d", p1.Energy)
	}
	// 8 - 3 spent + 1 regen, no bonus for the loser
	if p2.Energy != 6 {
		t.Fatalf("expected loser energy 6, got %d", p2.Energy)
	}
}

func TestResolveRound_EnergyNeverExceedsCap(t *testing.T) {
	ctx := baseContext()
	ctx.Player1.Energy = game.EnergyCap
	in := RoundInput{
		Card1:   game.Card{ID: "c1", Faction: game.FactionMotoboys, Power: 6, Damage: 2},
		Card2:   game.Card{ID: "c2", Faction: game.FactionMotoboys, Power: 1, Damage: 2},
		Energy1: 0,
		Energy2: 0,
	}
	_, p1, _ := ResolveRound(in, ctx)
	if p1.Energy != game.EnergyCap {
		t.Fatalf("energy must stay at cap %d, got %d", game.EnergyCap, p1.Energy)
	}
}

func TestResolveRound_EnergyFloorsAtZero(t *testing.T) {
	ctx := baseContext()
	ctx.Player2.Energy = 0
	in := RoundInput{
		Card1:   game.Card{ID: "c1", Power: 6, Damage: 2},
		Card2:   game.Card{ID: "c2", Power: 1, Damage: 2},
		Energy1: 0,
		Energy2: 2, // overspend relative to current energy
	}
	_, _, p2 := ResolveRound(in, ctx)
	if p2.Energy < 0 {
		t.Fatalf("energy must never go negative, got %d", p2.Energy)
	}
}

func TestResolveRound_CapoeiraReducesDamageOnlyRoundOne(t *testing.T) {
	in := RoundInput{
		Card1:   game.Card{ID: "c1", Faction: game.FactionCapoeira, Power: 6, Damage: 4},
		Card2:   game.Card{ID: "c2", Faction: game.FactionMotoboys, Power: 1, Damage: 4},
		Energy1: 0,
		Energy2: 0,
	}

	ctx := baseContext()
	res, _, _ := ResolveRound(in, ctx)
	if res.Damage != 3 {
		t.Fatalf("round 1 capoeira win should deal 3, got %d", res.Damage)
	}

	ctx.Round = 2
	res2, _, _ := ResolveRound(in, ctx)
	if res2.Damage != 4 {
		t.Fatalf("round 2 capoeira win should deal undiminished 4, got %d", res2.Damage)
	}
}

func TestResolveRound_MinimumDamageFloor(t *testing.T) {
	// Base damage 1 with capoeira's -1 on round 1 still hits for 1.
	in := RoundInput{
		Card1:   game.Card{ID: "c1", Faction: game.FactionCapoeira, Power: 6, Damage: 1},
		Card2:   game.Card{ID: "c2", Faction: game.FactionMotoboys, Power: 1, Damage: 1},
		Energy1: 0,
		Energy2: 0,
	}
	res, _, _ := ResolveRound(in, baseContext())
	if res.Damage != 1 {
		t.Fatalf("winner damage must never drop below 1, got %d", res.Damage)
	}
}

func TestResolveRound_CapoeiraRuleOnlyAppliesToWinner(t *testing.T) {
	// Capoeira loses round 1: the motoboys winner deals full damage.
	in := RoundInput{
		Card1:   game.Card{ID: "c1", Faction: game.FactionCapoeira, Power: 1, Damage: 4},
		Card2:   game.Card{ID: "c2", Faction: game.FactionMotoboys, Power: 6, Damage: 4},
		Energy1: 0,
		Energy2: 0,
	}
	res, _, _ := ResolveRound(in, baseContext())
	if res.Winner != game.WinnerPlayer2 {
		t.Fatalf("expected player2 to win, got %s", res.Winner)
	}
	if res.Damage != 4 {
		t.Fatalf("expected full damage 4, got %d", res.Damage)
	}
}
