package engine

import "github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"

// EnergyRegen is the flat energy every player recovers after a round,
// before any faction bonus and before clamping to the cap.
const EnergyRegen = 1

// MinWinDamage is the floor applied to a determined winner's damage so
// effect stacking can never reduce an actual win to zero.
const MinWinDamage = 1

// AttackValue computes one side's attack for a clash: raw card power is
// the dominant term, committed energy acts at tiebreaker scale.
func AttackValue(power, energySpent int) int {
	return power*10 + energySpent
}

// ResolveRound computes the outcome of one card clash. It is pure and
// deterministic: same input and context always produce the same result.
// The loser's respect may go transiently negative here; the match session
// enforces the zero floor when it checks for a knockout.
func ResolveRound(in RoundInput, ctx RoundContext) (RoundResult, game.PlayerState, game.PlayerState) {
	p1 := ctx.Player1
	p2 := ctx.Player2

	res := RoundResult{
		Attack1: AttackValue(in.Card1.Power, in.Energy1),
		Attack2: AttackValue(in.Card2.Power, in.Energy2),
	}

	var winnerCard game.Card
	switch {
	case res.Attack1 > res.Attack2:
		res.Winner = game.WinnerPlayer1
		winnerCard = in.Card1
	case res.Attack2 > res.Attack1:
		res.Winner = game.WinnerPlayer2
		winnerCard = in.Card2
	default:
		res.Winner = game.WinnerTie
	}

	bonus1, bonus2 := 0, 0
	if res.Winner != game.WinnerTie {
		eff := FactionEffectFor(winnerCard.Faction, ctx.Round)
		res.Effects = eff.Triggered
		res.Damage = winnerCard.Damage + eff.DamageModifier
		if res.Damage < MinWinDamage {
			res.Damage = MinWinDamage
		}
		if res.Winner == game.WinnerPlayer1 {
			bonus1 = eff.EnergyBonus
			p2.Respect -= res.Damage
		} else {
			bonus2 = eff.EnergyBonus
			p1.Respect -= res.Damage
		}
	}
	// Ties deal no damage and never fire on-win effects.

	p1.Energy = clampInt(p1.Energy-in.Energy1+EnergyRegen+bonus1, 0, game.EnergyCap)
	p2.Energy = clampInt(p2.Energy-in.Energy2+EnergyRegen+bonus2, 0, game.EnergyCap)

	return res, p1, p2
}
