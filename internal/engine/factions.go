package engine

import "github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"

// FactionEffect is the rule adjustment a faction grants to the side that
// won the round. DamageModifier alters the damage dealt by the winner;
// EnergyBonus is added to the winner's energy regeneration.
type FactionEffect struct {
	EnergyBonus    int
	DamageModifier int
	Triggered      []string
}

// Effect identifiers recorded in round results when a faction rule fires.
const (
	EffectMotoboysEnergy  = "motoboys_win_energy"
	EffectCapoeiraEvasion = "capoeira_first_round_evasion"
)

// FactionEffectFor returns the modifiers for the winning card's faction at
// the given 1-based round number. Unknown factions get no adjustment, which
// keeps the table extensible to new crews.
func FactionEffectFor(f game.Faction, round int) FactionEffect {
	switch f {
	case game.FactionMotoboys:
		// Delivery crew: +1 energy to its side whenever it wins.
		return FactionEffect{EnergyBonus: 1, Triggered: []string{EffectMotoboysEnergy}}
	case game.FactionCapoeira:
		// Rhythm/evasion crew: deals 1 less damage, round 1 only.
		if round == 1 {
			return FactionEffect{DamageModifier: -1, Triggered: []string{EffectCapoeiraEvasion}}
		}
		return FactionEffect{}
	default:
		return FactionEffect{}
	}
}
