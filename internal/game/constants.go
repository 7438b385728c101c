package game

// Faction is a card/player affiliation granting rule-specific modifiers.
// Using a dedicated type instead of plain string makes code safer and
// self-documenting.
type Faction string

const (
	// FactionMotoboys is the delivery crew: +1 energy to its side whenever
	// it wins a round.
	FactionMotoboys Faction = "motoboys"
	// FactionCapoeira is the rhythm/evasion crew: deals 1 less damage, but
	// only on round 1 and never below the minimum-damage floor.
	FactionCapoeira Faction = "capoeira"

	// DefaultFaction is assigned to ad-hoc joiners that don't pick one.
	DefaultFaction = FactionMotoboys
)

// KnownFactions lists every faction accepted by config validation.
var KnownFactions = []Faction{FactionMotoboys, FactionCapoeira}

// Match lifecycle statuses. Transitions only move forward.
const (
	StatusPreparing = "preparing"
	StatusPlaying   = "playing"
	StatusFinished  = "finished"
)

// Matchmaking queue statuses.
const (
	QueueWaiting   = "waiting"
	QueueMatching  = "matching"
	QueueMatched   = "matched"
	QueueCancelled = "cancelled"
)

// Winner tags used in round results and history entries.
const (
	WinnerPlayer1 = "player1"
	WinnerPlayer2 = "player2"
	WinnerTie     = "tie"
)

// End reasons recorded on terminal match transitions.
const (
	EndReasonKnockout   = "knockout"
	EndReasonRoundLimit = "round_limit"
	EndReasonTimeout    = "timeout"
	EndReasonConcede    = "concede"
	EndReasonDisconnect = "disconnect"
)

// Core numeric rules shared by the resolver and the session machines.
const (
	RespectStart = 12
	EnergyStart  = 8
	EnergyCap    = 12
	// RoundEnergyCap bounds the between-round regeneration applied by the
	// match session (distinct from the resolver's EnergyCap clamp).
	RoundEnergyCap = 8
	MaxRounds      = 4
)

// Difficulty is an NPC tier controlling deck size and rewards.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyBoss   Difficulty = "boss"
)

// DeckSizeFor returns the generated deck size for an NPC tier.
func DeckSizeFor(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 6
	case DifficultyMedium:
		return 7
	case DifficultyHard:
		return 8
	case DifficultyBoss:
		return 10
	default:
		return 6
	}
}
