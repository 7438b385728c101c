package game

import (
	"time"

	"gorm.io/gorm"
)

// Card is read-only catalog data loaded from the server config
// (quebrada_config.json). Cards are never persisted; the config is the
// single source of truth for the card pool.
type Card struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Faction  Faction  `json:"faction"`
	Power    int      `json:"power"`
	Damage   int      `json:"damage"`
	Text     string   `json:"text"`
	Keywords []string `json:"keywords"`
	OnEnter  []string `json:"on_enter,omitempty"`
	OnWin    []string `json:"on_win,omitempty"`
}

// PlayerState is the per-player resource block tracked across a match.
// Respect is the life resource (floor 0), energy is spendable (cap 12).
type PlayerState struct {
	Respect int      `json:"respect"`
	Energy  int      `json:"energy"`
	Hand    []Card   `json:"hand"`
	Effects []string `json:"effects"`
}

// NewPlayerState returns the starting resource block for a match.
func NewPlayerState() PlayerState {
	return PlayerState{
		Respect: RespectStart,
		Energy:  EnergyStart,
		Hand:    []Card{},
		Effects: []string{},
	}
}

// GamePlayer is one seat inside a live match session.
type GamePlayer struct {
	SessionID string      `json:"session_id"`
	UserID    string      `json:"user_id"`
	Username  string      `json:"username"`
	Faction   Faction     `json:"faction"`
	State     PlayerState `json:"state"`
	IsReady   bool        `json:"is_ready"`
}

// RoundSummary is one entry of a match's round history.
type RoundSummary struct {
	Round   int      `json:"round"`
	Winner  string   `json:"winner"` // player1 | player2 | tie | "" for uneventful turns
	Damage  int      `json:"damage"`
	Detail  string   `json:"detail,omitempty"`
	Effects []string `json:"effects,omitempty"`
}

// NPCStrategy describes how a computer opponent commits resources.
type NPCStrategy struct {
	Type            string `json:"type"` // aggressive | defensive | balanced
	PreferredEnergy int    `json:"preferred_energy"`
	RiskTolerance   int    `json:"risk_tolerance"` // 0..100
	ComboThreshold  int    `json:"combo_threshold"`
}

// NPCReward is the prize table granted when a player defeats the NPC.
type NPCReward struct {
	Experience int      `json:"experience"`
	Respect    int      `json:"respect"`
	BonusCards []string `json:"bonus_cards,omitempty"`
	Titles     []string `json:"titles,omitempty"`
}

// NPC is a computer-controlled opponent. Stats come from the server config
// and are not persisted (gorm:"-"); only identity and the last-defeated
// timestamp live in the database so cooldowns survive restarts.
type NPC struct {
	gorm.Model
	Key string `json:"key" gorm:"uniqueIndex"`

	Name           string      `json:"name" gorm:"-"`
	Faction        Faction     `json:"faction" gorm:"-"`
	Difficulty     Difficulty  `json:"difficulty" gorm:"-"`
	Level          int         `json:"level" gorm:"-"`
	Strategy       NPCStrategy `json:"strategy" gorm:"-"`
	Reward         NPCReward   `json:"reward" gorm:"-"`
	AvailableHours []int       `json:"available_hours" gorm:"-"`
	CooldownHours  int         `json:"cooldown_hours" gorm:"-"`

	LastDefeated *time.Time `json:"last_defeated"`
}

func (NPC) TableName() string { return "npc_opponents" }

// User stores unique player identity and aggregate stats.
type User struct {
	gorm.Model
	PlayerUUID    string `gorm:"index"`
	PlayerName    string
	Email         string `gorm:"uniqueIndex"`
	GamesPlayed   int
	Wins          int
	Concessions   int
	NPCVictories  int
	RespectEarned int
}

func (User) TableName() string { return "player_profiles" }

// MatchRecord is the persisted outcome of one finished match session.
type MatchRecord struct {
	gorm.Model
	MatchID      string `json:"match_id" gorm:"uniqueIndex"`
	Player1UUID  string `json:"player1_uuid"`
	Player1Name  string `json:"player1_name"`
	Player2UUID  string `json:"player2_uuid"`
	Player2Name  string `json:"player2_name"`
	WinnerUUID   string `json:"winner_uuid"`
	EndReason    string `json:"end_reason"`
	RoundsPlayed int    `json:"rounds_played"`
}

func (MatchRecord) TableName() string { return "match_records" }
