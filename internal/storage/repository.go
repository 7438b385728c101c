package storage

import (
	"time"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
)

type Repository interface {
	// Player profiles
	UpsertUser(email, uuid, name string) error
	GetStatsByEmail(email string) (*game.User, error)
	GetStatsByUUID(uuid string) (*game.User, error)
	SaveUser(u *game.User) error
	// Leaderboard
	GetTopPlayers(limit int) ([]game.User, error)

	// Match records
	SaveMatchRecord(rec *game.MatchRecord) error
	GetMatchRecordByMatchID(matchID string) (*game.MatchRecord, error)
	// GetMatchHistory returns the most recent finished matches a player
	// took part in, newest first.
	GetMatchHistory(playerUUID string, limit int) ([]game.MatchRecord, error)
	// UpdateStatsOnMatchEnd applies one finished match to both players'
	// aggregate stats. A concession counts against the losing player.
	UpdateStatsOnMatchEnd(rec *game.MatchRecord) error

	// NPC opponents. Stats come from the server config; only identity and
	// the last-defeated timestamp are persisted so cooldowns survive
	// restarts.
	GetNPCs() ([]game.NPC, error)
	GetNPCByKey(key string) (*game.NPC, error)
	SetNPCLastDefeated(key string, at time.Time) error
	// AddNPCVictory credits a player with an NPC win and the respect the
	// reward granted.
	AddNPCVictory(playerUUID string, respectEarned int) error
}
