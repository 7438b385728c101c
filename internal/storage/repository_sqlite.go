package storage

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
)

type sqliteRepository struct {
	db *gorm.DB
	// configByKey maps NPC key -> config definition (stats, rewards,
	// availability). The config is the source of truth; the DB only knows
	// identity and cooldown timestamps.
	configByKey map[string]game.NPC
}

func NewSQLiteRepository(db *gorm.DB, configNPCs []game.NPC) Repository {
	m := make(map[string]game.NPC, len(configNPCs))
	for _, n := range configNPCs {
		m[n.Key] = n
	}
	return &sqliteRepository{db: db, configByKey: m}
}

// hydrate copies configured stats onto a persisted NPC row.
func (r *sqliteRepository) hydrate(n *game.NPC) {
	conf, ok := r.configByKey[n.Key]
	if !ok {
		return
	}
	n.Name = conf.Name
	n.Faction = conf.Faction
	n.Difficulty = conf.Difficulty
	n.Level = conf.Level
	n.Strategy = conf.Strategy
	n.Reward = conf.Reward
	n.AvailableHours = conf.AvailableHours
	n.CooldownHours = conf.CooldownHours
}

func (r *sqliteRepository) GetNPCs() ([]game.NPC, error) {
	var npcs []game.NPC
	if err := r.db.Find(&npcs).Error; err != nil {
		return nil, err
	}
	out := make([]game.NPC, 0, len(npcs))
	for i := range npcs {
		if _, ok := r.configByKey[npcs[i].Key]; !ok {
			// Row for an NPC removed from the config; hide it.
			continue
		}
		r.hydrate(&npcs[i])
		out = append(out, npcs[i])
	}
	return out, nil
}

func (r *sqliteRepository) GetNPCByKey(key string) (*game.NPC, error) {
	var n game.NPC
	if err := r.db.Where("key = ?", key).First(&n).Error; err != nil {
		return nil, err
	}
	r.hydrate(&n)
	return &n, nil
}

func (r *sqliteRepository) SetNPCLastDefeated(key string, at time.Time) error {
	return r.db.Model(&game.NPC{}).Where("key = ?", key).Update("last_defeated", at).Error
}

func (r *sqliteRepository) AddNPCVictory(playerUUID string, respectEarned int) error {
	var u game.User
	if err := r.db.Where("player_uuid = ?", playerUUID).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// Guests without a profile still play NPC battles; nothing to
			// credit.
			return nil
		}
		return err
	}
	u.NPCVictories++
	u.RespectEarned += respectEarned
	return r.db.Save(&u).Error
}

func (r *sqliteRepository) SaveMatchRecord(rec *game.MatchRecord) error {
	// Upsert keyed by match id so a retried save after a transient failure
	// does not violate the unique constraint.
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "match_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"winner_uuid", "end_reason", "rounds_played"}),
	}).Create(rec).Error
}

func (r *sqliteRepository) GetMatchRecordByMatchID(matchID string) (*game.MatchRecord, error) {
	var rec game.MatchRecord
	if err := r.db.Where("match_id = ?", matchID).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) GetMatchHistory(playerUUID string, limit int) ([]game.MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var recs []game.MatchRecord
	if err := r.db.
		Where("player1_uuid = ? OR player2_uuid = ?", playerUUID, playerUUID).
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *sqliteRepository) UpdateStatsOnMatchEnd(rec *game.MatchRecord) error {
	upsert := func(uuid, name string, played, wins, concessions int) error {
		if uuid == "" {
			return nil
		}
		var ps game.User
		if err := r.db.Where("player_uuid = ?", uuid).First(&ps).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				ps = game.User{PlayerUUID: uuid, PlayerName: name}
			} else {
				return err
			}
		}
		if name != "" {
			ps.PlayerName = name
		}
		ps.GamesPlayed += played
		ps.Wins += wins
		ps.Concessions += concessions
		return r.db.Save(&ps).Error
	}

	if err := upsert(rec.Player1UUID, rec.Player1Name, 1, 0, 0); err != nil {
		return err
	}
	if err := upsert(rec.Player2UUID, rec.Player2Name, 1, 0, 0); err != nil {
		return err
	}
	if rec.WinnerUUID != "" {
		winnerName := rec.Player1Name
		if rec.WinnerUUID == rec.Player2UUID {
			winnerName = rec.Player2Name
		}
		if err := upsert(rec.WinnerUUID, winnerName, 0, 1, 0); err != nil {
			return err
		}
	}
	if rec.EndReason == game.EndReasonConcede && rec.WinnerUUID != "" {
		loserUUID := rec.Player1UUID
		loserName := rec.Player1Name
		if rec.WinnerUUID == rec.Player1UUID {
			loserUUID = rec.Player2UUID
			loserName = rec.Player2Name
		}
		return upsert(loserUUID, loserName, 0, 0, 1)
	}
	return nil
}

func (r *sqliteRepository) GetStatsByEmail(email string) (*game.User, error) {
	var ps game.User
	if err := r.db.Where("email = ?", email).First(&ps).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.User{Email: email}, nil
		}
		return nil, err
	}
	return &ps, nil
}

func (r *sqliteRepository) GetStatsByUUID(uuid string) (*game.User, error) {
	var ps game.User
	if err := r.db.Where("player_uuid = ?", uuid).First(&ps).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &game.User{PlayerUUID: uuid}, nil
		}
		return nil, err
	}
	return &ps, nil
}

func (r *sqliteRepository) SaveUser(u *game.User) error {
	return r.db.Save(u).Error
}

func (r *sqliteRepository) UpsertUser(email, uuid, name string) error {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			u = game.User{Email: email, PlayerUUID: uuid, PlayerName: name}
		} else {
			return err
		}
	}
	u.PlayerName = name
	u.PlayerUUID = uuid
	return r.db.Save(&u).Error
}

// GetTopPlayers returns top N players ordered by Wins desc, then GamesPlayed desc
func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []game.User
	if err := r.db.Model(&game.User{}).
		Order("wins DESC").
		Order("games_played DESC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
