package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/logging"
)

func OpenAndMigrate(dataSourceName string, npcsFromConfig []game.NPC) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Keep schema updated via AutoMigrate; the data file is removed out of
	// band when a clean slate is needed.
	err = db.AutoMigrate(&game.User{}, &game.MatchRecord{}, &game.NPC{})
	if err != nil {
		return nil, err
	}

	seedNPCRows(db, npcsFromConfig)
	return db, nil
}

// seedNPCRows ensures every configured NPC has a persisted identity row.
// Existing rows keep their last-defeated timestamp so cooldowns survive
// config reloads and restarts.
func seedNPCRows(db *gorm.DB, npcsFromConfig []game.NPC) {
	for _, n := range npcsFromConfig {
		var count int64
		if err := db.Model(&game.NPC{}).Where("key = ?", n.Key).Count(&count).Error; err != nil {
			logging.Error("failed to check NPC row", err, logging.Fields{"npc_key": n.Key})
			continue
		}
		if count > 0 {
			continue
		}
		row := game.NPC{Key: n.Key}
		if err := db.Create(&row).Error; err != nil {
			logging.Error("failed to seed NPC row", err, logging.Fields{"npc_key": n.Key})
		}
	}
}
