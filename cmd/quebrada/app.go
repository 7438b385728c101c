package main

import (
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/config"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/logging"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/session"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("missing or invalid quebrada configuration", err, logging.Fields{"config_path": path, "hint": "create a quebrada_config.json with a 'card_list' array and optional keys: npc_list, server.address, timeouts"})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string, npcs []game.NPC) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath, npcs)
	if err != nil {
		logging.Fatal("failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db, npcs)
}

// startReaper schedules the periodic disposal of finished match sessions.
func startReaper(manager *session.Manager) gocron.Scheduler {
	sched, err := gocron.NewScheduler()
	if err != nil {
		logging.Fatal("failed to create scheduler", err, nil)
	}
	_, err = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(manager.Reap),
	)
	if err != nil {
		logging.Fatal("failed to schedule session reaper", err, nil)
	}
	sched.Start()
	return sched
}
