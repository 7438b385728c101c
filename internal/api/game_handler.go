package api

import (
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/session"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/storage"
)

// GameHandler groups all game-related HTTP handlers.
type GameHandler struct {
	repo    storage.Repository
	manager *session.Manager
	cards   []game.Card
}

// NewGameHandler creates a new GameHandler with the given repository, live
// session manager and card catalog.
func NewGameHandler(repo storage.Repository, manager *session.Manager, cards []game.Card) *GameHandler {
	return &GameHandler{repo: repo, manager: manager, cards: cards}
}
