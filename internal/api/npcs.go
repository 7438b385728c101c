package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/constants"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/npc"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/service"
)

type npcView struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	Faction        string `json:"faction"`
	Difficulty     string `json:"difficulty"`
	Level          int    `json:"level"`
	AvailableHours []int  `json:"available_hours"`
	Available      bool   `json:"available"`
}

// ListNPCs returns the NPC roster with availability resolved against the
// current server time.
func (h *GameHandler) ListNPCs(c *gin.Context) {
	npcs, err := h.repo.GetNPCs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchNPCs})
		return
	}
	now := time.Now()
	out := make([]npcView, 0, len(npcs))
	for i := range npcs {
		n := &npcs[i]
		out = append(out, npcView{
			Key:            n.Key,
			Name:           n.Name,
			Faction:        string(n.Faction),
			Difficulty:     string(n.Difficulty),
			Level:          n.Level,
			AvailableHours: n.AvailableHours,
			Available:      npc.Available(n, now),
		})
	}
	c.JSON(http.StatusOK, out)
}

type challengeRequest struct {
	DeckIDs          []string `json:"deck_ids"`
	Seed             int64    `json:"seed"`
	RemainingRespect int      `json:"remaining_respect"`
	RoundsTaken      int      `json:"rounds_taken"`
}

// ChallengeNPC resolves a battle between the authenticated player and an
// NPC opponent.
func (h *GameHandler) ChallengeNPC(c *gin.Context) {
	var req challengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	res, err := service.ChallengeNPC(h.repo, h.cards, c.Param("npcKey"), service.ChallengeRequest{
		PlayerUUID:       c.GetString(constants.ContextUserID),
		PlayerName:       c.GetString(constants.ContextUserName),
		DeckIDs:          req.DeckIDs,
		Seed:             req.Seed,
		RemainingRespect: req.RemainingRespect,
		RoundsTaken:      req.RoundsTaken,
	}, time.Now())
	switch err {
	case nil:
		c.JSON(http.StatusOK, res)
	case service.ErrNPCNotFound:
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrNPCNotFound})
	case service.ErrNPCNotAvailable:
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNPCNotAvailable})
	case service.ErrEmptyDeck:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedResolveBattle})
	}
}
