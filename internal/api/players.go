package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/constants"
)

// GetPlayerStats returns the authenticated player's aggregate stats.
func (h *GameHandler) GetPlayerStats(c *gin.Context) {
	uuid := c.GetString(constants.ContextUserID)
	ps, err := h.repo.GetStatsByUUID(uuid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	out, err := MarshalForContext(c, ps)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, out)
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

// UpdatePlayerProfile updates the player's display name.
func (h *GameHandler) UpdatePlayerProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUsernameRequired})
		return
	}
	uuid := c.GetString(constants.ContextUserID)
	ps, err := h.repo.GetStatsByUUID(uuid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	ps.PlayerName = strings.TrimSpace(req.Name)
	if err := h.repo.SaveUser(ps); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchStats})
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok", "name": ps.PlayerName})
}

// ListLeaderboard returns the top players ordered by wins.
func (h *GameHandler) ListLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	users, err := h.repo.GetTopPlayers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	out, err := MarshalForContext(c, users)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetMatchHistory returns the authenticated player's recent matches.
func (h *GameHandler) GetMatchHistory(c *gin.Context) {
	uuid := c.GetString(constants.ContextUserID)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	recs, err := h.repo.GetMatchHistory(uuid, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatches})
		return
	}
	out, err := MarshalForContext(c, recs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatches})
		return
	}
	c.JSON(http.StatusOK, out)
}
