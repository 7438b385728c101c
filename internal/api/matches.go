package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/constants"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/logging"
)

// CreateMatch opens an ad-hoc match identified by a shareable code. The
// creator and a friend then connect over the websocket and join it.
func (h *GameHandler) CreateMatch(c *gin.Context) {
	code := generateMatchCode()
	h.manager.CreateMatch(code)
	logging.Info("ad-hoc match created", logging.Fields{constants.LogFieldMatchID: code, constants.LogFieldUserID: c.GetString(constants.ContextUserID)})
	c.JSON(http.StatusCreated, gin.H{"match_id": code})
}

// GetMatch returns the current state of a match: the live session snapshot
// while it runs, or the persisted record once the session was reaped.
func (h *GameHandler) GetMatch(c *gin.Context) {
	id := c.Param("matchID")
	if matchCodeRegex.MatchString(normalizeMatchCode(id)) {
		id = normalizeMatchCode(id)
	}

	if s, err := h.manager.Match(id); err == nil {
		c.JSON(http.StatusOK, s.Snapshot())
		return
	}

	rec, err := h.repo.GetMatchRecordByMatchID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrMatchNotFound})
		return
	}
	out, err := MarshalForContext(c, rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchMatches})
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetQueueStatus returns the matchmaking queue state.
func (h *GameHandler) GetQueueStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.Queue().Snapshot())
}
