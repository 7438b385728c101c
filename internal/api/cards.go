package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/constants"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/shuffle"
)

// ListCards returns the card catalog, optionally filtered by faction.
func (h *GameHandler) ListCards(c *gin.Context) {
	faction := game.Faction(c.Query("faction"))
	if faction == "" {
		c.JSON(http.StatusOK, h.cards)
		return
	}
	out := make([]game.Card, 0, len(h.cards))
	for _, card := range h.cards {
		if card.Faction == faction {
			out = append(out, card)
		}
	}
	c.JSON(http.StatusOK, out)
}

type shuffleRequest struct {
	CardIDs   []string `json:"card_ids"`
	Seed      int64    `json:"seed"`
	Algorithm string   `json:"algorithm"` // backward | forward | balanced
}

// ShuffleDeck shuffles a deck server-side so clients can present the same
// order the server will use. The response includes the entropy of the
// permutation for debugging and fairness dashboards.
func (h *GameHandler) ShuffleDeck(c *gin.Context) {
	var req shuffleRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.CardIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	byID := make(map[string]game.Card, len(h.cards))
	for _, card := range h.cards {
		byID[card.ID] = card
	}
	deck := make([]game.Card, 0, len(req.CardIDs))
	for _, id := range req.CardIDs {
		card, ok := byID[id]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
			return
		}
		deck = append(deck, card)
	}

	// Seed zero means "no seed": fresh entropy on every call, for all
	// algorithms alike.
	var src shuffle.Source
	if req.Seed != 0 {
		src = shuffle.SeededSource(req.Seed)
	}
	var out []game.Card
	switch req.Algorithm {
	case "", "backward":
		out = shuffle.Shuffle(deck, src)
	case "forward":
		out = shuffle.ShuffleForward(deck, src)
	case "balanced":
		out = shuffle.ShuffleBalanced(deck, req.Seed)
	default:
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deck":    out,
		"entropy": shuffle.Entropy(deck, out),
		"valid":   shuffle.Validate(deck, out),
	})
}
