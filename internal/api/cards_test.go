package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
)

func shuffleTestCards(n int) []game.Card {
	cards := make([]game.Card, n)
	for i := range cards {
		cards[i] = game.Card{ID: fmt.Sprintf("card-%02d", i), Name: fmt.Sprintf("Card %d", i), Faction: game.FactionMotoboys, Power: i%6 + 1, Damage: 1}
	}
	return cards
}

func shuffleRouter(cards []game.Card) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/decks/shuffle", NewGameHandler(nil, nil, cards).ShuffleDeck)
	return r
}

func postShuffle(t *testing.T, r *gin.Engine, body map[string]any) string {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/decks/shuffle", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Deck []game.Card `json:"deck"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	ids := make([]string, len(resp.Deck))
	for i, c := range resp.Deck {
		ids[i] = c.ID
	}
	return strings.Join(ids, ",")
}

func cardIDs(cards []game.Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

func TestShuffleDeck_UnseededUsesFreshEntropy(t *testing.T) {
	cards := shuffleTestCards(12)
	r := shuffleRouter(cards)
	body := map[string]any{"card_ids": cardIDs(cards)}

	a := postShuffle(t, r, body)
	b := postShuffle(t, r, body)
	if a == b {
		t.Fatalf("two unseeded shuffles returned the same order: %s", a)
	}
}

func TestShuffleDeck_UnseededForwardUsesFreshEntropy(t *testing.T) {
	cards := shuffleTestCards(12)
	r := shuffleRouter(cards)
	body := map[string]any{"card_ids": cardIDs(cards), "algorithm": "forward"}

	a := postShuffle(t, r, body)
	b := postShuffle(t, r, body)
	if a == b {
		t.Fatalf("two unseeded forward shuffles returned the same order: %s", a)
	}
}

func TestShuffleDeck_SeededIsReproducible(t *testing.T) {
	cards := shuffleTestCards(12)
	r := shuffleRouter(cards)
	body := map[string]any{"card_ids": cardIDs(cards), "seed": 42}

	a := postShuffle(t, r, body)
	b := postShuffle(t, r, body)
	if a != b {
		t.Fatalf("same seed must reproduce the order:\n%s\n%s", a, b)
	}
}

func TestShuffleDeck_UnknownCardRejected(t *testing.T) {
	cards := shuffleTestCards(3)
	r := shuffleRouter(cards)
	b, _ := json.Marshal(map[string]any{"card_ids": []string{"card-00", "nope"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/decks/shuffle", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown card id, got %d", w.Code)
	}
}
