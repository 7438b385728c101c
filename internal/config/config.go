package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/keys"
)

type cardEntry struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Faction  string   `json:"faction"`
	Power    int      `json:"power"`
	Damage   int      `json:"damage"`
	Text     string   `json:"text"`
	Keywords []string `json:"keywords"`
	OnEnter  []string `json:"on_enter"`
	OnWin    []string `json:"on_win"`
}

type npcEntry struct {
	Key            string           `json:"key"`
	Name           string           `json:"name"`
	Faction        string           `json:"faction"`
	Difficulty     string           `json:"difficulty"`
	Level          int              `json:"level"`
	Strategy       game.NPCStrategy `json:"strategy"`
	Reward         game.NPCReward   `json:"reward"`
	AvailableHours []int            `json:"available_hours"`
	CooldownHours  int              `json:"cooldown_hours"`
}

type rawConfig struct {
	CardList []cardEntry `json:"card_list"`
	NPCList  []npcEntry  `json:"npc_list"`
	Server   *struct {
		Address string `json:"address"`
	} `json:"server"`
	Timeouts *struct {
		MatchMinutes        int `json:"match_minutes"`
		MatchingDelayMillis int `json:"matching_delay_millis"`
	} `json:"timeouts"`
}

// LoadedConfig contains the card catalog, NPC roster and server settings.
type LoadedConfig struct {
	Cards         []game.Card
	NPCs          []game.NPC
	ServerAddress string
	MatchTimeout  time.Duration
	MatchingDelay time.Duration
}

// LoadConfig reads the configuration file at path. It requires the key
// `card_list` (snake_case); everything else has defaults.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.CardList) == 0 {
		return nil, fmt.Errorf("config file %s: card_list is empty (provide 'card_list' array)", path)
	}

	cards := make([]game.Card, 0, len(rc.CardList))
	idSet := make(map[string]struct{}, len(rc.CardList))
	for _, c := range rc.CardList {
		if c.ID == "" || c.Name == "" {
			return nil, fmt.Errorf("config file %s: card entry missing 'id' or 'name'", path)
		}
		id := strings.TrimSpace(c.ID)
		if _, exists := idSet[id]; exists {
			return nil, fmt.Errorf("config file %s: duplicate card id '%s'", path, id)
		}
		idSet[id] = struct{}{}
		faction, err := parseFaction(c.Faction)
		if err != nil {
			return nil, fmt.Errorf("config file %s: card '%s': %w", path, id, err)
		}
		if c.Power < 0 || c.Damage < 0 {
			return nil, fmt.Errorf("config file %s: card '%s': power and damage must be non-negative", path, id)
		}
		cards = append(cards, game.Card{
			ID:       id,
			Name:     c.Name,
			Faction:  faction,
			Power:    c.Power,
			Damage:   c.Damage,
			Text:     c.Text,
			Keywords: c.Keywords,
			OnEnter:  c.OnEnter,
			OnWin:    c.OnWin,
		})
	}

	npcs := make([]game.NPC, 0, len(rc.NPCList))
	keySet := make(map[string]struct{}, len(rc.NPCList))
	for _, n := range rc.NPCList {
		if n.Key == "" {
			n.Key = keys.CanonicalKey(n.Name)
		}
		if n.Key == "" {
			return nil, fmt.Errorf("config file %s: npc entry missing 'key' and 'name'", path)
		}
		if _, exists := keySet[n.Key]; exists {
			return nil, fmt.Errorf("config file %s: duplicate npc key '%s'", path, n.Key)
		}
		keySet[n.Key] = struct{}{}
		faction, err := parseFaction(n.Faction)
		if err != nil {
			return nil, fmt.Errorf("config file %s: npc '%s': %w", path, n.Key, err)
		}
		difficulty, err := parseDifficulty(n.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("config file %s: npc '%s': %w", path, n.Key, err)
		}
		for _, h := range n.AvailableHours {
			if h < 0 || h > 23 {
				return nil, fmt.Errorf("config file %s: npc '%s': available hour %d out of range", path, n.Key, h)
			}
		}
		npcs = append(npcs, game.NPC{
			Key:            n.Key,
			Name:           n.Name,
			Faction:        faction,
			Difficulty:     difficulty,
			Level:          n.Level,
			Strategy:       n.Strategy,
			Reward:         n.Reward,
			AvailableHours: n.AvailableHours,
			CooldownHours:  n.CooldownHours,
		})
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}
	var matchTimeout, matchingDelay time.Duration
	if rc.Timeouts != nil {
		matchTimeout = time.Duration(rc.Timeouts.MatchMinutes) * time.Minute
		matchingDelay = time.Duration(rc.Timeouts.MatchingDelayMillis) * time.Millisecond
	}

	return &LoadedConfig{
		Cards:         cards,
		NPCs:          npcs,
		ServerAddress: addr,
		MatchTimeout:  matchTimeout,
		MatchingDelay: matchingDelay,
	}, nil
}

func parseFaction(s string) (game.Faction, error) {
	f := game.Faction(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return game.DefaultFaction, nil
	}
	for _, known := range game.KnownFactions {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown faction '%s'", s)
}

func parseDifficulty(s string) (game.Difficulty, error) {
	d := game.Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case "":
		return game.DifficultyEasy, nil
	case game.DifficultyEasy, game.DifficultyMedium, game.DifficultyHard, game.DifficultyBoss:
		return d, nil
	default:
		return "", fmt.Errorf("unknown difficulty '%s'", s)
	}
}
