package keys

import "strings"

// CanonicalKey produces a stable identifier from a display name: trimmed,
// lower-cased, spaces replaced with underscores. Suitable for DB keys that
// must survive renames of the display text.
func CanonicalKey(name string) string {
	s := strings.TrimSpace(name)
	return strings.ToLower(strings.ReplaceAll(s, " ", "_"))
}

// BattleKey builds the dedupe key for an NPC challenge so concurrent
// submissions by the same player collapse into one resolution.
func BattleKey(playerUUID, npcKey string) string {
	return playerUUID + ":" + npcKey
}
