package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent requests. Using a centralized singleflight.Group ensures
// that only one job runs for a given key while other callers wait for the
// result.

import "golang.org/x/sync/singleflight"

// BattleGroup deduplicates NPC challenge requests keyed by
// "<player_uuid>:<npc_key>" so a double-submitted challenge resolves a
// single battle and credits the reward once.
var BattleGroup singleflight.Group
