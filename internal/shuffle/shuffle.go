// Package shuffle implements the deck permutation algorithms used at match
// setup and by the NPC battle simulator. All algorithms preserve the exact
// multiset of cards; only the order changes.
package shuffle

import (
	"math/rand"
	"sort"

	"github.com/csalcantaraBR/Liga-da-Quebrada-sub000/internal/game"
)

// Source yields pseudo-random values in [0,1). A Source replaces the
// default entropy so a permutation can be reproduced exactly.
type Source func() float64

// DefaultSource returns the process-wide math/rand entropy.
func DefaultSource() Source { return rand.Float64 }

// lcg constants: seed = (seed*9301 + 49297) mod 233280, normalized to [0,1).
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// SeededSource returns a deterministic Source driven by a simple linear
// congruential generator. Negative seeds are normalized by absolute value.
func SeededSource(seed int64) Source {
	if seed < 0 {
		seed = -seed
	}
	s := seed % lcgModulus
	return func() float64 {
		s = (s*lcgMultiplier + lcgIncrement) % lcgModulus
		return float64(s) / float64(lcgModulus)
	}
}

// balancedPowerCutoff splits the deck into the low (≤3) and high (>3)
// power tiers used by the balanced variant.
const balancedPowerCutoff = 3

// Shuffle is the primary algorithm: a random-swap pass from the last index
// down to the first, swapping each position with a uniformly chosen
// earlier-or-equal one. The input slice is not modified.
func Shuffle(deck []game.Card, src Source) []game.Card {
	if src == nil {
		src = DefaultSource()
	}
	out := append([]game.Card(nil), deck...)
	for i := len(out) - 1; i > 0; i-- {
		j := int(src() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffleForward is the mirrored variant: each position swaps with a
// uniformly chosen later-or-equal one.
func ShuffleForward(deck []game.Card, src Source) []game.Card {
	if src == nil {
		src = DefaultSource()
	}
	out := append([]game.Card(nil), deck...)
	for i := 0; i < len(out)-1; i++ {
		j := i + int(src()*float64(len(out)-i))
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffleBalanced partitions the deck into low and high power tiers,
// shuffles each tier independently (the high tier with a seed offset when
// seeded) and interleaves the results index-by-index, avoiding long runs
// of same-tier cards. A zero seed uses the default entropy for both tiers.
func ShuffleBalanced(deck []game.Card, seed int64) []game.Card {
	low := make([]game.Card, 0, len(deck))
	high := make([]game.Card, 0, len(deck))
	for _, c := range deck {
		if c.Power <= balancedPowerCutoff {
			low = append(low, c)
		} else {
			high = append(high, c)
		}
	}

	var lowSrc, highSrc Source
	if seed != 0 {
		lowSrc = SeededSource(seed)
		highSrc = SeededSource(seed + 1)
	}
	low = Shuffle(low, lowSrc)
	high = Shuffle(high, highSrc)

	out := make([]game.Card, 0, len(deck))
	for i := 0; i < len(low) || i < len(high); i++ {
		if i < len(low) {
			out = append(out, low[i])
		}
		if i < len(high) {
			out = append(out, high[i])
		}
	}
	return out
}

// Validate reports whether out is a permutation of in: same cardinality
// and the same sorted card identity list.
func Validate(in, out []game.Card) bool {
	if len(in) != len(out) {
		return false
	}
	a := sortedIDs(in)
	b := sortedIDs(out)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Entropy measures disorder as the fraction of pairwise inversions between
// the input and output orders, relative to the maximum possible for that
// length: 0 for an unchanged order, approaching 1 for maximal disorder.
// Differently sized lists yield 0 rather than an error.
func Entropy(in, out []game.Card) float64 {
	n := len(in)
	if n != len(out) || n < 2 {
		return 0
	}
	pos := make(map[string]int, n)
	for i, c := range out {
		pos[c.ID] = i
	}
	inversions := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pi, ok1 := pos[in[i].ID]
			pj, ok2 := pos[in[j].ID]
			if !ok1 || !ok2 {
				return 0
			}
			if pi > pj {
				inversions++
			}
		}
	}
	max := n * (n - 1) / 2
	return float64(inversions) / float64(max)
}

func sortedIDs(cards []game.Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	sort.Strings(ids)
	return ids
}
