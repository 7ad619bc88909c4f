package engine

import (
	"sort"

	"github.com/Stattrackrr/stattrackr-sub003/pkg/models"
)

// maxInsights caps the non-pain portion of the generated list.
const maxInsights = 15

// Presentation buckets. Yellow is reserved; no current rule emits it.
const (
	bucketRed    = "red"
	bucketInfo   = "info"
	bucketGreen  = "green"
	bucketYellow = "yellow"
)

var bucketOrder = []string{bucketRed, bucketInfo, bucketGreen, bucketYellow}

// lcg is the deterministic generator behind every "random" choice in the
// engine. The constants are fixed; seeding comes from the candidate ids,
// so identical input always shuffles identically.
type lcg struct {
	seed int64
}

func newLCG(seed int64) *lcg {
	return &lcg{seed: seed}
}

func (g *lcg) next() int64 {
	g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
	return g.seed
}

// intn returns a value in [0,n). n must be positive.
func (g *lcg) intn(n int) int {
	return int(g.next() % int64(n))
}

// interleaveSeed folds every candidate id through the template hash
// recurrence, continuing the running hash across ids.
func interleaveSeed(list []models.Insight) int64 {
	var h int32
	for _, in := range list {
		for _, r := range in.ID {
			h = (h << 5) - h + int32(r)
		}
	}
	s := int64(h)
	if s < 0 {
		s = -s
	}
	return s
}

func bucketFor(in models.Insight) string {
	switch in.Color {
	case models.ColorRed:
		return bucketRed
	case models.ColorGreen:
		return bucketGreen
	case models.ColorYellow:
		return bucketYellow
	default:
		// Blue neutral and comparison insights present as "info".
		return bucketInfo
	}
}

// arrangeInsights turns the raw candidate pool into the presented order:
// priority sort, color-bucket partition, seeded round-robin draw capped
// at maxInsights, then a greedy pass that avoids adjacent same-color
// cards when an alternative remains.
//
// The cap never starves a color: each round drains one card from every
// non-empty bucket, so a bucket's two highest-priority cards are always
// drawn within the first two rounds (at most 8 of the 15 slots).
func arrangeInsights(candidates []models.Insight) []models.Insight {
	if len(candidates) == 0 {
		return []models.Insight{}
	}

	sorted := append([]models.Insight(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	queues := make(map[string][]models.Insight)
	for _, in := range sorted {
		b := bucketFor(in)
		queues[b] = append(queues[b], in)
	}

	g := newLCG(interleaveSeed(sorted))

	order := append([]string(nil), bucketOrder...)
	shuffleStrings(order, g)

	picked := roundRobin(queues, order, g, maxInsights)
	return spreadColors(picked, g)
}

// shuffleStrings is a Fisher-Yates shuffle driven by the engine LCG.
func shuffleStrings(ss []string, g *lcg) {
	for i := len(ss) - 1; i > 0; i-- {
		j := g.intn(i + 1)
		ss[i], ss[j] = ss[j], ss[i]
	}
}

// roundRobin draws one insight per non-exhausted bucket per round,
// re-shuffling the bucket-check order each round. A limit of zero means
// no cap. The queues map is consumed.
func roundRobin(queues map[string][]models.Insight, order []string, g *lcg, limit int) []models.Insight {
	out := []models.Insight{}
	for {
		round := append([]string(nil), order...)
		shuffleStrings(round, g)

		took := false
		for _, b := range round {
			if limit > 0 && len(out) >= limit {
				return out
			}
			if len(queues[b]) == 0 {
				continue
			}
			out = append(out, queues[b][0])
			queues[b] = queues[b][1:]
			took = true
		}
		if !took {
			return out
		}
	}
}

// spreadColors greedily rebuilds the sequence so consecutive cards differ
// in color whenever some remaining candidate allows it; ties are broken
// by the LCG.
func spreadColors(list []models.Insight, g *lcg) []models.Insight {
	out := make([]models.Insight, 0, len(list))
	remaining := append([]models.Insight(nil), list...)
	last := ""

	for len(remaining) > 0 {
		eligible := make([]int, 0, len(remaining))
		for i, in := range remaining {
			if in.Color != last {
				eligible = append(eligible, i)
			}
		}
		if len(eligible) == 0 {
			for i := range remaining {
				eligible = append(eligible, i)
			}
		}
		pick := eligible[g.intn(len(eligible))]
		chosen := remaining[pick]
		out = append(out, chosen)
		remaining = append(remaining[:pick], remaining[pick+1:]...)
		last = chosen.Color
	}
	return out
}
