package engine

import (
	"sort"

	"github.com/Stattrackrr/stattrackr-sub003/pkg/models"
)

// ColorFilter selects insights by presentation color
type ColorFilter string

// Color filter values
const (
	ColorFilterAll    ColorFilter = "all"
	ColorFilterRed    ColorFilter = "red"
	ColorFilterGreen  ColorFilter = "green"
	ColorFilterInfo   ColorFilter = "info"
	ColorFilterYellow ColorFilter = "yellow"
	ColorFilterPain   ColorFilter = "pain"
)

// BetTypeFilter selects insights by bet structure
type BetTypeFilter string

// Bet type filter values
const (
	BetTypeFilterAll      BetTypeFilter = "all"
	BetTypeFilterStraight BetTypeFilter = "straight"
	BetTypeFilterParlay   BetTypeFilter = "parlay"
)

// ParseColorFilter maps a query value onto a ColorFilter, defaulting to all.
func ParseColorFilter(s string) ColorFilter {
	switch ColorFilter(s) {
	case ColorFilterRed, ColorFilterGreen, ColorFilterInfo, ColorFilterYellow, ColorFilterPain:
		return ColorFilter(s)
	default:
		return ColorFilterAll
	}
}

// ParseBetTypeFilter maps a query value onto a BetTypeFilter, defaulting to all.
func ParseBetTypeFilter(s string) BetTypeFilter {
	switch BetTypeFilter(s) {
	case BetTypeFilterStraight, BetTypeFilterParlay:
		return BetTypeFilter(s)
	default:
		return BetTypeFilterAll
	}
}

// ApplyFilters narrows a generated insight list for presentation. The
// filters never affect generation: the engine always runs over the full
// candidate set, and this view is recomputed per render.
//
// The pain filter returns the pain set alone, in detector order; pain
// cards mix parlay and straight categories, so the bet-type filter does
// not apply to them. Every other color filter excludes pain.
func ApplyFilters(list []models.Insight, color ColorFilter, betType BetTypeFilter) []models.Insight {
	if color == ColorFilterPain {
		pain := []models.Insight{}
		for _, in := range list {
			if in.Type == models.InsightTypePain {
				pain = append(pain, in)
			}
		}
		return pain
	}

	filtered := []models.Insight{}
	for _, in := range list {
		if in.Type == models.InsightTypePain {
			continue
		}
		if !matchColor(in, color) || !matchBetType(in, betType) {
			continue
		}
		filtered = append(filtered, in)
	}

	if color == ColorFilterAll {
		return reinterleave(filtered)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Priority > filtered[j].Priority
	})
	return filtered
}

func matchColor(in models.Insight, color ColorFilter) bool {
	switch color {
	case ColorFilterAll:
		return true
	case ColorFilterRed:
		return in.Color == models.ColorRed
	case ColorFilterGreen:
		return in.Color == models.ColorGreen
	case ColorFilterYellow:
		return in.Color == models.ColorYellow
	case ColorFilterInfo:
		return in.Color == models.ColorBlue &&
			(in.Type == models.InsightTypeNeutral || in.Type == models.InsightTypeComparison)
	default:
		return false
	}
}

func matchBetType(in models.Insight, betType BetTypeFilter) bool {
	switch betType {
	case BetTypeFilterParlay:
		return in.Category == models.CategoryParlay
	case BetTypeFilterStraight:
		return in.Category != models.CategoryParlay
	default:
		return true
	}
}

// reinterleave re-runs the color round-robin over an already-filtered
// subset so the "all" view stays balanced after filtering.
func reinterleave(list []models.Insight) []models.Insight {
	if len(list) == 0 {
		return []models.Insight{}
	}

	queues := make(map[string][]models.Insight)
	for _, in := range list {
		b := bucketFor(in)
		queues[b] = append(queues[b], in)
	}

	g := newLCG(interleaveSeed(list))
	order := append([]string(nil), bucketOrder...)
	shuffleStrings(order, g)

	return roundRobin(queues, order, g, 0)
}
