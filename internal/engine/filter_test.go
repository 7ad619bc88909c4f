package engine

import (
	"testing"

	"github.com/Stattrackrr/stattrackr-sub003/pkg/models"
)

func filterFixture() []models.Insight {
	return []models.Insight{
		{ID: "red-low", Type: models.InsightTypeLoss, Category: models.CategoryStat, Color: models.ColorRed, Priority: 5},
		{ID: "green-high", Type: models.InsightTypeWin, Category: models.CategoryStat, Color: models.ColorGreen, Priority: 50},
		{ID: "blue-neutral", Type: models.InsightTypeNeutral, Category: models.CategoryStat, Color: models.ColorBlue, Priority: 10},
		{ID: "blue-comparison", Type: models.InsightTypeComparison, Category: models.CategoryBetType, Color: models.ColorBlue, Priority: 40},
		{ID: "red-high", Type: models.InsightTypeLoss, Category: models.CategoryParlay, Color: models.ColorRed, Priority: 60},
		{ID: "pain-parlay", Type: models.InsightTypePain, Category: models.CategoryParlay, Color: models.ColorOrange, Priority: 100},
		{ID: "pain-player", Type: models.InsightTypePain, Category: models.CategoryPlayer, Color: models.ColorOrange, Priority: 40},
	}
}

func TestApplyFiltersAllExcludesPain(t *testing.T) {
	got := ApplyFilters(filterFixture(), ColorFilterAll, BetTypeFilterAll)
	if len(got) != 5 {
		t.Fatalf("got %d insights, want 5", len(got))
	}
	for _, in := range got {
		if in.Type == models.InsightTypePain {
			t.Errorf("pain insight %q leaked into the all view", in.ID)
		}
	}
}

func TestApplyFiltersPainKeepsDetectorOrder(t *testing.T) {
	// The pain view ignores the bet-type filter: pain cards mix
	// parlay and straight categories.
	for _, betType := range []BetTypeFilter{BetTypeFilterAll, BetTypeFilterStraight, BetTypeFilterParlay} {
		got := ApplyFilters(filterFixture(), ColorFilterPain, betType)
		if len(got) != 2 {
			t.Fatalf("bet_type=%s: got %d pain insights, want 2", betType, len(got))
		}
		if got[0].ID != "pain-parlay" || got[1].ID != "pain-player" {
			t.Errorf("bet_type=%s: pain order = [%s, %s], want detector order", betType, got[0].ID, got[1].ID)
		}
	}
}

func TestApplyFiltersSpecificColorSortsByPriority(t *testing.T) {
	got := ApplyFilters(filterFixture(), ColorFilterRed, BetTypeFilterAll)
	if len(got) != 2 {
		t.Fatalf("got %d red insights, want 2", len(got))
	}
	if got[0].ID != "red-high" || got[1].ID != "red-low" {
		t.Errorf("red order = [%s, %s], want priority descending", got[0].ID, got[1].ID)
	}
}

func TestApplyFiltersInfoMatchesBlueNeutralAndComparison(t *testing.T) {
	got := ApplyFilters(filterFixture(), ColorFilterInfo, BetTypeFilterAll)
	if len(got) != 2 {
		t.Fatalf("got %d info insights, want 2", len(got))
	}
	for _, in := range got {
		if in.Color != models.ColorBlue {
			t.Errorf("info view returned non-blue insight %q", in.ID)
		}
	}
}

func TestApplyFiltersBetType(t *testing.T) {
	parlayOnly := ApplyFilters(filterFixture(), ColorFilterAll, BetTypeFilterParlay)
	for _, in := range parlayOnly {
		if in.Category != models.CategoryParlay {
			t.Errorf("parlay filter returned %q with category %s", in.ID, in.Category)
		}
	}
	if len(parlayOnly) != 1 {
		t.Errorf("got %d parlay insights, want 1", len(parlayOnly))
	}

	straightOnly := ApplyFilters(filterFixture(), ColorFilterAll, BetTypeFilterStraight)
	for _, in := range straightOnly {
		if in.Category == models.CategoryParlay {
			t.Errorf("straight filter returned parlay insight %q", in.ID)
		}
	}
	if len(straightOnly) != 4 {
		t.Errorf("got %d straight insights, want 4", len(straightOnly))
	}
}

func TestApplyFiltersAllViewIsDeterministic(t *testing.T) {
	first := ApplyFilters(filterFixture(), ColorFilterAll, BetTypeFilterAll)
	second := ApplyFilters(filterFixture(), ColorFilterAll, BetTypeFilterAll)

	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("all view not deterministic at index %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestParseFilters(t *testing.T) {
	if ParseColorFilter("bogus") != ColorFilterAll {
		t.Error("unknown color should default to all")
	}
	if ParseColorFilter("pain") != ColorFilterPain {
		t.Error("pain should parse")
	}
	if ParseBetTypeFilter("") != BetTypeFilterAll {
		t.Error("empty bet type should default to all")
	}
	if ParseBetTypeFilter("parlay") != BetTypeFilterParlay {
		t.Error("parlay should parse")
	}
}
