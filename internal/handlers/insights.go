package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Stattrackrr/stattrackr-sub003/internal/cache"
	"github.com/Stattrackrr/stattrackr-sub003/internal/db"
	"github.com/Stattrackrr/stattrackr-sub003/internal/engine"
	"github.com/Stattrackrr/stattrackr-sub003/pkg/models"
)

// minSettledForInsights mirrors the engine's gate so the response can
// tell the caller how many more settled bets are needed.
const minSettledForInsights = 10

// InsightHandler serves generated insight cards
type InsightHandler struct {
	journalDB db.JournalDB
	insights  cache.Store
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(journalDB db.JournalDB, insights cache.Store) *InsightHandler {
	return &InsightHandler{
		journalDB: journalDB,
		insights:  insights,
	}
}

// GetInsights generates (or serves from cache) the full insight list and
// applies the requested presentation filters.
// Query params: color (all|red|green|info|yellow|pain), bet_type (all|straight|parlay)
func (h *InsightHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	colorFilter := engine.ParseColorFilter(r.URL.Query().Get("color"))
	betTypeFilter := engine.ParseBetTypeFilter(r.URL.Query().Get("bet_type"))

	full, hit := h.cachedInsights(ctx)
	settledCount := -1
	if !hit {
		bets, err := h.journalDB.GetBets(ctx, models.JournalFilters{Limit: 500})
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to retrieve bets", err)
			return
		}

		settledCount = 0
		for _, bet := range bets {
			if bet.IsSettled() {
				settledCount++
			}
		}

		full = engine.GenerateInsights(bets)
		if h.insights != nil && len(full) > 0 {
			// Cache failures only cost a regeneration next time
			_ = h.insights.Set(ctx, defaultUserID, full)
		}
	}

	filtered := engine.ApplyFilters(full, colorFilter, betTypeFilter)

	response := map[string]interface{}{
		"insights": filtered,
		"count":    len(filtered),
		"color":    colorFilter,
		"bet_type": betTypeFilter,
	}
	if len(full) == 0 && settledCount >= 0 && settledCount < minSettledForInsights {
		response["settled_bets"] = settledCount
		response["settled_bets_needed"] = minSettledForInsights
	}

	respondJSON(w, http.StatusOK, response)
}

func (h *InsightHandler) cachedInsights(ctx context.Context) ([]models.Insight, bool) {
	if h.insights == nil {
		return nil, false
	}
	list, ok := h.insights.Get(ctx, defaultUserID)
	if !ok || len(list) == 0 {
		// An empty list is never cached; regenerating it is a single
		// pass over the journal and the gated response needs the
		// settled count anyway.
		return nil, false
	}
	return list, true
}
