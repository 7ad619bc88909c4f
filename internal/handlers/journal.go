package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Stattrackrr/stattrackr-sub003/internal/cache"
	"github.com/Stattrackrr/stattrackr-sub003/internal/db"
	"github.com/Stattrackrr/stattrackr-sub003/internal/hub"
	"github.com/Stattrackrr/stattrackr-sub003/pkg/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// defaultUserID stands in until auth middleware assigns real users
const defaultUserID = "default"

// JournalHandler handles journal bet requests
type JournalHandler struct {
	journalDB db.JournalDB
	insights  cache.Store
	hub       *hub.Hub
}

// NewJournalHandler creates a new journal handler
func NewJournalHandler(journalDB db.JournalDB, insights cache.Store, h *hub.Hub) *JournalHandler {
	return &JournalHandler{
		journalDB: journalDB,
		insights:  insights,
		hub:       h,
	}
}

// CreateBet records a new journal entry
func (h *JournalHandler) CreateBet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var bet models.JournalBet
	if err := json.NewDecoder(r.Body).Decode(&bet); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if bet.Stake <= 0 {
		respondError(w, http.StatusBadRequest, "stake must be positive", nil)
		return
	}
	if bet.Odds <= 1 {
		respondError(w, http.StatusBadRequest, "odds must be a decimal multiplier above 1", nil)
		return
	}

	bet.ID = uuid.NewString()
	if bet.Result == "" {
		bet.Result = models.ResultPending
	}
	if bet.PlacedAt.IsZero() {
		bet.PlacedAt = time.Now()
	}

	if err := h.journalDB.CreateBet(ctx, &bet); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create bet", err)
		return
	}

	h.afterWrite(ctx)
	respondJSON(w, http.StatusCreated, bet)
}

// GetBets retrieves journal bets with optional filters
func (h *JournalHandler) GetBets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filters := models.JournalFilters{
		Result: r.URL.Query().Get("result"),
		Limit:  parseIntParam(r, "limit", 100),
		Offset: parseIntParam(r, "offset", 0),
	}

	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		if t, err := time.Parse(time.RFC3339, sinceStr); err == nil {
			filters.Since = &t
		}
	}
	if untilStr := r.URL.Query().Get("until"); untilStr != "" {
		if t, err := time.Parse(time.RFC3339, untilStr); err == nil {
			filters.Until = &t
		}
	}

	if filters.Limit > 500 {
		filters.Limit = 500
	}

	bets, err := h.journalDB.GetBets(ctx, filters)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve bets", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"bets":   bets,
		"count":  len(bets),
		"limit":  filters.Limit,
		"offset": filters.Offset,
	})
}

// GetBet retrieves a single journal bet by ID
func (h *JournalHandler) GetBet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	betID := chi.URLParam(r, "id")
	if betID == "" {
		respondError(w, http.StatusBadRequest, "bet id is required", nil)
		return
	}

	bet, err := h.journalDB.GetBetByID(ctx, betID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve bet", err)
		return
	}

	if bet == nil {
		respondError(w, http.StatusNotFound, "bet not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, bet)
}

// SettleBet records the outcome of a pending bet
func (h *JournalHandler) SettleBet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	betID := chi.URLParam(r, "id")
	if betID == "" {
		respondError(w, http.StatusBadRequest, "bet id is required", nil)
		return
	}

	var settle models.SettleRequest
	if err := json.NewDecoder(r.Body).Decode(&settle); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	switch settle.Result {
	case models.ResultWin, models.ResultLoss, models.ResultVoid:
	default:
		respondError(w, http.StatusBadRequest, "result must be win, loss, or void", nil)
		return
	}

	if err := h.journalDB.SettleBet(ctx, betID, &settle); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "bet not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to settle bet", err)
		return
	}

	h.afterWrite(ctx)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":     betID,
		"result": settle.Result,
	})
}

// GetSummary retrieves aggregate P&L statistics
func (h *JournalHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	summary, err := h.journalDB.GetSummary(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to retrieve summary", err)
		return
	}

	respondJSON(w, http.StatusOK, summary)
}

// afterWrite drops the cached insight list and nudges connected clients
func (h *JournalHandler) afterWrite(ctx context.Context) {
	if h.insights != nil {
		// A failed invalidation ages out via TTL
		_ = h.insights.Invalidate(ctx, defaultUserID)
	}
	if h.hub != nil {
		h.hub.Broadcast(defaultUserID)
	}
}
