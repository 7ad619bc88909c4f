package handlers_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Stattrackrr/stattrackr-sub003/internal/handlers"
	"github.com/Stattrackrr/stattrackr-sub003/pkg/models"
)

// MockDB implements db.JournalDB for testing
type MockDB struct {
	bets        []models.JournalBet
	created     []*models.JournalBet
	shouldError bool
}

func (m *MockDB) Ping(ctx context.Context) error {
	if m.shouldError {
		return context.DeadlineExceeded
	}
	return nil
}

func (m *MockDB) CreateBet(ctx context.Context, bet *models.JournalBet) error {
	if m.shouldError {
		return context.DeadlineExceeded
	}
	m.created = append(m.created, bet)
	return nil
}

func (m *MockDB) GetBets(ctx context.Context, filters models.JournalFilters) ([]models.JournalBet, error) {
	if m.shouldError {
		return nil, context.DeadlineExceeded
	}
	return m.bets, nil
}

func (m *MockDB) GetBetByID(ctx context.Context, id string) (*models.JournalBet, error) {
	if m.shouldError {
		return nil, context.DeadlineExceeded
	}
	for i := range m.bets {
		if m.bets[i].ID == id {
			return &m.bets[i], nil
		}
	}
	return nil, nil
}

func (m *MockDB) SettleBet(ctx context.Context, id string, settle *models.SettleRequest) error {
	if m.shouldError {
		return context.DeadlineExceeded
	}
	for i := range m.bets {
		if m.bets[i].ID == id {
			m.bets[i].Result = settle.Result
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *MockDB) GetSummary(ctx context.Context) (*models.JournalSummary, error) {
	if m.shouldError {
		return nil, context.DeadlineExceeded
	}
	return &models.JournalSummary{TotalBets: len(m.bets)}, nil
}

func (m *MockDB) Close() error {
	return nil
}

// fakeCache implements cache.Store in memory
type fakeCache struct {
	stored   map[string][]models.Insight
	setCalls int
}

func (f *fakeCache) Get(ctx context.Context, userID string) ([]models.Insight, bool) {
	list, ok := f.stored[userID]
	return list, ok
}

func (f *fakeCache) Set(ctx context.Context, userID string, insights []models.Insight) error {
	f.setCalls++
	if f.stored == nil {
		f.stored = make(map[string][]models.Insight)
	}
	f.stored[userID] = insights
	return nil
}

func (f *fakeCache) Invalidate(ctx context.Context, userID string) error {
	delete(f.stored, userID)
	return nil
}

func strPtr(s string) *string { return &s }

func settledBets(n, wins int) []models.JournalBet {
	bets := make([]models.JournalBet, n)
	for i := range bets {
		result := models.ResultLoss
		if i < wins {
			result = models.ResultWin
		}
		bets[i] = models.JournalBet{
			ID:        string(rune('a' + i)),
			Result:    result,
			Stake:     10,
			Odds:      1.91,
			StatType:  strPtr("pts"),
			OverUnder: strPtr("over"),
		}
	}
	return bets
}

type insightsResponse struct {
	Insights          []models.Insight `json:"insights"`
	Count             int              `json:"count"`
	SettledBets       *int             `json:"settled_bets"`
	SettledBetsNeeded *int             `json:"settled_bets_needed"`
}

func TestGetInsightsInsufficientData(t *testing.T) {
	mock := &MockDB{bets: settledBets(5, 3)}
	h := handlers.NewInsightHandler(mock, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/journal/insights", nil)
	rec := httptest.NewRecorder()
	h.GetInsights(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp insightsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 0 || len(resp.Insights) != 0 {
		t.Errorf("expected no insights, got %d", resp.Count)
	}
	if resp.SettledBets == nil || *resp.SettledBets != 5 {
		t.Error("expected settled_bets = 5 in response")
	}
	if resp.SettledBetsNeeded == nil || *resp.SettledBetsNeeded != 10 {
		t.Error("expected settled_bets_needed = 10 in response")
	}
}

func TestGetInsightsEmptyListIsNeverCached(t *testing.T) {
	// A stale empty entry must not mask the progress hint, and an empty
	// generation run must not write one.
	mock := &MockDB{bets: settledBets(5, 3)}
	fake := &fakeCache{stored: map[string][]models.Insight{"default": {}}}
	h := handlers.NewInsightHandler(mock, fake)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/journal/insights", nil)
	rec := httptest.NewRecorder()
	h.GetInsights(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp insightsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SettledBets == nil || *resp.SettledBets != 5 {
		t.Error("expected settled_bets = 5 despite the cached empty list")
	}
	if resp.SettledBetsNeeded == nil || *resp.SettledBetsNeeded != 10 {
		t.Error("expected settled_bets_needed = 10 despite the cached empty list")
	}
	if fake.setCalls != 0 {
		t.Errorf("empty insight list was cached (%d set calls)", fake.setCalls)
	}
}

func TestGetInsightsServedFromCache(t *testing.T) {
	cached := []models.Insight{{ID: "stat_direction:pts|over:win", Type: models.InsightTypeWin, Category: models.CategoryStat, Color: models.ColorGreen, Priority: 10}}
	mock := &MockDB{shouldError: true}
	fake := &fakeCache{stored: map[string][]models.Insight{"default": cached}}
	h := handlers.NewInsightHandler(mock, fake)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/journal/insights", nil)
	rec := httptest.NewRecorder()
	h.GetInsights(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (store must not be consulted on a hit)", rec.Code)
	}

	var resp insightsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 1 || resp.Insights[0].ID != cached[0].ID {
		t.Errorf("expected the cached list, got %d insights", resp.Count)
	}
}

func TestGetInsightsGeneratesFromJournal(t *testing.T) {
	mock := &MockDB{bets: settledBets(12, 8)}
	h := handlers.NewInsightHandler(mock, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/journal/insights", nil)
	rec := httptest.NewRecorder()
	h.GetInsights(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp insightsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count == 0 {
		t.Fatal("expected insights from a 12-bet journal")
	}
}

func TestGetInsightsColorFilter(t *testing.T) {
	mock := &MockDB{bets: settledBets(12, 8)}
	h := handlers.NewInsightHandler(mock, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/journal/insights?color=green", nil)
	rec := httptest.NewRecorder()
	h.GetInsights(rec, req)

	var resp insightsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count == 0 {
		t.Fatal("expected green insights from a winning journal")
	}
	for _, in := range resp.Insights {
		if in.Color != models.ColorGreen {
			t.Errorf("green filter returned %q with color %s", in.ID, in.Color)
		}
	}
}

func TestGetInsightsStoreError(t *testing.T) {
	mock := &MockDB{shouldError: true}
	h := handlers.NewInsightHandler(mock, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/journal/insights", nil)
	rec := httptest.NewRecorder()
	h.GetInsights(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
