package models

import "time"

// Bet results
const (
	ResultWin     = "win"
	ResultLoss    = "loss"
	ResultVoid    = "void"
	ResultPending = "pending"
)

// Wager directions
const (
	DirectionOver  = "over"
	DirectionUnder = "under"
)

// ParlayLeg is one selection within a parlay bet
type ParlayLeg struct {
	PlayerName *string  `json:"player_name"`
	StatType   *string  `json:"stat_type"`
	OverUnder  *string  `json:"over_under"`
	Line       *float64 `json:"line"`
	Won        *bool    `json:"won"`
}

// JournalBet represents one tracked wager entry
type JournalBet struct {
	ID            string      `json:"id"`
	Result        string      `json:"result"`
	Stake         float64     `json:"stake"`
	Odds          float64     `json:"odds"`
	StatType      *string     `json:"stat_type"`
	OverUnder     *string     `json:"over_under"`
	PlayerName    *string     `json:"player_name"`
	SelectionText string      `json:"selection_text"`
	ActualValue   *float64    `json:"actual_value"`
	Line          *float64    `json:"line"`
	ParlayLegs    []ParlayLeg `json:"parlay_legs,omitempty"`
	PlacedAt      time.Time   `json:"placed_at"`
	SettledAt     *time.Time  `json:"settled_at"`
}

// IsSettled reports whether the bet has a final win/loss outcome
func (b *JournalBet) IsSettled() bool {
	return b.Result == ResultWin || b.Result == ResultLoss
}

// JournalFilters defines filters for journal bet queries
type JournalFilters struct {
	Result string
	Since  *time.Time
	Until  *time.Time
	Limit  int
	Offset int
}

// SettleRequest updates a pending bet with its outcome
type SettleRequest struct {
	Result      string   `json:"result"`
	ActualValue *float64 `json:"actual_value"`
}

// JournalSummary provides aggregate P&L statistics over settled bets
type JournalSummary struct {
	TotalBets     int     `json:"total_bets"`
	SettledBets   int     `json:"settled_bets"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRatePct    float64 `json:"win_rate_pct"`
	TotalWagered  float64 `json:"total_wagered"`
	TotalReturned float64 `json:"total_returned"`
	NetProfit     float64 `json:"net_profit"`
	ROIPct        float64 `json:"roi_pct"`
}
