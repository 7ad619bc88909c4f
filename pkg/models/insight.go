package models

// Insight types
const (
	InsightTypeWin        = "win"
	InsightTypeLoss       = "loss"
	InsightTypeNeutral    = "neutral"
	InsightTypeComparison = "comparison"
	InsightTypePain       = "pain"
)

// Insight categories
const (
	CategoryStat      = "stat"
	CategoryPlayer    = "player"
	CategoryParlay    = "parlay"
	CategoryOverUnder = "over_under"
	CategoryBetType   = "bet_type"
)

// Insight colors
const (
	ColorRed    = "red"
	ColorGreen  = "green"
	ColorBlue   = "blue"
	ColorYellow = "yellow"
	ColorOrange = "orange"
)

// InsightStats carries the aggregate numbers behind an insight card
type InsightStats struct {
	Wins     int     `json:"wins,omitempty"`
	Losses   int     `json:"losses,omitempty"`
	Total    int     `json:"total,omitempty"`
	WinRate  int     `json:"win_rate,omitempty"`
	Profit   float64 `json:"profit,omitempty"`
	Wagered  float64 `json:"wagered,omitempty"`
	Returned float64 `json:"returned,omitempty"`
	ROI      int     `json:"roi,omitempty"`
}

// Insight is one generated observation card about betting patterns.
// The ID is a deterministic function of the dimension and key it was
// derived from; it drives template selection and must be unique within
// a single generation run.
type Insight struct {
	ID              string        `json:"id"`
	Type            string        `json:"type"`
	Category        string        `json:"category"`
	Message         string        `json:"message"`
	Priority        float64       `json:"priority"`
	Color           string        `json:"color"`
	Stats           *InsightStats `json:"stats,omitempty"`
	RelatedBets     []JournalBet  `json:"related_bets,omitempty"`
	Recommendation  string        `json:"recommendation,omitempty"`
	PotentialProfit *float64      `json:"potential_profit,omitempty"`
}

// ErrorResponse is the standard error payload
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
