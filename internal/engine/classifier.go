package engine

import (
	"regexp"
	"strings"

	"github.com/Stattrackrr/stattrackr-sub003/pkg/models"
)

// parlayMarker prefixes the selection text of parlay entries recorded
// before structured legs were stored.
const parlayMarker = "Parlay"

var playerNamePattern = regexp.MustCompile(`(?i)^(.+?)\s+(?:over|under)\b`)

// IsParlay reports whether a journal bet is a parlay: either it carries
// structured legs or its selection text uses the legacy parlay prefix.
func IsParlay(bet models.JournalBet) bool {
	if len(bet.ParlayLegs) > 0 {
		return true
	}
	return strings.HasPrefix(bet.SelectionText, parlayMarker)
}

// ExtractPlayerName returns the canonical player name for a straight bet.
// It prefers the structured field and falls back to parsing the leading
// words of the selection text up to the first "over"/"under". Selection
// text that doesn't follow the "<player> over/under <line>" shape yields
// no name; callers must tolerate the miss.
func ExtractPlayerName(bet models.JournalBet) (string, bool) {
	if bet.PlayerName != nil && *bet.PlayerName != "" {
		return *bet.PlayerName, true
	}
	if IsParlay(bet) {
		return "", false
	}
	m := playerNamePattern.FindStringSubmatch(bet.SelectionText)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return "", false
	}
	return name, true
}

// BetProfit returns the realized profit of a settled bet: stake*(odds-1)
// on a win, -stake on a loss, zero otherwise.
func BetProfit(bet models.JournalBet) float64 {
	switch bet.Result {
	case models.ResultWin:
		return bet.Stake * (bet.Odds - 1)
	case models.ResultLoss:
		return -bet.Stake
	default:
		return 0
	}
}

// betReturn is the amount returned to the bettor: full payout on a win,
// nothing on a loss.
func betReturn(bet models.JournalBet) float64 {
	if bet.Result == models.ResultWin {
		return bet.Stake * bet.Odds
	}
	return 0
}
