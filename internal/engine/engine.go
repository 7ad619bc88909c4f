// Package engine generates betting-pattern insight cards from a user's
// journal of historical wagers. It is a pure function of its input: every
// "random" choice (template wording, card shuffling) is derived from the
// data itself, so two runs over the same journal render byte-identical
// output.
package engine

import "github.com/Stattrackrr/stattrackr-sub003/pkg/models"

// GenerateInsights turns a flat list of journal bets into the ordered,
// color-balanced insight list. Fewer than ten settled bets yields an
// empty list; the caller shows a progress message instead. Pain-point
// insights ride at the tail of the returned slice in detector order and
// only surface under the pain filter.
func GenerateInsights(bets []models.JournalBet) []models.Insight {
	settled := make([]models.JournalBet, 0, len(bets))
	for _, bet := range bets {
		if bet.IsSettled() {
			settled = append(settled, bet)
		}
	}
	if len(settled) < minSettledBets {
		return []models.Insight{}
	}

	gb := buildGroups(settled)

	// Dimension order matters: stat×direction insights must land before
	// the stat-only pass so aggregate suppression sees them.
	r := newRuleRun()
	r.statDirectionRules(gb)
	r.statRules(gb)
	r.playerRules(gb)
	r.directionRules(gb)
	r.oddsBucketRules(gb)
	r.comparisonRule(gb)
	r.parlayRules(gb)
	r.legRules(gb)
	r.overallRule(settled)

	out := arrangeInsights(r.insights)
	return append(out, detectPainPoints(gb)...)
}
