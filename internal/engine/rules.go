package engine

import (
	"math"
	"strings"

	"github.com/Stattrackrr/stattrackr-sub003/pkg/models"
)

// Minimum sample sizes and thresholds for the insight rules.
const (
	minSettledBets = 10

	statDirMinTotal     = 3
	statFinancialMin    = 5
	statFinancialStake  = 50.0
	playerNeutralMin    = 5
	playerWinMin        = 4
	playerLossMin       = 3
	directionMinTotal   = 4
	oddsBucketMinTotal  = 4
	parlayMinTotal      = 3
	legMinTotal         = 3
	legNeutralMin       = 4
	comparisonStraights = 5
	comparisonParlays   = 3
	overallMinSettled   = 15
	overallMinWagered   = 100.0
)

// ruleRun collects insight candidates across all dimensions for one
// engine invocation. emitted tracks dimension keys that already produced
// an insight in a given rule category; statHasChild suppresses stat-level
// aggregates whose stat×direction children already spoke.
type ruleRun struct {
	insights     []models.Insight
	emitted      map[string]bool
	statHasChild map[string]bool
}

func newRuleRun() *ruleRun {
	return &ruleRun{
		emitted:      make(map[string]bool),
		statHasChild: make(map[string]bool),
	}
}

func (r *ruleRun) emit(in models.Insight) {
	if r.emitted[in.ID] {
		return
	}
	r.emitted[in.ID] = true
	r.insights = append(r.insights, in)
}

// statDirectionRules evaluates each (stat, direction) group. The neutral
// check runs first; a neutral hit suppresses win/loss for the same key.
func (r *ruleRun) statDirectionRules(gb *groupedBets) {
	gb.statDirection.each(func(key string, g *group) {
		if g.total() < statDirMinTotal {
			return
		}
		stat, direction, _ := strings.Cut(key, "|")
		label := stat + " " + direction
		rate := g.winRate()

		if rate >= 45 && rate <= 55 && math.Abs(g.profit()) < 0.10*g.wagered {
			id := "stat_direction:" + key + ":neutral"
			r.statHasChild[stat] = true
			r.emit(models.Insight{
				ID:       id,
				Type:     models.InsightTypeNeutral,
				Category: models.CategoryStat,
				Message:  statDirectionNeutralTemplates[templateIndex(id, len(statDirectionNeutralTemplates))](label, rate, g.total()),
				Priority: float64(g.total() * 4),
				Color:    models.ColorBlue,
				Stats:    g.stats(),
			})
			return
		}

		if rate >= 60 {
			id := "stat_direction:" + key + ":win"
			r.statHasChild[stat] = true
			r.emit(models.Insight{
				ID:             id,
				Type:           models.InsightTypeWin,
				Category:       models.CategoryStat,
				Message:        statDirectionWinTemplates[templateIndex(id, len(statDirectionWinTemplates))](label, rate, g.wins, g.losses),
				Priority:       float64(rate*10 + g.total()*5),
				Color:          models.ColorGreen,
				Stats:          g.stats(),
				RelatedBets:    g.bets,
				Recommendation: "This angle is working. Keep it in your rotation.",
			})
			return
		}

		if rate < 45 && g.losses >= 2 {
			id := "stat_direction:" + key + ":loss"
			r.statHasChild[stat] = true
			r.emit(models.Insight{
				ID:             id,
				Type:           models.InsightTypeLoss,
				Category:       models.CategoryStat,
				Message:        statDirectionLossTemplates[templateIndex(id, len(statDirectionLossTemplates))](label, rate, g.wins, g.losses),
				Priority:       float64(g.losses*15 + g.total()*5),
				Color:          models.ColorRed,
				Stats:          g.stats(),
				RelatedBets:    g.bets,
				Recommendation: "Consider cutting back on this market.",
			})
		}
	})
}

// statRules evaluates per-stat financial aggregates. A stat whose
// stat×direction child already produced an insight is skipped entirely
// to avoid overlapping messages.
func (r *ruleRun) statRules(gb *groupedBets) {
	gb.statOnly.each(func(stat string, g *group) {
		if r.statHasChild[stat] {
			return
		}
		if g.total() < statFinancialMin || g.wagered < statFinancialStake {
			return
		}
		rate := g.winRate()
		profit := g.profit()
		neutralEmitted := false

		if rate >= 45 && rate <= 55 && math.Abs(profit) < 0.15*g.wagered {
			id := "stat:" + stat + ":neutral"
			neutralEmitted = true
			r.emit(models.Insight{
				ID:       id,
				Type:     models.InsightTypeNeutral,
				Category: models.CategoryStat,
				Message:  statNeutralTemplates[templateIndex(id, len(statNeutralTemplates))](stat, rate, g.total()),
				Priority: float64(g.total() * 4),
				Color:    models.ColorBlue,
				Stats:    g.stats(),
			})
		}

		if !neutralEmitted && profit >= 20 && g.roi() > 10 {
			id := "stat:" + stat + ":financial_win"
			r.emit(models.Insight{
				ID:             id,
				Type:           models.InsightTypeWin,
				Category:       models.CategoryStat,
				Message:        statFinancialWinTemplates[templateIndex(id, len(statFinancialWinTemplates))](stat, profit, g.roi()),
				Priority:       math.Abs(profit)*3 + float64(g.total()*3),
				Color:          models.ColorGreen,
				Stats:          g.stats(),
				RelatedBets:    g.bets,
				Recommendation: "Profitable market, worth the continued volume.",
			})
		}

		if !neutralEmitted && profit < 0 && math.Abs(profit) >= 10 {
			id := "stat:" + stat + ":financial_loss"
			r.emit(models.Insight{
				ID:             id,
				Type:           models.InsightTypeLoss,
				Category:       models.CategoryStat,
				Message:        statFinancialLossTemplates[templateIndex(id, len(statFinancialLossTemplates))](stat, profit, g.total()),
				Priority:       math.Abs(profit)*3 + float64(g.total()*3) + float64(g.losses*5),
				Color:          models.ColorRed,
				Stats:          g.stats(),
				RelatedBets:    g.bets,
				Recommendation: "This market is costing you money.",
			})
		}

		// Loss-count rule, independent of the financial one.
		lossRate := 0
		if g.total() > 0 {
			lossRate = int(math.Round(100 * float64(g.losses) / float64(g.total())))
		}
		if !neutralEmitted && g.losses >= 4 && g.total() >= 6 && lossRate >= 40 {
			id := "stat:" + stat + ":losses"
			r.emit(models.Insight{
				ID:          id,
				Type:        models.InsightTypeLoss,
				Category:    models.CategoryStat,
				Message:     statLossCountTemplates[templateIndex(id, len(statLossCountTemplates))](stat, g.losses, g.total()),
				Priority:    float64(g.losses*15 + g.total()*5),
				Color:       models.ColorRed,
				Stats:       g.stats(),
				RelatedBets: g.bets,
			})
		}
	})
}

// playerRules evaluates per-player performance on straight bets.
func (r *ruleRun) playerRules(gb *groupedBets) {
	gb.player.each(func(name string, g *group) {
		rate := g.winRate()

		if g.total() >= playerNeutralMin && rate >= 45 && rate <= 55 && math.Abs(g.profit()) < 0.12*g.wagered {
			id := "player:" + name + ":neutral"
			r.emit(models.Insight{
				ID:       id,
				Type:     models.InsightTypeNeutral,
				Category: models.CategoryPlayer,
				Message:  playerNeutralTemplates[templateIndex(id, len(playerNeutralTemplates))](name, rate, g.total()),
				Priority: float64(g.total() * 4),
				Color:    models.ColorBlue,
				Stats:    g.stats(),
			})
			return
		}

		if g.total() >= playerWinMin && rate >= 60 && g.wins >= 3 {
			id := "player:" + name + ":win"
			r.emit(models.Insight{
				ID:             id,
				Type:           models.InsightTypeWin,
				Category:       models.CategoryPlayer,
				Message:        playerWinTemplates[templateIndex(id, len(playerWinTemplates))](name, rate, g.wins, g.losses),
				Priority:       float64(rate*10 + g.total()*5),
				Color:          models.ColorGreen,
				Stats:          g.stats(),
				RelatedBets:    g.bets,
				Recommendation: "You read this player well.",
			})
			return
		}

		lossRate := 100 - rate
		if g.total() >= playerLossMin && g.losses >= 2 && lossRate >= 40 {
			id := "player:" + name + ":loss"
			r.emit(models.Insight{
				ID:             id,
				Type:           models.InsightTypeLoss,
				Category:       models.CategoryPlayer,
				Message:        playerLossTemplates[templateIndex(id, len(playerLossTemplates))](name, g.losses, g.total()),
				Priority:       float64(g.losses*15 + g.total()*5),
				Color:          models.ColorRed,
				Stats:          g.stats(),
				RelatedBets:    g.bets,
				Recommendation: "Think twice before betting this player again.",
			})
		}
	})
}

// directionRules evaluates the over and under aggregates.
func (r *ruleRun) directionRules(gb *groupedBets) {
	gb.direction.each(func(direction string, g *group) {
		if g.total() < directionMinTotal {
			return
		}
		rate := g.winRate()

		if rate >= 60 && g.wins > g.losses {
			id := "direction:" + direction + ":win"
			r.emit(models.Insight{
				ID:       id,
				Type:     models.InsightTypeWin,
				Category: models.CategoryOverUnder,
				Message:  directionWinTemplates[templateIndex(id, len(directionWinTemplates))](direction, rate, g.wins, g.losses),
				Priority: float64(rate*10 + g.total()*5),
				Color:    models.ColorGreen,
				Stats:    g.stats(),
			})
			return
		}

		if rate < 50 && g.losses > g.wins {
			id := "direction:" + direction + ":loss"
			r.emit(models.Insight{
				ID:       id,
				Type:     models.InsightTypeLoss,
				Category: models.CategoryOverUnder,
				Message:  directionLossTemplates[templateIndex(id, len(directionLossTemplates))](direction, rate, g.wins, g.losses),
				Priority: float64(g.losses*15 + g.total()*5),
				Color:    models.ColorRed,
				Stats:    g.stats(),
			})
		}
	})
}

// oddsBucketRules evaluates the five fixed decimal-odds ranges.
func (r *ruleRun) oddsBucketRules(gb *groupedBets) {
	gb.oddsBucket.each(func(rangeLabel string, g *group) {
		if g.total() < oddsBucketMinTotal {
			return
		}
		rate := g.winRate()

		if rate >= 60 {
			id := "odds:" + rangeLabel + ":win"
			r.emit(models.Insight{
				ID:       id,
				Type:     models.InsightTypeWin,
				Category: models.CategoryBetType,
				Message:  oddsBucketWinTemplates[templateIndex(id, len(oddsBucketWinTemplates))](rangeLabel, rate, g.wins, g.losses),
				Priority: float64(rate*10 + g.total()*5),
				Color:    models.ColorGreen,
				Stats:    g.stats(),
			})
			return
		}

		if rate < 45 && g.losses >= 2 {
			id := "odds:" + rangeLabel + ":loss"
			r.emit(models.Insight{
				ID:       id,
				Type:     models.InsightTypeLoss,
				Category: models.CategoryBetType,
				Message:  oddsBucketLossTemplates[templateIndex(id, len(oddsBucketLossTemplates))](rangeLabel, rate, g.wins, g.losses),
				Priority: float64(g.losses*15 + g.total()*5),
				Color:    models.ColorRed,
				Stats:    g.stats(),
			})
		}
	})
}

// comparisonRule contrasts straight-bet and parlay win rates when both
// have enough volume and the gap is at least ten points.
func (r *ruleRun) comparisonRule(gb *groupedBets) {
	if len(gb.straights) < comparisonStraights || len(gb.parlays) < comparisonParlays {
		return
	}
	straightRate := settledWinRate(gb.straights)
	parlayRate := settledWinRate(gb.parlays)
	diff := straightRate - parlayRate
	if diff < 10 && diff > -10 {
		return
	}

	better, worse := "straight", "parlay"
	betterRate, worseRate := straightRate, parlayRate
	if diff < 0 {
		better, worse = "parlay", "straight"
		betterRate, worseRate = parlayRate, straightRate
	}

	id := "comparison:straight_vs_parlay"
	r.emit(models.Insight{
		ID:       id,
		Type:     models.InsightTypeComparison,
		Category: models.CategoryBetType,
		Message:  comparisonTemplates[templateIndex(id, len(comparisonTemplates))](better, worse, betterRate, worseRate),
		Priority: math.Abs(float64(diff))*8 + float64(len(gb.straights)+len(gb.parlays))*2,
		Color:    models.ColorBlue,
	})
}

// parlayRules evaluates the parlay-level aggregate.
func (r *ruleRun) parlayRules(gb *groupedBets) {
	g := &group{}
	for _, bet := range gb.parlays {
		g.add(bet)
	}
	if g.total() < parlayMinTotal {
		return
	}
	rate := g.winRate()

	if rate >= 60 {
		id := "parlay:overall:win"
		r.emit(models.Insight{
			ID:       id,
			Type:     models.InsightTypeWin,
			Category: models.CategoryParlay,
			Message:  parlayWinTemplates[templateIndex(id, len(parlayWinTemplates))](rate, g.wins, g.losses),
			Priority: float64(rate*10 + g.total()*5),
			Color:    models.ColorGreen,
			Stats:    g.stats(),
		})
		return
	}

	if g.losses >= 2 && g.losses > g.wins {
		id := "parlay:overall:loss"
		r.emit(models.Insight{
			ID:             id,
			Type:           models.InsightTypeLoss,
			Category:       models.CategoryParlay,
			Message:        parlayLossTemplates[templateIndex(id, len(parlayLossTemplates))](g.losses, g.wins),
			Priority:       float64(g.losses*15 + g.total()*5),
			Color:          models.ColorRed,
			Stats:          g.stats(),
			Recommendation: "Your straights may be carrying the ledger.",
		})
	}
}

// legRules evaluates parlay-leg groups keyed by player, stat, and
// stat×direction. Win/loss speak to the parlay outcome when the leg is
// included; the leg's own hit rate rides along in the message.
func (r *ruleRun) legRules(gb *groupedBets) {
	legDimensions := []struct {
		prefix string
		set    *groupSet
		label  func(key string) string
	}{
		{"parlay_leg_player", gb.legPlayer, func(key string) string { return key }},
		{"parlay_leg_stat", gb.legStat, func(key string) string { return key + " legs" }},
		{"parlay_leg_stat_direction", gb.legStatDir, func(key string) string {
			stat, direction, _ := strings.Cut(key, "|")
			return stat + " " + direction + " legs"
		}},
	}

	for _, dim := range legDimensions {
		dim.set.each(func(key string, g *group) {
			label := dim.label(key)
			rate := g.winRate()

			if g.total() >= legNeutralMin && rate >= 45 && rate <= 55 {
				id := dim.prefix + ":" + key + ":neutral"
				r.emit(models.Insight{
					ID:       id,
					Type:     models.InsightTypeNeutral,
					Category: models.CategoryParlay,
					Message:  legNeutralTemplates[templateIndex(id, len(legNeutralTemplates))](label, rate, g.total()),
					Priority: float64(g.total() * 4),
					Color:    models.ColorBlue,
					Stats:    g.stats(),
				})
				return
			}

			if g.total() < legMinTotal {
				return
			}

			if rate >= 60 {
				id := dim.prefix + ":" + key + ":win"
				r.emit(models.Insight{
					ID:       id,
					Type:     models.InsightTypeWin,
					Category: models.CategoryParlay,
					Message:  legWinTemplates[templateIndex(id, len(legWinTemplates))](label, rate, g.total(), g.legWinRate()),
					Priority: float64(rate*10 + g.total()*5),
					Color:    models.ColorGreen,
					Stats:    g.stats(),
				})
				return
			}

			if rate < 40 && g.losses >= 2 {
				id := dim.prefix + ":" + key + ":loss"
				r.emit(models.Insight{
					ID:             id,
					Type:           models.InsightTypeLoss,
					Category:       models.CategoryParlay,
					Message:        legLossTemplates[templateIndex(id, len(legLossTemplates))](label, rate, g.losses, g.legWinRate()),
					Priority:       float64(g.losses*15 + g.total()*5),
					Color:          models.ColorRed,
					Stats:          g.stats(),
					Recommendation: "Consider building parlays without this piece.",
				})
			}
		})
	}
}

// overallRule looks at the whole settled ledger once it has real volume.
func (r *ruleRun) overallRule(settled []models.JournalBet) {
	if len(settled) < overallMinSettled {
		return
	}
	g := &group{}
	for _, bet := range settled {
		g.add(bet)
	}
	if g.wagered < overallMinWagered {
		return
	}
	profit := g.profit()

	if profit > 50 {
		id := "overall:financial:win"
		r.emit(models.Insight{
			ID:       id,
			Type:     models.InsightTypeWin,
			Category: models.CategoryBetType,
			Message:  overallWinTemplates[templateIndex(id, len(overallWinTemplates))](profit, g.roi()),
			Priority: math.Abs(profit)*3 + float64(g.total()*3),
			Color:    models.ColorGreen,
			Stats:    g.stats(),
		})
		return
	}

	if profit < -50 {
		id := "overall:financial:loss"
		r.emit(models.Insight{
			ID:       id,
			Type:     models.InsightTypeLoss,
			Category: models.CategoryBetType,
			Message:  overallLossTemplates[templateIndex(id, len(overallLossTemplates))](profit, g.total()),
			Priority: math.Abs(profit)*3 + float64(g.total()*3) + float64(g.losses*5),
			Color:    models.ColorRed,
			Stats:    g.stats(),
		})
	}
}

// settledWinRate returns the rounded win percentage of a settled subset.
func settledWinRate(bets []models.JournalBet) int {
	if len(bets) == 0 {
		return 0
	}
	wins := 0
	for _, bet := range bets {
		if bet.Result == models.ResultWin {
			wins++
		}
	}
	return int(math.Round(100 * float64(wins) / float64(len(bets))))
}
