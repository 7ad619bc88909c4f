package engine

import (
	"math"

	"github.com/Stattrackrr/stattrackr-sub003/pkg/models"
)

// Near-miss margin window. A straight bet that lost by exactly half a
// unit sits at 0.5; the band absorbs floating-point drift.
const (
	nearMissLow  = 0.49
	nearMissHigh = 0.51
)

// detectPainPoints scans for near-miss losses: parlays that died on
// exactly one leg and straight bets that missed the line by half a unit.
// Pain insights keep their natural order and are never shuffled; absence
// of qualifying near-misses yields no insights at all.
func detectPainPoints(gb *groupedBets) []models.Insight {
	out := []models.Insight{}
	out = append(out, oneLegParlayPain(gb.parlays)...)
	out = append(out, nearMissPain(gb.straights)...)
	return out
}

// oneLegParlayPain aggregates lost parlays where every leg has a known
// outcome and exactly one leg failed. Parlays with any undetermined leg
// are skipped rather than guessed at.
func oneLegParlayPain(parlays []models.JournalBet) []models.Insight {
	var qualifying []models.JournalBet
	var potential float64

	for _, bet := range parlays {
		if bet.Result != models.ResultLoss || len(bet.ParlayLegs) < 2 {
			continue
		}
		won := 0
		known := true
		for _, leg := range bet.ParlayLegs {
			if leg.Won == nil {
				known = false
				break
			}
			if *leg.Won {
				won++
			}
		}
		if !known {
			continue
		}
		if len(bet.ParlayLegs)-won == 1 {
			qualifying = append(qualifying, bet)
			potential += bet.Stake*bet.Odds - bet.Stake
		}
	}

	if len(qualifying) == 0 {
		return nil
	}

	id := "pain:one_leg_parlays"
	count := len(qualifying)
	return []models.Insight{{
		ID:       id,
		Type:     models.InsightTypePain,
		Category: models.CategoryParlay,
		Message:  painOneLegTemplates[templateIndex(id, len(painOneLegTemplates))](count, potential),
		Priority: float64(count * 20),
		Color:    models.ColorOrange,
		Stats: &models.InsightStats{
			Losses: count,
			Total:  count,
		},
		RelatedBets:     qualifying,
		PotentialProfit: &potential,
	}}
}

// nearMissPain finds straight-bet losses that missed by half a unit.
// Players with two or more such misses each get an insight; a general
// aggregate only appears once there are three misses overall, so one or
// two misses already covered per-player aren't double-counted.
func nearMissPain(straights []models.JournalBet) []models.Insight {
	var all []models.JournalBet
	var playerOrder []string
	byPlayer := make(map[string][]models.JournalBet)

	for _, bet := range straights {
		if bet.Result != models.ResultLoss || bet.ActualValue == nil || bet.Line == nil || bet.OverUnder == nil {
			continue
		}
		var margin float64
		if *bet.OverUnder == models.DirectionOver {
			margin = *bet.Line - *bet.ActualValue
		} else {
			margin = *bet.ActualValue - *bet.Line
		}
		if margin < nearMissLow || margin > nearMissHigh {
			continue
		}
		all = append(all, bet)
		if name, ok := ExtractPlayerName(bet); ok {
			if _, seen := byPlayer[name]; !seen {
				playerOrder = append(playerOrder, name)
			}
			byPlayer[name] = append(byPlayer[name], bet)
		}
	}

	out := []models.Insight{}
	for _, name := range playerOrder {
		misses := byPlayer[name]
		if len(misses) < 2 {
			continue
		}
		id := "pain:close_call:" + name
		potential := potentialProfit(misses)
		out = append(out, models.Insight{
			ID:       id,
			Type:     models.InsightTypePain,
			Category: models.CategoryPlayer,
			Message:  painPlayerMissTemplates[templateIndex(id, len(painPlayerMissTemplates))](name, len(misses)),
			Priority: float64(len(misses) * 20),
			Color:    models.ColorOrange,
			Stats: &models.InsightStats{
				Losses: len(misses),
				Total:  len(misses),
			},
			RelatedBets:     misses,
			PotentialProfit: &potential,
		})
	}

	if len(all) >= 3 {
		id := "pain:close_calls"
		potential := potentialProfit(all)
		out = append(out, models.Insight{
			ID:       id,
			Type:     models.InsightTypePain,
			Category: models.CategoryStat,
			Message:  painGeneralMissTemplates[templateIndex(id, len(painGeneralMissTemplates))](len(all)),
			Priority: float64(len(all) * 20),
			Color:    models.ColorOrange,
			Stats: &models.InsightStats{
				Losses: len(all),
				Total:  len(all),
			},
			RelatedBets:     all,
			PotentialProfit: &potential,
		})
	}

	return out
}

// potentialProfit sums the payout each bet would have produced on a win.
func potentialProfit(bets []models.JournalBet) float64 {
	var sum float64
	for _, bet := range bets {
		sum += bet.Stake*bet.Odds - bet.Stake
	}
	return math.Round(sum*100) / 100
}
