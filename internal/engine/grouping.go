package engine

import (
	"fmt"
	"math"

	"github.com/Stattrackrr/stattrackr-sub003/pkg/models"
)

// group accumulates win/loss and money totals for one dimension key.
// For parlay-leg groups the wins/losses reflect the parlay's own outcome
// while legWins/legKnown track how the individual legs fared.
type group struct {
	wins     int
	losses   int
	wagered  float64
	returned float64
	bets     []models.JournalBet

	legWins  int
	legKnown int
}

func (g *group) add(bet models.JournalBet) {
	if bet.Result == models.ResultWin {
		g.wins++
	} else {
		g.losses++
	}
	g.wagered += bet.Stake
	g.returned += betReturn(bet)
	g.bets = append(g.bets, bet)
}

func (g *group) total() int {
	return g.wins + g.losses
}

// winRate is the rounded win percentage; 0 when the group is empty.
func (g *group) winRate() int {
	t := g.total()
	if t == 0 {
		return 0
	}
	return int(math.Round(100 * float64(g.wins) / float64(t)))
}

func (g *group) profit() float64 {
	return g.returned - g.wagered
}

// roi is the rounded return-on-investment percentage; 0 when nothing
// was wagered.
func (g *group) roi() int {
	if g.wagered == 0 {
		return 0
	}
	return int(math.Round(100 * g.profit() / g.wagered))
}

// legWinRate is the rounded win percentage of the legs themselves,
// counting only legs with a definite outcome.
func (g *group) legWinRate() int {
	if g.legKnown == 0 {
		return 0
	}
	return int(math.Round(100 * float64(g.legWins) / float64(g.legKnown)))
}

func (g *group) stats() *models.InsightStats {
	return &models.InsightStats{
		Wins:     g.wins,
		Losses:   g.losses,
		Total:    g.total(),
		WinRate:  g.winRate(),
		Profit:   g.profit(),
		Wagered:  g.wagered,
		Returned: g.returned,
		ROI:      g.roi(),
	}
}

// groupSet is an insertion-ordered collection of groups. Rule evaluation
// iterates groups in the order their keys were first seen, so suppression
// decisions between overlapping dimensions are reproducible.
type groupSet struct {
	keys []string
	m    map[string]*group
}

func newGroupSet() *groupSet {
	return &groupSet{m: make(map[string]*group)}
}

func (s *groupSet) get(key string) *group {
	g, ok := s.m[key]
	if !ok {
		g = &group{}
		s.m[key] = g
		s.keys = append(s.keys, key)
	}
	return g
}

func (s *groupSet) lookup(key string) (*group, bool) {
	g, ok := s.m[key]
	return g, ok
}

func (s *groupSet) each(fn func(key string, g *group)) {
	for _, k := range s.keys {
		fn(k, s.m[k])
	}
}

// oddsBuckets are the five decimal-odds ranges groups are keyed by.
// Membership is half-open [min,max) except the final bucket, which
// closes at 2.00, so a bet at exactly 1.80 lands in 1.60-1.80.
var oddsBuckets = []struct {
	min, max float64
}{
	{1.00, 1.20},
	{1.20, 1.40},
	{1.40, 1.60},
	{1.60, 1.80},
	{1.80, 2.00},
}

func oddsBucketKey(odds float64) (string, bool) {
	last := len(oddsBuckets) - 1
	for i, b := range oddsBuckets {
		switch {
		case i == last:
			if odds > b.min && odds <= b.max {
				return bucketLabel(b.min, b.max), true
			}
		case i == last-1:
			// The final bucket is open at its low end, so its lower
			// boundary belongs to this one.
			if odds >= b.min && odds <= b.max {
				return bucketLabel(b.min, b.max), true
			}
		default:
			if odds >= b.min && odds < b.max {
				return bucketLabel(b.min, b.max), true
			}
		}
	}
	return "", false
}

func bucketLabel(min, max float64) string {
	return fmt.Sprintf("%.2f-%.2f", min, max)
}

// groupedBets holds every dimension partition for one engine run.
type groupedBets struct {
	straights []models.JournalBet
	parlays   []models.JournalBet

	statDirection *groupSet // key "stat|direction"
	statOnly      *groupSet // key stat
	player        *groupSet
	direction     *groupSet // "over" / "under"
	oddsBucket    *groupSet
	legPlayer     *groupSet
	legStat       *groupSet
	legStatDir    *groupSet
}

func statDirectionKey(stat, direction string) string {
	return stat + "|" + direction
}

// buildGroups partitions the settled bets along every dimension the rule
// engine evaluates. Bets missing a field required by a dimension are
// silently left out of that dimension.
func buildGroups(settled []models.JournalBet) *groupedBets {
	gb := &groupedBets{
		statDirection: newGroupSet(),
		statOnly:      newGroupSet(),
		player:        newGroupSet(),
		direction:     newGroupSet(),
		oddsBucket:    newGroupSet(),
		legPlayer:     newGroupSet(),
		legStat:       newGroupSet(),
		legStatDir:    newGroupSet(),
	}

	for _, bet := range settled {
		if IsParlay(bet) {
			gb.parlays = append(gb.parlays, bet)
		} else {
			gb.straights = append(gb.straights, bet)
		}
	}

	for _, bet := range gb.straights {
		if bet.StatType != nil && bet.OverUnder != nil {
			gb.statDirection.get(statDirectionKey(*bet.StatType, *bet.OverUnder)).add(bet)
		}
		if bet.StatType != nil {
			gb.statOnly.get(*bet.StatType).add(bet)
		}
		if name, ok := ExtractPlayerName(bet); ok {
			gb.player.get(name).add(bet)
		}
		if bet.OverUnder != nil {
			gb.direction.get(*bet.OverUnder).add(bet)
		}
		if key, ok := oddsBucketKey(bet.Odds); ok {
			gb.oddsBucket.get(key).add(bet)
		}
	}

	for _, bet := range gb.parlays {
		for _, leg := range bet.ParlayLegs {
			if leg.PlayerName != nil && *leg.PlayerName != "" {
				attributeLeg(gb.legPlayer.get(*leg.PlayerName), bet, leg)
			}
			if leg.StatType != nil {
				attributeLeg(gb.legStat.get(*leg.StatType), bet, leg)
				if leg.OverUnder != nil {
					attributeLeg(gb.legStatDir.get(statDirectionKey(*leg.StatType, *leg.OverUnder)), bet, leg)
				}
			}
		}
	}

	return gb
}

// attributeLeg credits the parlay's own outcome to the leg's group and
// separately tallies the leg's individual result when it is known.
func attributeLeg(g *group, bet models.JournalBet, leg models.ParlayLeg) {
	g.add(bet)
	if leg.Won != nil {
		g.legKnown++
		if *leg.Won {
			g.legWins++
		}
	}
}
