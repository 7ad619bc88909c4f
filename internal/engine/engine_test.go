package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Stattrackrr/stattrackr-sub003/pkg/models"
)

// straightBet builds a settled straight bet on a stat and direction.
func straightBet(result, stat, direction string, stake, odds float64) models.JournalBet {
	return models.JournalBet{
		Result:    result,
		Stake:     stake,
		Odds:      odds,
		StatType:  strPtr(stat),
		OverUnder: strPtr(direction),
	}
}

func repeatBets(bet models.JournalBet, n int) []models.JournalBet {
	out := make([]models.JournalBet, n)
	for i := range out {
		out[i] = bet
	}
	return out
}

func TestGenerateInsightsMinimumSampleGate(t *testing.T) {
	bets := repeatBets(straightBet(models.ResultWin, "pts", "over", 10, 1.91), 9)
	bets = append(bets,
		models.JournalBet{Result: models.ResultPending, Stake: 10, Odds: 1.91},
		models.JournalBet{Result: models.ResultVoid, Stake: 10, Odds: 1.91},
	)

	got := GenerateInsights(bets)
	if len(got) != 0 {
		t.Errorf("expected no insights below 10 settled bets, got %d", len(got))
	}
}

func TestGenerateInsightsDeterminism(t *testing.T) {
	build := func() []models.JournalBet {
		bets := []models.JournalBet{}
		bets = append(bets, repeatBets(straightBet(models.ResultWin, "pts", "over", 10, 1.91), 8)...)
		bets = append(bets, repeatBets(straightBet(models.ResultLoss, "pts", "over", 10, 1.91), 4)...)
		bets = append(bets, repeatBets(straightBet(models.ResultLoss, "reb", "under", 20, 1.65), 5)...)
		bets = append(bets, repeatBets(straightBet(models.ResultWin, "ast", "over", 15, 2.0), 3)...)

		for i := 0; i < 4; i++ {
			bets = append(bets, models.JournalBet{
				Result: models.ResultLoss,
				Stake:  10,
				Odds:   3.0,
				ParlayLegs: []models.ParlayLeg{
					{PlayerName: strPtr("LeBron James"), StatType: strPtr("pts"), OverUnder: strPtr("over"), Won: boolPtr(true)},
					{PlayerName: strPtr("Anthony Davis"), StatType: strPtr("reb"), OverUnder: strPtr("under"), Won: boolPtr(false)},
				},
			})
		}
		return bets
	}

	first := GenerateInsights(build())
	second := GenerateInsights(build())

	if !reflect.DeepEqual(first, second) {
		t.Fatal("two runs over identical input produced different output")
	}
	if len(first) == 0 {
		t.Fatal("expected insights from this journal")
	}
}

func TestGenerateInsightsUniqueIDs(t *testing.T) {
	bets := []models.JournalBet{}
	bets = append(bets, repeatBets(straightBet(models.ResultWin, "pts", "over", 10, 1.91), 8)...)
	bets = append(bets, repeatBets(straightBet(models.ResultLoss, "reb", "under", 20, 1.65), 5)...)

	seen := map[string]bool{}
	for _, in := range GenerateInsights(bets) {
		if seen[in.ID] {
			t.Errorf("duplicate insight id %q", in.ID)
		}
		seen[in.ID] = true
	}
}

func TestGenerateInsightsWinScenario(t *testing.T) {
	// 12 settled pts-over bets, 8 wins and 4 losses: a 67% clip.
	bets := repeatBets(straightBet(models.ResultWin, "pts", "over", 10, 1.91), 8)
	bets = append(bets, repeatBets(straightBet(models.ResultLoss, "pts", "over", 10, 1.91), 4)...)

	out := GenerateInsights(bets)

	var match *models.Insight
	for i, in := range out {
		if strings.HasPrefix(in.ID, "stat_direction:pts|over:") {
			if match != nil {
				t.Fatalf("more than one insight for key pts|over: %q and %q", match.ID, in.ID)
			}
			match = &out[i]
		}
	}

	if match == nil {
		t.Fatal("expected an insight for key pts|over")
	}
	if match.Type != models.InsightTypeWin || match.Color != models.ColorGreen {
		t.Errorf("insight type/color = %s/%s, want win/green", match.Type, match.Color)
	}
	if match.Stats == nil {
		t.Fatal("expected stats on the insight")
	}
	if match.Stats.WinRate != 67 || match.Stats.Wins != 8 || match.Stats.Losses != 4 {
		t.Errorf("stats = %d%% (%d-%d), want 67%% (8-4)", match.Stats.WinRate, match.Stats.Wins, match.Stats.Losses)
	}
}

func TestNeutralSuppressesWinLossForSameKey(t *testing.T) {
	// 5-5 at even odds: dead-even win rate and zero profit.
	bets := repeatBets(straightBet(models.ResultWin, "pts", "over", 10, 2.0), 5)
	bets = append(bets, repeatBets(straightBet(models.ResultLoss, "pts", "over", 10, 2.0), 5)...)

	out := GenerateInsights(bets)

	foundNeutral := false
	for _, in := range out {
		switch in.ID {
		case "stat_direction:pts|over:neutral":
			foundNeutral = true
		case "stat_direction:pts|over:win", "stat_direction:pts|over:loss":
			t.Errorf("win/loss insight %q emitted alongside neutral for the same key", in.ID)
		}
		if strings.HasPrefix(in.ID, "stat:pts:") {
			t.Errorf("stat aggregate %q emitted despite stat-direction child insight", in.ID)
		}
	}

	if !foundNeutral {
		t.Fatal("expected a neutral insight for key pts|over")
	}
}
