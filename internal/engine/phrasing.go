package engine

import "fmt"

// templateHash is the stable 32-bit string hash behind template selection
// and the interleave seed. Each step computes h*31 + char with int32
// wraparound, so the same insight id always maps to the same template
// across refreshes. The exact recurrence is part of the rendering
// contract; do not replace it.
func templateHash(s string) int32 {
	var h int32
	for _, r := range s {
		h = (h << 5) - h + int32(r)
	}
	return h
}

// templateIndex maps an insight id onto one of n templates.
func templateIndex(id string, n int) int {
	h := int64(templateHash(id))
	if h < 0 {
		h = -h
	}
	return int(h % int64(n))
}

var statDirectionWinTemplates = []func(label string, winRate, wins, losses int) string{
	func(label string, winRate, wins, losses int) string {
		return fmt.Sprintf("Your %s bets are hitting %d%% (%d-%d). Keep leaning on them.", label, winRate, wins, losses)
	},
	func(label string, winRate, wins, losses int) string {
		return fmt.Sprintf("%s has been a strength: %d%% win rate across %d wins and %d losses.", label, winRate, wins, losses)
	},
	func(label string, winRate, wins, losses int) string {
		return fmt.Sprintf("You're %d-%d on %s — a %d%% clip. One of your best angles.", wins, losses, label, winRate)
	},
}

var statDirectionLossTemplates = []func(label string, winRate, wins, losses int) string{
	func(label string, winRate, wins, losses int) string {
		return fmt.Sprintf("Your %s bets are struggling at %d%% (%d-%d).", label, winRate, wins, losses)
	},
	func(label string, winRate, wins, losses int) string {
		return fmt.Sprintf("%s hasn't worked: %d%% win rate with %d wins against %d losses.", label, winRate, wins, losses)
	},
	func(label string, winRate, wins, losses int) string {
		return fmt.Sprintf("You're just %d-%d on %s (%d%%). Worth a second look before the next one.", wins, losses, label, winRate)
	},
}

var statDirectionNeutralTemplates = []func(label string, winRate, total int) string{
	func(label string, winRate, total int) string {
		return fmt.Sprintf("%s is running about even: %d%% over %d bets.", label, winRate, total)
	},
	func(label string, winRate, total int) string {
		return fmt.Sprintf("No edge either way on %s yet — %d%% through %d bets.", label, winRate, total)
	},
}

var statFinancialWinTemplates = []func(stat string, profit float64, roi int) string{
	func(stat string, profit float64, roi int) string {
		return fmt.Sprintf("%s bets have banked $%.2f at %d%% ROI.", stat, profit, roi)
	},
	func(stat string, profit float64, roi int) string {
		return fmt.Sprintf("You're up $%.2f on %s with a %d%% return.", profit, stat, roi)
	},
}

var statFinancialLossTemplates = []func(stat string, profit float64, total int) string{
	func(stat string, profit float64, total int) string {
		return fmt.Sprintf("%s bets have cost you $%.2f across %d plays.", stat, -profit, total)
	},
	func(stat string, profit float64, total int) string {
		return fmt.Sprintf("You're down $%.2f on %s over %d bets.", -profit, stat, total)
	},
}

var statLossCountTemplates = []func(stat string, losses, total int) string{
	func(stat string, losses, total int) string {
		return fmt.Sprintf("%d of your %d %s bets have lost. This market isn't treating you well.", losses, total, stat)
	},
	func(stat string, losses, total int) string {
		return fmt.Sprintf("%s keeps biting: %d losses in %d tries.", stat, losses, total)
	},
}

var statNeutralTemplates = []func(stat string, winRate, total int) string{
	func(stat string, winRate, total int) string {
		return fmt.Sprintf("%s is a coin flip so far: %d%% over %d bets.", stat, winRate, total)
	},
	func(stat string, winRate, total int) string {
		return fmt.Sprintf("Nothing decisive on %s yet — %d%% through %d bets.", stat, winRate, total)
	},
}

var playerWinTemplates = []func(name string, winRate, wins, losses int) string{
	func(name string, winRate, wins, losses int) string {
		return fmt.Sprintf("%s has been money for you: %d%% (%d-%d).", name, winRate, wins, losses)
	},
	func(name string, winRate, wins, losses int) string {
		return fmt.Sprintf("You read %s well — %d wins, %d losses (%d%%).", name, wins, losses, winRate)
	},
	func(name string, winRate, wins, losses int) string {
		return fmt.Sprintf("Betting on %s is working: %d-%d for a %d%% hit rate.", name, wins, losses, winRate)
	},
}

var playerLossTemplates = []func(name string, losses, total int) string{
	func(name string, losses, total int) string {
		return fmt.Sprintf("%s has burned you %d times in %d bets.", name, losses, total)
	},
	func(name string, losses, total int) string {
		return fmt.Sprintf("You've lost %d of %d bets on %s. Maybe fade this one.", losses, total, name)
	},
}

var playerNeutralTemplates = []func(name string, winRate, total int) string{
	func(name string, winRate, total int) string {
		return fmt.Sprintf("%s bets are about break-even: %d%% over %d plays.", name, winRate, total)
	},
	func(name string, winRate, total int) string {
		return fmt.Sprintf("No clear read on %s yet — %d%% through %d bets.", name, winRate, total)
	},
}

var directionWinTemplates = []func(direction string, winRate, wins, losses int) string{
	func(direction string, winRate, wins, losses int) string {
		return fmt.Sprintf("Your %ss are cashing at %d%% (%d-%d).", direction, winRate, wins, losses)
	},
	func(direction string, winRate, wins, losses int) string {
		return fmt.Sprintf("You have a feel for %ss: %d wins, %d losses (%d%%).", direction, wins, losses, winRate)
	},
}

var directionLossTemplates = []func(direction string, winRate, wins, losses int) string{
	func(direction string, winRate, wins, losses int) string {
		return fmt.Sprintf("Your %ss are under water at %d%% (%d-%d).", direction, winRate, wins, losses)
	},
	func(direction string, winRate, wins, losses int) string {
		return fmt.Sprintf("%ss haven't gone your way: %d wins against %d losses (%d%%).", direction, wins, losses, winRate)
	},
}

var comparisonTemplates = []func(better, worse string, betterRate, worseRate int) string{
	func(better, worse string, betterRate, worseRate int) string {
		return fmt.Sprintf("Your %s bets (%d%%) are outperforming your %s bets (%d%%).", better, betterRate, worse, worseRate)
	},
	func(better, worse string, betterRate, worseRate int) string {
		return fmt.Sprintf("%s bets hit %d%% for you, well clear of %s bets at %d%%.", better, betterRate, worse, worseRate)
	},
}

var parlayWinTemplates = []func(winRate, wins, losses int) string{
	func(winRate, wins, losses int) string {
		return fmt.Sprintf("Your parlays are landing at %d%% (%d-%d). Strong building.", winRate, wins, losses)
	},
	func(winRate, wins, losses int) string {
		return fmt.Sprintf("Parlays have been kind: %d wins, %d losses — a %d%% strike rate.", wins, losses, winRate)
	},
}

var parlayLossTemplates = []func(losses, wins int) string{
	func(losses, wins int) string {
		return fmt.Sprintf("Parlays are draining you: %d losses against %d wins.", losses, wins)
	},
	func(losses, wins int) string {
		return fmt.Sprintf("You've dropped %d parlays and cashed %d. Straights may serve you better.", losses, wins)
	},
}

var legWinTemplates = []func(label string, winRate, total, legRate int) string{
	func(label string, winRate, total, legRate int) string {
		return fmt.Sprintf("Parlays including %s cash %d%% of the time (%d bets); the leg itself hits %d%%.", label, winRate, total, legRate)
	},
	func(label string, winRate, total, legRate int) string {
		return fmt.Sprintf("%s is a reliable parlay piece — %d%% parlay win rate over %d, %d%% on the leg.", label, winRate, total, legRate)
	},
}

var legLossTemplates = []func(label string, winRate, losses, legRate int) string{
	func(label string, winRate, losses, legRate int) string {
		return fmt.Sprintf("Parlays with %s keep failing: %d%% win rate, %d losses (leg hits %d%%).", label, winRate, losses, legRate)
	},
	func(label string, winRate, losses, legRate int) string {
		return fmt.Sprintf("%s is sinking your parlays — %d%% when included, %d losses; the leg lands %d%%.", label, winRate, losses, legRate)
	},
}

var legNeutralTemplates = []func(label string, winRate, total int) string{
	func(label string, winRate, total int) string {
		return fmt.Sprintf("Parlays with %s are a wash: %d%% over %d bets.", label, winRate, total)
	},
}

var oddsBucketWinTemplates = []func(rangeLabel string, winRate, wins, losses int) string{
	func(rangeLabel string, winRate, wins, losses int) string {
		return fmt.Sprintf("You thrive in the %s odds range: %d%% (%d-%d).", rangeLabel, winRate, wins, losses)
	},
	func(rangeLabel string, winRate, wins, losses int) string {
		return fmt.Sprintf("Odds between %s suit you — %d wins, %d losses (%d%%).", rangeLabel, wins, losses, winRate)
	},
}

var oddsBucketLossTemplates = []func(rangeLabel string, winRate, wins, losses int) string{
	func(rangeLabel string, winRate, wins, losses int) string {
		return fmt.Sprintf("The %s odds range is hurting you: %d%% (%d-%d).", rangeLabel, winRate, wins, losses)
	},
	func(rangeLabel string, winRate, wins, losses int) string {
		return fmt.Sprintf("You're %d-%d at odds of %s — only a %d%% hit rate.", wins, losses, rangeLabel, winRate)
	},
}

var overallWinTemplates = []func(profit float64, roi int) string{
	func(profit float64, roi int) string {
		return fmt.Sprintf("You're up $%.2f overall at %d%% ROI. The journal likes what it sees.", profit, roi)
	},
	func(profit float64, roi int) string {
		return fmt.Sprintf("Overall profit sits at $%.2f — a %d%% return on everything wagered.", profit, roi)
	},
}

var overallLossTemplates = []func(profit float64, total int) string{
	func(profit float64, total int) string {
		return fmt.Sprintf("You're down $%.2f across %d settled bets.", -profit, total)
	},
	func(profit float64, total int) string {
		return fmt.Sprintf("The ledger shows -$%.2f over %d bets. Time to tighten up.", -profit, total)
	},
}

var painOneLegTemplates = []func(count int, potential float64) string{
	func(count int, potential float64) string {
		return fmt.Sprintf("%d parlays died on a single leg. Had they landed, you'd be up another $%.2f.", count, potential)
	},
	func(count int, potential float64) string {
		return fmt.Sprintf("So close: %d one-leg parlay losses, worth $%.2f if they'd hit.", count, potential)
	},
}

var painPlayerMissTemplates = []func(name string, count int) string{
	func(name string, count int) string {
		return fmt.Sprintf("%s has missed your line by half a point %d times.", name, count)
	},
	func(name string, count int) string {
		return fmt.Sprintf("%d half-point heartbreaks courtesy of %s.", count, name)
	},
}

var painGeneralMissTemplates = []func(count int) string{
	func(count int) string {
		return fmt.Sprintf("%d of your losses came down to half a point.", count)
	},
	func(count int) string {
		return fmt.Sprintf("Brutal margins: %d bets lost by exactly half a point.", count)
	},
}
