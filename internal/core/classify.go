package core

import "time"

// Tier grades year-to-date spending against a yearly budget.
type Tier string

const (
	// TierRed means the yearly budget is already exceeded.
	TierRed Tier = "red"
	// TierYellow means spending is ahead of the pro-rated pace but still
	// within the yearly budget.
	TierYellow Tier = "yellow"
	// TierGreen means spending is on or under pace.
	TierGreen Tier = "green"
)

// SpendingStatus is the classifier output: a traffic-light tier and a
// progress-bar fill fraction as a percentage in [0,100].
type SpendingStatus struct {
	Tier     Tier    `json:"tier"`
	Fraction float64 `json:"fraction"`
}

// Classify compares year-to-date spending against the budget expected to be
// spent by the end of asOf's calendar month, assuming even spending across
// twelve months. The evaluation date is explicit so callers stay
// deterministic; the render layer passes time.Now().
//
// A zero yearly budget never divides: any spending against it is red at
// 100%, no spending is green at 0%. Negative budgets are treated as absent.
func Classify(yearlyBudget, ytdSpent Milliunits, asOf time.Time) SpendingStatus {
	yearlyBudget = clampTarget(yearlyBudget)
	ytdSpent = ytdSpent.abs()

	if yearlyBudget == 0 {
		if ytdSpent > 0 {
			return SpendingStatus{Tier: TierRed, Fraction: 100}
		}
		return SpendingStatus{Tier: TierGreen, Fraction: 0}
	}

	monthsElapsed := int(asOf.Month()) // 1..12
	expected := float64(yearlyBudget) / 12 * float64(monthsElapsed)

	switch {
	case ytdSpent > yearlyBudget:
		return SpendingStatus{Tier: TierRed, Fraction: 100}
	case float64(ytdSpent) > expected:
		return SpendingStatus{Tier: TierYellow, Fraction: fillFraction(yearlyBudget, ytdSpent)}
	default:
		return SpendingStatus{Tier: TierGreen, Fraction: fillFraction(yearlyBudget, ytdSpent)}
	}
}

// fillFraction is spent/budget as a percentage, capped to [0,100] so the
// value is always usable as a width.
func fillFraction(budget, spent Milliunits) float64 {
	f := float64(spent) / float64(budget) * 100
	if f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return f
}
