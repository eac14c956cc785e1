package core

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	january := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	june := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	december := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		budget       Milliunits
		spent        Milliunits
		asOf         time.Time
		wantTier     Tier
		wantFraction float64
	}{
		{
			name:   "over budget is red at full width",
			budget: 1200, spent: 1300, asOf: june,
			wantTier: TierRed, wantFraction: 100,
		},
		{
			name:   "over budget is red in any month",
			budget: 1200, spent: 1300, asOf: january,
			wantTier: TierRed, wantFraction: 100,
		},
		{
			name:   "nothing spent in january is green",
			budget: 1200, spent: 0, asOf: january,
			wantTier: TierGreen, wantFraction: 0,
		},
		{
			name:   "ahead of pace but under budget is yellow",
			budget: 1200, spent: 600, asOf: january,
			wantTier: TierYellow, wantFraction: 50,
		},
		{
			name:   "same spend later in the year is green",
			budget: 1200, spent: 600, asOf: december,
			wantTier: TierGreen, wantFraction: 50,
		},
		{
			name:   "exactly on pace is green",
			budget: 1200, spent: 600, asOf: june,
			wantTier: TierGreen, wantFraction: 50,
		},
		{
			name:   "spending the full budget is green in december",
			budget: 1200, spent: 1200, asOf: december,
			wantTier: TierGreen, wantFraction: 100,
		},
		{
			name:   "zero budget with no spend is green",
			budget: 0, spent: 0, asOf: june,
			wantTier: TierGreen, wantFraction: 0,
		},
		{
			name:   "zero budget with any spend is red",
			budget: 0, spent: 1, asOf: june,
			wantTier: TierRed, wantFraction: 100,
		},
		{
			name:   "negative budget behaves like zero",
			budget: -500, spent: 100, asOf: june,
			wantTier: TierRed, wantFraction: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.budget, tt.spent, tt.asOf)
			if got.Tier != tt.wantTier {
				t.Errorf("Classify(%d, %d) tier = %q, want %q", tt.budget, tt.spent, got.Tier, tt.wantTier)
			}
			if got.Fraction != tt.wantFraction {
				t.Errorf("Classify(%d, %d) fraction = %v, want %v", tt.budget, tt.spent, got.Fraction, tt.wantFraction)
			}
		})
	}
}

func TestClassify_FractionBounds(t *testing.T) {
	asOf := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	for spent := Milliunits(0); spent <= 2400; spent += 100 {
		got := Classify(1200, spent, asOf)
		if got.Fraction < 0 || got.Fraction > 100 {
			t.Fatalf("Classify(1200, %d) fraction %v out of [0,100]", spent, got.Fraction)
		}
		wantRed := spent > 1200
		if (got.Tier == TierRed) != wantRed {
			t.Fatalf("Classify(1200, %d) tier = %q, red expected: %v", spent, got.Tier, wantRed)
		}
	}
}
