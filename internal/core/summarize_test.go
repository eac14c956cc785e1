package core

import (
	"reflect"
	"testing"
	"time"
)

var summarizeAsOf = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

func testGroups() []CategoryGroup {
	return []CategoryGroup{
		{
			Name: "Housing",
			Categories: []Category{
				{ID: "rent", Name: "Rent", YearlyTarget: 12000000},
				{ID: "utils", Name: "Utilities", YearlyTarget: 2400000},
			},
		},
		{
			Name: "Food",
			Categories: []Category{
				{ID: "groceries", Name: "Groceries", YearlyTarget: 3600000},
				{ID: "dining", Name: "Dining Out", YearlyTarget: 3600000},
				{ID: "snacks", Name: "Snacks", YearlyTarget: 6000000},
			},
		},
		{
			Name: "Hidden Categories: Misc",
			Categories: []Category{
				{ID: "old", Name: "Old Stuff", YearlyTarget: 9999000},
			},
		},
	}
}

func TestSummarize_ExclusionAppliesEverywhere(t *testing.T) {
	spend := map[string]Milliunits{"rent": 6000000, "old": 500000}
	got := Summarize(testGroups(), spend, []string{"Hidden Categories"}, "", summarizeAsOf)

	// 12000000+2400000+3600000+3600000+6000000; the hidden group counts
	// toward nothing.
	if got.TotalYearlyBudget != 27600000 {
		t.Errorf("TotalYearlyBudget = %d, want 27600000", got.TotalYearlyBudget)
	}

	if len(got.Groups) != 2 {
		t.Fatalf("group rows = %d, want 2", len(got.Groups))
	}
	for _, row := range got.Groups {
		if row.Name == "Hidden Categories: Misc" {
			t.Error("excluded group present in table rows")
		}
	}

	wantChart := []ChartPoint{
		{Name: "Housing", Value: 14400000},
		{Name: "Food", Value: 13200000},
	}
	if !reflect.DeepEqual(got.ChartData, wantChart) {
		t.Errorf("ChartData = %v, want %v", got.ChartData, wantChart)
	}
}

func TestSummarize_GroupRows(t *testing.T) {
	spend := map[string]Milliunits{
		"rent":      7000000,
		"groceries": 1500000,
		"dining":    200000,
	}
	got := Summarize(testGroups(), spend, []string{"Hidden Categories"}, "", summarizeAsOf)

	housing := got.Groups[0]
	if housing.Name != "Housing" {
		t.Fatalf("first group = %q, want Housing", housing.Name)
	}
	if housing.YTDSpent != 7000000 {
		t.Errorf("Housing YTDSpent = %d, want 7000000", housing.YTDSpent)
	}
	// 14400000 / 27600000 = 52.17...% -> one decimal place.
	if housing.BudgetShare != 52.2 {
		t.Errorf("Housing BudgetShare = %v, want 52.2", housing.BudgetShare)
	}

	food := got.Groups[1]
	// Sorted by yearly target descending, ties keep source order.
	wantOrder := []string{"snacks", "groceries", "dining"}
	for i, want := range wantOrder {
		if food.Categories[i].ID != want {
			t.Errorf("food category %d = %q, want %q", i, food.Categories[i].ID, want)
		}
	}

	for _, c := range food.Categories {
		if c.Status.Tier == "" {
			t.Errorf("category %q missing status", c.ID)
		}
	}
}

func TestSummarize_SelectedGroupChart(t *testing.T) {
	got := Summarize(testGroups(), nil, []string{"Hidden Categories"}, "Food", summarizeAsOf)

	wantChart := []ChartPoint{
		{Name: "Groceries", Value: 3600000},
		{Name: "Dining Out", Value: 3600000},
		{Name: "Snacks", Value: 6000000},
	}
	if !reflect.DeepEqual(got.ChartData, wantChart) {
		t.Errorf("ChartData = %v, want %v", got.ChartData, wantChart)
	}

	// Table rows still cover every visible group.
	if len(got.Groups) != 2 {
		t.Errorf("group rows = %d, want 2", len(got.Groups))
	}

	// An unknown or excluded selection yields an empty chart, not a panic.
	got = Summarize(testGroups(), nil, []string{"Hidden Categories"}, "Hidden Categories: Misc", summarizeAsOf)
	if len(got.ChartData) != 0 {
		t.Errorf("chart for excluded selection = %v, want empty", got.ChartData)
	}
}

func TestSummarize_ZeroTotalBudget(t *testing.T) {
	groups := []CategoryGroup{
		{Name: "Empty", Categories: []Category{{ID: "a", Name: "A"}}},
	}
	got := Summarize(groups, map[string]Milliunits{"a": 100}, nil, "", summarizeAsOf)

	if got.TotalYearlyBudget != 0 {
		t.Fatalf("TotalYearlyBudget = %d, want 0", got.TotalYearlyBudget)
	}
	for _, row := range got.Groups {
		if row.BudgetShare != 0 {
			t.Errorf("group %q BudgetShare = %v, want 0", row.Name, row.BudgetShare)
		}
	}
}

func TestSummarize_NegativeTargetsClamped(t *testing.T) {
	groups := []CategoryGroup{
		{Name: "G", Categories: []Category{
			{ID: "a", Name: "A", YearlyTarget: -5000},
			{ID: "b", Name: "B", YearlyTarget: 1000},
		}},
	}
	got := Summarize(groups, nil, nil, "", summarizeAsOf)
	if got.TotalYearlyBudget != 1000 {
		t.Errorf("TotalYearlyBudget = %d, want 1000", got.TotalYearlyBudget)
	}
	if got.Groups[0].Categories[1].YearlyBudget != 0 {
		t.Errorf("negative target not clamped: %+v", got.Groups[0].Categories[1])
	}
}

func TestSummarize_IdempotentAndNonMutating(t *testing.T) {
	groups := testGroups()
	spend := map[string]Milliunits{"rent": 7000000, "snacks": 100000}
	excluded := []string{"Hidden Categories"}

	groupsBefore := make([]CategoryGroup, len(groups))
	copy(groupsBefore, groups)
	for i := range groupsBefore {
		groupsBefore[i].Categories = append([]Category(nil), groups[i].Categories...)
	}
	spendBefore := make(map[string]Milliunits, len(spend))
	for k, v := range spend {
		spendBefore[k] = v
	}

	first := Summarize(groups, spend, excluded, "Food", summarizeAsOf)
	second := Summarize(groups, spend, excluded, "Food", summarizeAsOf)

	if !reflect.DeepEqual(first, second) {
		t.Error("repeated Summarize calls differ")
	}
	if !reflect.DeepEqual(groups, groupsBefore) {
		t.Error("Summarize mutated its groups argument")
	}
	if !reflect.DeepEqual(spend, spendBefore) {
		t.Error("Summarize mutated its spend argument")
	}
}
