package core

import (
	"math"
	"sort"
	"strings"
	"time"
)

type (
	// ChartPoint is one labeled slice of the overview pie chart.
	ChartPoint struct {
		Name  string     `json:"name"`
		Value Milliunits `json:"value"`
	}

	// CategoryRow is one category line of the drill-down table.
	CategoryRow struct {
		ID           string         `json:"id"`
		Name         string         `json:"name"`
		YearlyBudget Milliunits     `json:"yearly_budget"`
		YTDSpent     Milliunits     `json:"ytd_spent"`
		Status       SpendingStatus `json:"status"`
	}

	// GroupRow is one category group of the overview table, with its
	// categories ordered by yearly target, largest first.
	GroupRow struct {
		Name         string        `json:"name"`
		YearlyBudget Milliunits    `json:"yearly_budget"`
		BudgetShare  float64       `json:"budget_share"`
		YTDSpent     Milliunits    `json:"ytd_spent"`
		Categories   []CategoryRow `json:"categories"`
	}

	// Summary is the chart- and table-ready view of one budget year.
	Summary struct {
		TotalYearlyBudget Milliunits   `json:"total_yearly_budget"`
		ChartData         []ChartPoint `json:"chart_data"`
		Groups            []GroupRow   `json:"groups"`
	}
)

// Summarize combines category groups with per-category spending into the
// dashboard dataset. Groups whose name contains any entry of excludedGroups
// are dropped from the total, the chart, and the table alike. When
// selectedGroup names a visible group, the chart breaks that group down by
// category instead of showing one slice per group; the table always covers
// every visible group.
//
// The inputs are never mutated and the result depends only on the arguments,
// so a caller may re-run Summarize on every UI state change.
func Summarize(groups []CategoryGroup, spendByCategory map[string]Milliunits, excludedGroups []string, selectedGroup string, asOf time.Time) Summary {
	visible := make([]CategoryGroup, 0, len(groups))
	for _, g := range groups {
		if !excluded(g.Name, excludedGroups) {
			visible = append(visible, g)
		}
	}

	var total Milliunits
	for _, g := range visible {
		total += groupTarget(g)
	}

	summary := Summary{
		TotalYearlyBudget: total,
		ChartData:         chartData(visible, selectedGroup),
		Groups:            make([]GroupRow, 0, len(visible)),
	}

	for _, g := range visible {
		row := GroupRow{
			Name:         g.Name,
			YearlyBudget: groupTarget(g),
			Categories:   make([]CategoryRow, 0, len(g.Categories)),
		}
		row.BudgetShare = share(row.YearlyBudget, total)

		for _, c := range g.Categories {
			spent := spendByCategory[c.ID]
			row.YTDSpent += spent
			row.Categories = append(row.Categories, CategoryRow{
				ID:           c.ID,
				Name:         c.Name,
				YearlyBudget: clampTarget(c.YearlyTarget),
				YTDSpent:     spent,
				Status:       Classify(c.YearlyTarget, spent, asOf),
			})
		}

		// Stable, so categories with equal targets keep source order.
		sort.SliceStable(row.Categories, func(i, j int) bool {
			return row.Categories[i].YearlyBudget > row.Categories[j].YearlyBudget
		})

		summary.Groups = append(summary.Groups, row)
	}

	return summary
}

// excluded reports whether a group name matches the exclusion list by
// case-sensitive substring containment.
func excluded(name string, excludedGroups []string) bool {
	for _, e := range excludedGroups {
		if e != "" && strings.Contains(name, e) {
			return true
		}
	}
	return false
}

func groupTarget(g CategoryGroup) Milliunits {
	var sum Milliunits
	for _, c := range g.Categories {
		sum += clampTarget(c.YearlyTarget)
	}
	return sum
}

// chartData returns one point per visible group, or one point per category
// of the selected group when a drill-down is active.
func chartData(visible []CategoryGroup, selectedGroup string) []ChartPoint {
	if selectedGroup != "" {
		for _, g := range visible {
			if g.Name != selectedGroup {
				continue
			}
			points := make([]ChartPoint, 0, len(g.Categories))
			for _, c := range g.Categories {
				points = append(points, ChartPoint{Name: c.Name, Value: clampTarget(c.YearlyTarget)})
			}
			return points
		}
		return []ChartPoint{}
	}

	points := make([]ChartPoint, 0, len(visible))
	for _, g := range visible {
		points = append(points, ChartPoint{Name: g.Name, Value: groupTarget(g)})
	}
	return points
}

// share is part/total as a percentage rounded to one decimal place.
// A zero total yields 0, never NaN or Inf.
func share(part, total Milliunits) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
