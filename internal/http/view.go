package http

import (
	"time"

	"budgetview/internal/core"
	"budgetview/internal/services"
)

// View models shared by the JSON API and the HTML template. Raw milliunit
// values travel next to their formatted display strings so API consumers
// can do their own math.

type (
	chartPointView struct {
		Name    string          `json:"name"`
		Value   core.Milliunits `json:"value"`
		Display string          `json:"display"`
	}

	categoryView struct {
		ID            string          `json:"id"`
		Name          string          `json:"name"`
		YearlyBudget  core.Milliunits `json:"yearly_budget"`
		BudgetDisplay string          `json:"budget_display"`
		YTDSpent      core.Milliunits `json:"ytd_spent"`
		SpentDisplay  string          `json:"spent_display"`
		Tier          core.Tier       `json:"tier"`
		Fraction      float64         `json:"fraction"`
	}

	groupView struct {
		Name          string          `json:"name"`
		YearlyBudget  core.Milliunits `json:"yearly_budget"`
		BudgetDisplay string          `json:"budget_display"`
		BudgetShare   float64         `json:"budget_share"`
		YTDSpent      core.Milliunits `json:"ytd_spent"`
		SpentDisplay  string          `json:"spent_display"`
		Categories    []categoryView  `json:"categories"`
	}

	dashboardView struct {
		BudgetID      string           `json:"budget_id"`
		BudgetName    string           `json:"budget_name"`
		SelectedGroup string           `json:"selected_group,omitempty"`
		TotalBudget   core.Milliunits  `json:"total_yearly_budget"`
		TotalDisplay  string           `json:"total_display"`
		Chart         []chartPointView `json:"chart"`
		Groups        []groupView      `json:"groups"`
		FetchedAt     time.Time        `json:"fetched_at"`
	}

	transactionView struct {
		ID      string          `json:"id"`
		Date    string          `json:"date"`
		Payee   string          `json:"payee,omitempty"`
		Amount  core.Milliunits `json:"amount"`
		Display string          `json:"display"`
	}
)

// dashboardView derives the full view model from a snapshot. The summary is
// recomputed on every request; selection state lives in the request alone.
func (s *Server) dashboardView(snap services.Snapshot, selected string) dashboardView {
	summary := core.Summarize(snap.Groups, snap.Spending.ByCategory, s.excludedGroups, selected, s.now())

	view := dashboardView{
		BudgetID:      snap.Budget.ID,
		BudgetName:    snap.Budget.Name,
		SelectedGroup: selected,
		TotalBudget:   summary.TotalYearlyBudget,
		TotalDisplay:  s.formatter.Format(summary.TotalYearlyBudget),
		Chart:         make([]chartPointView, 0, len(summary.ChartData)),
		Groups:        make([]groupView, 0, len(summary.Groups)),
		FetchedAt:     snap.FetchedAt,
	}

	for _, p := range summary.ChartData {
		view.Chart = append(view.Chart, chartPointView{
			Name:    p.Name,
			Value:   p.Value,
			Display: s.formatter.Format(p.Value),
		})
	}

	for _, g := range summary.Groups {
		gv := groupView{
			Name:          g.Name,
			YearlyBudget:  g.YearlyBudget,
			BudgetDisplay: s.formatter.Format(g.YearlyBudget),
			BudgetShare:   g.BudgetShare,
			YTDSpent:      g.YTDSpent,
			SpentDisplay:  s.formatter.Format(g.YTDSpent),
			Categories:    make([]categoryView, 0, len(g.Categories)),
		}
		for _, c := range g.Categories {
			gv.Categories = append(gv.Categories, categoryView{
				ID:            c.ID,
				Name:          c.Name,
				YearlyBudget:  c.YearlyBudget,
				BudgetDisplay: s.formatter.Format(c.YearlyBudget),
				YTDSpent:      c.YTDSpent,
				SpentDisplay:  s.formatter.Format(c.YTDSpent),
				Tier:          c.Status.Tier,
				Fraction:      c.Status.Fraction,
			})
		}
		view.Groups = append(view.Groups, gv)
	}

	return view
}
