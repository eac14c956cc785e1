package http

import (
	"log/slog"
	"net/http"
	"sort"

	applog "budgetview/internal/log"
)

// handleDashboardPage renders the HTML overview page.
func (s *Server) handleDashboardPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded")
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	snap, err := s.loader.Load(r.Context())
	if err != nil {
		writeLoadError(w, r, err)
		return
	}

	view := s.dashboardView(snap, selectedGroup(r))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard_page", view); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard template execution failed", applog.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleDashboardAPI returns the dashboard dataset as JSON. The optional
// ?group= parameter switches the chart to that group's categories.
func (s *Server) handleDashboardAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snap, err := s.loader.Load(r.Context())
	if err != nil {
		writeLoadError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s.dashboardView(snap, selectedGroup(r)))
}

// handleCategoryTransactions returns one category's transactions, newest
// first, for the expanded table row.
func (s *Server) handleCategoryTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	categoryID, ok := categoryIDFromPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	snap, err := s.loader.Load(r.Context())
	if err != nil {
		writeLoadError(w, r, err)
		return
	}

	transactions := snap.Spending.TransactionsByCategory[categoryID]
	views := make([]transactionView, 0, len(transactions))
	for _, tx := range transactions {
		views = append(views, transactionView{
			ID:      tx.ID,
			Date:    tx.Date.String(),
			Payee:   tx.Payee,
			Amount:  tx.Amount,
			Display: s.formatter.Format(tx.Amount),
		})
	}
	// Display order only; the aggregates keep insertion order.
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Date > views[j].Date
	})

	slog.DebugContext(r.Context(), "Served category transactions",
		applog.FieldCategory, categoryID, applog.FieldCount, len(views))
	writeJSON(w, http.StatusOK, views)
}

// handleRefresh drops the cached snapshot so the next load refetches.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s.loader.Invalidate()
	s.chartCache.Clear()
	slog.InfoContext(r.Context(), "Snapshot invalidated")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	metrics := s.tracer.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"total_requests":  metrics.TotalRequests,
		"avg_response_us": metrics.AverageResponseTime,
	})
}
