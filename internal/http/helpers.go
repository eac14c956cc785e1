package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	applog "budgetview/internal/log"
	"budgetview/internal/services"
	"budgetview/internal/ynab"
)

// writeJSON renders v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed encoding JSON response", applog.FieldError, err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeLoadError maps a snapshot load failure onto one terminal response.
// Upstream problems are bad-gateway; only a genuine local fault is a 500.
func writeLoadError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	var apiErr *ynab.APIError
	var shapeErr *ynab.ShapeError
	switch {
	case errors.Is(err, services.ErrNoBudgets),
		errors.As(err, &apiErr),
		errors.As(err, &shapeErr):
		status = http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}

	slog.ErrorContext(r.Context(), "Dashboard load failed", applog.FieldError, err, applog.FieldStatus, status)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// selectedGroup reads the drill-down group from the query string; empty
// means the group-level overview.
func selectedGroup(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("group"))
}

// categoryIDFromPath extracts {id} from /api/categories/{id}/transactions.
func categoryIDFromPath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/api/categories/")
	if !ok {
		return "", false
	}
	id, ok := strings.CutSuffix(rest, "/transactions")
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
