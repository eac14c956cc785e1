// Package ynab is a read-only client for the slice of the YNAB v1 API the
// dashboard consumes: budgets, category groups, and transactions.
package ynab

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"budgetview/internal/core"
	applog "budgetview/internal/log"
)

// DefaultBaseURL is the production API origin.
const DefaultBaseURL = "https://api.youneedabudget.com/v1"

// APIError reports a non-success response from the budget API.
type APIError struct {
	Endpoint   string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ynab: %s returned status %d", e.Endpoint, e.StatusCode)
}

// ShapeError reports a response body that does not match the documented
// payload shape.
type ShapeError struct {
	Endpoint string
	Detail   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("ynab: unexpected payload from %s: %s", e.Endpoint, e.Detail)
}

// Client calls the API with a bearer token. Safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	hc      *http.Client
}

// NewClient creates a client for the given origin. An empty baseURL selects
// the production API.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		hc:      newPooledHTTPClient(),
	}
}

// newPooledHTTPClient builds an HTTP client with connection pooling and
// conservative timeouts for repeated calls against one API host.
func newPooledHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			DialContext:         dialer.DialContext,
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

// Budgets lists the budgets the token can read.
func (c *Client) Budgets(ctx context.Context) ([]core.Budget, error) {
	var env budgetsEnvelope
	if err := c.get(ctx, "/budgets", &env); err != nil {
		return nil, err
	}
	if env.Data.Budgets == nil {
		return nil, &ShapeError{Endpoint: "/budgets", Detail: "missing data.budgets"}
	}

	budgets := make([]core.Budget, 0, len(env.Data.Budgets))
	for _, b := range env.Data.Budgets {
		if b.ID == "" {
			return nil, &ShapeError{Endpoint: "/budgets", Detail: "budget without id"}
		}
		budgets = append(budgets, core.Budget{ID: b.ID, Name: b.Name})
	}

	slog.DebugContext(ctx, "Fetched budgets", applog.FieldEndpoint, "/budgets", applog.FieldCount, len(budgets))
	return budgets, nil
}

// CategoryGroups lists the category groups of one budget, in API order.
func (c *Client) CategoryGroups(ctx context.Context, budgetID string) ([]core.CategoryGroup, error) {
	endpoint := "/budgets/" + url.PathEscape(budgetID) + "/categories"

	var env categoriesEnvelope
	if err := c.get(ctx, endpoint, &env); err != nil {
		return nil, err
	}
	if env.Data.CategoryGroups == nil {
		return nil, &ShapeError{Endpoint: endpoint, Detail: "missing data.category_groups"}
	}

	groups := make([]core.CategoryGroup, 0, len(env.Data.CategoryGroups))
	for _, g := range env.Data.CategoryGroups {
		group := core.CategoryGroup{
			Name:       g.Name,
			Categories: make([]core.Category, 0, len(g.Categories)),
		}
		for _, cat := range g.Categories {
			if cat.ID == "" {
				return nil, &ShapeError{Endpoint: endpoint, Detail: "category without id in group " + g.Name}
			}
			var target core.Milliunits
			if cat.GoalTarget != nil {
				target = core.Milliunits(*cat.GoalTarget)
			}
			group.Categories = append(group.Categories, core.Category{
				ID:           cat.ID,
				Name:         cat.Name,
				YearlyTarget: target,
			})
		}
		groups = append(groups, group)
	}

	slog.DebugContext(ctx, "Fetched category groups",
		applog.FieldEndpoint, endpoint, applog.FieldBudgetID, budgetID, applog.FieldCount, len(groups))
	return groups, nil
}

// Transactions lists a budget's transactions on or after since.
func (c *Client) Transactions(ctx context.Context, budgetID string, since time.Time) ([]core.Transaction, error) {
	endpoint := "/budgets/" + url.PathEscape(budgetID) + "/transactions"
	query := "?since_date=" + since.Format("2006-01-02")

	var env transactionsEnvelope
	if err := c.get(ctx, endpoint+query, &env); err != nil {
		return nil, err
	}
	if env.Data.Transactions == nil {
		return nil, &ShapeError{Endpoint: endpoint, Detail: "missing data.transactions"}
	}

	transactions := make([]core.Transaction, 0, len(env.Data.Transactions))
	for _, tx := range env.Data.Transactions {
		date, err := core.ParseDate(tx.Date)
		if err != nil {
			return nil, &ShapeError{Endpoint: endpoint, Detail: fmt.Sprintf("transaction %s has invalid date %q", tx.ID, tx.Date)}
		}
		t := core.Transaction{
			ID:     tx.ID,
			Date:   date,
			Amount: core.Milliunits(tx.Amount),
		}
		if tx.CategoryID != nil {
			t.CategoryID = *tx.CategoryID
		}
		if tx.PayeeName != nil {
			t.Payee = *tx.PayeeName
		}
		transactions = append(transactions, t)
	}

	slog.DebugContext(ctx, "Fetched transactions",
		applog.FieldEndpoint, endpoint, applog.FieldBudgetID, budgetID, applog.FieldCount, len(transactions))
	return transactions, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("ynab: build request for %s: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("ynab: call %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Endpoint: pathOnly(endpoint), StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ShapeError{Endpoint: pathOnly(endpoint), Detail: err.Error()}
	}
	return nil
}

// pathOnly strips the query string from an endpoint for error reporting.
func pathOnly(endpoint string) string {
	if u, err := url.Parse(endpoint); err == nil {
		return u.Path
	}
	return endpoint
}
