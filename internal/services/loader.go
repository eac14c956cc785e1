// Package services orchestrates the external fetches into the snapshot the
// dashboard renders from.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"budgetview/internal/cache"
	"budgetview/internal/core"
	applog "budgetview/internal/log"
)

// ErrNoBudgets is returned when the API account has no budgets to show.
var ErrNoBudgets = errors.New("no budgets found")

// BudgetSource is the slice of the budget API the dashboard needs.
type BudgetSource interface {
	Budgets(ctx context.Context) ([]core.Budget, error)
	CategoryGroups(ctx context.Context, budgetID string) ([]core.CategoryGroup, error)
	Transactions(ctx context.Context, budgetID string, since time.Time) ([]core.Transaction, error)
}

// Snapshot is one full load of the external data plus the aggregates derived
// from it. Snapshots are immutable; a reload produces a fresh one.
type Snapshot struct {
	Budget    core.Budget
	Groups    []core.CategoryGroup
	Spending  core.Spending
	FetchedAt time.Time
}

// Loader fetches dashboard data and keeps the latest snapshot in a TTL
// cache, so repeated page loads inside the TTL do not hit the API again.
type Loader struct {
	source       BudgetSource
	snapshots    *cache.LRU[Snapshot]
	fetchTimeout time.Duration
	now          func() time.Time
}

const snapshotKey = "snapshot"

// NewLoader creates a loader over source. ttl bounds how long a fetched
// snapshot is served before the next load refetches; fetchTimeout bounds one
// full fetch cycle, zero means no bound beyond the caller's context.
func NewLoader(source BudgetSource, ttl, fetchTimeout time.Duration) *Loader {
	return &Loader{
		source:       source,
		snapshots:    cache.NewLRU[Snapshot](1, ttl),
		fetchTimeout: fetchTimeout,
		now:          time.Now,
	}
}

// Snapshots exposes the snapshot cache for cleanup registration.
func (l *Loader) Snapshots() cache.Cleaner {
	return l.snapshots
}

// Invalidate drops the cached snapshot so the next Load refetches.
func (l *Loader) Invalidate() {
	l.snapshots.Delete(snapshotKey)
}

// Load returns the current snapshot, fetching from the API when the cache
// is cold. The budget is always the first one the service returns; its
// transactions are fetched from January 1 of the current year.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	if snap, ok := l.snapshots.Get(snapshotKey); ok {
		return snap, nil
	}

	if l.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.fetchTimeout)
		defer cancel()
	}

	start := l.now()

	budgets, err := l.source.Budgets(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch budgets: %w", err)
	}
	if len(budgets) == 0 {
		return Snapshot{}, ErrNoBudgets
	}
	budget := budgets[0]

	since := time.Date(start.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	var (
		groups       []core.CategoryGroup
		transactions []core.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		groups, err = l.source.CategoryGroups(gctx, budget.ID)
		if err != nil {
			return fmt.Errorf("fetch categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		transactions, err = l.source.Transactions(gctx, budget.ID, since)
		if err != nil {
			return fmt.Errorf("fetch transactions: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Budget:    budget,
		Groups:    groups,
		Spending:  core.Aggregate(transactions),
		FetchedAt: l.now(),
	}
	l.snapshots.Set(snapshotKey, snap)

	slog.InfoContext(ctx, "Loaded budget snapshot",
		applog.FieldBudgetID, budget.ID,
		"groups", len(groups),
		"transactions", len(transactions),
		applog.FieldDuration, l.now().Sub(start).Milliseconds(),
	)
	return snap, nil
}
