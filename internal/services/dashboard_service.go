package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"finanzapp/internal/core"
)

const (
	recentMovementsLimit = 10
	chartMonths          = 6
	topCategoriesLimit   = 5
)

// DashboardStore is the aggregate-query surface the dashboard needs.
type DashboardStore interface {
	CountActiveDebtors(ctx context.Context) (int64, error)
	CountActiveCreditors(ctx context.Context) (int64, error)
	SumOpenDebtBalances(ctx context.Context) (int64, error)
	SumOpenUserDebtBalances(ctx context.Context) (int64, error)
	SumMovements(ctx context.Context, kind core.MovementKind, year, month int) (int64, error)
	CountPastDueDebts(ctx context.Context, today core.Date) (int64, error)
	CountPastDueUserDebts(ctx context.Context, today core.Date) (int64, error)
	TopExpenseCategories(ctx context.Context, year, month, n int) ([]core.CategoryAmount, error)
	ListMovements(ctx context.Context, limit int) ([]core.Movement, error)
}

// DashboardService recomputes the summary numbers and chart series from raw
// rows on every call.
type DashboardService struct {
	store DashboardStore
	today func() core.Date
}

func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{store: store, today: core.Today}
}

// Stats runs the eight independent aggregate queries concurrently and fails
// as a unit if any of them does.
func (s *DashboardService) Stats(ctx context.Context) (core.DashboardStats, error) {
	today := s.today()
	year, month := today.Year(), int(today.Month())

	var stats core.DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.ActiveDebtors, err = s.store.CountActiveDebtors(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ReceivableCents, err = s.store.SumOpenDebtBalances(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ActiveCreditors, err = s.store.CountActiveCreditors(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.PayableCents, err = s.store.SumOpenUserDebtBalances(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.MonthIncomeCents, err = s.store.SumMovements(gctx, core.Income, year, month)
		return err
	})
	g.Go(func() (err error) {
		stats.MonthExpenseCents, err = s.store.SumMovements(gctx, core.Expense, year, month)
		return err
	})
	g.Go(func() (err error) {
		stats.OverdueDebts, err = s.store.CountPastDueDebts(gctx, today)
		return err
	})
	g.Go(func() (err error) {
		stats.OverdueUserDebts, err = s.store.CountPastDueUserDebts(gctx, today)
		return err
	})

	if err := g.Wait(); err != nil {
		return core.DashboardStats{}, fmt.Errorf("dashboard stats: %w", err)
	}
	return stats, nil
}

// RecentMovements returns the latest movements, newest first.
func (s *DashboardService) RecentMovements(ctx context.Context) ([]core.Movement, error) {
	return s.store.ListMovements(ctx, recentMovementsLimit)
}

// Charts builds the trailing six-calendar-month income/expense series
// (oldest bucket first, current month last) and the current month's top
// expense categories.
func (s *DashboardService) Charts(ctx context.Context) (core.DashboardCharts, error) {
	today := s.today()
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	flows := make([]core.MonthFlow, chartMonths)
	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < chartMonths; i++ {
		bucket := firstOfMonth.AddDate(0, -(chartMonths - 1 - i), 0)
		idx := i
		year, month := bucket.Year(), int(bucket.Month())
		g.Go(func() error {
			income, err := s.store.SumMovements(gctx, core.Income, year, month)
			if err != nil {
				return err
			}
			expense, err := s.store.SumMovements(gctx, core.Expense, year, month)
			if err != nil {
				return err
			}
			flows[idx] = core.MonthFlow{Year: year, Month: month, IncomeCents: income, ExpenseCents: expense}
			return nil
		})
	}

	var top []core.CategoryAmount
	g.Go(func() (err error) {
		top, err = s.store.TopExpenseCategories(gctx, today.Year(), int(today.Month()), topCategoriesLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return core.DashboardCharts{}, fmt.Errorf("dashboard charts: %w", err)
	}
	return core.DashboardCharts{Flows: flows, TopCategories: top}, nil
}
