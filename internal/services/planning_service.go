package services

import (
	"context"
	"fmt"

	"finanzapp/internal/core"
)

// PlanningStore is the persistence surface for budgets and goals.
type PlanningStore interface {
	GetCategory(ctx context.Context, id int64) (core.Category, error)
	CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error)
	ListBudgets(ctx context.Context, year, month int) ([]core.Budget, error)
	CategoryActual(ctx context.Context, categoryID int64, year, month int) (int64, error)
	CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
	ListGoals(ctx context.Context) ([]core.Goal, error)
}

// BudgetReport pairs a budget row with the month's actuals for its category.
type BudgetReport struct {
	Budget         core.Budget `json:"budget"`
	CategoryName   string      `json:"category"`
	ActualCents    int64       `json:"actual_cents"`
	AvailableCents int64       `json:"available_cents"`
}

// PlanningService owns monthly budgets and savings goals.
type PlanningService struct {
	store PlanningStore
}

func NewPlanningService(store PlanningStore) *PlanningService {
	return &PlanningService{store: store}
}

func (s *PlanningService) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	if _, err := s.store.GetCategory(ctx, b.CategoryID); err != nil {
		return core.Budget{}, fmt.Errorf("category %d: %w", b.CategoryID, err)
	}
	return s.store.CreateBudget(ctx, b)
}

// MonthReport returns each budget of the month with the actual movement total
// of its category and the remaining headroom.
func (s *PlanningService) MonthReport(ctx context.Context, year, month int) ([]BudgetReport, error) {
	budgets, err := s.store.ListBudgets(ctx, year, month)
	if err != nil {
		return nil, err
	}

	reports := make([]BudgetReport, 0, len(budgets))
	for _, b := range budgets {
		cat, err := s.store.GetCategory(ctx, b.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("category %d: %w", b.CategoryID, err)
		}
		actual, err := s.store.CategoryActual(ctx, b.CategoryID, year, month)
		if err != nil {
			return nil, err
		}
		reports = append(reports, BudgetReport{
			Budget:         b,
			CategoryName:   cat.Name,
			ActualCents:    actual,
			AvailableCents: b.Available(cat.Kind, actual),
		})
	}
	return reports, nil
}

func (s *PlanningService) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if g.Status == "" {
		g.Status = core.GoalActive
	}
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}
	return s.store.CreateGoal(ctx, g)
}

func (s *PlanningService) ListGoals(ctx context.Context) ([]core.Goal, error) {
	return s.store.ListGoals(ctx)
}
