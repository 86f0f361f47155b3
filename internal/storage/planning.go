package storage

import (
	"context"
	"fmt"
	"time"

	"finanzapp/internal/core"
)

func (r *Repository) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	b.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (category_id, year, month, budgeted_cents, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.CategoryID, b.Year, b.Month, b.BudgetedCents, b.Notes, fmtTime(b.CreatedAt))
	if err != nil {
		return core.Budget{}, fmt.Errorf("insert budget: %w", err)
	}
	b.ID, _ = res.LastInsertId()
	return b, nil
}

func (r *Repository) ListBudgets(ctx context.Context, year, month int) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT b.id, b.category_id, b.year, b.month, b.budgeted_cents, b.notes, b.created_at
		 FROM budgets b JOIN categories c ON c.id = b.category_id
		 WHERE b.year = ? AND b.month = ?
		 ORDER BY c.name`, year, month)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var b core.Budget
		var created string
		if err := rows.Scan(&b.ID, &b.CategoryID, &b.Year, &b.Month, &b.BudgetedCents, &b.Notes, &created); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.CreatedAt = parseTime(created)
		out = append(out, b)
	}
	return out, rows.Err()
}

// CategoryActual sums the movements of one category in one month, any kind.
func (r *Repository) CategoryActual(ctx context.Context, categoryID int64, year, month int) (int64, error) {
	from, to := monthBounds(year, month)
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM movements
		 WHERE category_id = ? AND date >= ? AND date < ?`,
		categoryID, from, to).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum category actual: %w", err)
	}
	return total, nil
}

func (r *Repository) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	if g.Status == "" {
		g.Status = core.GoalActive
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (name, description, kind, target_cents, current_cents,
		   start_date, target_date, status, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.Name, g.Description, g.Kind, g.TargetCents, g.CurrentCents,
		fmtDate(g.StartDate), fmtDate(g.TargetDate), g.Status, g.Notes, fmtTime(now), fmtTime(now))
	if err != nil {
		return core.Goal{}, fmt.Errorf("insert goal: %w", err)
	}
	g.ID, _ = res.LastInsertId()
	return g, nil
}

func (r *Repository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, kind, target_cents, current_cents,
		   start_date, target_date, status, notes, created_at, updated_at
		 FROM goals ORDER BY target_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var g core.Goal
		var start, target, created, updated string
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.Kind, &g.TargetCents, &g.CurrentCents,
			&start, &target, &g.Status, &g.Notes, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.StartDate = parseDate(start)
		g.TargetDate = parseDate(target)
		g.CreatedAt = parseTime(created)
		g.UpdatedAt = parseTime(updated)
		out = append(out, g)
	}
	return out, rows.Err()
}
