package storage

import (
	"context"
	"fmt"

	"finanzapp/internal/core"
)

// Aggregate queries backing the dashboard. Everything recomputes from raw
// rows on every call; there is no cached or incrementally maintained state.

func (r *Repository) CountActiveDebtors(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM debtors WHERE active = 1`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active debtors: %w", err)
	}
	return n, nil
}

func (r *Repository) CountActiveCreditors(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM creditors WHERE active = 1`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active creditors: %w", err)
	}
	return n, nil
}

// SumOpenDebtBalances totals outstanding balances of debts still owed to the
// user (status pending, overdue or partial).
func (r *Repository) SumOpenDebtBalances(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(balance_cents), 0) FROM debts
		 WHERE status IN ('pending', 'overdue', 'partial')`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum open debt balances: %w", err)
	}
	return total, nil
}

// SumOpenUserDebtBalances totals outstanding balances the user still owes.
func (r *Repository) SumOpenUserDebtBalances(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(balance_cents), 0) FROM user_debts
		 WHERE status IN ('pending', 'overdue', 'partial')`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum open user debt balances: %w", err)
	}
	return total, nil
}

// SumMovements totals movement amounts of one kind within a calendar month.
func (r *Repository) SumMovements(ctx context.Context, kind core.MovementKind, year, month int) (int64, error) {
	from, to := monthBounds(year, month)
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM movements
		 WHERE kind = ? AND date >= ? AND date < ?`, kind, from, to).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum %s movements: %w", kind, err)
	}
	return total, nil
}

// CountPastDueDebts counts debts past their due date whose status is still
// pending or overdue.
func (r *Repository) CountPastDueDebts(ctx context.Context, today core.Date) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM debts
		 WHERE status IN ('pending', 'overdue') AND due_date < ?`, fmtDate(today)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count past-due debts: %w", err)
	}
	return n, nil
}

func (r *Repository) CountPastDueUserDebts(ctx context.Context, today core.Date) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_debts
		 WHERE status IN ('pending', 'overdue') AND due_date < ?`, fmtDate(today)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count past-due user debts: %w", err)
	}
	return n, nil
}

// TopExpenseCategories returns the top-n categories by summed expense amount
// within a calendar month, descending.
func (r *Repository) TopExpenseCategories(ctx context.Context, year, month, n int) ([]core.CategoryAmount, error) {
	from, to := monthBounds(year, month)
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.name, SUM(m.amount_cents) AS total
		 FROM movements m JOIN categories c ON c.id = m.category_id
		 WHERE m.kind = 'expense' AND m.date >= ? AND m.date < ?
		 GROUP BY c.name ORDER BY total DESC LIMIT ?`, from, to, n)
	if err != nil {
		return nil, fmt.Errorf("top expense categories: %w", err)
	}
	defer rows.Close()

	var out []core.CategoryAmount
	for rows.Next() {
		var ca core.CategoryAmount
		if err := rows.Scan(&ca.Name, &ca.AmountCents); err != nil {
			return nil, fmt.Errorf("scan category amount: %w", err)
		}
		out = append(out, ca)
	}
	return out, rows.Err()
}
