package storage

import (
	"context"
	"fmt"
	"time"

	"finanzapp/internal/core"
)

const debtCols = `id, debtor_id, concept, original_cents, balance_cents, loan_date, due_date,
	plan, deferred_months, interest_rate, status, notes, created_at, updated_at`

func scanDebt(row interface{ Scan(...any) error }) (core.Debt, error) {
	var d core.Debt
	var loan, due, created, updated string
	err := row.Scan(&d.ID, &d.DebtorID, &d.Concept, &d.OriginalCents, &d.BalanceCents,
		&loan, &due, &d.Plan, &d.DeferredMonths, &d.InterestRate, &d.Status, &d.Notes,
		&created, &updated)
	if err != nil {
		return core.Debt{}, err
	}
	d.LoanDate = parseDate(loan)
	d.DueDate = parseDate(due)
	d.CreatedAt = parseTime(created)
	d.UpdatedAt = parseTime(updated)
	return d, nil
}

// CreateDebt inserts a debt. The balance always starts at the original amount
// regardless of what the caller sent.
func (r *Repository) CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	now := time.Now().UTC()
	d.BalanceCents = d.OriginalCents
	d.CreatedAt = now
	d.UpdatedAt = now
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO debts (debtor_id, concept, original_cents, balance_cents, loan_date, due_date,
		   plan, deferred_months, interest_rate, status, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.DebtorID, d.Concept, d.OriginalCents, d.BalanceCents, fmtDate(d.LoanDate), fmtDate(d.DueDate),
		d.Plan, d.DeferredMonths, d.InterestRate, d.Status, d.Notes, fmtTime(now), fmtTime(now))
	if err != nil {
		return core.Debt{}, fmt.Errorf("insert debt: %w", err)
	}
	d.ID, _ = res.LastInsertId()
	return d, nil
}

func (r *Repository) GetDebt(ctx context.Context, id int64) (core.Debt, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+debtCols+` FROM debts WHERE id = ?`, id)
	d, err := scanDebt(row)
	if err != nil {
		return core.Debt{}, mapNotFound(err, "debt")
	}
	return d, nil
}

func (r *Repository) ListDebts(ctx context.Context) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+debtCols+` FROM debts ORDER BY loan_date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	defer rows.Close()

	var out []core.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repository) ListDebtsByDebtor(ctx context.Context, debtorID int64) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+debtCols+` FROM debts WHERE debtor_id = ? ORDER BY loan_date DESC, id DESC`, debtorID)
	if err != nil {
		return nil, fmt.Errorf("list debts by debtor: %w", err)
	}
	defer rows.Close()

	var out []core.Debt
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateDebt(ctx context.Context, d core.Debt) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE debts SET concept = ?, due_date = ?, plan = ?, deferred_months = ?,
		   interest_rate = ?, status = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		d.Concept, fmtDate(d.DueDate), d.Plan, d.DeferredMonths,
		d.InterestRate, d.Status, d.Notes, fmtTime(time.Now().UTC()), d.ID)
	if err != nil {
		return fmt.Errorf("update debt: %w", err)
	}
	return requireRow(res, "debt")
}

func (r *Repository) DeleteDebt(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM debts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete debt: %w", err)
	}
	return requireRow(res, "debt")
}

func (r *Repository) CreateDebtPayment(ctx context.Context, p core.DebtPayment) (core.DebtPayment, error) {
	p.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO debt_payments (debt_id, amount_cents, paid_on, method, receipt, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.DebtID, p.AmountCents, fmtDate(p.PaidOn), p.Method, p.Receipt, p.Notes, fmtTime(p.CreatedAt))
	if err != nil {
		return core.DebtPayment{}, fmt.Errorf("insert debt payment: %w", err)
	}
	p.ID, _ = res.LastInsertId()
	return p, nil
}

func (r *Repository) ListDebtPayments(ctx context.Context, debtID int64) ([]core.DebtPayment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, debt_id, amount_cents, paid_on, method, receipt, notes, created_at
		 FROM debt_payments WHERE debt_id = ? ORDER BY paid_on DESC, id DESC`, debtID)
	if err != nil {
		return nil, fmt.Errorf("list debt payments: %w", err)
	}
	defer rows.Close()

	var out []core.DebtPayment
	for rows.Next() {
		var p core.DebtPayment
		var paid, created string
		if err := rows.Scan(&p.ID, &p.DebtID, &p.AmountCents, &paid, &p.Method,
			&p.Receipt, &p.Notes, &created); err != nil {
			return nil, fmt.Errorf("scan debt payment: %w", err)
		}
		p.PaidOn = parseDate(paid)
		p.CreatedAt = parseTime(created)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) CreateInstallment(ctx context.Context, in core.Installment) (core.Installment, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO installments (debt_id, number, amount_cents, due_date, paid, paid_on)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		in.DebtID, in.Number, in.AmountCents, fmtDate(in.DueDate), in.Paid, fmtDatePtr(in.PaidOn))
	if err != nil {
		return core.Installment{}, fmt.Errorf("insert installment: %w", err)
	}
	in.ID, _ = res.LastInsertId()
	return in, nil
}

func (r *Repository) ListInstallments(ctx context.Context, debtID int64) ([]core.Installment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, debt_id, number, amount_cents, due_date, paid, paid_on
		 FROM installments WHERE debt_id = ? ORDER BY number`, debtID)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()

	var out []core.Installment
	for rows.Next() {
		var in core.Installment
		var due string
		var paidOn *string
		if err := rows.Scan(&in.ID, &in.DebtID, &in.Number, &in.AmountCents, &due, &in.Paid, &paidOn); err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		in.DueDate = parseDate(due)
		if paidOn != nil {
			d := parseDate(*paidOn)
			in.PaidOn = &d
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
