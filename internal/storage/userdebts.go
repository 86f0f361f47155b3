package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"finanzapp/internal/core"
)

const userDebtCols = `id, creditor_id, account_number, kind, concept, original_cents, balance_cents,
	interest_rate, contract_date, due_date, monthly_payment_cents, term_months,
	priority, status, notes, created_at, updated_at`

func scanUserDebt(row interface{ Scan(...any) error }) (core.UserDebt, error) {
	var d core.UserDebt
	var contract, due, created, updated string
	err := row.Scan(&d.ID, &d.CreditorID, &d.AccountNumber, &d.Kind, &d.Concept,
		&d.OriginalCents, &d.BalanceCents, &d.InterestRate, &contract, &due,
		&d.MonthlyPaymentCents, &d.TermMonths, &d.Priority, &d.Status, &d.Notes,
		&created, &updated)
	if err != nil {
		return core.UserDebt{}, err
	}
	d.ContractDate = parseDate(contract)
	d.DueDate = parseDate(due)
	d.CreatedAt = parseTime(created)
	d.UpdatedAt = parseTime(updated)
	return d, nil
}

// CreateUserDebt inserts a user debt with its balance initialized to the
// original amount.
func (r *Repository) CreateUserDebt(ctx context.Context, d core.UserDebt) (core.UserDebt, error) {
	now := time.Now().UTC()
	d.BalanceCents = d.OriginalCents
	d.CreatedAt = now
	d.UpdatedAt = now
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO user_debts (creditor_id, account_number, kind, concept, original_cents, balance_cents,
		   interest_rate, contract_date, due_date, monthly_payment_cents, term_months,
		   priority, status, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.CreditorID, d.AccountNumber, d.Kind, d.Concept, d.OriginalCents, d.BalanceCents,
		d.InterestRate, fmtDate(d.ContractDate), fmtDate(d.DueDate), d.MonthlyPaymentCents, d.TermMonths,
		d.Priority, d.Status, d.Notes, fmtTime(now), fmtTime(now))
	if err != nil {
		return core.UserDebt{}, fmt.Errorf("insert user debt: %w", err)
	}
	d.ID, _ = res.LastInsertId()
	return d, nil
}

func (r *Repository) GetUserDebt(ctx context.Context, id int64) (core.UserDebt, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userDebtCols+` FROM user_debts WHERE id = ?`, id)
	d, err := scanUserDebt(row)
	if err != nil {
		return core.UserDebt{}, mapNotFound(err, "user debt")
	}
	return d, nil
}

func (r *Repository) ListUserDebts(ctx context.Context) ([]core.UserDebt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userDebtCols+` FROM user_debts ORDER BY contract_date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list user debts: %w", err)
	}
	defer rows.Close()

	var out []core.UserDebt
	for rows.Next() {
		d, err := scanUserDebt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user debt: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateUserDebt(ctx context.Context, d core.UserDebt) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_debts SET account_number = ?, kind = ?, concept = ?, interest_rate = ?,
		   due_date = ?, monthly_payment_cents = ?, term_months = ?, priority = ?,
		   status = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		d.AccountNumber, d.Kind, d.Concept, d.InterestRate,
		fmtDate(d.DueDate), d.MonthlyPaymentCents, d.TermMonths, d.Priority,
		d.Status, d.Notes, fmtTime(time.Now().UTC()), d.ID)
	if err != nil {
		return fmt.Errorf("update user debt: %w", err)
	}
	return requireRow(res, "user debt")
}

func (r *Repository) DeleteUserDebt(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_debts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user debt: %w", err)
	}
	return requireRow(res, "user debt")
}

// RecordUserPayment inserts the payment and reconciles the parent debt inside
// one transaction: both writes land or neither does, and concurrent payments
// against the same debt serialize on the transaction boundary. Returns the
// payment and the debt as reconciled.
func (r *Repository) RecordUserPayment(ctx context.Context, p core.UserPayment) (core.UserPayment, core.UserDebt, error) {
	var debt core.UserDebt
	p.CreatedAt = time.Now().UTC()

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT `+userDebtCols+` FROM user_debts WHERE id = ?`, p.UserDebtID)
		var err error
		debt, err = scanUserDebt(row)
		if err != nil {
			return mapNotFound(err, "user debt")
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO user_payments (user_debt_id, amount_cents, principal_cents, interest_cents,
			   paid_on, method, transaction_ref, receipt, notes, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.UserDebtID, p.AmountCents, p.PrincipalCents, p.InterestCents,
			fmtDate(p.PaidOn), p.Method, p.TransactionRef, p.Receipt, p.Notes, fmtTime(p.CreatedAt))
		if err != nil {
			return fmt.Errorf("insert user payment: %w", err)
		}
		p.ID, _ = res.LastInsertId()

		var totalPrincipal int64
		err = tx.QueryRowContext(ctx,
			`SELECT COALESCE(SUM(principal_cents), 0) FROM user_payments WHERE user_debt_id = ?`,
			p.UserDebtID).Scan(&totalPrincipal)
		if err != nil {
			return fmt.Errorf("sum principal: %w", err)
		}

		if excess := debt.Reconcile(totalPrincipal); excess > 0 {
			slog.WarnContext(ctx, "Overpayment absorbed by zero clamp",
				"user_debt_id", debt.ID, "excess_cents", excess)
		}
		debt.UpdatedAt = time.Now().UTC()

		_, err = tx.ExecContext(ctx,
			`UPDATE user_debts SET balance_cents = ?, status = ?, updated_at = ? WHERE id = ?`,
			debt.BalanceCents, debt.Status, fmtTime(debt.UpdatedAt), debt.ID)
		if err != nil {
			return fmt.Errorf("update reconciled debt: %w", err)
		}
		return nil
	})
	if err != nil {
		return core.UserPayment{}, core.UserDebt{}, err
	}
	return p, debt, nil
}

func (r *Repository) ListUserPayments(ctx context.Context, userDebtID int64) ([]core.UserPayment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_debt_id, amount_cents, principal_cents, interest_cents, paid_on,
		   method, transaction_ref, receipt, notes, created_at
		 FROM user_payments WHERE user_debt_id = ? ORDER BY paid_on DESC, id DESC`, userDebtID)
	if err != nil {
		return nil, fmt.Errorf("list user payments: %w", err)
	}
	defer rows.Close()

	var out []core.UserPayment
	for rows.Next() {
		var p core.UserPayment
		var paid, created string
		if err := rows.Scan(&p.ID, &p.UserDebtID, &p.AmountCents, &p.PrincipalCents, &p.InterestCents,
			&paid, &p.Method, &p.TransactionRef, &p.Receipt, &p.Notes, &created); err != nil {
			return nil, fmt.Errorf("scan user payment: %w", err)
		}
		p.PaidOn = parseDate(paid)
		p.CreatedAt = parseTime(created)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) CreateReminder(ctx context.Context, rem core.Reminder) (core.Reminder, error) {
	rem.Active = true
	rem.Sent = false
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO reminders (user_debt_id, remind_on, lead_days, message, active, sent)
		 VALUES (?, ?, ?, ?, 1, 0)`,
		rem.UserDebtID, fmtDate(rem.RemindOn), rem.LeadDays, rem.Message)
	if err != nil {
		return core.Reminder{}, fmt.Errorf("insert reminder: %w", err)
	}
	rem.ID, _ = res.LastInsertId()
	return rem, nil
}

func (r *Repository) ListReminders(ctx context.Context, userDebtID int64) ([]core.Reminder, error) {
	return r.queryReminders(ctx,
		`SELECT id, user_debt_id, remind_on, lead_days, message, active, sent, sent_at
		 FROM reminders WHERE user_debt_id = ? ORDER BY remind_on`, userDebtID)
}

// ListDueReminders returns active, unsent reminders whose date has arrived.
func (r *Repository) ListDueReminders(ctx context.Context, today core.Date) ([]core.Reminder, error) {
	return r.queryReminders(ctx,
		`SELECT id, user_debt_id, remind_on, lead_days, message, active, sent, sent_at
		 FROM reminders WHERE active = 1 AND sent = 0 AND remind_on <= ? ORDER BY remind_on`,
		fmtDate(today))
}

func (r *Repository) queryReminders(ctx context.Context, query string, args ...any) ([]core.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var out []core.Reminder
	for rows.Next() {
		var rem core.Reminder
		var remindOn string
		var sentAt *string
		if err := rows.Scan(&rem.ID, &rem.UserDebtID, &remindOn, &rem.LeadDays,
			&rem.Message, &rem.Active, &rem.Sent, &sentAt); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		rem.RemindOn = parseDate(remindOn)
		if sentAt != nil {
			t := parseTime(*sentAt)
			rem.SentAt = &t
		}
		out = append(out, rem)
	}
	return out, rows.Err()
}

// MarkReminderSent stamps the reminder as dispatched.
func (r *Repository) MarkReminderSent(ctx context.Context, id int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reminders SET sent = 1, sent_at = ? WHERE id = ?`, fmtTime(at), id)
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	return requireRow(res, "reminder")
}
