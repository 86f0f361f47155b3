package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"finanzapp/internal/core"
)

const debtorCols = "id, name, document, phone, email, address, active, registered_at"

func scanDebtor(row interface{ Scan(...any) error }) (core.Debtor, error) {
	var d core.Debtor
	var registered string
	err := row.Scan(&d.ID, &d.Name, &d.Document, &d.Phone, &d.Email, &d.Address, &d.Active, &registered)
	if err != nil {
		return core.Debtor{}, err
	}
	d.RegisteredAt = parseTime(registered)
	return d, nil
}

func (r *Repository) CreateDebtor(ctx context.Context, d core.Debtor) (core.Debtor, error) {
	d.Active = true
	d.RegisteredAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO debtors (name, document, phone, email, address, active, registered_at)
		 VALUES (?, ?, ?, ?, ?, 1, ?)`,
		d.Name, d.Document, d.Phone, d.Email, d.Address, fmtTime(d.RegisteredAt))
	if err != nil {
		return core.Debtor{}, fmt.Errorf("insert debtor: %w", err)
	}
	d.ID, _ = res.LastInsertId()
	return d, nil
}

func (r *Repository) GetDebtor(ctx context.Context, id int64) (core.Debtor, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+debtorCols+` FROM debtors WHERE id = ?`, id)
	d, err := scanDebtor(row)
	if err != nil {
		return core.Debtor{}, mapNotFound(err, "debtor")
	}
	return d, nil
}

// ListDebtors returns active debtors ordered by name.
func (r *Repository) ListDebtors(ctx context.Context) ([]core.Debtor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+debtorCols+` FROM debtors WHERE active = 1 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list debtors: %w", err)
	}
	defer rows.Close()

	var out []core.Debtor
	for rows.Next() {
		d, err := scanDebtor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan debtor: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateDebtor(ctx context.Context, d core.Debtor) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE debtors SET name = ?, document = ?, phone = ?, email = ?, address = ? WHERE id = ?`,
		d.Name, d.Document, d.Phone, d.Email, d.Address, d.ID)
	if err != nil {
		return fmt.Errorf("update debtor: %w", err)
	}
	return requireRow(res, "debtor")
}

// DeleteDebtor deactivates the debtor; rows are never removed.
func (r *Repository) DeleteDebtor(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE debtors SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivate debtor: %w", err)
	}
	return requireRow(res, "debtor")
}

func requireRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, core.ErrNotFound)
	}
	return nil
}
