package storage

import (
	"context"
	"fmt"
	"time"

	"finanzapp/internal/core"
)

const creditorCols = "id, name, kind, document, phone, email, address, contact, notes, active, registered_at"

func scanCreditor(row interface{ Scan(...any) error }) (core.Creditor, error) {
	var c core.Creditor
	var registered string
	err := row.Scan(&c.ID, &c.Name, &c.Kind, &c.Document, &c.Phone, &c.Email,
		&c.Address, &c.Contact, &c.Notes, &c.Active, &registered)
	if err != nil {
		return core.Creditor{}, err
	}
	c.RegisteredAt = parseTime(registered)
	return c, nil
}

func (r *Repository) CreateCreditor(ctx context.Context, c core.Creditor) (core.Creditor, error) {
	c.Active = true
	c.RegisteredAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO creditors (name, kind, document, phone, email, address, contact, notes, active, registered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 1, ?)`,
		c.Name, c.Kind, c.Document, c.Phone, c.Email, c.Address, c.Contact, c.Notes, fmtTime(c.RegisteredAt))
	if err != nil {
		return core.Creditor{}, fmt.Errorf("insert creditor: %w", err)
	}
	c.ID, _ = res.LastInsertId()
	return c, nil
}

func (r *Repository) GetCreditor(ctx context.Context, id int64) (core.Creditor, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+creditorCols+` FROM creditors WHERE id = ?`, id)
	c, err := scanCreditor(row)
	if err != nil {
		return core.Creditor{}, mapNotFound(err, "creditor")
	}
	return c, nil
}

// ListCreditors returns active creditors ordered by name.
func (r *Repository) ListCreditors(ctx context.Context) ([]core.Creditor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+creditorCols+` FROM creditors WHERE active = 1 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list creditors: %w", err)
	}
	defer rows.Close()

	var out []core.Creditor
	for rows.Next() {
		c, err := scanCreditor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan creditor: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateCreditor(ctx context.Context, c core.Creditor) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE creditors SET name = ?, kind = ?, document = ?, phone = ?, email = ?,
		   address = ?, contact = ?, notes = ? WHERE id = ?`,
		c.Name, c.Kind, c.Document, c.Phone, c.Email, c.Address, c.Contact, c.Notes, c.ID)
	if err != nil {
		return fmt.Errorf("update creditor: %w", err)
	}
	return requireRow(res, "creditor")
}

// DeleteCreditor deactivates the creditor; rows are never removed.
func (r *Repository) DeleteCreditor(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE creditors SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivate creditor: %w", err)
	}
	return requireRow(res, "creditor")
}
