package storage

import (
	"context"
	"fmt"
	"time"

	"finanzapp/internal/core"
)

func (r *Repository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	c.Active = true
	c.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name, kind, nature, description, active, created_at)
		 VALUES (?, ?, ?, ?, 1, ?)`,
		c.Name, c.Kind, c.Nature, c.Description, fmtTime(c.CreatedAt))
	if err != nil {
		return core.Category{}, fmt.Errorf("insert category: %w", err)
	}
	c.ID, _ = res.LastInsertId()
	return c, nil
}

func (r *Repository) GetCategory(ctx context.Context, id int64) (core.Category, error) {
	var c core.Category
	var created string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, kind, nature, description, active, created_at FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Kind, &c.Nature, &c.Description, &c.Active, &created)
	if err != nil {
		return core.Category{}, mapNotFound(err, "category")
	}
	c.CreatedAt = parseTime(created)
	return c, nil
}

// ListCategories returns active categories in the original's display order.
func (r *Repository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, kind, nature, description, active, created_at
		 FROM categories WHERE active = 1 ORDER BY kind, nature, name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		var created string
		if err := rows.Scan(&c.ID, &c.Name, &c.Kind, &c.Nature, &c.Description, &c.Active, &created); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.CreatedAt = parseTime(created)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateCategory(ctx context.Context, c core.Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, kind = ?, nature = ?, description = ? WHERE id = ?`,
		c.Name, c.Kind, c.Nature, c.Description, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireRow(res, "category")
}

func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivate category: %w", err)
	}
	return requireRow(res, "category")
}

func (r *Repository) CreateSubcategory(ctx context.Context, s core.Subcategory) (core.Subcategory, error) {
	s.Active = true
	s.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO subcategories (category_id, name, description, active, created_at)
		 VALUES (?, ?, ?, 1, ?)`,
		s.CategoryID, s.Name, s.Description, fmtTime(s.CreatedAt))
	if err != nil {
		return core.Subcategory{}, fmt.Errorf("insert subcategory: %w", err)
	}
	s.ID, _ = res.LastInsertId()
	return s, nil
}

func (r *Repository) GetSubcategory(ctx context.Context, id int64) (core.Subcategory, error) {
	var s core.Subcategory
	var created string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, category_id, name, description, active, created_at FROM subcategories WHERE id = ?`, id).
		Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.Active, &created)
	if err != nil {
		return core.Subcategory{}, mapNotFound(err, "subcategory")
	}
	s.CreatedAt = parseTime(created)
	return s, nil
}

func (r *Repository) ListSubcategories(ctx context.Context, categoryID int64) ([]core.Subcategory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, category_id, name, description, active, created_at
		 FROM subcategories WHERE category_id = ? AND active = 1 ORDER BY name`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	var out []core.Subcategory
	for rows.Next() {
		var s core.Subcategory
		var created string
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.Active, &created); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		s.CreatedAt = parseTime(created)
		out = append(out, s)
	}
	return out, rows.Err()
}

const movementCols = `id, kind, category_id, subcategory_id, description, amount_cents, date,
	recurring, frequency, recurrence_end, method, reference, notes, receipt, created_at, updated_at`

func scanMovement(row interface{ Scan(...any) error }) (core.Movement, error) {
	var m core.Movement
	var date, created, updated string
	var recurrenceEnd *string
	err := row.Scan(&m.ID, &m.Kind, &m.CategoryID, &m.SubcategoryID, &m.Description,
		&m.AmountCents, &date, &m.Recurring, &m.Frequency, &recurrenceEnd,
		&m.Method, &m.Reference, &m.Notes, &m.Receipt, &created, &updated)
	if err != nil {
		return core.Movement{}, err
	}
	m.Date = parseDate(date)
	if recurrenceEnd != nil {
		d := parseDate(*recurrenceEnd)
		m.RecurrenceEnd = &d
	}
	m.CreatedAt = parseTime(created)
	m.UpdatedAt = parseTime(updated)
	return m, nil
}

func (r *Repository) CreateMovement(ctx context.Context, m core.Movement) (core.Movement, error) {
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO movements (kind, category_id, subcategory_id, description, amount_cents, date,
		   recurring, frequency, recurrence_end, method, reference, notes, receipt,
		   export_status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'pending', ?, ?)`,
		m.Kind, m.CategoryID, m.SubcategoryID, m.Description, m.AmountCents, fmtDate(m.Date),
		m.Recurring, m.Frequency, fmtDatePtr(m.RecurrenceEnd), m.Method, m.Reference, m.Notes, m.Receipt,
		fmtTime(now), fmtTime(now))
	if err != nil {
		return core.Movement{}, fmt.Errorf("insert movement: %w", err)
	}
	m.ID, _ = res.LastInsertId()
	return m, nil
}

func (r *Repository) GetMovement(ctx context.Context, id int64) (core.Movement, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+movementCols+` FROM movements WHERE id = ?`, id)
	m, err := scanMovement(row)
	if err != nil {
		return core.Movement{}, mapNotFound(err, "movement")
	}
	return m, nil
}

func (r *Repository) ListMovements(ctx context.Context, limit int) ([]core.Movement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+movementCols+` FROM movements ORDER BY date DESC, created_at DESC, id DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []core.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateMovement(ctx context.Context, m core.Movement) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE movements SET kind = ?, category_id = ?, subcategory_id = ?, description = ?,
		   amount_cents = ?, date = ?, recurring = ?, frequency = ?, recurrence_end = ?,
		   method = ?, reference = ?, notes = ?, receipt = ?, updated_at = ?
		 WHERE id = ?`,
		m.Kind, m.CategoryID, m.SubcategoryID, m.Description,
		m.AmountCents, fmtDate(m.Date), m.Recurring, m.Frequency, fmtDatePtr(m.RecurrenceEnd),
		m.Method, m.Reference, m.Notes, m.Receipt, fmtTime(time.Now().UTC()), m.ID)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	return requireRow(res, "movement")
}

func (r *Repository) DeleteMovement(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM movements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return requireRow(res, "movement")
}

// PendingExport is the minimal row the export worker needs.
type PendingExport struct {
	ID        int64
	CreatedAt time.Time
}

// ListPendingExports returns movements not yet exported, oldest first.
func (r *Repository) ListPendingExports(ctx context.Context, limit int) ([]PendingExport, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at FROM movements WHERE export_status = 'pending'
		 ORDER BY created_at LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending exports: %w", err)
	}
	defer rows.Close()

	var out []PendingExport
	for rows.Next() {
		var p PendingExport
		var created string
		if err := rows.Scan(&p.ID, &created); err != nil {
			return nil, fmt.Errorf("scan pending export: %w", err)
		}
		p.CreatedAt = parseTime(created)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) MarkExported(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE movements SET export_status = 'synced' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark movement exported: %w", err)
	}
	return requireRow(res, "movement")
}

func (r *Repository) MarkExportError(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE movements SET export_status = 'error' WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark movement export error: %w", err)
	}
	return requireRow(res, "movement")
}
