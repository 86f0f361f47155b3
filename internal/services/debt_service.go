// Package services holds the named domain operations the handlers and the
// worker invoke: payment reconciliation, due-status transitions, movement
// validation, dashboard aggregation and reminder dispatch. State transitions
// live here as explicit operations, never as side effects of a generic save.
package services

import (
	"context"
	"fmt"

	"finanzapp/internal/core"
)

// DebtStore is the persistence surface the debt operations need.
type DebtStore interface {
	GetDebtor(ctx context.Context, id int64) (core.Debtor, error)
	CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error)
	GetDebt(ctx context.Context, id int64) (core.Debt, error)
	UpdateDebt(ctx context.Context, d core.Debt) error
	CreateDebtPayment(ctx context.Context, p core.DebtPayment) (core.DebtPayment, error)

	GetCreditor(ctx context.Context, id int64) (core.Creditor, error)
	CreateUserDebt(ctx context.Context, d core.UserDebt) (core.UserDebt, error)
	GetUserDebt(ctx context.Context, id int64) (core.UserDebt, error)
	UpdateUserDebt(ctx context.Context, d core.UserDebt) error
	RecordUserPayment(ctx context.Context, p core.UserPayment) (core.UserPayment, core.UserDebt, error)
	CreateReminder(ctx context.Context, rem core.Reminder) (core.Reminder, error)
}

// DebtService owns the debt lifecycle on both sides of the ledger: debts
// owed to the user and debts the user owes.
type DebtService struct {
	store DebtStore
	today func() core.Date
}

func NewDebtService(store DebtStore) *DebtService {
	return &DebtService{store: store, today: core.Today}
}

// CreateDebt validates and stores a new debtor debt. The due-status check
// fires here, on write: a debt created already past due starts as overdue.
func (s *DebtService) CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	if d.Status == "" {
		d.Status = core.DebtPending
	}
	if d.Plan == "" {
		d.Plan = core.PlanSingle
	}
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	if _, err := s.store.GetDebtor(ctx, d.DebtorID); err != nil {
		return core.Debt{}, fmt.Errorf("debtor %d: %w", d.DebtorID, err)
	}
	d.Status = core.ReconcileDueStatus(d.Status, d.DueDate, s.today())
	return s.store.CreateDebt(ctx, d)
}

// UpdateDebt persists changes to a debt, re-running the due-status check.
// Balance is never writable through here; only payments move it.
func (s *DebtService) UpdateDebt(ctx context.Context, d core.Debt) (core.Debt, error) {
	current, err := s.store.GetDebt(ctx, d.ID)
	if err != nil {
		return core.Debt{}, err
	}
	d.DebtorID = current.DebtorID
	d.OriginalCents = current.OriginalCents
	d.BalanceCents = current.BalanceCents
	d.LoanDate = current.LoanDate
	if d.Status == "" {
		d.Status = current.Status
	}
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	d.Status = core.ReconcileDueStatus(d.Status, d.DueDate, s.today())
	if err := s.store.UpdateDebt(ctx, d); err != nil {
		return core.Debt{}, err
	}
	return s.store.GetDebt(ctx, d.ID)
}

// RecordDebtPayment inserts a payment received from a debtor. Unlike user
// payments this is a plain insert; the debt balance is not recomputed.
func (s *DebtService) RecordDebtPayment(ctx context.Context, p core.DebtPayment) (core.DebtPayment, error) {
	if p.Method == "" {
		p.Method = core.MethodCash
	}
	if err := p.Validate(); err != nil {
		return core.DebtPayment{}, err
	}
	if _, err := s.store.GetDebt(ctx, p.DebtID); err != nil {
		return core.DebtPayment{}, fmt.Errorf("debt %d: %w", p.DebtID, err)
	}
	return s.store.CreateDebtPayment(ctx, p)
}

// CreateUserDebt validates and stores a new obligation toward a creditor.
func (s *DebtService) CreateUserDebt(ctx context.Context, d core.UserDebt) (core.UserDebt, error) {
	if d.Status == "" {
		d.Status = core.UserDebtPending
	}
	if d.Priority == "" {
		d.Priority = core.PriorityMedium
	}
	if err := d.Validate(); err != nil {
		return core.UserDebt{}, err
	}
	if _, err := s.store.GetCreditor(ctx, d.CreditorID); err != nil {
		return core.UserDebt{}, fmt.Errorf("creditor %d: %w", d.CreditorID, err)
	}
	d.Status = core.ReconcileDueStatus(d.Status, d.DueDate, s.today())
	return s.store.CreateUserDebt(ctx, d)
}

func (s *DebtService) UpdateUserDebt(ctx context.Context, d core.UserDebt) (core.UserDebt, error) {
	current, err := s.store.GetUserDebt(ctx, d.ID)
	if err != nil {
		return core.UserDebt{}, err
	}
	d.CreditorID = current.CreditorID
	d.OriginalCents = current.OriginalCents
	d.BalanceCents = current.BalanceCents
	d.ContractDate = current.ContractDate
	if d.Status == "" {
		d.Status = current.Status
	}
	if err := d.Validate(); err != nil {
		return core.UserDebt{}, err
	}
	d.Status = core.ReconcileDueStatus(d.Status, d.DueDate, s.today())
	if err := s.store.UpdateUserDebt(ctx, d); err != nil {
		return core.UserDebt{}, err
	}
	return s.store.GetUserDebt(ctx, d.ID)
}

// RecordUserPayment records a payment against a user debt and reconciles the
// parent balance and status. When the caller supplies no principal/interest
// split the whole amount counts as principal. Overpayment is not an error;
// the balance clamps at zero. Insert and reconciliation are atomic.
func (s *DebtService) RecordUserPayment(ctx context.Context, p core.UserPayment) (core.UserPayment, core.UserDebt, error) {
	if p.Method == "" {
		p.Method = core.MethodCash
	}
	core.ApplyPaymentSplit(&p)
	if err := p.Validate(); err != nil {
		return core.UserPayment{}, core.UserDebt{}, err
	}
	return s.store.RecordUserPayment(ctx, p)
}

// CreateReminder schedules a due-date reminder for a user debt.
func (s *DebtService) CreateReminder(ctx context.Context, rem core.Reminder) (core.Reminder, error) {
	if rem.LeadDays == 0 {
		rem.LeadDays = 5
	}
	if err := rem.Validate(); err != nil {
		return core.Reminder{}, err
	}
	if _, err := s.store.GetUserDebt(ctx, rem.UserDebtID); err != nil {
		return core.Reminder{}, fmt.Errorf("user debt %d: %w", rem.UserDebtID, err)
	}
	return s.store.CreateReminder(ctx, rem)
}
