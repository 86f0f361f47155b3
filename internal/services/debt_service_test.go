package services

import (
	"context"
	"errors"
	"testing"

	"finanzapp/internal/core"
)

// fakeDebtStore keeps everything in maps and mirrors the repository's
// reconciliation behavior for user payments.
type fakeDebtStore struct {
	debtors   map[int64]core.Debtor
	creditors map[int64]core.Creditor
	debts     map[int64]core.Debt
	userDebts map[int64]core.UserDebt
	payments  []core.UserPayment
	reminders []core.Reminder
	nextID    int64
}

func newFakeDebtStore() *fakeDebtStore {
	return &fakeDebtStore{
		debtors:   map[int64]core.Debtor{},
		creditors: map[int64]core.Creditor{},
		debts:     map[int64]core.Debt{},
		userDebts: map[int64]core.UserDebt{},
		nextID:    1,
	}
}

func (f *fakeDebtStore) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeDebtStore) GetDebtor(_ context.Context, id int64) (core.Debtor, error) {
	d, ok := f.debtors[id]
	if !ok {
		return core.Debtor{}, core.ErrNotFound
	}
	return d, nil
}

func (f *fakeDebtStore) CreateDebt(_ context.Context, d core.Debt) (core.Debt, error) {
	d.ID = f.id()
	d.BalanceCents = d.OriginalCents
	f.debts[d.ID] = d
	return d, nil
}

func (f *fakeDebtStore) GetDebt(_ context.Context, id int64) (core.Debt, error) {
	d, ok := f.debts[id]
	if !ok {
		return core.Debt{}, core.ErrNotFound
	}
	return d, nil
}

func (f *fakeDebtStore) UpdateDebt(_ context.Context, d core.Debt) error {
	if _, ok := f.debts[d.ID]; !ok {
		return core.ErrNotFound
	}
	f.debts[d.ID] = d
	return nil
}

func (f *fakeDebtStore) CreateDebtPayment(_ context.Context, p core.DebtPayment) (core.DebtPayment, error) {
	p.ID = f.id()
	return p, nil
}

func (f *fakeDebtStore) GetCreditor(_ context.Context, id int64) (core.Creditor, error) {
	c, ok := f.creditors[id]
	if !ok {
		return core.Creditor{}, core.ErrNotFound
	}
	return c, nil
}

func (f *fakeDebtStore) CreateUserDebt(_ context.Context, d core.UserDebt) (core.UserDebt, error) {
	d.ID = f.id()
	d.BalanceCents = d.OriginalCents
	f.userDebts[d.ID] = d
	return d, nil
}

func (f *fakeDebtStore) GetUserDebt(_ context.Context, id int64) (core.UserDebt, error) {
	d, ok := f.userDebts[id]
	if !ok {
		return core.UserDebt{}, core.ErrNotFound
	}
	return d, nil
}

func (f *fakeDebtStore) UpdateUserDebt(_ context.Context, d core.UserDebt) error {
	if _, ok := f.userDebts[d.ID]; !ok {
		return core.ErrNotFound
	}
	f.userDebts[d.ID] = d
	return nil
}

func (f *fakeDebtStore) RecordUserPayment(_ context.Context, p core.UserPayment) (core.UserPayment, core.UserDebt, error) {
	debt, ok := f.userDebts[p.UserDebtID]
	if !ok {
		return core.UserPayment{}, core.UserDebt{}, core.ErrNotFound
	}
	p.ID = f.id()
	f.payments = append(f.payments, p)

	var total int64
	for _, pay := range f.payments {
		if pay.UserDebtID == p.UserDebtID {
			total += pay.PrincipalCents
		}
	}
	debt.Reconcile(total)
	f.userDebts[debt.ID] = debt
	return p, debt, nil
}

func (f *fakeDebtStore) CreateReminder(_ context.Context, rem core.Reminder) (core.Reminder, error) {
	rem.ID = f.id()
	f.reminders = append(f.reminders, rem)
	return rem, nil
}

func fixedToday() core.Date { return core.NewDate(2026, 8, 28) }

func validDebt(debtorID int64) core.Debt {
	return core.Debt{
		DebtorID:      debtorID,
		Concept:       "loan to friend",
		OriginalCents: 100000,
		LoanDate:      core.NewDate(2026, 1, 10),
		DueDate:       core.NewDate(2026, 12, 10),
	}
}

func validUserDebt(creditorID int64) core.UserDebt {
	return core.UserDebt{
		CreditorID:    creditorID,
		Kind:          core.DebtLoan,
		Concept:       "car loan",
		OriginalCents: 100000,
		ContractDate:  core.NewDate(2026, 1, 10),
		DueDate:       core.NewDate(2026, 12, 10),
	}
}

func TestCreateDebtDefaultsAndDueCheck(t *testing.T) {
	store := newFakeDebtStore()
	store.debtors[1] = core.Debtor{ID: 1, Name: "Ana", Document: "123"}
	svc := NewDebtService(store)
	svc.today = fixedToday

	created, err := svc.CreateDebt(context.Background(), validDebt(1))
	if err != nil {
		t.Fatalf("CreateDebt: %v", err)
	}
	if created.Status != core.DebtPending {
		t.Errorf("Status = %s, want pending", created.Status)
	}
	if created.Plan != core.PlanSingle {
		t.Errorf("Plan = %s, want single", created.Plan)
	}
	if created.BalanceCents != created.OriginalCents {
		t.Errorf("BalanceCents = %d, want %d", created.BalanceCents, created.OriginalCents)
	}

	past := validDebt(1)
	past.LoanDate = core.NewDate(2026, 1, 1)
	past.DueDate = core.NewDate(2026, 5, 1)
	created, err = svc.CreateDebt(context.Background(), past)
	if err != nil {
		t.Fatalf("CreateDebt past due: %v", err)
	}
	if created.Status != core.DebtOverdue {
		t.Errorf("past-due debt Status = %s, want overdue", created.Status)
	}
}

func TestCreateDebtUnknownDebtor(t *testing.T) {
	svc := NewDebtService(newFakeDebtStore())
	svc.today = fixedToday

	_, err := svc.CreateDebt(context.Background(), validDebt(42))
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateDebtPreservesImmutableFields(t *testing.T) {
	store := newFakeDebtStore()
	store.debtors[1] = core.Debtor{ID: 1, Name: "Ana", Document: "123"}
	svc := NewDebtService(store)
	svc.today = fixedToday

	created, err := svc.CreateDebt(context.Background(), validDebt(1))
	if err != nil {
		t.Fatal(err)
	}

	update := created
	update.DebtorID = 99
	update.OriginalCents = 1
	update.BalanceCents = 1
	update.Concept = "renegotiated loan"

	updated, err := svc.UpdateDebt(context.Background(), update)
	if err != nil {
		t.Fatalf("UpdateDebt: %v", err)
	}
	if updated.DebtorID != 1 {
		t.Errorf("DebtorID changed to %d", updated.DebtorID)
	}
	if updated.OriginalCents != 100000 || updated.BalanceCents != 100000 {
		t.Errorf("amounts changed: original=%d balance=%d", updated.OriginalCents, updated.BalanceCents)
	}
	if updated.Concept != "renegotiated loan" {
		t.Errorf("Concept = %q", updated.Concept)
	}
}

func TestRecordUserPaymentReconciles(t *testing.T) {
	store := newFakeDebtStore()
	store.creditors[1] = core.Creditor{ID: 1, Name: "Bank", Kind: core.CreditorBank}
	svc := NewDebtService(store)
	svc.today = fixedToday

	debt, err := svc.CreateUserDebt(context.Background(), validUserDebt(1))
	if err != nil {
		t.Fatal(err)
	}

	pay := func(amount int64) core.UserDebt {
		t.Helper()
		payment, reconciled, err := svc.RecordUserPayment(context.Background(), core.UserPayment{
			UserDebtID:  debt.ID,
			AmountCents: amount,
			PaidOn:      core.NewDate(2026, 8, 1),
		})
		if err != nil {
			t.Fatalf("RecordUserPayment: %v", err)
		}
		if payment.Method != core.MethodCash {
			t.Errorf("Method = %s, want cash default", payment.Method)
		}
		if payment.PrincipalCents != amount {
			t.Errorf("PrincipalCents = %d, want full amount %d", payment.PrincipalCents, amount)
		}
		return reconciled
	}

	after := pay(40000)
	if after.BalanceCents != 60000 || after.Status != core.UserDebtPartial {
		t.Fatalf("after 400: balance=%d status=%s", after.BalanceCents, after.Status)
	}
	after = pay(60000)
	if after.BalanceCents != 0 || after.Status != core.UserDebtPaid {
		t.Fatalf("after 600: balance=%d status=%s", after.BalanceCents, after.Status)
	}
}

func TestRecordUserPaymentValidation(t *testing.T) {
	store := newFakeDebtStore()
	svc := NewDebtService(store)

	_, _, err := svc.RecordUserPayment(context.Background(), core.UserPayment{
		UserDebtID:  1,
		AmountCents: 0,
		PaidOn:      core.NewDate(2026, 8, 1),
	})
	if _, ok := core.AsFieldErrors(err); !ok {
		t.Errorf("err = %v, want FieldErrors", err)
	}
	if len(store.payments) != 0 {
		t.Error("invalid payment reached the store")
	}
}

func TestCreateReminderDefaultsLeadDays(t *testing.T) {
	store := newFakeDebtStore()
	store.creditors[1] = core.Creditor{ID: 1, Name: "Bank", Kind: core.CreditorBank}
	svc := NewDebtService(store)
	svc.today = fixedToday

	debt, err := svc.CreateUserDebt(context.Background(), validUserDebt(1))
	if err != nil {
		t.Fatal(err)
	}

	rem, err := svc.CreateReminder(context.Background(), core.Reminder{
		UserDebtID: debt.ID,
		RemindOn:   core.NewDate(2026, 12, 5),
		Message:    "car loan due soon",
	})
	if err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}
	if rem.LeadDays != 5 {
		t.Errorf("LeadDays = %d, want 5", rem.LeadDays)
	}
}
