package core

import (
	"encoding/json"
	"testing"
)

func TestDebtValidate(t *testing.T) {
	valid := Debt{
		DebtorID:      1,
		Concept:       "personal loan",
		OriginalCents: 100000,
		LoanDate:      NewDate(2026, 1, 10),
		DueDate:       NewDate(2026, 6, 10),
		Plan:          PlanSingle,
		Status:        DebtPending,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid debt rejected: %v", err)
	}

	tests := []struct {
		name      string
		mutate    func(*Debt)
		wantField string
	}{
		{"missing debtor", func(d *Debt) { d.DebtorID = 0 }, "debtor_id"},
		{"blank concept", func(d *Debt) { d.Concept = "  " }, "concept"},
		{"zero amount", func(d *Debt) { d.OriginalCents = 0 }, "original_cents"},
		{"due before loan", func(d *Debt) { d.DueDate = NewDate(2025, 12, 1) }, "due_date"},
		{"deferred without months", func(d *Debt) { d.Plan = PlanDeferred }, "deferred_months"},
		{"bad status", func(d *Debt) { d.Status = "liquidated" }, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := d.Validate()
			fe, ok := AsFieldErrors(err)
			if !ok {
				t.Fatalf("expected FieldErrors, got %v", err)
			}
			if _, present := fe[tt.wantField]; !present {
				t.Errorf("missing field %q in %v", tt.wantField, fe)
			}
		})
	}
}

func TestInstallmentValidate(t *testing.T) {
	valid := Installment{
		DebtID:      1,
		Number:      1,
		AmountCents: 25000,
		DueDate:     NewDate(2026, 9, 10),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid installment rejected: %v", err)
	}

	paidOn := NewDate(2026, 9, 8)
	tests := []struct {
		name      string
		mutate    func(*Installment)
		wantField string
	}{
		{"missing debt", func(in *Installment) { in.DebtID = 0 }, "debt_id"},
		{"zero number", func(in *Installment) { in.Number = 0 }, "number"},
		{"zero amount", func(in *Installment) { in.AmountCents = 0 }, "amount_cents"},
		{"missing due date", func(in *Installment) { in.DueDate = Date{} }, "due_date"},
		{"paid_on without paid", func(in *Installment) { in.PaidOn = &paidOn }, "paid_on"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			fe, ok := AsFieldErrors(in.Validate())
			if !ok {
				t.Fatalf("expected FieldErrors, got %v", in.Validate())
			}
			if _, present := fe[tt.wantField]; !present {
				t.Errorf("missing field %q in %v", tt.wantField, fe)
			}
		})
	}

	paid := valid
	paid.Paid = true
	paid.PaidOn = &paidOn
	if err := paid.Validate(); err != nil {
		t.Errorf("paid installment with payment date rejected: %v", err)
	}
}

func TestUserPaymentValidateSplitBounds(t *testing.T) {
	p := UserPayment{
		UserDebtID:     1,
		AmountCents:    10000,
		PrincipalCents: 8000,
		InterestCents:  3000,
		PaidOn:         NewDate(2026, 8, 1),
		Method:         MethodTransfer,
	}
	fe, ok := AsFieldErrors(p.Validate())
	if !ok {
		t.Fatal("expected FieldErrors for oversized split")
	}
	if _, present := fe["principal_cents"]; !present {
		t.Errorf("missing principal_cents in %v", fe)
	}

	p.InterestCents = 2000
	if err := p.Validate(); err != nil {
		t.Errorf("exact split rejected: %v", err)
	}
}

func TestMovementValidateFrequency(t *testing.T) {
	m := Movement{
		Kind:        Expense,
		CategoryID:  1,
		Description: "rent",
		AmountCents: 90000,
		Date:        NewDate(2026, 8, 1),
		Method:      MethodTransfer,
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("one-off movement rejected: %v", err)
	}

	m.Recurring = true
	if _, ok := AsFieldErrors(m.Validate()); !ok {
		t.Error("recurring without frequency should fail")
	}

	m.Frequency = Monthly
	if err := m.Validate(); err != nil {
		t.Errorf("recurring monthly rejected: %v", err)
	}

	m.Recurring = false
	if _, ok := AsFieldErrors(m.Validate()); !ok {
		t.Error("frequency on one-off movement should fail")
	}
}

func TestBudgetAvailable(t *testing.T) {
	b := Budget{BudgetedCents: 50000}
	if got := b.Available(Expense, 30000); got != 20000 {
		t.Errorf("expense headroom = %d, want 20000", got)
	}
	if got := b.Available(Expense, 60000); got != -10000 {
		t.Errorf("overspent = %d, want -10000", got)
	}
	if got := b.Available(Income, 60000); got != 10000 {
		t.Errorf("income surplus = %d, want 10000", got)
	}
}

func TestGoalProgress(t *testing.T) {
	g := Goal{TargetCents: 100000, CurrentCents: 25000}
	if got := g.PercentComplete(); got != 25 {
		t.Errorf("PercentComplete = %v, want 25", got)
	}
	if got := g.Remaining(); got != 75000 {
		t.Errorf("Remaining = %d, want 75000", got)
	}
	g.CurrentCents = 150000
	if got := g.PercentComplete(); got != 100 {
		t.Errorf("capped PercentComplete = %v, want 100", got)
	}
	if got := g.Remaining(); got != 0 {
		t.Errorf("Remaining = %d, want 0", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	type payload struct {
		Due Date `json:"due"`
	}

	out, err := json.Marshal(payload{Due: NewDate(2026, 3, 5)})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"due":"2026-03-05"}` {
		t.Errorf("marshal = %s", out)
	}

	var in payload
	if err := json.Unmarshal([]byte(`{"due":"2026-03-05"}`), &in); err != nil {
		t.Fatal(err)
	}
	if in.Due.String() != "2026-03-05" {
		t.Errorf("unmarshal = %s", in.Due)
	}

	var empty payload
	if err := json.Unmarshal([]byte(`{"due":null}`), &empty); err != nil {
		t.Fatal(err)
	}
	if !empty.Due.IsZero() {
		t.Error("null should decode to zero Date")
	}
}

func TestDateDaysUntil(t *testing.T) {
	a := NewDate(2026, 8, 28)
	if got := a.DaysUntil(NewDate(2026, 9, 2)); got != 5 {
		t.Errorf("DaysUntil = %d, want 5", got)
	}
	if got := a.DaysUntil(NewDate(2026, 8, 25)); got != -3 {
		t.Errorf("DaysUntil past = %d, want -3", got)
	}
}
