package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"finanzapp/internal/core"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedCreditorAndDebt(t *testing.T, repo *Repository, originalCents int64) core.UserDebt {
	t.Helper()
	ctx := context.Background()

	creditor, err := repo.CreateCreditor(ctx, core.Creditor{Name: "Bank", Kind: core.CreditorBank})
	if err != nil {
		t.Fatalf("CreateCreditor: %v", err)
	}

	debt, err := repo.CreateUserDebt(ctx, core.UserDebt{
		CreditorID:    creditor.ID,
		Kind:          core.DebtLoan,
		Concept:       "car loan",
		OriginalCents: originalCents,
		ContractDate:  core.NewDate(2026, 1, 10),
		DueDate:       core.NewDate(2026, 12, 10),
		Priority:      core.PriorityMedium,
		Status:        core.UserDebtPending,
	})
	if err != nil {
		t.Fatalf("CreateUserDebt: %v", err)
	}
	return debt
}

func TestDebtorCRUD(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.CreateDebtor(ctx, core.Debtor{Name: "Ana", Document: "CC-123"})
	if err != nil {
		t.Fatalf("CreateDebtor: %v", err)
	}
	if created.ID == 0 || !created.Active {
		t.Fatalf("created = %+v", created)
	}

	got, err := repo.GetDebtor(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetDebtor: %v", err)
	}
	if got.Name != "Ana" || got.Document != "CC-123" {
		t.Errorf("got = %+v", got)
	}

	got.Phone = "555-0101"
	if err := repo.UpdateDebtor(ctx, got); err != nil {
		t.Fatalf("UpdateDebtor: %v", err)
	}

	if err := repo.DeleteDebtor(ctx, created.ID); err != nil {
		t.Fatalf("DeleteDebtor: %v", err)
	}
	list, err := repo.ListDebtors(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("deactivated debtor still listed: %v", list)
	}
	// Soft delete keeps the row reachable by ID.
	if _, err := repo.GetDebtor(ctx, created.ID); err != nil {
		t.Errorf("GetDebtor after deactivate: %v", err)
	}
}

func TestGetDebtorNotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.GetDebtor(context.Background(), 999)
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateDebtInitializesBalance(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	debtor, err := repo.CreateDebtor(ctx, core.Debtor{Name: "Ana", Document: "CC-123"})
	if err != nil {
		t.Fatal(err)
	}

	debt, err := repo.CreateDebt(ctx, core.Debt{
		DebtorID:      debtor.ID,
		Concept:       "loan",
		OriginalCents: 50000,
		BalanceCents:  1, // ignored
		LoanDate:      core.NewDate(2026, 1, 1),
		DueDate:       core.NewDate(2026, 6, 1),
		Plan:          core.PlanSingle,
		Status:        core.DebtPending,
	})
	if err != nil {
		t.Fatalf("CreateDebt: %v", err)
	}
	if debt.BalanceCents != 50000 {
		t.Errorf("BalanceCents = %d, want 50000", debt.BalanceCents)
	}
}

// RecordUserPayment must insert the payment and reconcile the debt as one
// atomic write: 1000 - 400 leaves partial 600, the next 600 closes it.
func TestRecordUserPaymentReconciliation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	debt := seedCreditorAndDebt(t, repo, 100000)

	pay := func(principal int64) core.UserDebt {
		t.Helper()
		_, reconciled, err := repo.RecordUserPayment(ctx, core.UserPayment{
			UserDebtID:     debt.ID,
			AmountCents:    principal,
			PrincipalCents: principal,
			PaidOn:         core.NewDate(2026, 8, 1),
			Method:         core.MethodTransfer,
		})
		if err != nil {
			t.Fatalf("RecordUserPayment: %v", err)
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

	// The reconciled state is persisted, not just returned.
	stored, err := repo.GetUserDebt(ctx, debt.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.BalanceCents != 0 || stored.Status != core.UserDebtPaid {
		t.Errorf("stored: balance=%d status=%s", stored.BalanceCents, stored.Status)
	}

	payments, err := repo.ListUserPayments(ctx, debt.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(payments) != 2 {
		t.Errorf("len(payments) = %d, want 2", len(payments))
	}
}

func TestRecordUserPaymentOverpaymentClamps(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	debt := seedCreditorAndDebt(t, repo, 100000)

	_, reconciled, err := repo.RecordUserPayment(ctx, core.UserPayment{
		UserDebtID:     debt.ID,
		AmountCents:    120000,
		PrincipalCents: 120000,
		PaidOn:         core.NewDate(2026, 8, 1),
		Method:         core.MethodCash,
	})
	if err != nil {
		t.Fatalf("RecordUserPayment: %v", err)
	}
	if reconciled.BalanceCents != 0 || reconciled.Status != core.UserDebtPaid {
		t.Errorf("balance=%d status=%s, want 0 paid", reconciled.BalanceCents, reconciled.Status)
	}
}

func TestRecordUserPaymentUnknownDebtRollsBack(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, _, err := repo.RecordUserPayment(ctx, core.UserPayment{
		UserDebtID:     999,
		AmountCents:    1000,
		PrincipalCents: 1000,
		PaidOn:         core.NewDate(2026, 8, 1),
		Method:         core.MethodCash,
	})
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListDueReminders(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	debt := seedCreditorAndDebt(t, repo, 100000)

	mk := func(remindOn core.Date) core.Reminder {
		t.Helper()
		rem, err := repo.CreateReminder(ctx, core.Reminder{
			UserDebtID: debt.ID,
			RemindOn:   remindOn,
			LeadDays:   5,
			Message:    "payment due",
		})
		if err != nil {
			t.Fatal(err)
		}
		return rem
	}

	past := mk(core.NewDate(2026, 8, 20))
	mk(core.NewDate(2026, 9, 20))

	today := core.NewDate(2026, 8, 28)
	due, err := repo.ListDueReminders(ctx, today)
	if err != nil {
		t.Fatal(err)
	}
	if len(due) != 1 || due[0].ID != past.ID {
		t.Fatalf("due = %+v, want only the past reminder", due)
	}

	if err := repo.MarkReminderSent(ctx, past.ID, time.Now().UTC()); err != nil {
		t.Fatal(err)
	}
	due, err = repo.ListDueReminders(ctx, today)
	if err != nil {
		t.Fatal(err)
	}
	if len(due) != 0 {
		t.Errorf("sent reminder still due: %+v", due)
	}
}

func seedCategory(t *testing.T, repo *Repository, name string, kind core.MovementKind) core.Category {
	t.Helper()
	cat, err := repo.CreateCategory(context.Background(), core.Category{
		Name: name, Kind: kind, Nature: core.Variable,
	})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	return cat
}

func seedMovement(t *testing.T, repo *Repository, kind core.MovementKind, categoryID int64, cents int64, date core.Date) core.Movement {
	t.Helper()
	m, err := repo.CreateMovement(context.Background(), core.Movement{
		Kind:        kind,
		CategoryID:  categoryID,
		Description: "test movement",
		AmountCents: cents,
		Date:        date,
		Method:      core.MethodCash,
	})
	if err != nil {
		t.Fatalf("CreateMovement: %v", err)
	}
	return m
}

func TestMovementMonthAggregates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	groceries := seedCategory(t, repo, "Groceries", core.Expense)
	salary := seedCategory(t, repo, "Salary", core.Income)

	seedMovement(t, repo, core.Expense, groceries.ID, 8000, core.NewDate(2026, 8, 5))
	seedMovement(t, repo, core.Expense, groceries.ID, 12000, core.NewDate(2026, 8, 20))
	seedMovement(t, repo, core.Income, salary.ID, 300000, core.NewDate(2026, 8, 1))
	// Out of the window.
	seedMovement(t, repo, core.Expense, groceries.ID, 5000, core.NewDate(2026, 7, 31))

	expense, err := repo.SumMovements(ctx, core.Expense, 2026, 8)
	if err != nil {
		t.Fatal(err)
	}
	if expense != 20000 {
		t.Errorf("expense sum = %d, want 20000", expense)
	}

	income, err := repo.SumMovements(ctx, core.Income, 2026, 8)
	if err != nil {
		t.Fatal(err)
	}
	if income != 300000 {
		t.Errorf("income sum = %d, want 300000", income)
	}

	top, err := repo.TopExpenseCategories(ctx, 2026, 8, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 1 || top[0].Name != "Groceries" || top[0].AmountCents != 20000 {
		t.Errorf("top = %+v", top)
	}
}

func TestExportStatusLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cat := seedCategory(t, repo, "Groceries", core.Expense)
	m := seedMovement(t, repo, core.Expense, cat.ID, 8000, core.NewDate(2026, 8, 5))

	pending, err := repo.ListPendingExports(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].ID != m.ID {
		t.Fatalf("pending = %+v", pending)
	}

	if err := repo.MarkExported(ctx, m.ID); err != nil {
		t.Fatal(err)
	}
	pending, err = repo.ListPendingExports(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("exported movement still pending: %+v", pending)
	}
}

func TestBudgetsAndCategoryActual(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	cat := seedCategory(t, repo, "Groceries", core.Expense)
	seedMovement(t, repo, core.Expense, cat.ID, 30000, core.NewDate(2026, 8, 10))

	if _, err := repo.CreateBudget(ctx, core.Budget{
		CategoryID: cat.ID, Year: 2026, Month: 8, BudgetedCents: 50000,
	}); err != nil {
		t.Fatalf("CreateBudget: %v", err)
	}

	budgets, err := repo.ListBudgets(ctx, 2026, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(budgets) != 1 || budgets[0].BudgetedCents != 50000 {
		t.Fatalf("budgets = %+v", budgets)
	}

	actual, err := repo.CategoryActual(ctx, cat.ID, 2026, 8)
	if err != nil {
		t.Fatal(err)
	}
	if actual != 30000 {
		t.Errorf("actual = %d, want 30000", actual)
	}
}

func TestListMovementsOrderAndLimit(t *testing.T) {
	repo := newTestRepo(t)
	cat := seedCategory(t, repo, "Groceries", core.Expense)

	for day := 1; day <= 12; day++ {
		seedMovement(t, repo, core.Expense, cat.ID, 1000, core.NewDate(2026, 8, day))
	}

	got, err := repo.ListMovements(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 10 {
		t.Fatalf("len = %d, want 10", len(got))
	}
	if got[0].Date.String() != "2026-08-12" {
		t.Errorf("first = %s, want newest date 2026-08-12", got[0].Date)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date.Time) {
			t.Errorf("movements not in descending date order at %d", i)
		}
	}
}
