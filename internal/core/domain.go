package core

import (
	"strings"
	"time"
)

type (
	// Debtor is a party who owes money to the user.
	Debtor struct {
		ID           int64  `json:"id"`
		Name         string `json:"name"`
		Document     string `json:"document"`
		Phone        string `json:"phone,omitempty"`
		Email        string `json:"email,omitempty"`
		Address      string `json:"address,omitempty"`
		Active       bool   `json:"active"`
		RegisteredAt time.Time `json:"registered_at"`
	}

	// Debt is money a debtor owes the user.
	Debt struct {
		ID             int64      `json:"id"`
		DebtorID       int64      `json:"debtor_id"`
		Concept        string     `json:"concept"`
		OriginalCents  int64      `json:"original_cents"`
		BalanceCents   int64      `json:"balance_cents"`
		LoanDate       Date       `json:"loan_date"`
		DueDate        Date       `json:"due_date"`
		Plan           DebtPlan   `json:"plan"`
		DeferredMonths int        `json:"deferred_months,omitempty"`
		InterestRate   float64    `json:"interest_rate"`
		Status         DebtStatus `json:"status"`
		Notes          string     `json:"notes,omitempty"`
		CreatedAt      time.Time  `json:"created_at"`
		UpdatedAt      time.Time  `json:"updated_at"`
	}

	// DebtPayment records a payment received against a debtor's debt.
	DebtPayment struct {
		ID          int64         `json:"id"`
		DebtID      int64         `json:"debt_id"`
		AmountCents int64         `json:"amount_cents"`
		PaidOn      Date          `json:"paid_on"`
		Method      PaymentMethod `json:"method"`
		Receipt     string        `json:"receipt,omitempty"`
		Notes       string        `json:"notes,omitempty"`
		CreatedAt   time.Time     `json:"created_at"`
	}

	// Installment is one scheduled quota of a deferred debt.
	Installment struct {
		ID          int64 `json:"id"`
		DebtID      int64 `json:"debt_id"`
		Number      int   `json:"number"`
		AmountCents int64 `json:"amount_cents"`
		DueDate     Date  `json:"due_date"`
		Paid        bool  `json:"paid"`
		PaidOn      *Date `json:"paid_on,omitempty"`
	}

	// Creditor is a party the user owes money to.
	Creditor struct {
		ID           int64        `json:"id"`
		Name         string       `json:"name"`
		Kind         CreditorKind `json:"kind"`
		Document     string       `json:"document,omitempty"`
		Phone        string       `json:"phone,omitempty"`
		Email        string       `json:"email,omitempty"`
		Address      string       `json:"address,omitempty"`
		Contact      string       `json:"contact,omitempty"`
		Notes        string       `json:"notes,omitempty"`
		Active       bool         `json:"active"`
		RegisteredAt time.Time    `json:"registered_at"`
	}

	// UserDebt is an obligation the user owes to a creditor.
	UserDebt struct {
		ID                  int64          `json:"id"`
		CreditorID          int64          `json:"creditor_id"`
		AccountNumber       string         `json:"account_number,omitempty"`
		Kind                UserDebtKind   `json:"kind"`
		Concept             string         `json:"concept"`
		OriginalCents       int64          `json:"original_cents"`
		BalanceCents        int64          `json:"balance_cents"`
		InterestRate        float64        `json:"interest_rate"`
		ContractDate        Date           `json:"contract_date"`
		DueDate             Date           `json:"due_date"`
		MonthlyPaymentCents int64          `json:"monthly_payment_cents,omitempty"`
		TermMonths          int            `json:"term_months,omitempty"`
		Priority            Priority       `json:"priority"`
		Status              UserDebtStatus `json:"status"`
		Notes               string         `json:"notes,omitempty"`
		CreatedAt           time.Time      `json:"created_at"`
		UpdatedAt           time.Time      `json:"updated_at"`
	}

	// UserPayment is a payment the user made against one of their debts.
	// When the principal/interest split is omitted the whole amount counts
	// as principal.
	UserPayment struct {
		ID             int64         `json:"id"`
		UserDebtID     int64         `json:"user_debt_id"`
		AmountCents    int64         `json:"amount_cents"`
		PrincipalCents int64         `json:"principal_cents"`
		InterestCents  int64         `json:"interest_cents"`
		PaidOn         Date          `json:"paid_on"`
		Method         PaymentMethod `json:"method"`
		TransactionRef string        `json:"transaction_ref,omitempty"`
		Receipt        string        `json:"receipt,omitempty"`
		Notes          string        `json:"notes,omitempty"`
		CreatedAt      time.Time     `json:"created_at"`
	}

	// Reminder schedules a notification ahead of a user-debt due date.
	Reminder struct {
		ID         int64      `json:"id"`
		UserDebtID int64      `json:"user_debt_id"`
		RemindOn   Date       `json:"remind_on"`
		LeadDays   int        `json:"lead_days"`
		Message    string     `json:"message"`
		Active     bool       `json:"active"`
		Sent       bool       `json:"sent"`
		SentAt     *time.Time `json:"sent_at,omitempty"`
	}

	// Category classifies movements as income or expense, fixed or variable.
	Category struct {
		ID          int64          `json:"id"`
		Name        string         `json:"name"`
		Kind        MovementKind   `json:"kind"`
		Nature      CategoryNature `json:"nature"`
		Description string         `json:"description,omitempty"`
		Active      bool           `json:"active"`
		CreatedAt   time.Time      `json:"created_at"`
	}

	// Subcategory refines a category. It carries no kind of its own; a
	// movement's subcategory must belong to the movement's category.
	Subcategory struct {
		ID          int64     `json:"id"`
		CategoryID  int64     `json:"category_id"`
		Name        string    `json:"name"`
		Description string    `json:"description,omitempty"`
		Active      bool      `json:"active"`
		CreatedAt   time.Time `json:"created_at"`
	}

	// Movement is a single dated income or expense transaction.
	Movement struct {
		ID            int64         `json:"id"`
		Kind          MovementKind  `json:"kind"`
		CategoryID    int64         `json:"category_id"`
		SubcategoryID *int64        `json:"subcategory_id,omitempty"`
		Description   string        `json:"description"`
		AmountCents   int64         `json:"amount_cents"`
		Date          Date          `json:"date"`
		Recurring     bool          `json:"recurring"`
		Frequency     Frequency     `json:"frequency,omitempty"`
		RecurrenceEnd *Date         `json:"recurrence_end,omitempty"`
		Method        PaymentMethod `json:"method"`
		Reference     string        `json:"reference,omitempty"`
		Notes         string        `json:"notes,omitempty"`
		Receipt       string        `json:"receipt,omitempty"`
		CreatedAt     time.Time     `json:"created_at"`
		UpdatedAt     time.Time     `json:"updated_at"`
	}

	// Budget is a monthly budgeted amount for one category.
	Budget struct {
		ID            int64     `json:"id"`
		CategoryID    int64     `json:"category_id"`
		Year          int       `json:"year"`
		Month         int       `json:"month"`
		BudgetedCents int64     `json:"budgeted_cents"`
		Notes         string    `json:"notes,omitempty"`
		CreatedAt     time.Time `json:"created_at"`
	}

	// Goal is a long-term financial target.
	Goal struct {
		ID           int64      `json:"id"`
		Name         string     `json:"name"`
		Description  string     `json:"description,omitempty"`
		Kind         GoalKind   `json:"kind"`
		TargetCents  int64      `json:"target_cents"`
		CurrentCents int64      `json:"current_cents"`
		StartDate    Date       `json:"start_date"`
		TargetDate   Date       `json:"target_date"`
		Status       GoalStatus `json:"status"`
		Notes        string     `json:"notes,omitempty"`
		CreatedAt    time.Time  `json:"created_at"`
		UpdatedAt    time.Time  `json:"updated_at"`
	}
)

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (d Debtor) Validate() error {
	fe := FieldErrors{}
	if blank(d.Name) {
		fe["name"] = "name is required"
	}
	if blank(d.Document) {
		fe["document"] = "document is required"
	}
	return fe.ErrOrNil()
}

func (d Debt) Validate() error {
	fe := FieldErrors{}
	if d.DebtorID <= 0 {
		fe["debtor_id"] = "debtor is required"
	}
	if blank(d.Concept) {
		fe["concept"] = "concept is required"
	}
	if d.OriginalCents <= 0 {
		fe["original_cents"] = "original amount must be positive"
	}
	if d.LoanDate.IsZero() {
		fe["loan_date"] = "loan date is required"
	}
	if d.DueDate.IsZero() {
		fe["due_date"] = "due date is required"
	} else if !d.LoanDate.IsZero() && d.DueDate.Before(d.LoanDate) {
		fe["due_date"] = "due date cannot precede loan date"
	}
	if !d.Plan.Valid() {
		fe["plan"] = "unknown payment plan"
	}
	if d.Plan == PlanDeferred && d.DeferredMonths <= 0 {
		fe["deferred_months"] = "deferred plan requires months"
	}
	if d.InterestRate < 0 {
		fe["interest_rate"] = "interest rate cannot be negative"
	}
	if d.Status != "" && !d.Status.Valid() {
		fe["status"] = "unknown status"
	}
	return fe.ErrOrNil()
}

func (p DebtPayment) Validate() error {
	fe := FieldErrors{}
	if p.DebtID <= 0 {
		fe["debt_id"] = "debt is required"
	}
	if p.AmountCents <= 0 {
		fe["amount_cents"] = "payment amount must be positive"
	}
	if p.PaidOn.IsZero() {
		fe["paid_on"] = "payment date is required"
	}
	if !p.Method.Valid() {
		fe["method"] = "unknown payment method"
	}
	return fe.ErrOrNil()
}

func (in Installment) Validate() error {
	fe := FieldErrors{}
	if in.DebtID <= 0 {
		fe["debt_id"] = "debt is required"
	}
	if in.Number < 1 {
		fe["number"] = "installment number must be at least 1"
	}
	if in.AmountCents <= 0 {
		fe["amount_cents"] = "installment amount must be positive"
	}
	if in.DueDate.IsZero() {
		fe["due_date"] = "due date is required"
	}
	if in.PaidOn != nil && !in.Paid {
		fe["paid_on"] = "payment date only applies to paid installments"
	}
	return fe.ErrOrNil()
}

func (c Creditor) Validate() error {
	fe := FieldErrors{}
	if blank(c.Name) {
		fe["name"] = "name is required"
	}
	if !c.Kind.Valid() {
		fe["kind"] = "unknown creditor kind"
	}
	return fe.ErrOrNil()
}

func (d UserDebt) Validate() error {
	fe := FieldErrors{}
	if d.CreditorID <= 0 {
		fe["creditor_id"] = "creditor is required"
	}
	if !d.Kind.Valid() {
		fe["kind"] = "unknown debt kind"
	}
	if blank(d.Concept) {
		fe["concept"] = "concept is required"
	}
	if d.OriginalCents <= 0 {
		fe["original_cents"] = "original amount must be positive"
	}
	if d.InterestRate < 0 {
		fe["interest_rate"] = "interest rate cannot be negative"
	}
	if d.ContractDate.IsZero() {
		fe["contract_date"] = "contract date is required"
	}
	if d.DueDate.IsZero() {
		fe["due_date"] = "due date is required"
	} else if !d.ContractDate.IsZero() && d.DueDate.Before(d.ContractDate) {
		fe["due_date"] = "due date cannot precede contract date"
	}
	if !d.Priority.Valid() {
		fe["priority"] = "unknown priority"
	}
	if d.Status != "" && !d.Status.Valid() {
		fe["status"] = "unknown status"
	}
	return fe.ErrOrNil()
}

func (p UserPayment) Validate() error {
	fe := FieldErrors{}
	if p.UserDebtID <= 0 {
		fe["user_debt_id"] = "debt is required"
	}
	if p.AmountCents <= 0 {
		fe["amount_cents"] = "payment amount must be positive"
	}
	if p.PrincipalCents < 0 {
		fe["principal_cents"] = "principal portion cannot be negative"
	}
	if p.InterestCents < 0 {
		fe["interest_cents"] = "interest portion cannot be negative"
	}
	if p.PrincipalCents+p.InterestCents > p.AmountCents {
		fe["principal_cents"] = "split exceeds payment amount"
	}
	if p.PaidOn.IsZero() {
		fe["paid_on"] = "payment date is required"
	}
	if !p.Method.Valid() {
		fe["method"] = "unknown payment method"
	}
	return fe.ErrOrNil()
}

func (r Reminder) Validate() error {
	fe := FieldErrors{}
	if r.UserDebtID <= 0 {
		fe["user_debt_id"] = "debt is required"
	}
	if r.RemindOn.IsZero() {
		fe["remind_on"] = "reminder date is required"
	}
	if r.LeadDays < 0 {
		fe["lead_days"] = "lead days cannot be negative"
	}
	if blank(r.Message) {
		fe["message"] = "message is required"
	}
	return fe.ErrOrNil()
}

func (c Category) Validate() error {
	fe := FieldErrors{}
	if blank(c.Name) {
		fe["name"] = "name is required"
	}
	if !c.Kind.Valid() {
		fe["kind"] = "kind must be income or expense"
	}
	if !c.Nature.Valid() {
		fe["nature"] = "nature must be fixed or variable"
	}
	return fe.ErrOrNil()
}

func (s Subcategory) Validate() error {
	fe := FieldErrors{}
	if s.CategoryID <= 0 {
		fe["category_id"] = "category is required"
	}
	if blank(s.Name) {
		fe["name"] = "name is required"
	}
	return fe.ErrOrNil()
}

// Validate checks the movement's own fields. The cross-entity checks (kind
// matches category kind, subcategory belongs to category) need the store and
// live in the movement service.
func (m Movement) Validate() error {
	fe := FieldErrors{}
	if !m.Kind.Valid() {
		fe["kind"] = "kind must be income or expense"
	}
	if m.CategoryID <= 0 {
		fe["category_id"] = "category is required"
	}
	if blank(m.Description) {
		fe["description"] = "description is required"
	}
	if len(m.Description) > 200 {
		fe["description"] = "description too long (max 200 characters)"
	}
	if m.AmountCents <= 0 {
		fe["amount_cents"] = "amount must be positive"
	}
	if m.Date.IsZero() {
		fe["date"] = "date is required"
	}
	if m.Recurring {
		if !m.Frequency.Valid() || m.Frequency == Once {
			fe["frequency"] = "recurring movement requires a frequency"
		}
	} else if m.Frequency != "" && m.Frequency != Once {
		fe["frequency"] = "frequency only applies to recurring movements"
	}
	if !m.Method.Valid() {
		fe["method"] = "unknown payment method"
	}
	return fe.ErrOrNil()
}

func (b Budget) Validate() error {
	fe := FieldErrors{}
	if b.CategoryID <= 0 {
		fe["category_id"] = "category is required"
	}
	if b.Year < 2000 || b.Year > 2200 {
		fe["year"] = "year out of range"
	}
	if b.Month < 1 || b.Month > 12 {
		fe["month"] = "month must be between 1 and 12"
	}
	if b.BudgetedCents <= 0 {
		fe["budgeted_cents"] = "budgeted amount must be positive"
	}
	return fe.ErrOrNil()
}

func (g Goal) Validate() error {
	fe := FieldErrors{}
	if blank(g.Name) {
		fe["name"] = "name is required"
	}
	if !g.Kind.Valid() {
		fe["kind"] = "unknown goal kind"
	}
	if g.TargetCents <= 0 {
		fe["target_cents"] = "target amount must be positive"
	}
	if g.CurrentCents < 0 {
		fe["current_cents"] = "current amount cannot be negative"
	}
	if g.StartDate.IsZero() {
		fe["start_date"] = "start date is required"
	}
	if g.TargetDate.IsZero() {
		fe["target_date"] = "target date is required"
	} else if !g.StartDate.IsZero() && g.TargetDate.Before(g.StartDate) {
		fe["target_date"] = "target date cannot precede start date"
	}
	if g.Status != "" && !g.Status.Valid() {
		fe["status"] = "unknown status"
	}
	return fe.ErrOrNil()
}

// PercentPaid returns how much of the original amount has been repaid, 0-100.
func (d UserDebt) PercentPaid() float64 {
	if d.OriginalCents <= 0 {
		return 0
	}
	paid := d.OriginalCents - d.BalanceCents
	return float64(paid) / float64(d.OriginalCents) * 100
}

// DaysUntilDue returns days until the due date, negative once past due.
func (d UserDebt) DaysUntilDue(today Date) int {
	return today.DaysUntil(d.DueDate)
}

// MonthlyInterest approximates one month of interest on the open balance.
func (d UserDebt) MonthlyInterest() int64 {
	if d.InterestRate <= 0 {
		return 0
	}
	return int64(float64(d.BalanceCents) * d.InterestRate / 100 / 12)
}

// DaysUntilDue returns days until the due date, negative once past due.
func (d Debt) DaysUntilDue(today Date) int {
	return today.DaysUntil(d.DueDate)
}

// PercentComplete returns goal progress capped at 100.
func (g Goal) PercentComplete() float64 {
	if g.TargetCents <= 0 {
		return 0
	}
	pct := float64(g.CurrentCents) / float64(g.TargetCents) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// Remaining returns the cents still missing to reach the target, never negative.
func (g Goal) Remaining() int64 {
	if rem := g.TargetCents - g.CurrentCents; rem > 0 {
		return rem
	}
	return 0
}

// DaysRemaining returns days left until the target date, never negative.
func (g Goal) DaysRemaining(today Date) int {
	if days := today.DaysUntil(g.TargetDate); days > 0 {
		return days
	}
	return 0
}

// Available returns the budget headroom: for expense categories the amount
// still spendable, for income categories the surplus over the plan.
func (b Budget) Available(kind MovementKind, actualCents int64) int64 {
	if kind == Expense {
		return b.BudgetedCents - actualCents
	}
	return actualCents - b.BudgetedCents
}
