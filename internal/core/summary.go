package core

// DashboardStats is the compact set of numbers on the dashboard header.
// Everything is recomputed from raw rows on each request.
type DashboardStats struct {
	ActiveDebtors     int64 `json:"total_debtors"`
	ReceivableCents   int64 `json:"receivable_cents"`
	ActiveCreditors   int64 `json:"total_creditors"`
	PayableCents      int64 `json:"payable_cents"`
	MonthIncomeCents  int64 `json:"month_income_cents"`
	MonthExpenseCents int64 `json:"month_expense_cents"`
	OverdueDebts      int64 `json:"overdue_debts"`
	OverdueUserDebts  int64 `json:"overdue_user_debts"`
}

// MonthFlow is one bucket of the trailing income/expense series.
type MonthFlow struct {
	Year         int   `json:"year"`
	Month        int   `json:"month"` // 1-12
	IncomeCents  int64 `json:"income_cents"`
	ExpenseCents int64 `json:"expense_cents"`
}

// CategoryAmount is an amount aggregated by category name.
type CategoryAmount struct {
	Name        string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
}

// DashboardCharts bundles the chart data: a 6-month flow series and the
// top expense categories of the current month.
type DashboardCharts struct {
	Flows         []MonthFlow      `json:"income_expense_months"`
	TopCategories []CategoryAmount `json:"expenses_by_category"`
}
