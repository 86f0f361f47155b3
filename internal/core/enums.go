package core

// String-typed enumerations. Each carries a Valid method used during
// validation; zero values are never valid.

type DebtStatus string

const (
	DebtPending DebtStatus = "pending"
	DebtPaid    DebtStatus = "paid"
	DebtOverdue DebtStatus = "overdue"
	DebtPartial DebtStatus = "partial"
)

func (s DebtStatus) Valid() bool {
	switch s {
	case DebtPending, DebtPaid, DebtOverdue, DebtPartial:
		return true
	}
	return false
}

type UserDebtStatus string

const (
	UserDebtPending     UserDebtStatus = "pending"
	UserDebtPaid        UserDebtStatus = "paid"
	UserDebtOverdue     UserDebtStatus = "overdue"
	UserDebtPartial     UserDebtStatus = "partial"
	UserDebtRefinanced  UserDebtStatus = "refinanced"
	UserDebtForgiven    UserDebtStatus = "forgiven"
)

func (s UserDebtStatus) Valid() bool {
	switch s {
	case UserDebtPending, UserDebtPaid, UserDebtOverdue, UserDebtPartial,
		UserDebtRefinanced, UserDebtForgiven:
		return true
	}
	return false
}

// Open reports whether the debt still carries an outstanding obligation.
// These are the statuses summed into "total owed" aggregates.
func (s UserDebtStatus) Open() bool {
	switch s {
	case UserDebtPending, UserDebtOverdue, UserDebtPartial:
		return true
	}
	return false
}

func (s DebtStatus) Open() bool {
	switch s {
	case DebtPending, DebtOverdue, DebtPartial:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodCash      PaymentMethod = "cash"
	MethodTransfer  PaymentMethod = "transfer"
	MethodCheck     PaymentMethod = "check"
	MethodCard      PaymentMethod = "card"
	MethodAutoDebit PaymentMethod = "auto_debit"
	MethodPSE       PaymentMethod = "pse"
	MethodOther     PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodTransfer, MethodCheck, MethodCard,
		MethodAutoDebit, MethodPSE, MethodOther:
		return true
	}
	return false
}

// MovementKind classifies a movement (and its category) as income or expense.
type MovementKind string

const (
	Income  MovementKind = "income"
	Expense MovementKind = "expense"
)

func (k MovementKind) Valid() bool {
	return k == Income || k == Expense
}

type CategoryNature string

const (
	Fixed    CategoryNature = "fixed"
	Variable CategoryNature = "variable"
)

func (n CategoryNature) Valid() bool {
	return n == Fixed || n == Variable
}

// Frequency is declared on recurring movements but never materialized.
type Frequency string

const (
	Once       Frequency = "once"
	Daily      Frequency = "daily"
	Weekly     Frequency = "weekly"
	Biweekly   Frequency = "biweekly"
	Monthly    Frequency = "monthly"
	Bimonthly  Frequency = "bimonthly"
	Quarterly  Frequency = "quarterly"
	Semiannual Frequency = "semiannual"
	Annual     Frequency = "annual"
)

func (f Frequency) Valid() bool {
	switch f {
	case Once, Daily, Weekly, Biweekly, Monthly, Bimonthly,
		Quarterly, Semiannual, Annual:
		return true
	}
	return false
}

type CreditorKind string

const (
	CreditorBank       CreditorKind = "bank"
	CreditorPerson     CreditorKind = "person"
	CreditorCompany    CreditorKind = "company"
	CreditorGovernment CreditorKind = "government"
	CreditorOther      CreditorKind = "other"
)

func (k CreditorKind) Valid() bool {
	switch k {
	case CreditorBank, CreditorPerson, CreditorCompany, CreditorGovernment, CreditorOther:
		return true
	}
	return false
}

type UserDebtKind string

const (
	DebtLoan       UserDebtKind = "loan"
	DebtCreditCard UserDebtKind = "credit_card"
	DebtMortgage   UserDebtKind = "mortgage"
	DebtVehicle    UserDebtKind = "vehicle"
	DebtCommercial UserDebtKind = "commercial"
	DebtPayroll    UserDebtKind = "payroll"
	DebtPersonal   UserDebtKind = "personal"
	DebtUtility    UserDebtKind = "utility"
	DebtTax        UserDebtKind = "tax"
	DebtOther      UserDebtKind = "other"
)

func (k UserDebtKind) Valid() bool {
	switch k {
	case DebtLoan, DebtCreditCard, DebtMortgage, DebtVehicle, DebtCommercial,
		DebtPayroll, DebtPersonal, DebtUtility, DebtTax, DebtOther:
		return true
	}
	return false
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// DebtPlan distinguishes single-payment debts from deferred (installment) ones.
type DebtPlan string

const (
	PlanSingle   DebtPlan = "single"
	PlanDeferred DebtPlan = "deferred"
)

func (p DebtPlan) Valid() bool {
	return p == PlanSingle || p == PlanDeferred
}

type GoalKind string

const (
	GoalSaving     GoalKind = "saving"
	GoalInvestment GoalKind = "investment"
	GoalDebt       GoalKind = "debt"
	GoalPurchase   GoalKind = "purchase"
	GoalEmergency  GoalKind = "emergency"
	GoalOther      GoalKind = "other"
)

func (k GoalKind) Valid() bool {
	switch k {
	case GoalSaving, GoalInvestment, GoalDebt, GoalPurchase, GoalEmergency, GoalOther:
		return true
	}
	return false
}

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
	GoalCancelled GoalStatus = "cancelled"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalCompleted, GoalPaused, GoalCancelled:
		return true
	}
	return false
}
