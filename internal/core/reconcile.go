package core

// ApplyPaymentSplit assigns the whole payment amount to principal when the
// caller supplied no principal/interest split.
func ApplyPaymentSplit(p *UserPayment) {
	if p.PrincipalCents == 0 && p.InterestCents == 0 {
		p.PrincipalCents = p.AmountCents
	}
}

// Reconcile recomputes the debt's balance and status from the total principal
// repaid across all its payments. Balance clamps at zero; overpayment is
// absorbed, not rejected. Returns the excess cents discarded by the clamp.
func (d *UserDebt) Reconcile(totalPrincipalCents int64) int64 {
	balance := d.OriginalCents - totalPrincipalCents
	var excess int64
	if balance <= 0 {
		excess = -balance
		balance = 0
	}
	d.BalanceCents = balance
	switch {
	case balance == 0:
		d.Status = UserDebtPaid
	case balance < d.OriginalCents:
		d.Status = UserDebtPartial
	}
	return excess
}

// ReconcileDueStatus flips a pending status to overdue once the due date has
// passed. The check fires on writes only; already-stored rows keep their
// status until the next save.
func ReconcileDueStatus[S ~string](status S, dueDate, today Date) S {
	if dueDate.Before(today) && status == S("pending") {
		return S("overdue")
	}
	return status
}
