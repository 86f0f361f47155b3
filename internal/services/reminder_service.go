package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finanzapp/internal/core"
)

// ReminderStore is the persistence surface the reminder sweep needs.
type ReminderStore interface {
	ListDueReminders(ctx context.Context, today core.Date) ([]core.Reminder, error)
	GetUserDebt(ctx context.Context, id int64) (core.UserDebt, error)
	GetCreditor(ctx context.Context, id int64) (core.Creditor, error)
	MarkReminderSent(ctx context.Context, id int64, at time.Time) error
}

// ReminderSender delivers one reminder notification.
type ReminderSender interface {
	SendReminder(rem core.Reminder, debt core.UserDebt, creditor core.Creditor) error
}

// ReminderService dispatches due reminders. With no sender configured it
// still marks reminders as handled so they do not pile up.
type ReminderService struct {
	store  ReminderStore
	sender ReminderSender
}

func NewReminderService(store ReminderStore, sender ReminderSender) *ReminderService {
	return &ReminderService{store: store, sender: sender}
}

// DispatchDue sends every reminder whose date has arrived. One failed send
// does not stop the sweep; the reminder stays unsent and the next run retries
// it. Returns the number of reminders dispatched.
func (s *ReminderService) DispatchDue(ctx context.Context, today core.Date) (int, error) {
	due, err := s.store.ListDueReminders(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("list due reminders: %w", err)
	}

	sent := 0
	for _, rem := range due {
		if err := s.dispatch(ctx, rem); err != nil {
			slog.ErrorContext(ctx, "Failed to dispatch reminder",
				"reminder_id", rem.ID, "user_debt_id", rem.UserDebtID, "error", err)
			continue
		}
		sent++
	}

	if len(due) > 0 {
		slog.InfoContext(ctx, "Reminder sweep finished", "due", len(due), "sent", sent)
	}
	return sent, nil
}

func (s *ReminderService) dispatch(ctx context.Context, rem core.Reminder) error {
	debt, err := s.store.GetUserDebt(ctx, rem.UserDebtID)
	if err != nil {
		return fmt.Errorf("user debt %d: %w", rem.UserDebtID, err)
	}
	creditor, err := s.store.GetCreditor(ctx, debt.CreditorID)
	if err != nil {
		return fmt.Errorf("creditor %d: %w", debt.CreditorID, err)
	}

	if s.sender != nil {
		if err := s.sender.SendReminder(rem, debt, creditor); err != nil {
			return fmt.Errorf("send: %w", err)
		}
	} else {
		slog.InfoContext(ctx, "Reminder due (no sender configured)",
			"reminder_id", rem.ID, "creditor", creditor.Name,
			"concept", debt.Concept, "due_date", debt.DueDate.String())
	}

	return s.store.MarkReminderSent(ctx, rem.ID, time.Now().UTC())
}
