// Package worker runs the background side of the app: exporting movements to
// the external spreadsheet and sweeping due reminders.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"finanzapp/internal/amqp"
	"finanzapp/internal/core"
	"finanzapp/internal/services"
	"finanzapp/internal/storage"
)

// MovementExporter appends one movement row to the external ledger.
type MovementExporter interface {
	AppendMovement(ctx context.Context, m core.Movement, category, subcategory string) error
}

// ExportWorker consumes export messages and keeps the spreadsheet copy of the
// movement ledger current. The database row is the source of truth; the
// worker always re-reads it before exporting.
type ExportWorker struct {
	store     *storage.Repository
	exporter  MovementExporter
	reminders *services.ReminderService
	batchSize int
}

func NewExportWorker(store *storage.Repository, exporter MovementExporter, reminders *services.ReminderService, batchSize int) *ExportWorker {
	return &ExportWorker{
		store:     store,
		exporter:  exporter,
		reminders: reminders,
		batchSize: batchSize,
	}
}

// HandleExportMessage processes one export message from the queue.
func (w *ExportWorker) HandleExportMessage(ctx context.Context, msg *amqp.ExportMessage) error {
	slog.InfoContext(ctx, "Processing export message", "movement_id", msg.MovementID)
	return w.exportMovement(ctx, msg.MovementID)
}

// ProcessPendingExports exports movements the queue never delivered. This is
// the backup path for lost messages and worker downtime.
func (w *ExportWorker) ProcessPendingExports(ctx context.Context) error {
	pending, err := w.store.ListPendingExports(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list pending exports: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending exports", "count", len(pending))

	for _, p := range pending {
		if err := w.exportMovement(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to export movement", "movement_id", p.ID, "error", err)
		}
	}
	return nil
}

// SweepReminders dispatches reminders whose date has arrived. Wired to the
// worker's cron schedule.
func (w *ExportWorker) SweepReminders(ctx context.Context) {
	if w.reminders == nil {
		return
	}
	if _, err := w.reminders.DispatchDue(ctx, core.Today()); err != nil {
		slog.ErrorContext(ctx, "Reminder sweep failed", "error", err)
	}
}

func (w *ExportWorker) exportMovement(ctx context.Context, id int64) error {
	if w.exporter == nil {
		slog.WarnContext(ctx, "No exporter configured, leaving movement pending", "movement_id", id)
		return nil
	}

	m, err := w.store.GetMovement(ctx, id)
	if err != nil {
		// A movement deleted after publish has nothing left to export.
		// Returning an error would requeue the message forever.
		if errors.Is(err, core.ErrNotFound) {
			slog.WarnContext(ctx, "Movement no longer exists, dropping export", "movement_id", id)
			return nil
		}
		if markErr := w.store.MarkExportError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "movement_id", id, "error", markErr)
		}
		return fmt.Errorf("get movement: %w", err)
	}

	category := ""
	if cat, err := w.store.GetCategory(ctx, m.CategoryID); err == nil {
		category = cat.Name
	}
	subcategory := ""
	if m.SubcategoryID != nil {
		if sub, err := w.store.GetSubcategory(ctx, *m.SubcategoryID); err == nil {
			subcategory = sub.Name
		}
	}

	if err := w.exporter.AppendMovement(ctx, m, category, subcategory); err != nil {
		if markErr := w.store.MarkExportError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "movement_id", id, "error", markErr)
		}
		return fmt.Errorf("append movement: %w", err)
	}

	if err := w.store.MarkExported(ctx, id); err != nil {
		// The export itself landed, so do not requeue.
		slog.ErrorContext(ctx, "Failed to mark movement exported", "movement_id", id, "error", err)
		return nil
	}

	slog.InfoContext(ctx, "Exported movement",
		"movement_id", id, "kind", m.Kind, "amount_cents", m.AmountCents)
	return nil
}
