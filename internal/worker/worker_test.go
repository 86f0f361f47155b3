package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"finanzapp/internal/amqp"
	"finanzapp/internal/core"
	"finanzapp/internal/storage"
)

func newTestRepo(t *testing.T) *storage.Repository {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

type fakeExporter struct {
	appended []int64
	err      error
}

func (f *fakeExporter) AppendMovement(_ context.Context, m core.Movement, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, m.ID)
	return nil
}

func createMovement(t *testing.T, repo *storage.Repository) core.Movement {
	t.Helper()
	ctx := context.Background()
	cat, err := repo.CreateCategory(ctx, core.Category{
		Name: "Groceries", Kind: core.Expense, Nature: core.Variable,
	})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	m, err := repo.CreateMovement(ctx, core.Movement{
		Kind:        core.Expense,
		CategoryID:  cat.ID,
		Description: "weekly shop",
		AmountCents: 12500,
		Date:        core.NewDate(2026, 8, 20),
		Method:      core.MethodCash,
	})
	if err != nil {
		t.Fatalf("CreateMovement: %v", err)
	}
	return m
}

func TestHandleExportMessageMarksSynced(t *testing.T) {
	repo := newTestRepo(t)
	m := createMovement(t, repo)
	exporter := &fakeExporter{}
	w := NewExportWorker(repo, exporter, nil, 10)

	if err := w.HandleExportMessage(context.Background(), amqp.NewExportMessage(m.ID)); err != nil {
		t.Fatalf("HandleExportMessage: %v", err)
	}
	if len(exporter.appended) != 1 || exporter.appended[0] != m.ID {
		t.Errorf("appended = %v, want [%d]", exporter.appended, m.ID)
	}
	pending, err := repo.ListPendingExports(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("still pending after export: %v", pending)
	}
}

// A message for a movement deleted after publish must be dropped, not
// requeued: returning an error would redeliver it forever.
func TestHandleExportMessageMissingMovementDropped(t *testing.T) {
	repo := newTestRepo(t)
	exporter := &fakeExporter{}
	w := NewExportWorker(repo, exporter, nil, 10)

	if err := w.HandleExportMessage(context.Background(), amqp.NewExportMessage(999)); err != nil {
		t.Fatalf("missing movement should be dropped, got error: %v", err)
	}
	if len(exporter.appended) != 0 {
		t.Errorf("exporter called for missing movement: %v", exporter.appended)
	}
}

func TestHandleExportMessageAppendFailureMarksError(t *testing.T) {
	repo := newTestRepo(t)
	m := createMovement(t, repo)
	w := NewExportWorker(repo, &fakeExporter{err: errors.New("sheets down")}, nil, 10)

	if err := w.HandleExportMessage(context.Background(), amqp.NewExportMessage(m.ID)); err == nil {
		t.Fatal("expected error from failed append")
	}
	pending, err := repo.ListPendingExports(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("movement left pending instead of error: %v", pending)
	}
}

func TestProcessPendingExports(t *testing.T) {
	repo := newTestRepo(t)
	m := createMovement(t, repo)
	exporter := &fakeExporter{}
	w := NewExportWorker(repo, exporter, nil, 10)

	if err := w.ProcessPendingExports(context.Background()); err != nil {
		t.Fatalf("ProcessPendingExports: %v", err)
	}
	if len(exporter.appended) != 1 || exporter.appended[0] != m.ID {
		t.Errorf("appended = %v, want [%d]", exporter.appended, m.ID)
	}
}
