package services

import (
	"context"
	"fmt"
	"log/slog"

	"finanzapp/internal/core"
)

// MovementStore is the persistence surface the movement operations need.
type MovementStore interface {
	GetCategory(ctx context.Context, id int64) (core.Category, error)
	GetSubcategory(ctx context.Context, id int64) (core.Subcategory, error)
	CreateMovement(ctx context.Context, m core.Movement) (core.Movement, error)
	GetMovement(ctx context.Context, id int64) (core.Movement, error)
	UpdateMovement(ctx context.Context, m core.Movement) error
	DeleteMovement(ctx context.Context, id int64) error
}

// ExportPublisher queues a movement for the export worker.
type ExportPublisher interface {
	PublishExport(ctx context.Context, movementID int64) error
}

// MovementService enforces the cross-entity movement invariants and feeds
// the export pipeline.
type MovementService struct {
	store  MovementStore
	events ExportPublisher
}

func NewMovementService(store MovementStore, events ExportPublisher) *MovementService {
	return &MovementService{store: store, events: events}
}

// checkTaxonomy enforces the two invariants a movement's own fields cannot
// express: its kind must match the category's kind, and a subcategory must
// belong to that same category.
func (s *MovementService) checkTaxonomy(ctx context.Context, m core.Movement) error {
	cat, err := s.store.GetCategory(ctx, m.CategoryID)
	if err != nil {
		return fmt.Errorf("category %d: %w", m.CategoryID, err)
	}
	if cat.Kind != m.Kind {
		return core.FieldErrors{"kind": "movement kind must match the category kind"}
	}
	if m.SubcategoryID != nil {
		sub, err := s.store.GetSubcategory(ctx, *m.SubcategoryID)
		if err != nil {
			return fmt.Errorf("subcategory %d: %w", *m.SubcategoryID, err)
		}
		if sub.CategoryID != m.CategoryID {
			return core.FieldErrors{"subcategory_id": "subcategory must belong to the selected category"}
		}
	}
	return nil
}

// CreateMovement validates and stores a movement, then queues it for export.
// A failed publish is not fatal: the row is persisted and the worker's
// periodic catch-up scan will pick it up.
func (s *MovementService) CreateMovement(ctx context.Context, m core.Movement) (core.Movement, error) {
	if m.Method == "" {
		m.Method = core.MethodCash
	}
	if !m.Recurring && m.Frequency == "" {
		m.Frequency = core.Once
	}
	if err := m.Validate(); err != nil {
		return core.Movement{}, err
	}
	if err := s.checkTaxonomy(ctx, m); err != nil {
		return core.Movement{}, err
	}

	created, err := s.store.CreateMovement(ctx, m)
	if err != nil {
		return core.Movement{}, fmt.Errorf("save movement: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishExport(ctx, created.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to publish export message",
				"movement_id", created.ID, "error", err)
		}
	}

	return created, nil
}

func (s *MovementService) UpdateMovement(ctx context.Context, m core.Movement) (core.Movement, error) {
	if _, err := s.store.GetMovement(ctx, m.ID); err != nil {
		return core.Movement{}, err
	}
	if err := m.Validate(); err != nil {
		return core.Movement{}, err
	}
	if err := s.checkTaxonomy(ctx, m); err != nil {
		return core.Movement{}, err
	}
	if err := s.store.UpdateMovement(ctx, m); err != nil {
		return core.Movement{}, err
	}
	return s.store.GetMovement(ctx, m.ID)
}

func (s *MovementService) DeleteMovement(ctx context.Context, id int64) error {
	return s.store.DeleteMovement(ctx, id)
}
