package services

import (
	"context"
	"errors"
	"testing"

	"finanzapp/internal/core"
)

type fakeMovementStore struct {
	categories    map[int64]core.Category
	subcategories map[int64]core.Subcategory
	movements     map[int64]core.Movement
	nextID        int64
}

func newFakeMovementStore() *fakeMovementStore {
	return &fakeMovementStore{
		categories:    map[int64]core.Category{},
		subcategories: map[int64]core.Subcategory{},
		movements:     map[int64]core.Movement{},
		nextID:        1,
	}
}

func (f *fakeMovementStore) GetCategory(_ context.Context, id int64) (core.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return core.Category{}, core.ErrNotFound
	}
	return c, nil
}

func (f *fakeMovementStore) GetSubcategory(_ context.Context, id int64) (core.Subcategory, error) {
	s, ok := f.subcategories[id]
	if !ok {
		return core.Subcategory{}, core.ErrNotFound
	}
	return s, nil
}

func (f *fakeMovementStore) CreateMovement(_ context.Context, m core.Movement) (core.Movement, error) {
	m.ID = f.nextID
	f.nextID++
	f.movements[m.ID] = m
	return m, nil
}

func (f *fakeMovementStore) GetMovement(_ context.Context, id int64) (core.Movement, error) {
	m, ok := f.movements[id]
	if !ok {
		return core.Movement{}, core.ErrNotFound
	}
	return m, nil
}

func (f *fakeMovementStore) UpdateMovement(_ context.Context, m core.Movement) error {
	if _, ok := f.movements[m.ID]; !ok {
		return core.ErrNotFound
	}
	f.movements[m.ID] = m
	return nil
}

func (f *fakeMovementStore) DeleteMovement(_ context.Context, id int64) error {
	if _, ok := f.movements[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.movements, id)
	return nil
}

type fakePublisher struct {
	published []int64
	err       error
}

func (f *fakePublisher) PublishExport(_ context.Context, movementID int64) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, movementID)
	return nil
}

func seedTaxonomy(store *fakeMovementStore) {
	store.categories[1] = core.Category{ID: 1, Name: "Groceries", Kind: core.Expense, Nature: core.Variable}
	store.categories[2] = core.Category{ID: 2, Name: "Salary", Kind: core.Income, Nature: core.Fixed}
	store.subcategories[10] = core.Subcategory{ID: 10, CategoryID: 1, Name: "Market"}
	store.subcategories[20] = core.Subcategory{ID: 20, CategoryID: 2, Name: "Bonus"}
}

func validMovement() core.Movement {
	return core.Movement{
		Kind:        core.Expense,
		CategoryID:  1,
		Description: "weekly shop",
		AmountCents: 8500,
		Date:        core.NewDate(2026, 8, 20),
	}
}

func TestCreateMovementPublishes(t *testing.T) {
	store := newFakeMovementStore()
	seedTaxonomy(store)
	pub := &fakePublisher{}
	svc := NewMovementService(store, pub)

	created, err := svc.CreateMovement(context.Background(), validMovement())
	if err != nil {
		t.Fatalf("CreateMovement: %v", err)
	}
	if created.Method != core.MethodCash {
		t.Errorf("Method = %s, want cash default", created.Method)
	}
	if created.Frequency != core.Once {
		t.Errorf("Frequency = %s, want once default", created.Frequency)
	}
	if len(pub.published) != 1 || pub.published[0] != created.ID {
		t.Errorf("published = %v, want [%d]", pub.published, created.ID)
	}
}

func TestCreateMovementKindMustMatchCategory(t *testing.T) {
	store := newFakeMovementStore()
	seedTaxonomy(store)
	svc := NewMovementService(store, nil)

	m := validMovement()
	m.CategoryID = 2 // income category on an expense movement
	_, err := svc.CreateMovement(context.Background(), m)
	fe, ok := core.AsFieldErrors(err)
	if !ok {
		t.Fatalf("err = %v, want FieldErrors", err)
	}
	if _, present := fe["kind"]; !present {
		t.Errorf("missing kind in %v", fe)
	}
	if len(store.movements) != 0 {
		t.Error("mismatched movement was stored")
	}
}

func TestCreateMovementSubcategoryMustBelongToCategory(t *testing.T) {
	store := newFakeMovementStore()
	seedTaxonomy(store)
	svc := NewMovementService(store, nil)

	m := validMovement()
	sub := int64(20) // belongs to the salary category
	m.SubcategoryID = &sub
	_, err := svc.CreateMovement(context.Background(), m)
	fe, ok := core.AsFieldErrors(err)
	if !ok {
		t.Fatalf("err = %v, want FieldErrors", err)
	}
	if _, present := fe["subcategory_id"]; !present {
		t.Errorf("missing subcategory_id in %v", fe)
	}

	sub = 10
	m.SubcategoryID = &sub
	if _, err := svc.CreateMovement(context.Background(), m); err != nil {
		t.Errorf("matching subcategory rejected: %v", err)
	}
}

func TestCreateMovementPublishFailureIsNonFatal(t *testing.T) {
	store := newFakeMovementStore()
	seedTaxonomy(store)
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewMovementService(store, pub)

	created, err := svc.CreateMovement(context.Background(), validMovement())
	if err != nil {
		t.Fatalf("CreateMovement: %v", err)
	}
	if _, ok := store.movements[created.ID]; !ok {
		t.Error("movement not persisted despite publish failure")
	}
}

func TestUpdateMovementRevalidates(t *testing.T) {
	store := newFakeMovementStore()
	seedTaxonomy(store)
	svc := NewMovementService(store, nil)

	created, err := svc.CreateMovement(context.Background(), validMovement())
	if err != nil {
		t.Fatal(err)
	}

	created.CategoryID = 2
	if _, err := svc.UpdateMovement(context.Background(), created); err == nil {
		t.Error("update with mismatched category kind should fail")
	}

	created.CategoryID = 1
	created.AmountCents = 9000
	updated, err := svc.UpdateMovement(context.Background(), created)
	if err != nil {
		t.Fatalf("UpdateMovement: %v", err)
	}
	if updated.AmountCents != 9000 {
		t.Errorf("AmountCents = %d, want 9000", updated.AmountCents)
	}
}
