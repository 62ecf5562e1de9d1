package repo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/erslabs/mort-manager/backend/internal/domain"
)

// Memory is a process-lifetime store implementing every repository interface.
// All four collections share one lock, so multi-collection operations (slot
// replacement, trip deletion with cascade) are a single critical section.
//
// Records are copied on the way in and on the way out; callers never share
// slices with the store.
type Memory struct {
	mu sync.RWMutex

	trips     table[domain.Trip]
	meals     table[domain.Meal]
	tripMeals table[domain.TripMeal]
	lists     table[domain.ShoppingList]

	slots      map[slotKey]uuid.UUID   // slot -> trip meal id
	listByTrip map[uuid.UUID]uuid.UUID // trip id -> shopping list id
}

type slotKey struct {
	tripID   uuid.UUID
	day      int
	mealType domain.MealType
}

func keyOf(tripID uuid.UUID, slot domain.Slot) slotKey {
	return slotKey{tripID: tripID, day: slot.Day, mealType: slot.MealType}
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		trips:      newTable[domain.Trip](),
		meals:      newTable[domain.Meal](),
		tripMeals:  newTable[domain.TripMeal](),
		lists:      newTable[domain.ShoppingList](),
		slots:      map[slotKey]uuid.UUID{},
		listByTrip: map[uuid.UUID]uuid.UUID{},
	}
}

// Trips returns the store's TripRepo view.
func (m *Memory) Trips() TripRepo { return memTrips{m} }

// Meals returns the store's MealRepo view.
func (m *Memory) Meals() MealRepo { return memMeals{m} }

// TripMeals returns the store's TripMealRepo view.
func (m *Memory) TripMeals() TripMealRepo { return memTripMeals{m} }

// ShoppingLists returns the store's ShoppingListRepo view.
func (m *Memory) ShoppingLists() ShoppingListRepo { return memShoppingLists{m} }

// table is an insertion-ordered map of records keyed by id.
type table[T any] struct {
	rows  map[uuid.UUID]T
	order []uuid.UUID
}

func newTable[T any]() table[T] {
	return table[T]{rows: map[uuid.UUID]T{}}
}

func (t *table[T]) get(id uuid.UUID) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

// put inserts or replaces v. A new id goes to the end of the order.
func (t *table[T]) put(id uuid.UUID, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id uuid.UUID) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// filter returns, in insertion order, the records keep accepts.
func (t *table[T]) filter(keep func(T) bool) []T {
	out := []T{}
	for _, id := range t.order {
		v := t.rows[id]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// ---- trips ----

type memTrips struct{ m *Memory }

func (r memTrips) Create(_ context.Context, in domain.TripInput) (domain.Trip, error) {
	t := domain.NewTrip(uuid.New(), in)

	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.trips.put(t.ID, t)
	return cloneTrip(t), nil
}

func (r memTrips) GetByID(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	t, ok := r.m.trips.get(id)
	if !ok {
		return domain.Trip{}, fmt.Errorf("repo.Memory.Trips.GetByID: %w", domain.ErrNotFound)
	}
	return cloneTrip(t), nil
}

func (r memTrips) List(_ context.Context) ([]domain.Trip, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return cloneEach(r.m.trips.filter(nil), cloneTrip), nil
}

func (r memTrips) Update(_ context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	t, ok := r.m.trips.get(id)
	if !ok {
		return domain.Trip{}, fmt.Errorf("repo.Memory.Trips.Update: %w", domain.ErrNotFound)
	}
	t = t.Apply(patch)
	r.m.trips.put(id, t)
	return cloneTrip(t), nil
}

func (r memTrips) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if !r.m.trips.remove(id) {
		return fmt.Errorf("repo.Memory.Trips.Delete: %w", domain.ErrNotFound)
	}
	for _, tm := range r.m.tripMeals.filter(func(tm domain.TripMeal) bool { return tm.TripID == id }) {
		r.m.tripMeals.remove(tm.ID)
		delete(r.m.slots, keyOf(id, tm.Slot()))
	}
	if listID, ok := r.m.listByTrip[id]; ok {
		r.m.lists.remove(listID)
		delete(r.m.listByTrip, id)
	}
	return nil
}

// ---- meals ----

type memMeals struct{ m *Memory }

func (r memMeals) Create(_ context.Context, in domain.MealInput) (domain.Meal, error) {
	meal := domain.NewMeal(uuid.New(), in)

	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.meals.put(meal.ID, meal)
	return cloneMeal(meal), nil
}

func (r memMeals) GetByID(_ context.Context, id uuid.UUID) (domain.Meal, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	meal, ok := r.m.meals.get(id)
	if !ok {
		return domain.Meal{}, fmt.Errorf("repo.Memory.Meals.GetByID: %w", domain.ErrNotFound)
	}
	return cloneMeal(meal), nil
}

func (r memMeals) List(_ context.Context) ([]domain.Meal, error) {
	return r.where(nil), nil
}

func (r memMeals) ListByType(_ context.Context, t domain.MealType) ([]domain.Meal, error) {
	return r.where(func(m domain.Meal) bool { return m.Type == t }), nil
}

func (r memMeals) ListByDietaryTags(_ context.Context, tags []domain.DietaryTag) ([]domain.Meal, error) {
	return r.where(func(m domain.Meal) bool { return m.HasAnyTag(tags) }), nil
}

func (r memMeals) Search(_ context.Context, query string) ([]domain.Meal, error) {
	q := strings.ToLower(query)
	return r.where(func(m domain.Meal) bool {
		return strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.Description), q)
	}), nil
}

func (r memMeals) Count(_ context.Context) (int, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return len(r.m.meals.rows), nil
}

func (r memMeals) where(keep func(domain.Meal) bool) []domain.Meal {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return cloneEach(r.m.meals.filter(keep), cloneMeal)
}

// ---- trip meals ----

type memTripMeals struct{ m *Memory }

func (r memTripMeals) SetSlot(_ context.Context, tripID uuid.UUID, slot domain.Slot, mealID uuid.UUID) (domain.TripMeal, error) {
	tm := domain.TripMeal{
		ID:       uuid.New(),
		TripID:   tripID,
		MealID:   mealID,
		Day:      slot.Day,
		MealType: slot.MealType,
	}
	key := keyOf(tripID, slot)

	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if old, ok := r.m.slots[key]; ok {
		r.m.tripMeals.remove(old)
	}
	r.m.tripMeals.put(tm.ID, tm)
	r.m.slots[key] = tm.ID
	return tm, nil
}

func (r memTripMeals) ListByTrip(_ context.Context, tripID uuid.UUID) ([]domain.TripMeal, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	return r.m.tripMeals.filter(func(tm domain.TripMeal) bool { return tm.TripID == tripID }), nil
}

func (r memTripMeals) RemoveBySlot(_ context.Context, tripID uuid.UUID, slot domain.Slot) error {
	key := keyOf(tripID, slot)

	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	id, ok := r.m.slots[key]
	if !ok {
		return fmt.Errorf("repo.Memory.TripMeals.RemoveBySlot: %w", domain.ErrNotFound)
	}
	r.m.tripMeals.remove(id)
	delete(r.m.slots, key)
	return nil
}

// ---- shopping lists ----

type memShoppingLists struct{ m *Memory }

func (r memShoppingLists) Create(_ context.Context, tripID uuid.UUID, items []domain.ShoppingItem, totalCost float64) (domain.ShoppingList, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, ok := r.m.listByTrip[tripID]; ok {
		return domain.ShoppingList{}, fmt.Errorf("repo.Memory.ShoppingLists.Create: trip already has a list: %w", domain.ErrValidation)
	}
	return r.insert(tripID, items, totalCost), nil
}

func (r memShoppingLists) GetByTrip(_ context.Context, tripID uuid.UUID) (domain.ShoppingList, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	l, ok := r.byTrip(tripID)
	if !ok {
		return domain.ShoppingList{}, fmt.Errorf("repo.Memory.ShoppingLists.GetByTrip: %w", domain.ErrNotFound)
	}
	return cloneList(l), nil
}

func (r memShoppingLists) UpdateByTrip(_ context.Context, tripID uuid.UUID, patch domain.ShoppingListPatch) (domain.ShoppingList, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	l, ok := r.byTrip(tripID)
	if !ok {
		return domain.ShoppingList{}, fmt.Errorf("repo.Memory.ShoppingLists.UpdateByTrip: %w", domain.ErrNotFound)
	}
	l = l.Apply(patch)
	r.m.lists.put(l.ID, l)
	return cloneList(l), nil
}

func (r memShoppingLists) UpsertByTrip(_ context.Context, tripID uuid.UUID, items []domain.ShoppingItem, totalCost float64) (domain.ShoppingList, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	l, ok := r.byTrip(tripID)
	if !ok {
		return r.insert(tripID, items, totalCost), nil
	}
	l.Items = domain.CloneItems(items)
	l.TotalCost = totalCost
	r.m.lists.put(l.ID, l)
	return cloneList(l), nil
}

// byTrip must be called with the lock held.
func (r memShoppingLists) byTrip(tripID uuid.UUID) (domain.ShoppingList, bool) {
	id, ok := r.m.listByTrip[tripID]
	if !ok {
		return domain.ShoppingList{}, false
	}
	return r.m.lists.get(id)
}

// insert must be called with the write lock held.
func (r memShoppingLists) insert(tripID uuid.UUID, items []domain.ShoppingItem, totalCost float64) domain.ShoppingList {
	l := domain.ShoppingList{
		ID:        uuid.New(),
		TripID:    tripID,
		Items:     domain.CloneItems(items),
		TotalCost: totalCost,
	}
	r.m.lists.put(l.ID, l)
	r.m.listByTrip[tripID] = l.ID
	return cloneList(l)
}

// ---- copies ----

func cloneTrip(t domain.Trip) domain.Trip {
	t.DietaryPreferences = cloneSlice(t.DietaryPreferences)
	return t
}

func cloneMeal(m domain.Meal) domain.Meal {
	m.DietaryTags = cloneSlice(m.DietaryTags)
	m.Ingredients = cloneSlice(m.Ingredients)
	return m
}

func cloneList(l domain.ShoppingList) domain.ShoppingList {
	l.Items = domain.CloneItems(l.Items)
	return l
}

// cloneSlice copies s and never returns nil.
func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func cloneEach[T any](in []T, clone func(T) T) []T {
	for i := range in {
		in[i] = clone(in[i])
	}
	return in
}

var (
	_ TripRepo         = memTrips{}
	_ MealRepo         = memMeals{}
	_ TripMealRepo     = memTripMeals{}
	_ ShoppingListRepo = memShoppingLists{}
)
