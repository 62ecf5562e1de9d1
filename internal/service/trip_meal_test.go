package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erslabs/mort-manager/backend/internal/domain"
	"github.com/erslabs/mort-manager/backend/internal/repo"
	"github.com/erslabs/mort-manager/backend/internal/service"
)

// planner bundles a memory store with the services under test.
type planner struct {
	store     *repo.Memory
	trips     *service.TripService
	meals     *service.MealService
	tripMeals *service.TripMealService
}

func newPlanner(t *testing.T) planner {
	t.Helper()
	store := repo.NewMemory()
	return planner{
		store:     store,
		trips:     service.NewTripService(store.Trips()),
		meals:     service.NewMealService(store.Meals()),
		tripMeals: service.NewTripMealService(store.Trips(), store.Meals(), store.TripMeals()),
	}
}

func (p planner) trip(t *testing.T, in domain.TripInput) domain.Trip {
	t.Helper()
	trip, err := p.trips.Create(context.Background(), in)
	require.NoError(t, err)
	return trip
}

func (p planner) meal(t *testing.T, in domain.MealInput) domain.Meal {
	t.Helper()
	meal, err := p.meals.Create(context.Background(), in)
	require.NoError(t, err)
	return meal
}

func TestTripMealService_Assign_OverwritesSlot(t *testing.T) {
	p := newPlanner(t)
	ctx := context.Background()
	trip := p.trip(t, validTrip())
	m1 := p.meal(t, validMeal())
	m2 := p.meal(t, validMeal())

	slot := domain.Slot{Day: 1, MealType: domain.Breakfast}
	_, err := p.tripMeals.Assign(ctx, trip.ID, slot, m1.ID)
	require.NoError(t, err)
	second, err := p.tripMeals.Assign(ctx, trip.ID, slot, m2.ID)
	require.NoError(t, err)

	plan, err := p.tripMeals.ListWithMeals(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, plan, 1, "exactly one trip meal per slot")
	assert.Equal(t, second.ID, plan[0].ID)
	assert.Equal(t, m2.ID, plan[0].MealID)
	require.NotNil(t, plan[0].Meal)
	assert.Equal(t, m2.ID, plan[0].Meal.ID)
}

func TestTripMealService_Assign_Errors(t *testing.T) {
	p := newPlanner(t)
	ctx := context.Background()
	trip := p.trip(t, validTrip())
	meal := p.meal(t, validMeal())

	tests := []struct {
		name    string
		tripID  uuid.UUID
		slot    domain.Slot
		mealID  uuid.UUID
		wantErr error
	}{
		{"day zero", trip.ID, domain.Slot{Day: 0, MealType: domain.Lunch}, meal.ID, domain.ErrValidation},
		{"day over a year", trip.ID, domain.Slot{Day: 366, MealType: domain.Lunch}, meal.ID, domain.ErrValidation},
		{"day past int4", trip.ID, domain.Slot{Day: 1 << 31, MealType: domain.Lunch}, meal.ID, domain.ErrValidation},
		{"unknown meal type", trip.ID, domain.Slot{Day: 1, MealType: "brunch"}, meal.ID, domain.ErrValidation},
		{"unknown trip", uuid.New(), domain.Slot{Day: 1, MealType: domain.Lunch}, meal.ID, domain.ErrNotFound},
		{"unknown meal", trip.ID, domain.Slot{Day: 1, MealType: domain.Lunch}, uuid.New(), domain.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.tripMeals.Assign(ctx, tc.tripID, tc.slot, tc.mealID)

			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	plan, err := p.tripMeals.ListWithMeals(ctx, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, plan, "failed assignments write nothing")
}

func TestTripMealService_Clear(t *testing.T) {
	p := newPlanner(t)
	ctx := context.Background()
	trip := p.trip(t, validTrip())
	meal := p.meal(t, validMeal())
	slot := domain.Slot{Day: 2, MealType: domain.Dinner}

	_, err := p.tripMeals.Assign(ctx, trip.ID, slot, meal.ID)
	require.NoError(t, err)

	require.NoError(t, p.tripMeals.Clear(ctx, trip.ID, slot))
	assert.ErrorIs(t, p.tripMeals.Clear(ctx, trip.ID, slot), domain.ErrNotFound)
	assert.ErrorIs(t, p.tripMeals.Clear(ctx, trip.ID, domain.Slot{Day: 2}), domain.ErrValidation)
}

// danglingMeals wraps a MealRepo so chosen ids report as missing.
type danglingMeals struct {
	repo.MealRepo
	missing uuid.UUID
	err     error
}

func (d danglingMeals) GetByID(ctx context.Context, id uuid.UUID) (domain.Meal, error) {
	if id == d.missing {
		return domain.Meal{}, d.err
	}
	return d.MealRepo.GetByID(ctx, id)
}

func TestTripMealService_ListWithMeals_DanglingMeal(t *testing.T) {
	store := repo.NewMemory()
	ctx := context.Background()
	trip, err := store.Trips().Create(ctx, validTrip())
	require.NoError(t, err)

	ghost := uuid.New()
	_, err = store.TripMeals().SetSlot(ctx, trip.ID, domain.Slot{Day: 1, MealType: domain.Lunch}, ghost)
	require.NoError(t, err)

	meals := danglingMeals{MealRepo: store.Meals(), missing: ghost, err: domain.ErrNotFound}
	svc := service.NewTripMealService(store.Trips(), meals, store.TripMeals())

	plan, err := svc.ListWithMeals(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, plan, 1)
	assert.Nil(t, plan[0].Meal)
}

func TestTripMealService_ListWithMeals_RepoError(t *testing.T) {
	store := repo.NewMemory()
	ctx := context.Background()
	trip, err := store.Trips().Create(ctx, validTrip())
	require.NoError(t, err)

	broken := uuid.New()
	_, err = store.TripMeals().SetSlot(ctx, trip.ID, domain.Slot{Day: 1, MealType: domain.Lunch}, broken)
	require.NoError(t, err)

	repoErr := errors.New("db exploded")
	meals := danglingMeals{MealRepo: store.Meals(), missing: broken, err: repoErr}
	svc := service.NewTripMealService(store.Trips(), meals, store.TripMeals())

	_, err = svc.ListWithMeals(ctx, trip.ID)

	assert.ErrorIs(t, err, repoErr)
}
