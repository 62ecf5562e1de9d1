package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/erslabs/mort-manager/backend/internal/domain"
	"github.com/erslabs/mort-manager/backend/internal/repo"
)

// TripMealService manages a trip's meal plan: one meal per (day, meal type)
// slot.
type TripMealService struct {
	trips     repo.TripRepo
	meals     repo.MealRepo
	tripMeals repo.TripMealRepo
}

// NewTripMealService constructs a TripMealService backed by the provided repos.
func NewTripMealService(trips repo.TripRepo, meals repo.MealRepo, tripMeals repo.TripMealRepo) *TripMealService {
	return &TripMealService{trips: trips, meals: meals, tripMeals: tripMeals}
}

// Assign puts mealID into the slot of tripID, replacing any current occupant.
// Returns domain.ErrValidation for a bad slot and domain.ErrNotFound if the
// trip or the meal does not exist.
func (s *TripMealService) Assign(ctx context.Context, tripID uuid.UUID, slot domain.Slot, mealID uuid.UUID) (domain.TripMeal, error) {
	if err := check(slot); err != nil {
		return domain.TripMeal{}, err
	}
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return domain.TripMeal{}, fmt.Errorf("service.TripMealService.Assign: trip: %w", err)
	}
	if _, err := s.meals.GetByID(ctx, mealID); err != nil {
		return domain.TripMeal{}, fmt.Errorf("service.TripMealService.Assign: meal: %w", err)
	}

	result, err := s.tripMeals.SetSlot(ctx, tripID, slot, mealID)
	if err != nil {
		return domain.TripMeal{}, fmt.Errorf("service.TripMealService.Assign: %w", err)
	}
	return result, nil
}

// Clear empties the slot.
// Returns domain.ErrValidation for a bad slot and domain.ErrNotFound if the
// slot is already empty.
func (s *TripMealService) Clear(ctx context.Context, tripID uuid.UUID, slot domain.Slot) error {
	if err := check(slot); err != nil {
		return err
	}
	if err := s.tripMeals.RemoveBySlot(ctx, tripID, slot); err != nil {
		return fmt.Errorf("service.TripMealService.Clear: %w", err)
	}
	return nil
}

// ListWithMeals returns the trip's meal plan in creation order, each entry
// joined with its meal. Entries whose meal does not resolve carry a nil Meal.
// An unknown trip yields an empty plan.
func (s *TripMealService) ListWithMeals(ctx context.Context, tripID uuid.UUID) ([]domain.TripMealDetail, error) {
	tms, err := s.tripMeals.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripMealService.ListWithMeals: %w", err)
	}
	out, err := resolveMeals(ctx, s.meals, tms)
	if err != nil {
		return nil, fmt.Errorf("service.TripMealService.ListWithMeals: %w", err)
	}
	return out, nil
}

// resolveMeals joins each trip meal with its meal, fetching each distinct
// meal once. Missing meals are left nil; any other error aborts.
func resolveMeals(ctx context.Context, meals repo.MealRepo, tms []domain.TripMeal) ([]domain.TripMealDetail, error) {
	cache := map[uuid.UUID]*domain.Meal{}
	out := make([]domain.TripMealDetail, 0, len(tms))
	for _, tm := range tms {
		meal, seen := cache[tm.MealID]
		if !seen {
			m, err := meals.GetByID(ctx, tm.MealID)
			switch {
			case err == nil:
				meal = &m
			case !errors.Is(err, domain.ErrNotFound):
				return nil, err
			}
			cache[tm.MealID] = meal
		}
		var copied *domain.Meal
		if meal != nil {
			m := *meal
			copied = &m
		}
		out = append(out, domain.TripMealDetail{TripMeal: tm, Meal: copied})
	}
	return out, nil
}
