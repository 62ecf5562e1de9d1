package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/erslabs/mort-manager/backend/internal/domain"
	"github.com/erslabs/mort-manager/backend/internal/repo"
)

// NutritionService reports calorie, weight and cost totals for a trip's plan.
type NutritionService struct {
	trips     repo.TripRepo
	meals     repo.MealRepo
	tripMeals repo.TripMealRepo
}

// NewNutritionService constructs a NutritionService backed by the provided repos.
func NewNutritionService(trips repo.TripRepo, meals repo.MealRepo, tripMeals repo.TripMealRepo) *NutritionService {
	return &NutritionService{trips: trips, meals: meals, tripMeals: tripMeals}
}

// Summary returns the nutrition overview of a trip.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *NutritionService) Summary(ctx context.Context, tripID uuid.UUID) (domain.NutritionSummary, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.NutritionSummary{}, fmt.Errorf("service.NutritionService.Summary: %w", err)
	}
	tms, err := s.tripMeals.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.NutritionSummary{}, fmt.Errorf("service.NutritionService.Summary: %w", err)
	}
	plan, err := resolveMeals(ctx, s.meals, tms)
	if err != nil {
		return domain.NutritionSummary{}, fmt.Errorf("service.NutritionService.Summary: %w", err)
	}
	return domain.Summarize(trip, plan), nil
}
