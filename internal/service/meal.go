package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/erslabs/mort-manager/backend/internal/domain"
	"github.com/erslabs/mort-manager/backend/internal/repo"
)

// MealFilter selects meals for List. At most one criterion applies, chosen
// in this order: Search, then Type, then DietaryTags. Empty fields are absent;
// a non-empty Search is matched as given, whitespace included.
type MealFilter struct {
	Search      string
	Type        domain.MealType
	DietaryTags []domain.DietaryTag
}

// MealService implements business logic for the meal catalogue.
type MealService struct {
	meals repo.MealRepo
}

// NewMealService constructs a MealService backed by the provided MealRepo.
func NewMealService(meals repo.MealRepo) *MealService {
	return &MealService{meals: meals}
}

// Create validates and persists a new meal.
// Returns domain.ErrValidation if input violates business rules.
func (s *MealService) Create(ctx context.Context, in domain.MealInput) (domain.Meal, error) {
	in.DietaryTags = domain.NormalizeDietaryTags(in.DietaryTags)
	if err := requireName(in.Name); err != nil {
		return domain.Meal{}, err
	}
	if err := check(in); err != nil {
		return domain.Meal{}, err
	}
	result, err := s.meals.Create(ctx, in)
	if err != nil {
		return domain.Meal{}, fmt.Errorf("service.MealService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single meal by ID.
// Returns domain.ErrNotFound if it does not exist.
func (s *MealService) GetByID(ctx context.Context, id uuid.UUID) (domain.Meal, error) {
	result, err := s.meals.GetByID(ctx, id)
	if err != nil {
		return domain.Meal{}, fmt.Errorf("service.MealService.GetByID: %w", err)
	}
	return result, nil
}

// List returns the meals matching the highest-precedence criterion of f, or
// every meal when f is empty. Tags are normalized first, so a filter of only
// blank tags matches everything.
func (s *MealService) List(ctx context.Context, f MealFilter) ([]domain.Meal, error) {
	var (
		meals []domain.Meal
		err   error
	)

	tags := domain.NormalizeDietaryTags(f.DietaryTags)
	switch {
	case f.Search != "":
		meals, err = s.meals.Search(ctx, f.Search)
	case f.Type != "":
		meals, err = s.meals.ListByType(ctx, f.Type)
	case len(tags) > 0:
		meals, err = s.meals.ListByDietaryTags(ctx, tags)
	default:
		meals, err = s.meals.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("service.MealService.List: %w", err)
	}
	if meals == nil {
		return []domain.Meal{}, nil
	}
	return meals, nil
}
