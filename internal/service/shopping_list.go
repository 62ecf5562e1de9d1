package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/erslabs/mort-manager/backend/internal/domain"
	"github.com/erslabs/mort-manager/backend/internal/repo"
)

// Notifier receives every shopping list written through the service.
// Publish must not block.
type Notifier interface {
	Publish(list domain.ShoppingList)
}

// GenerateOptions tunes Generate.
type GenerateOptions struct {
	// PreservePurchased carries purchased=true over from the previous list
	// for items whose name is still on the regenerated one.
	PreservePurchased bool
}

// ShoppingListService builds and edits per-trip shopping lists.
type ShoppingListService struct {
	trips     repo.TripRepo
	meals     repo.MealRepo
	tripMeals repo.TripMealRepo
	lists     repo.ShoppingListRepo
	notify    Notifier
}

// NewShoppingListService constructs a ShoppingListService backed by the
// provided repos. notify may be nil.
func NewShoppingListService(
	trips repo.TripRepo,
	meals repo.MealRepo,
	tripMeals repo.TripMealRepo,
	lists repo.ShoppingListRepo,
	notify Notifier,
) *ShoppingListService {
	return &ShoppingListService{trips: trips, meals: meals, tripMeals: tripMeals, lists: lists, notify: notify}
}

// Get returns the trip's shopping list.
// Returns domain.ErrNotFound if none has been generated.
func (s *ShoppingListService) Get(ctx context.Context, tripID uuid.UUID) (domain.ShoppingList, error) {
	result, err := s.lists.GetByTrip(ctx, tripID)
	if err != nil {
		return domain.ShoppingList{}, fmt.Errorf("service.ShoppingListService.Get: %w", err)
	}
	return result, nil
}

// Generate rebuilds the trip's shopping list from its meal plan and stores
// it, creating the list on first use. Returns domain.ErrNotFound if the trip
// does not exist.
func (s *ShoppingListService) Generate(ctx context.Context, tripID uuid.UUID, opts GenerateOptions) (domain.ShoppingList, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.ShoppingList{}, fmt.Errorf("service.ShoppingListService.Generate: trip: %w", err)
	}

	tms, err := s.tripMeals.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.ShoppingList{}, fmt.Errorf("service.ShoppingListService.Generate: %w", err)
	}
	plan, err := resolveMeals(ctx, s.meals, tms)
	if err != nil {
		return domain.ShoppingList{}, fmt.Errorf("service.ShoppingListService.Generate: %w", err)
	}

	var purchased map[string]bool
	if opts.PreservePurchased {
		purchased, err = s.purchasedNames(ctx, tripID)
		if err != nil {
			return domain.ShoppingList{}, fmt.Errorf("service.ShoppingListService.Generate: %w", err)
		}
	}

	items, totalCost := Aggregate(plan, trip.GroupSize)
	for i := range items {
		items[i].Purchased = purchased[items[i].Name]
	}

	result, err := s.lists.UpsertByTrip(ctx, tripID, items, totalCost)
	if err != nil {
		return domain.ShoppingList{}, fmt.Errorf("service.ShoppingListService.Generate: %w", err)
	}

	slog.DebugContext(ctx, "shopping list generated",
		"trip_id", tripID,
		"meals", len(plan),
		"items", len(result.Items),
		"total_cost", result.TotalCost,
	)
	s.publish(result)
	return result, nil
}

// Update replaces the items and/or the total cost of the trip's list.
// Returns domain.ErrValidation for a bad patch and domain.ErrNotFound if the
// trip has no list.
func (s *ShoppingListService) Update(ctx context.Context, tripID uuid.UUID, patch domain.ShoppingListPatch) (domain.ShoppingList, error) {
	if err := check(patch); err != nil {
		return domain.ShoppingList{}, err
	}
	result, err := s.lists.UpdateByTrip(ctx, tripID, patch)
	if err != nil {
		return domain.ShoppingList{}, fmt.Errorf("service.ShoppingListService.Update: %w", err)
	}
	s.publish(result)
	return result, nil
}

// Aggregate merges the ingredients of every resolved meal in plan into one
// list scaled by groupSize, and sums the meal costs times groupSize.
//
// Items are keyed by exact ingredient name and kept in first-encounter order.
// Quantities are free text, so a repeated ingredient is recorded by
// prepending "<quantity> x<groupSize> + " to the existing quantity; the
// category of the first occurrence wins. Returned items are unpurchased.
func Aggregate(plan []domain.TripMealDetail, groupSize int) ([]domain.ShoppingItem, float64) {
	items := []domain.ShoppingItem{}
	index := map[string]int{}
	var totalCost float64

	for _, entry := range plan {
		if entry.Meal == nil {
			continue
		}
		totalCost += entry.Meal.Cost * float64(groupSize)

		for _, ing := range entry.Meal.Ingredients {
			scaled := fmt.Sprintf("%s x%d", ing.Quantity, groupSize)
			if i, ok := index[ing.Name]; ok {
				items[i].Quantity = scaled + " + " + items[i].Quantity
				continue
			}
			index[ing.Name] = len(items)
			items = append(items, domain.ShoppingItem{
				Name:     ing.Name,
				Quantity: scaled,
				Category: ing.Category,
			})
		}
	}
	return items, totalCost
}

// purchasedNames returns the names checked off on the trip's current list.
// A trip without a list has none.
func (s *ShoppingListService) purchasedNames(ctx context.Context, tripID uuid.UUID) (map[string]bool, error) {
	prev, err := s.lists.GetByTrip(ctx, tripID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	names := map[string]bool{}
	for _, item := range prev.Items {
		if item.Purchased {
			names[item.Name] = true
		}
	}
	return names, nil
}

func (s *ShoppingListService) publish(list domain.ShoppingList) {
	if s.notify != nil {
		s.notify.Publish(list)
	}
}
