// Package handler implements the HTTP handlers for the meal planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but all share the same Server struct so
// they can access its dependencies. NewRouter registers them on a chi router.
package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/erslabs/mort-manager/backend/internal/domain"
	"github.com/erslabs/mort-manager/backend/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.
type TripServicer interface {
	Create(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.TripPatch) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MealServicer defines the meal catalogue operations.
type MealServicer interface {
	Create(ctx context.Context, in domain.MealInput) (domain.Meal, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Meal, error)
	List(ctx context.Context, f service.MealFilter) ([]domain.Meal, error)
}

// TripMealServicer defines the meal plan operations.
type TripMealServicer interface {
	Assign(ctx context.Context, tripID uuid.UUID, slot domain.Slot, mealID uuid.UUID) (domain.TripMeal, error)
	Clear(ctx context.Context, tripID uuid.UUID, slot domain.Slot) error
	ListWithMeals(ctx context.Context, tripID uuid.UUID) ([]domain.TripMealDetail, error)
}

// ShoppingListServicer defines the shopping list operations.
type ShoppingListServicer interface {
	Get(ctx context.Context, tripID uuid.UUID) (domain.ShoppingList, error)
	Generate(ctx context.Context, tripID uuid.UUID, opts service.GenerateOptions) (domain.ShoppingList, error)
	Update(ctx context.Context, tripID uuid.UUID, patch domain.ShoppingListPatch) (domain.ShoppingList, error)
}

// NutritionServicer defines the nutrition overview operation.
type NutritionServicer interface {
	Summary(ctx context.Context, tripID uuid.UUID) (domain.NutritionSummary, error)
}

// LiveSubscriber upgrades a request to a stream of a trip's shopping list
// updates. It owns the connection once called.
type LiveSubscriber interface {
	Subscribe(w http.ResponseWriter, r *http.Request, tripID uuid.UUID)
}

// Services bundles the dependencies of Server. Tests may leave fields nil
// when they only exercise some routes.
type Services struct {
	Trips         TripServicer
	Meals         MealServicer
	TripMeals     TripMealServicer
	ShoppingLists ShoppingListServicer
	Nutrition     NutritionServicer
	Live          LiveSubscriber
}

// Server holds the services every handler method uses.
type Server struct {
	trips     TripServicer
	meals     MealServicer
	tripMeals TripMealServicer
	lists     ShoppingListServicer
	nutrition NutritionServicer
	live      LiveSubscriber
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services) *Server {
	return &Server{
		trips:     svc.Trips,
		meals:     svc.Meals,
		tripMeals: svc.TripMeals,
		lists:     svc.ShoppingLists,
		nutrition: svc.Nutrition,
		live:      svc.Live,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Services{})
}
