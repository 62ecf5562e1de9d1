package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/erslabs/mort-manager/backend/internal/domain"
	"github.com/erslabs/mort-manager/backend/internal/handler"
	"github.com/erslabs/mort-manager/backend/internal/service"
)

// Test doubles for the handler's service interfaces.
// Set only the method fields your test needs.

type mockTripServicer struct {
	create  func(ctx context.Context, in domain.TripInput) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context) ([]domain.Trip, error)
	update  func(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	return m.create(ctx, in)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripServicer) Update(ctx context.Context, id uuid.UUID, p domain.TripPatch) (domain.Trip, error) {
	return m.update(ctx, id, p)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockMealServicer struct {
	create  func(ctx context.Context, in domain.MealInput) (domain.Meal, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Meal, error)
	list    func(ctx context.Context, f service.MealFilter) ([]domain.Meal, error)
}

func (m *mockMealServicer) Create(ctx context.Context, in domain.MealInput) (domain.Meal, error) {
	return m.create(ctx, in)
}
func (m *mockMealServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Meal, error) {
	return m.getByID(ctx, id)
}
func (m *mockMealServicer) List(ctx context.Context, f service.MealFilter) ([]domain.Meal, error) {
	return m.list(ctx, f)
}

type mockTripMealServicer struct {
	assign        func(ctx context.Context, tripID uuid.UUID, slot domain.Slot, mealID uuid.UUID) (domain.TripMeal, error)
	clear         func(ctx context.Context, tripID uuid.UUID, slot domain.Slot) error
	listWithMeals func(ctx context.Context, tripID uuid.UUID) ([]domain.TripMealDetail, error)
}

func (m *mockTripMealServicer) Assign(ctx context.Context, tripID uuid.UUID, slot domain.Slot, mealID uuid.UUID) (domain.TripMeal, error) {
	return m.assign(ctx, tripID, slot, mealID)
}
func (m *mockTripMealServicer) Clear(ctx context.Context, tripID uuid.UUID, slot domain.Slot) error {
	return m.clear(ctx, tripID, slot)
}
func (m *mockTripMealServicer) ListWithMeals(ctx context.Context, tripID uuid.UUID) ([]domain.TripMealDetail, error) {
	return m.listWithMeals(ctx, tripID)
}

type mockShoppingListServicer struct {
	get      func(ctx context.Context, tripID uuid.UUID) (domain.ShoppingList, error)
	generate func(ctx context.Context, tripID uuid.UUID, opts service.GenerateOptions) (domain.ShoppingList, error)
	update   func(ctx context.Context, tripID uuid.UUID, p domain.ShoppingListPatch) (domain.ShoppingList, error)
}

func (m *mockShoppingListServicer) Get(ctx context.Context, tripID uuid.UUID) (domain.ShoppingList, error) {
	return m.get(ctx, tripID)
}
func (m *mockShoppingListServicer) Generate(ctx context.Context, tripID uuid.UUID, opts service.GenerateOptions) (domain.ShoppingList, error) {
	return m.generate(ctx, tripID, opts)
}
func (m *mockShoppingListServicer) Update(ctx context.Context, tripID uuid.UUID, p domain.ShoppingListPatch) (domain.ShoppingList, error) {
	return m.update(ctx, tripID, p)
}

type mockNutritionServicer struct {
	summary func(ctx context.Context, tripID uuid.UUID) (domain.NutritionSummary, error)
}

func (m *mockNutritionServicer) Summary(ctx context.Context, tripID uuid.UUID) (domain.NutritionSummary, error) {
	return m.summary(ctx, tripID)
}

type mockLiveSubscriber struct {
	subscribe func(w http.ResponseWriter, r *http.Request, tripID uuid.UUID)
}

func (m *mockLiveSubscriber) Subscribe(w http.ResponseWriter, r *http.Request, tripID uuid.UUID) {
	m.subscribe(w, r, tripID)
}

// compile-time checks: each mock must satisfy its handler interface.
var (
	_ handler.TripServicer         = (*mockTripServicer)(nil)
	_ handler.MealServicer         = (*mockMealServicer)(nil)
	_ handler.TripMealServicer     = (*mockTripMealServicer)(nil)
	_ handler.ShoppingListServicer = (*mockShoppingListServicer)(nil)
	_ handler.NutritionServicer    = (*mockNutritionServicer)(nil)
	_ handler.LiveSubscriber       = (*mockLiveSubscriber)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given services into the router.
// This mirrors how main.go wires it, minus the base path mount.
func newHTTPHandler(svc handler.Services) http.Handler {
	return handler.NewRouter(handler.NewServer(svc))
}

// serve sends one request through h and returns the recorded response.
func serve(h http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// decodeError decodes an ErrorResponse body.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:                 uuid.New(),
		Name:               "Sierra Loop",
		Duration:           3,
		GroupSize:          4,
		CookingEquipment:   domain.BackpackingStove,
		DietaryPreferences: []domain.DietaryTag{domain.Vegetarian},
	}
}

func mealFixture() domain.Meal {
	return domain.Meal{
		ID:          uuid.New(),
		Name:        "Quinoa Power Bowl",
		Description: "Quinoa with dried vegetables",
		Type:        domain.Lunch,
		Calories:    520,
		CookTime:    15,
		Weight:      6.8,
		Cost:        5.25,
		DietaryTags: []domain.DietaryTag{domain.Vegan, domain.GlutenFree},
		Ingredients: []domain.Ingredient{
			{Name: "Quinoa", Quantity: "1/2 cup", Category: "Grains"},
		},
		Instructions: "Boil water, add quinoa.",
		Servings:     1,
	}
}
