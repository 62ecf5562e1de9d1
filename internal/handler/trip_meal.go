package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/erslabs/mort-manager/backend/internal/domain"
)

// addTripMealRequest is the body of POST /trips/{id}/meals. The trip is
// taken from the path; a tripId in the body is ignored.
type addTripMealRequest struct {
	MealID   *uuid.UUID      `json:"mealId"`
	Day      int             `json:"day"`
	MealType domain.MealType `json:"mealType"`
}

// ListTripMeals handles GET /trips/{id}/meals.
// Each entry carries its meal inline; an unknown trip has an empty plan.
func (s *Server) ListTripMeals(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody(tripErrors.notFound))
		return
	}

	plan, err := s.tripMeals.ListWithMeals(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, r, err, tripMealErrors)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// AddTripMeal handles POST /trips/{id}/meals.
// Assigning to an occupied slot replaces its meal.
func (s *Server) AddTripMeal(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody(tripErrors.notFound))
		return
	}

	var body addTripMealRequest
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err, tripMealErrors)
		return
	}
	if body.MealID == nil {
		writeJSON(w, http.StatusBadRequest, validationBody(tripMealErrors.invalid))
		return
	}

	slot := domain.Slot{Day: body.Day, MealType: body.MealType}
	tm, err := s.tripMeals.Assign(r.Context(), tripID, slot, *body.MealID)
	if err != nil {
		writeServiceError(w, r, err, tripMealErrors)
		return
	}
	writeJSON(w, http.StatusOK, tm)
}

// RemoveTripMeal handles DELETE /trips/{id}/meals?day=N&mealType=T.
func (s *Server) RemoveTripMeal(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody(tripErrors.notFound))
		return
	}

	var (
		day      int
		mealType string
	)
	if queryParam(r, "day", true, &day) != nil || queryParam(r, "mealType", true, &mealType) != nil {
		writeJSON(w, http.StatusBadRequest, validationBody("day and mealType are required"))
		return
	}

	slot := domain.Slot{Day: day, MealType: domain.MealType(mealType)}
	if err := s.tripMeals.Clear(r.Context(), tripID, slot); err != nil {
		writeServiceError(w, r, err, tripMealErrors)
		return
	}
	writeSuccess(w)
}
