package handler

import (
	"net/http"

	"github.com/erslabs/mort-manager/backend/internal/domain"
)

// tripRequest is the body of POST /trips.
type tripRequest struct {
	Name               string                  `json:"name"`
	Duration           int                     `json:"duration"`
	GroupSize          int                     `json:"groupSize"`
	CookingEquipment   domain.CookingEquipment `json:"cookingEquipment"`
	DietaryPreferences []domain.DietaryTag     `json:"dietaryPreferences"`
}

// tripPatchRequest is the body of PUT /trips/{id}. Absent or null fields are
// left unchanged; an empty dietaryPreferences array clears the set.
type tripPatchRequest struct {
	Name               *string                  `json:"name"`
	Duration           *int                     `json:"duration"`
	GroupSize          *int                     `json:"groupSize"`
	CookingEquipment   *domain.CookingEquipment `json:"cookingEquipment"`
	DietaryPreferences []domain.DietaryTag      `json:"dietaryPreferences"`
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, tripErrors)
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body tripRequest
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err, tripErrors)
		return
	}

	created, err := s.trips.Create(r.Context(), domain.TripInput{
		Name:               body.Name,
		Duration:           body.Duration,
		GroupSize:          body.GroupSize,
		CookingEquipment:   body.CookingEquipment,
		DietaryPreferences: body.DietaryPreferences,
	})
	if err != nil {
		writeServiceError(w, r, err, tripErrors)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "tripId")
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody(tripErrors.notFound))
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, tripErrors)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "tripId")
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody(tripErrors.notFound))
		return
	}

	var body tripPatchRequest
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err, tripErrors)
		return
	}

	updated, err := s.trips.Update(r.Context(), id, domain.TripPatch{
		Name:               body.Name,
		Duration:           body.Duration,
		GroupSize:          body.GroupSize,
		CookingEquipment:   body.CookingEquipment,
		DietaryPreferences: body.DietaryPreferences,
	})
	if err != nil {
		writeServiceError(w, r, err, tripErrors)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "tripId")
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody(tripErrors.notFound))
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, tripErrors)
		return
	}
	writeSuccess(w)
}
