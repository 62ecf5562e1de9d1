package handler

import (
	"net/http"

	"github.com/erslabs/mort-manager/backend/internal/domain"
	"github.com/erslabs/mort-manager/backend/internal/service"
)

// shoppingListPatchRequest is the body of PUT /trips/{id}/shopping-list.
type shoppingListPatchRequest struct {
	Items     []domain.ShoppingItem `json:"items"`
	TotalCost *float64              `json:"totalCost"`
}

// GetShoppingList handles GET /trips/{id}/shopping-list.
func (s *Server) GetShoppingList(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody(shoppingListErrors.notFound))
		return
	}

	list, err := s.lists.Get(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, r, err, shoppingListErrors)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GenerateShoppingList handles POST /trips/{id}/shopping-list/generate.
// ?preservePurchased=true keeps the purchased flag of items still on the
// regenerated list.
func (s *Server) GenerateShoppingList(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody(tripErrors.notFound))
		return
	}

	var preserve *bool
	if err := queryParam(r, "preservePurchased", false, &preserve); err != nil {
		writeJSON(w, http.StatusBadRequest, validationBody(shoppingListErrors.invalid))
		return
	}

	opts := service.GenerateOptions{PreservePurchased: preserve != nil && *preserve}
	list, err := s.lists.Generate(r.Context(), tripID, opts)
	if err != nil {
		// The only lookup Generate can miss is the trip.
		writeServiceError(w, r, err, tripErrors)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// UpdateShoppingList handles PUT /trips/{id}/shopping-list.
func (s *Server) UpdateShoppingList(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody(shoppingListErrors.notFound))
		return
	}

	var body shoppingListPatchRequest
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err, shoppingListErrors)
		return
	}

	list, err := s.lists.Update(r.Context(), tripID, domain.ShoppingListPatch{
		Items:     body.Items,
		TotalCost: body.TotalCost,
	})
	if err != nil {
		writeServiceError(w, r, err, shoppingListErrors)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
