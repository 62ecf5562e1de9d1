package handler

import "net/http"

// LiveShoppingList handles GET /trips/{id}/shopping-list/live.
// The connection is upgraded to a WebSocket that receives the trip's list
// every time it is generated or edited.
func (s *Server) LiveShoppingList(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody(tripErrors.notFound))
		return
	}
	if s.live == nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("live updates are disabled"))
		return
	}
	if _, err := s.trips.GetByID(r.Context(), tripID); err != nil {
		writeServiceError(w, r, err, tripErrors)
		return
	}
	s.live.Subscribe(w, r, tripID)
}
