package handler

import "net/http"

// GetNutrition handles GET /trips/{id}/nutrition.
func (s *Server) GetNutrition(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathUUID(r, "tripId")
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody(tripErrors.notFound))
		return
	}

	summary, err := s.nutrition.Summary(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, r, err, tripErrors)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
