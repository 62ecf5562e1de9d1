package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter registers every API route of s on a new chi router. Paths are
// relative: main mounts the router under the configured base path.
func NewRouter(s *Server) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)

		r.Route("/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)

			r.Get("/meals", s.ListTripMeals)
			r.Post("/meals", s.AddTripMeal)
			r.Delete("/meals", s.RemoveTripMeal)

			r.Get("/nutrition", s.GetNutrition)

			r.Route("/shopping-list", func(r chi.Router) {
				r.Get("/", s.GetShoppingList)
				r.Put("/", s.UpdateShoppingList)
				r.Post("/generate", s.GenerateShoppingList)
				r.Get("/export", s.ExportShoppingList)
				r.Get("/live", s.LiveShoppingList)
			})
		})
	})

	r.Route("/meals", func(r chi.Router) {
		r.Get("/", s.ListMeals)
		r.Post("/", s.CreateMeal)
		r.Get("/{id}", s.GetMeal)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Error: ErrorDetail{Code: "method_not_allowed", Message: "method not allowed"},
		})
	})
	return r
}
