package handler

import (
	"errors"
	"net/http"

	"github.com/erslabs/mort-manager/backend/internal/domain"
	"github.com/erslabs/mort-manager/backend/internal/service"
)

// mealRequest is the body of POST /meals. Required scalars are pointers so
// an absent field is told apart from an explicit zero.
type mealRequest struct {
	Name         *string             `json:"name"`
	Description  *string             `json:"description"`
	Type         *domain.MealType    `json:"type"`
	Calories     *int                `json:"calories"`
	CookTime     *int                `json:"cookTime"`
	Weight       *float64            `json:"weight"`
	Cost         *float64            `json:"cost"`
	DietaryTags  []domain.DietaryTag `json:"dietaryTags"`
	Ingredients  []domain.Ingredient `json:"ingredients"`
	Instructions *string             `json:"instructions"`
	Servings     *int                `json:"servings"`
}

var errMissingField = errors.New("required field missing")

// toInput checks presence of every required field.
func (m mealRequest) toInput() (domain.MealInput, error) {
	if m.Name == nil || m.Description == nil || m.Type == nil || m.Calories == nil ||
		m.CookTime == nil || m.Weight == nil || m.Cost == nil ||
		m.Instructions == nil || m.Servings == nil {
		return domain.MealInput{}, errMissingField
	}
	return domain.MealInput{
		Name:         *m.Name,
		Description:  *m.Description,
		Type:         *m.Type,
		Calories:     *m.Calories,
		CookTime:     *m.CookTime,
		Weight:       *m.Weight,
		Cost:         *m.Cost,
		DietaryTags:  m.DietaryTags,
		Ingredients:  m.Ingredients,
		Instructions: *m.Instructions,
		Servings:     *m.Servings,
	}, nil
}

// ListMeals handles GET /meals.
// Supports ?search=, ?type= and ?dietaryTags=a,b; only the first present
// filter in that order applies.
func (s *Server) ListMeals(w http.ResponseWriter, r *http.Request) {
	var (
		search   *string
		mealType *string
		tags     *[]string
	)
	if queryParam(r, "search", false, &search) != nil ||
		queryParam(r, "type", false, &mealType) != nil ||
		queryList(r, "dietaryTags", &tags) != nil {
		writeJSON(w, http.StatusBadRequest, validationBody("invalid meal filter"))
		return
	}

	var f service.MealFilter
	if search != nil {
		f.Search = *search
	}
	if mealType != nil {
		f.Type = domain.MealType(*mealType)
	}
	if tags != nil {
		for _, t := range *tags {
			f.DietaryTags = append(f.DietaryTags, domain.DietaryTag(t))
		}
	}

	meals, err := s.meals.List(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err, mealErrors)
		return
	}
	writeJSON(w, http.StatusOK, meals)
}

// CreateMeal handles POST /meals.
func (s *Server) CreateMeal(w http.ResponseWriter, r *http.Request) {
	var body mealRequest
	if err := decodeJSON(r, &body); err != nil {
		writeDecodeError(w, err, mealErrors)
		return
	}
	in, err := body.toInput()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, validationBody(mealErrors.invalid))
		return
	}

	created, err := s.meals.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, mealErrors)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// GetMeal handles GET /meals/{id}.
func (s *Server) GetMeal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundBody(mealErrors.notFound))
		return
	}

	meal, err := s.meals.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, mealErrors)
		return
	}
	writeJSON(w, http.StatusOK, meal)
}
