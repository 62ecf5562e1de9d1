package domain

import "github.com/google/uuid"

// Ingredient is one line of a meal's recipe.
// Quantity is free text ("1/2 cup", "4 pieces") and is never parsed.
type Ingredient struct {
	Name     string `json:"name" validate:"required"`
	Quantity string `json:"quantity"`
	Category string `json:"category"`
}

// Meal is a reusable recipe, independent of any trip.
type Meal struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Type         MealType     `json:"type"`
	Calories     int          `json:"calories"`
	CookTime     int          `json:"cookTime"` // minutes
	Weight       float64      `json:"weight"`   // ounces
	Cost         float64      `json:"cost"`
	DietaryTags  []DietaryTag `json:"dietaryTags"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions string       `json:"instructions"`
	Servings     int          `json:"servings"`
}

// MealInput carries the caller-supplied fields of a new meal.
type MealInput struct {
	Name         string `validate:"required"`
	Description  string
	Type         MealType     `validate:"meal_type"`
	Calories     int          `validate:"min=0,max=2147483647"`
	CookTime     int          `validate:"min=0,max=2147483647"`
	Weight       float64      `validate:"min=0"`
	Cost         float64      `validate:"min=0"`
	DietaryTags  []DietaryTag `validate:"dive,dietary_tag"`
	Ingredients  []Ingredient `validate:"dive"`
	Instructions string
	Servings     int `validate:"min=1,max=2147483647"`
}

// NewMeal builds a Meal from input and an identifier.
// Slices are copied and never nil.
func NewMeal(id uuid.UUID, in MealInput) Meal {
	ingredients := make([]Ingredient, len(in.Ingredients))
	copy(ingredients, in.Ingredients)
	return Meal{
		ID:           id,
		Name:         in.Name,
		Description:  in.Description,
		Type:         in.Type,
		Calories:     in.Calories,
		CookTime:     in.CookTime,
		Weight:       in.Weight,
		Cost:         in.Cost,
		DietaryTags:  cloneTags(in.DietaryTags),
		Ingredients:  ingredients,
		Instructions: in.Instructions,
		Servings:     in.Servings,
	}
}

// HasAnyTag reports whether the meal carries at least one of tags.
func (m Meal) HasAnyTag(tags []DietaryTag) bool {
	for _, want := range tags {
		for _, have := range m.DietaryTags {
			if want == have {
				return true
			}
		}
	}
	return false
}
