package domain

import "github.com/google/uuid"

// Slot identifies one cell of a trip's meal plan: a day (1-indexed) and a
// meal type. At most one TripMeal may occupy a slot.
type Slot struct {
	Day      int      `validate:"min=1,max=365"`
	MealType MealType `validate:"meal_type"`
}

// TripMeal assigns one Meal to one Slot of one Trip.
type TripMeal struct {
	ID       uuid.UUID `json:"id"`
	TripID   uuid.UUID `json:"tripId"`
	MealID   uuid.UUID `json:"mealId"`
	Day      int       `json:"day"`
	MealType MealType  `json:"mealType"`
}

// Slot returns the slot the trip meal occupies.
func (tm TripMeal) Slot() Slot {
	return Slot{Day: tm.Day, MealType: tm.MealType}
}

// TripMealDetail is a TripMeal joined with its Meal.
// Meal is nil when the referenced meal no longer resolves.
type TripMealDetail struct {
	TripMeal
	Meal *Meal `json:"meal,omitempty"`
}
