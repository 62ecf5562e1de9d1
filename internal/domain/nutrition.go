package domain

import (
	"math"

	"github.com/google/uuid"
)

// NutritionSummary is the per-trip overview shown next to the meal grid.
// Totals are unscaled by group size: they describe one person's plan.
type NutritionSummary struct {
	TripID        uuid.UUID `json:"tripId"`
	MealCount     int       `json:"mealCount"`
	PlannedDays   int       `json:"plannedDays"`
	SlotCapacity  int       `json:"slotCapacity"`
	TotalCalories int       `json:"totalCalories"`
	DailyCalories int       `json:"dailyCalories"`
	TotalWeight   float64   `json:"totalWeight"`  // ounces, one decimal
	CostEstimate  float64   `json:"costEstimate"` // whole currency units
}

// Summarize builds the nutrition overview of trip from its resolved meal
// plan. DailyCalories averages over the distinct days that have at least
// one meal, so a half-planned trip is not diluted by empty days.
func Summarize(trip Trip, plan []TripMealDetail) NutritionSummary {
	s := NutritionSummary{
		TripID:       trip.ID,
		SlotCapacity: trip.Duration * len(MealTypes),
	}

	var weight, cost float64
	days := map[int]bool{}
	for _, tm := range plan {
		if tm.Meal == nil {
			continue
		}
		s.MealCount++
		s.TotalCalories += tm.Meal.Calories
		weight += tm.Meal.Weight
		cost += tm.Meal.Cost
		days[tm.Day] = true
	}

	s.PlannedDays = len(days)
	dayCount := max(s.PlannedDays, 1)
	s.DailyCalories = int(math.Round(float64(s.TotalCalories) / float64(dayCount)))
	s.TotalWeight = math.Round(weight*10) / 10
	s.CostEstimate = math.Round(cost)
	return s
}
