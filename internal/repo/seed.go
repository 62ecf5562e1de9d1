package repo

import (
	"context"
	"fmt"

	"github.com/erslabs/mort-manager/backend/internal/domain"
)

// SampleMeals is the starter catalogue offered on a fresh install.
var SampleMeals = []domain.MealInput{
	{
		Name:        "Instant Oatmeal & Berries",
		Description: "Quick-cooking oats with dried berries and nuts",
		Type:        domain.Breakfast,
		Calories:    420,
		CookTime:    5,
		Weight:      4.2,
		Cost:        3.50,
		DietaryTags: []domain.DietaryTag{domain.GlutenFree, domain.Vegetarian},
		Ingredients: []domain.Ingredient{
			{Name: "Instant Oats", Quantity: "1 cup", Category: "Grains & Cereals"},
			{Name: "Dried Berries Mix", Quantity: "1/4 cup", Category: "Produce"},
			{Name: "Mixed Nuts", Quantity: "2 tbsp", Category: "Proteins"},
		},
		Instructions: "Add hot water to oats, stir in berries and nuts. Let sit for 2 minutes.",
		Servings:     1,
	},
	{
		Name:        "Quinoa Power Salad",
		Description: "Protein-rich quinoa with vegetables and tahini dressing",
		Type:        domain.Lunch,
		Calories:    450,
		CookTime:    15,
		Weight:      6.8,
		Cost:        5.25,
		DietaryTags: []domain.DietaryTag{domain.Vegan, domain.GlutenFree},
		Ingredients: []domain.Ingredient{
			{Name: "Quinoa", Quantity: "1/2 cup", Category: "Grains & Cereals"},
			{Name: "Dehydrated Vegetables", Quantity: "1/4 cup", Category: "Produce"},
			{Name: "Tahini", Quantity: "2 tbsp", Category: "Condiments"},
		},
		Instructions: "Cook quinoa, rehydrate vegetables, mix with tahini dressing.",
		Servings:     1,
	},
	{
		Name:        "Dehydrated Pasta Primavera",
		Description: "Lightweight pasta with dried vegetables and herbs",
		Type:        domain.Dinner,
		Calories:    680,
		CookTime:    20,
		Weight:      8.5,
		Cost:        4.75,
		DietaryTags: []domain.DietaryTag{domain.Vegetarian},
		Ingredients: []domain.Ingredient{
			{Name: "Whole Wheat Pasta", Quantity: "2 oz", Category: "Grains & Cereals"},
			{Name: "Dehydrated Vegetables", Quantity: "1/2 cup", Category: "Produce"},
			{Name: "Olive Oil", Quantity: "1 tbsp", Category: "Condiments"},
		},
		Instructions: "Cook pasta, rehydrate vegetables, combine with olive oil and herbs.",
		Servings:     1,
	},
	{
		Name:        "Trail Mix Energy Bites",
		Description: "No-bake energy balls with dates, nuts, and seeds",
		Type:        domain.Snack,
		Calories:    240,
		CookTime:    0,
		Weight:      2.1,
		Cost:        2.25,
		DietaryTags: []domain.DietaryTag{domain.Vegan, domain.GlutenFree},
		Ingredients: []domain.Ingredient{
			{Name: "Dates", Quantity: "4 pieces", Category: "Produce"},
			{Name: "Mixed Nuts", Quantity: "1/4 cup", Category: "Proteins"},
			{Name: "Seeds Mix", Quantity: "1 tbsp", Category: "Proteins"},
		},
		Instructions: "Pre-made energy bites, ready to eat.",
		Servings:     1,
	},
	{
		Name:        "Granola Mix",
		Description: "Homemade granola with oats, nuts, and dried fruit",
		Type:        domain.Breakfast,
		Calories:    380,
		CookTime:    0,
		Weight:      3.5,
		Cost:        2.80,
		DietaryTags: []domain.DietaryTag{domain.Vegetarian},
		Ingredients: []domain.Ingredient{
			{Name: "Granola", Quantity: "1/2 cup", Category: "Grains & Cereals"},
			{Name: "Dried Fruit", Quantity: "2 tbsp", Category: "Produce"},
		},
		Instructions: "Ready to eat granola mix.",
		Servings:     1,
	},
	{
		Name:        "Lentil Curry",
		Description: "Spiced red lentils with curry powder",
		Type:        domain.Dinner,
		Calories:    590,
		CookTime:    25,
		Weight:      7.2,
		Cost:        4.20,
		DietaryTags: []domain.DietaryTag{domain.Vegan, domain.GlutenFree},
		Ingredients: []domain.Ingredient{
			{Name: "Red Lentils", Quantity: "1/2 cup", Category: "Proteins"},
			{Name: "Curry Powder", Quantity: "1 tsp", Category: "Spices"},
			{Name: "Coconut Milk Powder", Quantity: "2 tbsp", Category: "Condiments"},
		},
		Instructions: "Cook lentils with spices, add coconut milk powder.",
		Servings:     1,
	},
}

// SeedSampleMeals inserts SampleMeals when the meal store is empty and
// reports how many meals were inserted. A populated store is left alone, so
// restarting against Postgres never duplicates the catalogue.
func SeedSampleMeals(ctx context.Context, meals MealRepo) (int, error) {
	n, err := meals.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("repo.SeedSampleMeals: count: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	for i, in := range SampleMeals {
		if _, err := meals.Create(ctx, in); err != nil {
			return i, fmt.Errorf("repo.SeedSampleMeals: create %q: %w", in.Name, err)
		}
	}
	return len(SampleMeals), nil
}
