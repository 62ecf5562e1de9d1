package domain

import "strings"

// MealType is the slot of the day a meal is eaten in.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes lists every meal slot in display order.
// A planned day has exactly len(MealTypes) slots.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// Valid reports whether m is one of MealTypes.
func (m MealType) Valid() bool {
	for _, v := range MealTypes {
		if m == v {
			return true
		}
	}
	return false
}

// CookingEquipment is the equipment profile available on a trip.
type CookingEquipment string

const (
	BackpackingStove CookingEquipment = "Backpacking Stove"
	CampfireOnly     CookingEquipment = "Campfire Only"
	FullKitchen      CookingEquipment = "Full Kitchen Setup"
	NoCooking        CookingEquipment = "No Cooking"
)

// CookingEquipmentOptions lists the supported equipment profiles.
var CookingEquipmentOptions = []CookingEquipment{BackpackingStove, CampfireOnly, FullKitchen, NoCooking}

// Valid reports whether e is one of CookingEquipmentOptions.
func (e CookingEquipment) Valid() bool {
	for _, v := range CookingEquipmentOptions {
		if e == v {
			return true
		}
	}
	return false
}

// DietaryTag labels a dietary restriction. Tags are always lowercase and
// hyphenated; use NormalizeDietaryTag on raw input.
type DietaryTag string

const (
	Vegetarian DietaryTag = "vegetarian"
	Vegan      DietaryTag = "vegan"
	GlutenFree DietaryTag = "gluten-free"
	NutFree    DietaryTag = "nut-free"
)

// DietaryTags is the fixed tag vocabulary.
var DietaryTags = []DietaryTag{Vegetarian, Vegan, GlutenFree, NutFree}

// Valid reports whether d is in the DietaryTags vocabulary.
func (d DietaryTag) Valid() bool {
	for _, v := range DietaryTags {
		if d == v {
			return true
		}
	}
	return false
}

// NormalizeDietaryTag converts raw input into tag form:
// trimmed, lowercase, with runs of spaces or underscores replaced by a hyphen.
//
//	"Gluten Free" → "gluten-free"
//	" NUT_free "  → "nut-free"
func NormalizeDietaryTag(raw string) DietaryTag {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(raw)), func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})
	return DietaryTag(strings.Join(fields, "-"))
}

// NormalizeDietaryTags normalizes every tag and drops duplicates and empties,
// keeping first-seen order. The result is never nil.
func NormalizeDietaryTags(raw []DietaryTag) []DietaryTag {
	out := make([]DietaryTag, 0, len(raw))
	seen := make(map[DietaryTag]bool, len(raw))
	for _, r := range raw {
		tag := NormalizeDietaryTag(string(r))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
