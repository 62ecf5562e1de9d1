// Package domain contains the core data types for the meal planner API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import "github.com/google/uuid"

// Trip is a planned outing. It is the top-level aggregate: trip meals and the
// shopping list belong to a trip.
type Trip struct {
	ID                 uuid.UUID        `json:"id"`
	Name               string           `json:"name"`
	Duration           int              `json:"duration"`  // days
	GroupSize          int              `json:"groupSize"` // people
	CookingEquipment   CookingEquipment `json:"cookingEquipment"`
	DietaryPreferences []DietaryTag     `json:"dietaryPreferences"`
}

// TripInput carries the caller-supplied fields of a new trip.
// The store assigns the ID.
type TripInput struct {
	Name               string           `validate:"required"`
	Duration           int              `validate:"min=1,max=365"`
	GroupSize          int              `validate:"min=1,max=100"`
	CookingEquipment   CookingEquipment `validate:"equipment"`
	DietaryPreferences []DietaryTag     `validate:"dive,dietary_tag"`
}

// TripPatch is a partial update. Nil fields are left unchanged.
// A non-nil, empty DietaryPreferences clears the set.
type TripPatch struct {
	Name               *string
	Duration           *int
	GroupSize          *int
	CookingEquipment   *CookingEquipment
	DietaryPreferences []DietaryTag
}

// NewTrip builds a Trip from input and an identifier.
func NewTrip(id uuid.UUID, in TripInput) Trip {
	return Trip{
		ID:                 id,
		Name:               in.Name,
		Duration:           in.Duration,
		GroupSize:          in.GroupSize,
		CookingEquipment:   in.CookingEquipment,
		DietaryPreferences: cloneTags(in.DietaryPreferences),
	}
}

// Apply returns a copy of t with every non-nil field of p merged in.
func (t Trip) Apply(p TripPatch) Trip {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	if p.GroupSize != nil {
		t.GroupSize = *p.GroupSize
	}
	if p.CookingEquipment != nil {
		t.CookingEquipment = *p.CookingEquipment
	}
	if p.DietaryPreferences != nil {
		t.DietaryPreferences = cloneTags(p.DietaryPreferences)
	} else {
		t.DietaryPreferences = cloneTags(t.DietaryPreferences)
	}
	return t
}

// Input returns the mutable fields of t, used to validate a merged update.
func (t Trip) Input() TripInput {
	return TripInput{
		Name:               t.Name,
		Duration:           t.Duration,
		GroupSize:          t.GroupSize,
		CookingEquipment:   t.CookingEquipment,
		DietaryPreferences: t.DietaryPreferences,
	}
}

// cloneTags copies tags and never returns nil, so JSON output is always an array.
func cloneTags(tags []DietaryTag) []DietaryTag {
	out := make([]DietaryTag, len(tags))
	copy(out, tags)
	return out
}
