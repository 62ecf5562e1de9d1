package domain

import "github.com/google/uuid"

// ShoppingItem is one consolidated ingredient line.
// Quantity may be a concatenation of several per-meal quantities
// ("2 tbsp x1 + 1 tbsp x1"); it is display text, not a number.
type ShoppingItem struct {
	Name      string `json:"name" validate:"required"`
	Quantity  string `json:"quantity"`
	Category  string `json:"category"`
	Purchased bool   `json:"purchased"`
}

// ShoppingList is the derived aggregate of a trip's planned meals.
// There is one list per trip.
type ShoppingList struct {
	ID        uuid.UUID      `json:"id"`
	TripID    uuid.UUID      `json:"tripId"`
	Items     []ShoppingItem `json:"items"`
	TotalCost float64        `json:"totalCost"`
}

// ShoppingListPatch replaces the items and/or the total cost of a list.
// Nil fields are left unchanged.
type ShoppingListPatch struct {
	Items     []ShoppingItem `validate:"omitempty,dive"`
	TotalCost *float64       `validate:"omitempty,min=0"`
}

// Apply returns a copy of l with every non-nil field of p merged in.
func (l ShoppingList) Apply(p ShoppingListPatch) ShoppingList {
	if p.Items != nil {
		l.Items = CloneItems(p.Items)
	} else {
		l.Items = CloneItems(l.Items)
	}
	if p.TotalCost != nil {
		l.TotalCost = *p.TotalCost
	}
	return l
}

// CloneItems copies items and never returns nil.
func CloneItems(items []ShoppingItem) []ShoppingItem {
	out := make([]ShoppingItem, len(items))
	copy(out, items)
	return out
}

// CategoryGroup is a run of shopping items sharing one category.
type CategoryGroup struct {
	Category string         `json:"category"`
	Items    []ShoppingItem `json:"items"`
}

// GroupByCategory groups items by category in first-seen order.
// Items without a category are grouped under "Other".
func (l ShoppingList) GroupByCategory() []CategoryGroup {
	groups := []CategoryGroup{}
	index := map[string]int{}
	for _, item := range l.Items {
		category := item.Category
		if category == "" {
			category = "Other"
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, CategoryGroup{Category: category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}
