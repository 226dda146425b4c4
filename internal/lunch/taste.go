package lunch

import (
	"slices"

	"lunchofficer/internal/types"
)

// FoodTaste rates menus against a weighted preference table.
type FoodTaste struct {
	preferences types.PreferenceTable
}

// NewFoodTaste returns a taste with no preferences set.
func NewFoodTaste() *FoodTaste {
	return &FoodTaste{}
}

// SetPreferences replaces the stored preference table.
func (f *FoodTaste) SetPreferences(p types.PreferenceTable) *FoodTaste {
	f.preferences = p
	return f
}

// Rate sums the weight of every preferred item that appears on the menu.
// Each preference counts at most once regardless of menu duplicates.
func (f *FoodTaste) Rate(menu []string) int {
	rating := 0
	for item, weight := range f.preferences {
		if slices.Contains(menu, item) {
			rating += weight
		}
	}
	return rating
}
