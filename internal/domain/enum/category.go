package enum

import (
	"encoding/json"
	"fmt"
)

// Category represents the garment section a catalog item is listed under
type Category int

const (
	CategoryShirts      Category = 0
	CategoryTShirts     Category = 1
	CategoryHoodies     Category = 2
	CategoryJeans       Category = 3
	CategoryFormalPants Category = 4
	CategoryTrackPants  Category = 5
)

// CategoryAll is the tab label that disables category filtering
const CategoryAll = "All"

var categoryNames = [...]string{"Shirts", "T-Shirts", "Hoodies", "Jeans", "Formal Pants", "Track Pants"}

// Categories returns every sellable category in display order
func Categories() []Category {
	out := make([]Category, len(categoryNames))
	for i := range categoryNames {
		out[i] = Category(i)
	}
	return out
}

// CategoryTabs returns the menu tab labels, "All" first
func CategoryTabs() []string {
	tabs := make([]string, 0, len(categoryNames)+1)
	tabs = append(tabs, CategoryAll)
	return append(tabs, categoryNames[:]...)
}

// ParseCategory resolves a display name to a Category
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}

func (c Category) IsValid() bool {
	return int(c) >= 0 && int(c) < len(categoryNames)
}

func (c Category) String() string {
	if !c.IsValid() {
		return categoryNames[0]
	}
	return categoryNames[c]
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*c = Category(i)
		return nil
	}
	parsed, err := ParseCategory(str)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
