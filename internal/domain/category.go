package domain

import (
	"fmt"
	"strings"
)

// Category enumerates the sections the writer publishes into.
type Category string

const (
	CategoryWorld         Category = "world"
	CategoryTechnology    Category = "technology"
	CategoryHealth        Category = "health"
	CategoryBusiness      Category = "business"
	CategoryEntertainment Category = "entertainment"
	CategoryScience       Category = "science"
	CategoryLifestyle     Category = "lifestyle"
	CategoryCelebrities   Category = "celebrities"
)

// AllCategories lists categories in batch order.
func AllCategories() []Category {
	return []Category{
		CategoryWorld,
		CategoryTechnology,
		CategoryHealth,
		CategoryBusiness,
		CategoryEntertainment,
		CategoryScience,
		CategoryLifestyle,
		CategoryCelebrities,
	}
}

// ParseCategory accepts a case-insensitive category name.
func ParseCategory(value string) (Category, error) {
	candidate := Category(strings.ToLower(strings.TrimSpace(value)))
	for _, c := range AllCategories() {
		if c == candidate {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", value)
}

// Title returns the display name, e.g. "Technology".
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	s := string(c)
	return strings.ToUpper(s[:1]) + s[1:]
}

func (c Category) String() string {
	return string(c)
}
