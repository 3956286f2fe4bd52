package model

import (
	"fmt"
	"strings"
)

// Category labels a transaction with a spending bucket. The set is closed:
// training corpora and override tables are validated against it at load
// time instead of coercing unrecognized values.
type Category string

const (
	CategoryBills          Category = "bills"
	CategoryEntertainment  Category = "entertainment"
	CategoryFood           Category = "food"
	CategoryGroceries      Category = "groceries"
	CategoryHealth         Category = "health"
	CategoryInsurance      Category = "insurance"
	CategoryMiscellaneous  Category = "miscellaneous"
	CategoryOther          Category = "other"
	CategoryPersonalCare   Category = "personal_care"
	CategoryRent           Category = "rent"
	CategoryServices       Category = "services"
	CategoryShopping       Category = "shopping"
	CategorySoftware       Category = "software"
	CategorySubscriptions  Category = "subscriptions"
	CategoryTransportation Category = "transportation"
	CategoryUnknown        Category = "unknown"
	CategoryUtilities      Category = "utilities"
)

// CategoryUnknown marks a description that has never been through the
// categorizer; CategoryOther marks one that was scored but fell below the
// accept threshold.

var allCategories = []Category{
	CategoryBills,
	CategoryEntertainment,
	CategoryFood,
	CategoryGroceries,
	CategoryHealth,
	CategoryInsurance,
	CategoryMiscellaneous,
	CategoryOther,
	CategoryPersonalCare,
	CategoryRent,
	CategoryServices,
	CategoryShopping,
	CategorySoftware,
	CategorySubscriptions,
	CategoryTransportation,
	CategoryUnknown,
	CategoryUtilities,
}

var categorySet = func() map[Category]struct{} {
	m := make(map[Category]struct{}, len(allCategories))
	for _, c := range allCategories {
		m[c] = struct{}{}
	}
	return m
}()

// AllCategories returns every valid category in stable order.
func AllCategories() []Category {
	return append([]Category(nil), allCategories...)
}

// Valid reports whether c is a member of the closed set.
func (c Category) Valid() bool {
	_, ok := categorySet[c]
	return ok
}

// ParseCategory lowercases and trims s, then validates it against the
// closed set.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}
