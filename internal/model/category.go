package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Category classifies a product within the catalog taxonomy. The set is
// closed: membership is validated against the members below, never inferred.
type Category string

const (
	// CategoryUnknown is the reserved fallback for stored or incoming values
	// that cannot be matched to a concrete member.
	CategoryUnknown    Category = "UNKNOWN"
	CategoryCloths     Category = "CLOTHS"
	CategoryFood       Category = "FOOD"
	CategoryHousewares Category = "HOUSEWARES"
	CategoryAutomotive Category = "AUTOMOTIVE"
	CategoryTools      Category = "TOOLS"
)

var categorySet = map[Category]struct{}{
	CategoryUnknown:    {},
	CategoryCloths:     {},
	CategoryFood:       {},
	CategoryHousewares: {},
	CategoryAutomotive: {},
	CategoryTools:      {},
}

// Categories returns the concrete members of the taxonomy, excluding the
// reserved CategoryUnknown fallback.
func Categories() []Category {
	return []Category{
		CategoryCloths,
		CategoryFood,
		CategoryHousewares,
		CategoryAutomotive,
		CategoryTools,
	}
}

// ParseCategory maps a stored or incoming string onto the taxonomy. The
// conversion is total: unrecognized input yields CategoryUnknown rather than
// an error. Matching is case-insensitive and ignores surrounding whitespace.
func ParseCategory(s string) Category {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := categorySet[c]; ok {
		return c
	}
	return CategoryUnknown
}

// ParseCategoryStrict is the strict variant of ParseCategory: unrecognized
// input is a ValidationError instead of a fallback.
func ParseCategoryStrict(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := categorySet[c]; ok {
		return c, nil
	}
	return CategoryUnknown, NewValidationError("unknown category %q", s)
}

// Valid reports whether c is a member of the taxonomy (including Unknown).
func (c Category) Valid() bool {
	_, ok := categorySet[c]
	return ok
}

func (c Category) String() string { return string(c) }

// Scan hydrates a Category from its stored column value, applying the total
// conversion so a row written by an older taxonomy never fails a read.
func (c *Category) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*c = CategoryUnknown
	case string:
		*c = ParseCategory(v)
	case []byte:
		*c = ParseCategory(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Category", value)
	}
	return nil
}

// Value persists the canonical upper-case string representation.
func (c Category) Value() (driver.Value, error) {
	return string(c), nil
}
