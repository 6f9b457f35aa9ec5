package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DecodeMode selects how Deserialize treats a category value that is not a
// member of the taxonomy. The choice is the caller's, made explicitly per
// call rather than through ambient configuration.
type DecodeMode int

const (
	// DecodeLenient maps an unrecognized category to CategoryUnknown.
	DecodeLenient DecodeMode = iota
	// DecodeStrict rejects an unrecognized category with a ValidationError.
	DecodeStrict
)

// Product is the catalog's sole durable entity. ID is nil until the
// repository persists the instance; once assigned it never changes. Price is
// an exact decimal end to end: it is never held or compared as a binary
// float, in memory or at rest.
type Product struct {
	ID          *int64          `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"index;not null"`
	Description string
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Available   bool            `gorm:"not null"`
	Category    Category        `gorm:"type:varchar(32);not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Product) TableName() string { return "products" }

// NewProduct builds an in-memory Product with id unset. No side effects; the
// value is detached until a repository operation persists it.
func NewProduct(name, description string, price decimal.Decimal, available bool, category Category) *Product {
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		Available:   available,
		Category:    category,
	}
}

// Validate checks the entity's invariants: non-empty name, non-negative
// price, and a category that belongs to the taxonomy.
func (p *Product) Validate() error {
	if p.Name == "" {
		return NewValidationError("name must not be empty")
	}
	if p.Price.IsNegative() {
		return NewValidationError("price must not be negative, got %s", p.Price)
	}
	if !p.Category.Valid() {
		return NewValidationError("unknown category %q", p.Category)
	}
	return nil
}

// Serialize produces the wire representation of the entity. Price is rendered
// as its exact decimal string; id appears only once assigned. Idempotent, no
// side effects.
func (p *Product) Serialize() map[string]any {
	m := map[string]any{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.String(),
		"available":   p.Available,
		"category":    p.Category.String(),
	}
	if p.ID != nil {
		m["id"] = *p.ID
	}
	return m
}

// Deserialize validates and populates the entity from an external mapping.
// Identity is assigned by the store, never by the wire, so an "id" key is
// ignored. Missing required keys, wrongly shaped values, and binary-float
// prices are ValidationErrors; an unrecognized category is handled per mode.
func (p *Product) Deserialize(data map[string]any, mode DecodeMode) error {
	name, err := requireString(data, "name")
	if err != nil {
		return err
	}
	if name == "" {
		return NewValidationError("name must not be empty")
	}

	description := ""
	if raw, ok := data["description"]; ok {
		description, ok = raw.(string)
		if !ok {
			return NewValidationError("description must be a string, got %T", raw)
		}
	}

	rawPrice, ok := data["price"]
	if !ok {
		return NewValidationError("missing required attribute %q", "price")
	}
	price, err := decodePrice(rawPrice)
	if err != nil {
		return err
	}
	if price.IsNegative() {
		return NewValidationError("price must not be negative, got %s", price)
	}

	rawAvailable, ok := data["available"]
	if !ok {
		return NewValidationError("missing required attribute %q", "available")
	}
	available, ok := rawAvailable.(bool)
	if !ok {
		return NewValidationError("available must be a boolean, got %T", rawAvailable)
	}

	rawCategory, err := requireString(data, "category")
	if err != nil {
		return err
	}
	var category Category
	if mode == DecodeStrict {
		if category, err = ParseCategoryStrict(rawCategory); err != nil {
			return err
		}
	} else {
		category = ParseCategory(rawCategory)
		if category == CategoryUnknown && !Category(rawCategory).Valid() {
			log.Debug().Str("category", rawCategory).Msg("unrecognized category, falling back to UNKNOWN")
		}
	}

	p.Name = name
	p.Description = description
	p.Price = price
	p.Available = available
	p.Category = category
	return nil
}

// String is a debug representation identifying the entity by name and id,
// with the unset id rendered distinctly from an assigned one. Never used for
// identity comparison.
func (p *Product) String() string {
	if p.ID == nil {
		return fmt.Sprintf("<Product %s id=[unset]>", p.Name)
	}
	return fmt.Sprintf("<Product %s id=[%d]>", p.Name, *p.ID)
}

// Equal compares the catalog attributes of two products: name, description,
// price (exact decimal equality), availability, and category. Identity and
// storage timestamps are excluded.
func (p *Product) Equal(other *Product) bool {
	if other == nil {
		return false
	}
	return p.Name == other.Name &&
		p.Description == other.Description &&
		p.Price.Equal(other.Price) &&
		p.Available == other.Available &&
		p.Category == other.Category
}

func requireString(data map[string]any, key string) (string, error) {
	raw, ok := data[key]
	if !ok {
		return "", NewValidationError("missing required attribute %q", key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", NewValidationError("%s must be a string, got %T", key, raw)
	}
	return s, nil
}

// decodePrice accepts the exact representations a wire mapping may carry.
// float64 is rejected outright: a price that passed through a binary float
// has already lost exactness, and comparing it against stored decimals is a
// correctness bug.
func decodePrice(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, NewValidationError("price %q is not a valid decimal", v)
		}
		return d, nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return decimal.Zero, NewValidationError("price %q is not a valid decimal", v.String())
		}
		return d, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.Zero, NewValidationError("price must be an exact decimal string or number, not a binary float")
	default:
		return decimal.Zero, NewValidationError("price must be a decimal, got %T", raw)
	}
}
