package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Item is a tracked inventory unit. JSON field names are part of the
// persisted schema and must not change.
type Item struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	OriginalPrice float64 `json:"originalPrice"`
	SellingPrice  float64 `json:"sellingPrice"`
	Stock         int     `json:"stock"`
	Category      string  `json:"category"`
	ImageURI      string  `json:"imageUri,omitempty"`
}

// Category is a user-facing item grouping. Value doubles as the unique key
// and equals Label; there is no separate slug.
type Category struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CategoryAll is the presentation-level filter matching every category.
// It is never stored alongside real Category records.
const CategoryAll = "All"

// DefaultCategories seed the category collection when it is empty.
var DefaultCategories = []Category{
	{Label: "Electronics", Value: "Electronics"},
	{Label: "Clothing", Value: "Clothing"},
	{Label: "Books", Value: "Books"},
	{Label: "Other", Value: "Other"},
}

// CreateItemRequest carries the fields for a new item.
type CreateItemRequest struct {
	Name          string  `json:"name" validate:"required"`
	OriginalPrice float64 `json:"originalPrice" validate:"gte=0"`
	SellingPrice  float64 `json:"sellingPrice" validate:"gte=0"`
	Stock         int     `json:"stock" validate:"gte=0"`
	Category      string  `json:"category" validate:"required"`
	ImageURI      string  `json:"imageUri,omitempty"`
}

// ErrNotFound indicates the referenced item does not exist.
var ErrNotFound = errors.New("catalog: item not found")

// ErrOutOfStock indicates a sell against zero stock.
var ErrOutOfStock = errors.New("catalog: item out of stock")

// ValidationError reports per-field input failures on add-item. The caller
// should surface the fields and re-prompt; no mutation has occurred.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "catalog: invalid input"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("catalog: invalid input: %s", strings.Join(names, ", "))
}
