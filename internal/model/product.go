package model

import "strings"

// ProductCategories is the fixed set of categories a product may belong to.
// Creation and update payloads are validated against it.
var ProductCategories = map[string]bool{
	"shirt":       true,
	"pants":       true,
	"dress":       true,
	"shoes":       true,
	"accessories": true,
}

// ValidCategory reports whether the given category is one of the allowed
// product categories.  Matching is case-insensitive; the normalized form is
// returned for storage.
func ValidCategory(s string) (string, bool) {
	c := strings.ToLower(strings.TrimSpace(s))
	return c, ProductCategories[c]
}

// Product mirrors the `products` table.  Identifiers are computed by the
// server inside the product-creation transaction; any id supplied by the
// client is ignored.  Stock is only ever changed through stock movements,
// never written directly.
type Product struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Category  string  `json:"category"`
	Available bool    `json:"available"`
	Stock     int64   `json:"stock"`
}
