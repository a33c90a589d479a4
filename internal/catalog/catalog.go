// Package catalog is the read-only product catalog collaborator. The cart
// never validates against it; handlers use it to snapshot product details at
// add time and to keep out-of-stock products from being added.
package catalog

import "context"

// Product is the catalog view of a product as needed by the storefront cart:
// display fields plus the stock count that gates adding.
type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    int64    `json:"price"` // minor units (cents)
	Images   []string `json:"images,omitempty"`
	Stock    int      `json:"stock"`
	Currency string   `json:"currency,omitempty"`
}

// FirstImage returns the first product image, or "" when there is none.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// InStock reports whether the product can be added to a cart. Only an exact
// stock of zero blocks adding.
func (p *Product) InStock() bool {
	return p.Stock != 0
}

// Catalog fetches products for a business.
type Catalog interface {
	GetProduct(ctx context.Context, businessID, productID string) (*Product, error)
}
