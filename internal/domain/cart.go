package domain

import "time"

// Cart is the shared shopping cart for one customer of one business. It is
// the single source of truth for line items; item count and total are always
// derived from the item list and never stored on their own.
type Cart struct {
	ID         string     `json:"id"`
	BusinessID string     `json:"business_id"`
	CustomerID string     `json:"customer_id"`
	Items      []CartItem `json:"items"`
	Currency   string     `json:"currency"`
	Version    int        `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ExpiresAt  time.Time  `json:"expires_at"`
}

// CartItem is one product line in the cart, keyed by product ID. Name, image,
// and price are display snapshots taken when the item was first added; they are
// not refreshed on later merges.
type CartItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"` // minor units (cents)
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
}

// LineTotal returns price * quantity for this line, in cents.
func (i CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// TotalCents returns the sum of all line totals, in cents.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItemIndex returns the index of the line matching the given product ID,
// or -1 if not present.
func (c *Cart) FindItemIndex(productID string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem merges the given item into the cart. A line for the same product ID
// has its quantity increased; the original price, name, and image are kept so
// a catalog price change never flips a line mid-session. New products append
// in insertion order. Quantities below 1 are normalized to 1 and negative
// prices to 0; adding never fails.
func (c *Cart) AddItem(item CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	if item.Price < 0 {
		item.Price = 0
	}

	if idx := c.FindItemIndex(item.ProductID); idx >= 0 {
		c.Items[idx].Quantity += item.Quantity
		return
	}
	c.Items = append(c.Items, item)
}

// SetQuantity sets the quantity of the line with the given product ID.
// A quantity of zero or less removes the line. Unknown product IDs are a
// no-op; the returned bool reports whether the cart changed.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	idx := c.FindItemIndex(productID)
	if idx < 0 {
		return false
	}
	if quantity <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		return true
	}
	c.Items[idx].Quantity = quantity
	return true
}

// RemoveItem removes the line with the given product ID. Removing an absent
// product is a no-op; the returned bool reports whether the cart changed.
func (c *Cart) RemoveItem(productID string) bool {
	return c.SetQuantity(productID, 0)
}
