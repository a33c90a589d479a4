package repository

import (
	"context"

	"github.com/Beliver-cell/kreateyo-sub000/internal/domain"
)

// CartRepository defines the persistence operations for carts. Carts are
// keyed by (businessID, customerID): every storefront template of a business
// sees the same cart for a given customer.
type CartRepository interface {
	// Get retrieves the cart for a customer of a business.
	Get(ctx context.Context, businessID, customerID string) (*domain.Cart, error)

	// SaveIfVersion persists the cart only if the stored version still equals
	// expectedVersion, incrementing the version on success. Returns false
	// (and no error) when another writer got there first.
	SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int) (bool, error)

	// Delete removes the cart. Deleting an absent cart is a no-op.
	Delete(ctx context.Context, businessID, customerID string) error
}
