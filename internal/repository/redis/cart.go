package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Beliver-cell/kreateyo-sub000/internal/domain"
	apperrors "github.com/Beliver-cell/kreateyo-sub000/pkg/errors"
)

const keyPrefix = "cart:"

// saveIfVersionScript performs a compare-and-set on the cart key: the write
// goes through only if the stored version matches ARGV[1] (or the key is
// absent and ARGV[1] is 0). KEYS[1] = cart key, ARGV[2] = new JSON value,
// ARGV[3] = TTL in milliseconds.
var saveIfVersionScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
local expected = tonumber(ARGV[1])
if current == false then
  if expected ~= 0 then
    return 0
  end
else
  local decoded = cjson.decode(current)
  if tonumber(decoded['version']) ~= expected then
    return 0
  end
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// CartRepository implements repository.CartRepository on Redis. Carts are
// stored as JSON blobs with a TTL so abandoned carts expire on their own.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a Redis-backed cart repository.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
	}
}

func key(businessID, customerID string) string {
	return keyPrefix + businessID + ":" + customerID
}

// Get retrieves the cart for a customer of a business.
func (r *CartRepository) Get(ctx context.Context, businessID, customerID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, key(businessID, customerID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("cart", businessID+":"+customerID)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}

	return &cart, nil
}

// SaveIfVersion persists the cart with optimistic locking. The version on the
// passed cart is bumped to expectedVersion+1 before the write so the stored
// blob carries the new version.
func (r *CartRepository) SaveIfVersion(ctx context.Context, cart *domain.Cart, expectedVersion int) (bool, error) {
	cart.Version = expectedVersion + 1

	data, err := json.Marshal(cart)
	if err != nil {
		return false, fmt.Errorf("marshal cart: %w", err)
	}

	res, err := saveIfVersionScript.Run(ctx, r.client,
		[]string{key(cart.BusinessID, cart.CustomerID)},
		expectedVersion, string(data), r.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis save cart: %w", err)
	}
	if res != 1 {
		// Roll the version back so the caller can retry from a fresh read.
		cart.Version = expectedVersion
		return false, nil
	}

	return true, nil
}

// Delete removes the cart. Absent keys are not an error.
func (r *CartRepository) Delete(ctx context.Context, businessID, customerID string) error {
	if err := r.client.Del(ctx, key(businessID, customerID)).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}
	return nil
}
