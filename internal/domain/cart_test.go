package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddItem_Merge(t *testing.T) {
	cart := &Cart{}

	cart.AddItem(CartItem{ProductID: "p1", Name: "Latte", Price: 450, Quantity: 1})
	cart.AddItem(CartItem{ProductID: "p2", Name: "Scone", Price: 300, Quantity: 2})
	cart.AddItem(CartItem{ProductID: "p1", Name: "Latte v2", Price: 999, Quantity: 3})

	require.Len(t, cart.Items, 2)
	// Insertion order is stable and the first snapshot wins.
	assert.Equal(t, "p1", cart.Items[0].ProductID)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.Equal(t, int64(450), cart.Items[0].Price)
	assert.Equal(t, "Latte", cart.Items[0].Name)
	assert.Equal(t, "p2", cart.Items[1].ProductID)
}

func TestCart_AddItem_Normalizes(t *testing.T) {
	cart := &Cart{}

	cart.AddItem(CartItem{ProductID: "p1", Quantity: -3, Price: -100})

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, int64(0), cart.Items[0].Price)
}

func TestCart_Totals(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{ProductID: "p1", Price: 450, Quantity: 2},
		{ProductID: "p2", Price: 300, Quantity: 1},
	}}

	assert.Equal(t, int64(1200), cart.TotalCents())
	assert.Equal(t, 3, cart.ItemCount())
	assert.False(t, cart.IsEmpty())
	assert.Equal(t, int64(900), cart.Items[0].LineTotal())
}

func TestCart_EmptyTotals(t *testing.T) {
	cart := &Cart{}

	assert.Equal(t, int64(0), cart.TotalCents())
	assert.Equal(t, 0, cart.ItemCount())
	assert.True(t, cart.IsEmpty())
}

func TestCart_SetQuantity(t *testing.T) {
	cart := &Cart{Items: []CartItem{
		{ProductID: "p1", Price: 450, Quantity: 2},
		{ProductID: "p2", Price: 300, Quantity: 1},
	}}

	assert.True(t, cart.SetQuantity("p1", 5))
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// Zero removes the line.
	assert.True(t, cart.SetQuantity("p1", 0))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)

	// Unknown products leave the cart unchanged.
	assert.False(t, cart.SetQuantity("ghost", 3))
	assert.Len(t, cart.Items, 1)
}

func TestCart_RemoveItem(t *testing.T) {
	cart := &Cart{Items: []CartItem{{ProductID: "p1", Price: 450, Quantity: 2}}}

	assert.True(t, cart.RemoveItem("p1"))
	assert.True(t, cart.IsEmpty())
	assert.False(t, cart.RemoveItem("p1"))
}
