package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront-api/internal/model"
)

func product(id string, price float64) *model.Product {
	return &model.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    decimal.NewFromFloat(price),
		Currency: "usd",
	}
}

func TestCart_AddSameProductIncrementsQuantity(t *testing.T) {
	cart := NewCart()

	cart.Add(product("p1", 10), 1)
	cart.Add(product("p1", 10), 1)

	items := cart.Items()
	require.Len(t, items, 1, "same product must not create a second entry")
	assert.Equal(t, int32(2), items[0].Quantity)
}

func TestCart_SetQuantityZeroRemovesEntry(t *testing.T) {
	cart := NewCart()
	cart.Add(product("p1", 10), 3)

	cart.SetQuantity("p1", 0)

	assert.Equal(t, 0, cart.Len())
	assert.Empty(t, cart.Items())
}

func TestCart_SetQuantityUnknownProductIsNoop(t *testing.T) {
	cart := NewCart()
	cart.Add(product("p1", 10), 1)

	cart.SetQuantity("missing", 5)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].Product.ID)
}

func TestCart_RemoveAndClear(t *testing.T) {
	cart := NewCart()
	cart.Add(product("p1", 10), 1)
	cart.Add(product("p2", 20), 2)

	cart.Remove("p1")
	assert.Equal(t, 1, cart.Len())

	// removing an absent product must not panic or change anything
	cart.Remove("p1")
	assert.Equal(t, 1, cart.Len())

	cart.Clear()
	assert.Equal(t, 0, cart.Len())
}

func TestCart_ItemsKeepInsertionOrder(t *testing.T) {
	cart := NewCart()
	cart.Add(product("b", 5), 1)
	cart.Add(product("a", 5), 1)
	cart.Add(product("c", 5), 1)
	cart.Add(product("a", 5), 1) // increment, must not reorder

	items := cart.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "b", items[0].Product.ID)
	assert.Equal(t, "a", items[1].Product.ID)
	assert.Equal(t, "c", items[2].Product.ID)
}

func TestCart_Total(t *testing.T) {
	cart := NewCart()
	cart.Add(product("p1", 10.50), 2)
	cart.Add(product("p2", 4.25), 1)

	assert.True(t, cart.Total().Equal(decimal.NewFromFloat(25.25)),
		"got total %s", cart.Total())
}

func TestWishlist_AddIsIdempotent(t *testing.T) {
	w := NewWishlist()

	w.Add("p1")
	w.Add("p1")
	w.Add("p2")

	assert.Equal(t, []string{"p1", "p2"}, w.Products())
	assert.True(t, w.Contains("p1"))
}

func TestWishlist_RemoveAndClear(t *testing.T) {
	w := NewWishlist()
	w.Add("p1")
	w.Add("p2")

	w.Remove("p1")
	assert.False(t, w.Contains("p1"))

	// removing again is a no-op
	w.Remove("p1")
	assert.Equal(t, []string{"p2"}, w.Products())

	w.Clear()
	assert.Empty(t, w.Products())
}
