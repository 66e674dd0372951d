// Package store holds the per-session state the storefront keeps outside the
// database: the shopping cart, the wishlist, and the notification queue. Each
// store is an explicit object with all mutation funneled through named
// methods, so behavior is unit-testable without any transport attached.
package store

import (
	"sync"

	"github.com/shopspring/decimal"
	"storefront-api/internal/model"
)

// CartItem pairs a product with the quantity in the cart.
type CartItem struct {
	Product  *model.Product
	Quantity int32
}

// Cart is a session-scoped shopping cart. Items keep insertion order;
// adding an existing product increments its quantity instead of duplicating
// the entry. Safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	order []string
	items map[string]*CartItem
}

func NewCart() *Cart {
	return &Cart{
		items: make(map[string]*CartItem),
	}
}

// Add puts quantity units of the product in the cart. Quantities below one
// are ignored.
func (c *Cart) Add(product *model.Product, quantity int32) {
	if product == nil || quantity < 1 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if item, ok := c.items[product.ID]; ok {
		item.Quantity += quantity
		return
	}
	c.items[product.ID] = &CartItem{Product: product, Quantity: quantity}
	c.order = append(c.order, product.ID)
}

// SetQuantity replaces the quantity for a product already in the cart.
// Setting zero (or less) removes the entry entirely. Unknown products are a
// no-op.
func (c *Cart) SetQuantity(productID string, quantity int32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[productID]
	if !ok {
		return
	}
	if quantity < 1 {
		c.removeLocked(productID)
		return
	}
	item.Quantity = quantity
}

// Remove drops a product from the cart. Removing an absent product is a no-op.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID string) {
	if _, ok := c.items[productID]; !ok {
		return
	}
	delete(c.items, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*CartItem)
	c.order = nil
}

// Items returns the cart contents in insertion order.
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CartItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

// Total sums unit price times quantity across the cart.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, id := range c.order {
		item := c.items[id]
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	return total
}

// Len reports how many distinct products are in the cart.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}
