package store

import "sync"

// Wishlist is a session-scoped set of product ids. Adding an existing entry
// is a no-op, so the list never holds duplicates. Entries keep insertion
// order for rendering.
type Wishlist struct {
	mu    sync.Mutex
	order []string
	set   map[string]struct{}
}

func NewWishlist() *Wishlist {
	return &Wishlist{
		set: make(map[string]struct{}),
	}
}

func (w *Wishlist) Add(productID string) {
	if productID == "" {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.set[productID]; ok {
		return
	}
	w.set[productID] = struct{}{}
	w.order = append(w.order, productID)
}

func (w *Wishlist) Remove(productID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.set[productID]; !ok {
		return
	}
	delete(w.set, productID)
	for i, id := range w.order {
		if id == productID {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

func (w *Wishlist) Contains(productID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.set[productID]
	return ok
}

func (w *Wishlist) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.set = make(map[string]struct{})
	w.order = nil
}

// Products returns the wishlist entries in insertion order.
func (w *Wishlist) Products() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.order))
	copy(out, w.order)
	return out
}
