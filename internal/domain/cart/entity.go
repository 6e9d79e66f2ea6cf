package cart

import (
	"cart-engine/internal/pkg/errs"
)

var (
	ErrEmptyProductID   = errs.New("product id must not be empty")
	ErrNegativePrice    = errs.New("unit price must not be negative")
	ErrInvalidQuantity  = errs.New("quantity must be at least 1")
	ErrDuplicateProduct = errs.New("duplicate product id in cart")
)

// LineItem is one purchasable unit and quantity inside a cart.
// Prices are in minor currency units (kobo).
type LineItem struct {
	ProductID     string
	Name          string
	ThumbnailRef  string
	UnitPrice     int64
	PreviousPrice *int64
	Promotional   bool
	Quantity      int
}

func NewLineItem(productID, name, thumbnailRef string, unitPrice int64, previousPrice *int64, promotional bool, quantity int) (LineItem, error) {
	if productID == "" {
		return LineItem{}, ErrEmptyProductID
	}
	if unitPrice < 0 {
		return LineItem{}, ErrNegativePrice
	}
	if previousPrice != nil && *previousPrice < 0 {
		return LineItem{}, ErrNegativePrice
	}
	if quantity < 1 {
		return LineItem{}, ErrInvalidQuantity
	}
	return LineItem{
		ProductID:     productID,
		Name:          name,
		ThumbnailRef:  thumbnailRef,
		UnitPrice:     unitPrice,
		PreviousPrice: previousPrice,
		Promotional:   promotional,
		Quantity:      quantity,
	}, nil
}

// Subtotal is UnitPrice × Quantity for this line.
func (li LineItem) Subtotal() int64 {
	return li.UnitPrice * int64(li.Quantity)
}

// Cart holds at most one LineItem per ProductID, in insertion order.
// Derived values (Total, Count) are recomputed on every read.
type Cart struct {
	items []LineItem
}

func New() *Cart {
	return &Cart{}
}

// FromItems rebuilds a cart from persisted items. A duplicate product id or an
// item that fails validation rejects the whole list; hydration treats that as
// corrupt state and starts empty.
func FromItems(items []LineItem) (*Cart, error) {
	c := New()
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if _, dup := seen[it.ProductID]; dup {
			return nil, ErrDuplicateProduct
		}
		if _, err := NewLineItem(it.ProductID, it.Name, it.ThumbnailRef, it.UnitPrice, it.PreviousPrice, it.Promotional, it.Quantity); err != nil {
			return nil, err
		}
		seen[it.ProductID] = struct{}{}
		c.items = append(c.items, it)
	}
	return c, nil
}

// Add merges the requested quantity into an existing line with the same
// product id, or appends a new line. It reports the resulting line and
// whether an existing line was merged into.
func (c *Cart) Add(item LineItem, requestedQty int) (LineItem, bool) {
	if requestedQty < 1 {
		requestedQty = 1
	}
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity += requestedQty
			return c.items[i], true
		}
	}
	item.Quantity = requestedQty
	c.items = append(c.items, item)
	return item, false
}

// UpdateQuantity sets the quantity exactly. A quantity of zero or less
// removes the line. An absent product id is a no-op.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	for i := range c.items {
		if c.items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		} else {
			c.items[i].Quantity = quantity
		}
		return
	}
}

// Remove deletes the line if present; no-op otherwise.
func (c *Cart) Remove(productID string) {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.items = nil
}

// Find returns the line for the given product id.
func (c *Cart) Find(productID string) (LineItem, bool) {
	for _, it := range c.items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return LineItem{}, false
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Total is Σ UnitPrice × Quantity, recomputed from current lines.
func (c *Cart) Total() int64 {
	var total int64
	for _, it := range c.items {
		total += it.Subtotal()
	}
	return total
}

// Count is Σ Quantity across all lines.
func (c *Cart) Count() int {
	var n int
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}
