//go:build unit

package cart_test

import (
	"testing"

	"cart-engine/internal/domain/cart"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, productID string, unitPrice int64) cart.LineItem {
	t.Helper()
	item, err := cart.NewLineItem(productID, "Item "+productID, "thumbs/"+productID+".jpg", unitPrice, nil, false, 1)
	require.NoError(t, err)
	return item
}

func TestNewLineItem(t *testing.T) {
	tests := []struct {
		name      string
		productID string
		unitPrice int64
		prevPrice *int64
		quantity  int
		errIs     error
	}{
		{name: "valid item", productID: "p-1", unitPrice: 1000, quantity: 1},
		{name: "free item is allowed", productID: "p-1", unitPrice: 0, quantity: 1},
		{name: "empty product id", productID: "", unitPrice: 1000, quantity: 1, errIs: cart.ErrEmptyProductID},
		{name: "negative price", productID: "p-1", unitPrice: -1, quantity: 1, errIs: cart.ErrNegativePrice},
		{name: "negative previous price", productID: "p-1", unitPrice: 100, prevPrice: ptr(int64(-5)), quantity: 1, errIs: cart.ErrNegativePrice},
		{name: "zero quantity", productID: "p-1", unitPrice: 1000, quantity: 0, errIs: cart.ErrInvalidQuantity},
		{name: "negative quantity", productID: "p-1", unitPrice: 1000, quantity: -2, errIs: cart.ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cart.NewLineItem(tt.productID, "name", "", tt.unitPrice, tt.prevPrice, false, tt.quantity)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCart_Add(t *testing.T) {
	t.Run("new product appends a line", func(t *testing.T) {
		c := cart.New()

		added, merged := c.Add(mustItem(t, "p-1", 1000), 1)

		assert.False(t, merged)
		assert.Equal(t, 1, added.Quantity)
		assert.Equal(t, 1, c.Count())
	})

	t.Run("same product merges quantities", func(t *testing.T) {
		c := cart.New()
		c.Add(mustItem(t, "p-1", 1000), 1)

		added, merged := c.Add(mustItem(t, "p-1", 1000), 1)

		assert.True(t, merged)
		assert.Equal(t, 2, added.Quantity)
		require.Len(t, c.Items(), 1)
		assert.Equal(t, int64(2000), c.Total())
	})

	t.Run("repeated adds accumulate requested quantities", func(t *testing.T) {
		c := cart.New()
		for _, qty := range []int{1, 3, 2} {
			c.Add(mustItem(t, "p-1", 500), qty)
		}

		items := c.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 6, items[0].Quantity)
		assert.Equal(t, 6, c.Count())
	})

	t.Run("requested quantity below one is treated as one", func(t *testing.T) {
		c := cart.New()

		added, _ := c.Add(mustItem(t, "p-1", 500), 0)

		assert.Equal(t, 1, added.Quantity)
	})

	t.Run("insertion order is preserved", func(t *testing.T) {
		c := cart.New()
		c.Add(mustItem(t, "p-2", 100), 1)
		c.Add(mustItem(t, "p-1", 100), 1)
		c.Add(mustItem(t, "p-2", 100), 1) // merge must not reorder

		items := c.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "p-2", items[0].ProductID)
		assert.Equal(t, "p-1", items[1].ProductID)
	})
}

func TestCart_UpdateQuantity(t *testing.T) {
	t.Run("sets quantity exactly, not incrementally", func(t *testing.T) {
		c := cart.New()
		c.Add(mustItem(t, "p-1", 1000), 5)

		c.UpdateQuantity("p-1", 2)

		item, ok := c.Find("p-1")
		require.True(t, ok)
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("zero quantity removes the line", func(t *testing.T) {
		c := cart.New()
		c.Add(mustItem(t, "p-1", 1000), 2)

		c.UpdateQuantity("p-1", 0)

		assert.True(t, c.IsEmpty())
	})

	t.Run("negative quantity removes the line", func(t *testing.T) {
		c := cart.New()
		c.Add(mustItem(t, "p-1", 1000), 2)

		c.UpdateQuantity("p-1", -1)

		_, ok := c.Find("p-1")
		assert.False(t, ok)
	})

	t.Run("absent product id is a no-op", func(t *testing.T) {
		c := cart.New()
		c.Add(mustItem(t, "p-1", 1000), 2)
		before := c.Items()

		c.UpdateQuantity("p-404", 7)

		assert.Empty(t, cmp.Diff(before, c.Items()))
	})
}

func TestCart_Remove(t *testing.T) {
	c := cart.New()
	c.Add(mustItem(t, "p-1", 1000), 1)
	c.Add(mustItem(t, "p-2", 2000), 1)

	c.Remove("p-1")
	c.Remove("p-404") // no-op

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p-2", items[0].ProductID)
}

func TestCart_DerivedValues(t *testing.T) {
	t.Run("total and count are recomputed from current lines", func(t *testing.T) {
		c := cart.New()
		c.Add(mustItem(t, "p-1", 1000), 2)
		c.Add(mustItem(t, "p-2", 350), 3)

		assert.Equal(t, int64(2*1000+3*350), c.Total())
		assert.Equal(t, 5, c.Count())
	})

	t.Run("no drift after cycles that net back to the original state", func(t *testing.T) {
		c := cart.New()
		c.Add(mustItem(t, "p-1", 1000), 2)
		want := c.Total()

		for i := 0; i < 10; i++ {
			c.Add(mustItem(t, "p-2", 700), 3)
			c.UpdateQuantity("p-1", 4)
			c.Remove("p-2")
			c.UpdateQuantity("p-1", 2)
		}

		assert.Equal(t, want, c.Total())
		assert.Equal(t, 2, c.Count())
	})

	t.Run("empty cart totals to zero", func(t *testing.T) {
		c := cart.New()
		assert.Zero(t, c.Total())
		assert.Zero(t, c.Count())
		assert.True(t, c.IsEmpty())
	})
}

func TestCart_Clear(t *testing.T) {
	c := cart.New()
	c.Add(mustItem(t, "p-1", 1000), 2)

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Items())
}

func TestFromItems(t *testing.T) {
	t.Run("rebuilds items in order", func(t *testing.T) {
		items := []cart.LineItem{mustItem(t, "p-1", 1000), mustItem(t, "p-2", 500)}

		c, err := cart.FromItems(items)

		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(items, c.Items()))
	})

	t.Run("duplicate product id rejects the whole list", func(t *testing.T) {
		items := []cart.LineItem{mustItem(t, "p-1", 1000), mustItem(t, "p-1", 1000)}

		_, err := cart.FromItems(items)

		assert.ErrorIs(t, err, cart.ErrDuplicateProduct)
	})

	t.Run("invalid item rejects the whole list", func(t *testing.T) {
		items := []cart.LineItem{{ProductID: "p-1", UnitPrice: 100, Quantity: 0}}

		_, err := cart.FromItems(items)

		assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
	})
}

func ptr[T any](v T) *T { return &v }
