//go:build unit || e2e

package builder

import (
	domcart "cart-engine/internal/domain/cart"
	reqdto "cart-engine/internal/handler/dto/request"
	"cart-engine/internal/usecase/commands"
	"cart-engine/internal/usecase/queries"
)

type CartItemBuilder struct {
	ProductID     string
	Name          string
	ThumbnailRef  string
	UnitPrice     int64
	PreviousPrice *int64
	Promotional   bool
	Quantity      int
}

func NewCartItemBuilder() *CartItemBuilder {
	return &CartItemBuilder{
		ProductID:    "prod-001",
		Name:         "Wireless Mouse",
		ThumbnailRef: "thumbs/prod-001.jpg",
		UnitPrice:    120000, // ₦1,200.00 in kobo
		Quantity:     1,
	}
}

// Build methods
func (b *CartItemBuilder) BuildDomain() (domcart.LineItem, error) {
	return domcart.NewLineItem(b.ProductID, b.Name, b.ThumbnailRef, b.UnitPrice, b.PreviousPrice, b.Promotional, b.Quantity)
}

func (b *CartItemBuilder) BuildAddItemRequestDTO() reqdto.AddItemRequest {
	return reqdto.AddItemRequest{
		ProductID:     b.ProductID,
		Name:          b.Name,
		ThumbnailRef:  b.ThumbnailRef,
		UnitPrice:     b.UnitPrice,
		PreviousPrice: b.PreviousPrice,
		Promotional:   b.Promotional,
		Quantity:      b.Quantity,
	}
}

func (b *CartItemBuilder) BuildBuyNowRequestDTO(clientName string) reqdto.BuyNowRequest {
	return reqdto.BuyNowRequest{
		ClientName: clientName,
		Item: reqdto.BuyNowItem{
			ProductID:     b.ProductID,
			Name:          b.Name,
			ThumbnailRef:  b.ThumbnailRef,
			UnitPrice:     b.UnitPrice,
			PreviousPrice: b.PreviousPrice,
			Promotional:   b.Promotional,
		},
	}
}

func (b *CartItemBuilder) BuildItemView() queries.CartItemView {
	return queries.CartItemView{
		ProductID:     b.ProductID,
		Name:          b.Name,
		ThumbnailRef:  b.ThumbnailRef,
		UnitPrice:     b.UnitPrice,
		PreviousPrice: b.PreviousPrice,
		Promotional:   b.Promotional,
		Quantity:      b.Quantity,
		Subtotal:      b.UnitPrice * int64(b.Quantity),
	}
}

func (b *CartItemBuilder) BuildAddItemResult(merged bool) *commands.AddItemResult {
	item, _ := b.BuildDomain()
	return &commands.AddItemResult{
		Item:   item,
		Merged: merged,
		Total:  item.Subtotal(),
		Count:  item.Quantity,
	}
}

// Fluent builder methods
func (b *CartItemBuilder) WithProductID(id string) *CartItemBuilder {
	b.ProductID = id
	return b
}

func (b *CartItemBuilder) WithName(name string) *CartItemBuilder {
	b.Name = name
	return b
}

func (b *CartItemBuilder) WithUnitPrice(price int64) *CartItemBuilder {
	b.UnitPrice = price
	return b
}

func (b *CartItemBuilder) WithQuantity(qty int) *CartItemBuilder {
	b.Quantity = qty
	return b
}

func (b *CartItemBuilder) AsPromotional(previousPrice int64) *CartItemBuilder {
	b.Promotional = true
	b.PreviousPrice = &previousPrice
	return b
}

// BuildCartView aggregates item views the way the read side does.
func BuildCartView(items ...queries.CartItemView) *queries.CartView {
	view := &queries.CartView{Items: items}
	for _, it := range items {
		view.Total += it.Subtotal
		view.Count += it.Quantity
	}
	return view
}
