package response

import (
	"cart-engine/internal/domain/cart"
	"cart-engine/internal/usecase/commands"
	"cart-engine/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type CartItemResponse struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	ThumbnailRef  string `json:"thumbnail_ref,omitempty"`
	UnitPrice     int64  `json:"unit_price"`
	PreviousPrice *int64 `json:"previous_price,omitempty"`
	Promotional   bool   `json:"promotional"`
	Quantity      int    `json:"quantity"`
	Subtotal      int64  `json:"subtotal"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total int64              `json:"total"`
	Count int                `json:"count"`
}

func FromCartView(v *queries.CartView) *CartResponse {
	resp := &CartResponse{
		Items: make([]CartItemResponse, 0, len(v.Items)),
		Total: v.Total,
		Count: v.Count,
	}
	_ = copier.Copy(&resp.Items, v.Items)
	return resp
}

type AddItemResponse struct {
	Item   CartItemResponse `json:"item"`
	Merged bool             `json:"merged"`
	Total  int64            `json:"total"`
	Count  int              `json:"count"`
}

func FromAddItemResult(r *commands.AddItemResult) *AddItemResponse {
	return &AddItemResponse{
		Item:   fromLineItem(r.Item),
		Merged: r.Merged,
		Total:  r.Total,
		Count:  r.Count,
	}
}

func fromLineItem(it cart.LineItem) CartItemResponse {
	return CartItemResponse{
		ProductID:     it.ProductID,
		Name:          it.Name,
		ThumbnailRef:  it.ThumbnailRef,
		UnitPrice:     it.UnitPrice,
		PreviousPrice: it.PreviousPrice,
		Promotional:   it.Promotional,
		Quantity:      it.Quantity,
		Subtotal:      it.Subtotal(),
	}
}
