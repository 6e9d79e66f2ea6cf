package request

import (
	"cart-engine/internal/usecase/commands"
)

type StageCartRequest struct {
	ClientName string `json:"client_name" binding:"required"`
}

type BuyNowItem struct {
	ProductID     string `json:"product_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	ThumbnailRef  string `json:"thumbnail_ref"`
	UnitPrice     int64  `json:"unit_price" binding:"min=0"`
	PreviousPrice *int64 `json:"previous_price" binding:"omitempty,min=0"`
	Promotional   bool   `json:"promotional"`
}

// BuyNowRequest stages exactly one item at quantity 1, bypassing the cart.
type BuyNowRequest struct {
	ClientName string     `json:"client_name" binding:"required"`
	Item       BuyNowItem `json:"item" binding:"required"`
}

func (r *BuyNowRequest) ToCommand() commands.SingleItemRequest {
	return commands.SingleItemRequest{
		ProductID:     r.Item.ProductID,
		Name:          r.Item.Name,
		ThumbnailRef:  r.Item.ThumbnailRef,
		UnitPrice:     r.Item.UnitPrice,
		PreviousPrice: r.Item.PreviousPrice,
		Promotional:   r.Item.Promotional,
	}
}
