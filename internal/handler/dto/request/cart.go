package request

import (
	"cart-engine/internal/usecase/commands"
)

type AddItemRequest struct {
	ProductID     string `json:"product_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	ThumbnailRef  string `json:"thumbnail_ref"`
	UnitPrice     int64  `json:"unit_price" binding:"min=0"`
	PreviousPrice *int64 `json:"previous_price" binding:"omitempty,min=0"`
	Promotional   bool   `json:"promotional"`
	// Quantity defaults to 1 when omitted.
	Quantity int `json:"quantity" binding:"omitempty,min=1"`
}

func (r *AddItemRequest) ToCommand() commands.AddItemRequest {
	return commands.AddItemRequest{
		ProductID:     r.ProductID,
		Name:          r.Name,
		ThumbnailRef:  r.ThumbnailRef,
		UnitPrice:     r.UnitPrice,
		PreviousPrice: r.PreviousPrice,
		Promotional:   r.Promotional,
		Quantity:      r.Quantity,
	}
}

type UpdateQuantityRequest struct {
	// Zero or negative removes the line, so the field is a pointer: absence
	// and zero must be distinguishable.
	Quantity *int `json:"quantity" binding:"required"`
}
