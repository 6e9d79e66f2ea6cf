package shared

import (
	"github.com/google/uuid"
)

// StagingRequest is the outbound order draft handed to the staging gateway.
// Amounts are in minor currency units.
type StagingRequest struct {
	ClientName  string
	Products    []StagingProduct
	TotalAmount int64
	Currency    string
	// Nonce deduplicates user-initiated resubmissions of the same draft.
	Nonce uuid.UUID
}

type StagingProduct struct {
	ProductID    string
	Description  string
	ThumbnailRef string
	Quantity     int
	UnitPrice    int64
}
