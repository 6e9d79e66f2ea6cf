package cart

import "time"

// Snapshot is the persisted envelope for a cart: the items plus the moment
// they were captured. A snapshot older than the configured TTL is discarded
// whole on hydration; there is no partial recovery.
type Snapshot struct {
	CapturedAt time.Time
	Items      []LineItem
}

func NewSnapshot(capturedAt time.Time, items []LineItem) *Snapshot {
	return &Snapshot{CapturedAt: capturedAt, Items: items}
}

// ValidAt reports whether the snapshot is still inside its TTL window.
func (s *Snapshot) ValidAt(now time.Time, ttl time.Duration) bool {
	if s.CapturedAt.IsZero() {
		return false
	}
	return now.Sub(s.CapturedAt) < ttl
}
