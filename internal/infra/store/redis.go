package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"cart-engine/internal/domain/cart"
	"cart-engine/internal/pkg/errs"
	"cart-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// envelope is the persisted snapshot layout: epoch-millis capture time plus
// the raw line items. Shape is validated on read; any mismatch routes to the
// "treat as absent" path, never a partial merge.
type envelope struct {
	CapturedAt int64            `json:"captured_at"`
	Items      []lineItemRecord `json:"items"`
}

type lineItemRecord struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	ThumbnailRef  string `json:"thumbnail_ref,omitempty"`
	UnitPrice     int64  `json:"unit_price"`
	PreviousPrice *int64 `json:"previous_price,omitempty"`
	Promotional   bool   `json:"promotional,omitempty"`
	Quantity      int    `json:"quantity"`
}

// RedisSnapshotStore keeps one snapshot per session under
// <prefix>:<sessionID>, expiring server-side at the snapshot TTL. Every Save
// resets the expiry, so the client-side capturedAt check and the Redis TTL
// agree on the same window.
type RedisSnapshotStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisSnapshotStore(client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (s *RedisSnapshotStore) Load(ctx context.Context, sessionID uuid.UUID) (*cart.Snapshot, error) {
	key := s.key(sessionID)

	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, shared.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, errs.Wrap(err, "redis get failed")
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil || env.CapturedAt <= 0 {
		// Corrupt payloads are cleared and reported as absent.
		s.logger.Warn("discarding malformed cart snapshot", "key", key)
		if delErr := s.client.Del(ctx, key).Err(); delErr != nil {
			s.logger.Warn("failed to delete malformed snapshot", "key", key, "error", delErr.Error())
		}
		return nil, shared.ErrSnapshotNotFound
	}

	items := make([]cart.LineItem, len(env.Items))
	for i, rec := range env.Items {
		items[i] = cart.LineItem{
			ProductID:     rec.ProductID,
			Name:          rec.Name,
			ThumbnailRef:  rec.ThumbnailRef,
			UnitPrice:     rec.UnitPrice,
			PreviousPrice: rec.PreviousPrice,
			Promotional:   rec.Promotional,
			Quantity:      rec.Quantity,
		}
	}

	return cart.NewSnapshot(time.UnixMilli(env.CapturedAt), items), nil
}

func (s *RedisSnapshotStore) Save(ctx context.Context, sessionID uuid.UUID, snap *cart.Snapshot) error {
	env := envelope{
		CapturedAt: snap.CapturedAt.UnixMilli(),
		Items:      make([]lineItemRecord, len(snap.Items)),
	}
	for i, it := range snap.Items {
		env.Items[i] = lineItemRecord{
			ProductID:     it.ProductID,
			Name:          it.Name,
			ThumbnailRef:  it.ThumbnailRef,
			UnitPrice:     it.UnitPrice,
			PreviousPrice: it.PreviousPrice,
			Promotional:   it.Promotional,
			Quantity:      it.Quantity,
		}
	}

	data, err := json.Marshal(env)
	if err != nil {
		return errs.Wrap(err, "marshal cart snapshot failed")
	}

	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return errs.Wrap(err, "redis set failed")
	}
	return nil
}

func (s *RedisSnapshotStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return errs.Wrap(err, "redis delete failed")
	}
	return nil
}

func (s *RedisSnapshotStore) key(sessionID uuid.UUID) string {
	return s.prefix + ":" + sessionID.String()
}
