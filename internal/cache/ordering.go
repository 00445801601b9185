// ordering.go implements the display-order store. Gallery items and team
// members keep their user-chosen sequence as Redis lists, decoupled from
// the relational rows. The lists are a display hint, not a source of
// truth: an empty list means default (insertion) order, and the whole
// thing is rebuildable from scratch.
package cache

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// OrderKind names one of the ordered listings.
type OrderKind string

const (
	OrderGalleryImages OrderKind = "gallery:images"
	OrderGalleryVideos OrderKind = "gallery:videos"
	OrderTeam          OrderKind = "team"
)

const (
	orderKeyPrefix   = "order:"
	versionKeySuffix = ":version"
)

// ErrStaleVersion is returned when a reorder carries a version token that
// no longer matches the stored one, meaning another admin reordered the
// list in between. The caller should re-read and retry.
var ErrStaleVersion = fmt.Errorf("ordering: stale version")

// OrderStore persists display orderings in Redis. Each listing has a list
// key holding ids in display order and a companion version counter used
// as an optimistic-concurrency token.
type OrderStore struct {
	client *redis.Client
}

// NewOrderStore creates an OrderStore backed by the given Redis client.
func NewOrderStore(client *redis.Client) *OrderStore {
	return &OrderStore{client: client}
}

func listKey(kind OrderKind) string    { return orderKeyPrefix + string(kind) }
func versionKey(kind OrderKind) string { return listKey(kind) + versionKeySuffix }

// Get returns the stored ordering and its current version. A missing list
// yields an empty slice and version 0 (default order applies).
func (s *OrderStore) Get(ctx context.Context, kind OrderKind) ([]uuid.UUID, int64, error) {
	raw, err := s.client.LRange(ctx, listKey(kind), 0, -1).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("ordering get %s: %w", kind, err)
	}

	version, err := s.client.Get(ctx, versionKey(kind)).Int64()
	if err == redis.Nil {
		version = 0
	} else if err != nil {
		return nil, 0, fmt.Errorf("ordering version %s: %w", kind, err)
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for _, v := range raw {
		id, err := uuid.Parse(v)
		if err != nil {
			// A corrupt entry is skipped rather than breaking the page;
			// the list is rebuildable.
			continue
		}
		ids = append(ids, id)
	}
	return ids, version, nil
}

// Replace overwrites the ordering wholesale: the list is cleared and
// re-inserted in the given order, and the version counter is bumped.
//
// expectedVersion implements the optimistic-concurrency check: when > 0 it
// must match the stored version or ErrStaleVersion is returned and nothing
// changes. Passing 0 skips the check (last writer wins), preserving the
// legacy overwrite behavior for clients that never read a version.
//
// An empty ids slice clears the ordering entirely.
func (s *OrderStore) Replace(ctx context.Context, kind OrderKind, ids []uuid.UUID, expectedVersion int64) (int64, error) {
	lk, vk := listKey(kind), versionKey(kind)

	write := func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, lk)
		if len(ids) > 0 {
			vals := make([]interface{}, len(ids))
			for i, id := range ids {
				vals[i] = id.String()
			}
			pipe.RPush(ctx, lk, vals...)
		}
		pipe.Incr(ctx, vk)
		return nil
	}

	if expectedVersion == 0 {
		// No version supplied: plain overwrite, last writer wins. No WATCH
		// here, so a concurrent reorder can never fail this write.
		if _, err := s.client.TxPipelined(ctx, write); err != nil {
			return 0, fmt.Errorf("ordering replace %s: %w", kind, err)
		}
	} else {
		txn := func(tx *redis.Tx) error {
			current, err := tx.Get(ctx, vk).Int64()
			if err == redis.Nil {
				current = 0
			} else if err != nil {
				return fmt.Errorf("ordering read version: %w", err)
			}
			if current != expectedVersion {
				return ErrStaleVersion
			}

			_, err = tx.TxPipelined(ctx, write)
			return err
		}

		// Watch the version key so a concurrent Replace between our read and
		// write aborts the transaction instead of silently losing an ordering.
		if err := s.client.Watch(ctx, txn, vk); err != nil {
			if err == redis.TxFailedErr || err == ErrStaleVersion {
				return 0, ErrStaleVersion
			}
			return 0, fmt.Errorf("ordering replace %s: %w", kind, err)
		}
	}

	newVersion, err := s.client.Get(ctx, vk).Int64()
	if err != nil && err != redis.Nil {
		return 0, fmt.Errorf("ordering replace %s: read new version: %w", kind, err)
	}
	return newVersion, nil
}

// Remove deletes a single id from the ordering, used when the underlying
// entity is deleted. Missing ids are a no-op. The version is not bumped:
// removal never conflicts with a reorder in a way the user would care
// about, and bumping would spuriously fail in-flight reorders.
func (s *OrderStore) Remove(ctx context.Context, kind OrderKind, id uuid.UUID) error {
	if err := s.client.LRem(ctx, listKey(kind), 0, id.String()).Err(); err != nil {
		return fmt.Errorf("ordering remove %s %s: %w", kind, id, err)
	}
	return nil
}

// Clear drops the ordering and its version, restoring default order.
func (s *OrderStore) Clear(ctx context.Context, kind OrderKind) error {
	if err := s.client.Del(ctx, listKey(kind), versionKey(kind)).Err(); err != nil {
		return fmt.Errorf("ordering clear %s: %w", kind, err)
	}
	return nil
}

// Apply sorts items so that ids present in the ordering come first, in
// order, followed by unlisted items in their original (insertion) order.
// Ordering ids with no matching item are skipped. idOf extracts the id
// for each element.
func Apply[T any](items []T, order []uuid.UUID, idOf func(T) uuid.UUID) []T {
	if len(order) == 0 {
		return items
	}

	byID := make(map[uuid.UUID]T, len(items))
	for _, item := range items {
		byID[idOf(item)] = item
	}

	out := make([]T, 0, len(items))
	placed := make(map[uuid.UUID]bool, len(order))
	for _, id := range order {
		if item, ok := byID[id]; ok && !placed[id] {
			out = append(out, item)
			placed[id] = true
		}
	}
	for _, item := range items {
		if !placed[idOf(item)] {
			out = append(out, item)
		}
	}
	return out
}
