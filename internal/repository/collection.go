package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"course-service/internal/ids"
	"course-service/internal/kv"
	"course-service/internal/observability"
)

const (
	DraftsKey        = "course_drafts"
	PublishedKey     = "published_courses"
	AnnouncementsKey = "course_announcements"
	AttachmentsKey   = "course_attachments"
)

var (
	ErrPatchNotObject = errors.New("patch must encode to a JSON object")
	ErrInvalidPatch   = errors.New("patch does not fit the record")
)

type record interface {
	GetID() string
}

// collection is a flat JSON array stored under one key. Every mutation is a
// full read-modify-write of the array with no locking, so two writers racing
// on the same key lose one of the updates.
type collection[T record] struct {
	store kv.Store
	key   string
	ids   ids.Generator
	now   func() time.Time
}

func newCollection[T record](store kv.Store, key string, gen ids.Generator) *collection[T] {
	return &collection[T]{store: store, key: key, ids: gen, now: storageNow}
}

// list never fails on bad data: a missing or undecodable blob reads as an
// empty collection. Only backend errors are returned.
func (c *collection[T]) list(ctx context.Context) ([]T, error) {
	blob, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.key, err)
	}
	if !ok || len(blob) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		slog.WarnContext(ctx, "Stored collection is unreadable, treating as empty",
			slog.String("collection", c.key),
			slog.String("error", err.Error()),
		)
		observability.StorageParseFailures.WithLabelValues(c.key).Inc()
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

func (c *collection[T]) write(ctx context.Context, items []T) error {
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, blob); err != nil {
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	return nil
}

func (c *collection[T]) find(ctx context.Context, id string) (*T, error) {
	items, err := c.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].GetID() == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (c *collection[T]) create(ctx context.Context, build func(id string, now time.Time) T) (*T, error) {
	items, err := c.list(ctx)
	if err != nil {
		return nil, err
	}

	item := build(c.ids.NewID(), c.now())
	items = append(items, item)

	if err := c.write(ctx, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// update merges patch over the stored record the way an object spread does:
// top-level keys present in the patch replace the stored ones, everything else
// is kept. The id is never overwritten. touch, when set, runs after the merge.
func (c *collection[T]) update(ctx context.Context, id string, patch any, touch func(prev, next *T, now time.Time)) (*T, error) {
	items, err := c.list(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range items {
		if items[i].GetID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}

	merged, err := mergeRecord(items[idx], patch)
	if err != nil {
		return nil, err
	}
	if touch != nil {
		touch(&items[idx], &merged, c.now())
	}
	items[idx] = merged

	if err := c.write(ctx, items); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (c *collection[T]) delete(ctx context.Context, id string) (bool, error) {
	items, err := c.list(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]T, 0, len(items))
	for _, item := range items {
		if item.GetID() != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}

	if err := c.write(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

func mergeRecord[T record](existing T, patch any) (T, error) {
	var out T

	base, err := toObject(existing)
	if err != nil {
		return out, err
	}
	overlay, err := toObject(patch)
	if err != nil {
		return out, err
	}

	for k, v := range overlay {
		if k == "id" {
			continue
		}
		base[k] = v
	}

	blob, err := json.Marshal(base)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(blob, &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return out, nil
}

func toObject(v any) (map[string]json.RawMessage, error) {
	var blob []byte
	switch p := v.(type) {
	case json.RawMessage:
		blob = p
	case []byte:
		blob = p
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		blob = encoded
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(blob, &obj); err != nil || obj == nil {
		return nil, ErrPatchNotObject
	}
	return obj, nil
}

// storageNow drops the monotonic reading and zone so a timestamp compares
// equal to itself after a JSON round trip.
func storageNow() time.Time {
	return time.Now().UTC().Round(0)
}

// nextTimestamp keeps updatedAt strictly increasing even when the clock has
// not moved since the previous write.
func nextTimestamp(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Nanosecond)
}
