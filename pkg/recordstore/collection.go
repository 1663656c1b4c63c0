package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
)

// Collection is a typed view over one named collection.
type Collection[T any] struct {
	store *Store
	name  string
}

func NewCollection[T any](store *Store, name string) *Collection[T] {
	return &Collection[T]{store: store, name: name}
}

func (c *Collection[T]) Name() string {
	return c.name
}

// All returns every record in stored order. The result is never nil.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	raw, err := c.store.Load(ctx, c.name)
	if err != nil {
		return nil, err
	}
	return decode[T](c.name, raw)
}

// Mutate loads the collection, applies fn and persists the result while
// holding the collection lock. It returns the collection as persisted. When
// fn returns ErrNoChange nothing is written and the current records are
// returned.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(records []T) ([]T, error)) ([]T, error) {
	var result []T
	err := c.store.Update(ctx, c.name, func(raw []byte) ([]byte, error) {
		current, err := decode[T](c.name, raw)
		if err != nil {
			return nil, err
		}
		next, err := fn(current)
		if errors.Is(err, ErrNoChange) {
			result = current
			return nil, ErrNoChange
		}
		if err != nil {
			return nil, err
		}
		if next == nil {
			next = []T{}
		}
		data, err := json.Marshal(next)
		if err != nil {
			return nil, unavailable(opEncode, c.name, err)
		}
		result = next
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func decode[T any](collection string, raw []byte) ([]T, error) {
	records := []T{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, unavailable(opDecode, collection, err)
	}
	if records == nil {
		// stored literal null
		records = []T{}
	}
	return records, nil
}
