package state

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrDuplicateID is returned when adding an item whose ID already exists
	ErrDuplicateID = errors.New("duplicate id")

	// ErrNotFound is returned when no item carries the requested ID
	ErrNotFound = errors.New("not found")
)

// Identifiable is implemented by every collection item.
type Identifiable interface {
	GetID() string
}

// Collection is an insertion-ordered set of items keyed by ID.
// It is not safe for concurrent use on its own; State guards it.
type Collection[T Identifiable] struct {
	items []T
}

// NewCollection returns a collection seeded with items. Later duplicates of
// an ID are dropped.
func NewCollection[T Identifiable](items ...T) *Collection[T] {
	c := &Collection[T]{}
	for _, item := range items {
		_ = c.Add(item)
	}

	return c
}

// Add appends item. Duplicate IDs are rejected.
func (c *Collection[T]) Add(item T) error {
	if c.index(item.GetID()) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, item.GetID())
	}

	c.items = append(c.items, item)

	return nil
}

// RemoveByID deletes the item with id. It reports whether anything was removed.
func (c *Collection[T]) RemoveByID(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}

	c.items = slices.Delete(c.items, i, i+1)

	return true
}

// ReplaceByID swaps the item with id for item, keeping its position.
func (c *Collection[T]) ReplaceByID(id string, item T) error {
	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if item.GetID() != id && c.index(item.GetID()) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, item.GetID())
	}

	c.items[i] = item

	return nil
}

// Get returns the item with id.
func (c *Collection[T]) Get(id string) (T, bool) {
	i := c.index(id)
	if i < 0 {
		var zero T
		return zero, false
	}

	return c.items[i], true
}

// List returns a copy of all items in insertion order.
func (c *Collection[T]) List() []T {
	return slices.Clone(c.items)
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// Reset replaces the contents with items.
func (c *Collection[T]) Reset(items []T) {
	c.items = c.items[:0]
	for _, item := range items {
		_ = c.Add(item)
	}
}

func (c *Collection[T]) index(id string) int {
	return slices.IndexFunc(c.items, func(item T) bool {
		return item.GetID() == id
	})
}
