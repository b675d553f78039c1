// Package items holds the in-memory item collection and keeps it in step with the
// storage adapter.
package items

import (
	"context"
	"errors"
	"slices"

	"listkeep/internal/model"
	"listkeep/internal/storage"
)

// Persister is the slice of storage.Adapter the store depends on.
type Persister interface {
	Load(ctx context.Context) []string
	LoadStrict(ctx context.Context) ([]string, error)
	Save(ctx context.Context, labels []string) error
	Clear(ctx context.Context) error
}

// ErrNotFound is returned when an item ID is not in the collection.
var ErrNotFound = errors.New("item not found")

var _ Persister = (*storage.Adapter)(nil)

// Store is the ordered item collection. Every mutation is written through to the
// persister; a failed write leaves memory as it was.
//
// Store does not validate labels. Callers check emptiness and duplicates first.
type Store struct {
	p     Persister
	items []model.Item
}

// Open loads the persisted labels and assigns fresh IDs.
func Open(ctx context.Context, p Persister) *Store {
	s := &Store{p: p}
	s.items = withIDs(p.Load(ctx))
	return s
}

func withIDs(labels []string) []model.Item {
	out := make([]model.Item, 0, len(labels))
	for _, l := range labels {
		out = append(out, model.NewItem(l))
	}
	return out
}

func (s *Store) Len() int { return len(s.items) }

// Items returns a copy of the collection in order.
func (s *Store) Items() []model.Item {
	return slices.Clone(s.items)
}

func (s *Store) Labels() []string { return model.Labels(s.items) }

func (s *Store) Find(id string) (model.Item, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

// FindLabel returns the first item whose label is exactly label.
func (s *Store) FindLabel(label string) (model.Item, bool) {
	for _, it := range s.items {
		if it.Label == label {
			return it, true
		}
	}
	return model.Item{}, false
}

// Exists reports whether any item matches label case-insensitively.
func (s *Store) Exists(label string) bool {
	return s.ExistsExcept(label, "")
}

// ExistsExcept is Exists ignoring the item with the given ID.
func (s *Store) ExistsExcept(label, id string) bool {
	for _, it := range s.items {
		if id != "" && it.ID == id {
			continue
		}
		if model.SameLabel(it.Label, label) {
			return true
		}
	}
	return false
}

// Add appends label and persists the whole collection.
func (s *Store) Add(ctx context.Context, label string) (model.Item, error) {
	it := model.NewItem(label)
	next := append(slices.Clone(s.items), it)
	if err := s.p.Save(ctx, model.Labels(next)); err != nil {
		return model.Item{}, err
	}
	s.items = next
	return it, nil
}

// Remove deletes the item with the given ID and persists.
func (s *Store) Remove(ctx context.Context, id string) (model.Item, bool, error) {
	idx := slices.IndexFunc(s.items, func(it model.Item) bool { return it.ID == id })
	return s.removeAt(ctx, idx)
}

// RemoveLabel deletes the first item whose label is exactly label and persists.
func (s *Store) RemoveLabel(ctx context.Context, label string) (model.Item, bool, error) {
	idx := slices.IndexFunc(s.items, func(it model.Item) bool { return it.Label == label })
	return s.removeAt(ctx, idx)
}

func (s *Store) removeAt(ctx context.Context, idx int) (model.Item, bool, error) {
	if idx < 0 {
		return model.Item{}, false, nil
	}
	removed := s.items[idx]
	next := slices.Delete(slices.Clone(s.items), idx, idx+1)
	if err := s.p.Save(ctx, model.Labels(next)); err != nil {
		return model.Item{}, false, err
	}
	s.items = next
	return removed, true, nil
}

// Replace removes the item with the given ID and appends label as a new item, in
// one write. The new item goes to the end of the collection.
func (s *Store) Replace(ctx context.Context, id, label string) (model.Item, error) {
	idx := slices.IndexFunc(s.items, func(it model.Item) bool { return it.ID == id })
	if idx < 0 {
		return model.Item{}, ErrNotFound
	}
	it := model.NewItem(label)
	next := slices.Delete(slices.Clone(s.items), idx, idx+1)
	next = append(next, it)
	if err := s.p.Save(ctx, model.Labels(next)); err != nil {
		return model.Item{}, err
	}
	s.items = next
	return it, nil
}

// ClearAll empties the collection and removes the stored value.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.p.Clear(ctx); err != nil {
		return err
	}
	s.items = []model.Item{}
	return nil
}

// Reload re-reads storage. It reports whether the labels differ from what was in
// memory; when they do not, IDs are kept. A failed read leaves memory untouched.
func (s *Store) Reload(ctx context.Context) (bool, error) {
	labels, err := s.p.LoadStrict(ctx)
	if err != nil {
		return false, err
	}
	if slices.Equal(labels, s.Labels()) {
		return false, nil
	}
	s.items = withIDs(labels)
	return true, nil
}
