package model

import (
	"strings"

	"github.com/google/uuid"
)

// Item is one list entry. The label is what gets persisted; the ID only lives in
// memory and is reassigned every time the collection is loaded.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// NewItem returns an item with a freshly generated ID.
func NewItem(label string) Item {
	return Item{ID: NewID(), Label: label}
}

func NewID() string {
	return "item-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// SameLabel reports whether two labels collide for duplicate checking.
func SameLabel(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Labels projects items to their labels, preserving order.
func Labels(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Label)
	}
	return out
}

// Mode is the state of the item form.
type Mode int

const (
	ModeAdding Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeEditing:
		return "editing"
	default:
		return "adding"
	}
}

// Affordance is what the submit control currently offers.
type Affordance int

const (
	AffordanceAdd Affordance = iota
	AffordanceUpdate
)

func (a Affordance) Label() string {
	if a == AffordanceUpdate {
		return "Update Item"
	}
	return "Add Item"
}
