package listview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"listkeep/internal/items"
	"listkeep/internal/storage"

	"pgregory.net/rapid"
)

// Random add/edit/remove/clear/filter sequences keep rows 1:1 with storage, never
// store case-insensitive duplicates and keep the aux controls in step.
func TestController_RowsTrackStorage(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := context.Background()
		a := storage.NewAdapter(storage.NewMemory(), "items", nil)
		c := New(items.Open(ctx, a), DefaultOptions())
		label := rapid.StringMatching(`[A-Ca-c]{0,2}`)

		pick := func(t *rapid.T) (string, bool) {
			rows := c.Rows()
			if len(rows) == 0 {
				return "", false
			}
			return rows[rapid.IntRange(0, len(rows)-1).Draw(t, "row")].ItemID, true
		}

		t.Repeat(map[string]func(*rapid.T){
			"add": func(t *rapid.T) {
				c.SetInput(label.Draw(t, "label"))
				before := a.Load(ctx)
				if _, err := c.Submit(ctx); err != nil {
					if !errors.Is(err, ErrDuplicate) && !errors.Is(err, ErrEmptyInput) {
						t.Fatalf("unexpected error: %v", err)
					}
					if len(a.Load(ctx)) != len(before) {
						t.Fatal("rejected add changed storage")
					}
				}
			},
			"edit": func(t *rapid.T) {
				id, ok := pick(t)
				if !ok {
					t.Skip("empty")
				}
				if err := c.BeginEdit(id); err != nil {
					t.Fatalf("begin edit: %v", err)
				}
				c.SetInput(label.Draw(t, "label"))
				_, _ = c.Submit(ctx)
			},
			"cancel": func(t *rapid.T) {
				id, ok := pick(t)
				if !ok {
					t.Skip("empty")
				}
				_ = c.BeginEdit(id)
				c.CancelEdit()
			},
			"remove": func(t *rapid.T) {
				id, ok := pick(t)
				if !ok {
					t.Skip("empty")
				}
				n := len(a.Load(ctx))
				if _, err := c.Remove(ctx, id); err != nil {
					t.Fatalf("remove: %v", err)
				}
				if got := len(a.Load(ctx)); got != n-1 {
					t.Fatalf("remove changed count by %d", n-got)
				}
			},
			"clear": func(t *rapid.T) {
				if err := c.ClearAll(ctx); err != nil {
					t.Fatalf("clear: %v", err)
				}
			},
			"filter": func(t *rapid.T) {
				c.SetFilter(label.Draw(t, "filter"))
			},
			"": func(t *rapid.T) {
				stored := a.Load(ctx)
				rows := c.Rows()
				if len(rows) != len(stored) {
					t.Fatalf("rows=%d stored=%d", len(rows), len(stored))
				}
				for i := range rows {
					if rows[i].Label != stored[i] {
						t.Fatalf("row %d = %q, stored %q", i, rows[i].Label, stored[i])
					}
				}
				seen := map[string]bool{}
				for _, l := range stored {
					if l == "" {
						t.Fatal("empty label stored")
					}
					k := strings.ToLower(l)
					if seen[k] {
						t.Fatalf("duplicate stored: %q in %#v", l, stored)
					}
					seen[k] = true
				}
				ch := c.Chrome()
				if ch.ShowClear != (len(rows) > 0) || ch.ShowFilter != (len(rows) > 0) {
					t.Fatalf("aux controls %#v with %d rows", ch, len(rows))
				}
				flagged := 0
				for _, r := range rows {
					if r.EditTarget {
						flagged++
					}
				}
				if flagged > 1 {
					t.Fatalf("%d rows flagged", flagged)
				}
			},
		})
	})
}
