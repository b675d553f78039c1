// Package listview is the UI-independent core of listkeep: it keeps the form
// state, the rendered rows and the item store in step.
//
// A Controller is driven from a single goroutine (the UI's event loop). Every
// exported mutation either completes across store, rows and chrome, or changes
// nothing.
package listview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"listkeep/internal/items"
	"listkeep/internal/model"
)

var (
	ErrEmptyInput  = errors.New("please add an item")
	ErrDuplicate   = errors.New("that item already exists")
	ErrUnknownItem = errors.New("no such item")
)

// NoticeText is the user-facing message for an error returned by the controller.
func NoticeText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyInput):
		return "Please add an item"
	case errors.Is(err, ErrDuplicate):
		return "That item already exists!"
	case errors.Is(err, ErrUnknownItem):
		return "That item no longer exists."
	default:
		return "Could not save: " + err.Error()
	}
}

// Chrome is the visibility of the auxiliary controls and the submit affordance.
type Chrome struct {
	ShowClear  bool
	ShowFilter bool
	ShowCancel bool
	Submit     model.Affordance
}

type Options struct {
	// Trim strips surrounding whitespace from the input before validating.
	Trim bool
	// RecheckDuplicatesOnEdit applies the duplicate check when confirming an
	// edit, ignoring the item being edited.
	RecheckDuplicatesOnEdit bool
	FilterMode              FilterMode
	Log                     *slog.Logger
}

// DefaultOptions matches the shipped configuration defaults.
func DefaultOptions() Options {
	return Options{RecheckDuplicatesOnEdit: true, FilterMode: FilterSubstring}
}

type Controller struct {
	store   *items.Store
	rows    Renderer
	session EditSession
	chrome  Chrome
	input   string
	filter  string
	opts    Options
	log     *slog.Logger
}

// New renders the store's current contents and normalizes the chrome.
func New(store *items.Store, opts Options) *Controller {
	if opts.FilterMode == "" {
		opts.FilterMode = FilterSubstring
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Controller{store: store, opts: opts, log: log}
	c.rows.RenderAll(store.Items())
	c.Refresh()
	return c
}

func (c *Controller) Input() string { return c.input }
func (c *Controller) SetInput(s string) { c.input = s }
func (c *Controller) Filter() string { return c.filter }
func (c *Controller) Chrome() Chrome { return c.chrome }
func (c *Controller) Session() EditSession { return c.session }
func (c *Controller) Mode() model.Mode { return c.session.Mode() }
func (c *Controller) Rows() []Row { return c.rows.Rows() }
func (c *Controller) VisibleRows() []Row { return c.rows.VisibleRows() }
func (c *Controller) Len() int { return c.rows.Len() }
func (c *Controller) Items() []model.Item { return c.store.Items() }
func (c *Controller) Row(id string) (Row, bool) { return c.rows.Row(id) }

// BeginEdit switches the form to editing id.
func (c *Controller) BeginEdit(id string) error {
	it, ok := c.store.Find(id)
	if !ok || !c.rows.FlagEditTarget(id) {
		return fmt.Errorf("edit %s: %w", id, ErrUnknownItem)
	}
	c.session = c.session.Begin(id)
	c.input = it.Label
	c.chrome.Submit = model.AffordanceUpdate
	c.chrome.ShowCancel = true
	c.log.Debug("edit begin", "id", id, "label", it.Label)
	return nil
}

// CancelEdit abandons the edit session without touching storage.
func (c *Controller) CancelEdit() {
	c.input = ""
	c.chrome.Submit = model.AffordanceAdd
	c.chrome.ShowCancel = false
	c.rows.ClearEditFlags()
	c.Refresh()
}

// Submit adds the current input, or confirms the edit when a session is active.
// Validation failures return ErrDuplicate or ErrEmptyInput and change nothing.
func (c *Controller) Submit(ctx context.Context) (model.Item, error) {
	v := c.input
	if c.opts.Trim {
		v = strings.TrimSpace(v)
	}

	target := c.session.Target()
	if target != "" {
		if _, ok := c.store.Find(target); !ok {
			// Target vanished (external reload); fall back to a plain add.
			c.session = c.session.End()
			target = ""
		}
	}

	var dup bool
	if target == "" {
		dup = c.store.Exists(v)
	} else if c.opts.RecheckDuplicatesOnEdit {
		dup = c.store.ExistsExcept(v, target)
	}
	if dup {
		return model.Item{}, ErrDuplicate
	}
	if v == "" {
		return model.Item{}, ErrEmptyInput
	}

	var (
		it  model.Item
		err error
	)
	if target != "" {
		it, err = c.store.Replace(ctx, target, v)
	} else {
		it, err = c.store.Add(ctx, v)
	}
	if err != nil {
		c.log.Error("submit failed", "mode", c.session.Mode().String(), "err", err)
		return model.Item{}, err
	}

	if target != "" {
		c.rows.RemoveRendered(target)
		c.session = c.session.End()
		c.log.Info("item updated", "old", target, "id", it.ID, "label", v)
	} else {
		c.log.Info("item added", "id", it.ID, "label", v)
	}
	c.rows.RenderOne(it)
	c.applyFilter()
	c.Refresh()
	return it, nil
}

// Remove deletes one item. Callers confirm with the user first.
func (c *Controller) Remove(ctx context.Context, id string) (model.Item, error) {
	it, ok, err := c.store.Remove(ctx, id)
	if err != nil {
		c.log.Error("remove failed", "id", id, "err", err)
		return model.Item{}, err
	}
	if !ok {
		return model.Item{}, fmt.Errorf("remove %s: %w", id, ErrUnknownItem)
	}
	c.rows.RemoveRendered(id)
	c.log.Info("item removed", "id", id, "label", it.Label)
	c.Refresh()
	return it, nil
}

// ClearAll deletes every item. Callers confirm with the user first.
func (c *Controller) ClearAll(ctx context.Context) error {
	if err := c.store.ClearAll(ctx); err != nil {
		c.log.Error("clear failed", "err", err)
		return err
	}
	c.rows.RenderAll(nil)
	c.log.Info("items cleared")
	c.Refresh()
	return nil
}

// SetFilter updates the filter text and row visibility. Storage is not touched.
func (c *Controller) SetFilter(s string) {
	c.filter = s
	c.applyFilter()
}

// Reload re-reads storage and redraws every row when it changed. When the read
// fails the rows on screen are kept.
func (c *Controller) Reload(ctx context.Context) bool {
	changed, err := c.store.Reload(ctx)
	if err != nil {
		c.log.Warn("reload failed; keeping current items", "err", err)
		return false
	}
	if !changed {
		return false
	}
	c.rows.RenderAll(c.store.Items())
	c.applyFilter()
	c.Refresh()
	c.log.Info("items reloaded", "count", c.rows.Len())
	return true
}

// Refresh normalizes the transient chrome after a structural change.
func (c *Controller) Refresh() {
	c.input = ""
	has := c.rows.Len() > 0
	c.chrome.ShowClear = has
	c.chrome.ShowFilter = has
	if !has {
		c.filter = ""
	}
	c.chrome.Submit = model.AffordanceAdd
	c.chrome.ShowCancel = false
	c.session = c.session.End()
	c.rows.ClearEditFlags()
}

func (c *Controller) applyFilter() {
	c.rows.setVisibility(match(c.opts.FilterMode, c.filter, c.rows.labels()))
}
