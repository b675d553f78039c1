package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	json "github.com/goccy/go-json"
)

// DefaultKey is the slot the item collection lives under.
const DefaultKey = "items"

// Adapter persists one ordered sequence of labels under a single key.
type Adapter struct {
	kv  KV
	key string
	log *slog.Logger
}

func NewAdapter(kv KV, key string, log *slog.Logger) *Adapter {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Adapter{kv: kv, key: key, log: log}
}

func (a *Adapter) Key() string { return a.key }

// Path is the file backing the adapter's store, if any.
func (a *Adapter) Path() string { return a.kv.Path() }

// Load returns the stored labels. An absent value, a read error or a value that
// does not decode as a string array all yield an empty sequence; the last two are
// logged.
func (a *Adapter) Load(ctx context.Context) []string {
	labels, err := a.LoadStrict(ctx)
	if err != nil {
		a.log.Warn("storage load failed; treating as empty", "key", a.key, "err", err)
		return []string{}
	}
	return labels
}

// LoadStrict is Load without the recovery policy.
func (a *Adapter) LoadStrict(ctx context.Context) ([]string, error) {
	raw, ok, err := a.kv.Get(ctx, a.key)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", a.key, err)
	}
	if !ok {
		return []string{}, nil
	}
	var labels []string
	if err := json.Unmarshal(raw, &labels); err != nil {
		return nil, fmt.Errorf("decode %q: %w", a.key, err)
	}
	if labels == nil {
		labels = []string{}
	}
	return labels, nil
}

// Save overwrites the stored value with labels.
func (a *Adapter) Save(ctx context.Context, labels []string) error {
	if labels == nil {
		labels = []string{}
	}
	b, err := json.Marshal(labels)
	if err != nil {
		return fmt.Errorf("encode %q: %w", a.key, err)
	}
	if err := a.kv.Set(ctx, a.key, b); err != nil {
		return fmt.Errorf("write %q: %w", a.key, err)
	}
	a.log.Debug("storage saved", "key", a.key, "count", len(labels))
	return nil
}

// Clear removes the stored value entirely.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.kv.Delete(ctx, a.key); err != nil {
		return fmt.Errorf("delete %q: %w", a.key, err)
	}
	a.log.Debug("storage cleared", "key", a.key)
	return nil
}

func (a *Adapter) Close() error {
	if a == nil || a.kv == nil {
		return errors.New("nil adapter")
	}
	return a.kv.Close()
}
