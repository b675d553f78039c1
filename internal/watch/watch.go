// Package watch notices when another process rewrites the storage file so the
// TUI can reload. It uses fsnotify on the containing directory and falls back to
// polling when fsnotify is unavailable.
package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	DefaultDebounce     = 150 * time.Millisecond
	DefaultPollInterval = 2 * time.Second
)

var ErrAlreadyStarted = errors.New("watcher already started")

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option     { return func(w *Watcher) { w.debounce = d } }
func WithPollInterval(d time.Duration) Option { return func(w *Watcher) { w.pollInterval = d } }
func WithForcePoll(force bool) Option         { return func(w *Watcher) { w.forcePoll = force } }
func WithLogger(l *slog.Logger) Option        { return func(w *Watcher) { w.log = l } }

// Watcher signals on Changed when the watched file, or a sibling sharing its
// name as a prefix (SQLite -wal/-shm files), is written.
type Watcher struct {
	path         string
	debounce     time.Duration
	pollInterval time.Duration
	forcePoll    bool
	log          *slog.Logger

	mu        sync.Mutex
	started   bool
	polling   bool
	cancel    context.CancelFunc
	fsw       *fsnotify.Watcher
	timer     *time.Timer
	changeCh  chan struct{}
	lastStamp string
}

func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:         abs,
		debounce:     DefaultDebounce,
		pollInterval: DefaultPollInterval,
		changeCh:     make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(w)
	}
	if w.log == nil {
		w.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return w, nil
}

func (w *Watcher) Path() string { return w.path }

// Changed receives once per debounced burst of writes.
func (w *Watcher) Changed() <-chan struct{} { return w.changeCh }

func (w *Watcher) IsPolling() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.polling
}

func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return ErrAlreadyStarted
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.lastStamp = w.stamp()

	if !w.forcePoll {
		fsw, err := fsnotify.NewWatcher()
		if err == nil {
			if err := fsw.Add(filepath.Dir(w.path)); err == nil {
				w.fsw = fsw
				go w.watchEvents(ctx, fsw)
			} else {
				_ = fsw.Close()
				w.log.Warn("fsnotify add failed; polling", "dir", filepath.Dir(w.path), "err", err)
			}
		} else {
			w.log.Warn("fsnotify unavailable; polling", "err", err)
		}
	}
	if w.fsw == nil {
		w.polling = true
		go w.watchPolling(ctx)
	}
	w.started = true
	return nil
}

// Stop ends watching. Changed is left open.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	w.cancel()
	if w.fsw != nil {
		_ = w.fsw.Close()
		w.fsw = nil
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.started = false
}

func (w *Watcher) relevant(name string) bool {
	return strings.HasPrefix(filepath.Base(name), filepath.Base(w.path))
}

func (w *Watcher) watchEvents(ctx context.Context, fsw *fsnotify.Watcher) {
	events, errs := fsw.Events, fsw.Errors
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !w.relevant(ev.Name) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.trigger()
			}
		case err, ok := <-errs:
			if !ok {
				return
			}
			w.log.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) watchPolling(ctx context.Context) {
	t := time.NewTicker(w.pollInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s := w.stamp()
			w.mu.Lock()
			changed := s != w.lastStamp
			w.lastStamp = s
			w.mu.Unlock()
			if changed {
				w.trigger()
			}
		}
	}
}

// stamp summarizes mtime and size of the file and its -wal sibling.
func (w *Watcher) stamp() string {
	var b strings.Builder
	for _, p := range []string{w.path, w.path + "-wal"} {
		if st, err := os.Stat(p); err == nil {
			b.WriteString(st.ModTime().String())
			b.WriteString(":")
			b.WriteString(strconv.FormatInt(st.Size(), 10))
		}
		b.WriteString("|")
	}
	return b.String()
}

func (w *Watcher) trigger() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.notify)
}

func (w *Watcher) notify() {
	select {
	case w.changeCh <- struct{}{}:
	default:
	}
}
