// Package watch reports changes to skeleton and atlas files so the viewer
// can reload them.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-spine/internal/logger"
)

// Event is a debounced batch of changes.
type Event struct {
	// Paths lists the changed files, cleaned, in first-seen order.
	Paths []string
}

// Watcher watches a fixed set of files. It watches their parent directories
// so that editors which replace files on save are still seen.
type Watcher struct {
	fs       *fsnotify.Watcher
	files    map[string]struct{}
	debounce time.Duration
	events   chan Event
	log      *zap.Logger

	closeOnce sync.Once
}

// New starts watching paths. Events are coalesced for debounce after the
// last change.
func New(debounce time.Duration, paths ...string) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("watch: no paths")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fs:       fsw,
		files:    make(map[string]struct{}, len(paths)),
		debounce: debounce,
		events:   make(chan Event, 1),
		log:      logger.Named("watch"),
	}
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	return w, nil
}

// Events returns the channel of debounced changes. It is closed when Run
// returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Run delivers events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.events)
	defer w.Close()

	var (
		pending []string
		seen    = make(map[string]struct{})
		timer   *time.Timer
		fire    <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case e, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Clean(e.Name)
			if _, ok := w.files[name]; !ok {
				continue
			}
			w.log.Debug("file changed", zap.String("path", name), zap.Stringer("op", e.Op))
			if _, dup := seen[name]; !dup {
				seen[name] = struct{}{}
				pending = append(pending, name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			ev := Event{Paths: pending}
			pending = nil
			clear(seen)
			select {
			case w.events <- ev:
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// Close stops the underlying watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() { err = w.fs.Close() })
	return err
}
