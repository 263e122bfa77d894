package convert

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// WatchOperation indicates the type of source file change.
type WatchOperation string

// Watch operations.
const (
	WatchOpCreate WatchOperation = "create"
	WatchOpModify WatchOperation = "modify"
	WatchOpDelete WatchOperation = "delete"
)

// WatchEvent is a settled change to one source title file.
type WatchEvent struct {
	// Path is relative to the source directory and slash separated.
	Path      string
	Operation WatchOperation
	AbsPath   string
}

// Watcher reports changes to source files under dir that match pattern.
// Filesystem notifications are collected until debounce passes without a
// new one, then each touched file is compared with its last known content
// hash. Files whose bytes did not change produce no event.
type Watcher struct {
	dir      string
	pattern  string
	debounce time.Duration
	fsw      *fsnotify.Watcher
	logger   *slog.Logger

	mu     sync.Mutex
	hashes map[string]string

	events chan WatchEvent
}

// NewWatcher creates a watcher for source files under dir matching pattern.
func NewWatcher(dir, pattern string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.New("invalid source pattern: " + pattern)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		dir:      dir,
		pattern:  pattern,
		debounce: debounce,
		fsw:      fsw,
		logger:   logger,
		hashes:   make(map[string]string),
		events:   make(chan WatchEvent),
	}, nil
}

// Events returns the change channel. It is closed when the watcher stops
// or ctx passed to Start is done.
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Start watches dir and its non-hidden subdirectories.
func (w *Watcher) Start(ctx context.Context) error {
	err := filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.dir && hidden(path) {
			return filepath.SkipDir
		}
		w.watchDir(path)
		return nil
	})
	if err != nil {
		return err
	}

	go w.run(ctx)

	w.logger.Info("Source watcher started", "dir", w.dir, "pattern", w.pattern, "debounce", w.debounce)
	return nil
}

// Stop closes the underlying notifier, which ends the event loop.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}

// Prime records the current content of each source file so that rewriting
// it with the same bytes is not reported.
func (w *Watcher) Prime(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			w.logger.Warn("Failed to hash source file", "path", path, "error", err)
			continue
		}
		if rel, ok := w.rel(path); ok {
			w.hashes[rel] = contentHash(content)
		}
	}
}

// Hash returns the last known content hash of a source file.
func (w *Watcher) Hash(rel string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	hash, ok := w.hashes[rel]
	return hash, ok
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.events)

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.matches(ev.Name) {
				pending[ev.Name] = struct{}{}
				timer.Reset(w.debounce)
			} else if ev.Has(fsnotify.Create) && !hidden(ev.Name) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.watchDir(ev.Name)
				}
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-timer.C:
			for _, path := range slices.Sorted(maps.Keys(pending)) {
				ev, changed := w.settle(path)
				if !changed {
					continue
				}
				select {
				case w.events <- ev:
				case <-ctx.Done():
					return
				}
			}
			clear(pending)
		}
	}
}

// settle compares path with its last known hash and updates it.
func (w *Watcher) settle(path string) (WatchEvent, bool) {
	rel, _ := w.rel(path)
	ev := WatchEvent{Path: rel, AbsPath: path}
	content, err := os.ReadFile(path)

	w.mu.Lock()
	defer w.mu.Unlock()
	old, known := w.hashes[rel]

	switch {
	case errors.Is(err, fs.ErrNotExist):
		if !known {
			return ev, false
		}
		delete(w.hashes, rel)
		ev.Operation = WatchOpDelete
	case err != nil:
		w.logger.Warn("Failed to read changed source", "path", rel, "error", err)
		return ev, false
	default:
		hash := contentHash(content)
		if known && hash == old {
			return ev, false
		}
		w.hashes[rel] = hash
		ev.Operation = WatchOpCreate
		if known {
			ev.Operation = WatchOpModify
		}
	}
	w.logger.Debug("Source changed", "path", rel, "op", ev.Operation)
	return ev, true
}

func (w *Watcher) watchDir(path string) {
	if err := w.fsw.Add(path); err != nil {
		w.logger.Warn("Failed to watch directory", "path", path, "error", err)
	}
}

func (w *Watcher) rel(path string) (string, bool) {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (w *Watcher) matches(path string) bool {
	rel, ok := w.rel(path)
	if !ok {
		return false
	}
	matched, err := doublestar.Match(w.pattern, rel)
	return err == nil && matched
}

func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Watch converts source files as the watcher reports changes, until ctx is
// cancelled or the watcher stops. Removed sources leave their corpus
// documents in place.
func (c *Converter) Watch(ctx context.Context, w *Watcher) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if ev.Operation == WatchOpDelete {
				c.logger.Warn("Source file removed, corpus document kept", "path", ev.Path)
				continue
			}
			result, err := c.ConvertFile(ctx, ev.AbsPath)
			if err != nil {
				c.logger.Error("Failed to convert changed source", "path", ev.Path, "error", err)
				continue
			}
			if result.Skipped != "" {
				c.logger.Debug("Changed source skipped", "path", ev.Path, "reason", result.Skipped)
			}
		}
	}
}
