package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/xlgames-inc/XLE-sub005/pkg/logging"
)

// ChangeType represents the type of file change detected
type ChangeType int

const (
	ChangeTypeDescription ChangeType = iota
	ChangeTypeConfig
)

func (t ChangeType) String() string {
	switch t {
	case ChangeTypeDescription:
		return "description"
	case ChangeTypeConfig:
		return "config"
	default:
		return fmt.Sprintf("ChangeType(%d)", int(t))
	}
}

// ChangeEvent represents a batch of file system changes
type ChangeEvent struct {
	Type      ChangeType
	Paths     []string
	Timestamp time.Time
}

// FileWatcher watches a graph description, and optionally its config
// file, for changes. It watches the containing directories so that saves
// which rename a temp file over the original are seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	files    map[string]ChangeType
	events   chan ChangeEvent
	stopOnce sync.Once
}

// NewFileWatcher creates a watcher for description. Extra files are
// reported as config changes.
func NewFileWatcher(description string, config ...string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher: watcher,
		files:   make(map[string]ChangeType),
		events:  make(chan ChangeEvent, 100),
	}
	if err := fw.track(description, ChangeTypeDescription); err != nil {
		watcher.Close()
		return nil, err
	}
	for _, path := range config {
		if err := fw.track(path, ChangeTypeConfig); err != nil {
			watcher.Close()
			return nil, err
		}
	}
	return fw, nil
}

func (fw *FileWatcher) track(path string, t ChangeType) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	fw.files[abs] = t
	return nil
}

// Start begins watching for file changes
func (fw *FileWatcher) Start(ctx context.Context) error {
	dirs := make(map[string]bool)
	for path := range fw.files {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	logging.Info("started watching", "files", len(fw.files), "directories", len(dirs))

	go fw.processEvents(ctx)
	return nil
}

// processEvents forwards writes to tracked files until ctx is done.
func (fw *FileWatcher) processEvents(ctx context.Context) {
	defer close(fw.events)
	for {
		select {
		case <-ctx.Done():
			fw.Stop()
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			t, tracked := fw.files[filepath.Clean(event.Name)]
			if !tracked {
				continue
			}
			logging.Trace("file changed", "path", event.Name, "op", event.Op.String())
			select {
			case fw.events <- ChangeEvent{Type: t, Paths: []string{event.Name}, Timestamp: time.Now()}:
			case <-ctx.Done():
				fw.Stop()
				return
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("watcher error", "error", err)
		}
	}
}

// Events returns the channel of change events
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

// Stop stops the file watcher. It is safe to call more than once.
func (fw *FileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		err = fw.watcher.Close()
	})
	return err
}

// Run watches until ctx is done, calling fn once per debounced batch.
// fn runs on a single goroutine, so batches never overlap.
func Run(ctx context.Context, fw *FileWatcher, quietPeriod, maxWait time.Duration, fn func(ChangeAnalysis)) error {
	if err := fw.Start(ctx); err != nil {
		return err
	}
	d := NewDebouncer(fw.Events(), quietPeriod, maxWait)
	d.Start(ctx)
	for event := range d.Output() {
		fn(AnalyzeChanges(event))
	}
	return nil
}
