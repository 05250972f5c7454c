package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/formsource/prefill/pkg/logging"
)

// ChangeEvent signals that the graph document changed on disk
type ChangeEvent struct {
	Path      string
	Timestamp time.Time
}

// DocumentWatcher watches a form graph document for changes. The parent
// directory is watched rather than the file itself because many editors
// replace files on save, which would drop an inode-level watch.
type DocumentWatcher struct {
	watcher *fsnotify.Watcher
	path    string // Absolute path of the watched document
	events  chan ChangeEvent
}

// NewDocumentWatcher creates a watcher for the given graph document
func NewDocumentWatcher(path string) (*DocumentWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve document path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &DocumentWatcher{
		watcher: fw,
		path:    abs,
		events:  make(chan ChangeEvent, 100),
	}, nil
}

// Start begins watching for document changes
func (dw *DocumentWatcher) Start(ctx context.Context) error {
	if err := dw.watcher.Add(filepath.Dir(dw.path)); err != nil {
		return fmt.Errorf("failed to watch document directory: %w", err)
	}

	logging.Info("started watching graph document", "path", dw.path)

	go dw.processEvents(ctx)
	return nil
}

// Events returns the channel of detected document changes
func (dw *DocumentWatcher) Events() <-chan ChangeEvent {
	return dw.events
}

func (dw *DocumentWatcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			dw.watcher.Close()
			close(dw.events)
			return

		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != dw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			logging.Debug("graph document changed", "op", event.Op.String())
			dw.events <- ChangeEvent{Path: dw.path, Timestamp: time.Now()}

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("watcher error", "error", err)
		}
	}
}
