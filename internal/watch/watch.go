// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package watch calls a function each time a file changes.
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
)

// DefaultDebounce is the delay used to group the events of a single save.
const DefaultDebounce = 200 * time.Millisecond

// ErrRunning is returned when starting a watcher twice.
var ErrRunning = errors.New("watcher already running")

// Watcher watches a single file. Editors often replace a file instead of
// writing it, so we watch the parent directory and filter on the file name.
type Watcher struct {
	mu       sync.Mutex
	file     string
	debounce time.Duration
	onChange func(context.Context)
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// New returns a watcher calling onChange after each modification of file.
// Calls to onChange are serialized, on the goroutine of the watcher.
func New(file string, debounce time.Duration, onChange func(context.Context), logger *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		file:     abs,
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}, nil
}

// Start begins watching. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return ErrRunning
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.file, err)
	}
	if err := fw.Add(filepath.Dir(w.file)); err != nil {
		fw.Close()
		return fmt.Errorf("watch %s: %w", w.file, err)
	}
	w.watcher = fw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true
	go w.run(ctx)
	w.logger.Info("watching file", zap.String("file", w.file))
	return nil
}

// Stop ends the watch and waits for the event loop to return, including a
// pending call to onChange.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	return w.watcher.Close()
}

// Done is closed when the event loop returns, after Stop or when the context
// of Start is canceled.
func (w *Watcher) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doneCh
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("file event", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		case <-timer.C:
			w.onChange(ctx)
		}
	}
}
