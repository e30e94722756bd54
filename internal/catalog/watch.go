package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceDelay = 150 * time.Millisecond

// Update is a reload result: either a fresh catalog or the reason the
// edited file could not be used.
type Update struct {
	Catalog Catalog
	Err     error
}

// Watch reloads path whenever it changes and sends the result on the
// returned channel. The parent directory is watched so editors that
// replace the file on save are still seen. The channel is closed once ctx
// is done.
func Watch(ctx context.Context, path string, logger *zap.Logger) (<-chan Update, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan Update, 1)
	go func() {
		defer close(out)
		defer fsw.Close()

		timer := time.NewTimer(debounceDelay)
		timer.Stop()
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					timer.Reset(debounceDelay)
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("checklist watcher error", zap.Error(err))
			case <-timer.C:
				c, err := Load(abs)
				if err != nil {
					logger.Warn("checklist reload failed", zap.String("path", abs), zap.Error(err))
				} else {
					logger.Info("checklist reloaded", zap.String("path", abs), zap.Int("sections", len(c.Sections)))
				}
				select {
				case out <- Update{Catalog: c, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
