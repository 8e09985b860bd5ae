package ml

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the model artifact whenever the file at path is rewritten
// and hands the new model to apply. A reload that fails keeps the current
// model. Watch returns after starting its goroutine; ctx stops it.
func Watch(ctx context.Context, path string, logger *zap.Logger, apply func(Classifier)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors and atomic writers replace the file,
	// which would silently detach a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				model, err := LoadModel(path)
				if err != nil {
					logger.Warn("model reload failed, keeping current model",
						zap.String("path", path), zap.Error(err))
					continue
				}
				apply(model)
				logger.Info("model artifact reloaded", zap.String("path", path))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("model watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
