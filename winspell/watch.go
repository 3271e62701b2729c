package winspell

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// WatchDict loads the dictionary at path and calls onChange with it, then
// again every time the file is written or replaced, until ctx is done.
// Reload errors are logged and the previous dictionary stays in effect.
func WatchDict(ctx context.Context, path string, onChange func(*Dict), logger *log.Logger) error {
	d, err := LoadDict(path)
	if err != nil {
		return err
	}
	onChange(d)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors often replace the file by renaming.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return err
	}

	go func() {
		defer w.Close()
		target := filepath.Clean(path)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				d, err := LoadDict(path)
				if err != nil {
					logger.Warn("dictionary reload failed", "path", path, "err", err)
					continue
				}
				logger.Info("dictionary reloaded", "path", path, "words", d.Len())
				onChange(d)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("dictionary watch error", "err", err)
			}
		}
	}()
	return nil
}
