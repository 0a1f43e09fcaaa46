package preset

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/cwbudde/lfocool/plugin"
)

// Watcher re-applies a preset file to a processor whenever it changes.
type Watcher struct {
	path   string
	params *plugin.Params
	logger *log.Logger

	// OnApply, if set, is called from the watcher goroutine after each
	// successful reload.
	OnApply func(Preset)
}

// NewWatcher returns a watcher for path. A nil logger uses log.Default.
func NewWatcher(path string, params *plugin.Params, logger *log.Logger) *Watcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{
		path:   filepath.Clean(path),
		params: params,
		logger: logger,
	}
}

// Run watches the preset until ctx is cancelled. The parent directory is
// watched so that editors replacing the file by rename are followed.
// Malformed presets are logged and skipped.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("preset: watch: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("preset: watch %s: %w", w.path, err)
	}
	w.logger.Printf("watching %s", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return errors.New("preset: watcher closed")
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-fw.Errors:
			if !ok {
				return errors.New("preset: watcher closed")
			}
			w.logger.Printf("watch error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	p, err := Load(w.path)
	if err != nil {
		// Editors often truncate before writing; the next event retries.
		w.logger.Printf("reload %s: %v", w.path, err)
		return
	}
	p.Apply(w.params)
	w.logger.Printf("applied %s: frequency %.2f Hz, depth %.2f dB", w.path, p.Frequency, p.GainModDB)
	if w.OnApply != nil {
		w.OnApply(p)
	}
}
