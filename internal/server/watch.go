package server

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/karaleary/civimap/internal/dictionary"
)

const reloadDebounce = 250 * time.Millisecond

// Watch reloads the dictionary whenever path changes. Editors often
// replace files via rename, so the parent directory is watched and
// events are filtered to the target name. Events are debounced; a
// reload that fails to parse keeps the current dictionary. Watch blocks
// until the watcher breaks; callers run it in a goroutine.
func (s *Server) Watch(path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("server: watch: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("server: watch: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("server: watch %s: %w", filepath.Dir(abs), err)
	}

	var timer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() { s.reloadFrom(abs) })
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Printf("watch error: %v", err)
		}
	}
}

func (s *Server) reloadFrom(path string) {
	dict, warnings, err := dictionary.LoadFile(path)
	if err != nil {
		s.logger.Printf("dictionary reload failed, keeping current: %v", err)
		return
	}
	for _, warning := range warnings {
		s.logger.Printf("dictionary warning: %s", warning)
	}
	s.Reload(dict)
}
