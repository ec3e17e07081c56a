// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenefile

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a scene file. It watches the directory of
// the file, since editors often save by replacing the file. Reloading
// is left to the frame loop, which receives from [Watcher.Changed]:
//
//	select {
//	case path := <-w.Changed:
//		errors.Log(scenefile.Change(sc, path))
//	default:
//	}
type Watcher struct {

	// Path is the watched file.
	Path string

	// Changed receives Path when the file has been written. Changes
	// that arrive before the previous one was received are merged.
	Changed chan string

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching the given scene file.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{Path: path, Changed: make(chan string, 1), watcher: fw, done: make(chan struct{})}
	go w.watch(abs)
	return w, nil
}

func (w *Watcher) watch(abs string) {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case w.Changed <- w.Path:
				slog.Debug("scenefile.Watcher: changed", "path", w.Path)
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("scenefile.Watcher", "path", w.Path, "err", err)
		}
	}
}

// Close stops watching. Changed is not closed.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
