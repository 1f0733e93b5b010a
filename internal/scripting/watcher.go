package scripting

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports changes to .lua files under a script directory.
// Notifications are coalesced: many writes between two polls count once.
type Watcher struct {
	fs      *fsnotify.Watcher
	changed chan string
	closeCh chan struct{}
	wg      sync.WaitGroup
	log     *zap.Logger
}

// NewWatcher watches dir and all of its subdirectories.
func NewWatcher(dir string, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:      fsw,
		changed: make(chan string, 1),
		closeCh: make(chan struct{}),
		log:     log.Named("ScriptWatcher"),
	}

	if err := w.watchTree(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// watchTree adds dir and every directory below it.
func (w *Watcher) watchTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fs.Add(p)
		}
		return nil
	})
}

func hasScripts(dir string) bool {
	found := false
	_ = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() && filepath.Ext(p) == ".lua" {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

func (w *Watcher) notify(name string) {
	select {
	case w.changed <- name:
	default:
	}
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					// New directories are not watched automatically.
					if err := w.watchTree(ev.Name); err != nil {
						w.log.Warn("watch new directory", zap.String("dir", ev.Name), zap.Error(err))
					}
					if hasScripts(ev.Name) {
						w.notify(ev.Name)
					}
					continue
				}
			}
			if filepath.Ext(ev.Name) != ".lua" {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.notify(ev.Name)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-w.closeCh:
			return
		}
	}
}

// Changed returns the name of a changed script, if any change happened since
// the previous call. It never blocks.
func (w *Watcher) Changed() (string, bool) {
	select {
	case name := <-w.changed:
		return name, true
	default:
		return "", false
	}
}

// Shutdown stops watching.
func (w *Watcher) Shutdown() {
	close(w.closeCh)
	if err := w.fs.Close(); err != nil {
		w.log.Warn("close watcher", zap.Error(err))
	}
	w.wg.Wait()
	w.log.Info("ShutDown complete")
}
