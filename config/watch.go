package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const kindReloadDebounce = 100 * time.Millisecond

// KindWatcher reloads a kind table file whenever it changes on disk and
// then stays unchanged for a short quiet period.
// Reloaded tables arrive on Tables; load failures arrive on Errors. Worlds
// pick up a new table on their next Init.
type KindWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	Tables  chan KindTable
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	done    sync.WaitGroup
}

// WatchKinds starts watching the kind file at path. The parent directory is
// watched so editors that replace the file on save are still seen.
func WatchKinds(path string) (*KindWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	kw := &KindWatcher{
		watcher: w,
		path:    filepath.Clean(path),
		Tables:  make(chan KindTable, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	kw.done.Add(1)
	go kw.run()
	return kw, nil
}

// Close stops the watcher. It is safe to call more than once.
func (kw *KindWatcher) Close() error {
	var err error
	kw.once.Do(func() {
		close(kw.closeCh)
		err = kw.watcher.Close()
		kw.done.Wait()
		close(kw.Tables)
		close(kw.Errors)
	})
	return err
}

func (kw *KindWatcher) run() {
	defer kw.done.Done()

	// Reload only after the file has been quiet for kindReloadDebounce.
	var timer *time.Timer
	var settled <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-kw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != kw.path {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(kindReloadDebounce)
			} else {
				timer.Reset(kindReloadDebounce)
			}
			settled = timer.C
		case <-settled:
			settled = nil
			kw.reload()
		case err, ok := <-kw.watcher.Errors:
			if !ok {
				return
			}
			kw.send(nil, err)
		case <-kw.closeCh:
			return
		}
	}
}

func (kw *KindWatcher) reload() {
	kinds, err := LoadKindsFile(kw.path)
	kw.send(kinds, err)
}

func (kw *KindWatcher) send(kinds KindTable, err error) {
	if err != nil {
		select {
		case kw.Errors <- err:
		case <-kw.closeCh:
		}
		return
	}
	select {
	case kw.Tables <- kinds:
	case <-kw.closeCh:
	}
}
