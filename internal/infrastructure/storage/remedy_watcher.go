package storage

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"crop-doctor/internal/domain/entity"
	"crop-doctor/internal/domain/port"
	"crop-doctor/internal/metrics"
)

const reloadDebounce = 500 * time.Millisecond

// RemedyWatcher следит за файлом таблицы и подменяет снимок целиком.
// Резолверы читают снимок без блокировок; битый файл оставляет прежний снимок.
type RemedyWatcher struct {
	path     string
	debounce time.Duration
	onReload func(*entity.RemedyTable, error)

	current atomic.Pointer[entity.RemedyTable]
	reloads atomic.Uint32

	fw        *fsnotify.Watcher
	timerMu   sync.Mutex
	timer     *time.Timer
	done      chan struct{}
	closeOnce sync.Once
}

// NewRemedyWatcher загружает таблицу и начинает следить за файлом.
// onReload может быть nil.
func NewRemedyWatcher(path string, onReload func(*entity.RemedyTable, error)) (*RemedyWatcher, error) {
	return newRemedyWatcher(path, reloadDebounce, onReload)
}

func newRemedyWatcher(path string, debounce time.Duration, onReload func(*entity.RemedyTable, error)) (*RemedyWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve remedy table path: %w", err)
	}

	table, err := LoadRemedyTable(abs)
	if err != nil {
		return nil, fmt.Errorf("load initial remedy table: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	// Следим за каталогом: редакторы часто сохраняют файл через переименование.
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch remedy table: %w", err)
	}

	w := &RemedyWatcher{
		path:     abs,
		debounce: debounce,
		onReload: onReload,
		fw:       fw,
		done:     make(chan struct{}),
	}
	w.current.Store(table)

	go w.watch()

	return w, nil
}

// Current возвращает текущий снимок таблицы.
func (w *RemedyWatcher) Current() *entity.RemedyTable {
	return w.current.Load()
}

// ReloadCount возвращает число попыток перезагрузки.
func (w *RemedyWatcher) ReloadCount() uint32 {
	return w.reloads.Load()
}

// Close останавливает наблюдение.
func (w *RemedyWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fw.Close()

		w.timerMu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.timerMu.Unlock()
	})
	return err
}

func (w *RemedyWatcher) watch() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.schedule()
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slog.Error("Remedy table watcher error", "error", err)
		}
	}
}

func (w *RemedyWatcher) schedule() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *RemedyWatcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	count := w.reloads.Add(1)
	slog.Info("Reloading remedy table", "path", w.path, "count", count)

	table, err := LoadRemedyTable(w.path)
	if err != nil {
		metrics.TableReloaded(false)
		slog.Error("Failed to reload remedy table, keeping previous", "path", w.path, "error", err)
		if w.onReload != nil {
			w.onReload(nil, err)
		}
		return
	}

	w.current.Store(table)
	metrics.TableReloaded(true)
	slog.Info("Remedy table reloaded", "entries", table.Len(), "count", count)
	if w.onReload != nil {
		w.onReload(table, nil)
	}
}

var _ port.RemedySource = (*RemedyWatcher)(nil)
