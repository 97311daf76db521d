package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/blockmark/internal/logging"
)

// FileAdapter reads the initial markup from a file and writes the document
// back to it on every change.
type FileAdapter struct {
	path    string
	useHTML bool
	perm    os.FileMode
	log     *logging.Logger

	mu          sync.Mutex
	lastWritten string
}

// FileOption configures a FileAdapter.
type FileOption func(*FileAdapter)

// WithHTMLOutput writes the rendered HTML instead of the markup. The file
// is then an export target and only supplies initial markup if it already
// exists.
func WithHTMLOutput(useHTML bool) FileOption {
	return func(a *FileAdapter) {
		a.useHTML = useHTML
	}
}

// WithFileLogger sets the adapter's logger.
func WithFileLogger(l *logging.Logger) FileOption {
	return func(a *FileAdapter) {
		if l != nil {
			a.log = l
		}
	}
}

// NewFileAdapter creates an adapter for path.
func NewFileAdapter(path string, opts ...FileOption) *FileAdapter {
	a := &FileAdapter{
		path: path,
		perm: 0o644,
		log:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.WithComponent("file").WithField("path", path)
	return a
}

// Name implements event.Named.
func (a *FileAdapter) Name() string { return "file:" + a.path }

// Path returns the adapted file.
func (a *FileAdapter) Path() string { return a.path }

// OnGetMarkup implements editor.MarkupGetter. A missing file yields empty
// markup.
func (a *FileAdapter) OnGetMarkup() (string, error) {
	data, err := os.ReadFile(a.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", a.path, err)
	}
	a.remember(string(data))
	return string(data), nil
}

// OnMarkupChange implements editor.MarkupChanger.
func (a *FileAdapter) OnMarkupChange(fullMarkup, fullHTML string) error {
	content := fullMarkup
	if a.useHTML {
		content = fullHTML
	}
	if err := a.write(content); err != nil {
		return err
	}
	a.log.Debug("wrote %d bytes", len(content))
	return nil
}

// write replaces the file through a temporary file in the same directory so
// readers never see a partial document.
func (a *FileAdapter) write(content string) error {
	dir := filepath.Dir(a.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(a.path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", a.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", a.path, err)
	}
	if err := tmp.Chmod(a.perm); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", a.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", a.path, err)
	}

	a.remember(content)
	if err := os.Rename(tmp.Name(), a.path); err != nil {
		return fmt.Errorf("write %s: %w", a.path, err)
	}
	return nil
}

func (a *FileAdapter) remember(content string) {
	a.mu.Lock()
	a.lastWritten = content
	a.mu.Unlock()
}

func (a *FileAdapter) isOwn(content string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return content == a.lastWritten
}

// FileWatcher reports external changes to an adapted file.
type FileWatcher struct {
	adapter  *FileAdapter
	watcher  *fsnotify.Watcher
	onChange func(markup string)

	closed   atomic.Bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// Watch starts watching the file. onChange receives the new content of
// every change not made by the adapter itself; it runs on the watcher's
// goroutine, so hosts forward it to their event loop. Watching a file that
// receives HTML output is refused.
func (a *FileAdapter) Watch(onChange func(markup string)) (*FileWatcher, error) {
	if a.useHTML {
		return nil, fmt.Errorf("watch %s: file receives HTML output", a.path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", a.path, err)
	}
	// The directory is watched so replacing the file by rename is seen.
	if err := fsw.Add(filepath.Dir(a.path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", a.path, err)
	}

	w := &FileWatcher{
		adapter:  a,
		watcher:  fsw,
		onChange: onChange,
		closeCh:  make(chan struct{}),
	}
	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Close stops the watcher.
func (w *FileWatcher) Close() error {
	if w.closed.Swap(true) {
		return nil
	}
	close(w.closeCh)
	w.closedWg.Wait()
	return w.watcher.Close()
}

func (w *FileWatcher) processLoop() {
	defer w.closedWg.Done()

	target := filepath.Clean(w.adapter.path)
	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target || !ev.Op.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			w.handleChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.adapter.log.Warn("watch error: %v", err)
		}
	}
}

func (w *FileWatcher) handleChange() {
	data, err := os.ReadFile(w.adapter.path)
	if err != nil {
		w.adapter.log.Warn("reload failed: %v", err)
		return
	}
	content := string(data)
	if w.adapter.isOwn(content) {
		return
	}
	w.adapter.remember(content)
	w.adapter.log.Info("file changed on disk")
	w.onChange(content)
}
