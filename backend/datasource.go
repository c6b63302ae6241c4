package backend

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gioui.org/x/explorer"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// Session is a snapshot of the loaded data. Version increases with every
// snapshot, so consumers can tell a reload from a repeated read.
type Session struct {
	Path    string
	Data    *Dataset
	Version int
	Err     error
}

type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

// DefaultReloadInterval is the shortest time between two reloads caused by
// file changes.
const DefaultReloadInterval = 250 * time.Millisecond

// Datasource loads datasets from files, reloads them when the files change
// and fans the resulting sessions out to subscribers.
type Datasource struct {
	appCtx  context.Context
	watcher *fsnotify.Watcher
	limiter *rate.Limiter
	sheet   string

	session RWBox[Session]

	subsLock sync.Mutex
	subs     map[chan Session]struct{}

	watchLock  sync.Mutex
	watchedDir string
}

// NewDatasource starts watching for file changes until appCtx is done.
// Reloads are at least reloadInterval apart, and sheet selects the
// worksheet read from workbooks.
func NewDatasource(appCtx context.Context, reloadInterval time.Duration, sheet string) (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	if reloadInterval <= 0 {
		reloadInterval = DefaultReloadInterval
	}
	d := &Datasource{
		appCtx:  appCtx,
		watcher: watcher,
		limiter: rate.NewLimiter(rate.Every(reloadInterval), 1),
		sheet:   sheet,
		subs:    make(map[chan Session]struct{}),
	}
	go d.run()
	return d, nil
}

// Current returns the latest session.
func (d *Datasource) Current() Session {
	var s Session
	d.session.Read(func(current *Session) {
		s = *current
	})
	return s
}

// Snapshots emits the current session and then every new one until ctx is
// done. A slow reader only sees the latest session.
func (d *Datasource) Snapshots(ctx context.Context) <-chan Session {
	out := make(chan Session, 1)
	d.subsLock.Lock()
	d.subs[out] = struct{}{}
	out <- d.Current()
	d.subsLock.Unlock()
	go func() {
		<-ctx.Done()
		d.subsLock.Lock()
		defer d.subsLock.Unlock()
		delete(d.subs, out)
		close(out)
	}()
	return out
}

// Publish replaces the current data, for data that does not come from a
// file.
func (d *Datasource) Publish(data *Dataset) {
	d.publish(func(s *Session) {
		s.Path = ""
		s.Data = data
		s.Err = nil
	})
}

// Load reads the file at path and watches it for changes.
func (d *Datasource) Load(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed resolving %q: %w", path, err)
	}
	if err := d.watch(abs); err != nil {
		log.Printf("failed watching %q: %v", abs, err)
	}
	return d.load(abs)
}

// Reload reads the current file again. It does nothing when the data did
// not come from a file.
func (d *Datasource) Reload() error {
	path := d.Current().Path
	if path == "" {
		return nil
	}
	return d.load(path)
}

// LoadFromFile asks the user for a CSV or XLSX file and loads it. Files
// chosen from a platform that exposes their path are watched.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) error {
	file, err := expl.ChooseFile("csv", "xlsx")
	if err != nil {
		return fmt.Errorf("failed choosing file: %w", err)
	}
	if named, ok := file.(interface{ Name() string }); ok {
		file.Close()
		return d.Load(named.Name())
	}
	defer file.Close()
	data, err := Parse(file, d.sheet)
	if err != nil {
		return err
	}
	d.Publish(data)
	return nil
}

// Close stops watching files.
func (d *Datasource) Close() error {
	return d.watcher.Close()
}

// Parse reads a workbook or, failing the zip signature check, a CSV file.
func Parse(r io.Reader, sheet string) (*Dataset, error) {
	br := bufio.NewReader(r)
	if magic, err := br.Peek(2); err == nil && string(magic) == "PK" {
		return ParseXLSX(br, sheet)
	}
	return ParseCSV(br)
}

func (d *Datasource) load(path string) error {
	data, err := parseFile(path, d.sheet)
	d.publish(func(s *Session) {
		s.Path = path
		s.Err = err
		if err == nil {
			s.Data = data
		}
	})
	return err
}

func parseFile(path, sheet string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed opening data file: %w", err)
	}
	defer f.Close()
	return Parse(f, sheet)
}

// publish updates the session and sends it to every subscriber. subsLock is
// held throughout so subscribers receive versions in order.
func (d *Datasource) publish(update func(*Session)) {
	d.subsLock.Lock()
	defer d.subsLock.Unlock()
	var next Session
	d.session.Write(func(s *Session) {
		update(s)
		s.Version++
		next = *s
	})
	for ch := range d.subs {
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
}

// watch follows the directory holding path, so files replaced by a rename
// keep being reloaded.
func (d *Datasource) watch(path string) error {
	dir := filepath.Dir(path)
	d.watchLock.Lock()
	defer d.watchLock.Unlock()
	if dir == d.watchedDir {
		return nil
	}
	if d.watchedDir != "" {
		if err := d.watcher.Remove(d.watchedDir); err != nil {
			log.Printf("failed to stop watching %q: %v", d.watchedDir, err)
		}
		d.watchedDir = ""
	}
	if err := d.watcher.Add(dir); err != nil {
		return err
	}
	d.watchedDir = dir
	return nil
}

func (d *Datasource) run() {
	for {
		select {
		case <-d.appCtx.Done():
			return
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("file watcher error: %v", err)
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if filepath.Clean(ev.Name) != d.Current().Path {
				continue
			}
			if err := d.limiter.Wait(d.appCtx); err != nil {
				return
			}
			d.drainEvents()
			if err := d.Reload(); err != nil {
				log.Printf("failed reloading %q: %v", ev.Name, err)
			}
		}
	}
}

// drainEvents drops the events queued while waiting for the limiter; the
// reload that follows covers them.
func (d *Datasource) drainEvents() {
	for {
		select {
		case <-d.watcher.Events:
		default:
			return
		}
	}
}
