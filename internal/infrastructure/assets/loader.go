// Package assets fetches files into the resource store.
//
// A Loader reads and decodes files off the frame loop and hands the results
// back through Poll, which runs on the frame loop. The store is only ever
// touched from the frame loop goroutine.
package assets

import (
	"fmt"
	"io/fs"

	"github.com/younwookim/scenecam/internal/domain/resource"
)

// Decoder turns the raw bytes of path into the value kept in the store.
type Decoder func(path string, data []byte) (any, error)

// Raw keeps the file bytes as they are.
func Raw(_ string, data []byte) (any, error) {
	return data, nil
}

type result struct {
	path  string
	value any
	err   error
}

// Loader loads files from an fs.FS into a resource.Store.
type Loader struct {
	fsys    fs.FS
	store   *resource.Store
	decode  Decoder
	sync    bool
	results chan result
	pending map[string]int
}

// Option configures a Loader
type Option func(*Loader)

// Synchronous makes Load fetch and decode before returning.
func Synchronous() Option {
	return func(l *Loader) { l.sync = true }
}

// NewLoader creates a loader that decodes files with decode.
func NewLoader(fsys fs.FS, store *resource.Store, decode Decoder, opts ...Option) *Loader {
	if decode == nil {
		decode = Raw
	}
	l := &Loader{
		fsys:    fsys,
		store:   store,
		decode:  decode,
		results: make(chan result, 16),
		pending: make(map[string]int),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load requests path. The first outstanding request starts the fetch; later
// requests only add a reference.
func (l *Loader) Load(path string) {
	if l.store.LoadRequested(path) > 1 {
		return
	}
	if l.sync {
		l.apply(l.fetch(path))
		return
	}
	// An in-flight fetch for a key that was unloaded and requested again is
	// still applied; count it so Pending stays truthful.
	l.pending[path]++
	go func() {
		l.results <- l.fetch(path)
	}()
}

func (l *Loader) fetch(path string) result {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return result{path: path, err: fmt.Errorf("failed to read %s: %w", path, err)}
	}
	v, err := l.decode(path, data)
	if err != nil {
		return result{path: path, err: fmt.Errorf("failed to decode %s: %w", path, err)}
	}
	return result{path: path, value: v}
}

// Poll applies every fetch that has completed since the last call and
// returns how many were applied. It never blocks.
func (l *Loader) Poll() int {
	n := 0
	for {
		select {
		case r := <-l.results:
			l.finish(r)
			n++
		default:
			return n
		}
	}
}

// Wait blocks until every in-flight fetch has been applied.
func (l *Loader) Wait() {
	for l.Pending() > 0 {
		l.finish(<-l.results)
	}
}

func (l *Loader) finish(r result) {
	if l.pending[r.path]--; l.pending[r.path] <= 0 {
		delete(l.pending, r.path)
	}
	l.apply(r)
}

func (l *Loader) apply(r result) {
	// The key may have been unloaded while the fetch was in flight.
	if !l.store.Has(r.path) {
		return
	}
	if r.err != nil {
		l.store.Fail(r.path, r.err)
		return
	}
	l.store.Set(r.path, r.value)
}

// Pending returns the number of fetches not yet applied.
func (l *Loader) Pending() int {
	n := 0
	for _, c := range l.pending {
		n += c
	}
	return n
}

// Status reports the readiness of path in the store.
func (l *Loader) Status(path string) resource.Status {
	return l.store.Status(path)
}

// Get returns the decoded value of path.
func (l *Loader) Get(path string) (any, error) {
	return l.store.Get(path)
}

// Unload drops one reference to path.
func (l *Loader) Unload(path string) {
	l.store.Unload(path)
}
