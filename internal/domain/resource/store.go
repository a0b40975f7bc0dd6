// Package resource provides the reference-counted resource store shared by
// the host loop and every scene.
//
// A key is loaded once per LoadRequested call and must be unloaded the same
// number of times before its value is physically released. Scenes use this to
// hand objects across a scene teardown without the outgoing scene's unload
// destroying what the incoming scene still needs.
package resource

import (
	"errors"
	"fmt"
	"io"
	"log"
)

var (
	// ErrNotReady is returned by Get for a key with no entry or whose value
	// has not arrived yet.
	ErrNotReady = errors.New("resource not ready")
	// ErrLoadFailed is returned by Get for a key whose backing fetch failed.
	ErrLoadFailed = errors.New("resource load failed")
	// ErrTypeMismatch is returned by Lookup when the stored value has a
	// different type than requested.
	ErrTypeMismatch = errors.New("resource type mismatch")
)

// Status describes the readiness of a key.
type Status int

const (
	StatusAbsent Status = iota
	StatusPending
	StatusReady
	StatusFailed
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "Absent"
	case StatusPending:
		return "Pending"
	case StatusReady:
		return "Ready"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

type entry struct {
	value any
	ready bool
	err   error
	refs  int
}

// Store maps resource keys to loaded values and load-request counts.
// It is not safe for concurrent use; the frame loop owns it.
type Store struct {
	entries map[string]*entry
	logger  *log.Logger
}

// NewStore creates an empty store that logs to log.Default().
func NewStore() *Store {
	return NewStoreWithLogger(log.Default())
}

// NewStoreWithLogger creates an empty store that logs warnings to logger.
func NewStoreWithLogger(logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		entries: make(map[string]*entry),
		logger:  logger,
	}
}

// LoadRequested records one more load request for key, creating a pending
// entry on the first request. It returns the new reference count.
func (s *Store) LoadRequested(key string) int {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	e.refs++
	return e.refs
}

// Set stores the ready value for key. Setting a key that was never
// requested creates the entry with one reference.
func (s *Store) Set(key string, value any) {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{refs: 1}
		s.entries[key] = e
	}
	e.value = value
	e.ready = true
	e.err = nil
}

// Fail marks the backing fetch for key as failed. The entry keeps its
// reference count so the matching Unload calls still balance.
func (s *Store) Fail(key string, err error) {
	e, ok := s.entries[key]
	if !ok {
		return
	}
	e.value = nil
	e.ready = false
	e.err = err
	s.logger.Printf("resource %q failed to load: %v", key, err)
}

// Get returns the ready value for key.
func (s *Store) Get(key string) (any, error) {
	e, ok := s.entries[key]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", key, ErrNotReady)
	}
	if e.err != nil {
		return nil, fmt.Errorf("get %q: %w: %w", key, ErrLoadFailed, e.err)
	}
	if !e.ready {
		return nil, fmt.Errorf("get %q: %w", key, ErrNotReady)
	}
	return e.value, nil
}

// Lookup returns the ready value for key as a T.
func Lookup[T any](s *Store, key string) (T, error) {
	var zero T
	v, err := s.Get(key)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("get %q: %w: have %T, want %T", key, ErrTypeMismatch, v, zero)
	}
	return t, nil
}

// Has reports whether key has an entry, ready or not.
func (s *Store) Has(key string) bool {
	_, ok := s.entries[key]
	return ok
}

// IsReady reports whether Get(key) would succeed.
func (s *Store) IsReady(key string) bool {
	e, ok := s.entries[key]
	return ok && e.ready && e.err == nil
}

// Status reports the readiness of key.
func (s *Store) Status(key string) Status {
	e, ok := s.entries[key]
	switch {
	case !ok:
		return StatusAbsent
	case e.err != nil:
		return StatusFailed
	case e.ready:
		return StatusReady
	default:
		return StatusPending
	}
}

// RefCount returns the outstanding load requests for key (0 if absent).
func (s *Store) RefCount(key string) int {
	if e, ok := s.entries[key]; ok {
		return e.refs
	}
	return 0
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Unload drops one reference to key. When the last reference goes the entry
// is removed and a value implementing io.Closer is closed. It returns true
// only when the value was physically released.
//
// Unloading an absent key is a warning, not an error: adjacent scenes may
// release in either order around a transition.
func (s *Store) Unload(key string) bool {
	e, ok := s.entries[key]
	if !ok || e.refs <= 0 {
		s.logger.Printf("warning: unload of %q with no outstanding load request", key)
		return false
	}
	e.refs--
	if e.refs > 0 {
		return false
	}
	delete(s.entries, key)
	if c, ok := e.value.(io.Closer); ok {
		if err := c.Close(); err != nil {
			s.logger.Printf("resource %q: close failed: %v", key, err)
		}
	}
	return true
}
