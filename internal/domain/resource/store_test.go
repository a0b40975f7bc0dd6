package resource

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closer struct {
	closed int
	err    error
}

func (c *closer) Close() error {
	c.closed++
	return c.err
}

func newTestStore() (*Store, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewStoreWithLogger(log.New(&buf, "", 0)), &buf
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusAbsent, "Absent"},
		{StatusPending, "Pending"},
		{StatusReady, "Ready"},
		{StatusFailed, "Failed"},
		{Status(42), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestStore_LoadRequestedCounts(t *testing.T) {
	s, _ := newTestStore()

	assert.Equal(t, 1, s.LoadRequested("scene.json"))
	assert.Equal(t, 2, s.LoadRequested("scene.json"))
	assert.True(t, s.Has("scene.json"))
	assert.Equal(t, StatusPending, s.Status("scene.json"))
	assert.Equal(t, 2, s.RefCount("scene.json"))
}

func TestStore_GetBeforeReady(t *testing.T) {
	s, _ := newTestStore()

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotReady)

	s.LoadRequested("pending")
	_, err = s.Get("pending")
	assert.ErrorIs(t, err, ErrNotReady)
	assert.False(t, s.IsReady("pending"))
}

func TestStore_SetGet(t *testing.T) {
	s, _ := newTestStore()
	s.LoadRequested("a")
	s.Set("a", 42)

	v, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.True(t, s.IsReady("a"))
	assert.Equal(t, StatusReady, s.Status("a"))
}

func TestStore_SetWithoutRequestCreatesOneReference(t *testing.T) {
	s, _ := newTestStore()
	s.Set("a", "x")

	assert.Equal(t, 1, s.RefCount("a"))
	assert.True(t, s.Unload("a"))
	assert.False(t, s.Has("a"))
}

func TestStore_FailPropagates(t *testing.T) {
	s, buf := newTestStore()
	cause := errors.New("disk on fire")
	s.LoadRequested("a")
	s.Fail("a", cause)

	_, err := s.Get("a")
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, StatusFailed, s.Status("a"))
	assert.Contains(t, buf.String(), "disk on fire")

	// Failed entries still balance their requests.
	assert.True(t, s.Unload("a"))
	assert.Equal(t, StatusAbsent, s.Status("a"))
}

func TestStore_FailAbsentIsIgnored(t *testing.T) {
	s, _ := newTestStore()
	s.Fail("nobody", errors.New("x"))
	assert.False(t, s.Has("nobody"))
}

func TestStore_ReleaseOnlyWhenUnloadsMatchRequests(t *testing.T) {
	tests := []struct {
		name     string
		requests int
		unloads  int
		released bool
	}{
		{"one to one", 1, 1, true},
		{"fewer unloads", 3, 2, false},
		{"equal", 3, 3, true},
		{"extra unloads", 2, 4, true},
		{"no unloads", 2, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore()
			c := &closer{}
			for i := 0; i < tt.requests; i++ {
				s.LoadRequested("k")
			}
			s.Set("k", c)

			for i := 0; i < tt.unloads; i++ {
				s.Unload("k")
			}

			if tt.released {
				assert.Equal(t, 1, c.closed)
				assert.False(t, s.Has("k"))
				_, err := s.Get("k")
				assert.ErrorIs(t, err, ErrNotReady)
			} else {
				assert.Zero(t, c.closed)
				assert.True(t, s.IsReady("k"))
			}
		})
	}
}

func TestStore_UnloadAbsentIsWarning(t *testing.T) {
	s, buf := newTestStore()

	assert.False(t, s.Unload("ghost"))
	assert.Contains(t, buf.String(), "warning")

	s.LoadRequested("a")
	assert.True(t, s.Unload("a"))
	buf.Reset()
	assert.False(t, s.Unload("a"), "double unload is absorbed")
	assert.Contains(t, buf.String(), `"a"`)
}

func TestStore_CloseErrorIsLogged(t *testing.T) {
	s, buf := newTestStore()
	s.LoadRequested("a")
	s.Set("a", &closer{err: errors.New("busy")})

	assert.True(t, s.Unload("a"))
	assert.Contains(t, buf.String(), "busy")
}

func TestLookup(t *testing.T) {
	s, _ := newTestStore()
	s.LoadRequested("n")
	s.Set("n", 7)

	n, err := Lookup[int](s, "n")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = Lookup[string](s, "n")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Lookup[int](s, "missing")
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestStore_Len(t *testing.T) {
	s, _ := newTestStore()
	s.LoadRequested("a")
	s.LoadRequested("b")
	assert.Equal(t, 2, s.Len())
	s.Unload("a")
	assert.Equal(t, 1, s.Len())
}
