package assets

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/scenecam/internal/domain/resource"
)

func newTestFS() fstest.MapFS {
	return fstest.MapFS{
		"scene.json": {Data: []byte(`{"hello": "world"}`)},
		"bad.txt":    {Data: []byte("boom")},
	}
}

func newStore() *resource.Store {
	return resource.NewStoreWithLogger(log.New(&bytes.Buffer{}, "", 0))
}

func upper(_ string, data []byte) (any, error) {
	if bytes.Equal(data, []byte("boom")) {
		return nil, errors.New("cannot decode")
	}
	return strings.ToUpper(string(data)), nil
}

func TestLoader_AsyncLoadBecomesReadyAfterPoll(t *testing.T) {
	store := newStore()
	l := NewLoader(newTestFS(), store, upper)

	l.Load("scene.json")
	assert.Equal(t, resource.StatusPending, l.Status("scene.json"))
	assert.Equal(t, 1, l.Pending())

	l.Wait()
	assert.Zero(t, l.Pending())
	assert.Equal(t, resource.StatusReady, l.Status("scene.json"))

	v, err := l.Get("scene.json")
	require.NoError(t, err)
	assert.Equal(t, `{"HELLO": "WORLD"}`, v)
}

func TestLoader_PollNeverBlocks(t *testing.T) {
	l := NewLoader(newTestFS(), newStore(), nil)
	assert.Zero(t, l.Poll())
}

func TestLoader_SynchronousLoad(t *testing.T) {
	store := newStore()
	l := NewLoader(newTestFS(), store, nil, Synchronous())

	l.Load("scene.json")
	assert.Zero(t, l.Pending())

	v, err := l.Get("scene.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"hello": "world"}`), v)
}

func TestLoader_RepeatedLoadSharesFetch(t *testing.T) {
	store := newStore()
	l := NewLoader(newTestFS(), store, upper, Synchronous())

	l.Load("scene.json")
	l.Load("scene.json")
	assert.Equal(t, 2, store.RefCount("scene.json"))

	l.Unload("scene.json")
	assert.True(t, store.IsReady("scene.json"))
	l.Unload("scene.json")
	assert.False(t, store.Has("scene.json"))
}

func TestLoader_Failures(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", "missing.json"},
		{"decode error", "bad.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore()
			l := NewLoader(newTestFS(), store, upper)

			l.Load(tt.path)
			l.Wait()

			assert.Equal(t, resource.StatusFailed, l.Status(tt.path))
			_, err := l.Get(tt.path)
			assert.ErrorIs(t, err, resource.ErrLoadFailed)
		})
	}
}

func TestLoader_UnloadBeforeFetchCompletes(t *testing.T) {
	store := newStore()
	l := NewLoader(newTestFS(), store, upper)

	l.Load("scene.json")
	l.Unload("scene.json")
	l.Wait()

	assert.False(t, store.Has("scene.json"), "late result must not resurrect the key")
}
