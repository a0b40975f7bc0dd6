package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/scenecam/internal/application/state"
)

type nopDirector struct{}

func (nopDirector) Start(Scene) {}
func (nopDirector) Stop(Scene)  {}

func TestBase_StartsUnloaded(t *testing.T) {
	b := NewBase(nopDirector{})
	assert.Equal(t, state.Unloaded, b.State())
	assert.NotNil(t, b.Director())
}

func TestBase_SetStateFollowsLifecycle(t *testing.T) {
	b := NewBase(nopDirector{})

	require.NoError(t, b.SetState(state.Loading))
	require.NoError(t, b.SetState(state.Initialized))

	err := b.SetState(state.Loading)
	assert.ErrorIs(t, err, state.ErrInvalidTransition)
	assert.Equal(t, state.Initialized, b.State(), "failed transition keeps the state")

	require.NoError(t, b.SetState(state.Running))
	require.NoError(t, b.SetState(state.Unloading))
	require.NoError(t, b.SetState(state.Terminated))
}
