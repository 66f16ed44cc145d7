package store

import (
	"testing"

	"chardash/internal/errors"
	"chardash/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseTransitions(t *testing.T) {
	all := []Phase{Idle, FirstPageLoading, FirstPageLoaded, BackgroundLoading, FullyLoaded, PartiallyLoaded, Error}
	legal := map[[2]Phase]bool{
		{Idle, FirstPageLoading}:              true,
		{FirstPageLoading, FirstPageLoaded}:   true,
		{FirstPageLoading, Error}:             true,
		{FirstPageLoaded, BackgroundLoading}:  true,
		{FirstPageLoaded, FirstPageLoading}:   true,
		{BackgroundLoading, FullyLoaded}:      true,
		{BackgroundLoading, PartiallyLoaded}:  true,
		{FullyLoaded, FirstPageLoading}:       true,
		{PartiallyLoaded, FirstPageLoading}:   true,
		{Error, FirstPageLoading}:             true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, legal[[2]Phase{from, to}], from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "background-loading", BackgroundLoading.String())
	assert.Equal(t, "unknown", Phase(99).String())
	assert.True(t, FullyLoaded.Settled())
	assert.False(t, FirstPageLoading.Settled())
}

func TestReduceDoesNotMutateCharacters(t *testing.T) {
	first := []types.Character{{ID: 1, Name: "Mickey Mouse"}}
	s := initialState(50)
	s.Phase = FirstPageLoading

	next, err := reduce(s, firstPageFulfilled{characters: first})
	require.NoError(t, err)

	next.Phase = BackgroundLoading
	more := append(append([]types.Character{}, next.Characters...), types.Character{ID: 2})
	final, err := reduce(next, remainingFulfilled{characters: more})
	require.NoError(t, err)

	assert.Len(t, next.Characters, 1)
	assert.Len(t, final.Characters, 2)
	assert.Equal(t, next.Revision+1, final.Revision)
}

func TestReduceRejectsOutOfOrderResults(t *testing.T) {
	s := initialState(50)

	_, err := reduce(s, firstPageFulfilled{})
	assert.True(t, errors.IsIllegalTransition(err))

	_, err = reduce(s, remainingRejected{})
	assert.True(t, errors.IsIllegalTransition(err))

	var te *errors.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "idle", te.From())
	assert.Equal(t, "partially-loaded", te.To())
}

func TestFirstPagePendingClearsError(t *testing.T) {
	s := initialState(50)
	s.Phase = Error
	s.Err = "boom"

	next, err := reduce(s, firstPagePending{pageSize: 20})
	require.NoError(t, err)
	assert.Empty(t, next.Err)
	assert.Equal(t, 20, next.FirstPageSize)
	assert.True(t, next.Loading())
}
