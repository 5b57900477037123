package main

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xiangqi/internal/xiangqi"
)

func TestPlayGameIsDeterministic(t *testing.T) {
	a, err := playGame(context.Background(), 0, 42, 80, xiangqi.Rules{}, zerolog.Nop())
	require.NoError(t, err)
	b, err := playGame(context.Background(), 0, 42, 80, xiangqi.Rules{}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.LessOrEqual(t, a.Plies, 80)
	assert.Len(t, a.Moves, a.Plies)
}

func TestRunAllKeepsInvariants(t *testing.T) {
	for _, rules := range []xiangqi.Rules{{}, {StrictCheckSafety: true, EnforceTurnOrder: true}} {
		results, err := runAll(context.Background(), 6, 3, 120, 1, rules)
		require.NoError(t, err)
		require.Len(t, results, 6)
		for i, r := range results {
			assert.Equal(t, i, r.Index)
			assert.Equal(t, int64(1+i), r.Seed)
			assert.NotEmpty(t, r.State)
		}
	}
}

func TestPlayGameStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := playGame(ctx, 0, 1, 50, xiangqi.Rules{}, zerolog.Nop())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckInvariantsOnStandardLayout(t *testing.T) {
	g := xiangqi.NewGame(xiangqi.GameConfig{Logger: zerolog.Nop()})
	assert.NoError(t, checkInvariants(g))
	assert.Len(t, legalMoves(g), 88)
}
