package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xiangqi/internal/xiangqi"
)

func TestLoadChariots(t *testing.T) {
	placements, err := Load(filepath.Join("testdata", "chariots.yaml"))
	require.NoError(t, err)
	assert.Equal(t, xiangqi.ReducedPlacements(), placements)

	g, err := xiangqi.NewGameFromPlacements(xiangqi.GameConfig{Logger: zerolog.Nop()}, placements)
	require.NoError(t, err)
	assert.True(t, g.MakeMove("e9", "d9"))
	assert.True(t, g.IsInCheck(xiangqi.Red))
}

func TestLoadAcceptsAliases(t *testing.T) {
	placements, err := Load(filepath.Join("testdata", "pin.yaml"))
	require.NoError(t, err)
	require.Len(t, placements, 4)
	assert.Equal(t, xiangqi.General, placements[0].Archetype)
	assert.Equal(t, xiangqi.Chariot, placements[1].Archetype)
	assert.Equal(t, xiangqi.Black, placements[2].Side)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		setup   bool
	}{
		{"not yaml", "pieces: [", false},
		{"no pieces", "name: empty\n", true},
		{"bad side", "pieces:\n  - {side: green, type: general, at: e1}\n", true},
		{"bad type", "pieces:\n  - {side: red, type: queen, at: e1}\n", true},
		{"bad square", "pieces:\n  - {side: red, type: general, at: e11}\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.Error(t, err)
			if tt.setup {
				assert.ErrorIs(t, err, xiangqi.ErrInvalidSetup)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	b, err := Marshal("standard", xiangqi.StandardPlacements())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "standard.yaml")
	require.NoError(t, os.WriteFile(path, b, 0644))

	placements, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, xiangqi.StandardPlacements(), placements)
}
