package xiangqi

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pl(side Side, kind Archetype, at string) Placement {
	return Placement{Side: side, Archetype: kind, At: MustSquare(at)}
}

// buildIndex 只建索引，不走 Game（生成器单测不需要两个帅）
func buildIndex(placements ...Placement) ([]*Piece, *PositionIndex) {
	pieces := make([]*Piece, 0, len(placements))
	for _, p := range placements {
		pieces = append(pieces, newPiece(p.Side, p.Archetype, p.At))
	}
	return pieces, NewPositionIndex(pieces)
}

// candidatesAt 返回 at 上棋子的候选走法（字符串，升序）
func candidatesAt(t *testing.T, ix *PositionIndex, at string) []string {
	t.Helper()
	p := ix.OccupantAt(MustSquare(at))
	require.NotNil(t, p, "no piece on %s", at)
	return Candidates(p, ix).Strings()
}

func newTestGame(t *testing.T, rules Rules, placements ...Placement) *Game {
	t.Helper()
	g, err := NewGameFromPlacements(GameConfig{Rules: rules, Logger: zerolog.Nop()}, placements)
	require.NoError(t, err)
	return g
}

func movesAt(t *testing.T, g *Game, at string) []string {
	t.Helper()
	_, ok := g.PieceAt(MustSquare(at))
	require.True(t, ok, "no piece on %s", at)
	return g.LegalMoves(MustSquare(at)).Strings()
}

// assertNoSelfCapture 任何走法集合里都没有己方占据的格子
func assertNoSelfCapture(t *testing.T, g *Game) {
	t.Helper()
	for _, p := range g.pieces {
		own := g.index.OccupiedBy(p.side)
		assert.True(t, p.moves.Intersect(own).Empty(),
			"%s %s on %s can move onto own piece: %s", p.side, p.kind, p.pos, p.moves.Intersect(own))
	}
}
