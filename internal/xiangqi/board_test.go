package xiangqi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquareAtBounds(t *testing.T) {
	tests := []struct {
		name     string
		col, row int
		want     string
		ok       bool
	}{
		{"bottom left", 1, 1, "a1", true},
		{"top right", 9, 10, "i10", true},
		{"middle", 5, 5, "e5", true},
		{"column zero", 0, 1, "", false},
		{"column ten", 10, 1, "", false},
		{"row zero", 1, 0, "", false},
		{"row eleven", 1, 11, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sq, ok := SquareAt(tt.col, tt.row)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, sq.String())
				assert.Equal(t, tt.col, sq.Col())
				assert.Equal(t, tt.row, sq.Row())
			} else {
				assert.Equal(t, NoSquare, sq)
			}
		})
	}
}

func TestParseSquareRoundTripsEveryCell(t *testing.T) {
	seen := 0
	for col := 1; col <= Cols; col++ {
		for row := 1; row <= Rows; row++ {
			sq, ok := SquareAt(col, row)
			require.True(t, ok)
			parsed, ok := ParseSquare(sq.String())
			require.True(t, ok, sq.String())
			assert.Equal(t, sq, parsed)
			seen++
		}
	}
	assert.Equal(t, NumSquares, seen)
}

func TestParseSquareRejectsGarbage(t *testing.T) {
	for _, v := range []string{"", "a", "a0", "a11", "j1", "A1", "x1", "y1", "a01", "a+1", "e100", "1a"} {
		_, ok := ParseSquare(v)
		assert.False(t, ok, "%q should not parse", v)
	}
}

func TestOffsetNeverLeavesTheGrid(t *testing.T) {
	for sq := Square(0); sq < NumSquares; sq++ {
		for dc := -2; dc <= 2; dc++ {
			for dr := -2; dr <= 2; dr++ {
				to, ok := sq.Offset(dc, dr)
				if ok {
					assert.True(t, to.Valid())
					assert.Equal(t, sq.Col()+dc, to.Col())
					assert.Equal(t, sq.Row()+dr, to.Row())
				} else {
					assert.Equal(t, NoSquare, to)
				}
			}
		}
	}
}

func TestInPalace(t *testing.T) {
	red := []string{"d1", "e1", "f1", "d2", "e2", "f2", "d3", "e3", "f3"}
	black := []string{"d8", "e8", "f8", "d9", "e9", "f9", "d10", "e10", "f10"}

	count := [2]int{}
	for sq := Square(0); sq < NumSquares; sq++ {
		if InPalace(sq, Red) {
			count[Red]++
			assert.Contains(t, red, sq.String())
		}
		if InPalace(sq, Black) {
			count[Black]++
			assert.Contains(t, black, sq.String())
		}
	}
	assert.Equal(t, 9, count[Red])
	assert.Equal(t, 9, count[Black])
	assert.False(t, InPalace(NoSquare, Red))
	assert.False(t, InPalace(MustSquare("e1"), NoSide))
}

func TestCrossedRiver(t *testing.T) {
	assert.False(t, crossedRiver(Red, 5))
	assert.True(t, crossedRiver(Red, 6))
	assert.False(t, crossedRiver(Black, 6))
	assert.True(t, crossedRiver(Black, 5))
}

func TestSquareSet(t *testing.T) {
	s := SquareSetOf(MustSquare("a1"), MustSquare("i10"), MustSquare("e5"))
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has(MustSquare("i10")))
	assert.False(t, s.Has(NoSquare))
	assert.Equal(t, []string{"a1", "e5", "i10"}, s.Strings())

	s.Remove(MustSquare("e5"))
	assert.Equal(t, "{a1 i10}", s.String())

	other := SquareSetOf(MustSquare("a1"), MustSquare("b2"))
	assert.Equal(t, []string{"a1"}, s.Intersect(other).Strings())
	assert.Equal(t, []string{"i10"}, s.Minus(other).Strings())
	assert.Equal(t, 3, s.Union(other).Len())
	assert.True(t, SquareSet{}.Empty())

	assert.Panics(t, func() {
		var bad SquareSet
		bad.Add(NoSquare)
	})
}
