package xiangqi

import (
	"fmt"
	"strings"
	"unicode"
)

// 标准开局，第 10 行在最上面。大写红，小写黑。
const initialBoardString = `rheagaehr
.........
.c.....c.
s.s.s.s.s
.........
.........
S.S.S.S.S
.C.....C.
.........
RHEAGAEHR`

func parseBoardString(board string) []Placement {
	lines := make([]string, 0, Rows)
	for _, line := range strings.Split(board, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != Rows {
		panic("xiangqi: board string must have 10 rows")
	}

	var out []Placement
	for i, line := range lines {
		if len(line) != Cols {
			panic("xiangqi: board string rows must have 9 columns")
		}
		row := Rows - i
		for c, ch := range line {
			if ch == '.' {
				continue
			}
			kind, ok := archetypeFromLetter(unicode.ToLower(ch))
			if !ok {
				panic("xiangqi: unknown piece letter: " + string(ch))
			}
			side := Black
			if unicode.IsUpper(ch) {
				side = Red
			}
			out = append(out, Placement{Side: side, Archetype: kind, At: indexOf(c+1, row)})
		}
	}
	return out
}

// StandardPlacements 标准开局 32 子
func StandardPlacements() []Placement {
	return parseBoardString(initialBoardString)
}

// ReducedPlacements 简化局面：红帅 d1，黑将 e10，黑车 e9、f9
func ReducedPlacements() []Placement {
	return []Placement{
		{Side: Red, Archetype: General, At: MustSquare("d1")},
		{Side: Black, Archetype: General, At: MustSquare("e10")},
		{Side: Black, Archetype: Chariot, At: MustSquare("e9")},
		{Side: Black, Archetype: Chariot, At: MustSquare("f9")},
	}
}

// validatePlacements 坐标合法、不重叠、每方恰好一个帅且在九宫内
func validatePlacements(placements []Placement) error {
	var seen SquareSet
	var generals [2]int
	for i, pl := range placements {
		if !pl.Side.Valid() {
			return fmt.Errorf("%w: piece %d has no side", ErrInvalidSetup, i)
		}
		if !pl.Archetype.Valid() {
			return fmt.Errorf("%w: piece %d has unknown archetype %d", ErrInvalidSetup, i, pl.Archetype)
		}
		if !pl.At.Valid() {
			return fmt.Errorf("%w: %s %s is off the board", ErrInvalidSetup, pl.Side, pl.Archetype)
		}
		if seen.Has(pl.At) {
			return fmt.Errorf("%w: two pieces on %s", ErrInvalidSetup, pl.At)
		}
		seen.Add(pl.At)
		if pl.Archetype == General {
			generals[pl.Side]++
			if !InPalace(pl.At, pl.Side) {
				return fmt.Errorf("%w: %s general on %s is outside its palace", ErrInvalidSetup, pl.Side, pl.At)
			}
		}
	}
	for _, side := range []Side{Red, Black} {
		if generals[side] != 1 {
			return fmt.Errorf("%w: %s has %d generals, want 1", ErrInvalidSetup, side, generals[side])
		}
	}
	return nil
}
