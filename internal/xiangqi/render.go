package xiangqi

import (
	"strconv"
	"strings"
)

// String 文本棋盘，第 10 行在上；大写红，小写黑
func (g *Game) String() string {
	var sb strings.Builder
	for row := Rows; row >= 1; row-- {
		label := strconv.Itoa(row)
		if row < 10 {
			sb.WriteByte(' ')
		}
		sb.WriteString(label)
		sb.WriteByte(' ')
		for col := 1; col <= Cols; col++ {
			ch := '.'
			if p := g.index.OccupantAt(indexOf(col, row)); p != nil {
				ch = p.letter()
			}
			sb.WriteRune(ch)
		}
		sb.WriteByte('\n')
		if row == RiverRow+1 {
			sb.WriteString("   ~~~~~~~~~\n")
		}
	}
	sb.WriteString("   abcdefghi\n")
	return sb.String()
}
