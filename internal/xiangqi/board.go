package xiangqi

import (
	"strconv"
)

const (
	Cols       = 9
	Rows       = 10
	NumSquares = Rows * Cols

	RiverRow = 5 // 河界在第 5、6 行之间
)

// Square 棋盘格子，0..89，按行存储：a1=0, i1=8, a2=9 ... i10=89
type Square int8

const NoSquare Square = -1

// 方向都是 {dCol, dRow}，红方在下（第 1 行），黑方在上（第 10 行）
var (
	orthogonalDirs = [4][2]int{{0, +1}, {0, -1}, {-1, 0}, {+1, 0}}
	diagonalDirs   = [4][2]int{{-1, +1}, {+1, +1}, {-1, -1}, {+1, -1}}
)

func onBoard(col, row int) bool {
	return col >= 1 && col <= Cols && row >= 1 && row <= Rows
}

func indexOf(col, row int) Square { return Square((row-1)*Cols + (col - 1)) }

// SquareAt 列 1..9、行 1..10；越界返回 false
func SquareAt(col, row int) (Square, bool) {
	if !onBoard(col, row) {
		return NoSquare, false
	}
	return indexOf(col, row), true
}

func (s Square) Valid() bool { return s >= 0 && int(s) < NumSquares }

func (s Square) Col() int { return int(s)%Cols + 1 }

func (s Square) Row() int { return int(s)/Cols + 1 }

// Offset 按 {dCol, dRow} 平移；出界返回 false，不产生格子
func (s Square) Offset(dCol, dRow int) (Square, bool) {
	if !s.Valid() {
		return NoSquare, false
	}
	return SquareAt(s.Col()+dCol, s.Row()+dRow)
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string(rune('a'+s.Col()-1)) + strconv.Itoa(s.Row())
}

// ParseSquare 解析 "a1".."i10"
func ParseSquare(v string) (Square, bool) {
	if len(v) < 2 || len(v) > 3 {
		return NoSquare, false
	}
	file := v[0]
	if file < 'a' || file > 'i' {
		return NoSquare, false
	}
	digits := v[1:]
	if digits[0] == '0' {
		return NoSquare, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return NoSquare, false
		}
	}
	row, err := strconv.Atoi(digits)
	if err != nil {
		return NoSquare, false
	}
	return SquareAt(int(file-'a')+1, row)
}

// MustSquare 只用于常量表和测试
func MustSquare(v string) Square {
	sq, ok := ParseSquare(v)
	if !ok {
		panic("xiangqi: bad square " + strconv.Quote(v))
	}
	return sq
}

// InPalace 九宫：d..f 列，红方 1..3 行，黑方 8..10 行
func InPalace(sq Square, side Side) bool {
	if !sq.Valid() {
		return false
	}
	col, row := sq.Col(), sq.Row()
	if col < 4 || col > 6 {
		return false
	}
	switch side {
	case Red:
		return row >= 1 && row <= 3
	case Black:
		return row >= Rows-2 && row <= Rows
	}
	return false
}

// 兵的前进方向：红向上(+1)，黑向下(-1)
func forward(side Side) int {
	switch side {
	case Red:
		return +1
	case Black:
		return -1
	}
	return 0
}

// 是否已经过河
func crossedRiver(side Side, row int) bool {
	switch side {
	case Red:
		return row > RiverRow
	case Black:
		return row <= RiverRow
	}
	return false
}
