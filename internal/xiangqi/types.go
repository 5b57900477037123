package xiangqi

import (
	"strings"

	"github.com/google/uuid"
)

type Side int8

const (
	NoSide Side = -1
	Red    Side = 0
	Black  Side = 1
)

func (s Side) Opponent() Side {
	switch s {
	case Red:
		return Black
	case Black:
		return Red
	}
	return NoSide
}

func (s Side) Valid() bool { return s == Red || s == Black }

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Black:
		return "black"
	}
	return "none"
}

func ParseSide(v string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "red", "r":
		return Red, true
	case "black", "b":
		return Black, true
	}
	return NoSide, false
}

// Archetype 棋子种类，创建后不可变
type Archetype int8

const (
	ArchetypeNone Archetype = iota
	General                 // 帅 / 将
	Advisor                 // 仕 / 士
	Elephant                // 相 / 象
	Horse                   // 马
	Chariot                 // 车
	Cannon                  // 炮
	Soldier                 // 兵 / 卒

	numArchetypes = int(iota)
)

var archetypeNames = [numArchetypes]string{
	ArchetypeNone: "none",
	General:       "general",
	Advisor:       "advisor",
	Elephant:      "elephant",
	Horse:         "horse",
	Chariot:       "chariot",
	Cannon:        "cannon",
	Soldier:       "soldier",
}

// 棋盘字符：大写红，小写黑
var archetypeLetters = [numArchetypes]rune{
	ArchetypeNone: '.',
	General:       'g',
	Advisor:       'a',
	Elephant:      'e',
	Horse:         'h',
	Chariot:       'r',
	Cannon:        'c',
	Soldier:       's',
}

func (a Archetype) Valid() bool { return a > ArchetypeNone && int(a) < numArchetypes }

func (a Archetype) String() string {
	if a < 0 || int(a) >= numArchetypes {
		return "unknown"
	}
	return archetypeNames[a]
}

func ParseArchetype(v string) (Archetype, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	for a, name := range archetypeNames {
		if a != int(ArchetypeNone) && name == v {
			return Archetype(a), true
		}
	}
	// 常见别名
	switch v {
	case "king":
		return General, true
	case "guard":
		return Advisor, true
	case "minister", "bishop":
		return Elephant, true
	case "knight":
		return Horse, true
	case "rook":
		return Chariot, true
	case "pawn":
		return Soldier, true
	}
	return ArchetypeNone, false
}

func archetypeFromLetter(ch rune) (Archetype, bool) {
	for a, l := range archetypeLetters {
		if a != int(ArchetypeNone) && l == ch {
			return Archetype(a), true
		}
	}
	return ArchetypeNone, false
}

// Piece 棋子记录。只有 Game 会修改它：走子改位置、重算时替换走法、被吃时移出集合。
type Piece struct {
	id    uuid.UUID
	side  Side
	kind  Archetype
	pos   Square
	moves SquareSet
}

func newPiece(side Side, kind Archetype, pos Square) *Piece {
	return &Piece{
		id:   uuid.New(),
		side: side,
		kind: kind,
		pos:  pos,
	}
}

func (p *Piece) ID() uuid.UUID        { return p.id }
func (p *Piece) Side() Side           { return p.side }
func (p *Piece) Archetype() Archetype { return p.kind }
func (p *Piece) Pos() Square          { return p.pos }
func (p *Piece) Moves() SquareSet     { return p.moves }

func (p *Piece) letter() rune {
	ch := archetypeLetters[p.kind]
	if p.side == Red {
		return ch - 'a' + 'A'
	}
	return ch
}

// Placement 摆子描述：用于开局和自定义局面
type Placement struct {
	Side      Side
	Archetype Archetype
	At        Square
}

// PieceView 只读快照，供打印/接口层使用
type PieceView struct {
	ID        uuid.UUID
	Side      Side
	Archetype Archetype
	Position  Square
	Moves     []Square
}

// MoveRecord 一步成功走子的记录
type MoveRecord struct {
	From      Square
	To        Square
	Side      Side
	Archetype Archetype
	Captured  Archetype // 没吃子时为 ArchetypeNone
	Check     [2]bool   // 走完后红/黑是否被将
}
