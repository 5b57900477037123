package xiangqi

import "fmt"

// PositionIndex 某一时刻棋子集合的只读索引：格子 -> 棋子、每方占据的格子。
// 每次重算前从棋子集合全量重建，一次重算内所有走法生成器共用同一份。
type PositionIndex struct {
	squares  [NumSquares]*Piece
	occupied [2]SquareSet
}

// NewPositionIndex 两子同格或坐标非法属于内部状态损坏，直接 panic
func NewPositionIndex(pieces []*Piece) *PositionIndex {
	ix := &PositionIndex{}
	for _, p := range pieces {
		if !p.pos.Valid() {
			panic(fmt.Sprintf("xiangqi: %s %s has off-board position %d", p.side, p.kind, p.pos))
		}
		if !p.side.Valid() {
			panic(fmt.Sprintf("xiangqi: piece on %s has no owner", p.pos))
		}
		if other := ix.squares[p.pos]; other != nil {
			panic(fmt.Sprintf("xiangqi: duplicate pieces on %s (%s %s, %s %s)",
				p.pos, other.side, other.kind, p.side, p.kind))
		}
		ix.squares[p.pos] = p
		ix.occupied[p.side].Add(p.pos)
	}
	return ix
}

func (ix *PositionIndex) OccupantAt(sq Square) *Piece {
	if !sq.Valid() {
		return nil
	}
	return ix.squares[sq]
}

func (ix *PositionIndex) OccupiedBy(side Side) SquareSet {
	if !side.Valid() {
		return SquareSet{}
	}
	return ix.occupied[side]
}

func (ix *PositionIndex) Occupied() SquareSet {
	return ix.occupied[Red].Union(ix.occupied[Black])
}

func (ix *PositionIndex) empty(sq Square) bool {
	return ix.squares[sq] == nil
}

// contains 索引里这个格子上是不是正好这枚棋子
func (ix *PositionIndex) contains(p *Piece) bool {
	return p != nil && p.pos.Valid() && ix.squares[p.pos] == p
}

func (ix *PositionIndex) general(side Side) *Piece {
	for _, sq := range ix.OccupiedBy(side).Squares() {
		if p := ix.squares[sq]; p.kind == General {
			return p
		}
	}
	return nil
}
