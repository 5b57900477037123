package xiangqi

import (
	"math/bits"
	"strings"
)

// SquareSet 90 格位图：lo 存 0..63，hi 存 64..89。值类型，可直接用 == 比较。
type SquareSet struct {
	lo, hi uint64
}

func SquareSetOf(sqs ...Square) SquareSet {
	var s SquareSet
	for _, sq := range sqs {
		s.Add(sq)
	}
	return s
}

func (s SquareSet) Has(sq Square) bool {
	if !sq.Valid() {
		return false
	}
	if sq < 64 {
		return s.lo&(1<<uint(sq)) != 0
	}
	return s.hi&(1<<uint(sq-64)) != 0
}

func (s *SquareSet) Add(sq Square) {
	if !sq.Valid() {
		panic("xiangqi: adding off-board square to set")
	}
	if sq < 64 {
		s.lo |= 1 << uint(sq)
		return
	}
	s.hi |= 1 << uint(sq-64)
}

func (s *SquareSet) Remove(sq Square) {
	if !sq.Valid() {
		return
	}
	if sq < 64 {
		s.lo &^= 1 << uint(sq)
		return
	}
	s.hi &^= 1 << uint(sq-64)
}

func (s SquareSet) Union(o SquareSet) SquareSet {
	return SquareSet{lo: s.lo | o.lo, hi: s.hi | o.hi}
}

func (s SquareSet) Intersect(o SquareSet) SquareSet {
	return SquareSet{lo: s.lo & o.lo, hi: s.hi & o.hi}
}

func (s SquareSet) Minus(o SquareSet) SquareSet {
	return SquareSet{lo: s.lo &^ o.lo, hi: s.hi &^ o.hi}
}

func (s SquareSet) Len() int {
	return bits.OnesCount64(s.lo) + bits.OnesCount64(s.hi)
}

func (s SquareSet) Empty() bool { return s.lo == 0 && s.hi == 0 }

// Squares 按格子编号升序返回
func (s SquareSet) Squares() []Square {
	out := make([]Square, 0, s.Len())
	for w, base := range [2]uint64{s.lo, s.hi} {
		for base != 0 {
			i := bits.TrailingZeros64(base)
			out = append(out, Square(w*64+i))
			base &= base - 1
		}
	}
	return out
}

func (s SquareSet) Strings() []string {
	sqs := s.Squares()
	out := make([]string, len(sqs))
	for i, sq := range sqs {
		out[i] = sq.String()
	}
	return out
}

func (s SquareSet) String() string {
	return "{" + strings.Join(s.Strings(), " ") + "}"
}
