package xiangqi

// excludeSelfCapture 复核：任何棋子的走法里都不能有己方占据的格子
func excludeSelfCapture(pieces []*Piece, ix *PositionIndex) {
	for _, p := range pieces {
		p.moves = p.moves.Minus(ix.OccupiedBy(p.side))
	}
}

// attackUnion side 一方除帅以外所有棋子走法的并集
func attackUnion(pieces []*Piece, side Side) SquareSet {
	var union SquareSet
	for _, p := range pieces {
		if p.side != side || p.kind == General {
			continue
		}
		union = union.Union(p.moves)
	}
	return union
}

// applyFlyingGeneralRule 帅不能走进对方非帅棋子当前能走到的格子。
// 只看当前局面，不模拟走完之后的局面。
func applyFlyingGeneralRule(pieces []*Piece) {
	attacks := [2]SquareSet{
		Red:   attackUnion(pieces, Red),
		Black: attackUnion(pieces, Black),
	}
	for _, p := range pieces {
		if p.kind != General {
			continue
		}
		p.moves = p.moves.Minus(attacks[p.side.Opponent()])
	}
}

// enforceCheckSafety 严格规则：逐步模拟，走完后己方帅被攻击或两帅照面的走法去掉。
// 直接吃掉对方帅的走法总是保留。
func enforceCheckSafety(pieces []*Piece, ix *PositionIndex) {
	for _, p := range pieces {
		for _, to := range p.moves.Squares() {
			if target := ix.OccupantAt(to); target != nil && target.kind == General {
				continue
			}
			if leavesGeneralExposed(pieces, p, to) {
				p.moves.Remove(to)
			}
		}
	}
}

// leavesGeneralExposed 在副本上走 mover -> to，看 mover 一方的帅是否暴露
func leavesGeneralExposed(pieces []*Piece, mover *Piece, to Square) bool {
	scratch := make([]*Piece, 0, len(pieces))
	for _, p := range pieces {
		if p.pos == to && p != mover {
			continue // 被吃
		}
		cp := *p
		if p == mover {
			cp.pos = to
		}
		scratch = append(scratch, &cp)
	}
	ix := NewPositionIndex(scratch)

	own := ix.general(mover.side)
	if own == nil {
		return false
	}
	if generalsFacing(ix) {
		return true
	}
	return isAttacked(scratch, ix, own.pos, mover.side.Opponent())
}
