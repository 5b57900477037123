package xiangqi

// 兵：未过河只能向前一格；过河后可再左右一格。永不后退。
func genSoldierMoves(p *Piece, ix *PositionIndex) SquareSet {
	var moves SquareSet

	if to, ok := p.pos.Offset(0, forward(p.side)); ok {
		addIfEnterable(ix, p.side, to, &moves)
	}

	if !crossedRiver(p.side, p.pos.Row()) {
		return moves
	}

	for _, dc := range []int{-1, +1} {
		to, ok := p.pos.Offset(dc, 0)
		if !ok {
			continue
		}
		addIfEnterable(ix, p.side, to, &moves)
	}
	return moves
}
