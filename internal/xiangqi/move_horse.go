package xiangqi

// 马 8 种“日”字：终点 + 马腿，全部写成 {dCol, dRow}
var horseLegMoves = [8]struct {
	Dc, Dr int // 终点
	Lc, Lr int // 马腿
}{
	{-1, +2, 0, +1},
	{+1, +2, 0, +1},
	{-1, -2, 0, -1},
	{+1, -2, 0, -1},
	{-2, +1, -1, 0},
	{-2, -1, -1, 0},
	{+2, +1, +1, 0},
	{+2, -1, +1, 0},
}

// 马：先直走一格再斜走一格；直走那一格有子就憋马腿，经过它的两个落点都不能走
func genHorseMoves(p *Piece, ix *PositionIndex) SquareSet {
	var moves SquareSet
	for _, m := range horseLegMoves {
		to, ok := p.pos.Offset(m.Dc, m.Dr)
		if !ok {
			continue
		}
		leg, _ := p.pos.Offset(m.Lc, m.Lr)
		if !ix.empty(leg) {
			continue // 憋马腿
		}
		addIfEnterable(ix, p.side, to, &moves)
	}
	return moves
}
