package xiangqi

// addIfEnterable 空格可走；敌子可吃；己方子不可走
func addIfEnterable(ix *PositionIndex, side Side, to Square, moves *SquareSet) {
	dst := ix.squares[to]
	if dst == nil || dst.side != side {
		moves.Add(to)
	}
}

// 帅：九宫内上下左右一格
func genGeneralMoves(p *Piece, ix *PositionIndex) SquareSet {
	var moves SquareSet
	for _, d := range orthogonalDirs {
		to, ok := p.pos.Offset(d[0], d[1])
		if !ok {
			continue
		}
		if !InPalace(to, p.side) {
			continue
		}
		addIfEnterable(ix, p.side, to, &moves)
	}
	return moves
}

// 仕：九宫内斜走一格
func genAdvisorMoves(p *Piece, ix *PositionIndex) SquareSet {
	var moves SquareSet
	for _, d := range diagonalDirs {
		to, ok := p.pos.Offset(d[0], d[1])
		if !ok {
			continue
		}
		if !InPalace(to, p.side) {
			continue
		}
		addIfEnterable(ix, p.side, to, &moves)
	}
	return moves
}

// 相：田字，象眼有子则不能走。不限九宫，也不限河界。
func genElephantMoves(p *Piece, ix *PositionIndex) SquareSet {
	var moves SquareSet
	for _, d := range diagonalDirs {
		to, ok := p.pos.Offset(2*d[0], 2*d[1])
		if !ok {
			continue
		}
		eye, _ := p.pos.Offset(d[0], d[1])
		if !ix.empty(eye) {
			continue // 塞象眼
		}
		addIfEnterable(ix, p.side, to, &moves)
	}
	return moves
}

// 车：横竖随便走，遇子停（敌子可吃）
func genChariotMoves(p *Piece, ix *PositionIndex) SquareSet {
	var moves SquareSet
	for _, d := range orthogonalDirs {
		to, ok := p.pos.Offset(d[0], d[1])
		for ok {
			dst := ix.squares[to]
			if dst == nil {
				moves.Add(to)
				to, ok = to.Offset(d[0], d[1])
				continue
			}
			if dst.side != p.side {
				moves.Add(to)
			}
			break
		}
	}
	return moves
}

// 炮：不吃子时同车；吃子必须隔一个炮架
func genCannonMoves(p *Piece, ix *PositionIndex) SquareSet {
	var moves SquareSet
	for _, d := range orthogonalDirs {
		to, ok := p.pos.Offset(d[0], d[1])

		// 走子阶段：直到第一个棋子（炮架），炮架本身不可走
		for ok {
			if !ix.empty(to) {
				to, ok = to.Offset(d[0], d[1])
				break
			}
			moves.Add(to)
			to, ok = to.Offset(d[0], d[1])
		}

		// 吃子阶段：越过炮架，遇到的第一个子若是敌子可吃
		for ok {
			if dst := ix.squares[to]; dst != nil {
				if dst.side != p.side {
					moves.Add(to)
				}
				break
			}
			to, ok = to.Offset(d[0], d[1])
		}
	}
	return moves
}
