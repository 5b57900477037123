package xiangqi

// detectCheck 用已重算好的走法集合判断两方是否被将：
// 对方除帅以外所有棋子走法的并集里包含己方帅所在格即为被将。
func detectCheck(pieces []*Piece, attacks [2]SquareSet) [2]bool {
	var status [2]bool
	for _, p := range pieces {
		if p.kind != General {
			continue
		}
		status[p.side] = attacks[p.side.Opponent()].Has(p.pos)
	}
	return status
}

// isAttacked 判断 sq 是否被 bySide 一方除帅以外的任一棋子攻击（现生成候选走法）
func isAttacked(pieces []*Piece, ix *PositionIndex, sq Square, bySide Side) bool {
	for _, p := range pieces {
		if p.side != bySide || p.kind == General {
			continue
		}
		// 仕只能落在己方九宫，碰不到对方帅
		if p.kind == Advisor {
			continue
		}
		if Candidates(p, ix).Has(sq) {
			return true
		}
	}
	return false
}
