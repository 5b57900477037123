package xiangqi

// generalsFacing 两帅同列且中间无子（“照面”）
func generalsFacing(ix *PositionIndex) bool {
	red := ix.general(Red)
	black := ix.general(Black)
	if red == nil || black == nil {
		// 有一方帅已经没了：对局终结，但不存在“照面”问题
		return false
	}
	if red.pos.Col() != black.pos.Col() {
		return false
	}

	lo, hi := red.pos, black.pos
	if lo > hi {
		lo, hi = hi, lo
	}
	for sq := lo + Cols; sq < hi; sq += Cols {
		if !ix.empty(sq) {
			return false
		}
	}
	return true
}

// GeneralExists 某方的帅是否还在
func (g *Game) GeneralExists(side Side) bool {
	return g.index.general(side) != nil
}
