package xiangqi

import "sync"

var (
	zobristOnce sync.Once

	zobristPieces [2][numArchetypes][NumSquares]uint64
	zobristSide   uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for side := 0; side < 2; side++ {
			for kind := 1; kind < numArchetypes; kind++ {
				for sq := 0; sq < NumSquares; sq++ {
					zobristPieces[side][kind][sq] = next()
				}
			}
		}
		zobristSide = next()
	})
}

func pieceHashKey(side Side, kind Archetype, sq Square) uint64 {
	if !side.Valid() || !kind.Valid() || !sq.Valid() {
		return 0
	}
	initZobrist()
	return zobristPieces[side][kind][sq]
}

// calculateHash 全量计算局面哈希；只有轮流走子时才计入走子方
func (g *Game) calculateHash() uint64 {
	initZobrist()

	var h uint64
	for _, p := range g.pieces {
		h ^= pieceHashKey(p.side, p.kind, p.pos)
	}
	if g.toMove == Black {
		h ^= zobristSide
	}
	return h
}
