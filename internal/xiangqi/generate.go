package xiangqi

import "fmt"

type generator func(p *Piece, ix *PositionIndex) SquareSet

// 每种棋子一个走法生成器，按 Archetype 下标取
var generators = [numArchetypes]generator{
	General:  genGeneralMoves,
	Advisor:  genAdvisorMoves,
	Elephant: genElephantMoves,
	Horse:    genHorseMoves,
	Chariot:  genChariotMoves,
	Cannon:   genCannonMoves,
	Soldier:  genSoldierMoves,
}

// Candidates 生成候选走法：处理阻挡/吃子/地形，不考虑将帅安全。
// 棋子必须在索引里，否则是调用方的 bug。
func Candidates(p *Piece, ix *PositionIndex) SquareSet {
	if !ix.contains(p) {
		panic(fmt.Sprintf("xiangqi: generating moves for %s %s on %s which is not in the position index",
			p.side, p.kind, p.pos))
	}
	if !p.kind.Valid() || generators[p.kind] == nil {
		panic(fmt.Sprintf("xiangqi: no move generator for archetype %d", p.kind))
	}
	return generators[p.kind](p, ix)
}

// generateAll 给每个棋子换上新的候选走法集合
func generateAll(pieces []*Piece, ix *PositionIndex) {
	for _, p := range pieces {
		p.moves = Candidates(p, ix)
	}
}
