package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"xiangqi/internal/xiangqi"
)

// GameResult 一局随机对弈的摘要
type GameResult struct {
	Index     int      `json:"index"`
	Seed      int64    `json:"seed"`
	Plies     int      `json:"plies"`
	State     string   `json:"state"`
	Captures  int      `json:"captures"`
	Checks    [2]int   `json:"checks"` // 走完后红/黑被将的次数
	FinalHash string   `json:"final_hash"`
	Moves     []string `json:"moves"`
}

type move struct {
	from, to xiangqi.Square
}

func legalMoves(g *xiangqi.Game) []move {
	var out []move
	for _, p := range g.Snapshot() {
		if g.Rules().EnforceTurnOrder && p.Side != g.SideToMove() {
			continue
		}
		for _, to := range p.Moves {
			out = append(out, move{from: p.Position, to: to})
		}
	}
	return out
}

// checkInvariants 每一步之后都要成立的性质
func checkInvariants(g *xiangqi.Game) error {
	seen := make(map[xiangqi.Square]xiangqi.Side)
	for _, p := range g.Snapshot() {
		if _, dup := seen[p.Position]; dup {
			return fmt.Errorf("two pieces on %s", p.Position)
		}
		seen[p.Position] = p.Side
	}
	for _, p := range g.Snapshot() {
		for _, to := range p.Moves {
			if to == p.Position {
				return fmt.Errorf("%s %s on %s lists its own square", p.Side, p.Archetype, p.Position)
			}
			if side, ok := seen[to]; ok && side == p.Side {
				return fmt.Errorf("%s %s on %s can capture own piece on %s", p.Side, p.Archetype, p.Position, to)
			}
			if p.Archetype == xiangqi.General && !xiangqi.InPalace(to, p.Side) {
				return fmt.Errorf("%s general on %s can leave the palace to %s", p.Side, p.Position, to)
			}
		}
	}
	if g.State() == xiangqi.Unfinished {
		for _, side := range []xiangqi.Side{xiangqi.Red, xiangqi.Black} {
			if !g.GeneralExists(side) {
				return fmt.Errorf("%s general missing while unfinished", side)
			}
		}
	}
	return nil
}

func playGame(ctx context.Context, index int, seed int64, maxPlies int, rules xiangqi.Rules, logger zerolog.Logger) (GameResult, error) {
	rng := rand.New(rand.NewSource(seed))
	g := xiangqi.NewGame(xiangqi.GameConfig{Rules: rules, Logger: logger})
	res := GameResult{Index: index, Seed: seed}

	for res.Plies < maxPlies && g.State() == xiangqi.Unfinished {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		options := legalMoves(g)
		if len(options) == 0 {
			break
		}
		mv := options[rng.Intn(len(options))]
		if err := g.Move(mv.from, mv.to); err != nil {
			return res, fmt.Errorf("game %d ply %d: legal move %s-%s rejected: %w", index, res.Plies, mv.from, mv.to, err)
		}
		res.Plies++
		res.Moves = append(res.Moves, mv.from.String()+mv.to.String())

		last := g.History()[len(g.History())-1]
		if last.Captured != xiangqi.ArchetypeNone {
			res.Captures++
		}
		for _, side := range []xiangqi.Side{xiangqi.Red, xiangqi.Black} {
			if last.Check[side] {
				res.Checks[side]++
			}
		}
		if err := checkInvariants(g); err != nil {
			return res, fmt.Errorf("game %d ply %d: %w", index, res.Plies, err)
		}
	}

	res.State = g.State().String()
	res.FinalHash = fmt.Sprintf("%016x", g.Hash())
	return res, nil
}
