package xiangqi

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type GameState int8

const (
	Unfinished GameState = iota
	RedWon
	BlackWon
	Stalemate
)

var gameStateNames = [...]string{
	Unfinished: "UNFINISHED",
	RedWon:     "RED_WON",
	BlackWon:   "BLACK_WON",
	Stalemate:  "STALEMATE",
}

func (s GameState) Valid() bool { return s >= Unfinished && s <= Stalemate }

func (s GameState) String() string {
	if !s.Valid() {
		return "INVALID"
	}
	return gameStateNames[s]
}

func ParseGameState(v string) (GameState, error) {
	v = strings.ToUpper(strings.TrimSpace(v))
	for i, name := range gameStateNames {
		if name == v {
			return GameState(i), nil
		}
	}
	return Unfinished, fmt.Errorf("%w: %q", ErrInvalidState, v)
}

// Rules 可选规则。零值与原始规则一致：不轮流走子，只用“帅不进攻击格”这一近似。
type Rules struct {
	// StrictCheckSafety 任何走法走完后若己方帅被攻击或两帅照面则不合法
	StrictCheckSafety bool
	// EnforceTurnOrder 红先，双方轮流
	EnforceTurnOrder bool
}

type GameConfig struct {
	Rules  Rules
	Logger zerolog.Logger
}

// Game 对局控制器：独占棋子集合，负责校验、落子、重算走法和将军状态。
// 不是并发安全的，调用方需要自己串行化。
type Game struct {
	id      uuid.UUID
	pieces  []*Piece
	index   *PositionIndex
	inCheck [2]bool
	state   GameState
	toMove  Side
	rules   Rules
	hash    uint64
	history []MoveRecord
	logger  zerolog.Logger
}

// NewGame 标准开局
func NewGame(cfg GameConfig) *Game {
	g, err := NewGameFromPlacements(cfg, StandardPlacements())
	if err != nil {
		panic("xiangqi: standard layout rejected: " + err.Error())
	}
	return g
}

// NewGameFromPlacements 自定义局面（测试/调试用）
func NewGameFromPlacements(cfg GameConfig, placements []Placement) (*Game, error) {
	if err := validatePlacements(placements); err != nil {
		return nil, err
	}

	id := uuid.New()
	g := &Game{
		id:     id,
		pieces: make([]*Piece, 0, len(placements)),
		state:  Unfinished,
		toMove: Red,
		rules:  cfg.Rules,
		logger: cfg.Logger.With().Str("component", "xiangqi").Str("game_id", id.String()).Logger(),
	}
	for _, pl := range placements {
		g.pieces = append(g.pieces, newPiece(pl.Side, pl.Archetype, pl.At))
	}
	g.recompute()
	g.hash = g.calculateHash()

	g.logger.Info().
		Int("pieces", len(g.pieces)).
		Bool("strict_check_safety", g.rules.StrictCheckSafety).
		Bool("enforce_turn_order", g.rules.EnforceTurnOrder).
		Msg("Game created")
	return g, nil
}

func (g *Game) ID() uuid.UUID { return g.id }

func (g *Game) Rules() Rules { return g.rules }

func (g *Game) State() GameState { return g.state }

// SetState 只接受枚举内的值
func (g *Game) SetState(s GameState) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidState, s)
	}
	if s != g.state {
		g.logger.Info().Str("from", g.state.String()).Str("to", s.String()).Msg("Game state changed")
	}
	g.state = s
	return nil
}

func (g *Game) IsInCheck(side Side) bool {
	if !side.Valid() {
		return false
	}
	return g.inCheck[side]
}

func (g *Game) SideToMove() Side { return g.toMove }

func (g *Game) Hash() uint64 { return g.hash }

func (g *Game) History() []MoveRecord {
	out := make([]MoveRecord, len(g.history))
	copy(out, g.history)
	return out
}

// MakeMove 坐标形如 "e9"；任何拒绝都返回 false，且不改变任何状态
func (g *Game) MakeMove(start, end string) bool {
	from, ok := ParseSquare(start)
	if !ok {
		g.logger.Debug().Str("from", start).Str("to", end).Err(ErrOffBoard).Msg("Move rejected")
		return false
	}
	to, ok := ParseSquare(end)
	if !ok {
		g.logger.Debug().Str("from", start).Str("to", end).Err(ErrOffBoard).Msg("Move rejected")
		return false
	}
	return g.Move(from, to) == nil
}

// Move 校验并执行一步；失败返回哨兵错误，状态不变
func (g *Game) Move(from, to Square) error {
	if err := g.validate(from, to); err != nil {
		g.logger.Debug().Str("from", from.String()).Str("to", to.String()).Err(err).Msg("Move rejected")
		return err
	}

	mover := g.index.OccupantAt(from)
	rec := MoveRecord{From: from, To: to, Side: mover.side, Archetype: mover.kind}

	h := g.hash
	if captured := g.index.OccupantAt(to); captured != nil {
		rec.Captured = captured.kind
		h ^= pieceHashKey(captured.side, captured.kind, to)
		g.removePiece(captured)
		g.logger.Debug().
			Str("square", to.String()).
			Str("captured", captured.kind.String()).
			Str("captured_side", captured.side.String()).
			Msg("Piece captured")
		if captured.kind == General {
			winner := RedWon
			if mover.side == Black {
				winner = BlackWon
			}
			_ = g.SetState(winner)
		}
	}

	h ^= pieceHashKey(mover.side, mover.kind, from)
	mover.pos = to
	h ^= pieceHashKey(mover.side, mover.kind, to)

	if g.rules.EnforceTurnOrder {
		g.toMove = g.toMove.Opponent()
		h ^= zobristSide
	}
	g.hash = h

	prevCheck := g.inCheck
	g.recompute()

	rec.Check = g.inCheck
	g.history = append(g.history, rec)

	g.logger.Debug().
		Str("piece", mover.kind.String()).
		Str("side", mover.side.String()).
		Str("from", from.String()).
		Str("to", to.String()).
		Uint64("hash", g.hash).
		Msg("Move applied")
	for _, side := range []Side{Red, Black} {
		if prevCheck[side] != g.inCheck[side] {
			g.logger.Debug().Str("side", side.String()).Bool("in_check", g.inCheck[side]).Msg("Check status changed")
		}
	}
	return nil
}

func (g *Game) validate(from, to Square) error {
	if g.state != Unfinished {
		return ErrGameOver
	}
	// 帅已被吃的局面即使被改回 Unfinished 也不能再走
	if !g.GeneralExists(Red) || !g.GeneralExists(Black) {
		return ErrGameOver
	}
	if !from.Valid() || !to.Valid() {
		return ErrOffBoard
	}
	if from == to {
		return ErrSameSquare
	}
	mover := g.index.OccupantAt(from)
	if mover == nil {
		return ErrEmptySquare
	}
	if g.rules.EnforceTurnOrder && mover.side != g.toMove {
		return ErrWrongTurn
	}
	if !mover.moves.Has(to) {
		return ErrIllegalMove
	}
	return nil
}

func (g *Game) removePiece(p *Piece) {
	for i, q := range g.pieces {
		if q == p {
			g.pieces = append(g.pieces[:i], g.pieces[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("xiangqi: captured %s %s on %s missing from collection", p.side, p.kind, p.pos))
}

// recompute 顺序固定：索引 -> 走法生成 -> 合法性过滤 -> 将军检测
func (g *Game) recompute() {
	g.index = NewPositionIndex(g.pieces)

	if g.state == Unfinished {
		for _, side := range []Side{Red, Black} {
			if g.index.general(side) == nil {
				panic(fmt.Sprintf("xiangqi: %s general missing from an unfinished game", side))
			}
		}
	}

	generateAll(g.pieces, g.index)
	excludeSelfCapture(g.pieces, g.index)
	applyFlyingGeneralRule(g.pieces)

	// 将军检测用严格过滤之前的攻击集合：被牵制的子照样能将军
	attacks := [2]SquareSet{
		Red:   attackUnion(g.pieces, Red),
		Black: attackUnion(g.pieces, Black),
	}
	if g.rules.StrictCheckSafety {
		enforceCheckSafety(g.pieces, g.index)
	}
	g.inCheck = detectCheck(g.pieces, attacks)
}

// Snapshot 只读快照，顺序与内部集合一致
func (g *Game) Snapshot() []PieceView {
	out := make([]PieceView, 0, len(g.pieces))
	for _, p := range g.pieces {
		out = append(out, p.view())
	}
	return out
}

// PieceAt 某格上的棋子
func (g *Game) PieceAt(sq Square) (PieceView, bool) {
	p := g.index.OccupantAt(sq)
	if p == nil {
		return PieceView{}, false
	}
	return p.view(), true
}

// LegalMoves 某格棋子当前的合法走法；空格返回空集
func (g *Game) LegalMoves(sq Square) SquareSet {
	p := g.index.OccupantAt(sq)
	if p == nil {
		return SquareSet{}
	}
	return p.moves
}

func (p *Piece) view() PieceView {
	return PieceView{
		ID:        p.id,
		Side:      p.side,
		Archetype: p.kind,
		Position:  p.pos,
		Moves:     p.moves.Squares(),
	}
}
