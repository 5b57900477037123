package game

import (
	"sync"
	"time"

	"xiangqi/internal/xiangqi"
)

// Session 一局棋。Game 本身不是并发安全的，所有访问都要持有 mu。
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	game      *xiangqi.Game
	updatedAt time.Time
}

// Summary 某一时刻的对局快照，可以在锁外随便用
type Summary struct {
	ID        string
	Pieces    []xiangqi.PieceView
	InCheck   [2]bool
	State     xiangqi.GameState
	ToMove    xiangqi.Side
	Rules     xiangqi.Rules
	Board     string
	History   []xiangqi.MoveRecord
	Hash      uint64
	UpdatedAt time.Time
}

func newSession(id string, g *xiangqi.Game) *Session {
	now := time.Now()
	return &Session{ID: id, CreatedAt: now, game: g, updatedAt: now}
}

// Summary 加锁取快照
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

func (s *Session) summaryLocked() Summary {
	g := s.game
	return Summary{
		ID:        s.ID,
		Pieces:    g.Snapshot(),
		InCheck:   [2]bool{g.IsInCheck(xiangqi.Red), g.IsInCheck(xiangqi.Black)},
		State:     g.State(),
		ToMove:    g.SideToMove(),
		Rules:     g.Rules(),
		Board:     g.String(),
		History:   g.History(),
		Hash:      g.Hash(),
		UpdatedAt: s.updatedAt,
	}
}

func (s *Session) move(from, to xiangqi.Square) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.game.Move(from, to); err != nil {
		return s.summaryLocked(), err
	}
	s.updatedAt = time.Now()
	return s.summaryLocked(), nil
}

func (s *Session) setState(state xiangqi.GameState) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.game.SetState(state); err != nil {
		return s.summaryLocked(), err
	}
	s.updatedAt = time.Now()
	return s.summaryLocked(), nil
}
