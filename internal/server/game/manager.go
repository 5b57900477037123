package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"xiangqi/internal/xiangqi"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrTooManyGames = errors.New("too many games")
)

type Options struct {
	MaxGames int
	Rules    xiangqi.Rules
	Logger   zerolog.Logger
}

// Manager 内存里的对局表
type Manager struct {
	mu       sync.RWMutex
	games    map[string]*Session
	maxGames int
	rules    xiangqi.Rules
	logger   zerolog.Logger

	// 对局自己会加 component=xiangqi
	gameLogger zerolog.Logger
}

func NewManager(opts Options) *Manager {
	return &Manager{
		games:    make(map[string]*Session),
		maxGames: opts.MaxGames,
		rules:    opts.Rules,
		logger:   opts.Logger.With().Str("component", "game_manager").Logger(),

		gameLogger: opts.Logger,
	}
}

// NewGame 标准开局
func (m *Manager) NewGame() (*Session, error) {
	return m.NewGameFromPlacements(xiangqi.StandardPlacements())
}

func (m *Manager) NewGameFromPlacements(placements []xiangqi.Placement) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxGames > 0 && len(m.games) >= m.maxGames {
		return nil, fmt.Errorf("%w: limit is %d", ErrTooManyGames, m.maxGames)
	}

	g, err := xiangqi.NewGameFromPlacements(xiangqi.GameConfig{Rules: m.rules, Logger: m.gameLogger}, placements)
	if err != nil {
		return nil, err
	}
	id := g.ID().String()
	s := newSession(id, g)
	m.games[id] = s

	m.logger.Info().Str("game_id", id).Int("active_games", len(m.games)).Msg("Session created")
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrGameNotFound, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGameNotFound, id)
	}
	return s, nil
}

// Play 走一步；坐标解析失败按出界处理
func (m *Manager) Play(id, from, to string) (Summary, error) {
	s, err := m.Get(id)
	if err != nil {
		return Summary{}, err
	}
	fromSq, ok := xiangqi.ParseSquare(from)
	if !ok {
		return s.Summary(), fmt.Errorf("%w: %q", xiangqi.ErrOffBoard, from)
	}
	toSq, ok := xiangqi.ParseSquare(to)
	if !ok {
		return s.Summary(), fmt.Errorf("%w: %q", xiangqi.ErrOffBoard, to)
	}
	return s.move(fromSq, toSq)
}

func (m *Manager) SetState(id string, state xiangqi.GameState) (Summary, error) {
	s, err := m.Get(id)
	if err != nil {
		return Summary{}, err
	}
	return s.setState(state)
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return fmt.Errorf("%w: %q", ErrGameNotFound, id)
	}
	delete(m.games, id)
	m.logger.Info().Str("game_id", id).Int("active_games", len(m.games)).Msg("Session deleted")
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// SetRules 只影响之后新建的对局
func (m *Manager) SetRules(r xiangqi.Rules) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r != m.rules {
		m.logger.Info().
			Bool("strict_check_safety", r.StrictCheckSafety).
			Bool("enforce_turn_order", r.EnforceTurnOrder).
			Msg("Rules updated for new games")
	}
	m.rules = r
}

func (m *Manager) Rules() xiangqi.Rules {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rules
}
