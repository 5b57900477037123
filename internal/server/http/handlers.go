package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"xiangqi/internal/fixture"
	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

// 请求体上限，摆子列表再大也到不了这个数
const maxBodyBytes = 64 << 10

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games  *game.Manager
	logger zerolog.Logger
}

func NewHandler(games *game.Manager, logger zerolog.Logger) *Handler {
	return &Handler{
		games:  games,
		logger: logger.With().Str("component", "http").Logger(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var fn func(http.ResponseWriter, *http.Request)
	switch r.URL.Path {
	case "/api/new_game":
		fn = h.handleNewGame
	case "/api/play":
		fn = h.handlePlay
	case "/api/state":
		fn = h.handleState
	case "/api/set_state":
		fn = h.handleSetState
	case "/api/delete_game":
		fn = h.handleDeleteGame
	default:
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	fn(w, r)
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req NewGameRequest
	// 空请求体等于标准开局
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, errors.New("bad json"))
		return
	}

	var (
		s   *game.Session
		err error
	)
	if len(req.Setup) == 0 {
		s, err = h.games.NewGame()
	} else {
		var placements []xiangqi.Placement
		placements, err = fixture.Placements(req.Setup)
		if err == nil {
			s, err = h.games.NewGameFromPlacements(placements)
		}
	}
	if err != nil {
		h.logger.Warn().Err(err).Msg("New game rejected")
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, summaryToResponse(s.Summary(), nil))
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("bad json"))
		return
	}

	sum, err := h.games.Play(req.GameID, req.Move.From, req.Move.To)
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		// 走子被拒：局面不变，照样把当前局面返回
		writeJSON(w, http.StatusUnprocessableEntity, summaryToResponse(sum, err))
	default:
		writeJSON(w, http.StatusOK, summaryToResponse(sum, nil))
	}
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("bad json"))
		return
	}

	s, err := h.games.Get(req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryToResponse(s.Summary(), nil))
}

func (h *Handler) handleSetState(w http.ResponseWriter, r *http.Request) {
	var req SetStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("bad json"))
		return
	}

	state, err := xiangqi.ParseGameState(req.State)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sum, err := h.games.SetState(req.GameID, state)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, summaryToResponse(sum, nil))
}

func (h *Handler) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("bad json"))
		return
	}
	if err := h.games.Delete(req.GameID); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrTooManyGames):
		return http.StatusServiceUnavailable
	case errors.Is(err, xiangqi.ErrInvalidSetup), errors.Is(err, xiangqi.ErrInvalidState):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("writeJSON error")
	}
}
