package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

func newTestServer(t *testing.T, maxGames int) (http.Handler, *game.Manager) {
	t.Helper()
	games := game.NewManager(game.Options{MaxGames: maxGames, Logger: zerolog.Nop()})
	return NewServer(games, t.TempDir(), zerolog.Nop()), games
}

func post(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeGame(t *testing.T, rec *httptest.ResponseRecorder) GameResponse {
	t.Helper()
	var resp GameResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func findPiece(resp GameResponse, at string) (PieceDTO, bool) {
	for _, p := range resp.Pieces {
		if p.At == at {
			return p, true
		}
	}
	return PieceDTO{}, false
}

func TestNewGameStandard(t *testing.T) {
	h, _ := newTestServer(t, 10)
	rec := post(t, h, "/api/new_game", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	resp := decodeGame(t, rec)
	assert.NotEmpty(t, resp.GameID)
	assert.True(t, resp.Accepted)
	assert.Equal(t, "UNFINISHED", resp.State)
	assert.Equal(t, "red", resp.ToMove)
	assert.Len(t, resp.Pieces, 32)
	assert.Empty(t, resp.History)

	horse, ok := findPiece(resp, "b1")
	require.True(t, ok)
	assert.Equal(t, "horse", horse.Type)
	assert.Equal(t, "red", horse.Side)
	assert.ElementsMatch(t, []string{"a3", "c3"}, horse.Moves)
}

func TestNewGameWithSetupAndPlay(t *testing.T) {
	h, _ := newTestServer(t, 10)
	rec := post(t, h, "/api/new_game", map[string]any{
		"setup": []map[string]string{
			{"side": "red", "type": "general", "at": "d1"},
			{"side": "black", "type": "general", "at": "e10"},
			{"side": "black", "type": "chariot", "at": "e9"},
			{"side": "black", "type": "chariot", "at": "f9"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decodeGame(t, rec)
	require.Len(t, created.Pieces, 4)

	rec = post(t, h, "/api/play", PlayRequest{GameID: created.GameID, Move: MoveDTO{From: "e9", To: "d9"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	played := decodeGame(t, rec)
	assert.True(t, played.Accepted)
	assert.True(t, played.InCheck.Red)
	assert.False(t, played.InCheck.Black)
	require.Len(t, played.History, 1)
	assert.Equal(t, HistoryDTO{From: "e9", To: "d9", Side: "black", Type: "chariot", Check: CheckDTO{Red: true}}, played.History[0])

	chariot, ok := findPiece(played, "d9")
	require.True(t, ok)
	assert.Contains(t, chariot.Moves, "e9")
	assert.NotEqual(t, created.Hash, played.Hash)

	rec = post(t, h, "/api/state", StateRequest{GameID: created.GameID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, played, decodeGame(t, rec))
}

func TestPlayRejected(t *testing.T) {
	h, _ := newTestServer(t, 10)
	created := decodeGame(t, post(t, h, "/api/new_game", nil))

	tests := []struct {
		name string
		move MoveDTO
	}{
		{"off board", MoveDTO{From: "x1", To: "y1"}},
		{"empty square", MoveDTO{From: "e5", To: "e6"}},
		{"no piece on e9", MoveDTO{From: "e9", To: "d9"}},
		{"illegal", MoveDTO{From: "a1", To: "a5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, "/api/play", PlayRequest{GameID: created.GameID, Move: tt.move})
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			resp := decodeGame(t, rec)
			assert.False(t, resp.Accepted)
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, created.Hash, resp.Hash)
			assert.Equal(t, created.Pieces, resp.Pieces)
		})
	}
}

func TestGameNotFound(t *testing.T) {
	h, _ := newTestServer(t, 10)
	for _, path := range []string{"/api/play", "/api/state", "/api/set_state", "/api/delete_game"} {
		rec := post(t, h, path, map[string]any{
			"game_id": "f47ac10b-58cc-4372-a567-0e02b2c3d479",
			"state":   "STALEMATE",
			"move":    MoveDTO{From: "a1", To: "a2"},
		})
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestSetStateEndpoint(t *testing.T) {
	h, _ := newTestServer(t, 10)
	created := decodeGame(t, post(t, h, "/api/new_game", nil))

	rec := post(t, h, "/api/set_state", SetStateRequest{GameID: created.GameID, State: "DRAW"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h, "/api/set_state", SetStateRequest{GameID: created.GameID, State: "RED_WON"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "RED_WON", decodeGame(t, rec).State)

	rec = post(t, h, "/api/play", PlayRequest{GameID: created.GameID, Move: MoveDTO{From: "a1", To: "a2"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeGame(t, rec).Error, xiangqi.ErrGameOver.Error())
}

func TestBadRequests(t *testing.T) {
	h, _ := newTestServer(t, 10)

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))

	req = httptest.NewRequest(http.MethodPost, "/api/play", bytes.NewBufferString("{not json"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = post(t, h, "/api/new_game", map[string]any{
		"setup": []map[string]string{{"side": "red", "type": "general", "at": "e1"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTooManyGamesAndDelete(t *testing.T) {
	h, games := newTestServer(t, 1)
	created := decodeGame(t, post(t, h, "/api/new_game", nil))

	rec := post(t, h, "/api/new_game", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = post(t, h, "/api/delete_game", StateRequest{GameID: created.GameID})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, games.Len())

	rec = post(t, h, "/api/new_game", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStaticRoutes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>xiangqi</h1>"), 0644))
	games := game.NewManager(game.Options{MaxGames: 1, Logger: zerolog.Nop()})
	h := NewServer(games, dir, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/web/", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/web/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "xiangqi")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
