package httpserver

import (
	"strconv"

	"xiangqi/internal/fixture"
	"xiangqi/internal/server/game"
	"xiangqi/internal/xiangqi"
)

// 坐标一律是 "e9" 这样的字符串

type MoveDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// NewGame 请求；setup 为空时用标准开局
type NewGameRequest struct {
	Setup []fixture.PieceRecord `json:"setup,omitempty"`
}

type PlayRequest struct {
	GameID string  `json:"game_id"`
	Move   MoveDTO `json:"move"`
}

type StateRequest struct {
	GameID string `json:"game_id"`
}

type SetStateRequest struct {
	GameID string `json:"game_id"`
	State  string `json:"state"` // UNFINISHED / RED_WON / BLACK_WON / STALEMATE
}

type PieceDTO struct {
	ID    string   `json:"id"`
	Side  string   `json:"side"`
	Type  string   `json:"type"`
	At    string   `json:"at"`
	Moves []string `json:"moves"`
}

type CheckDTO struct {
	Red   bool `json:"red"`
	Black bool `json:"black"`
}

type HistoryDTO struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Side     string   `json:"side"`
	Type     string   `json:"type"`
	Captured string   `json:"captured,omitempty"`
	Check    CheckDTO `json:"check"`
}

// GameResponse 所有接口返回同一个结构；走子被拒时 accepted=false，error 写原因
type GameResponse struct {
	GameID   string       `json:"game_id"`
	Accepted bool         `json:"accepted"`
	Error    string       `json:"error,omitempty"`
	State    string       `json:"state"`
	ToMove   string       `json:"to_move"`
	InCheck  CheckDTO     `json:"in_check"`
	Pieces   []PieceDTO   `json:"pieces"`
	History  []HistoryDTO `json:"history"`
	Board    string       `json:"board"`
	Hash     string       `json:"hash"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func squaresToDTO(sqs []xiangqi.Square) []string {
	out := make([]string, len(sqs))
	for i, sq := range sqs {
		out[i] = sq.String()
	}
	return out
}

func pieceToDTO(p xiangqi.PieceView) PieceDTO {
	return PieceDTO{
		ID:    p.ID.String(),
		Side:  p.Side.String(),
		Type:  p.Archetype.String(),
		At:    p.Position.String(),
		Moves: squaresToDTO(p.Moves),
	}
}

func historyToDTO(rec xiangqi.MoveRecord) HistoryDTO {
	h := HistoryDTO{
		From:  rec.From.String(),
		To:    rec.To.String(),
		Side:  rec.Side.String(),
		Type:  rec.Archetype.String(),
		Check: CheckDTO{Red: rec.Check[xiangqi.Red], Black: rec.Check[xiangqi.Black]},
	}
	if rec.Captured != xiangqi.ArchetypeNone {
		h.Captured = rec.Captured.String()
	}
	return h
}

func summaryToResponse(sum game.Summary, err error) GameResponse {
	resp := GameResponse{
		GameID:   sum.ID,
		Accepted: err == nil,
		State:    sum.State.String(),
		ToMove:   sum.ToMove.String(),
		InCheck:  CheckDTO{Red: sum.InCheck[xiangqi.Red], Black: sum.InCheck[xiangqi.Black]},
		Pieces:   make([]PieceDTO, 0, len(sum.Pieces)),
		History:  make([]HistoryDTO, 0, len(sum.History)),
		Board:    sum.Board,
		Hash:     strconv.FormatUint(sum.Hash, 16),
	}
	if err != nil {
		resp.Error = err.Error()
	}
	for _, p := range sum.Pieces {
		resp.Pieces = append(resp.Pieces, pieceToDTO(p))
	}
	for _, rec := range sum.History {
		resp.History = append(resp.History, historyToDTO(rec))
	}
	return resp
}
