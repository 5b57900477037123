package xiangqi

import "errors"

var (
	ErrGameOver     = errors.New("game is over")
	ErrSameSquare   = errors.New("start and end square are the same")
	ErrOffBoard     = errors.New("square is off the board")
	ErrEmptySquare  = errors.New("no piece on start square")
	ErrIllegalMove  = errors.New("destination is not a legal move for this piece")
	ErrWrongTurn    = errors.New("piece does not belong to the side to move")
	ErrInvalidState = errors.New("invalid game state")
	ErrInvalidSetup = errors.New("invalid setup")
)
