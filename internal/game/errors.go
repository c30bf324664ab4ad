package game

import "errors"

var (
	// ErrInvalidPosition is returned when a declaration names a slot off the grid
	ErrInvalidPosition = errors.New("position out of range")
	// ErrInvalidPlayer is returned for player indices other than 0 and 1
	ErrInvalidPlayer = errors.New("player index out of range")
	// ErrGameFinished is returned for declarations after the game has ended
	ErrGameFinished = errors.New("game is finished")
)
