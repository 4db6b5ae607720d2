package game

import "errors"

var (
	// ErrInsufficientContent means the question bank lacks a candidate
	// for at least one ladder level, so no game can be built
	ErrInsufficientContent = errors.New("not enough questions to build a ladder")

	// ErrHelpAlreadyUsed means the requested lifeline was already spent
	ErrHelpAlreadyUsed = errors.New("help already used in this game")

	// ErrGameFinished means a mutating call was rejected because the game
	// already reached a terminal state
	ErrGameFinished = errors.New("game is already finished")

	// ErrUnknownHelp means the requested lifeline kind does not exist
	ErrUnknownHelp = errors.New("unknown help kind")
)
