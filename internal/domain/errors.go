package domain

import "errors"

var (
	// ErrValidation wraps any create/update rejected for missing or
	// inconsistent input. Callers test with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrNoCards is returned when a session selection matches no cards.
	ErrNoCards = errors.New("no cards available for this session")

	// ErrNotFlipped is returned when a card is marked before its
	// definition has been shown.
	ErrNotFlipped = errors.New("card must be flipped before marking")

	// ErrUnmarked is returned when advancing past a card that has not
	// been marked correct or incorrect.
	ErrUnmarked = errors.New("mark correct/incorrect to continue")

	// ErrSessionOver is returned for operations on a finished session.
	ErrSessionOver = errors.New("session already finished")
)
