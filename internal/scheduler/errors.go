package scheduler

import "errors"

var (
	// ErrInvalidInput marks malformed client input; nothing was mutated.
	ErrInvalidInput = errors.New("invalid input")

	ErrUnknownUser = errors.New("unknown user")

	// ErrNoOpenInteraction is returned when a survey targets no unanswered
	// interaction.
	ErrNoOpenInteraction = errors.New("no open interaction")

	ErrInvalidToken = errors.New("invalid survey token")
)
