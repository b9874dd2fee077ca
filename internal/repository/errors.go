package repository

import "errors"

var (
	// ErrAlreadyFinished is returned when an outcome is written to a run that
	// already has one.
	ErrAlreadyFinished = errors.New("challenge run already finished")
	// ErrAlreadyCompleted is returned when ending a session twice.
	ErrAlreadyCompleted = errors.New("session already completed")
	// ErrMatchChanged is returned when a match is no longer in progress on the
	// board the caller read.
	ErrMatchChanged = errors.New("match changed since it was read")
)
