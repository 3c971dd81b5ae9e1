package services

import "errors"

// Core error taxonomy. Every error is terminal for the request; handlers map
// each sentinel to an HTTP status.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("already in a terminal state")
	ErrSlotsExhausted     = errors.New("no open worker slots remaining")
	ErrInsufficientFunds  = errors.New("insufficient coin balance")
	ErrForbidden          = errors.New("forbidden")
	ErrPendingSubmissions = errors.New("task has pending submissions")
	ErrInvalidInput       = errors.New("invalid input")
)
