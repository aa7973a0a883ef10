package apperror

import "errors"

var (
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrInvalidStep      = errors.New("invalid history step")
	ErrInvalidOrder     = errors.New("invalid history order")
	ErrSessionNotFound  = errors.New("session not found")
	ErrTooManySessions  = errors.New("too many active sessions")
	ErrUnknownAction    = errors.New("unknown action")
	ErrMalformedRequest = errors.New("malformed request")
)
