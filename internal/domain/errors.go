package domain

import "errors"

var (
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrTooManyAttempts = errors.New("too many attempts")
)

// Error 携带对外的简短提示，Is 仍可匹配到哨兵错误
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func Conflict(msg string) error     { return &Error{Kind: ErrConflict, Msg: msg} }
func Unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Msg: msg} }
func NotFound(msg string) error     { return &Error{Kind: ErrNotFound, Msg: msg} }
func TooManyAttempts(msg string) error {
	return &Error{Kind: ErrTooManyAttempts, Msg: msg}
}
