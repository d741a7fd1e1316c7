package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrUnauthorized = errors.New("unauthorized") // 401
	ErrValidation   = errors.New("validation")   // 400
	ErrConflict     = errors.New("conflict")     // 400
	ErrNotFound     = errors.New("not found")    // 404
)

// Error carries a client-facing message for one of the sentinel kinds.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Kind }

func newErr(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func validation(msg string) error { return newErr(ErrValidation, msg) }
func conflict(msg string) error   { return newErr(ErrConflict, msg) }
func notFound(msg string) error   { return newErr(ErrNotFound, msg) }

// Message returns the client-facing text of err, or "" for internal errors.
func Message(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Msg
	}
	return ""
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
