// Package apperr is the error taxonomy every service and repository
// surfaces to the HTTP boundary. Raw storage errors never leave the
// repository layer.
package apperr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	Conflict
	Forbidden
	Unauthorized
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the kind of err, or Internal for anything
// outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Postgres error codes gorm hands back through pgconn.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// FromStorage translates gorm / postgres failures into the taxonomy:
// missing rows become NotFound, unique-index losers become Conflict.
// A racing duplicate insert therefore surfaces as Conflict even when
// the application pre-check passed.
func FromStorage(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Wrap(NotFound, msg, err)
	}
	// dialector-translated constraint failures
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Wrap(Conflict, msg, err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return Wrap(NotFound, msg, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return Wrap(Conflict, msg, err)
		case pgForeignKeyViolation:
			return Wrap(NotFound, msg, err)
		}
	}
	return Wrap(Internal, msg, err)
}
