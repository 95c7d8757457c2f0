package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeInvalidReference = "INVALID_REFERENCE"
	CodeInvalidValue     = "INVALID_VALUE"
	CodeUnknown          = "UNKNOWN"
)

const (
	MessageNotFound         = "Registro no encontrado"
	MessageDuplicateKey     = "El registro ya existe"
	MessageInvalidReference = "El registro referencia un valor inexistente"
	MessageInvalidValue     = "El registro contiene un valor invalido"
	MessageUnknown          = "Error inesperado de base de datos"
)

// ErrNotFound is matched by errors.Is for any not-found Error.
var ErrNotFound = errors.New("store: not found")

// Error is a classified database failure. Message is safe to show to users;
// driver details stay in Err.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Code == CodeNotFound
}

func NewError(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func notFound() *Error {
	return NewError(CodeNotFound, MessageNotFound, nil)
}

// FromDBError classifies driver errors. nil stays nil.
func FromDBError(err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		return NewError(CodeNotFound, MessageNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return NewError(CodeConflict, MessageDuplicateKey, err)
		case "23503":
			return NewError(CodeInvalidReference, MessageInvalidReference, err)
		case "23514", "22P02":
			return NewError(CodeInvalidValue, MessageInvalidValue, err)
		default:
			return NewError(CodeUnknown, MessageUnknown, err)
		}
	}

	return NewError(CodeUnknown, MessageUnknown, err)
}
