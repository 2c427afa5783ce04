package apperrors

import "fmt"

// ValidationError indicates missing or malformed user input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates that a referenced entity does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " no encontrado" }

// NotFound builds a NotFoundError for a named entity, e.g. "Usuario".
func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// DuplicateError indicates a uniqueness violation (email already registered,
// favorito already present).
type DuplicateError struct {
	Msg string
}

func (e *DuplicateError) Error() string { return e.Msg }

// Duplicate builds a DuplicateError with the given message.
func Duplicate(msg string) error {
	return &DuplicateError{Msg: msg}
}

// InvalidTransitionError indicates an illegal order status change.
type InvalidTransitionError struct {
	From, To string
}

func (e *InvalidTransitionError) Error() string {
	return "transición de estado inválida: " + e.From + " → " + e.To
}

// InvalidTransition builds an InvalidTransitionError.
func InvalidTransition(from, to string) error {
	return &InvalidTransitionError{From: from, To: to}
}
