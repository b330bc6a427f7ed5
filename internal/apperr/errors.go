package apperr

import "fmt"

// Validation error kinds.
const (
	KindType        = "type"
	KindRequirement = "requirement"
	KindValue       = "value"
	KindFormat      = "format"
)

// ValidationError is raised before any store access, for malformed or
// missing arguments.
type ValidationError struct {
	Kind    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(kind, field, message string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: message}
}

// Logic error codes, used by the API layer to pick a response status.
const (
	CodeNotFound       = "not_found"
	CodeConflict       = "conflict"
	CodeCredentials    = "credentials"
	CodeForbidden      = "forbidden"
	CodeStorage        = "storage"
	CodePartialFailure = "partial_failure"
)

// LogicError is raised for every domain-rule violation: not-found, ownership
// mismatch, duplicate-on-create and unexpected storage failures. Step is set
// only for partial_failure and names the cascade step that did not complete.
type LogicError struct {
	Code    string
	Message string
	Step    string
}

func (e *LogicError) Error() string {
	if e.Step != "" {
		return fmt.Sprintf("%s (failed step: %s)", e.Message, e.Step)
	}
	return e.Message
}

func NotFound(message string) *LogicError {
	return &LogicError{Code: CodeNotFound, Message: message}
}

func Conflict(message string) *LogicError {
	return &LogicError{Code: CodeConflict, Message: message}
}

func Credentials(message string) *LogicError {
	return &LogicError{Code: CodeCredentials, Message: message}
}

func Forbidden(message string) *LogicError {
	return &LogicError{Code: CodeForbidden, Message: message}
}

func Storage(message string) *LogicError {
	return &LogicError{Code: CodeStorage, Message: message}
}

// PartialFailure reports a cascade that stopped midway, leaving earlier
// steps applied.
func PartialFailure(step, message string) *LogicError {
	return &LogicError{Code: CodePartialFailure, Message: message, Step: step}
}
