package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is. Every concrete error
// type in this package unwraps to exactly one of these.
var (
	ErrObjectNotFound  = errors.New("object not found")
	ErrValueIsInvalid  = errors.New("value is invalid")
	ErrValueIsRequired = errors.New("value is required")
	ErrConflict        = errors.New("conflict")
	ErrIntegrityFault  = errors.New("integrity fault")
	ErrAccessDenied    = errors.New("access denied")
)

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// ObjectNotFoundError indicates that an object could not be located by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a provided value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError indicates that a required value was missing or empty.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ConflictError indicates that an operation cannot proceed because of the
// current state of the system: an order not in the expected state, a
// transition that is not available, or a busy assembly lock. Conflicts are
// retryable from the caller's point of view.
type ConflictError struct {
	Reason string
	Cause  error
}

// NewConflictError creates a ConflictError without a cause.
func NewConflictError(reason string) *ConflictError {
	return &ConflictError{Reason: reason}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(reason string, cause error) *ConflictError {
	return &ConflictError{Reason: reason, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrConflict, sanitize(e.Reason), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrConflict, sanitize(e.Reason))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// IntegrityFaultError indicates corrupt or inconsistent upstream data, such as
// a purchasable entity assigned to no store. It is not a user error and
// retrying without fixing the data will not help.
type IntegrityFaultError struct {
	Reason string
	Cause  error
}

// NewIntegrityFaultError creates an IntegrityFaultError without a cause.
func NewIntegrityFaultError(reason string) *IntegrityFaultError {
	return &IntegrityFaultError{Reason: reason}
}

// NewIntegrityFaultErrorWithCause creates an IntegrityFaultError wrapping an underlying cause.
func NewIntegrityFaultErrorWithCause(reason string, cause error) *IntegrityFaultError {
	return &IntegrityFaultError{Reason: reason, Cause: cause}
}

func (e *IntegrityFaultError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrIntegrityFault, sanitize(e.Reason), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrIntegrityFault, sanitize(e.Reason))
}

func (e *IntegrityFaultError) Unwrap() error {
	return ErrIntegrityFault
}

// AccessDeniedError indicates that the caller lacks a required capability.
type AccessDeniedError struct {
	Capability string
}

// NewAccessDeniedError creates an AccessDeniedError for the named capability.
func NewAccessDeniedError(capability string) *AccessDeniedError {
	return &AccessDeniedError{Capability: capability}
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAccessDenied, sanitize(e.Capability))
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}
