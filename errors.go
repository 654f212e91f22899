// Package tilemm structured error types for better error handling
package tilemm

import (
	"errors"
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Invalid argument errors
	ErrTypeInvalidArg ErrorType = iota
	// A.Cols does not match B.Rows
	ErrTypeShapeMismatch
	// Input strides are not the contiguous row-major layout the kernel assumes
	ErrTypeLayoutViolation
	// A tile instance failed during a launch
	ErrTypeLaunchFailure
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Op      string // Operation that failed
	Message string // Human-readable message
	Err     error  // Underlying error if any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tilemm %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("tilemm %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Type. This lets callers
// match any error against the package sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeInvalidArg:
		return "InvalidArgument"
	case ErrTypeShapeMismatch:
		return "ShapeMismatch"
	case ErrTypeLayoutViolation:
		return "LayoutViolation"
	case ErrTypeLaunchFailure:
		return "LaunchFailure"
	default:
		return "Unknown"
	}
}

// Common error constructors

// NewInvalidArgError creates an invalid argument error
func NewInvalidArgError(op string, message string) error {
	return &Error{
		Type:    ErrTypeInvalidArg,
		Op:      op,
		Message: message,
	}
}

// NewShapeMismatchError creates a shape compatibility error
func NewShapeMismatchError(op string, message string) error {
	return &Error{
		Type:    ErrTypeShapeMismatch,
		Op:      op,
		Message: message,
	}
}

// NewLayoutViolationError creates a memory layout error
func NewLayoutViolationError(op string, message string) error {
	return &Error{
		Type:    ErrTypeLayoutViolation,
		Op:      op,
		Message: message,
	}
}

// NewLaunchFailureError creates a launch failure error
func NewLaunchFailureError(op string, message string, err error) error {
	return &Error{
		Type:    ErrTypeLaunchFailure,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Sentinels for use with errors.Is. Only the Type is compared.
var (
	ErrInvalidArg      = &Error{Type: ErrTypeInvalidArg}
	ErrShapeMismatch   = &Error{Type: ErrTypeShapeMismatch}
	ErrLayoutViolation = &Error{Type: ErrTypeLayoutViolation}
	ErrLaunchFailure   = &Error{Type: ErrTypeLaunchFailure}
)

// IsInvalidArgError checks if an error is an invalid argument error
func IsInvalidArgError(err error) bool {
	return errors.Is(err, ErrInvalidArg)
}

// IsShapeMismatch checks if an error is a shape mismatch
func IsShapeMismatch(err error) bool {
	return errors.Is(err, ErrShapeMismatch)
}

// IsLayoutViolation checks if an error is a layout violation
func IsLayoutViolation(err error) bool {
	return errors.Is(err, ErrLayoutViolation)
}

// IsLaunchFailure checks if an error is a launch failure
func IsLaunchFailure(err error) bool {
	return errors.Is(err, ErrLaunchFailure)
}
