// Package derrors provides coded domain errors. Services translate store and
// infrastructure failures into these so transports can map them to a wire
// status without inspecting error text.
//
// All codes are synchronous, recoverable-by-caller failures: a rejected
// request aborts only the current logical operation, never the process.
package derrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	// Registry lifecycle failures.
	CodeNameTaken     Code = "name_taken"
	CodeNotOwner      Code = "not_owner"
	CodeNoSuchToken   Code = "no_such_token"
	CodeAlreadyExists Code = "already_exists"
	CodeNoStake       Code = "no_stake"
	CodeZeroAddress   Code = "zero_address"
	CodeUnauthorized  Code = "unauthorized"
	CodeReentrantCall Code = "reentrant_call"

	// Ambient failures shared by all modules.
	CodeBadRequest Code = "bad_request"
	CodeNotFound   Code = "not_found"
	CodeConflict   Code = "conflict"
	CodeInternal   Code = "internal"
)

// Error is a domain error with a stable code and a human-readable reason.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a domain error with the given code and reason text.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted reason text.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and reason to an underlying error, preserving the
// cause chain for errors.Is/As.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or any error in its chain) carries the code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.cause
	}
	return false
}

// Is is shorthand for HasCode; reads naturally at call sites.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost domain code on err, or CodeInternal when err
// carries no domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the outermost reason text, or a generic one.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// ToHTTPStatus maps a domain code to an HTTP status. Transport-level only;
// services must never branch on status codes.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNameTaken, CodeAlreadyExists, CodeConflict, CodeReentrantCall:
		return http.StatusConflict
	case CodeNotOwner, CodeUnauthorized:
		return http.StatusForbidden
	case CodeNoSuchToken, CodeNoStake, CodeNotFound:
		return http.StatusNotFound
	case CodeZeroAddress, CodeBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
