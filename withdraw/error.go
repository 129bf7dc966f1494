// Copyright (c) 2014-2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package withdraw

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific ConditionError.
const (
	// ErrTypeMismatch indicates a caller asked for a variant that
	// disagrees with the type stored in the condition.  It is always a
	// caller error.
	ErrTypeMismatch ErrorCode = iota

	// ErrDecode indicates a malformed or unrecognized wire or JSON
	// encoding.  Nothing is applied when this error is returned.
	ErrDecode

	// ErrValidation indicates a value that cannot be encoded, such as a
	// payload larger than MaxDataSize.
	ErrValidation
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrTypeMismatch: "ErrTypeMismatch",
	ErrDecode:       "ErrDecode",
	ErrValidation:   "ErrValidation",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// ConditionError provides a single type for errors that can happen while
// building, decoding or inspecting withdraw conditions.
type ConditionError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e ConditionError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error, if any.
func (e ConditionError) Unwrap() error {
	return e.Err
}

// conditionError creates a ConditionError given a set of arguments.
func conditionError(c ErrorCode, desc string, err error) ConditionError {
	return ConditionError{ErrorCode: c, Description: desc, Err: err}
}

// IsError returns whether err is a ConditionError with a matching error
// code.
func IsError(err error, code ErrorCode) bool {
	var e ConditionError
	return errors.As(err, &e) && e.ErrorCode == code
}
