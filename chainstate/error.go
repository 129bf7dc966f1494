// Copyright (c) 2014-2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstate

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific StateError.
const (
	// ErrDatabase indicates an error with the underlying property store.
	// When this error code is set, the Err field of the StateError will
	// be set to the underlying error returned from the store.
	ErrDatabase ErrorCode = iota

	// ErrDecode indicates a stored property value that could not be
	// decoded.
	ErrDecode

	// ErrInvalidName indicates a name that does not satisfy IsValidName.
	ErrInvalidName

	// ErrInvalidJSON indicates name data that is not valid JSON.
	ErrInvalidJSON

	// ErrOverflow indicates an identifier counter that cannot be
	// incremented without leaving the range of its type.
	ErrOverflow

	// ErrTooManyDelegates indicates an active delegate list longer than
	// MaxActiveDelegates.
	ErrTooManyDelegates
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrDatabase:    "ErrDatabase",
	ErrDecode:      "ErrDecode",
	ErrInvalidName: "ErrInvalidName",
	ErrInvalidJSON: "ErrInvalidJSON",
	ErrOverflow:    "ErrOverflow",

	ErrTooManyDelegates: "ErrTooManyDelegates",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// StateError provides a single type for errors that can happen while
// reading or writing chain properties.
type StateError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error, optional
}

// Error satisfies the error interface and prints human-readable errors.
func (e StateError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error, if any.
func (e StateError) Unwrap() error {
	return e.Err
}

func storeError(c ErrorCode, desc string, err error) StateError {
	return StateError{ErrorCode: c, Description: desc, Err: err}
}

// IsError returns whether err is a StateError with a matching error code.
func IsError(err error, code ErrorCode) bool {
	var e StateError
	return errors.As(err, &e) && e.ErrorCode == code
}
