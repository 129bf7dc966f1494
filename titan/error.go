// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package titan

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific MemoError.
const (
	// ErrMessageTooLong indicates a memo message larger than
	// MemoMessageSize.
	ErrMessageTooLong ErrorCode = iota

	// ErrDerivation indicates the one-time key could not be derived from
	// the shared secret.  This happens with negligible probability and a
	// sender should retry with a fresh one-time key.
	ErrDerivation

	// ErrDecrypt indicates an output addressed to the receiver whose memo
	// could not be decrypted or decoded.
	ErrDecrypt

	// ErrInvalidKey indicates a public key carried by an output or a memo
	// is not a valid curve point.
	ErrInvalidKey
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrMessageTooLong: "ErrMessageTooLong",
	ErrDerivation:     "ErrDerivation",
	ErrDecrypt:        "ErrDecrypt",
	ErrInvalidKey:     "ErrInvalidKey",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// MemoError provides a single type for errors that can happen while
// building or opening stealth outputs.
type MemoError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e MemoError) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error, if any.
func (e MemoError) Unwrap() error {
	return e.Err
}

// memoError creates a MemoError given a set of arguments.
func memoError(c ErrorCode, desc string, err error) MemoError {
	return MemoError{ErrorCode: c, Description: desc, Err: err}
}

// IsError returns whether err is a MemoError with a matching error code.
func IsError(err error, code ErrorCode) bool {
	var e MemoError
	return errors.As(err, &e) && e.ErrorCode == code
}
