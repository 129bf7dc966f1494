// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstate

import (
	"encoding/json"
	"fmt"
)

// MaxNameSize is the longest registrable name in bytes.
const MaxNameSize = 63

// IsValidName reports whether s may be registered as a name: 1 to
// MaxNameSize bytes, starting with a lowercase letter and otherwise made
// of lowercase letters, digits and '-'.  The test is bytewise; any
// non-ASCII byte fails it.
func IsValidName(s string) bool {
	if len(s) == 0 || len(s) > MaxNameSize {
		return false
	}
	if s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-':
		default:
			return false
		}
	}
	return true
}

// ValidateName returns an ErrInvalidName error when s is not a valid name.
func ValidateName(s string) error {
	if IsValidName(s) {
		return nil
	}

	var str string
	switch {
	case len(s) == 0:
		str = "name is empty"
	case len(s) > MaxNameSize:
		str = fmt.Sprintf("name is %d bytes, max %d", len(s),
			MaxNameSize)
	default:
		str = fmt.Sprintf("name %q must start with a-z and contain "+
			"only a-z, 0-9 and '-'", s)
	}
	return storeError(ErrInvalidName, str, nil)
}

// ValidateJSON returns an ErrInvalidJSON error when data is not a single
// well formed JSON value.
func ValidateJSON(data string) error {
	if !json.Valid([]byte(data)) {
		return storeError(ErrInvalidJSON, "name data is not valid "+
			"JSON", nil)
	}
	return nil
}
