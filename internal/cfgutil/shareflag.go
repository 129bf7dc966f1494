// Copyright (c) 2015-2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"strconv"
	"strings"

	"github.com/btsuite/btsledger/withdraw"
)

// ShareFlag embeds a withdraw.ShareType and implements the flags.Marshaler
// and Unmarshaler interfaces so it can be used as a config struct field.
type ShareFlag struct {
	withdraw.ShareType
}

// NewShareFlag creates a ShareFlag with a default withdraw.ShareType.
func NewShareFlag(defaultValue withdraw.ShareType) *ShareFlag {
	return &ShareFlag{defaultValue}
}

// MarshalFlag satisfies the flags.Marshaler interface.
func (s *ShareFlag) MarshalFlag() (string, error) {
	return strconv.FormatInt(int64(s.ShareType), 10), nil
}

// UnmarshalFlag satisfies the flags.Unmarshaler interface.  Amounts are
// whole shares and may not be negative.
func (s *ShareFlag) UnmarshalFlag(value string) error {
	value = strings.TrimSpace(value)
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return err
	}
	if n < 0 {
		return strconv.ErrRange
	}
	s.ShareType = withdraw.ShareType(n)
	return nil
}
