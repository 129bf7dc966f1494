// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

// ExplicitString is a string option that remembers whether the user gave it.
// Backends such as postgres have no sensible default data source, so the
// loader must tell an omitted --dsn apart from one set to the empty string.
type ExplicitString struct {
	Value         string
	explicitlySet bool
}

// NewExplicitString returns an unset option holding defaultValue.
func NewExplicitString(defaultValue string) *ExplicitString {
	return &ExplicitString{Value: defaultValue}
}

// ExplicitlySet reports whether the option was parsed from a flag or the
// config file.
func (e *ExplicitString) ExplicitlySet() bool { return e.explicitlySet }

// OrElse returns the parsed value when the option was given and fallback
// otherwise.
func (e *ExplicitString) OrElse(fallback string) string {
	if e.explicitlySet {
		return e.Value
	}
	return fallback
}

// MarshalFlag implements the flags.Marshaler interface.
func (e *ExplicitString) MarshalFlag() (string, error) { return e.Value, nil }

// UnmarshalFlag implements the flags.Unmarshaler interface.
func (e *ExplicitString) UnmarshalFlag(value string) error {
	e.Value = value
	e.explicitlySet = true
	return nil
}
