// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cfgutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/btsuite/btsledger/withdraw"
	"github.com/stretchr/testify/require"
)

func TestShareFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    withdraw.ShareType
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: "1500", want: 1500},
		{in: " 42 ", want: 42},
		{in: "-1", wantErr: true},
		{in: "1.5", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, test := range tests {
		f := NewShareFlag(7)
		err := f.UnmarshalFlag(test.in)
		if test.wantErr {
			require.Error(t, err, test.in)
			require.Equal(t, withdraw.ShareType(7), f.ShareType)
			continue
		}
		require.NoError(t, err, test.in)
		require.Equal(t, test.want, f.ShareType)

		s, err := f.MarshalFlag()
		require.NoError(t, err)
		require.NoError(t, f.UnmarshalFlag(s))
		require.Equal(t, test.want, f.ShareType)
	}
}

func TestExplicitString(t *testing.T) {
	t.Parallel()

	s := NewExplicitString("default")
	require.False(t, s.ExplicitlySet())
	require.Equal(t, "fallback", s.OrElse("fallback"))
	v, err := s.MarshalFlag()
	require.NoError(t, err)
	require.Equal(t, "default", v)

	// An explicit empty value still wins over the fallback.
	require.NoError(t, s.UnmarshalFlag(""))
	require.True(t, s.ExplicitlySet())
	require.Equal(t, "", s.OrElse("fallback"))

	require.NoError(t, s.UnmarshalFlag("default"))
	require.Equal(t, "default", s.Value)
	require.Equal(t, "default", s.OrElse("fallback"))
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "store.db")
	require.NoError(t, os.WriteFile(file, nil, 0600))

	tests := []struct {
		name    string
		path    string
		want    bool
		wantErr bool
	}{
		{name: "regular file", path: file, want: true},
		{name: "missing", path: filepath.Join(dir, "missing")},
		{name: "directory", path: dir, wantErr: true},
	}
	for _, test := range tests {
		exists, err := FileExists(test.path)
		if test.wantErr {
			require.Error(t, err, test.name)
			continue
		}
		require.NoError(t, err, test.name)
		require.Equal(t, test.want, exists, test.name)
	}
}
