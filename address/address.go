// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"bytes"
	"crypto/sha512"
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/ripemd160"
)

const (
	// Size is the number of bytes in an address hash.
	Size = ripemd160.Size

	// Prefix is prepended to the base58 text form of every address.
	Prefix = "BTS"

	checksumSize = 4
)

var (
	// ErrChecksumMismatch describes an error where decoding failed due
	// to a bad checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrInvalidFormat describes an error where an address string is
	// missing the prefix, is not valid base58 or has the wrong length.
	ErrInvalidFormat = errors.New("invalid address format")
)

// Address is the claim target of a balance: the ripemd160 of the sha512 of
// either a compressed public key or a serialized withdraw condition.  The
// zero value is the null address and never names a real claimant.
type Address [Size]byte

// hash160 returns ripemd160(sha512(b)).
func hash160(b []byte) [Size]byte {
	sum := sha512.Sum512(b)
	h := ripemd160.New()
	h.Write(sum[:])

	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// FromBytes returns the address of arbitrary serialized data.  It is used to
// name outputs that are not controlled by a single key.
func FromBytes(b []byte) Address {
	return Address(hash160(b))
}

// FromPubKey returns the address of a public key.
func FromPubKey(pub *btcec.PublicKey) Address {
	return FromBytes(pub.SerializeCompressed())
}

// FromPublicKey returns the address of an encoded public key.
func FromPublicKey(pub PublicKey) Address {
	return FromBytes(pub[:])
}

// IsNull returns whether the address is the null address.
func (a Address) IsNull() bool {
	return a == Address{}
}

// checksum returns the first four bytes of ripemd160(a).
func (a Address) checksum() [checksumSize]byte {
	h := ripemd160.New()
	h.Write(a[:])

	var sum [checksumSize]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// String returns the base58 text form of the address.
func (a Address) String() string {
	sum := a.checksum()

	b := make([]byte, 0, Size+checksumSize)
	b = append(b, a[:]...)
	b = append(b, sum[:]...)
	return Prefix + base58.Encode(b)
}

// Decode parses the text form of an address.
func Decode(s string) (Address, error) {
	var a Address

	if !strings.HasPrefix(s, Prefix) {
		return a, ErrInvalidFormat
	}
	decoded := base58.Decode(s[len(Prefix):])
	if len(decoded) != Size+checksumSize {
		return a, ErrInvalidFormat
	}

	copy(a[:], decoded[:Size])
	sum := a.checksum()
	if !bytes.Equal(sum[:], decoded[Size:]) {
		return Address{}, ErrChecksumMismatch
	}
	return a, nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	decoded, err := Decode(string(text))
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}
