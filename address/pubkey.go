// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

// PublicKeySize is the length of a compressed secp256k1 public key.
const PublicKeySize = btcec.PubKeyBytesLenCompressed

// ErrInvalidPublicKey describes an encoded public key that is not a valid
// compressed curve point.
var ErrInvalidPublicKey = errors.New("invalid public key")

// PublicKey is the compressed encoding of a secp256k1 public key as it
// appears on the wire.  Holding the encoding rather than the parsed point
// keeps values comparable and re-encoding bit-exact.
type PublicKey [PublicKeySize]byte

// NewPublicKey returns the encoding of pub.
func NewPublicKey(pub *btcec.PublicKey) PublicKey {
	var pk PublicKey
	copy(pk[:], pub.SerializeCompressed())
	return pk
}

// ParsePublicKey validates b as a compressed public key and returns its
// encoding.
func ParsePublicKey(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeySize {
		return pk, fmt.Errorf("%w: length %d", ErrInvalidPublicKey,
			len(b))
	}
	if _, err := btcec.ParsePubKey(b); err != nil {
		return pk, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	copy(pk[:], b)
	return pk, nil
}

// Key parses the encoding into a curve point.
func (pk PublicKey) Key() (*btcec.PublicKey, error) {
	pub, err := btcec.ParsePubKey(pk[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return pub, nil
}

// String returns the hex encoding of the key.
func (pk PublicKey) String() string {
	return hex.EncodeToString(pk[:])
}

// MarshalText implements encoding.TextMarshaler.
func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	parsed, err := ParsePublicKey(b)
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}
