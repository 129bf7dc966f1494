// Copyright (c) 2014-2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkey

// References:
//   [BIP32]: BIP0032 - Hierarchical Deterministic Wallets
//   https://github.com/bitcoin/bips/blob/master/bip-0032.mediawiki

import (
	"crypto/hmac"
	"crypto/sha512"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btsuite/btsledger/internal/zero"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// IndexSize is the size of a derivation index.  Unlike BIP32 the index
	// is a full 256-bit value since it is always a hash of a shared secret.
	IndexSize = 32

	// ChainCodeSize is the size of the chain code carried by every
	// extended key.
	ChainCodeSize = 32
)

var (
	// ErrDeriveFromPublic describes an error in which the caller
	// attempted to derive a private child key from a public parent.
	ErrDeriveFromPublic = errors.New("cannot derive a private child " +
		"from a public extended key")

	// ErrNotPrivExtKey describes an error in which the caller attempted
	// to extract a private key from a public extended key.
	ErrNotPrivExtKey = errors.New("unable to create private keys from a " +
		"public extended key")

	// ErrInvalidChild describes an error in which the child at a specific
	// index is invalid due to the derived key falling outside of the valid
	// range for secp256k1 private keys.  This error indicates the caller
	// should pick another index.
	ErrInvalidChild = errors.New("the extended key at this index is invalid")
)

// Index selects a child of an extended key.
type Index [IndexSize]byte

// ExtendedKey houses all the information needed to support a hierarchical
// deterministic extended key.  Only the two derivation modes used by the
// stealth protocol are supported: public derivation, which needs nothing
// more than the parent public key, and private derivation.  For a given
// parent and index both produce the same child public key.
type ExtendedKey struct {
	key       []byte // This will be the pubkey for extended pub keys
	pubKey    []byte // This will only be set for extended priv keys
	chainCode [ChainCodeSize]byte
	isPrivate bool
}

// NewPublic returns a root extended key for a bare public key.  The chain
// code of a root key is all zeros so that anyone knowing only pub can build
// the same root.
func NewPublic(pub *btcec.PublicKey) *ExtendedKey {
	return &ExtendedKey{
		key: pub.SerializeCompressed(),
	}
}

// NewPrivate returns a root extended key for a bare private key.  Its public
// counterpart is NewPublic(priv.PubKey()).
func NewPrivate(priv *btcec.PrivateKey) *ExtendedKey {
	return &ExtendedKey{
		key:       priv.Serialize(),
		pubKey:    priv.PubKey().SerializeCompressed(),
		isPrivate: true,
	}
}

// IsPrivate returns whether or not the extended key is a private extended
// key.
func (k *ExtendedKey) IsPrivate() bool {
	return k.isPrivate
}

// ChainCode returns the chain code of the extended key.
func (k *ExtendedKey) ChainCode() [ChainCodeSize]byte {
	return k.chainCode
}

// pubKeyBytes returns bytes for the serialized compressed public key
// associated with this extended key.
func (k *ExtendedKey) pubKeyBytes() []byte {
	if !k.isPrivate {
		return k.key
	}
	return k.pubKey
}

// Neuter returns a new extended public key from this extended key.  The
// same extended key will be returned unaltered if it is already an extended
// public key.
func (k *ExtendedKey) Neuter() *ExtendedKey {
	if !k.isPrivate {
		return k
	}

	pub := make([]byte, len(k.pubKey))
	copy(pub, k.pubKey)
	return &ExtendedKey{
		key:       pub,
		chainCode: k.chainCode,
	}
}

// ECPubKey converts the extended key to a btcec public key and returns it.
func (k *ExtendedKey) ECPubKey() (*btcec.PublicKey, error) {
	return btcec.ParsePubKey(k.pubKeyBytes())
}

// ECPrivKey converts the extended key to a btcec private key and returns it.
// As you might imagine this is only possible if the extended key is a
// private extended key.
func (k *ExtendedKey) ECPrivKey() (*btcec.PrivateKey, error) {
	if !k.isPrivate {
		return nil, ErrNotPrivExtKey
	}

	privKey, _ := btcec.PrivKeyFromBytes(k.key)
	return privKey, nil
}

// Zero manually clears all fields and bytes in the extended key.  This can
// be used to explicitly clear key material from memory for enhanced security
// against memory scraping.
func (k *ExtendedKey) Zero() {
	zero.Bytes(k.key)
	zero.Bytes(k.pubKey)
	zero.Bytea32(&k.chainCode)
	k.key = nil
	k.pubKey = nil
	k.isPrivate = false
}

// tweak computes the left half of HMAC-SHA512(chainCode, serP(K) || index)
// as a scalar along with the child chain code taken from the right half.
// The public key is always used as HMAC input so that private and public
// derivation agree.
func (k *ExtendedKey) tweak(index *Index) (*secp256k1.ModNScalar,
	[ChainCodeSize]byte, error) {

	var childChainCode [ChainCodeSize]byte

	hmac512 := hmac.New(sha512.New, k.chainCode[:])
	hmac512.Write(k.pubKeyBytes())
	hmac512.Write(index[:])
	ilr := hmac512.Sum(nil)
	defer zero.Bytes(ilr)

	// Split "I" into two 32-byte sequences Il and Ir where:
	//   Il = intermediate key used to derive the child
	//   Ir = child chain code
	il := ilr[:len(ilr)/2]
	copy(childChainCode[:], ilr[len(ilr)/2:])

	// Both derived public or private keys rely on treating the left 32-byte
	// sequence calculated above (Il) as a 256-bit integer that must be
	// within the valid range for a secp256k1 private key.  There is a small
	// chance (< 1 in 2^127) this condition will not hold, and in that case,
	// a child extended key can't be created for this index and the caller
	// should simply increment to the next index.
	var ilNum secp256k1.ModNScalar
	if overflow := ilNum.SetByteSlice(il); overflow || ilNum.IsZero() {
		zero.Scalar(&ilNum)
		return nil, childChainCode, ErrInvalidChild
	}

	return &ilNum, childChainCode, nil
}
