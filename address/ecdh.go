// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"crypto/sha512"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btsuite/btsledger/internal/zero"
)

// SharedSecret performs ECDH between priv and pub and returns the sha512 of
// the x coordinate of the shared point:
//
//	s := sha512(x(k*P))
//
// SharedSecret(a, B) equals SharedSecret(b, A).  The caller owns the
// returned secret and should clear it with zero.Bytea64.
func SharedSecret(priv *btcec.PrivateKey, pub *btcec.PublicKey) *[64]byte {
	x := btcec.GenerateSharedSecret(priv, pub)
	defer zero.Bytes(x)

	secret := sha512.Sum512(x)
	return &secret
}
