// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package hdkey derives one-time child keys from a long-term key and a 256-bit
index.

The scheme follows BIP32 non-hardened derivation with two differences: the
index is a full 32-byte value, and root keys built from bare keys carry an
all-zero chain code.  The TITAN stealth protocol uses the hash of an ECDH
shared secret as the index, so a sender holding only the receiver's public
key (DerivePublic) and the receiver holding the private key (DerivePrivate)
arrive at the same child public key.

	parent := hdkey.NewPublic(receiverPub)
	child, err := hdkey.DerivePublic(parent, &index)
*/
package hdkey
