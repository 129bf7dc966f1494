// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package address implements the claim addresses and key encodings shared by
withdraw conditions and the TITAN stealth payment protocol.

An Address is ripemd160(sha512(data)).  When data is a compressed public key
the address is claimable by a signature from that key; when data is a
serialized withdraw condition the address only names the output.

The package also provides the ECDH primitive used by TITAN.  Secrets are
returned as fixed size arrays so callers can clear them with the zero
package once they are done.
*/
package address
