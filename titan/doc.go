// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package titan implements TITAN stealth payments on top of the ByName
withdraw condition.

A sender who knows only a receiver's long-term public key can place funds
under a one-time address that nobody without the ECDH shared secret can link
to the receiver, and attach a short memo.  There is no handshake: the
receiver finds payments by trying Decrypt on every ByName output with every
key it holds.  Decrypt is a pure function and is safe to call concurrently,
see package scanner.

The memo carries the sender's public key and a 64-bit tag derived from a
second shared secret between the sender and the one-time key.  The tag
authenticates that the memo's author could compute that secret; it does not
protect the message beyond what the cipher provides.

All shared secrets, derivation indexes and intermediate keys are cleared
before Encrypt and Decrypt return.  The one-time private key of a matched
output is handed to the caller in MemoStatus; call Zero on the status once
it has been stored.
*/
package titan
