// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package scanner discovers stealth payments among a set of outputs by trial
decryption against a set of receiver keys.

Every ByName output is tried against every key.  Work is spread over a
bounded pool of goroutines; outputs of any other condition type are
skipped.  An output whose payload cannot be read is logged and skipped so
that one malformed output does not stop a scan.

DeriveKeys produces a receiver key set from a BIP0032 seed so that a wallet
can regenerate the keys it hands out as receive identities.
*/
package scanner
