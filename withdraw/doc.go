// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package withdraw implements withdraw conditions, the authorization policy
attached to every ledger balance, and balance records.

A Condition is a tagged union: an asset id, a delegate id, a one byte type
and a payload whose layout is selected by the type.  The payload is kept in
its encoded form so that hashing and signing always see the exact bytes
that were committed.  Decoding switches on the type through a fixed codec
table; an unknown type is an ErrDecode error and asking for the wrong
variant with As is an ErrTypeMismatch error.

Wire encoding

	asset_id    uint32 little endian
	delegate_id int32 little endian
	type        uint8
	data        CompactSize length followed by the payload

Payload layouts

	Signature  owner[20]
	MultiSig   required uint32, CompactSize count, owners[20]...
	Password   payee[20], payor[20], timeout uint32, password_hash[20]
	Option     optionor[20], optionee[20], date uint32,
	           ratio uint64, base_asset_id uint32, quote_asset_id uint32
	ByName     owner[20], one_time_key[33], CompactSize length, memo
	Null       empty

The JSON form is {"asset_id", "delegate_id", "type", "data"} where type is
the numeric tag and data is the structured variant, or null for Null.
*/
package withdraw
