// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package chainstate allocates chain-wide identifiers and caches the active
delegate set on top of a key/value property store.

The store holds a handful of enumerated properties.  Each value is a TLV
stream with a single record whose type is the property key:

	PropertyLastAssetID        u64 last allocated asset id
	PropertyLastNameID         u64 last allocated name id
	PropertyLastProposalID     u64 last allocated proposal id
	PropertyActiveDelegateList var bytes, big endian u32 per delegate

A property that was never written reads as zero, or as an empty delegate
list.

Three store backends are provided: MemStore for tests and tools, DBStore on
a walletdb database and SQLStore on any database/sql driver (the sqlite and
postgres drivers are exercised).

Chain is the context object every operation that needs ids or the delegate
cache is given.  It serializes its own read-modify-write sequences, but two
Chain values sharing one store do not coordinate: a store must have a single
writer.

The package also carries the name character rules used when registering
names (IsValidName) and the JSON check applied to name data.
*/
package chainstate
