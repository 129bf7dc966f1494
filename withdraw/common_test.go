// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package withdraw

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btsuite/btsledger/address"
)

func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

var (
	_, testPubKey = btcec.PrivKeyFromBytes(hexToBytes(
		"4e42e82970d3307d26634572cddbf8424c10cee1c8c7fcebdd9417942a08a1bd",
	))
	_, otherPubKey = btcec.PrivKeyFromBytes(hexToBytes(
		"e44baa4f693f1bd71ba8f6b8509c56dd41206e2cff07efcf7b42fc79464a1c59",
	))

	testOwner = address.FromPubKey(testPubKey)
	otherAddr = address.FromPubKey(otherPubKey)

	testVariants = []Variant{
		Null{},
		Signature{Owner: testOwner},
		MultiSig{
			Required: 2,
			Owners:   []address.Address{testOwner, otherAddr},
		},
		Password{
			Payee:        testOwner,
			Payor:        otherAddr,
			Timeout:      1700000000,
			PasswordHash: Digest{1, 2, 3, 4, 5},
		},
		Option{
			Optionor: testOwner,
			Optionee: otherAddr,
			Date:     1800000000,
			StrikePrice: Price{
				Ratio:        314159,
				BaseAssetID:  0,
				QuoteAssetID: 7,
			},
		},
		ByName{
			Owner:             otherAddr,
			OneTimeKey:        address.NewPublicKey(testPubKey),
			EncryptedMemoData: HexBytes{0xde, 0xad, 0xbe, 0xef},
		},
	}
)
