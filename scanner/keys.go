// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scanner

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// DeriveKeys returns count receiver keys derived from seed along the path
// m/account'/i for i in [0, count).  Children that are invalid under BIP0032
// are skipped, so the result always holds count keys.
func DeriveKeys(seed []byte, net *chaincfg.Params, account,
	count uint32) ([]*btcec.PrivateKey, error) {

	master, err := hdkeychain.NewMaster(seed, net)
	if err != nil {
		return nil, err
	}
	defer master.Zero()

	acct, err := master.Derive(hdkeychain.HardenedKeyStart + account)
	if err != nil {
		return nil, err
	}
	defer acct.Zero()

	keys := make([]*btcec.PrivateKey, 0, count)
	for i := uint32(0); uint32(len(keys)) < count; i++ {
		child, err := acct.Derive(i)
		if err == hdkeychain.ErrInvalidChild {
			continue
		}
		if err != nil {
			return nil, err
		}

		priv, err := child.ECPrivKey()
		child.Zero()
		if err != nil {
			return nil, err
		}
		keys = append(keys, priv)
	}
	return keys, nil
}
