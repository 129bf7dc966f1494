// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hdkey

import (
	"github.com/btsuite/btsledger/internal/zero"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// DerivePublic returns the public child of parent at index:
//
//	childKey = parse256(Il)*G + parentKey
//
// Only the parent public key is used, so a private parent yields the same
// child as its neutered form.
func DerivePublic(parent *ExtendedKey, index *Index) (*ExtendedKey, error) {
	ilNum, childChainCode, err := parent.tweak(index)
	if err != nil {
		return nil, err
	}
	defer zero.Scalar(ilNum)

	parentPub, err := secp256k1.ParsePubKey(parent.pubKeyBytes())
	if err != nil {
		return nil, err
	}

	// Convert the serialized compressed parent public key into X
	// and Y coordinates so it can be added to the intermediate
	// public key.
	var ilJ, parentJ, childJ secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(ilNum, &ilJ)
	parentPub.AsJacobian(&parentJ)
	secp256k1.AddNonConst(&ilJ, &parentJ, &childJ)

	if (childJ.X.IsZero() && childJ.Y.IsZero()) || childJ.Z.IsZero() {
		return nil, ErrInvalidChild
	}
	childJ.ToAffine()
	childKey := secp256k1.NewPublicKey(&childJ.X, &childJ.Y)

	return &ExtendedKey{
		key:       childKey.SerializeCompressed(),
		chainCode: childChainCode,
	}, nil
}

// DerivePrivate returns the private child of parent at index:
//
//	childKey = parse256(Il) + parentKey
//
// The parent must be a private extended key.
func DerivePrivate(parent *ExtendedKey, index *Index) (*ExtendedKey, error) {
	if !parent.isPrivate {
		return nil, ErrDeriveFromPublic
	}

	ilNum, childChainCode, err := parent.tweak(index)
	if err != nil {
		return nil, err
	}
	defer zero.Scalar(ilNum)

	var keyNum secp256k1.ModNScalar
	defer zero.Scalar(&keyNum)
	if overflow := keyNum.SetByteSlice(parent.key); overflow {
		return nil, ErrInvalidChild
	}
	keyNum.Add(ilNum)

	// A zero private key is not valid; the caller should pick another
	// index.
	if keyNum.IsZero() {
		return nil, ErrInvalidChild
	}

	childKey := keyNum.Bytes()
	defer zero.Bytea32(&childKey)

	childPriv := secp256k1.PrivKeyFromBytes(childKey[:])
	return &ExtendedKey{
		key:       childPriv.Serialize(),
		pubKey:    childPriv.PubKey().SerializeCompressed(),
		chainCode: childChainCode,
		isPrivate: true,
	}, nil
}
