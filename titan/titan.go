// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package titan

import (
	"crypto/subtle"
	"encoding/binary"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btsuite/btsledger/address"
	"github.com/btsuite/btsledger/hdkey"
	"github.com/btsuite/btsledger/internal/zero"
	"github.com/btsuite/btsledger/withdraw"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// derivationIndex returns sha256(secret), the index of the one-time child
// key.
func derivationIndex(secret *[64]byte) hdkey.Index {
	return hdkey.Index(chainhash.HashH(secret[:]))
}

// signatureTag truncates a check secret to the 64-bit memo tag.
func signatureTag(checkSecret *[64]byte) uint64 {
	return binary.LittleEndian.Uint64(checkSecret[:8])
}

// tagsEqual compares two memo tags in constant time.
func tagsEqual(a, b uint64) bool {
	var ab, bb [8]byte
	binary.LittleEndian.PutUint64(ab[:], a)
	binary.LittleEndian.PutUint64(bb[:], b)
	return subtle.ConstantTimeCompare(ab[:], bb[:]) == 1
}

// Encrypt builds a stealth payload paying to the holder of the private key
// for to, with a memo from the holder of from.
//
// The one-time key must be fresh for every output:
//
//	secret     = ECDH(oneTime, to)
//	secretPub  = DerivePublic(to, sha256(secret))
//	owner      = Address(secretPub)
//	tag        = ECDH(from, secretPub)[:8]
//	memo       = AES(secret, message || pub(from) || tag)
//
// The returned payload is ready to be wrapped with withdraw.NewCondition.
func Encrypt(oneTime *btcec.PrivateKey, to *btcec.PublicKey,
	from *btcec.PrivateKey, message string) (*withdraw.ByName, error) {

	var memo MemoData
	if err := memo.SetMessage(message); err != nil {
		return nil, err
	}
	defer func() { memo = MemoData{} }()

	secret := address.SharedSecret(oneTime, to)
	defer zero.Bytea64(secret)

	index := derivationIndex(secret)
	defer zero.Bytea32((*[32]byte)(&index))

	child, err := hdkey.DerivePublic(hdkey.NewPublic(to), &index)
	if err != nil {
		return nil, memoError(ErrDerivation, "unable to derive "+
			"one-time key", err)
	}
	secretPub, err := child.ECPubKey()
	if err != nil {
		return nil, memoError(ErrDerivation, "unable to derive "+
			"one-time key", err)
	}

	checkSecret := address.SharedSecret(from, secretPub)
	defer zero.Bytea64(checkSecret)

	memo.From = address.NewPublicKey(from.PubKey())
	memo.FromSignature = signatureTag(checkSecret)

	plaintext := memo.encode()
	defer zero.Bytes(plaintext)

	ciphertext, err := encryptMemo(secret, plaintext)
	if err != nil {
		return nil, err
	}

	owner := address.FromPubKey(secretPub)
	log.Tracef("Built stealth output for one-time owner %v", owner)

	return &withdraw.ByName{
		Owner:             owner,
		OneTimeKey:        address.NewPublicKey(oneTime.PubKey()),
		EncryptedMemoData: ciphertext,
	}, nil
}

// Decrypt tries to open a stealth payload with the receiver's long-term
// private key.  When the payload is not addressed to receiver the result is
// None and the error is nil; this is the expected outcome for nearly every
// output a wallet tests.
//
// A payload that is addressed to receiver but whose memo cannot be read is
// an ErrDecrypt error.  A memo tag that does not match the claimed sender
// is not an error: the status is returned with HasValidSignature false and
// the output remains spendable with OwnerPrivateKey.
func Decrypt(receiver *btcec.PrivateKey,
	payload *withdraw.ByName) (fn.Option[MemoStatus], error) {

	none := fn.None[MemoStatus]()

	oneTimeKey, err := payload.OneTimeKey.Key()
	if err != nil {
		return none, memoError(ErrInvalidKey, "invalid one-time key",
			err)
	}

	secret := address.SharedSecret(receiver, oneTimeKey)
	defer zero.Bytea64(secret)

	index := derivationIndex(secret)
	defer zero.Bytea32((*[32]byte)(&index))

	root := hdkey.NewPrivate(receiver)
	defer root.Zero()

	child, err := hdkey.DerivePrivate(root, &index)
	if err != nil {
		return none, memoError(ErrDerivation, "unable to derive "+
			"one-time key", err)
	}
	defer child.Zero()

	secretPriv, err := child.ECPrivKey()
	if err != nil {
		return none, memoError(ErrDerivation, "unable to derive "+
			"one-time key", err)
	}
	secretPub := secretPriv.PubKey()

	if address.FromPubKey(secretPub) != payload.Owner {
		secretPriv.Zero()
		return none, nil
	}

	plaintext, err := decryptMemo(secret, payload.EncryptedMemoData)
	if err != nil {
		secretPriv.Zero()
		return none, memoError(ErrDecrypt, "unable to decrypt memo of "+
			"output owned by "+payload.Owner.String(), err)
	}
	defer zero.Bytes(plaintext)

	memo, err := decodeMemo(plaintext)
	if err != nil {
		secretPriv.Zero()
		return none, err
	}

	fromKey, err := memo.From.Key()
	if err != nil {
		secretPriv.Zero()
		return none, memoError(ErrInvalidKey, "invalid sender key", err)
	}

	checkSecret := address.SharedSecret(secretPriv, fromKey)
	defer zero.Bytea64(checkSecret)

	valid := tagsEqual(signatureTag(checkSecret), memo.FromSignature)
	if !valid {
		log.Debugf("Memo of output owned by %v has a tag that does "+
			"not match sender %v", payload.Owner, memo.From)
	}

	return fn.Some(MemoStatus{
		Memo:              memo,
		HasValidSignature: valid,
		OwnerPrivateKey:   secretPriv,
	}), nil
}

// DecryptCondition is Decrypt for a withdraw condition.  Conditions that do
// not hold a ByName payload fail with a withdraw.ErrTypeMismatch error.
func DecryptCondition(receiver *btcec.PrivateKey,
	cond withdraw.Condition) (fn.Option[MemoStatus], error) {

	payload, err := withdraw.As[withdraw.ByName](cond)
	if err != nil {
		return fn.None[MemoStatus](), err
	}
	return Decrypt(receiver, &payload)
}

// NewStealthBalance returns a balance record of amount paying to the holder
// of the private key for to.  A fresh one-time key is generated and cleared
// once the payload is built.
func NewStealthBalance(amount withdraw.Asset, delegate withdraw.NameID,
	to *btcec.PublicKey, from *btcec.PrivateKey,
	message string) (*withdraw.BalanceRecord, error) {

	oneTime, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	defer oneTime.Zero()

	payload, err := Encrypt(oneTime, to, from, message)
	if err != nil {
		return nil, err
	}

	cond, err := withdraw.NewCondition(*payload, amount.AssetID, delegate)
	if err != nil {
		return nil, err
	}

	return &withdraw.BalanceRecord{
		Balance:   amount.Amount,
		Condition: cond,
	}, nil
}
