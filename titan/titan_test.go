// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package titan

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btsuite/btsledger/address"
	"github.com/btsuite/btsledger/withdraw"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

var (
	// Hard-coded keys for the sender S, the receiver B, an unrelated
	// third party C and the one-time key E.
	senderPriv, _ = btcec.PrivKeyFromBytes(hexToBytes(
		"18fd5207b1a0d72465b8f3ed06b44232a366a76f559c5da3aec9f306e179278f",
	))
	receiverPriv, receiverPub = btcec.PrivKeyFromBytes(hexToBytes(
		"6dc61837b51d0bb80143c1a7ba5c957f122faa96e0a6ff76ba25f9ff42ef69fd",
	))
	thirdPriv, _ = btcec.PrivKeyFromBytes(hexToBytes(
		"45b0a66b5016618700b4d4fbfa85efd1b0724e8ae95b09a6c9ec850a05254f48",
	))
	oneTimePriv, _ = btcec.PrivKeyFromBytes(hexToBytes(
		"602751d179b75da5432c64a3360a7309609636056c31deae37b8441230c968eb",
	))
)

const testMessage = "hello-world-2025!!!!"

// TestStealthPayment tests that the receiver opens a payment with the
// memo and a valid tag while an unrelated key finds no match.
func TestStealthPayment(t *testing.T) {
	t.Parallel()

	require.Len(t, testMessage, MemoMessageSize)

	payload, err := Encrypt(oneTimePriv, receiverPub, senderPriv,
		testMessage)
	require.NoError(t, err)
	require.Equal(t, address.NewPublicKey(oneTimePriv.PubKey()),
		payload.OneTimeKey)

	// The one-time owner is neither the receiver nor the sender.
	require.NotEqual(t, address.FromPubKey(receiverPub), payload.Owner)
	require.NotEqual(t, address.FromPubKey(senderPriv.PubKey()),
		payload.Owner)

	result, err := Decrypt(receiverPriv, payload)
	require.NoError(t, err)
	require.True(t, result.IsSome())

	status := result.UnwrapOr(MemoStatus{})
	require.True(t, status.HasValidSignature)
	require.Equal(t, testMessage, status.Memo.GetMessage())
	require.Equal(t, address.NewPublicKey(senderPriv.PubKey()),
		status.Memo.From)

	// The recovered key controls the one-time address.
	require.Equal(t, payload.Owner,
		address.FromPubKey(status.OwnerPrivateKey.PubKey()))

	status.Zero()
	require.True(t, status.OwnerPrivateKey.Key.IsZero())

	// A third party finds nothing, and it is not an error.
	result, err = Decrypt(thirdPriv, payload)
	require.NoError(t, err)
	require.True(t, result.IsNone())

	// Neither does the sender.
	result, err = Decrypt(senderPriv, payload)
	require.NoError(t, err)
	require.True(t, result.IsNone())
}

// TestShortMessage tests that short messages are zero padded to the slot
// size.
func TestShortMessage(t *testing.T) {
	t.Parallel()

	payload, err := Encrypt(oneTimePriv, receiverPub, senderPriv, "hi")
	require.NoError(t, err)

	result, err := Decrypt(receiverPriv, payload)
	require.NoError(t, err)

	status := result.UnwrapOr(MemoStatus{})
	require.True(t, status.HasValidSignature)
	require.Equal(t, "hi"+strings.Repeat("\x00", MemoMessageSize-2),
		status.Memo.GetMessage())
}

// TestMessageTooLong tests that messages larger than the slot are refused.
func TestMessageTooLong(t *testing.T) {
	t.Parallel()

	_, err := Encrypt(oneTimePriv, receiverPub, senderPriv,
		testMessage+"!")
	require.True(t, IsError(err, ErrMessageTooLong), "got %v", err)
}

// TestUnlinkable tests that two payments to the same receiver land on
// different one-time addresses.
func TestUnlinkable(t *testing.T) {
	t.Parallel()

	otherOneTime, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	a, err := Encrypt(oneTimePriv, receiverPub, senderPriv, testMessage)
	require.NoError(t, err)
	b, err := Encrypt(otherOneTime, receiverPub, senderPriv, testMessage)
	require.NoError(t, err)

	require.NotEqual(t, a.Owner, b.Owner)
	require.NotEqual(t, a.EncryptedMemoData, b.EncryptedMemoData)

	for _, payload := range []*withdraw.ByName{a, b} {
		result, err := Decrypt(receiverPriv, payload)
		require.NoError(t, err)
		require.True(t, result.IsSome())
	}
}

// TestForgedTag tests that a memo whose tag does not match the claimed
// sender is still returned, flagged, with a spendable key.
func TestForgedTag(t *testing.T) {
	t.Parallel()

	payload, err := Encrypt(oneTimePriv, receiverPub, senderPriv,
		testMessage)
	require.NoError(t, err)

	// Rewrite the memo as the sender would have, but claim a different
	// sender key without knowing its private key.
	secret := address.SharedSecret(oneTimePriv, receiverPub)
	plaintext, err := decryptMemo(secret, payload.EncryptedMemoData)
	require.NoError(t, err)
	memo, err := decodeMemo(plaintext)
	require.NoError(t, err)

	memo.From = address.NewPublicKey(thirdPriv.PubKey())
	forged, err := encryptMemo(secret, memo.encode())
	require.NoError(t, err)
	payload.EncryptedMemoData = forged

	result, err := Decrypt(receiverPriv, payload)
	require.NoError(t, err)
	require.True(t, result.IsSome())

	status := result.UnwrapOr(MemoStatus{})
	require.False(t, status.HasValidSignature)
	require.Equal(t, testMessage, status.Memo.GetMessage())
	require.Equal(t, payload.Owner,
		address.FromPubKey(status.OwnerPrivateKey.PubKey()))
}

// TestDecryptErrors tests outputs that are addressed to the receiver but
// cannot be opened, and malformed payloads.
func TestDecryptErrors(t *testing.T) {
	t.Parallel()

	good, err := Encrypt(oneTimePriv, receiverPub, senderPriv,
		testMessage)
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutator func(*withdraw.ByName)
		code    ErrorCode
	}{{
		name: "empty memo",
		mutator: func(p *withdraw.ByName) {
			p.EncryptedMemoData = nil
		},
		code: ErrDecrypt,
	}, {
		name: "partial block",
		mutator: func(p *withdraw.ByName) {
			p.EncryptedMemoData = p.EncryptedMemoData[:15]
		},
		code: ErrDecrypt,
	}, {
		name: "invalid one-time key",
		mutator: func(p *withdraw.ByName) {
			p.OneTimeKey = address.PublicKey{}
		},
		code: ErrInvalidKey,
	}}
	for _, test := range tests {
		payload := *good
		payload.EncryptedMemoData = append(
			withdraw.HexBytes(nil), good.EncryptedMemoData...,
		)
		test.mutator(&payload)

		result, err := Decrypt(receiverPriv, &payload)
		require.True(t, IsError(err, test.code), "%s: got %v",
			test.name, err)
		require.True(t, result.IsNone(), test.name)
	}
}

// TestDecryptCondition tests opening a stealth output through its withdraw
// condition, and that other condition types are refused.
func TestDecryptCondition(t *testing.T) {
	t.Parallel()

	amount := withdraw.Asset{Amount: 5000, AssetID: 2}
	rec, err := NewStealthBalance(amount, 7, receiverPub, senderPriv,
		testMessage)
	require.NoError(t, err)

	require.Equal(t, withdraw.TypeByName, rec.Condition.Type)
	require.Equal(t, amount, rec.GetBalance())
	require.Equal(t, withdraw.NameID(7), rec.Condition.DelegateID)

	// The record survives the wire before the receiver scans it.
	decoded, err := withdraw.ParseBalanceRecord(rec.Bytes())
	require.NoError(t, err)

	result, err := DecryptCondition(receiverPriv, decoded.Condition)
	require.NoError(t, err)
	status := result.UnwrapOr(MemoStatus{})
	require.True(t, status.HasValidSignature)
	require.Equal(t, testMessage, status.Memo.GetMessage())
	require.Equal(t, decoded.Owner(),
		address.FromPubKey(status.OwnerPrivateKey.PubKey()))

	result, err = DecryptCondition(thirdPriv, decoded.Condition)
	require.NoError(t, err)
	require.True(t, result.IsNone())

	sig := withdraw.NewSignature(address.FromPubKey(receiverPub), amount, 0)
	_, err = DecryptCondition(receiverPriv, sig)
	require.True(t, withdraw.IsError(err, withdraw.ErrTypeMismatch),
		"got %v", err)
}

// TestMemoEncoding tests the fixed size memo layout.
func TestMemoEncoding(t *testing.T) {
	t.Parallel()

	var memo MemoData
	require.NoError(t, memo.SetMessage(testMessage))
	memo.From = address.NewPublicKey(senderPriv.PubKey())
	memo.FromSignature = 0x0102030405060708

	b := memo.encode()
	require.Len(t, b, memoDataSize)
	require.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, b[len(b)-8:])

	decoded, err := decodeMemo(b)
	require.NoError(t, err)
	require.Equal(t, memo, decoded)

	_, err = decodeMemo(b[:len(b)-1])
	require.True(t, IsError(err, ErrDecrypt), "got %v", err)

	bad := append([]byte(nil), b...)
	copy(bad[MemoMessageSize:], make([]byte, address.PublicKeySize))
	_, err = decodeMemo(bad)
	require.True(t, IsError(err, ErrInvalidKey), "got %v", err)
}

// TestMemoCipher tests the memo cipher round trip and its length checks.
func TestMemoCipher(t *testing.T) {
	t.Parallel()

	secret := address.SharedSecret(oneTimePriv, receiverPub)
	for _, n := range []int{0, 1, 15, 16, 17, memoDataSize} {
		plaintext := make([]byte, n)
		for i := range plaintext {
			plaintext[i] = byte(i)
		}

		ciphertext, err := encryptMemo(secret, plaintext)
		require.NoError(t, err)
		require.Zero(t, len(ciphertext)%16)
		require.Greater(t, len(ciphertext), n)

		got, err := decryptMemo(secret, ciphertext)
		require.NoError(t, err)
		require.Equal(t, plaintext, got)
	}

	_, err := decryptMemo(secret, make([]byte, 17))
	require.ErrorIs(t, err, errBadCiphertext)
}

// validPrivKey draws a valid secp256k1 private key.
func validPrivKey(t *rapid.T, label string) *btcec.PrivateKey {
	b := rapid.SliceOfN(rapid.Byte(), 32, 32).Filter(func(b []byte) bool {
		var s secp256k1.ModNScalar
		overflow := s.SetByteSlice(b)
		return !overflow && !s.IsZero()
	}).Draw(t, label)

	priv, _ := btcec.PrivKeyFromBytes(b)
	return priv
}

// testStealthProperties is a rapid property that verifies any message to
// any receiver from any sender opens with a valid tag, and that an
// unrelated key finds no match.
func testStealthProperties(t *rapid.T) {
	oneTime := validPrivKey(t, "oneTime")
	receiver := validPrivKey(t, "receiver")
	sender := validPrivKey(t, "sender")
	other := validPrivKey(t, "other")
	if other.Key.Equals(&receiver.Key) {
		t.Skip("other key equals receiver")
	}
	message := string(rapid.SliceOfN(
		rapid.ByteRange(' ', '~'), 0, MemoMessageSize,
	).Draw(t, "message"))

	payload, err := Encrypt(oneTime, receiver.PubKey(), sender, message)
	if IsError(err, ErrDerivation) {
		t.Skip("invalid child")
	}
	require.NoError(t, err)

	result, err := Decrypt(receiver, payload)
	require.NoError(t, err)
	require.True(t, result.IsSome())

	status := result.UnwrapOr(MemoStatus{})
	require.True(t, status.HasValidSignature)

	var want MemoData
	require.NoError(t, want.SetMessage(message))
	require.Equal(t, want.Message, status.Memo.Message)

	result, err = Decrypt(other, payload)
	require.NoError(t, err)
	require.True(t, result.IsNone())
}

// TestStealthRoundTrip tests the encrypt/decrypt round trip for random keys
// and messages.
func TestStealthRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, testStealthProperties)
}
