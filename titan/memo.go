// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package titan

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btsuite/btsledger/address"
)

const (
	// MemoMessageSize is the size of the message slot of a memo.
	MemoMessageSize = 20

	// memoDataSize is the encoded size of a memo:
	//   message [20] || from [33] || from_signature uint64 LE
	memoDataSize = MemoMessageSize + address.PublicKeySize + 8
)

// MemoData is the plaintext carried inside a stealth output.
type MemoData struct {
	// Message is a fixed size slot.  Shorter messages are zero padded.
	Message [MemoMessageSize]byte

	// From is the sender's long-term public key as claimed by the sender.
	From address.PublicKey

	// FromSignature is the first eight bytes, read little endian, of the
	// shared secret between From and the one-time owner key.  It is a
	// truncated hash, not a MAC.
	FromSignature uint64
}

// SetMessage copies msg into the message slot.
func (m *MemoData) SetMessage(msg string) error {
	if len(msg) > MemoMessageSize {
		str := fmt.Sprintf("message is %d bytes, max %d", len(msg),
			MemoMessageSize)
		return memoError(ErrMessageTooLong, str, nil)
	}

	m.Message = [MemoMessageSize]byte{}
	copy(m.Message[:], msg)
	return nil
}

// GetMessage returns the whole message slot, including any zero padding.
func (m *MemoData) GetMessage() string {
	return string(m.Message[:])
}

// encode returns the fixed size encoding of the memo.
func (m *MemoData) encode() []byte {
	b := make([]byte, memoDataSize)
	copy(b, m.Message[:])
	copy(b[MemoMessageSize:], m.From[:])
	binary.LittleEndian.PutUint64(
		b[MemoMessageSize+address.PublicKeySize:], m.FromSignature,
	)
	return b
}

// decodeMemo decodes a memo that must span all of b.
func decodeMemo(b []byte) (MemoData, error) {
	var m MemoData
	if len(b) != memoDataSize {
		str := fmt.Sprintf("memo is %d bytes, want %d", len(b),
			memoDataSize)
		return m, memoError(ErrDecrypt, str, nil)
	}

	copy(m.Message[:], b)
	from, err := address.ParsePublicKey(
		b[MemoMessageSize : MemoMessageSize+address.PublicKeySize],
	)
	if err != nil {
		return m, memoError(ErrInvalidKey, "invalid sender key", err)
	}
	m.From = from
	m.FromSignature = binary.LittleEndian.Uint64(
		b[MemoMessageSize+address.PublicKeySize:],
	)
	return m, nil
}

// MemoStatus is the result of opening a stealth output addressed to the
// receiver.
type MemoStatus struct {
	Memo MemoData

	// HasValidSignature reports whether the memo tag matched the claimed
	// sender.  The funds are spendable either way.
	HasValidSignature bool

	// OwnerPrivateKey is the one-time private key that controls the
	// output.  It is not derivable from the on-chain data without the
	// receiver's long-term key and must be kept to spend the output.
	OwnerPrivateKey *btcec.PrivateKey
}

// Zero clears the one-time private key.
func (s *MemoStatus) Zero() {
	if s.OwnerPrivateKey != nil {
		s.OwnerPrivateKey.Zero()
	}
}
