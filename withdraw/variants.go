// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package withdraw

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/wire"
	"github.com/btsuite/btsledger/address"
)

const (
	// MaxEncryptedMemoSize is the largest encrypted memo accepted in a
	// ByName payload.
	MaxEncryptedMemoSize = 1024

	// maxMultiSigOwners bounds the owner count read from the wire before
	// any allocation is made.
	maxMultiSigOwners = MaxDataSize / address.Size
)

// Variant is the decoded payload of a withdraw condition.  The set of
// variants is closed: Signature, MultiSig, Password, Option, ByName and
// Null.
type Variant interface {
	// Type returns the tag stored alongside the payload.
	Type() ConditionType

	// encode writes the canonical payload encoding.
	encode(w io.Writer) error
}

// ConcreteVariant is satisfied by the value types of every variant.  It is
// the type constraint of As.
type ConcreteVariant interface {
	Signature | MultiSig | Password | Option | ByName | Null
	Variant
}

// Signature is claimable by a single signature from Owner.
type Signature struct {
	Owner address.Address `json:"owner"`
}

// Type returns TypeSignature.
func (Signature) Type() ConditionType { return TypeSignature }

func (s Signature) encode(w io.Writer) error {
	_, err := w.Write(s.Owner[:])
	return err
}

func decodeSignature(r io.Reader) (Variant, error) {
	var s Signature
	if err := readAddress(r, &s.Owner); err != nil {
		return nil, err
	}
	return s, nil
}

// MultiSig is claimable by signatures from at least Required of Owners.
type MultiSig struct {
	Required uint32            `json:"required"`
	Owners   []address.Address `json:"owners"`
}

// Type returns TypeMultiSig.
func (MultiSig) Type() ConditionType { return TypeMultiSig }

func (m MultiSig) encode(w io.Writer) error {
	if err := writeUint32(w, m.Required); err != nil {
		return err
	}
	err := wire.WriteVarInt(w, 0, uint64(len(m.Owners)))
	if err != nil {
		return err
	}
	for i := range m.Owners {
		if _, err := w.Write(m.Owners[i][:]); err != nil {
			return err
		}
	}
	return nil
}

func decodeMultiSig(r io.Reader) (Variant, error) {
	var (
		m   MultiSig
		err error
	)
	if m.Required, err = readUint32(r); err != nil {
		return nil, err
	}
	count, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return nil, err
	}
	if count > maxMultiSigOwners {
		return nil, fmt.Errorf("too many owners: %d", count)
	}
	if count > 0 {
		m.Owners = make([]address.Address, count)
	}
	for i := range m.Owners {
		if err := readAddress(r, &m.Owners[i]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Digest is a ripemd160 digest such as the hash of a password preimage.
type Digest [address.Size]byte

// String returns the hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	if len(b) != len(d) {
		return fmt.Errorf("digest length %d, want %d", len(b), len(d))
	}
	copy(d[:], b)
	return nil
}

// Password is claimable by Payee with the preimage of PasswordHash, or by
// Payor once Timeout has passed.
type Password struct {
	Payee        address.Address `json:"payee"`
	Payor        address.Address `json:"payor"`
	Timeout      uint32          `json:"timeout"`
	PasswordHash Digest          `json:"password_hash"`
}

// Type returns TypePassword.
func (Password) Type() ConditionType { return TypePassword }

func (p Password) encode(w io.Writer) error {
	if _, err := w.Write(p.Payee[:]); err != nil {
		return err
	}
	if _, err := w.Write(p.Payor[:]); err != nil {
		return err
	}
	if err := writeUint32(w, p.Timeout); err != nil {
		return err
	}
	_, err := w.Write(p.PasswordHash[:])
	return err
}

func decodePassword(r io.Reader) (Variant, error) {
	var (
		p   Password
		err error
	)
	if err = readAddress(r, &p.Payee); err != nil {
		return nil, err
	}
	if err = readAddress(r, &p.Payor); err != nil {
		return nil, err
	}
	if p.Timeout, err = readUint32(r); err != nil {
		return nil, err
	}
	if _, err = io.ReadFull(r, p.PasswordHash[:]); err != nil {
		return nil, err
	}
	return p, nil
}

// Price is the ratio of a quote asset to a base asset.
type Price struct {
	Ratio        uint64  `json:"ratio"`
	BaseAssetID  AssetID `json:"base_asset_id"`
	QuoteAssetID AssetID `json:"quote_asset_id"`
}

// Option lets Optionee buy the balance at StrikePrice until Date, after
// which Optionor may reclaim it.
type Option struct {
	Optionor    address.Address `json:"optionor"`
	Optionee    address.Address `json:"optionee"`
	Date        uint32          `json:"date"`
	StrikePrice Price           `json:"strike_price"`
}

// Type returns TypeOption.
func (Option) Type() ConditionType { return TypeOption }

func (o Option) encode(w io.Writer) error {
	if _, err := w.Write(o.Optionor[:]); err != nil {
		return err
	}
	if _, err := w.Write(o.Optionee[:]); err != nil {
		return err
	}
	if err := writeUint32(w, o.Date); err != nil {
		return err
	}
	if err := writeUint64(w, o.StrikePrice.Ratio); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(o.StrikePrice.BaseAssetID)); err != nil {
		return err
	}
	return writeUint32(w, uint32(o.StrikePrice.QuoteAssetID))
}

func decodeOption(r io.Reader) (Variant, error) {
	var (
		o          Option
		err        error
		base, quot uint32
	)
	if err = readAddress(r, &o.Optionor); err != nil {
		return nil, err
	}
	if err = readAddress(r, &o.Optionee); err != nil {
		return nil, err
	}
	if o.Date, err = readUint32(r); err != nil {
		return nil, err
	}
	if o.StrikePrice.Ratio, err = readUint64(r); err != nil {
		return nil, err
	}
	if base, err = readUint32(r); err != nil {
		return nil, err
	}
	if quot, err = readUint32(r); err != nil {
		return nil, err
	}
	o.StrikePrice.BaseAssetID = AssetID(base)
	o.StrikePrice.QuoteAssetID = AssetID(quot)
	return o, nil
}

// HexBytes is a byte slice that uses hex as its text form.
type HexBytes []byte

// MarshalText implements encoding.TextMarshaler.
func (h HexBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(h)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HexBytes) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	*h = b
	return nil
}

// ByName is the TITAN stealth variant.  Owner is a one-time address derived
// from a shared secret between OneTimeKey and the receiver's long-term key,
// and EncryptedMemoData is readable only by the receiver.  See package titan.
type ByName struct {
	Owner             address.Address   `json:"owner"`
	OneTimeKey        address.PublicKey `json:"one_time_key"`
	EncryptedMemoData HexBytes          `json:"encrypted_memo_data"`
}

// Type returns TypeByName.
func (ByName) Type() ConditionType { return TypeByName }

func (b ByName) encode(w io.Writer) error {
	if _, err := w.Write(b.Owner[:]); err != nil {
		return err
	}
	if _, err := w.Write(b.OneTimeKey[:]); err != nil {
		return err
	}
	return wire.WriteVarBytes(w, 0, b.EncryptedMemoData)
}

func decodeByName(r io.Reader) (Variant, error) {
	var b ByName
	if err := readAddress(r, &b.Owner); err != nil {
		return nil, err
	}

	var key [address.PublicKeySize]byte
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return nil, err
	}
	oneTimeKey, err := address.ParsePublicKey(key[:])
	if err != nil {
		return nil, err
	}
	b.OneTimeKey = oneTimeKey

	memo, err := wire.ReadVarBytes(
		r, 0, MaxEncryptedMemoSize, "encrypted_memo_data",
	)
	if err != nil {
		return nil, err
	}
	if len(memo) > 0 {
		b.EncryptedMemoData = memo
	}
	return b, nil
}

// Null is the unconditional sentinel.  Its payload is empty.
type Null struct{}

// Type returns TypeNull.
func (Null) Type() ConditionType { return TypeNull }

func (Null) encode(io.Writer) error { return nil }

func decodeNull(io.Reader) (Variant, error) {
	return Null{}, nil
}
