// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package withdraw

import (
	"bytes"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/wire"
	"github.com/btsuite/btsledger/address"
)

// MaxDataSize is the largest condition payload accepted on the wire.  It
// matches the largest message the network layer will relay.
const MaxDataSize = 524288

// Condition is the authorization policy attached to a balance.  Data is
// always the exact encoding of the variant named by Type; conditions built
// with NewCondition or decoded with Deserialize uphold this.
type Condition struct {
	AssetID    AssetID
	DelegateID NameID
	Type       ConditionType
	Data       []byte
}

// NewCondition encodes v into a condition gating asset and attributed to
// delegate.  A variant whose encoding would not survive ParseCondition is
// rejected with ErrValidation.
func NewCondition(v Variant, asset AssetID, delegate NameID) (Condition,
	error) {

	data := encodeVariant(v)
	if len(data) > MaxDataSize {
		str := fmt.Sprintf("%v payload is %d bytes, max %d", v.Type(),
			len(data), MaxDataSize)
		return Condition{}, conditionError(ErrValidation, str, nil)
	}
	if b, ok := v.(ByName); ok && len(b.EncryptedMemoData) > MaxEncryptedMemoSize {
		str := fmt.Sprintf("encrypted memo is %d bytes, max %d",
			len(b.EncryptedMemoData), MaxEncryptedMemoSize)
		return Condition{}, conditionError(ErrValidation, str, nil)
	}

	// Only encodings the wire decoder accepts may leave here, so a
	// ByName with a key that is not a curve point is refused.
	if _, err := decodeVariant(v.Type(), data); err != nil {
		str := fmt.Sprintf("%v payload does not decode", v.Type())
		return Condition{}, conditionError(ErrValidation, str, err)
	}

	return Condition{
		AssetID:    asset,
		DelegateID: delegate,
		Type:       v.Type(),
		Data:       data,
	}, nil
}

// NewSignature returns a Signature condition over owner gating the asset
// type of asset.
func NewSignature(owner address.Address, asset Asset,
	delegate NameID) Condition {

	return Condition{
		AssetID:    asset.AssetID,
		DelegateID: delegate,
		Type:       TypeSignature,
		Data:       encodeVariant(Signature{Owner: owner}),
	}
}

// Variant decodes the payload according to the stored type.
func (c Condition) Variant() (Variant, error) {
	return decodeVariant(c.Type, c.Data)
}

// As decodes the payload of c as the variant T.  An ErrTypeMismatch error
// is returned when c does not hold a T.
func As[T ConcreteVariant](c Condition) (T, error) {
	var v T
	if c.Type != v.Type() {
		str := fmt.Sprintf("condition holds %v, not %v", c.Type,
			v.Type())
		return v, conditionError(ErrTypeMismatch, str, nil)
	}

	decoded, err := decodeVariant(c.Type, c.Data)
	if err != nil {
		return v, err
	}
	return decoded.(T), nil
}

// Owner returns the single key owner of the condition.  Only Signature and
// ByName conditions have one; every other type yields the null address.
// The null address is not a claimant: callers that need to tell MultiSig,
// Password, Option and Null apart must switch on Type.
func (c Condition) Owner() address.Address {
	var (
		owner address.Address
		err   error
	)
	switch c.Type {
	case TypeSignature:
		var s Signature
		s, err = As[Signature](c)
		owner = s.Owner

	case TypeByName:
		var b ByName
		b, err = As[ByName](c)
		owner = b.Owner
	}
	if err != nil {
		log.Warnf("Unable to resolve owner of %v condition: %v",
			c.Type, err)
		return address.Address{}
	}
	return owner
}

// Address returns the hash of the serialized condition.  It names outputs
// that have no single key owner.
func (c Condition) Address() address.Address {
	return address.FromBytes(c.Bytes())
}

// AddressOf returns the hash of the serialized condition.
func AddressOf(c Condition) address.Address {
	return c.Address()
}

// Serialize writes the canonical encoding of the condition to w:
//
//	asset_id    uint32 LE
//	delegate_id int32 LE
//	type        uint8
//	data        varint length || bytes
func (c Condition) Serialize(w io.Writer) error {
	if err := writeUint32(w, uint32(c.AssetID)); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(c.DelegateID)); err != nil {
		return err
	}
	if _, err := w.Write([]byte{byte(c.Type)}); err != nil {
		return err
	}
	return wire.WriteVarBytes(w, 0, c.Data)
}

// Bytes returns the canonical encoding of the condition.
func (c Condition) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(4 + 4 + 1 + wire.VarIntSerializeSize(uint64(len(c.Data))) +
		len(c.Data))

	// Writes to a bytes.Buffer never fail.
	_ = c.Serialize(&buf)
	return buf.Bytes()
}

// Deserialize reads a condition from r.  The type must be known and the
// payload must decode as that type.  c is left untouched on error.
func (c *Condition) Deserialize(r io.Reader) error {
	var (
		cond Condition
		tag  [1]byte
	)

	assetID, err := readUint32(r)
	if err != nil {
		return conditionError(ErrDecode, "failed to read asset id", err)
	}
	delegateID, err := readUint32(r)
	if err != nil {
		return conditionError(ErrDecode, "failed to read delegate id",
			err)
	}
	if _, err := io.ReadFull(r, tag[:]); err != nil {
		return conditionError(ErrDecode, "failed to read type", err)
	}
	data, err := wire.ReadVarBytes(r, 0, MaxDataSize, "data")
	if err != nil {
		return conditionError(ErrDecode, "failed to read data", err)
	}

	cond.AssetID = AssetID(assetID)
	cond.DelegateID = NameID(int32(delegateID))
	cond.Type = ConditionType(tag[0])
	if len(data) > 0 {
		cond.Data = data
	}
	if _, err := cond.Variant(); err != nil {
		return err
	}

	*c = cond
	return nil
}

// ParseCondition decodes a condition that must span all of b.
func ParseCondition(b []byte) (Condition, error) {
	var c Condition

	r := bytes.NewReader(b)
	if err := c.Deserialize(r); err != nil {
		return Condition{}, err
	}
	if r.Len() != 0 {
		str := fmt.Sprintf("%d trailing bytes after condition", r.Len())
		return Condition{}, conditionError(ErrDecode, str, nil)
	}
	return c, nil
}

// String returns a short human-readable description of the condition.
func (c Condition) String() string {
	return fmt.Sprintf("%v condition (asset %d, delegate %d)", c.Type,
		c.AssetID, c.DelegateID)
}
