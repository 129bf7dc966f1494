// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstate

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/btsuite/btsledger/withdraw"
	"github.com/lightningnetwork/lnd/tlv"
)

// PropertyKey enumerates the chain properties kept in a PropertyStore.
type PropertyKey uint8

// These constants are the known chain properties.  The values are persisted
// and must not be reordered.
const (
	PropertyLastAssetID PropertyKey = iota
	PropertyLastNameID
	PropertyLastProposalID
	PropertyActiveDelegateList
)

var propertyKeyStrings = map[PropertyKey]string{
	PropertyLastAssetID:        "last_asset_id",
	PropertyLastNameID:         "last_name_id",
	PropertyLastProposalID:     "last_proposal_id",
	PropertyActiveDelegateList: "active_delegate_list",
}

// String returns the property name.
func (k PropertyKey) String() string {
	if s := propertyKeyStrings[k]; s != "" {
		return s
	}
	return fmt.Sprintf("property(%d)", uint8(k))
}

// PropertyStore is the key/value store chain properties live in.
//
// Property returns a nil value and a nil error for a property that was
// never set.  Implementations copy the values they are given and return.
type PropertyStore interface {
	Property(key PropertyKey) ([]byte, error)
	SetProperty(key PropertyKey, value []byte) error
}

// encodeRecord writes a single record TLV stream keyed by the property.
func encodeRecord(record tlv.Record) ([]byte, error) {
	stream, err := tlv.NewStream(record)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := stream.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeRecord reads a single record TLV stream and fails unless the
// property's record was present.
func decodeRecord(key PropertyKey, record tlv.Record, value []byte) error {
	stream, err := tlv.NewStream(record)
	if err != nil {
		return err
	}

	parsed, err := stream.DecodeWithParsedTypes(bytes.NewReader(value))
	if err != nil {
		return err
	}
	if _, ok := parsed[tlv.Type(key)]; !ok {
		return fmt.Errorf("no %v record", key)
	}
	return nil
}

// encodeID returns the stored form of an identifier counter.
func encodeID(key PropertyKey, id uint64) ([]byte, error) {
	return encodeRecord(tlv.MakePrimitiveRecord(tlv.Type(key), &id))
}

// decodeID reads an identifier counter, rejecting values above max.  A nil
// value is an unset counter and reads as zero.
func decodeID(key PropertyKey, value []byte, max uint64) (uint64, error) {
	if value == nil {
		return 0, nil
	}

	var id uint64
	err := decodeRecord(key, tlv.MakePrimitiveRecord(tlv.Type(key), &id),
		value)
	if err != nil {
		str := fmt.Sprintf("malformed %v property", key)
		return 0, storeError(ErrDecode, str, err)
	}
	if id > max {
		str := fmt.Sprintf("%v property %d exceeds %d", key, id, max)
		return 0, storeError(ErrDecode, str, nil)
	}
	return id, nil
}

// encodeDelegates returns the stored form of the active delegate list.
func encodeDelegates(ids []withdraw.NameID) ([]byte, error) {
	packed := make([]byte, 4*len(ids))
	for i, id := range ids {
		binary.BigEndian.PutUint32(packed[4*i:], uint32(id))
	}

	key := PropertyActiveDelegateList
	return encodeRecord(tlv.MakePrimitiveRecord(tlv.Type(key), &packed))
}

// decodeDelegates reads the active delegate list.  A nil value reads as an
// empty list.
func decodeDelegates(value []byte) ([]withdraw.NameID, error) {
	if value == nil {
		return nil, nil
	}

	key := PropertyActiveDelegateList
	var packed []byte
	err := decodeRecord(key, tlv.MakePrimitiveRecord(tlv.Type(key),
		&packed), value)
	if err != nil {
		return nil, storeError(ErrDecode, "malformed active delegate "+
			"list", err)
	}
	if len(packed)%4 != 0 {
		str := fmt.Sprintf("active delegate list is %d bytes, not a "+
			"multiple of 4", len(packed))
		return nil, storeError(ErrDecode, str, nil)
	}

	if len(packed) == 0 {
		return nil, nil
	}
	ids := make([]withdraw.NameID, len(packed)/4)
	for i := range ids {
		ids[i] = withdraw.NameID(
			int32(binary.BigEndian.Uint32(packed[4*i:])),
		)
	}
	return ids, nil
}
