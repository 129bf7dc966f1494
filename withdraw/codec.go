// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package withdraw

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/btsuite/btsledger/address"
)

// byteOrder is the byte order of every fixed width integer on the wire.
var byteOrder = binary.LittleEndian

// variantCodec is one entry of the codec table.
type variantCodec struct {
	decode   func(io.Reader) (Variant, error)
	fromJSON func([]byte) (Variant, error)
}

// codecs maps every known condition type to its decoders.  A type missing
// from this table is rejected by every decoding path.
var codecs = map[ConditionType]variantCodec{
	TypeNull:      {decodeNull, fromJSON[Null]},
	TypeSignature: {decodeSignature, fromJSON[Signature]},
	TypeMultiSig:  {decodeMultiSig, fromJSON[MultiSig]},
	TypePassword:  {decodePassword, fromJSON[Password]},
	TypeOption:    {decodeOption, fromJSON[Option]},
	TypeByName:    {decodeByName, fromJSON[ByName]},
}

// fromJSON decodes the JSON form of a variant.
func fromJSON[T ConcreteVariant](b []byte) (Variant, error) {
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// encodeVariant returns the canonical payload encoding of v.
func encodeVariant(v Variant) []byte {
	var buf bytes.Buffer

	// Writes to a bytes.Buffer never fail.
	_ = v.encode(&buf)
	return buf.Bytes()
}

// decodeVariant decodes data as the payload of a condition of type t.  The
// whole of data must be consumed.
func decodeVariant(t ConditionType, data []byte) (Variant, error) {
	codec, ok := codecs[t]
	if !ok {
		str := fmt.Sprintf("unknown condition type %d", uint8(t))
		return nil, conditionError(ErrDecode, str, nil)
	}

	r := bytes.NewReader(data)
	v, err := codec.decode(r)
	if err != nil {
		str := fmt.Sprintf("malformed %v payload", t)
		return nil, conditionError(ErrDecode, str, err)
	}
	if r.Len() != 0 {
		str := fmt.Sprintf("%d trailing bytes after %v payload",
			r.Len(), t)
		return nil, conditionError(ErrDecode, str, nil)
	}
	return v, nil
}

func writeUint32(w io.Writer, v uint32) error {
	var b [4]byte
	byteOrder.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return byteOrder.Uint32(b[:]), nil
}

func writeUint64(w io.Writer, v uint64) error {
	var b [8]byte
	byteOrder.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return byteOrder.Uint64(b[:]), nil
}

func readAddress(r io.Reader, a *address.Address) error {
	_, err := io.ReadFull(r, a[:])
	return err
}
