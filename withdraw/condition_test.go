// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package withdraw

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btsuite/btsledger/address"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// asVariant decodes c with As for the variant type named by want.
func asVariant(c Condition, want Variant) (Variant, error) {
	switch want.(type) {
	case Null:
		return As[Null](c)
	case Signature:
		return As[Signature](c)
	case MultiSig:
		return As[MultiSig](c)
	case Password:
		return As[Password](c)
	case Option:
		return As[Option](c)
	case ByName:
		return As[ByName](c)
	}
	panic("unknown variant")
}

// TestConditionRoundTrip tests that every variant survives the wire and
// JSON encodings unchanged.
func TestConditionRoundTrip(t *testing.T) {
	t.Parallel()

	for _, v := range testVariants {
		v := v
		t.Run(v.Type().String(), func(t *testing.T) {
			t.Parallel()

			cond, err := NewCondition(v, 3, -12)
			require.NoError(t, err)
			require.Equal(t, v.Type(), cond.Type)

			// Wire.
			wireBytes := cond.Bytes()
			decoded, err := ParseCondition(wireBytes)
			require.NoError(t, err, spew.Sdump(wireBytes))
			require.Equal(t, cond, decoded)
			require.Equal(t, wireBytes, decoded.Bytes())

			got, err := asVariant(decoded, v)
			require.NoError(t, err)
			require.Equal(t, v, got)

			// JSON.
			jsonBytes, err := json.Marshal(cond)
			require.NoError(t, err)

			var fromJSON Condition
			require.NoError(t, json.Unmarshal(jsonBytes, &fromJSON))
			require.Equal(t, cond, fromJSON)
		})
	}
}

// TestConditionJSONShape checks the JSON field names and that data is the
// structured variant.
func TestConditionJSONShape(t *testing.T) {
	t.Parallel()

	cond := NewSignature(testOwner, Asset{Amount: 5, AssetID: 9}, 4)
	b, err := json.Marshal(cond)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	require.Equal(t, float64(9), m["asset_id"])
	require.Equal(t, float64(4), m["delegate_id"])
	require.Equal(t, float64(TypeSignature), m["type"])
	require.Equal(t, map[string]interface{}{
		"owner": testOwner.String(),
	}, m["data"])

	null, err := NewCondition(Null{}, 0, 0)
	require.NoError(t, err)
	b, err = json.Marshal(null)
	require.NoError(t, err)
	require.JSONEq(t,
		`{"asset_id":0,"delegate_id":0,"type":0,"data":null}`,
		string(b))
}

// TestAsTypeMismatch tests that asking for the wrong variant fails with
// ErrTypeMismatch.
func TestAsTypeMismatch(t *testing.T) {
	t.Parallel()

	cond := NewSignature(testOwner, Asset{}, 0)

	_, err := As[ByName](cond)
	require.True(t, IsError(err, ErrTypeMismatch), "got %v", err)

	_, err = As[MultiSig](cond)
	require.True(t, IsError(err, ErrTypeMismatch), "got %v", err)

	sig, err := As[Signature](cond)
	require.NoError(t, err)
	require.Equal(t, testOwner, sig.Owner)
}

// TestOwner tests owner resolution for every variant.
func TestOwner(t *testing.T) {
	t.Parallel()

	for _, v := range testVariants {
		cond, err := NewCondition(v, 0, 0)
		require.NoError(t, err)

		var want address.Address
		switch v := v.(type) {
		case Signature:
			want = v.Owner
		case ByName:
			want = v.Owner
		}
		require.Equal(t, want, cond.Owner(), v.Type().String())
	}

	// A signature condition whose payload was tampered with has no
	// resolvable owner.
	bad := NewSignature(testOwner, Asset{}, 0)
	bad.Data = bad.Data[:5]
	require.True(t, bad.Owner().IsNull())
}

// TestAddressOf tests that the condition address is a deterministic hash of
// every serialized field.
func TestAddressOf(t *testing.T) {
	t.Parallel()

	a := NewSignature(testOwner, Asset{AssetID: 1}, 2)
	b := NewSignature(testOwner, Asset{AssetID: 1}, 2)
	require.Equal(t, AddressOf(a), AddressOf(b))
	require.Equal(t, address.FromBytes(a.Bytes()), a.Address())

	c := NewSignature(testOwner, Asset{AssetID: 1}, 3)
	require.NotEqual(t, AddressOf(a), AddressOf(c))

	d := NewSignature(otherAddr, Asset{AssetID: 1}, 2)
	require.NotEqual(t, AddressOf(a), AddressOf(d))
}

// TestDecodeErrors tests that malformed encodings are rejected with
// ErrDecode and never partially applied.
func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	good := NewSignature(testOwner, Asset{AssetID: 1}, 2).Bytes()

	unknown := append([]byte(nil), good...)
	unknown[8] = 9

	trailing := append(append([]byte(nil), good...), 0x00)

	// The payload length 20 encoded as a 3 byte CompactSize.
	nonCanonical := append([]byte(nil), good[:9]...)
	nonCanonical = append(nonCanonical, 0xfd, 20, 0)
	nonCanonical = append(nonCanonical, testOwner[:]...)

	// A ByName payload whose one-time key is zeroed.
	badKey, err := NewCondition(testVariants[5], 0, 0)
	require.NoError(t, err)
	badKey.Data = append([]byte(nil), badKey.Data...)
	copy(badKey.Data[address.Size:], make([]byte, address.PublicKeySize))

	// A Signature type tag over a MultiSig payload.
	multi, err := NewCondition(testVariants[2], 0, 0)
	require.NoError(t, err)
	multi.Type = TypeSignature

	tests := []struct {
		name string
		b    []byte
	}{
		{"empty", nil},
		{"truncated header", good[:6]},
		{"truncated payload", good[:len(good)-1]},
		{"unknown type", unknown},
		{"trailing bytes", trailing},
		{"non-canonical length", nonCanonical},
		{"invalid one-time key", badKey.Bytes()},
		{"payload of another type", multi.Bytes()},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseCondition(test.b)
			require.True(t, IsError(err, ErrDecode), "got %v", err)

			c := NewSignature(otherAddr, Asset{}, 0)
			before := c
			err = c.Deserialize(bytes.NewReader(test.b))
			if test.name == "trailing bytes" {
				// Stream decoding stops at the end of the
				// condition.
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Equal(t, before, c)
		})
	}
}

// TestUnmarshalJSONErrors tests that JSON conditions are held to the wire
// rules.
func TestUnmarshalJSONErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
	}{{
		name: "unknown type",
		json: `{"asset_id":0,"delegate_id":0,"type":42,"data":null}`,
	}, {
		name: "missing data",
		json: `{"asset_id":0,"delegate_id":0,"type":1}`,
	}, {
		name: "bad owner",
		json: `{"asset_id":0,"delegate_id":0,"type":1,` +
			`"data":{"owner":"BTSnotanaddress"}}`,
	}, {
		name: "missing one-time key",
		json: `{"asset_id":0,"delegate_id":0,"type":5,` +
			`"data":{"owner":"` + testOwner.String() + `"}}`,
	}, {
		name: "not an object",
		json: `[1,2,3]`,
	}}
	for _, test := range tests {
		var c Condition
		err := json.Unmarshal([]byte(test.json), &c)
		require.True(t, IsError(err, ErrDecode), "%s: got %v",
			test.name, err)
		require.Equal(t, Condition{}, c, test.name)
	}
}

// TestNewConditionLimits tests that oversized payloads are refused.
func TestNewConditionLimits(t *testing.T) {
	t.Parallel()

	_, err := NewCondition(ByName{
		Owner:             testOwner,
		OneTimeKey:        address.NewPublicKey(testPubKey),
		EncryptedMemoData: make(HexBytes, MaxEncryptedMemoSize+1),
	}, 0, 0)
	require.True(t, IsError(err, ErrValidation), "got %v", err)
}

// TestNewConditionUndecodable tests that a variant whose encoding the wire
// decoder would refuse is never turned into a condition.
func TestNewConditionUndecodable(t *testing.T) {
	t.Parallel()

	var offCurve address.PublicKey
	offCurve[0] = 0x02
	for i := 1; i < len(offCurve); i++ {
		offCurve[i] = 0xff
	}

	tests := []struct {
		name string
		v    Variant
	}{
		{"zero one-time key", ByName{Owner: testOwner}},
		{"off-curve one-time key", ByName{
			Owner:             testOwner,
			OneTimeKey:        offCurve,
			EncryptedMemoData: HexBytes{1},
		}},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			c, err := NewCondition(test.v, 1, 2)
			require.True(t, IsError(err, ErrValidation), "got %v", err)
			require.Equal(t, Condition{}, c)
		})
	}

	// The same key is refused when it arrives as JSON.
	good, err := NewCondition(testVariants[5], 1, 2)
	require.NoError(t, err)
	b, err := json.Marshal(good)
	require.NoError(t, err)
	zeroKey := address.PublicKey{}
	b = bytes.Replace(
		b, []byte(address.NewPublicKey(testPubKey).String()),
		[]byte(zeroKey.String()), 1,
	)

	var c Condition
	err = json.Unmarshal(b, &c)
	require.True(t, IsError(err, ErrDecode), "got %v", err)
	require.Equal(t, Condition{}, c)
}

func drawAddress(t *rapid.T, label string) address.Address {
	var a address.Address
	copy(a[:], rapid.SliceOfN(rapid.Byte(), address.Size,
		address.Size).Draw(t, label))
	return a
}

func drawVariant(t *rapid.T) Variant {
	typ := ConditionType(rapid.IntRange(0, 5).Draw(t, "type"))
	switch typ {
	case TypeSignature:
		return Signature{Owner: drawAddress(t, "owner")}

	case TypeMultiSig:
		n := rapid.IntRange(1, 8).Draw(t, "owners")
		owners := make([]address.Address, n)
		for i := range owners {
			owners[i] = drawAddress(t, "owner")
		}
		return MultiSig{
			Required: rapid.Uint32().Draw(t, "required"),
			Owners:   owners,
		}

	case TypePassword:
		return Password{
			Payee:        drawAddress(t, "payee"),
			Payor:        drawAddress(t, "payor"),
			Timeout:      rapid.Uint32().Draw(t, "timeout"),
			PasswordHash: Digest(drawAddress(t, "hash")),
		}

	case TypeOption:
		return Option{
			Optionor: drawAddress(t, "optionor"),
			Optionee: drawAddress(t, "optionee"),
			Date:     rapid.Uint32().Draw(t, "date"),
			StrikePrice: Price{
				Ratio: rapid.Uint64().Draw(t, "ratio"),
				BaseAssetID: AssetID(
					rapid.Uint32().Draw(t, "base"),
				),
				QuoteAssetID: AssetID(
					rapid.Uint32().Draw(t, "quote"),
				),
			},
		}

	case TypeByName:
		priv, err := btcec.NewPrivateKey()
		require.NoError(t, err)
		return ByName{
			Owner:      drawAddress(t, "owner"),
			OneTimeKey: address.NewPublicKey(priv.PubKey()),
			EncryptedMemoData: rapid.SliceOfN(
				rapid.Byte(), 1, MaxEncryptedMemoSize,
			).Draw(t, "memo"),
		}
	}
	return Null{}
}

// testConditionProperties is a rapid property that verifies the wire and
// JSON encodings of random conditions.
func testConditionProperties(t *rapid.T) {
	v := drawVariant(t)
	cond, err := NewCondition(
		v, AssetID(rapid.Uint32().Draw(t, "asset")),
		NameID(rapid.Int32().Draw(t, "delegate")),
	)
	require.NoError(t, err)

	decoded, err := ParseCondition(cond.Bytes())
	require.NoError(t, err)
	require.Equal(t, cond, decoded)

	got, err := decoded.Variant()
	require.NoError(t, err)
	require.Equal(t, v, got)

	b, err := json.Marshal(cond)
	require.NoError(t, err)
	var fromJSON Condition
	require.NoError(t, json.Unmarshal(b, &fromJSON))
	require.Equal(t, cond, fromJSON)
}

// TestConditionEncodeDecode tests the encode/decode paths of conditions with
// random variants.
func TestConditionEncodeDecode(t *testing.T) {
	t.Parallel()

	rapid.Check(t, testConditionProperties)
}
