// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package withdraw

import "fmt"

// AssetID identifies a fungible asset type.  Zero is the base asset.
type AssetID uint32

// NameID identifies a registered name.  Delegates are names, so the delegate
// a balance votes for is a NameID.  Negative ids are kept as given.
type NameID int32

// ShareType is an integer amount of an asset.
type ShareType int64

// Asset is an amount tagged with the asset it is denominated in.
type Asset struct {
	Amount  ShareType `json:"amount"`
	AssetID AssetID   `json:"asset_id"`
}

// String returns a human-readable form of the asset amount.
func (a Asset) String() string {
	return fmt.Sprintf("%d asset %d", a.Amount, a.AssetID)
}

// ConditionType is the one byte tag selecting how a condition payload is
// decoded.
type ConditionType uint8

// These constants are the known withdraw condition types.
const (
	TypeNull      ConditionType = 0
	TypeSignature ConditionType = 1
	TypeMultiSig  ConditionType = 2
	TypePassword  ConditionType = 3
	TypeOption    ConditionType = 4
	TypeByName    ConditionType = 5
)

// Map of ConditionType values back to their names for pretty printing.
var conditionTypeStrings = map[ConditionType]string{
	TypeNull:      "null",
	TypeSignature: "signature",
	TypeMultiSig:  "multi_sig",
	TypePassword:  "password",
	TypeOption:    "option",
	TypeByName:    "by_name",
}

// String returns the ConditionType as a human-readable name.
func (t ConditionType) String() string {
	if s, ok := conditionTypeStrings[t]; ok {
		return s
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}
