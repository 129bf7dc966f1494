// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package withdraw

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// conditionJSON is the JSON form of a condition.  Data holds the structured
// variant rather than the raw payload.
type conditionJSON struct {
	AssetID    AssetID         `json:"asset_id"`
	DelegateID NameID          `json:"delegate_id"`
	Type       ConditionType   `json:"type"`
	Data       json.RawMessage `json:"data"`
}

// MarshalJSON implements json.Marshaler.
func (c Condition) MarshalJSON() ([]byte, error) {
	v, err := c.Variant()
	if err != nil {
		return nil, err
	}

	var data json.RawMessage
	if c.Type == TypeNull {
		data = json.RawMessage("null")
	} else {
		data, err = json.Marshal(v)
		if err != nil {
			return nil, err
		}
	}

	return json.Marshal(conditionJSON{
		AssetID:    c.AssetID,
		DelegateID: c.DelegateID,
		Type:       c.Type,
		Data:       data,
	})
}

// UnmarshalJSON implements json.Unmarshaler.  An unknown type or data that
// does not describe a valid variant of the given type is rejected with
// ErrDecode and leaves c untouched.
func (c *Condition) UnmarshalJSON(b []byte) error {
	var cj conditionJSON
	if err := json.Unmarshal(b, &cj); err != nil {
		return conditionError(ErrDecode, "malformed condition JSON", err)
	}

	codec, ok := codecs[cj.Type]
	if !ok {
		str := fmt.Sprintf("unknown condition type %d", uint8(cj.Type))
		return conditionError(ErrDecode, str, nil)
	}

	data := bytes.TrimSpace(cj.Data)
	if len(data) == 0 {
		if cj.Type != TypeNull {
			str := fmt.Sprintf("missing data for %v condition",
				cj.Type)
			return conditionError(ErrDecode, str, nil)
		}
		data = []byte("null")
	}

	v, err := codec.fromJSON(data)
	if err != nil {
		str := fmt.Sprintf("malformed %v data", cj.Type)
		return conditionError(ErrDecode, str, err)
	}

	// Run the encoding back through the wire decoder so that a JSON
	// condition is held to the same rules as one read off the wire.
	cond, err := NewCondition(v, cj.AssetID, cj.DelegateID)
	if err != nil {
		return conditionError(ErrDecode, "invalid condition data", err)
	}
	if _, err := cond.Variant(); err != nil {
		return err
	}
	if len(cond.Data) == 0 {
		cond.Data = nil
	}

	*c = cond
	return nil
}
