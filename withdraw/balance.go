// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package withdraw

import (
	"bytes"
	"fmt"
	"io"

	"github.com/btsuite/btsledger/address"
)

// BalanceRecord is an amount held under a withdraw condition.  Records are
// immutable once committed; spending one consumes it and produces new
// records.
type BalanceRecord struct {
	Balance   ShareType `json:"balance"`
	Condition Condition `json:"condition"`
}

// NewBalanceRecord returns a record of balance claimable by a signature
// from owner.
func NewBalanceRecord(owner address.Address, balance Asset,
	delegate NameID) BalanceRecord {

	return BalanceRecord{
		Balance:   balance.Amount,
		Condition: NewSignature(owner, balance, delegate),
	}
}

// GetBalance returns the stored amount tagged with the asset id the
// condition currently holds.  The amount is not checked against the asset
// it was created for.
func (r BalanceRecord) GetBalance() Asset {
	return Asset{
		Amount:  r.Balance,
		AssetID: r.Condition.AssetID,
	}
}

// Owner returns the single key owner of the record's condition, or the null
// address when the condition has none.
func (r BalanceRecord) Owner() address.Address {
	return r.Condition.Owner()
}

// ID returns the address of the record's condition, which identifies the
// balance on chain.
func (r BalanceRecord) ID() address.Address {
	return r.Condition.Address()
}

// Serialize writes the balance as an int64 LE followed by the condition.
func (r BalanceRecord) Serialize(w io.Writer) error {
	if err := writeUint64(w, uint64(r.Balance)); err != nil {
		return err
	}
	return r.Condition.Serialize(w)
}

// Bytes returns the encoding of the record.
func (r BalanceRecord) Bytes() []byte {
	var buf bytes.Buffer

	// Writes to a bytes.Buffer never fail.
	_ = r.Serialize(&buf)
	return buf.Bytes()
}

// Deserialize reads a record from rd.  r is left untouched on error.
func (r *BalanceRecord) Deserialize(rd io.Reader) error {
	balance, err := readUint64(rd)
	if err != nil {
		return conditionError(ErrDecode, "failed to read balance", err)
	}

	var cond Condition
	if err := cond.Deserialize(rd); err != nil {
		return err
	}

	r.Balance = ShareType(balance)
	r.Condition = cond
	return nil
}

// ParseBalanceRecord decodes a record that must span all of b.
func ParseBalanceRecord(b []byte) (BalanceRecord, error) {
	var rec BalanceRecord

	rd := bytes.NewReader(b)
	if err := rec.Deserialize(rd); err != nil {
		return BalanceRecord{}, err
	}
	if rd.Len() != 0 {
		str := fmt.Sprintf("%d trailing bytes after balance record",
			rd.Len())
		return BalanceRecord{}, conditionError(ErrDecode, str, nil)
	}
	return rec, nil
}
