// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package withdraw

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNewBalanceRecord tests that a new record is a signature condition
// over the owner gating the asset of the balance.
func TestNewBalanceRecord(t *testing.T) {
	t.Parallel()

	amount := Asset{Amount: 25000, AssetID: 3}
	rec := NewBalanceRecord(testOwner, amount, 17)

	require.Equal(t, amount.Amount, rec.Balance)
	require.Equal(t, TypeSignature, rec.Condition.Type)
	require.Equal(t, AssetID(3), rec.Condition.AssetID)
	require.Equal(t, NameID(17), rec.Condition.DelegateID)
	require.Equal(t, testOwner, rec.Owner())
	require.Equal(t, amount, rec.GetBalance())
	require.Equal(t, rec.Condition.Address(), rec.ID())
}

// TestGetBalanceTrustsCondition tests that the balance is always tagged with
// the asset id the condition currently holds.
func TestGetBalanceTrustsCondition(t *testing.T) {
	t.Parallel()

	rec := NewBalanceRecord(testOwner, Asset{Amount: 10, AssetID: 1}, 0)
	rec.Condition.AssetID = 2

	require.Equal(t, Asset{Amount: 10, AssetID: 2}, rec.GetBalance())
}

// TestBalanceRecordOwner tests that records delegate owner resolution to
// their condition.
func TestBalanceRecordOwner(t *testing.T) {
	t.Parallel()

	for _, v := range testVariants {
		cond, err := NewCondition(v, 0, 0)
		require.NoError(t, err)

		rec := BalanceRecord{Balance: 1, Condition: cond}
		require.Equal(t, cond.Owner(), rec.Owner(), v.Type().String())
	}
}

// TestBalanceRecordEncoding tests the wire and JSON encodings of records.
func TestBalanceRecordEncoding(t *testing.T) {
	t.Parallel()

	for _, v := range testVariants {
		cond, err := NewCondition(v, 4, 5)
		require.NoError(t, err)
		rec := BalanceRecord{Balance: -3, Condition: cond}

		decoded, err := ParseBalanceRecord(rec.Bytes())
		require.NoError(t, err)
		require.Equal(t, rec, decoded)

		b, err := json.Marshal(rec)
		require.NoError(t, err)
		var fromJSON BalanceRecord
		require.NoError(t, json.Unmarshal(b, &fromJSON))
		require.Equal(t, rec, fromJSON)
	}

	rec := NewBalanceRecord(testOwner, Asset{Amount: 1}, 0)
	_, err := ParseBalanceRecord(append(rec.Bytes(), 1))
	require.True(t, IsError(err, ErrDecode), "got %v", err)

	_, err = ParseBalanceRecord(rec.Bytes()[:4])
	require.True(t, IsError(err, ErrDecode), "got %v", err)
}
