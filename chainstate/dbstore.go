// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstate

import (
	"github.com/btcsuite/btcwallet/walletdb"
)

// propertyBucketName is the top level bucket chain properties are kept in.
var propertyBucketName = []byte("chainprops")

// DBStore is a PropertyStore kept in a top level bucket of a walletdb
// database.
type DBStore struct {
	db walletdb.DB
}

// NewDBStore returns a DBStore over db, creating its bucket if needed.
func NewDBStore(db walletdb.DB) (*DBStore, error) {
	err := walletdb.Update(db, func(tx walletdb.ReadWriteTx) error {
		_, err := tx.CreateTopLevelBucket(propertyBucketName)
		return err
	})
	if err != nil {
		return nil, storeError(ErrDatabase, "failed to create "+
			"property bucket", err)
	}
	return &DBStore{db: db}, nil
}

// Property returns the value stored for key.
func (s *DBStore) Property(key PropertyKey) ([]byte, error) {
	var value []byte
	err := walletdb.View(s.db, func(tx walletdb.ReadTx) error {
		bucket := tx.ReadBucket(propertyBucketName)
		if bucket == nil {
			return walletdb.ErrBucketNotFound
		}

		// The slice is only valid for the life of the transaction.
		if v := bucket.Get(propertyDBKey(key)); v != nil {
			value = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, storeError(ErrDatabase, "failed to read "+
			key.String(), err)
	}
	return value, nil
}

// SetProperty stores value for key.
func (s *DBStore) SetProperty(key PropertyKey, value []byte) error {
	err := walletdb.Update(s.db, func(tx walletdb.ReadWriteTx) error {
		bucket := tx.ReadWriteBucket(propertyBucketName)
		if bucket == nil {
			return walletdb.ErrBucketNotFound
		}
		return bucket.Put(propertyDBKey(key), value)
	})
	if err != nil {
		return storeError(ErrDatabase, "failed to write "+
			key.String(), err)
	}
	return nil
}

func propertyDBKey(key PropertyKey) []byte {
	return []byte{byte(key)}
}
