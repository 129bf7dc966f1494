// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstate

import "sync"

// MemStore is a PropertyStore held in memory.
type MemStore struct {
	mu    sync.RWMutex
	props map[PropertyKey][]byte
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{props: make(map[PropertyKey][]byte)}
}

// Property returns a copy of the value stored for key.
func (s *MemStore) Property(key PropertyKey) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.props[key]
	if !ok {
		return nil, nil
	}
	return append([]byte{}, v...), nil
}

// SetProperty stores a copy of value for key.
func (s *MemStore) SetProperty(key PropertyKey, value []byte) error {
	s.mu.Lock()
	s.props[key] = append([]byte{}, value...)
	s.mu.Unlock()
	return nil
}
