// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstate

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/btsuite/btsledger/withdraw"
)

// ProposalID identifies a governance proposal.
type ProposalID int32

const (
	// DefaultDelegateFeeBasis is the delegate registration fee, in
	// thousandths of the fee rate, used when Config leaves it unset.
	DefaultDelegateFeeBasis withdraw.ShareType = 100 * 1000

	// DefaultAssetFeeBasis is the asset registration fee, in thousandths
	// of the fee rate, used when Config leaves it unset.
	DefaultAssetFeeBasis withdraw.ShareType = 500 * 1000

	// MaxActiveDelegates is the longest active delegate list that fits in
	// a single stored record of packed 4 byte ids.
	MaxActiveDelegates = math.MaxUint16 / 4
)

// Config holds the collaborators of a Chain.
type Config struct {
	// Store holds the chain properties.
	Store PropertyStore

	// FeeRate returns the current fee rate.  A nil FeeRate is a zero
	// rate.
	FeeRate func() withdraw.ShareType

	// DelegateFeeBasis and AssetFeeBasis scale the fee rate into the
	// registration fees.  Zero selects the defaults.
	DelegateFeeBasis withdraw.ShareType
	AssetFeeBasis    withdraw.ShareType
}

// Chain is the chain-wide state handle: identifier allocation, the active
// delegate cache and registration fees.
type Chain struct {
	cfg Config

	// mu serializes the read-modify-write sequences on the store.
	mu sync.Mutex
}

// New returns a Chain over the given configuration.
func New(cfg Config) *Chain {
	if cfg.DelegateFeeBasis == 0 {
		cfg.DelegateFeeBasis = DefaultDelegateFeeBasis
	}
	if cfg.AssetFeeBasis == 0 {
		cfg.AssetFeeBasis = DefaultAssetFeeBasis
	}
	return &Chain{cfg: cfg}
}

func (c *Chain) lastID(key PropertyKey, max uint64) (uint64, error) {
	value, err := c.cfg.Store.Property(key)
	if err != nil {
		return 0, err
	}
	return decodeID(key, value, max)
}

// nextID reads the counter for key, increments it by one, writes it back
// and returns the new value.
func (c *Chain) nextID(key PropertyKey, max uint64) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	last, err := c.lastID(key, max)
	if err != nil {
		return 0, err
	}
	if last >= max {
		str := fmt.Sprintf("%v property is at its maximum %d", key,
			max)
		return 0, storeError(ErrOverflow, str, nil)
	}

	next := last + 1
	value, err := encodeID(key, next)
	if err != nil {
		return 0, storeError(ErrDecode, "unable to encode "+
			key.String(), err)
	}
	if err := c.cfg.Store.SetProperty(key, value); err != nil {
		return 0, err
	}

	log.Tracef("Allocated %v %d", key, next)
	return next, nil
}

// LastAssetID returns the most recently allocated asset id, or zero.
func (c *Chain) LastAssetID() (withdraw.AssetID, error) {
	id, err := c.lastID(PropertyLastAssetID, math.MaxUint32)
	return withdraw.AssetID(id), err
}

// NewAssetID allocates and persists the next asset id.
func (c *Chain) NewAssetID() (withdraw.AssetID, error) {
	id, err := c.nextID(PropertyLastAssetID, math.MaxUint32)
	return withdraw.AssetID(id), err
}

// LastNameID returns the most recently allocated name id, or zero.
func (c *Chain) LastNameID() (withdraw.NameID, error) {
	id, err := c.lastID(PropertyLastNameID, math.MaxInt32)
	return withdraw.NameID(id), err
}

// NewNameID allocates and persists the next name id.
func (c *Chain) NewNameID() (withdraw.NameID, error) {
	id, err := c.nextID(PropertyLastNameID, math.MaxInt32)
	return withdraw.NameID(id), err
}

// LastProposalID returns the most recently allocated proposal id, or zero.
func (c *Chain) LastProposalID() (ProposalID, error) {
	id, err := c.lastID(PropertyLastProposalID, math.MaxInt32)
	return ProposalID(id), err
}

// NewProposalID allocates and persists the next proposal id.
func (c *Chain) NewProposalID() (ProposalID, error) {
	id, err := c.nextID(PropertyLastProposalID, math.MaxInt32)
	return ProposalID(id), err
}

// ActiveDelegates returns the cached active delegate list in stored order.
func (c *Chain) ActiveDelegates() ([]withdraw.NameID, error) {
	value, err := c.cfg.Store.Property(PropertyActiveDelegateList)
	if err != nil {
		return nil, err
	}
	return decodeDelegates(value)
}

// SetActiveDelegates replaces the cached active delegate list.
// Lists longer than MaxActiveDelegates are refused and leave the stored
// list untouched.
func (c *Chain) SetActiveDelegates(ids []withdraw.NameID) error {
	if len(ids) > MaxActiveDelegates {
		str := fmt.Sprintf("active delegate list has %d entries, max %d",
			len(ids), MaxActiveDelegates)
		return storeError(ErrTooManyDelegates, str, nil)
	}

	value, err := encodeDelegates(ids)
	if err != nil {
		return storeError(ErrDecode, "unable to encode active "+
			"delegate list", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.cfg.Store.SetProperty(
		PropertyActiveDelegateList, value,
	); err != nil {
		return err
	}

	log.Debugf("Active delegate list set to %d delegates", len(ids))
	return nil
}

// IsActiveDelegate reports whether id is in the active delegate list.
func (c *Chain) IsActiveDelegate(id withdraw.NameID) (bool, error) {
	active, err := c.ActiveDelegates()
	if err != nil {
		return false, err
	}
	return slices.Contains(active, id), nil
}

func (c *Chain) feeRate() withdraw.ShareType {
	if c.cfg.FeeRate == nil {
		return 0
	}
	return c.cfg.FeeRate()
}

// DelegateRegistrationFee returns fee_rate * delegate basis / 1000,
// truncated.
func (c *Chain) DelegateRegistrationFee() withdraw.ShareType {
	return c.feeRate() * c.cfg.DelegateFeeBasis / 1000
}

// AssetRegistrationFee returns fee_rate * asset basis / 1000, truncated.
func (c *Chain) AssetRegistrationFee() withdraw.ShareType {
	return c.feeRate() * c.cfg.AssetFeeBasis / 1000
}
