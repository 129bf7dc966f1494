// Copyright (c) 2026 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package scanner

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btsuite/btsledger/titan"
	"github.com/btsuite/btsledger/withdraw"
	"golang.org/x/sync/errgroup"
)

// Output is a candidate output: a withdraw condition and the position it was
// found at.
type Output struct {
	Index     int
	Condition withdraw.Condition
}

// Match is an output that was opened by one of the scanned keys.
type Match struct {
	// Index is the Output.Index of the matched output.
	Index int

	// KeyIndex is the position of the opening key in the key set.
	KeyIndex int

	// Status carries the memo and the one-time private key.
	Status titan.MemoStatus
}

// Scanner trial-decrypts outputs against receiver keys.
type Scanner struct {
	// Workers bounds the number of outputs tested at once.  Zero uses
	// one worker per CPU.
	Workers int
}

func (s *Scanner) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.NumCPU()
}

// Scan tests every ByName output against every key and returns the matches
// ordered by output index, then key index.  The scan stops early with the
// context's error when ctx is done.
func (s *Scanner) Scan(ctx context.Context, outputs []Output,
	keys []*btcec.PrivateKey) ([]Match, error) {

	var (
		mu      sync.Mutex
		matches []Match
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())

	for _, out := range outputs {
		if out.Condition.Type != withdraw.TypeByName {
			continue
		}

		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			found, err := scanOutput(gctx, out, keys)
			if err != nil {
				return err
			}
			if len(found) == 0 {
				return nil
			}

			mu.Lock()
			matches = append(matches, found...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Index != matches[j].Index {
			return matches[i].Index < matches[j].Index
		}
		return matches[i].KeyIndex < matches[j].KeyIndex
	})

	log.Debugf("Scanned %d outputs with %d keys: %d matches",
		len(outputs), len(keys), len(matches))
	return matches, nil
}

// scanOutput tries every key against a single output.
func scanOutput(ctx context.Context, out Output,
	keys []*btcec.PrivateKey) ([]Match, error) {

	payload, err := withdraw.As[withdraw.ByName](out.Condition)
	if err != nil {
		log.Warnf("Skipping output %d: %v", out.Index, err)
		return nil, nil
	}

	var found []Match
	for i, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := titan.Decrypt(key, &payload)
		switch {
		case titan.IsError(err, titan.ErrInvalidKey):
			// No key can open an output with a bad one-time key.
			log.Warnf("Skipping output %d: %v", out.Index, err)
			return found, nil

		case err != nil:
			log.Warnf("Output %d matched key %d but could not be "+
				"opened: %v", out.Index, i, err)
			continue
		}

		result.WhenSome(func(status titan.MemoStatus) {
			log.Tracef("Output %d opened by key %d", out.Index, i)
			found = append(found, Match{
				Index:    out.Index,
				KeyIndex: i,
				Status:   status,
			})
		})
	}
	return found, nil
}
