// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package utxo provides the generic key-value pool of spendable coins
// that the coin-selection and fee-balancing packages operate over. It
// plays the role wtxmgr.Credit plays for a concrete on-chain wallet,
// generalized so the fee adjuster never needs to know what K is.
package utxo

import (
	"sort"

	"github.com/btcsuite/btcwallet/coin"
)

// Entry is a single (key, coin) pair. Key is an opaque identifier,
// typically a UTxO outpoint; it carries no meaning to this package
// beyond uniqueness within a Map.
type Entry[K comparable] struct {
	Key  K
	Coin coin.Coin
}

// Map is a mapping from K to Coin with unique keys. Iteration order is
// not part of its value semantics; callers that need a reproducible
// order should use Entries, which sorts deterministically.
type Map[K comparable] map[K]coin.Coin

// New builds a Map from a list of entries. Later entries overwrite
// earlier ones sharing the same key, matching normal map semantics.
func New[K comparable](entries ...Entry[K]) Map[K] {
	m := make(Map[K], len(entries))
	for _, e := range entries {
		m[e.Key] = e.Coin
	}
	return m
}

// Sum totals every Coin in the map, failing on overflow.
func (m Map[K]) Sum() (coin.Coin, bool) {
	total := coin.Zero
	for _, c := range m {
		var ok bool
		total, ok = total.Add(c)
		if !ok {
			return 0, false
		}
	}
	return total, true
}

// Clone returns a shallow copy. Since Coin is a value type, this is a
// full value copy.
func (m Map[K]) Clone() Map[K] {
	out := make(Map[K], len(m))
	for k, c := range m {
		out[k] = c
	}
	return out
}

// Entries returns the map's (key, coin) pairs ordered by a caller
// supplied less function over keys, for call sites that need a
// reproducible iteration order (e.g. batching in the migration
// driver). When less is nil, entries are returned in the map's
// native (hash-randomized) order.
func (m Map[K]) Entries(less func(a, b K) bool) []Entry[K] {
	out := make([]Entry[K], 0, len(m))
	for k, c := range m {
		out = append(out, Entry[K]{Key: k, Coin: c})
	}
	if less != nil {
		sort.Slice(out, func(i, j int) bool {
			return less(out[i].Key, out[j].Key)
		})
	}
	return out
}

// Delete removes a key, returning a new Map (m is left untouched).
func (m Map[K]) Delete(k K) Map[K] {
	out := m.Clone()
	delete(out, k)
	return out
}

// Extend returns a new Map containing every entry of m plus extra,
// with extra's keys taking precedence on collision.
func (m Map[K]) Extend(extra ...Entry[K]) Map[K] {
	out := m.Clone()
	for _, e := range extra {
		out[e.Key] = e.Coin
	}
	return out
}
