// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"

	"github.com/btcsuite/btcwallet/utxo"
)

// RandomSource draws a single entry uniformly at random from a UTxO
// pool, removing it and returning the pool that remains. It reports
// ok=false when the pool is empty.
//
// AdjustForFee's output is reproducible across runs only when its
// RandomSource is: SeededSource draws the same sequence for the same
// seed, while CryptoSource does not.
type RandomSource[K comparable] interface {
	Sample(pool utxo.Map[K]) (entry utxo.Entry[K], ok bool, rest utxo.Map[K])
}

// orderedSample is the shared sampling logic for both RandomSource
// implementations below: snapshot the pool in a reproducible order,
// pick an index, and return the pool with that key removed.
func orderedSample[K comparable](pool utxo.Map[K], less func(a, b K) bool, pick func(n int) int) (utxo.Entry[K], bool, utxo.Map[K]) {
	if len(pool) == 0 {
		return utxo.Entry[K]{}, false, pool
	}

	entries := pool.Entries(less)
	idx := pick(len(entries))
	chosen := entries[idx]

	return chosen, true, pool.Delete(chosen.Key)
}

// SeededSource is a reproducible RandomSource backed by a
// caller-provided PRNG seed, suitable for tests and for any caller
// that needs bit-identical selection across runs. Keys are ordered
// with less before sampling so that the same seed always draws the
// same sequence regardless of map iteration order.
type SeededSource[K comparable] struct {
	rng  *mrand.Rand
	less func(a, b K) bool
}

// NewSeededSource builds a SeededSource from an explicit seed and key
// comparator.
func NewSeededSource[K comparable](seed int64, less func(a, b K) bool) *SeededSource[K] {
	return &SeededSource[K]{
		rng:  mrand.New(mrand.NewSource(seed)),
		less: less,
	}
}

// Sample implements RandomSource.
func (s *SeededSource[K]) Sample(pool utxo.Map[K]) (utxo.Entry[K], bool, utxo.Map[K]) {
	return orderedSample(pool, s.less, s.rng.Intn)
}

// CryptoSource is a RandomSource backed by crypto/rand, intended for
// production use where the draw must not be predictable by an
// adversary who can observe prior selections (e.g. to fingerprint a
// wallet's coin selection policy). It is not reproducible across
// runs; tests should use SeededSource instead.
type CryptoSource[K comparable] struct {
	less func(a, b K) bool
}

// NewCryptoSource builds a CryptoSource with the given key comparator.
func NewCryptoSource[K comparable](less func(a, b K) bool) *CryptoSource[K] {
	return &CryptoSource[K]{less: less}
}

// Sample implements RandomSource.
func (s *CryptoSource[K]) Sample(pool utxo.Map[K]) (utxo.Entry[K], bool, utxo.Map[K]) {
	return orderedSample(pool, s.less, func(n int) int {
		max := big.NewInt(int64(n))
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failure means the platform's entropy
			// source is broken; there is no safe way to continue
			// drawing UTxOs at random.
			panic("txauthor: CryptoSource: crypto/rand unavailable: " + err.Error())
		}
		return int(idx.Int64())
	})
}
