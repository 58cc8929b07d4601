// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coin implements a non-negative integer money value used
// throughout the coin-selection and fee-balancing packages.
package coin

import "fmt"

// Coin is a non-negative integer amount, denominated in a chain's
// smallest unit (e.g. satoshis). The zero value is the zero Coin.
//
// Coin is a value type: all operations return a new Coin (or report
// failure) rather than mutating the receiver.
type Coin uint64

// Zero is the additive identity.
const Zero Coin = 0

// MaxCoin is the largest representable Coin. It exists so overflow in
// Add can be detected without relying on wraparound.
const MaxCoin = Coin(^uint64(0))

// FromIntegral converts a signed integer to a Coin, rejecting negatives.
func FromIntegral(v int64) (Coin, bool) {
	if v < 0 {
		return 0, false
	}
	return Coin(v), true
}

// Int64 converts a Coin back to a signed integer. It reports false if
// the value overflows int64.
func (c Coin) Int64() (int64, bool) {
	if c > Coin(MaxCoin>>1) {
		return 0, false
	}
	return int64(c), true
}

// Add returns c+o. It reports false instead of wrapping when the sum
// would overflow the Coin domain.
func (c Coin) Add(o Coin) (Coin, bool) {
	sum := c + o
	if sum < c {
		return 0, false
	}
	return sum, true
}

// Sub returns c-o. It reports false when o exceeds c, since Coin has
// no representation for negative values.
func (c Coin) Sub(o Coin) (Coin, bool) {
	if o > c {
		return 0, false
	}
	return c - o, true
}

// Distance returns |a-b|.
func Distance(a, b Coin) Coin {
	if a > b {
		return a - b
	}
	return b - a
}

// Div divides c by a positive count, returning false for a zero count.
func (c Coin) Div(count uint64) (Coin, bool) {
	if count == 0 {
		return 0, false
	}
	return Coin(uint64(c) / count), true
}

// Mod returns c mod count, returning false for a zero count.
func (c Coin) Mod(count uint64) (Coin, bool) {
	if count == 0 {
		return 0, false
	}
	return Coin(uint64(c) % count), true
}

// String implements fmt.Stringer.
func (c Coin) String() string {
	return fmt.Sprintf("%d", uint64(c))
}

// Fee is a Coin used solely in the fee role. It forms a monoid under
// addition with Zero as identity.
type Fee = Coin

// SumFees adds a sequence of fees, failing on overflow.
func SumFees(fees ...Fee) (Fee, bool) {
	total := Zero
	for _, f := range fees {
		var ok bool
		total, ok = total.Add(f)
		if !ok {
			return 0, false
		}
	}
	return total, true
}

// DustThreshold is a Coin below or at which an output is considered
// economically unspendable (dust).
type DustThreshold = Coin

// IsDust reports whether v is dust under threshold t: v <= t.
func IsDust(v Coin, t DustThreshold) bool {
	return v <= t
}

// Sum adds a sequence of Coins, failing on overflow.
func Sum(cs ...Coin) (Coin, bool) {
	total := Zero
	for _, c := range cs {
		var ok bool
		total, ok = total.Add(c)
		if !ok {
			return 0, false
		}
	}
	return total, true
}
