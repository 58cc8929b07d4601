// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txrules

import "github.com/btcsuite/btcwallet/coin"

// SplitCoin distributes v evenly across xs, returning a new slice the
// same length as xs where each element has grown by q or q+1, q being
// v div len(xs). The last v mod len(xs) elements absorb the extra
// unit, so the total grows by exactly v.
//
// When xs is empty, SplitCoin returns []Coin{v} if v is positive, or
// an empty slice if v is zero -- there is nothing to split onto and
// nothing to report.
func SplitCoin(v coin.Coin, xs []coin.Coin) []coin.Coin {
	n := len(xs)
	if n == 0 {
		if v == coin.Zero {
			return nil
		}
		return []coin.Coin{v}
	}

	q, _ := v.Div(uint64(n))
	r, _ := v.Mod(uint64(n))

	ys := make([]coin.Coin, n)
	for i, x := range xs {
		add := q
		if coin.Coin(n-i) <= r {
			add++
		}
		sum, ok := x.Add(add)
		if !ok {
			panic("txrules: SplitCoin: result overflows Coin")
		}
		ys[i] = sum
	}
	return ys
}

// CoalesceDust removes every coin at or below threshold t from xs and
// redistributes their combined value over the survivors via
// SplitCoin, preserving sum(xs) exactly. If every coin in xs is dust,
// the result is empty: there is nothing left to absorb the lost
// value. ReduceChangeOutputs handles that case itself, folding the
// remaining value into a single coin or into the fee.
//
// CoalesceDust panics if xs is empty -- callers are expected to check
// for this degenerate case themselves, since an empty change list
// isn't a dust problem at all.
func CoalesceDust(t coin.DustThreshold, xs []coin.Coin) []coin.Coin {
	if len(xs) == 0 {
		panic("txrules: CoalesceDust called with an empty coin list")
	}

	keep := make([]coin.Coin, 0, len(xs))
	dust := coin.Zero
	for _, x := range xs {
		if coin.IsDust(x, t) {
			var ok bool
			dust, ok = dust.Add(x)
			if !ok {
				panic("txrules: CoalesceDust: dust sum overflows Coin")
			}
			continue
		}
		keep = append(keep, x)
	}

	if len(keep) == 0 {
		return nil
	}
	if dust == coin.Zero {
		return keep
	}
	return SplitCoin(dust, keep)
}
