// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txrules

import "github.com/btcsuite/btcwallet/coin"

// ReduceChangeOutputs folds a total fee into a list of change coins,
// returning the coins that remain after having collectively paid it.
//
// If fee is at least the sum of change, the change is fully consumed
// and ReduceChangeOutputs returns nil -- the caller observes the
// residual (fee - sum(change)) as additional fee still owed.
//
// Otherwise the fee is distributed proportionally across the
// positive-valued coins of change (DistributeFee), subtracted from
// each, and the result is run through CoalesceDust so no surviving
// coin is worth t or less. If every coin ends up dust, the whole
// remaining value is folded into a single coin instead of being
// discarded -- unless that folded value would itself be dust, in
// which case it is absorbed into the fee instead: a surviving coin
// worth t or less is never returned.
func ReduceChangeOutputs(t coin.DustThreshold, fee coin.Fee, change []coin.Coin) []coin.Coin {
	total, ok := coin.Sum(change...)
	if !ok {
		panic("txrules: ReduceChangeOutputs: sum of change overflows Coin")
	}
	if fee >= total {
		return nil
	}

	positive := make([]coin.Coin, 0, len(change))
	for _, c := range change {
		if c != coin.Zero {
			positive = append(positive, c)
		}
	}
	if len(positive) == 0 {
		// total > fee >= 0 implies total > 0, so some coin in
		// change must be positive; reaching here is a bug in the
		// caller's bookkeeping, not a legitimate empty change set.
		panic("txrules: ReduceChangeOutputs: positive total but no positive-valued change coin")
	}

	shares := DistributeFee(fee, positive)
	reduced := make([]coin.Coin, len(positive))
	for i, c := range positive {
		remainder, ok := c.Sub(shares[i])
		if !ok {
			remainder = coin.Zero
		}
		reduced[i] = remainder
	}

	result := CoalesceDust(t, reduced)
	if len(result) == 0 {
		remaining, ok := total.Sub(fee)
		if !ok {
			panic("txrules: ReduceChangeOutputs: total-fee underflowed after establishing fee < total")
		}
		if remaining > t {
			log.Debugf("reduceChangeOutputs: every change coin went to dust, folding remaining %v into one", remaining)
			return []coin.Coin{remaining}
		}
		log.Debugf("reduceChangeOutputs: folded remaining %v is itself dust, absorbing into fee", remaining)
		return nil
	}
	return result
}
