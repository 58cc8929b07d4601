// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txrules

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/btcsuite/btcwallet/coin"
)

// DistributeFee splits a positive fee across a non-empty sequence of
// strictly positive coins in proportion to their values. The returned
// shares sum to fee exactly and preserve the input order.
//
// Shares are computed over exact rationals: the ideal share of coin i
// is fee*coins[i]/total. Each share is floored, and the shortfall
// between fee and the sum of floors is distributed one unit at a time
// to the coins with the largest fractional remainder, largest first;
// ties go to the coin appearing earliest in coins. This keeps the
// result reproducible across platforms without ever going through a
// float.
//
// DistributeFee panics if fee is zero, coins is empty, or any coin in
// coins is zero -- these are caller bugs, not recoverable conditions.
func DistributeFee(fee coin.Fee, coins []coin.Coin) []coin.Fee {
	if fee == coin.Zero {
		panic(fmt.Sprintf("txrules: DistributeFee called with zero fee over %v", coins))
	}
	if len(coins) == 0 {
		panic("txrules: DistributeFee called with an empty coin list")
	}

	total := coin.Zero
	for i, c := range coins {
		if c == coin.Zero {
			panic(fmt.Sprintf("txrules: DistributeFee: coin at index %d is zero", i))
		}
		var ok bool
		total, ok = total.Add(c)
		if !ok {
			panic("txrules: DistributeFee: sum of coins overflows Coin")
		}
	}

	n := len(coins)
	bigFee := new(big.Int).SetUint64(uint64(fee))
	bigTotal := new(big.Int).SetUint64(uint64(total))

	floors := make([]uint64, n)
	fracs := make([]*big.Int, n)
	floorSum := new(big.Int)

	for i, c := range coins {
		num := new(big.Int).SetUint64(uint64(c))
		num.Mul(num, bigFee)

		quot, rem := new(big.Int), new(big.Int)
		quot.DivMod(num, bigTotal, rem)

		floors[i] = quot.Uint64()
		fracs[i] = rem
		floorSum.Add(floorSum, quot)
	}

	// shortfall = fee - sum(floors); 0 <= shortfall < n by construction.
	shortfall := new(big.Int).SetUint64(uint64(fee))
	shortfall.Sub(shortfall, floorSum)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return fracs[order[a]].Cmp(fracs[order[b]]) > 0
	})

	roundUp := make([]bool, n)
	s := shortfall.Uint64()
	for _, idx := range order[:s] {
		roundUp[idx] = true
	}

	shares := make([]coin.Fee, n)
	for i := range coins {
		v := floors[i]
		if roundUp[i] {
			v++
		}
		shares[i] = coin.Coin(v)
	}

	return shares
}
