// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txauthor implements the fee-adjustment engine: the
// iterative driver that reconciles a coin selection's inputs and
// change against an externally estimated fee, and the migration
// driver that depletes a UTxO set in self-send batches using the
// same balancing primitive.
package txauthor

import (
	"github.com/btcsuite/btcwallet/coin"
	"github.com/btcsuite/btcwallet/utxo"
)

// CoinSelection is a transaction draft: the inputs it consumes, the
// payment outputs it satisfies, and the change returned to the
// sender. Change has no keys of its own -- only inputs and outputs
// are addressed by key -- and its order is significant, since the fee
// adjuster's rounding is defined over that order.
type CoinSelection[I, O comparable] struct {
	Inputs  utxo.Map[I]
	Outputs utxo.Map[O]
	Change  []coin.Coin
}

// Clone returns a deep-enough copy of sel: Inputs and Outputs are
// copied (Map.Clone), and Change is copied into a fresh slice. Coin
// and key values themselves are plain value types, so this is a full
// value copy.
func (sel CoinSelection[I, O]) Clone() CoinSelection[I, O] {
	change := make([]coin.Coin, len(sel.Change))
	copy(change, sel.Change)
	return CoinSelection[I, O]{
		Inputs:  sel.Inputs.Clone(),
		Outputs: sel.Outputs.Clone(),
		Change:  change,
	}
}

// WithChange returns a copy of sel with its change replaced.
func (sel CoinSelection[I, O]) WithChange(change []coin.Coin) CoinSelection[I, O] {
	out := sel.Clone()
	out.Change = change
	return out
}

// changeSum totals sel.Change, panicking on overflow: a selection
// that has been constructed by this package never allows its change
// total to overflow Coin, so a failure here means the caller handed
// us a malformed selection directly.
func changeSum[I, O comparable](sel CoinSelection[I, O]) coin.Coin {
	total, ok := coin.Sum(sel.Change...)
	if !ok {
		panic("txauthor: selection change sum overflows Coin")
	}
	return total
}

// CalculateFee returns sum(inputs) - sum(outputs) - sum(change), or
// reports false if that difference would be negative -- an
// underfunded selection has no valid fee.
func CalculateFee[I, O comparable](sel CoinSelection[I, O]) (coin.Fee, bool) {
	in, ok := sel.Inputs.Sum()
	if !ok {
		return 0, false
	}
	out, ok := sel.Outputs.Sum()
	if !ok {
		return 0, false
	}
	change := changeSum(sel)

	spent, ok := out.Add(change)
	if !ok {
		return 0, false
	}
	return in.Sub(spent)
}
