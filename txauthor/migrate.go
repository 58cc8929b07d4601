// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"github.com/btcsuite/btcwallet/coin"
	"github.com/btcsuite/btcwallet/utxo"
)

// NoOutputs is the output-key type used by migration selections:
// depleteUTxO never pays a third party, so its selections carry no
// payment outputs at all.
type NoOutputs = struct{}

// MigrationFeeEstimator estimates the fee for a self-send selection:
// one with no payment outputs, only inputs and change.
type MigrationFeeEstimator[I comparable] = FeeEstimator[I, NoOutputs]

// DepleteUTxO repeatedly batches up to batchSize entries of utxo (in
// the order produced by less) into self-send selections with no
// payment outputs, rebalances each batch's change against
// feeEstimator, and returns the accepted selections. Every accepted
// entry appears in exactly one returned selection's inputs; an entry
// is dropped from the output only if its batch could not be balanced
// at all, in which case migration stops and no further batches are
// attempted.
func DepleteUTxO[I comparable](
	feeEstimator MigrationFeeEstimator[I],
	dustThreshold coin.DustThreshold,
	batchSize int,
	all utxo.Map[I],
	less func(a, b I) bool,
) []CoinSelection[I, NoOutputs] {

	if batchSize < 1 {
		batchSize = 1
	}
	if batchSize > 255 {
		batchSize = 255
	}

	entries := all.Entries(less)

	var out []CoinSelection[I, NoOutputs]
	for len(entries) > 0 {
		n := batchSize
		if n > len(entries) {
			n = len(entries)
		}
		batch := entries[:n]
		entries = entries[n:]

		inputs := utxo.New(batch...)

		change := make([]coin.Coin, 0, len(batch))
		for _, e := range batch {
			if !coin.IsDust(e.Coin, dustThreshold) {
				change = append(change, e.Coin)
			}
		}
		if len(change) == 0 {
			// Every entry in the batch is dust; keep the batch
			// non-trivial by seeding a single placeholder change
			// coin at the threshold.
			change = []coin.Coin{dustThreshold}
		}

		sel := CoinSelection[I, NoOutputs]{
			Inputs:  inputs,
			Outputs: utxo.Map[NoOutputs]{},
			Change:  change,
		}

		balanced, ok := rebalanceByFeeDiff(feeEstimator, dustThreshold, sel)
		if !ok {
			// This batch cannot be balanced at all; migration stops
			// rather than silently skipping entries.
			log.Debugf("depleteUTxO: batch of %d entries could not be balanced, stopping", len(batch))
			break
		}
		log.Debugf("depleteUTxO: accepted batch of %d inputs, %d change outputs",
			len(balanced.Inputs), len(balanced.Change))
		out = append(out, balanced)
	}

	return out
}

// rebalanceByFeeDiff is the migration driver's direct fee-diff
// rebalancer: unlike AdjustForFee it never draws additional inputs
// (a migration batch is fixed), it only nudges the first change coin
// by the signed difference between what the inputs provide and what
// the fee estimator currently wants, dropping that coin from change
// when it would fall at or below the threshold (the next iteration's
// diff then carries its value onto the next change coin).
func rebalanceByFeeDiff[I comparable](
	feeEstimator MigrationFeeEstimator[I],
	dustThreshold coin.DustThreshold,
	sel CoinSelection[I, NoOutputs],
) (CoinSelection[I, NoOutputs], bool) {

	for {
		if len(sel.Change) == 0 {
			return CoinSelection[I, NoOutputs]{}, false
		}

		inSum, ok := sel.Inputs.Sum()
		if !ok {
			internalInvariant("migration batch input sum overflows Coin", sel)
		}
		chgSum, ok := coin.Sum(sel.Change...)
		if !ok {
			internalInvariant("migration batch change sum overflows Coin", sel)
		}
		fee := feeEstimator(sel)

		diff, ok := signedDiff(inSum, chgSum, fee)
		if !ok {
			internalInvariant("migration batch fee diff overflows int64", sel)
		}
		if diff == 0 {
			return sel, true
		}

		first, ok := applySignedDiff(sel.Change[0], diff)
		if !ok || coin.IsDust(first, dustThreshold) {
			// The adjustment drives the first change coin at or
			// below dust (possibly negative, which is always dust):
			// drop it and let the next iteration recompute the diff
			// from the remaining change.
			sel = sel.WithChange(sel.Change[1:])
			continue
		}

		newChange := make([]coin.Coin, len(sel.Change))
		copy(newChange, sel.Change)
		newChange[0] = first
		sel = sel.WithChange(newChange)
	}
}

// signedDiff computes inSum - changeSum - fee as a signed int64,
// reporting false on overflow.
func signedDiff(inSum, changeSum, fee coin.Coin) (int64, bool) {
	in, ok := inSum.Int64()
	if !ok {
		return 0, false
	}
	ch, ok := changeSum.Int64()
	if !ok {
		return 0, false
	}
	f, ok := fee.Int64()
	if !ok {
		return 0, false
	}
	return in - ch - f, true
}

// applySignedDiff adds a signed diff to a Coin, reporting false if
// the result would be negative.
func applySignedDiff(c coin.Coin, diff int64) (coin.Coin, bool) {
	v, ok := c.Int64()
	if !ok {
		return 0, false
	}
	v += diff
	if v < 0 {
		return 0, false
	}
	return coin.FromIntegral(v)
}

// IdealBatchSize returns the smallest batch size B (1..255) for which
// maxInputsForNOutputs(B) <= B, the largest batch that stays feasible
// once its change produces a corresponding number of outputs. It
// falls back to 255 if no such B exists in range.
func IdealBatchSize(maxInputsForNOutputs func(n int) int) int {
	for b := 1; b <= 255; b++ {
		if maxInputsForNOutputs(b) <= b {
			return b
		}
	}
	return 255
}
