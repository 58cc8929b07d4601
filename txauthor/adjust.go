// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"fmt"

	"github.com/btcsuite/btcwallet/coin"
	"github.com/btcsuite/btcwallet/txrules"
	"github.com/btcsuite/btcwallet/utxo"
)

// FeeEstimator is a deterministic, pure function from a selection to
// its estimated on-chain fee. AdjustForFee treats it as a black box:
// it never inspects inputs or outputs itself, only the fee the
// estimator reports for a given arrangement of them.
type FeeEstimator[I, O comparable] func(CoinSelection[I, O]) coin.Fee

// FeeOptions bundles the two things the fee adjuster needs from its
// caller beyond the selection itself.
type FeeOptions[I, O comparable] struct {
	FeeEstimator  FeeEstimator[I, O]
	DustThreshold coin.DustThreshold
}

// internalInvariant panics with a diagnostic naming the offending
// state. It marks the failure paths in AdjustForFee that the spec
// calls precondition violations or unreachable invariants: a
// well-behaved FeeEstimator should never trigger any of them.
func internalInvariant(msg string, state any) {
	panic(fmt.Sprintf("txauthor: %s (state: %+v)", msg, state))
}

// AdjustForFee reconciles sel's inputs and change against the fee
// opts.FeeEstimator reports, drawing additional entries from
// extraUtxo at random (via rnd) when change alone cannot absorb the
// fee. It returns the balanced selection, or a *CannotCoverFeeError
// if extraUtxo is exhausted before the fee is met.
//
// AdjustForFee panics if opts.FeeEstimator(sel) is zero: a valid
// selection handed to the adjuster must already imply a positive fee,
// and a zero fee here means the caller built an invalid starting
// point.
func AdjustForFee[I, O comparable](
	opts FeeOptions[I, O],
	rnd RandomSource[I],
	extraUtxo utxo.Map[I],
	sel CoinSelection[I, O],
) (CoinSelection[I, O], error) {

	if opts.FeeEstimator(sel) == coin.Zero {
		internalInvariant("AdjustForFee called with a selection whose estimated fee is zero", sel)
	}

	pool := extraUtxo.Clone()
	cur := sel.Clone()

	for iter := 0; ; iter++ {
		// 1. Estimate.
		upperFee := opts.FeeEstimator(cur)
		log.Tracef("adjustForFee: iteration %d, %d inputs, %d change, upper fee %v",
			iter, len(cur.Inputs), len(cur.Change), upperFee)

		// 2. Reduce change.
		reducedChange := txrules.ReduceChangeOutputs(opts.DustThreshold, upperFee, cur.Change)
		reduced := cur.WithChange(reducedChange)

		// 3. Compute residual.
		actual, ok := CalculateFee(reduced)
		if !ok {
			internalInvariant("reduced selection is underfunded", reduced)
		}
		target := opts.FeeEstimator(reduced)

		if target >= actual {
			remaining := target - actual
			if remaining == coin.Zero {
				log.Debugf("adjustForFee: balanced after %d iterations, fee %v", iter+1, actual)
				return reduced, nil
			}

			// 5. Cover more.
			drawn, drawnSum, newPool, shortfall := coverRemainingFee(rnd, pool, remaining)
			if shortfall != coin.Zero {
				log.Debugf("adjustForFee: exhausted pool short %v of fee %v", shortfall, remaining)
				return CoinSelection[I, O]{}, &CannotCoverFeeError{Shortfall: shortfall}
			}
			log.Tracef("adjustForFee: drew %d entries worth %v to cover remaining fee %v",
				len(drawn), drawnSum, remaining)

			// 6. Re-inject: extend inputs from the reduced
			// selection, but split the drawn value over the
			// pre-reduction change, not the reduced one.
			newChange := txrules.SplitCoin(drawnSum, cur.Change)
			cur = CoinSelection[I, O]{
				Inputs:  reduced.Inputs.Extend(drawn...),
				Outputs: reduced.Outputs,
				Change:  newChange,
			}
			pool = newPool
			continue
		}

		// target < actual: either a dangling-change terminal state, a
		// residual surplus the surviving change can absorb, or an
		// unreachable estimator failure.
		residual, ok := actual.Sub(target)
		if !ok {
			internalInvariant("actual fee below target but underflowed computing the residual", reduced)
		}
		dangling := opts.FeeEstimator(reduced.WithChange([]coin.Coin{residual}))
		if dangling >= actual {
			// Terminal dangling-change case: emitting the residual
			// as its own change output would cost more in fees than
			// the residual is worth, so it is paid as extra fee
			// instead.
			log.Debugf("adjustForFee: dangling change of %v folded into fee", residual)
			return reduced, nil
		}

		if len(reduced.Change) > 0 {
			// The residual is surplus value the selection already
			// carried (the starting selection's own implicit fee,
			// which a re-injection via SplitCoin preserves), not
			// dangling change: folding it
			// into the surviving change coin costs nothing in fees
			// (the estimator only counts the coin, not its value) and
			// brings the selection exactly to target.
			bumped := make([]coin.Coin, len(reduced.Change))
			copy(bumped, reduced.Change)
			sum, ok := bumped[0].Add(residual)
			if !ok {
				internalInvariant("bumping the surviving change coin by the residual overflows Coin", reduced)
			}
			bumped[0] = sum
			log.Debugf("adjustForFee: absorbed residual surplus of %v into surviving change", residual)
			return reduced.WithChange(bumped), nil
		}

		internalInvariant(
			"unreachable: selection is unbalanced and neither target nor dangling-change covers the residual",
			reduced,
		)
		panic("unreachable")
	}
}

// coverRemainingFee draws entries from pool uniformly at random,
// accumulating their value, until the accumulated sum reaches need or
// the pool is exhausted. It returns the drawn entries, their sum, the
// pool with those entries removed, and a nonzero shortfall if the
// pool ran out first.
func coverRemainingFee[I comparable](
	rnd RandomSource[I], pool utxo.Map[I], need coin.Fee,
) (drawn []utxo.Entry[I], drawnSum coin.Coin, rest utxo.Map[I], shortfall coin.Fee) {

	rest = pool
	for drawnSum < need {
		entry, ok, newPool := rnd.Sample(rest)
		if !ok {
			break
		}
		drawn = append(drawn, entry)

		sum, addOK := drawnSum.Add(entry.Coin)
		if !addOK {
			internalInvariant("drawn UTxO sum overflows Coin", drawnSum)
		}
		drawnSum = sum
		rest = newPool
	}

	if drawnSum >= need {
		return drawn, drawnSum, rest, coin.Zero
	}
	shortfall, ok := need.Sub(drawnSum)
	if !ok {
		internalInvariant("need underflowed computing shortfall", need)
	}
	return drawn, drawnSum, rest, shortfall
}
