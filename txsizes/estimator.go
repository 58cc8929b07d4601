// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txsizes

import (
	"github.com/btcsuite/btcd/wire"

	"github.com/btcsuite/btcwallet/coin"
	"github.com/btcsuite/btcwallet/txauthor"
)

// FeeRate is a fee price in satoshis per estimated virtual byte.
type FeeRate coin.Coin

// NewEstimator builds a txauthor.FeeEstimator that prices a selection
// at feeRate times its worst-case virtual size. scriptOf resolves an
// input key to the previous output script it redeems -- GetMinInputVirtualSize
// classifies that script and reports the vbytes the input adds;
// outputOf resolves a payment output key to its wire.TxOut.
// changeScriptSize is the script length assumed for every change
// output the selection carries.
func NewEstimator[I, O comparable](
	feeRate FeeRate,
	scriptOf func(I) []byte,
	outputOf func(O) *wire.TxOut,
	changeScriptSize int,
) txauthor.FeeEstimator[I, O] {

	return func(sel txauthor.CoinSelection[I, O]) coin.Fee {
		numOutputs := len(sel.Outputs) + len(sel.Change)
		vsize := 8 +
			wire.VarIntSerializeSize(uint64(len(sel.Inputs))) +
			wire.VarIntSerializeSize(uint64(numOutputs))

		for key := range sel.Inputs {
			vsize += GetMinInputVirtualSize(scriptOf(key))
		}

		txOuts := make([]*wire.TxOut, 0, len(sel.Outputs))
		for key := range sel.Outputs {
			txOuts = append(txOuts, outputOf(key))
		}
		vsize += SumOutputSerializeSizes(txOuts)

		if len(sel.Change) > 0 {
			changeOutputSize := 8 + wire.VarIntSerializeSize(uint64(changeScriptSize)) + changeScriptSize
			vsize += changeOutputSize * len(sel.Change)
		}

		fee, ok := coin.FromIntegral(int64(vsize) * int64(feeRate))
		if !ok {
			panic("txsizes: fee estimate overflows Coin")
		}
		return fee
	}
}
