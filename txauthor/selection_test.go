// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor_test

import (
	"testing"

	"github.com/btcsuite/btcwallet/coin"
	"github.com/btcsuite/btcwallet/txauthor"
	"github.com/btcsuite/btcwallet/utxo"
)

func TestCalculateFee(t *testing.T) {
	sel := txauthor.CoinSelection[string, string]{
		Inputs:  utxo.New(utxo.Entry[string]{Key: "in0", Coin: 100}),
		Outputs: utxo.New(utxo.Entry[string]{Key: "out0", Coin: 70}),
		Change:  []coin.Coin{20},
	}
	fee, ok := txauthor.CalculateFee(sel)
	if !ok {
		t.Fatal("expected a valid fee")
	}
	if fee != 10 {
		t.Fatalf("fee = %v, want 10", fee)
	}
}

func TestCalculateFeeUnderfunded(t *testing.T) {
	sel := txauthor.CoinSelection[string, string]{
		Inputs:  utxo.New(utxo.Entry[string]{Key: "in0", Coin: 50}),
		Outputs: utxo.New(utxo.Entry[string]{Key: "out0", Coin: 70}),
		Change:  []coin.Coin{20},
	}
	if _, ok := txauthor.CalculateFee(sel); ok {
		t.Fatal("expected underfunded selection to report false")
	}
}

func TestCoinSelectionCloneIsIndependent(t *testing.T) {
	sel := txauthor.CoinSelection[string, string]{
		Inputs:  utxo.New(utxo.Entry[string]{Key: "in0", Coin: 100}),
		Outputs: utxo.New(utxo.Entry[string]{Key: "out0", Coin: 70}),
		Change:  []coin.Coin{20},
	}
	clone := sel.Clone()
	clone.Inputs["in0"] = 999
	clone.Change[0] = 999

	if sel.Inputs["in0"] != 100 {
		t.Fatal("mutating the clone's inputs affected the original")
	}
	if sel.Change[0] != 20 {
		t.Fatal("mutating the clone's change affected the original")
	}
}

func TestWithChangeReplacesOnlyChange(t *testing.T) {
	sel := txauthor.CoinSelection[string, string]{
		Inputs:  utxo.New(utxo.Entry[string]{Key: "in0", Coin: 100}),
		Outputs: utxo.New(utxo.Entry[string]{Key: "out0", Coin: 70}),
		Change:  []coin.Coin{20},
	}
	out := sel.WithChange([]coin.Coin{5, 5})
	if len(out.Change) != 2 {
		t.Fatalf("expected 2 change outputs, got %d", len(out.Change))
	}
	if out.Inputs["in0"] != 100 || out.Outputs["out0"] != 70 {
		t.Fatal("WithChange altered inputs or outputs")
	}
}
