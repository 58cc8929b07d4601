// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package utxo_test

import (
	"testing"

	"github.com/btcsuite/btcwallet/coin"
	"github.com/btcsuite/btcwallet/utxo"
)

func lessString(a, b string) bool { return a < b }

func TestNewAndSum(t *testing.T) {
	m := utxo.New(
		utxo.Entry[string]{Key: "a", Coin: 1},
		utxo.Entry[string]{Key: "b", Coin: 2},
		utxo.Entry[string]{Key: "a", Coin: 5},
	)
	if len(m) != 2 {
		t.Fatalf("expected later entry to overwrite earlier one sharing a key, got %d entries", len(m))
	}
	sum, ok := m.Sum()
	if !ok {
		t.Fatal("unexpected overflow")
	}
	if sum != 7 {
		t.Fatalf("sum = %v, want 7", sum)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := utxo.New(utxo.Entry[string]{Key: "a", Coin: 1})
	c := m.Clone()
	c["a"] = 99
	if m["a"] != 1 {
		t.Fatal("mutating the clone affected the original")
	}
}

func TestEntriesOrdering(t *testing.T) {
	m := utxo.New(
		utxo.Entry[string]{Key: "c", Coin: 3},
		utxo.Entry[string]{Key: "a", Coin: 1},
		utxo.Entry[string]{Key: "b", Coin: 2},
	)
	entries := m.Entries(lessString)
	want := []string{"a", "b", "c"}
	for i, e := range entries {
		if e.Key != want[i] {
			t.Fatalf("entries[%d].Key = %s, want %s", i, e.Key, want[i])
		}
	}
}

func TestDelete(t *testing.T) {
	m := utxo.New(utxo.Entry[string]{Key: "a", Coin: 1}, utxo.Entry[string]{Key: "b", Coin: 2})
	out := m.Delete("a")
	if _, ok := out["a"]; ok {
		t.Fatal("expected key a to be removed")
	}
	if _, ok := m["a"]; !ok {
		t.Fatal("Delete should not mutate the receiver")
	}
}

func TestExtend(t *testing.T) {
	m := utxo.New(utxo.Entry[string]{Key: "a", Coin: 1})
	out := m.Extend(utxo.Entry[string]{Key: "b", Coin: 2}, utxo.Entry[string]{Key: "a", Coin: 9})
	if out["a"] != 9 {
		t.Fatalf("expected extend entry to take precedence, got %v", out["a"])
	}
	if out["b"] != 2 {
		t.Fatalf("expected b = 2, got %v", out["b"])
	}
	if _, ok := m["b"]; ok {
		t.Fatal("Extend should not mutate the receiver")
	}
}

func TestSumOverflow(t *testing.T) {
	m := utxo.New(
		utxo.Entry[string]{Key: "a", Coin: coin.MaxCoin},
		utxo.Entry[string]{Key: "b", Coin: 1},
	)
	if _, ok := m.Sum(); ok {
		t.Fatal("expected overflow to be reported")
	}
}
