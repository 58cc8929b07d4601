// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// feeadjust is a small standalone tool that runs the fee-adjustment
// engine over a scenario described in a JSON file, printing the
// balanced selection it produces. It exists to exercise the library
// end to end outside of its test suite.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btclog"
	flags "github.com/jessevdk/go-flags"

	"github.com/btcsuite/btcwallet/coin"
	"github.com/btcsuite/btcwallet/txauthor"
	"github.com/btcsuite/btcwallet/txsizes"
	"github.com/btcsuite/btcwallet/utxo"
)

var newlineBytes = []byte{'\n'}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Stderr.Write(newlineBytes)
	os.Exit(1)
}

// opts holds the command's flags.
var opts = struct {
	Scenario      string `short:"s" long:"scenario" description:"Path to a scenario JSON file" required:"true"`
	FeeRate       int64  `long:"feerate" description:"Fee rate in satoshis per virtual byte" default:"1"`
	DustThreshold int64  `long:"dustthreshold" description:"Outputs at or below this value are treated as dust" default:"0"`
	Seed          int64  `long:"seed" description:"Seed for the deterministic random UTxO source" default:"1"`
	DebugLevel    string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical, off}" default:"info"`
}{}

// scenario is the on-disk description of a coin-selection draft: the
// inputs and outputs already chosen, the change the selection starts
// with, and an extra UTxO pool the adjuster may draw from.
type scenario struct {
	Inputs    map[string]uint64 `json:"inputs"`
	Outputs   map[string]uint64 `json:"outputs"`
	Change    []uint64          `json:"change"`
	ExtraUTxO map[string]uint64 `json:"extra_utxo"`
}

func loadScenario(path string) (scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scenario{}, err
	}
	var s scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return scenario{}, err
	}
	return s, nil
}

func toUTxOMap(m map[string]uint64) utxo.Map[string] {
	out := make(utxo.Map[string], len(m))
	for k, v := range m {
		out[k] = coin.Coin(v)
	}
	return out
}

func toChange(vs []uint64) []coin.Coin {
	out := make([]coin.Coin, len(vs))
	for i, v := range vs {
		out[i] = coin.Coin(v)
	}
	return out
}

func setupLogging(level string) {
	backend := btclog.NewBackend(os.Stdout)
	logger := backend.Logger("FEAD")
	lvl, ok := btclog.LevelFromString(level)
	if !ok {
		lvl = btclog.LevelInfo
	}
	logger.SetLevel(lvl)
	txauthor.UseLogger(logger)
}

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(1)
	}

	setupLogging(opts.DebugLevel)

	sc, err := loadScenario(opts.Scenario)
	if err != nil {
		fatalf("reading scenario: %v", err)
	}

	sel := txauthor.CoinSelection[string, string]{
		Inputs:  toUTxOMap(sc.Inputs),
		Outputs: toUTxOMap(sc.Outputs),
		Change:  toChange(sc.Change),
	}
	extra := toUTxOMap(sc.ExtraUTxO)

	placeholderScript := make([]byte, txsizes.P2PKHPkScriptSize)
	est := txsizes.NewEstimator[string, string](
		txsizes.FeeRate(opts.FeeRate),
		func(string) []byte { return placeholderScript },
		func(key string) *wire.TxOut { return wire.NewTxOut(int64(sc.Outputs[key]), placeholderScript) },
		txsizes.P2PKHPkScriptSize,
	)

	feeOpts := txauthor.FeeOptions[string, string]{
		FeeEstimator:  est,
		DustThreshold: coin.DustThreshold(opts.DustThreshold),
	}
	rnd := txauthor.NewSeededSource[string](opts.Seed, func(a, b string) bool { return a < b })

	out, err := txauthor.AdjustForFee(feeOpts, rnd, extra, sel)
	if err != nil {
		fatalf("adjusting for fee: %v", err)
	}

	fee, _ := txauthor.CalculateFee(out)
	fmt.Printf("inputs: %d entries, outputs: %d entries, change: %v, fee: %v\n",
		len(out.Inputs), len(out.Outputs), out.Change, fee)
}
