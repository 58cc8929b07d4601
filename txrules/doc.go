// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txrules implements the proportional fee distributor and the
// dust coalescer: the two building blocks the fee adjuster in
// txauthor uses to spread a fee across a set of change coins without
// ever leaving dust behind.
package txrules
