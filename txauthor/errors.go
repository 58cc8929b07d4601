// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txauthor

import (
	"fmt"

	"github.com/btcsuite/btcwallet/coin"
)

// CannotCoverFeeError is the single recoverable failure AdjustForFee
// can return: the UTxO pool was exhausted before enough value was
// drawn to cover the remaining fee.
type CannotCoverFeeError struct {
	// Shortfall is the amount still missing after every available
	// UTxO entry was drawn.
	Shortfall coin.Fee
}

func (e *CannotCoverFeeError) Error() string {
	return fmt.Sprintf("txauthor: cannot cover fee: short %v after exhausting the UTxO pool", e.Shortfall)
}
