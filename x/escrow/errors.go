package escrow

import "github.com/cask-protocol/cask/errors"

var (
	// ErrInvalidInstruction is returned when the raw instruction payload
	// cannot be decoded.
	ErrInvalidInstruction = errors.Register(1010, "invalid instruction")

	// ErrAmountMismatch is returned when a withdrawal requests more than
	// the custodial holding's actual live balance.
	ErrAmountMismatch = errors.Register(1011, "expected amount mismatch")
)
