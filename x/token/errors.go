package token

import "github.com/cask-protocol/cask/errors"

var (
	// ErrInsufficientFunds is returned when a transfer asks for more than
	// the holding balance.
	ErrInsufficientFunds = errors.Register(1020, "insufficient funds")

	// ErrNonEmptyHolding is returned on an attempt to close a holding
	// that still carries a balance.
	ErrNonEmptyHolding = errors.Register(1021, "holding not empty")
)
