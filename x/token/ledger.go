package token

import (
	"github.com/cask-protocol/cask"
	"github.com/cask-protocol/cask/errors"
)

// Ledger moves fungible assets between holding accounts. It is stateless:
// all state lives in the holding accounts it is handed.
type Ledger struct{}

// NewLedger returns the asset ledger.
func NewLedger() Ledger {
	return Ledger{}
}

// Initialize turns a blank account into a holding registered to the given
// authority. The account data must be allocated to exactly HoldingSize.
func (Ledger) Initialize(holding *cask.Account, authority cask.Address) error {
	var h Holding
	if err := h.Unmarshal(holding.Data); err != nil {
		return errors.Wrap(err, "holding")
	}
	if h.Initialized {
		return errors.Wrapf(errors.ErrAlreadyInitialized, "holding %s", holding.Address)
	}
	if err := authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	h.Initialized = true
	h.Authority = append(cask.Address(nil), authority...)
	h.Balance = 0
	return saveHolding(holding, &h)
}

// Mint credits the holding without an authority proof.
//
// Note this is issuance, not a transfer: "the lord giveth and the lord
// taketh away".
func (Ledger) Mint(holding *cask.Account, amount uint64) error {
	h, err := loadHolding(holding)
	if err != nil {
		return err
	}
	total := h.Balance + amount
	if total < h.Balance {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", holding.Address)
	}
	h.Balance = total
	return saveHolding(holding, h)
}

// Balance returns the live balance of the holding.
func (Ledger) Balance(holding *cask.Account) (uint64, error) {
	h, err := loadHolding(holding)
	if err != nil {
		return 0, err
	}
	return h.Balance, nil
}

// Transfer moves the given amount from src to dst. The proof must act for
// the current authority of src.
func (l Ledger) Transfer(src, dst *cask.Account, auth cask.Authorizer, amount uint64) error {
	from, err := loadHolding(src)
	if err != nil {
		return err
	}
	to, err := loadHolding(dst)
	if err != nil {
		return err
	}
	if err := authorize(from, auth); err != nil {
		return err
	}
	if amount > from.Balance {
		return errors.Wrapf(ErrInsufficientFunds, "holding %s", src.Address)
	}
	total := to.Balance + amount
	if total < to.Balance {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", dst.Address)
	}
	from.Balance -= amount
	to.Balance = total
	if err := saveHolding(src, from); err != nil {
		return err
	}
	return saveHolding(dst, to)
}

// SetAuthority reassigns the holding to a new authority. The proof must act
// for the current authority. After this call only the new authority can move
// assets out of the holding.
func (l Ledger) SetAuthority(holding *cask.Account, newAuthority cask.Address, auth cask.Authorizer) error {
	h, err := loadHolding(holding)
	if err != nil {
		return err
	}
	if err := authorize(h, auth); err != nil {
		return err
	}
	if err := newAuthority.Validate(); err != nil {
		return errors.Wrap(err, "new authority")
	}
	h.Authority = append(cask.Address(nil), newAuthority...)
	return saveHolding(holding, h)
}

// Close destroys an empty holding, moving its entire lamport balance to the
// refund account. The proof must act for the current authority.
func (l Ledger) Close(holding, refundTo *cask.Account, auth cask.Authorizer) error {
	h, err := loadHolding(holding)
	if err != nil {
		return err
	}
	if err := authorize(h, auth); err != nil {
		return err
	}
	if h.Balance != 0 {
		return errors.Wrapf(ErrNonEmptyHolding, "holding %s", holding.Address)
	}
	if err := refundTo.AddLamports(holding.Lamports); err != nil {
		return err
	}
	holding.Lamports = 0
	for i := range holding.Data {
		holding.Data[i] = 0
	}
	return nil
}

// authorize accepts the proof only when it validates and acts for the
// registered authority of the holding.
func authorize(h *Holding, auth cask.Authorizer) error {
	if err := auth.Validate(); err != nil {
		return err
	}
	if !auth.Address().Equals(h.Authority) {
		return errors.Wrapf(errors.ErrUnauthorized, "not the holding authority: %s", auth.Address())
	}
	return nil
}

func loadHolding(acct *cask.Account) (*Holding, error) {
	var h Holding
	if err := h.Unmarshal(acct.Data); err != nil {
		return nil, errors.Wrapf(errors.ErrAccountData, "holding %s", acct.Address)
	}
	if !h.Initialized {
		return nil, errors.Wrapf(errors.ErrAccountData, "holding %s not initialized", acct.Address)
	}
	return &h, nil
}

func saveHolding(acct *cask.Account, h *Holding) error {
	raw, err := h.Marshal()
	if err != nil {
		return err
	}
	if len(acct.Data) != len(raw) {
		return errors.Wrapf(errors.ErrAccountData, "holding %s storage size", acct.Address)
	}
	copy(acct.Data, raw)
	return nil
}
