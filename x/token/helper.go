package token

import "github.com/cask-protocol/cask"

// HoldingAccount is a helper to create an initialized holding account with
// the given authority and balance. Useful for tests and genesis fixtures.
func HoldingAccount(addr cask.Address, lamports uint64, authority cask.Address, balance uint64) (*cask.Account, error) {
	acct := &cask.Account{
		Address:  addr,
		Lamports: lamports,
		Data:     make([]byte, HoldingSize),
	}
	ledger := NewLedger()
	if err := ledger.Initialize(acct, authority); err != nil {
		return nil, err
	}
	if balance != 0 {
		if err := ledger.Mint(acct, balance); err != nil {
			return nil, err
		}
	}
	return acct, nil
}
