package token

import (
	"testing"

	"github.com/cask-protocol/cask"
	"github.com/cask-protocol/cask/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerTransfer(t *testing.T) {
	owner := signerAccount("owner")
	other := signerAccount("other")
	ledger := NewLedger()

	src, err := HoldingAccount(cask.NewAddress([]byte("src")), 100, owner.Address, 1000)
	require.NoError(t, err)
	dst, err := HoldingAccount(cask.NewAddress([]byte("dst")), 100, other.Address, 5)
	require.NoError(t, err)

	cases := map[string]struct {
		auth    cask.Authorizer
		amount  uint64
		wantErr *errors.Error
	}{
		"authorized transfer": {
			auth:   cask.SignedBy(owner),
			amount: 300,
		},
		"unsigned owner": {
			auth:    cask.SignedBy(unsigned(owner)),
			amount:  300,
			wantErr: errors.ErrMissingSignature,
		},
		"wrong party": {
			auth:    cask.SignedBy(other),
			amount:  300,
			wantErr: errors.ErrUnauthorized,
		},
		"over balance": {
			auth:    cask.SignedBy(owner),
			amount:  5000,
			wantErr: ErrInsufficientFunds,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srcBefore := mustBalance(t, src)
			dstBefore := mustBalance(t, dst)

			err := ledger.Transfer(src, dst, tc.auth, tc.amount)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
				assert.Equal(t, srcBefore, mustBalance(t, src))
				assert.Equal(t, dstBefore, mustBalance(t, dst))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, srcBefore-tc.amount, mustBalance(t, src))
			assert.Equal(t, dstBefore+tc.amount, mustBalance(t, dst))
		})
	}
}

func TestLedgerTransferByCondition(t *testing.T) {
	cond := cask.NewCondition("escrow", "custody", []byte("program"))
	ledger := NewLedger()

	src, err := HoldingAccount(cask.NewAddress([]byte("src")), 100, cond.Address(), 70)
	require.NoError(t, err)
	dst, err := HoldingAccount(cask.NewAddress([]byte("dst")), 100, cask.NewAddress([]byte("taker")), 0)
	require.NoError(t, err)

	// the condition value itself is the proof, no signature involved
	require.NoError(t, ledger.Transfer(src, dst, cond, 70))
	assert.Equal(t, uint64(0), mustBalance(t, src))
	assert.Equal(t, uint64(70), mustBalance(t, dst))

	// a different condition derives a different address and must be refused
	bad := cask.NewCondition("escrow", "custody", []byte("impostor"))
	err = ledger.Transfer(dst, src, bad, 1)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
}

func TestLedgerSetAuthority(t *testing.T) {
	owner := signerAccount("owner")
	cond := cask.NewCondition("escrow", "custody", []byte("program"))
	ledger := NewLedger()

	holding, err := HoldingAccount(cask.NewAddress([]byte("hold")), 100, owner.Address, 50)
	require.NoError(t, err)

	require.NoError(t, ledger.SetAuthority(holding, cond.Address(), cask.SignedBy(owner)))

	// the old owner lost the capability
	dst, err := HoldingAccount(cask.NewAddress([]byte("dst")), 100, owner.Address, 0)
	require.NoError(t, err)
	err = ledger.Transfer(holding, dst, cask.SignedBy(owner), 1)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	// the condition gained it
	require.NoError(t, ledger.Transfer(holding, dst, cond, 1))
}

func TestLedgerClose(t *testing.T) {
	cond := cask.NewCondition("escrow", "custody", []byte("program"))
	ledger := NewLedger()

	holding, err := HoldingAccount(cask.NewAddress([]byte("hold")), 350, cond.Address(), 10)
	require.NoError(t, err)
	refund := &cask.Account{Address: cask.NewAddress([]byte("refund")), Lamports: 20}

	// a holding with a balance cannot be closed
	err = ledger.Close(holding, refund, cond)
	assert.True(t, ErrNonEmptyHolding.Is(err), "%+v", err)

	dst, err := HoldingAccount(cask.NewAddress([]byte("dst")), 100, cask.NewAddress([]byte("t")), 0)
	require.NoError(t, err)
	require.NoError(t, ledger.Transfer(holding, dst, cond, 10))

	require.NoError(t, ledger.Close(holding, refund, cond))
	assert.Equal(t, uint64(0), holding.Lamports)
	assert.Equal(t, uint64(370), refund.Lamports)
	for _, b := range holding.Data {
		assert.Equal(t, byte(0), b)
	}
}

func TestLedgerInitialize(t *testing.T) {
	authority := cask.NewAddress([]byte("authority"))
	ledger := NewLedger()

	acct := &cask.Account{Address: cask.NewAddress([]byte("a")), Data: make([]byte, HoldingSize)}
	require.NoError(t, ledger.Initialize(acct, authority))

	err := ledger.Initialize(acct, authority)
	assert.True(t, errors.ErrAlreadyInitialized.Is(err), "%+v", err)

	short := &cask.Account{Address: cask.NewAddress([]byte("b")), Data: make([]byte, 3)}
	assert.Error(t, ledger.Initialize(short, authority))
}

func TestLedgerMintOverflow(t *testing.T) {
	ledger := NewLedger()
	holding, err := HoldingAccount(cask.NewAddress([]byte("h")), 1, cask.NewAddress([]byte("o")), ^uint64(0))
	require.NoError(t, err)
	err = ledger.Mint(holding, 1)
	assert.True(t, errors.ErrOverflow.Is(err), "%+v", err)
}

func mustBalance(t *testing.T, acct *cask.Account) uint64 {
	t.Helper()
	balance, err := NewLedger().Balance(acct)
	require.NoError(t, err)
	return balance
}

func signerAccount(seed string) *cask.Account {
	return &cask.Account{
		Address: cask.NewAddress([]byte(seed)),
		Signer:  true,
	}
}

func unsigned(a *cask.Account) *cask.Account {
	clone := *a
	clone.Signer = false
	return &clone
}
