// Package casktest provides helpers for testing cask programs.
package casktest

import (
	"crypto/rand"
	"testing"

	"github.com/cask-protocol/cask"
)

// NewCondition returns a random condition in the format the host uses for
// externally owned, signature backed identities.
func NewCondition() cask.Condition {
	data := make([]byte, 16)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return cask.NewCondition("sigs", "ed25519", data)
}

// NewAddress returns a random address.
func NewAddress() cask.Address {
	return NewCondition().Address()
}

// NewSigner returns a writable account marked as an invocation signer.
func NewSigner(lamports uint64) *cask.Account {
	return &cask.Account{
		Address:  NewAddress(),
		Lamports: lamports,
		Signer:   true,
		Writable: true,
	}
}

// StorageAccount returns a writable account with a zero allocated payload of
// the given size.
func StorageAccount(lamports uint64, size int) *cask.Account {
	return &cask.Account{
		Address:  NewAddress(),
		Lamports: lamports,
		Data:     make([]byte, size),
		Writable: true,
	}
}

// RentAccount returns a read-only parameters account carrying the given rent
// configuration.
func RentAccount(t testing.TB, rent cask.Rent) *cask.Account {
	t.Helper()
	raw, err := rent.Marshal()
	if err != nil {
		t.Fatalf("cannot marshal rent: %s", err)
	}
	return &cask.Account{
		Address:  NewAddress(),
		Lamports: 1,
		Data:     raw,
	}
}

// ProgramAccount returns a read-only account standing in for a program
// reference in a positional account list.
func ProgramAccount(addr cask.Address) *cask.Account {
	return &cask.Account{
		Address:  addr,
		Lamports: 1,
	}
}
