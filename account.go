package cask

import (
	"encoding/binary"

	"github.com/cask-protocol/cask/errors"
)

// Account is the host's view of a single storage cell: a balance of lamports
// paying for its permanence, an owning program and an opaque data payload.
//
// Signer and Writable are per-invocation attributes assigned by the caller's
// account list. They are never persisted. The host verifies the actual
// signature before the program runs, so inside a handler the Signer flag is
// the proof of identity.
type Account struct {
	Address  Address
	Lamports uint64
	Owner    Address
	Data     []byte
	Signer   bool
	Writable bool
}

var _ Persistent = (*Account)(nil)

// AddLamports credits the account balance, failing on overflow.
func (a *Account) AddLamports(amount uint64) error {
	total := a.Lamports + amount
	if total < a.Lamports {
		return errors.Wrapf(errors.ErrOverflow, "lamports of %s", a.Address)
	}
	a.Lamports = total
	return nil
}

// SubLamports debits the account balance, failing when the balance is too
// low.
func (a *Account) SubLamports(amount uint64) error {
	if amount > a.Lamports {
		return errors.Wrapf(errors.ErrState, "insufficient lamports on %s", a.Address)
	}
	a.Lamports -= amount
	return nil
}

// Validate returns an error unless the account can be persisted.
func (a *Account) Validate() error {
	if err := a.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	if len(a.Owner) != 0 {
		if err := a.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	return nil
}

// Marshal packs the persistent part of the account: the lamport balance, the
// owner and the data payload. Invocation attributes are not included.
func (a *Account) Marshal() ([]byte, error) {
	owner := a.Owner
	if len(owner) == 0 {
		owner = make(Address, AddressLength)
	}
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	raw := make([]byte, 8+AddressLength+4+len(a.Data))
	binary.LittleEndian.PutUint64(raw, a.Lamports)
	copy(raw[8:], owner)
	binary.LittleEndian.PutUint32(raw[8+AddressLength:], uint32(len(a.Data)))
	copy(raw[8+AddressLength+4:], a.Data)
	return raw, nil
}

// Unmarshal restores the persistent part of the account. The address and the
// invocation attributes are left untouched.
func (a *Account) Unmarshal(raw []byte) error {
	if len(raw) < 8+AddressLength+4 {
		return errors.Wrapf(errors.ErrInput, "account payload too short: %d", len(raw))
	}
	a.Lamports = binary.LittleEndian.Uint64(raw)
	a.Owner = append(Address(nil), raw[8:8+AddressLength]...)
	size := binary.LittleEndian.Uint32(raw[8+AddressLength:])
	rest := raw[8+AddressLength+4:]
	if uint32(len(rest)) != size {
		return errors.Wrapf(errors.ErrInput, "account data length: want %d, got %d", size, len(rest))
	}
	a.Data = append([]byte(nil), rest...)
	return nil
}

// SignedBy returns an Authorizer backed by the host verified signature of the
// given account. It is only acceptable when the account is marked as a signer
// of the current invocation.
func SignedBy(a *Account) Authorizer {
	return signedBy{account: a}
}

type signedBy struct {
	account *Account
}

func (s signedBy) Address() Address {
	return s.account.Address
}

func (s signedBy) Validate() error {
	if !s.account.Signer {
		return errors.Wrapf(errors.ErrMissingSignature, "account %s", s.account.Address)
	}
	return nil
}
