package escrow

import (
	"encoding/binary"

	"github.com/cask-protocol/cask"
	"github.com/cask-protocol/cask/errors"
)

// RecordSize is the packed size of the escrow record: the initialized flag,
// three 32 byte addresses and the little-endian 64 bit remaining deposit, in
// that order, no padding.
const RecordSize = 1 + 3*cask.AddressLength + 8

// Record is the persisted escrow state, one per active trade.
//
// A record is either fully zeroed or has all fields meaningfully set.
// Deposited only ever decreases, and once it reaches zero the record and its
// holding are destroyed together. The record is owned by the program; the
// parties can touch it only through the two instructions.
type Record struct {
	Initialized bool
	Initializer cask.Address
	Holding     cask.Address
	Withdrawer  cask.Address
	Deposited   uint64
}

var _ cask.Persistent = (*Record)(nil)

// Validate ensures a live record is sensible.
func (r *Record) Validate() error {
	if !r.Initialized {
		return errors.Wrap(errors.ErrState, "not initialized")
	}
	if err := r.Initializer.Validate(); err != nil {
		return errors.Wrap(err, "initializer")
	}
	if err := r.Holding.Validate(); err != nil {
		return errors.Wrap(err, "holding")
	}
	if err := r.Withdrawer.Validate(); err != nil {
		return errors.Wrap(err, "withdrawer")
	}
	return nil
}

// Marshal packs the record into its fixed-width layout.
func (r *Record) Marshal() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	raw := make([]byte, RecordSize)
	raw[0] = 1
	copy(raw[1:], r.Initializer)
	copy(raw[1+cask.AddressLength:], r.Holding)
	copy(raw[1+2*cask.AddressLength:], r.Withdrawer)
	binary.LittleEndian.PutUint64(raw[1+3*cask.AddressLength:], r.Deposited)
	return raw, nil
}

// Unmarshal restores a record from its fixed-width layout. A zeroed payload
// decodes into an uninitialized record; this is how freshly allocated
// storage is recognized.
func (r *Record) Unmarshal(raw []byte) error {
	if len(raw) != RecordSize {
		return errors.Wrapf(errors.ErrInput, "record payload: %d bytes", len(raw))
	}
	switch raw[0] {
	case 0:
		r.Initialized = false
	case 1:
		r.Initialized = true
	default:
		return errors.Wrapf(errors.ErrInput, "initialized flag: %d", raw[0])
	}
	r.Initializer = append(cask.Address(nil), raw[1:1+cask.AddressLength]...)
	r.Holding = append(cask.Address(nil), raw[1+cask.AddressLength:1+2*cask.AddressLength]...)
	r.Withdrawer = append(cask.Address(nil), raw[1+2*cask.AddressLength:1+3*cask.AddressLength]...)
	r.Deposited = binary.LittleEndian.Uint64(raw[1+3*cask.AddressLength:])
	return nil
}

// Authority derives the custodial signing authority for the given program
// identity. It is computed from a fixed domain tag, has no private key, and
// is recomputed on every call rather than stored.
func Authority(program cask.Address) cask.Condition {
	return cask.NewCondition("escrow", "custody", program)
}

// loadRecord decodes a record that must already be live. Any malformed or
// uninitialized payload is a caller data error.
func loadRecord(acct *cask.Account) (*Record, error) {
	var r Record
	if err := r.Unmarshal(acct.Data); err != nil {
		return nil, errors.Wrapf(errors.ErrAccountData, "escrow record %s", acct.Address)
	}
	if !r.Initialized {
		return nil, errors.Wrapf(errors.ErrAccountData, "escrow record %s not initialized", acct.Address)
	}
	return &r, nil
}

// saveRecord persists the record into its storage account.
func saveRecord(acct *cask.Account, r *Record) error {
	raw, err := r.Marshal()
	if err != nil {
		return err
	}
	if len(acct.Data) != len(raw) {
		return errors.Wrapf(errors.ErrAccountData, "escrow record %s storage size", acct.Address)
	}
	copy(acct.Data, raw)
	return nil
}
