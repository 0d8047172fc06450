package cask

import (
	"encoding/binary"

	"github.com/cask-protocol/cask/errors"
)

// storageOverhead is the per-account metadata size the host charges for in
// addition to the data payload.
const storageOverhead = 128

// rentSize is the packed size of the rent parameters payload.
const rentSize = 16

// Rent holds the host parameters used to decide whether an account carries
// enough balance to be guaranteed permanent storage. The parameters are
// published by the host in a read-only parameters account and decoded with
// LoadRent on every invocation that needs them.
type Rent struct {
	LamportsPerByteYear uint64
	ExemptionYears      uint64
}

var _ Persistent = (*Rent)(nil)

// DefaultRent returns the parameters used by the test host.
func DefaultRent() Rent {
	return Rent{LamportsPerByteYear: 3480, ExemptionYears: 2}
}

// MinimumBalance returns the smallest lamport balance that makes an account
// with a payload of dataLen bytes exempt from rent collection.
func (r Rent) MinimumBalance(dataLen int) uint64 {
	return (uint64(dataLen) + storageOverhead) * r.LamportsPerByteYear * r.ExemptionYears
}

// IsExempt returns whether the account is guaranteed permanent storage.
func (r Rent) IsExempt(lamports uint64, dataLen int) bool {
	return lamports >= r.MinimumBalance(dataLen)
}

// Marshal packs the parameters as two little-endian 64 bit values.
func (r Rent) Marshal() ([]byte, error) {
	raw := make([]byte, rentSize)
	binary.LittleEndian.PutUint64(raw, r.LamportsPerByteYear)
	binary.LittleEndian.PutUint64(raw[8:], r.ExemptionYears)
	return raw, nil
}

func (r *Rent) Unmarshal(raw []byte) error {
	if len(raw) != rentSize {
		return errors.Wrapf(errors.ErrInput, "rent payload: %d bytes", len(raw))
	}
	r.LamportsPerByteYear = binary.LittleEndian.Uint64(raw)
	r.ExemptionYears = binary.LittleEndian.Uint64(raw[8:])
	return nil
}

// LoadRent decodes the rent parameters from the parameters account supplied
// with an invocation.
func LoadRent(acct *Account) (Rent, error) {
	var r Rent
	if err := r.Unmarshal(acct.Data); err != nil {
		return r, errors.Wrap(err, "rent parameters account")
	}
	return r, nil
}
