package token

import (
	"encoding/binary"

	"github.com/cask-protocol/cask"
	"github.com/cask-protocol/cask/errors"
)

// HoldingSize is the packed size of a holding payload: the initialized flag,
// the 32 byte authority and the little-endian 64 bit balance, no padding.
const HoldingSize = 1 + cask.AddressLength + 8

// Holding is the persisted state of one fungible asset holding.
type Holding struct {
	Initialized bool
	Authority   cask.Address
	Balance     uint64
}

var _ cask.Persistent = (*Holding)(nil)

// Validate ensures the holding can be persisted.
func (h *Holding) Validate() error {
	if !h.Initialized {
		return errors.Wrap(errors.ErrState, "not initialized")
	}
	if err := h.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	return nil
}

// Marshal packs the holding into its fixed-width layout.
func (h *Holding) Marshal() ([]byte, error) {
	authority := h.Authority
	if len(authority) == 0 {
		authority = make(cask.Address, cask.AddressLength)
	}
	if err := authority.Validate(); err != nil {
		return nil, errors.Wrap(err, "authority")
	}
	raw := make([]byte, HoldingSize)
	if h.Initialized {
		raw[0] = 1
	}
	copy(raw[1:], authority)
	binary.LittleEndian.PutUint64(raw[1+cask.AddressLength:], h.Balance)
	return raw, nil
}

// Unmarshal restores a holding from its fixed-width layout. A zeroed payload
// decodes into an uninitialized holding.
func (h *Holding) Unmarshal(raw []byte) error {
	if len(raw) != HoldingSize {
		return errors.Wrapf(errors.ErrInput, "holding payload: %d bytes", len(raw))
	}
	switch raw[0] {
	case 0:
		h.Initialized = false
	case 1:
		h.Initialized = true
	default:
		return errors.Wrapf(errors.ErrInput, "initialized flag: %d", raw[0])
	}
	h.Authority = append(cask.Address(nil), raw[1:1+cask.AddressLength]...)
	h.Balance = binary.LittleEndian.Uint64(raw[1+cask.AddressLength:])
	return nil
}
