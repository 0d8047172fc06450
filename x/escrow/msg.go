package escrow

import (
	"encoding/binary"

	"github.com/cask-protocol/cask/errors"
)

const (
	// OpInitialize tags an Initialize instruction on the wire.
	OpInitialize byte = 0
	// OpWithdraw tags a Withdraw instruction on the wire.
	OpWithdraw byte = 1

	// instructionSize is the exact wire size of every instruction: the
	// opcode tag followed by a little-endian 64 bit amount.
	instructionSize = 9
)

// Instruction is one decoded escrow program instruction.
type Instruction interface {
	// Op returns the wire opcode tag.
	Op() byte
}

// InitializeInstruction starts the trade: it populates the escrow record and
// hands the pre-funded temporary holding over to the custodial authority.
// Amount is how much the initializer allows the withdrawer to claim.
type InitializeInstruction struct {
	Amount uint64
}

// WithdrawInstruction claims part or all of a deposit. Amount is the
// requested withdrawal quantity.
type WithdrawInstruction struct {
	Amount uint64
}

var _ Instruction = InitializeInstruction{}
var _ Instruction = WithdrawInstruction{}

func (InitializeInstruction) Op() byte { return OpInitialize }

func (WithdrawInstruction) Op() byte { return OpWithdraw }

// DecodeInstruction parses a raw instruction payload. It is a pure parse
// with no side effects. Any unknown tag or a payload that is not exactly
// nine bytes fails with ErrInvalidInstruction.
func DecodeInstruction(raw []byte) (Instruction, error) {
	if len(raw) != instructionSize {
		return nil, errors.Wrapf(ErrInvalidInstruction, "payload: %d bytes", len(raw))
	}
	amount := binary.LittleEndian.Uint64(raw[1:])
	switch raw[0] {
	case OpInitialize:
		return InitializeInstruction{Amount: amount}, nil
	case OpWithdraw:
		return WithdrawInstruction{Amount: amount}, nil
	default:
		return nil, errors.Wrapf(ErrInvalidInstruction, "opcode: %d", raw[0])
	}
}

// EncodeInstruction packs an instruction into its wire representation.
func EncodeInstruction(ins Instruction) []byte {
	raw := make([]byte, instructionSize)
	raw[0] = ins.Op()
	switch ins := ins.(type) {
	case InitializeInstruction:
		binary.LittleEndian.PutUint64(raw[1:], ins.Amount)
	case WithdrawInstruction:
		binary.LittleEndian.PutUint64(raw[1:], ins.Amount)
	}
	return raw
}
