package escrow

import (
	"github.com/rs/zerolog"

	"github.com/cask-protocol/cask"
	"github.com/cask-protocol/cask/errors"
)

const (
	initializeAccountCount = 6
	withdrawAccountCount   = 7
)

// Ledger is the interface required from the asset ledger collaborator. Every
// operation demands an explicit proof for the current holding authority.
type Ledger interface {
	Transfer(src, dst *cask.Account, auth cask.Authorizer, amount uint64) error
	SetAuthority(holding *cask.Account, newAuthority cask.Address, auth cask.Authorizer) error
	Close(holding, refundTo *cask.Account, auth cask.Authorizer) error
	Balance(holding *cask.Account) (uint64, error)
}

// Processor is the escrow state machine. It is stateless between
// invocations; all state lives in the accounts supplied on every call.
type Processor struct {
	ledger Ledger
	log    zerolog.Logger
}

var _ cask.Handler = (*Processor)(nil)

// NewProcessor returns a processor bound to the given asset ledger. Traces
// are discarded unless a logger is attached with WithLogger.
func NewProcessor(ledger Ledger) *Processor {
	return &Processor{
		ledger: ledger,
		log:    zerolog.Nop(),
	}
}

// WithLogger returns a copy of the processor that writes dispatch and
// settlement traces to the given logger.
func (p *Processor) WithLogger(log zerolog.Logger) *Processor {
	return &Processor{
		ledger: p.ledger,
		log:    log,
	}
}

// Handle decodes one instruction and dispatches it. Any failure aborts the
// invocation; the runtime discards every write of an aborted invocation, so
// there is never a partial state change to clean up here.
func (p *Processor) Handle(program cask.Address, accounts []*cask.Account, instruction []byte) error {
	ins, err := DecodeInstruction(instruction)
	if err != nil {
		return err
	}
	switch ins := ins.(type) {
	case InitializeInstruction:
		p.log.Info().Uint64("amount", ins.Amount).Msg("instruction: initialize")
		return p.handleInitialize(program, accounts, ins.Amount)
	case WithdrawInstruction:
		p.log.Info().Uint64("amount", ins.Amount).Msg("instruction: withdraw")
		return p.handleWithdraw(program, accounts, ins.Amount)
	default:
		return errors.Wrapf(ErrInvalidInstruction, "opcode: %d", ins.Op())
	}
}

// initializeAccounts is the typed view of the positional account list of an
// Initialize call. The order is part of the wire contract.
type initializeAccounts struct {
	initializer *cask.Account // deposits, must sign
	holding     *cask.Account // pre-created and pre-funded by the initializer
	withdrawer  *cask.Account // future sole claimant, any address
	record      *cask.Account // escrow record storage
	rent        *cask.Account // rent parameters
	ledgerRef   *cask.Account // asset ledger program
}

func newInitializeAccounts(accounts []*cask.Account) (initializeAccounts, error) {
	if len(accounts) != initializeAccountCount {
		return initializeAccounts{}, errors.Wrapf(errors.ErrInput, "want %d accounts, got %d", initializeAccountCount, len(accounts))
	}
	return initializeAccounts{
		initializer: accounts[0],
		holding:     accounts[1],
		withdrawer:  accounts[2],
		record:      accounts[3],
		rent:        accounts[4],
		ledgerRef:   accounts[5],
	}, nil
}

// withdrawAccounts is the typed view of the positional account list of a
// Withdraw call. The order is part of the wire contract.
type withdrawAccounts struct {
	taker           *cask.Account // claims, must sign
	takerHolding    *cask.Account // destination of the asset transfer
	holding         *cask.Account // custodial temporary holding
	initializerMain *cask.Account // rent refund destination on full settlement
	record          *cask.Account // escrow record storage
	ledgerRef       *cask.Account // asset ledger program
	authorityRef    *cask.Account // derived custodial authority
}

func newWithdrawAccounts(accounts []*cask.Account) (withdrawAccounts, error) {
	if len(accounts) != withdrawAccountCount {
		return withdrawAccounts{}, errors.Wrapf(errors.ErrInput, "want %d accounts, got %d", withdrawAccountCount, len(accounts))
	}
	return withdrawAccounts{
		taker:           accounts[0],
		takerHolding:    accounts[1],
		holding:         accounts[2],
		initializerMain: accounts[3],
		record:          accounts[4],
		ledgerRef:       accounts[5],
		authorityRef:    accounts[6],
	}, nil
}

// handleInitialize validates the deposit, persists the record and reassigns
// the temporary holding to the custodial authority. No assets move yet.
func (p *Processor) handleInitialize(program cask.Address, accounts []*cask.Account, amount uint64) error {
	a, err := newInitializeAccounts(accounts)
	if err != nil {
		return err
	}
	if !a.initializer.Signer {
		return errors.Wrap(errors.ErrMissingSignature, "initializer")
	}

	rent, err := cask.LoadRent(a.rent)
	if err != nil {
		return err
	}
	if !rent.IsExempt(a.record.Lamports, len(a.record.Data)) {
		return errors.Wrap(errors.ErrNotRentExempt, "escrow record")
	}

	var rec Record
	if err := rec.Unmarshal(a.record.Data); err != nil {
		return errors.Wrap(err, "escrow record")
	}
	if rec.Initialized {
		return errors.Wrap(errors.ErrAlreadyInitialized, "escrow record")
	}

	rec.Initialized = true
	rec.Initializer = a.initializer.Address
	rec.Holding = a.holding.Address
	rec.Withdrawer = a.withdrawer.Address
	rec.Deposited = amount
	if err := saveRecord(a.record, &rec); err != nil {
		return err
	}

	authority := Authority(program)
	p.log.Debug().Stringer("authority", authority).Msg("reassigning the holding to the custodial authority")
	// The initializer still owns the holding and signed this call. After
	// this returns only the derived authority can move assets out.
	return p.ledger.SetAuthority(a.holding, authority.Address(), cask.SignedBy(a.initializer))
}

// handleWithdraw is the sole authorization gate protecting the custodial
// holding. All cross checks must pass before any asset movement is
// authorized.
func (p *Processor) handleWithdraw(program cask.Address, accounts []*cask.Account, amount uint64) error {
	a, err := newWithdrawAccounts(accounts)
	if err != nil {
		return err
	}
	if !a.taker.Signer {
		return errors.Wrap(errors.ErrMissingSignature, "taker")
	}

	balance, err := p.ledger.Balance(a.holding)
	if err != nil {
		return err
	}
	if amount > balance {
		return errors.Wrapf(ErrAmountMismatch, "requested %d, live balance %d", amount, balance)
	}

	rec, err := loadRecord(a.record)
	if err != nil {
		return err
	}
	if !rec.Holding.Equals(a.holding.Address) {
		return errors.Wrap(errors.ErrAccountData, "holding does not match the record")
	}
	if !rec.Initializer.Equals(a.initializerMain.Address) {
		return errors.Wrap(errors.ErrAccountData, "initializer does not match the record")
	}
	if !rec.Withdrawer.Equals(a.taker.Address) {
		return errors.Wrap(errors.ErrAccountData, "withdrawer does not match the record")
	}

	authority := Authority(program)
	if !authority.Address().Equals(a.authorityRef.Address) {
		return errors.Wrap(errors.ErrAccountData, "derived authority does not match")
	}

	s := decideSettlement(amount, rec.Deposited, balance)

	p.log.Info().Uint64("amount", s.transfer).Msg("transferring assets to the taker")
	if err := p.ledger.Transfer(a.holding, a.takerHolding, authority, s.transfer); err != nil {
		return err
	}

	if !s.full {
		rec.Deposited = s.remaining
		return saveRecord(a.record, rec)
	}

	p.log.Info().Msg("closing the custodial holding")
	if err := p.ledger.Close(a.holding, a.initializerMain, authority); err != nil {
		return err
	}

	p.log.Info().Msg("closing the escrow record")
	if err := a.initializerMain.AddLamports(a.record.Lamports); err != nil {
		return err
	}
	a.record.Lamports = 0
	for i := range a.record.Data {
		a.record.Data[i] = 0
	}
	return nil
}

// settlement describes how one withdrawal settles.
type settlement struct {
	// full means the holding is swept and destroyed along with the record.
	full bool
	// transfer is the exact quantity moved to the taker.
	transfer uint64
	// remaining is the record balance left after a partial settlement.
	remaining uint64
}

// decideSettlement keys on the requested amount against the recorded
// deposit. Any request at or above the recorded balance is a full settlement
// that sweeps the holding's entire live balance, so a holding about to close
// never retains residue even if the two values have drifted apart.
func decideSettlement(requested, deposited, liveBalance uint64) settlement {
	if requested < deposited {
		return settlement{
			transfer:  requested,
			remaining: deposited - requested,
		}
	}
	return settlement{
		full:     true,
		transfer: liveBalance,
	}
}
