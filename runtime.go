package cask

import (
	"github.com/cask-protocol/cask/errors"
)

// AccountMeta names one account an invocation wants access to, together with
// the access attributes the caller claims for it. The host verified any
// signature before the invocation runs, so the Signer flag is trusted inside
// a handler.
type AccountMeta struct {
	Address  Address
	Signer   bool
	Writable bool
}

var acctPrefix = []byte("acct:")

func accountKey(addr Address) []byte {
	return append(append([]byte(nil), acctPrefix...), addr...)
}

// LoadAccount reads an account from the store. Missing accounts are reported
// with ErrNotFound.
func LoadAccount(db ReadOnlyKVStore, addr Address) (*Account, error) {
	raw := db.Get(accountKey(addr))
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "account %s", addr)
	}
	acct := &Account{Address: append(Address(nil), addr...)}
	if err := acct.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(err, "account payload")
	}
	return acct, nil
}

// SaveAccount persists an account in the store.
func SaveAccount(db SetDeleter, acct *Account) error {
	if err := acct.Validate(); err != nil {
		return err
	}
	raw, err := acct.Marshal()
	if err != nil {
		return err
	}
	db.Set(accountKey(acct.Address), raw)
	return nil
}

// Runtime executes program invocations against a backing store.
//
// Each invocation is a single-threaded, non-reentrant, atomic unit. The
// runtime materializes account views from a cache-wrapped store, runs the
// handler and either commits every write or, on any failure, discards the
// cache so no partial state change is ever observed.
type Runtime struct {
	db      CacheableKVStore
	program Address
	handler Handler
}

// NewRuntime binds a handler to its program address and backing store.
func NewRuntime(db CacheableKVStore, program Address, handler Handler) *Runtime {
	return &Runtime{
		db:      db,
		program: program,
		handler: handler,
	}
}

// Invoke runs one atomic invocation of the program. Every account named in
// metas must already exist. On success all mutations of writable accounts are
// committed and accounts left without any lamport balance are reaped. On
// failure the error of the handler is returned verbatim and no write is
// visible.
func (r *Runtime) Invoke(metas []AccountMeta, instruction []byte) error {
	cache := r.db.CacheWrap()

	accounts := make([]*Account, len(metas))
	for i, m := range metas {
		acct, err := LoadAccount(cache, m.Address)
		if err != nil {
			cache.Discard()
			return err
		}
		acct.Signer = m.Signer
		acct.Writable = m.Writable
		accounts[i] = acct
	}

	if err := r.handler.Handle(r.program, accounts, instruction); err != nil {
		cache.Discard()
		return err
	}

	for _, acct := range accounts {
		if !acct.Writable {
			// Mutations of read-only accounts are dropped.
			continue
		}
		if acct.Lamports == 0 {
			// Nothing pays for the storage anymore.
			cache.Delete(accountKey(acct.Address))
			continue
		}
		if err := SaveAccount(cache, acct); err != nil {
			cache.Discard()
			return errors.Wrapf(err, "commit account %s", acct.Address)
		}
	}
	cache.Write()
	return nil
}

// Account returns the committed state of an account.
func (r *Runtime) Account(addr Address) (*Account, error) {
	return LoadAccount(r.db, addr)
}
