package cask

// Handler is a core engine that can process the instructions of one program.
//
// A handler is stateless between invocations. All state lives in the accounts
// supplied by the caller on every call. The handler may mutate the accounts
// it is given; the runtime decides whether those mutations are committed.
type Handler interface {
	Handle(program Address, accounts []*Account, instruction []byte) error
}
