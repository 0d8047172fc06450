/*
Package cask provides the core value types and host-model abstractions for
the cask escrow protocol.

The root package defines addresses and conditions (deterministic keyless
authorities), the account and rent model of the host, the KVStore interfaces
and the invocation runtime that executes a Handler as an atomic unit of work.

The escrow program itself lives in x/escrow and the fungible asset ledger it
collaborates with in x/token.
*/
package cask
