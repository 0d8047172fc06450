/*
Package token implements the fungible asset ledger.

A holding is an account whose data payload carries the packed Holding state:
the registered authority and the balance. Every operation that moves assets
or changes the registered authority demands an explicit cask.Authorizer proof
for the current authority, so a holding owned by a protocol-derived condition
can only be moved by whoever can recompute that condition.
*/
package token
