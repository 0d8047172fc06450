/*
Package escrow implements a two-party asset-custody escrow program.

An initializing party deposits a fungible asset balance into a custodial
holding controlled by the program itself and nominates the sole counterparty
entitled to withdraw. The custodial authority is a deterministic keyless
condition derived from the program identity, so neither party can move the
escrowed assets once the holding is reassigned.

The program understands exactly two instructions. Initialize records the
trade and hands the pre-funded temporary holding over to the derived
authority. Withdraw lets the nominated party claim part of the deposit, or,
when the request reaches the recorded balance, sweeps the holding, closes it
and destroys the record, refunding all rent to the initializer.
*/
package escrow
