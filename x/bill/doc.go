/*
Package bill implements the escrow ledger of fiat for crypto trades.

A maker escrows coins in a bill. A payer claims the bill, sends the fiat
amount off chain and marks the payment as sent. Once an oracle attests the
fiat receipt and the hold period of the payment method has elapsed, anyone
can release the escrow: the payer receives the net payout and the fee
collector the platform fee, both fixed when the bill was created.

Release is gated only by the oracle attestation and the hold period. Maker
and payer confirmations are stored for display and never move funds.
*/
package bill
