/*
Package x contains the extensions of the billchain application.

Extensions implement handlers, decorators and genesis initializers, and are
combined together in the app package. The escrow protocol lives in x/risk,
x/payout, x/oracle, x/bill and x/dispute; the remaining packages provide
accounts, signatures, currencies and middleware the protocol builds on.
*/
package x
