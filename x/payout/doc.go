/*
Package payout computes the platform fee of a bill and moves the escrowed
funds out of the escrow account.

The fee is computed once, when a bill is created, and frozen together with the
net payout. Disbursement applies both transfers or none of them.
*/
package payout
