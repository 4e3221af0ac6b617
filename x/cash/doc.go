/*
Package cash defines a simple implementation of coin balances and transfers
between accounts.

There is no logic in the coins (tokens), except that the balance of any coin
may not go below zero. Bill escrow accounts are ordinary accounts of this
package, controlled by the bill module only.
*/
package cash
