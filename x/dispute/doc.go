/*
Package dispute implements arbitration of disputed bills.

Arbitrators are registered by the owner of the "dispute" configuration. A
registered arbitrator resolves a bill in the DISPUTED state either toward the
payer, paying out the net amount and the platform fee exactly as a regular
release does, or toward the maker, refunding the whole escrowed amount.
Neither the oracle verification nor the hold period is required for that.
Every decision is kept as a Resolution.
*/
package dispute
