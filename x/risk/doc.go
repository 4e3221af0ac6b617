/*
Package risk classifies payment methods and throttles the trading volume of
every account.

Each payment method carries a hold period, the time that must pass between
the oracle confirming a fiat payment and the release of the escrowed funds,
and may be blocked altogether. Accounts are assigned a trust level that
selects their velocity limits: trade size, daily and weekly volume and the
number of trades per day. Counters are kept per account in rolling windows
that reset when read after the window elapsed.
*/
package risk
