/*
Package currency keeps the registry of tokens that bills may be created in.

Each token is identified by its ticker. A token can be registered only once,
either in genesis or by the configured owner.
*/
package currency
