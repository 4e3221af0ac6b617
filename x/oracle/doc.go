/*
Package oracle verifies signed attestations of fiat payments.

An oracle is a trusted ed25519 key registered by the owner of the oracle
configuration. When a payment processor confirms that a payer sent the fiat
amount of a bill, the oracle signs an Attestation. The signature covers a
domain separator derived from the chain ID, the deployment name and the
escrow service address, so an attestation cannot be replayed on another
deployment.

An attestation is accepted only if it is signed by a currently registered
oracle, is fresh, and its (bill, payment reference) pair was never consumed
before. Every failure is reported as ErrInvalidSignature.
*/
package oracle
