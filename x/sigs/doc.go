/*
Package sigs provides basic authentication middleware to verify the
signatures on the transaction, and maintain nonces for replay protection.

Every signer has a sequence stored under the address of its public key. A
signature is valid only for the current sequence of the signer, which is
incremented each time a signature is accepted.
*/
package sigs
