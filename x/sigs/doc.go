/*
Package sigs authenticates transactions signed with ed25519 keys.

Every signature covers the chain id and a per signer sequence. The sequence
is stored in the "sigs" bucket and moves forward with every verified
signature, so a transaction is accepted once only.
*/
package sigs
