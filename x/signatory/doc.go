/*
Package signatory keeps the set of addresses authorized to create, vote on
and execute control requests.

The chain owner is implicitly authorized without being part of the set.
Ownership can be transferred to another address or renounced, after which
only the explicit signatories remain authorized.
*/
package signatory
