/*
Package control implements the threshold governed control requests of the
token.

A request proposes a privileged operation in one of five domains: token
supply, transaction (pause), signatory, threshold and whitelist. Each domain
owns an independent id space. Authorized signatories vote on a request and
once the number of approvals reaches the threshold configured for its type
and subtype, the request is accepted. Only the creator of an accepted
request can execute it. Execution applies the effect exactly once.

	IN_PROGRESS --(quorum)--> ACCEPTED --(execute)--> EXECUTED
	IN_PROGRESS | ACCEPTED --(cancel)--> CANCELLED

The package does not depend on the packages that implement the effects. It
reaches them through the interfaces declared in interfaces.go.
*/
package control
