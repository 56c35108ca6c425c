/*
Package stablecoin defines the interfaces shared by all extensions of the
stablecoin application: storage, messages, transactions, handlers and
decorators. It also contains helpers to work with context, addresses,
events and abci results.

Extensions under x/ build on these interfaces. The governance extensions
(x/signatory, x/threshold and x/control) never depend on the application
wiring in app/ or cmd/, only on the KVStore and the x.Authenticator.
*/
package stablecoin
