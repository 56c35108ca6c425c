/*
Package whitelist keeps the set of addresses allowed to receive tokens when
the ledger enforces the whitelist policy. Membership is changed by executed
whitelist control requests.
*/
package whitelist
