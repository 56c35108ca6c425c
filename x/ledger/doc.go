/*
Package ledger keeps the balances, allowances and total supply of the
token.

Tokens are created and destroyed only by executed control requests. Holders
move them with transfer messages and grant spenders allowances in the
usual ERC20 way. While the ledger is paused no tokens move, allowances can
still be changed.

When the whitelist policy is enabled only whitelisted addresses can receive
tokens.
*/
package ledger
