package whitelist

import (
	"github.com/iov-one/stablecoin"
)

// RegisterQuery registers the whitelist under "/whitelist". Members are
// keyed by address.
func RegisterQuery(qr stablecoin.QueryRouter) {
	newMemberBucket().Register("", qr)
}
