package threshold

import (
	"github.com/iov-one/stablecoin"
)

// RegisterQuery registers the threshold table under "/thresholds". The key
// is the request type byte.
func RegisterQuery(qr stablecoin.QueryRouter) {
	newThresholdBucket().Register("thresholds", qr)
}
