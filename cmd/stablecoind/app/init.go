package stablecoind

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/x/ledger"
	"github.com/iov-one/stablecoin/x/sigs"
)

// GenInitOptions produces the app_state for a new chain. The first
// argument is the owner address. Without it a fresh key is generated and
// its seed printed, to use for dev mode.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var owner stablecoin.Address
	if len(args) > 0 {
		addr, err := stablecoin.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "owner address")
		}
		owner = addr
	} else {
		key, seed := GenerateOwnerKey()
		owner = key
		fmt.Println("owner key seed:", seed)
	}

	type dict map[string]interface{}
	return json.Marshal(dict{
		"signatory": dict{
			"owner":       owner,
			"signatories": []stablecoin.Address{},
		},
		"ledger": dict{
			"token":             ledger.DefaultToken(),
			"enforce_whitelist": false,
			"balances":          []ledger.Holding{},
		},
	})
}

// GenerateOwnerKey returns the address of a new ed25519 key, along with the
// hex encoded seed to recover it.
func GenerateOwnerKey() (stablecoin.Address, string) {
	key := sigs.GenPrivateKey()
	return key.PublicKey().Address(), hex.EncodeToString(key.Seed())
}
