package utils

import (
	"strings"

	"github.com/iov-one/stablecoin"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	// ActionKey tags the path of the delivered message. Clients subscribe
	// to it, for example to "action='control/execute'".
	ActionKey = "action"
	// ModuleKey tags the component that handled the message, such as
	// "control" or "ledger", to follow all governance traffic at once.
	ModuleKey = "module"
)

// ActionTagger tags the result of every successful delivery with the path
// and the component of its message. Checks pass through untouched.
type ActionTagger struct{}

var _ stablecoin.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx, next stablecoin.Checker) (*stablecoin.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx stablecoin.Context, db stablecoin.KVStore, tx stablecoin.Tx, next stablecoin.Deliverer) (*stablecoin.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	path := msg.Path()
	module := path
	if i := strings.IndexByte(path, '/'); i > 0 {
		module = path[:i]
	}
	res.Tags = append(res.Tags,
		common.KVPair{Key: []byte(ActionKey), Value: []byte(path)},
		common.KVPair{Key: []byte(ModuleKey), Value: []byte(module)},
	)
	return res, nil
}
