package stablecoin

import (
	"github.com/iov-one/stablecoin/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// CheckResult is returned by handlers for a transaction that passed the
// checks. Failures are reported with an error, never with a result.
type CheckResult struct {
	// Data is returned to the client as is.
	Data []byte
	Log  string
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{Data: c.Data, Log: c.Log}
}

// DeliverResult is returned by handlers for an executed transaction.
type DeliverResult struct {
	// Data holds the output of the handler, for example the id of a
	// created request.
	Data []byte
	Log  string
	// Tags index the transaction in tendermint. Every emitted event is
	// stored here.
	Tags []common.KVPair
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{Data: d.Data, Log: d.Log, Tags: d.Tags}
}

func CheckOrError(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return res.ToABCI()
}

func DeliverOrError(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return res.ToABCI()
}

// CheckTxError reports err in a CheckTx response. See errors.ABCIInfo for
// what is kept out of the log.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := responseInfo("cannot check tx", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

// DeliverTxError reports err in a DeliverTx response.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := responseInfo("cannot deliver tx", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

func responseInfo(call string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, call + ": " + log
}

// ParseDeliverOrError reads a DeliverTx response back. A failed transaction
// gives an error matching the root error the handler returned.
func ParseDeliverOrError(res abci.ResponseDeliverTx) (*DeliverResult, error) {
	if err := errors.FromABCI(res.Code, res.Log); err != nil {
		return nil, err
	}
	return &DeliverResult{Data: res.Data, Log: res.Log, Tags: res.Tags}, nil
}
