package app

import (
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is a complete abci.Application. It decodes every transaction and
// passes it to a single handler, usually a decorated router.
type BaseApp struct {
	*StoreApp
	decoder stablecoin.TxDecoder
	handler stablecoin.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

func NewBaseApp(store *StoreApp, decoder stablecoin.TxDecoder, handler stablecoin.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	ctx, tx, err := b.prepare("check_tx", raw)
	if err != nil {
		return stablecoin.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return stablecoin.CheckOrError(res, err, b.debug)
}

func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	ctx, tx, err := b.prepare("deliver_tx", raw)
	if err != nil {
		return stablecoin.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return stablecoin.DeliverOrError(res, err, b.debug)
}

// prepare decodes raw and builds the context the handler runs with. A
// decoder panic is returned as an error so that malformed input cannot
// stop the node.
func (b BaseApp) prepare(call string, raw []byte) (ctx stablecoin.Context, tx stablecoin.Tx, err error) {
	defer errors.Recover(&err)
	if tx, err = b.decoder(raw); err != nil {
		return nil, nil, err
	}
	ctx = stablecoin.WithLogInfo(b.BlockContext(), "call", call, "path", stablecoin.GetPath(tx))
	return ctx, tx, nil
}
