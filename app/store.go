package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the parts of abci.Application that deal with state:
// genesis loading, block boundaries, commits and queries. Transactions are
// processed by BaseApp, which embeds it.
//
// InitChain and Commit carry no user input, so a failure there means the
// node is broken. Such failures panic.
type StoreApp struct {
	name        string
	state       *chainState
	initializer stablecoin.Initializer
	queries     stablecoin.QueryRouter
	logger      log.Logger
	debug       bool

	chainID string
	// root carries values valid for the whole life of the node, block
	// is root extended with the header of the current block.
	root  stablecoin.Context
	block stablecoin.Context
}

// NewStoreApp opens kv and restores the chain id saved at genesis, if any.
// It panics when kv cannot be loaded.
func NewStoreApp(name string, kv stablecoin.CommitKVStore, queries stablecoin.QueryRouter, ctx stablecoin.Context) *StoreApp {
	s := &StoreApp{
		name:    name,
		state:   openState(kv),
		queries: queries,
		root:    ctx,
	}
	s.WithLogger(log.NewNopLogger())
	if id := loadChainID(s.DeliverStore()); id != "" {
		s.setChainID(id)
	}
	s.block = stablecoin.WithHeight(s.root, s.state.height())
	return s
}

// WithInit sets the initializer used by InitChain.
func (s *StoreApp) WithInit(init stablecoin.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithDebug makes query errors carry full details.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// WithLogger replaces the logger of the app and of every context it builds.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.root = stablecoin.WithLogger(s.root, logger)
	return s
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// BlockContext is the context of the block being processed.
func (s *StoreApp) BlockContext() stablecoin.Context {
	return s.block
}

// DeliverStore collects the writes of delivered transactions. They are
// persisted on Commit.
func (s *StoreApp) DeliverStore() stablecoin.CacheableKVStore {
	return s.state.deliver
}

// CheckStore collects the writes of checked transactions. They are dropped
// on Commit.
func (s *StoreApp) CheckStore() stablecoin.CacheableKVStore {
	return s.state.check
}

func (s *StoreApp) setChainID(id string) {
	s.chainID = id
	s.root = stablecoin.WithChainID(s.root, id)
}

// Info reports the last committed height and app hash, so that tendermint
// can replay the blocks the app did not persist.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	last := s.state.last()
	s.logger.Info("Info synced", "height", last.Version, "hash", fmt.Sprintf("%X", last.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          stablecoin.Version(),
		LastBlockHeight:  last.Version,
		LastBlockAppHash: last.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// InitChain stores the chain id and passes the app_state of the genesis file
// to the initializer. Genesis is loaded once in the life of a chain.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (s *StoreApp) loadGenesis(chainID string, raw []byte) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrUnauthorized, "genesis already loaded for chain %s", s.chainID)
	}
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrEmpty, "genesis has no app_state, initialize the application before starting the chain")
	}
	var opts stablecoin.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	db := s.DeliverStore()
	if err := saveChainID(db, chainID); err != nil {
		return err
	}
	s.setChainID(chainID)
	s.block = stablecoin.WithHeight(s.root, s.state.height())

	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(opts, db)
}

func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := stablecoin.WithHeight(s.root, req.Header.GetHeight())
	s.block = stablecoin.WithBlockTime(ctx, req.Header.GetTime())
	return abci.ResponseBeginBlock{}
}

// EndBlock reports nothing, the validator set and consensus parameters
// never change.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.state.commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

/*
Query reads the last committed state. The request fields are used as
follows:

	Path    "/<bucket>", for example "/requests" or "/balances", optionally
	        followed by "?prefix" to match all keys starting with Data
	Data    the key, or key prefix, to look up
	Height  ignored

Key and Value of the response each hold a serialized ResultSet. Both sets
are always the same length.
*/
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := cutModifier(req.Path)
	h := s.queries.Handler(path)
	if h == nil {
		return s.queryFailed(errors.Wrapf(errors.ErrNotFound, "unexpected query path %q", req.Path))
	}

	models, err := h.Query(s.state.snapshot(), mod, req.Data)
	if err != nil {
		return s.queryFailed(err)
	}
	keys, err := proto.Marshal(ResultsFromKeys(models))
	if err != nil {
		return s.queryFailed(err)
	}
	values, err := proto.Marshal(ResultsFromValues(models))
	if err != nil {
		return s.queryFailed(err)
	}
	return abci.ResponseQuery{
		Key:    keys,
		Value:  values,
		Height: s.state.height(),
	}
}

// cutModifier separates the bucket path from the modifier after "?".
func cutModifier(full string) (path, mod string) {
	if i := strings.IndexByte(full, '?'); i >= 0 {
		return full[:i], full[i+1:]
	}
	return full, ""
}

func (s *StoreApp) queryFailed(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, s.debug)
	return abci.ResponseQuery{Code: code, Log: log}
}
