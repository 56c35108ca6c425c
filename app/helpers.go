package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// QueryClient reads application state through the abci Query interface,
// the same way a remote client connected to the node does.
type QueryClient struct {
	app abci.Application
}

// NewQueryClient returns a client querying given application.
func NewQueryClient(app abci.Application) QueryClient {
	return QueryClient{app: app}
}

// Query runs a query against the path with the given modifier and returns
// the models found. An error response is returned as an error carrying the
// response code.
func (c QueryClient) Query(path, mod string, data []byte) ([]stablecoin.Model, error) {
	if mod != "" {
		path += "?" + mod
	}
	res := c.app.Query(abci.RequestQuery{
		Path: path,
		Data: data,
	})
	if res.Code != errors.SuccessABCICode {
		return nil, errors.FromABCI(res.Code, res.Log)
	}
	var keys, values ResultSet
	if err := proto.Unmarshal(res.Key, &keys); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "cannot unmarshal keys")
	}
	if err := proto.Unmarshal(res.Value, &values); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "cannot unmarshal values")
	}
	return JoinResults(&keys, &values)
}

// One loads into dest the single model stored under key. It returns
// ErrNotFound when there is none.
func (c QueryClient) One(path string, key []byte, dest proto.Message) error {
	models, err := c.Query(path, stablecoin.KeyQueryMod, key)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", path, key)
	}
	if err := proto.Unmarshal(models[0].Value, dest); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return nil
}

// Prefix returns all models under path with keys starting with prefix.
func (c QueryClient) Prefix(path string, prefix []byte) ([]stablecoin.Model, error) {
	return c.Query(path, stablecoin.PrefixQueryMod, prefix)
}
