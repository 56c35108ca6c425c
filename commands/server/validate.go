package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/iov-one/stablecoin/store"
)

// ValidateGenesis loads the app_state of every genesis file with the
// initializer. Nothing is persisted.
func ValidateGenesis(ini stablecoin.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini stablecoin.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrapf(errors.ErrNotFound, "cannot read genesis file: %s", err)
	}

	var genesis struct {
		State json.RawMessage `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot JSON deserialize genesis: %s", err)
	}
	return validateState(ini, genesis.State)
}

func validateState(ini stablecoin.Initializer, state json.RawMessage) error {
	var opts stablecoin.Options
	if err := json.Unmarshal(state, &opts); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot JSON deserialize app state: %s", err)
	}
	if len(opts) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app state")
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()
	if err := ini.FromGenesis(opts, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
