package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/stablecoin"
	"github.com/iov-one/stablecoin/errors"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

// Config is shared by all commands. It is complete once the flags of the
// root command are parsed.
type Config struct {
	Home   string
	Logger log.Logger
}

const appStateKey = "app_state"

// GenOptions can parse command-line arguments to generate the default
// app_state for the genesis file. This is application-specific.
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisPath returns the location of the tendermint genesis file inside of
// the home directory.
func GenesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd returns a command that adds the app_state generated by gen to an
// existing tendermint genesis file. Before writing, the state is loaded with
// the initializer into a throw away store, so a broken state is never
// written.
func InitCmd(gen GenOptions, ini stablecoin.Initializer, cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "init [owner-address]",
		Short: "Initialize app options in the genesis file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			genFile := GenesisPath(cfg.Home)
			options, err := gen(args)
			if err != nil {
				return errors.Wrap(err, "cannot generate app state")
			}
			if err := validateState(ini, options); err != nil {
				return err
			}
			if err := addGenesisOptions(genFile, options); err != nil {
				return err
			}
			cfg.Logger.Info("App state written", "path", genFile)
			return nil
		},
	}
}

// genesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one field.
type genesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if os.IsNotExist(err) {
		return errors.Wrapf(errors.ErrNotFound, "genesis file %s, run tendermint init first", filename)
	}
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}

	var doc genesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "genesis file %s: %s", filename, err)
	}
	if raw := doc[appStateKey]; len(raw) > 0 && string(raw) != "null" {
		return errors.Wrapf(errors.ErrDuplicate, "%s already set in %s", appStateKey, filename)
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if err := ioutil.WriteFile(filename, out, 0600); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
