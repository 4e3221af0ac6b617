package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/store"
	"github.com/spf13/cobra"
)

// ValidateCmd loads every given genesis file into a throwaway store.
func ValidateCmd(ini billchain.Initializer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <genesis file> [<genesis file>...]",
		Short: "Check that genesis files can initialize the application",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ValidateGenesis(ini, args)
		},
	}
}

// ValidateGenesis runs the initializer on the app_state of each genesis
// file. The first failure is returned.
func ValidateGenesis(ini billchain.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini billchain.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read genesis file: %s", err)
	}

	var genesis struct {
		ChainID string            `json:"chain_id"`
		State   billchain.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot JSON deserialize genesis: %s", err)
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()

	if err := ini.FromGenesis(genesis.State, billchain.FromInitChain(genesis.ChainID), db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
