package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/billchain/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// FlagHome is the directory holding the tendermint configuration and the
	// application database.
	FlagHome = "home"

	flagForce   = "force"
	appStateKey = "app_state"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd will add the application state to a genesis file created by
// `tendermint init`. The application passes in a function to generate
// proper options from the command arguments.
func InitCmd(gen GenOptions, logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [admin address] [oracle pubkey]",
		Short: "Add the application state to the genesis file",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			home := viper.GetString(FlagHome)
			force := viper.GetBool(flagForce)
			return InitGenesis(gen, logger, home, force, args)
		},
	}
	cmd.Flags().Bool(flagForce, false, "overwrite an existing app_state")
	viper.BindPFlag(flagForce, cmd.Flags().Lookup(flagForce))
	return cmd
}

// InitGenesis writes the generated options into <home>/config/genesis.json.
// An existing app_state is only replaced when force is set.
func InitGenesis(gen GenOptions, logger log.Logger, home string, force bool, args []string) error {
	genFile := filepath.Join(home, "config", "genesis.json")
	if !fileExists(genFile) {
		return errors.Wrapf(errors.ErrNotFound, "genesis file %s, run `tendermint init` first", genFile)
	}

	options, err := gen(args)
	if err != nil {
		return err
	}
	if err := addGenesisOptions(genFile, options, force); err != nil {
		return err
	}
	logger.Info("App state written", "path", genFile)
	return nil
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

// genesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type genesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage, force bool) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	var doc genesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis file: %s", err)
	}
	if state, ok := doc[appStateKey]; ok && len(state) > 0 && string(state) != "null" && !force {
		return errors.Wrap(errors.ErrState, "app_state already set, use --force to overwrite")
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrHuman, err.Error())
	}
	return ioutil.WriteFile(filename, out, 0600)
}
