package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/billchain"
	billd "github.com/iov-one/billchain/cmd/billd/app"
	"github.com/iov-one/billchain/commands/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "billd")

	if err := rootCmd(logger).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func rootCmd(logger log.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "billd",
		Short:         "Fiat to crypto escrow chain node",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".billd")
	root.PersistentFlags().String(server.FlagHome, defaultHome, "directory to store files under")
	viper.BindPFlag(server.FlagHome, root.PersistentFlags().Lookup(server.FlagHome))

	// every flag can also be set with a BILLD_ prefixed variable
	viper.SetEnvPrefix("billd")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	root.AddCommand(
		server.InitCmd(billd.GenInitOptions, logger),
		server.StartCmd(billd.GenerateApp, logger),
		server.ValidateCmd(billd.Initializers()),
		keygenCmd(),
		versionCmd(),
	)
	return root
}

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new ed25519 key and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, keys, err := billd.GenerateCoinKey()
			if err != nil {
				return err
			}
			fmt.Println(keys)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the app version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(billchain.Version())
		},
	}
}
