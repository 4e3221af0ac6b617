package server

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/iov-one/billchain/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind  = "bind"
	flagDebug = "debug"
)

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// StartCmd runs the application as an ABCI socket server until the process
// receives an interrupt.
func StartCmd(gen AppGenerator, logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the abci server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svr, err := StartServer(gen, logger,
				viper.GetString(FlagHome),
				viper.GetString(flagBind),
				viper.GetBool(flagDebug))
			if err != nil {
				return err
			}
			waitForSignal()
			logger.Info("Stopping ABCI app")
			return svr.Stop()
		},
	}
	cmd.Flags().String(flagBind, "tcp://localhost:26658", "address server listens on")
	cmd.Flags().Bool(flagDebug, false, "call stack returned on error")
	viper.BindPFlag(flagBind, cmd.Flags().Lookup(flagBind))
	viper.BindPFlag(flagDebug, cmd.Flags().Lookup(flagDebug))
	return cmd
}

// StartServer generates the application in home and serves it on addr. The
// returned service must be stopped by the caller.
func StartServer(gen AppGenerator, logger log.Logger, home, addr string, debug bool) (cmn.Service, error) {
	app, err := gen(home, logger, debug)
	if err != nil {
		return nil, err
	}

	logger.Info("Starting ABCI app", "bind", addr)
	svr, err := server.NewServer(addr, "socket", app)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "cannot start server: %s", err)
	}
	return svr, nil
}

func waitForSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
