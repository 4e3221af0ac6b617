package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/crypto"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/x/oracle"
	"github.com/joho/godotenv"
	"github.com/tendermint/tendermint/libs/log"
)

type configuration struct {
	Seed           string
	WebhookSecret  string
	ChainID        string
	Deployment     string
	ServiceAddress string
	Port           string
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "billoracle")

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	conf := configuration{
		Seed:           os.Getenv("ORACLE_SEED"),
		WebhookSecret:  os.Getenv("WEBHOOK_SECRET"),
		ChainID:        os.Getenv("CHAIN_ID"),
		Deployment:     env("DEPLOYMENT", "billchain-dev"),
		ServiceAddress: os.Getenv("SERVICE_ADDRESS"),
		Port:           env("PORT", "8080"),
	}

	if err := run(conf, logger); err != nil {
		logger.Error("oracle service failed", "err", err)
		os.Exit(1)
	}
}

func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return fallback
}

func run(conf configuration, logger log.Logger) error {
	ws, err := newWebhookServer(conf, logger)
	if err != nil {
		return err
	}
	logger.Info("oracle service starting",
		"port", conf.Port,
		"oracle", ws.signer.PublicKey().Address(),
		"chain", conf.ChainID,
		"deployment", conf.Deployment)

	srv := &http.Server{
		Addr:              ":" + conf.Port,
		Handler:           ws.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// newWebhookServer validates the process configuration and derives the
// signing key and the domain separator from it.
func newWebhookServer(conf configuration, logger log.Logger) (*webhookServer, error) {
	if conf.Seed == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "ORACLE_SEED")
	}
	key, err := crypto.PrivKeyFromHexSeed(conf.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "ORACLE_SEED")
	}
	if conf.WebhookSecret == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "WEBHOOK_SECRET")
	}
	if !billchain.IsValidChainID(conf.ChainID) {
		return nil, errors.Wrapf(errors.ErrInput, "CHAIN_ID %q", conf.ChainID)
	}
	service, err := billchain.ParseAddress(conf.ServiceAddress)
	if err != nil {
		return nil, errors.Wrap(err, "SERVICE_ADDRESS")
	}
	if err := service.Validate(); err != nil {
		return nil, errors.Wrap(err, "SERVICE_ADDRESS")
	}
	if err := oracle.ValidateDeployment(conf.Deployment); err != nil {
		return nil, errors.Wrap(err, "DEPLOYMENT")
	}
	return &webhookServer{
		signer: key,
		secret: []byte(conf.WebhookSecret),
		domain: oracle.DomainSeparator(conf.ChainID, conf.Deployment, service),
		logger: logger,
		now:    time.Now,
	}, nil
}

// Routes returns the HTTP handler serving the oracle API.
func (ws *webhookServer) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logPrinter{ws.logger},
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	r.Get("/health", ws.Health)
	r.Post("/webhooks/payments", ws.PaymentWebhook)
	return r
}

// logPrinter routes chi access logs into the structured logger.
type logPrinter struct {
	logger log.Logger
}

func (p logPrinter) Print(v ...interface{}) {
	p.logger.Info(fmt.Sprint(v...))
}
