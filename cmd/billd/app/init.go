package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/app"
	"github.com/iov-one/billchain/coin"
	"github.com/iov-one/billchain/crypto"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/x/bill"
	"github.com/iov-one/billchain/x/cash"
	"github.com/iov-one/billchain/x/currency"
	"github.com/iov-one/billchain/x/dispute"
	"github.com/iov-one/billchain/x/oracle"
	"github.com/iov-one/billchain/x/risk"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is returned by the ABCI Info call.
const Name = "billd"

// NativeTicker is the currency escrowed by plain bills in a development
// genesis.
const NativeTicker = "ETH"

// GenInitOptions will produce the app state for a development chain with
// one administrator owning every configuration, holding native coins and
// acting as the only arbitrator.
//
// The first argument is the administrator address. If it is not given, a
// new key is generated and printed. The second optional argument is the
// hex encoded public key of the payment oracle.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var admin billchain.Address
	if len(args) > 0 {
		addr, err := billchain.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "admin address")
		}
		admin = addr
	} else {
		addr, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		admin = addr
		fmt.Println(keys)
	}

	var oracles []oracle.GenesisOracle
	if len(args) > 1 {
		if _, err := hex.DecodeString(args[1]); err != nil {
			return nil, errors.Wrap(errors.ErrInput, "oracle public key must be hex encoded")
		}
		oracles = append(oracles, oracle.GenesisOracle{PubKey: args[1], Name: "payment oracle"})
	}

	meta := &billchain.Metadata{Schema: 1}
	state := map[string]interface{}{
		"cash": []cash.GenesisAccount{
			{Address: admin, Coins: []coin.Coin{coin.NewCoin(1000, 0, NativeTicker)}},
		},
		"currencies": []map[string]string{
			{"ticker": "DAI", "name": "Dai Stablecoin"},
			{"ticker": "USDC", "name": "USD Coin"},
		},
		"oracles": oracles,
		"arbitrators": []dispute.GenesisArbitrator{
			{Address: admin, Name: "administrator"},
		},
		"conf": map[string]interface{}{
			"currency": currency.Configuration{Metadata: meta, Owner: admin},
			"risk": risk.Configuration{
				Metadata:           meta,
				Owner:              admin,
				PromotionThreshold: risk.DefaultPromotionThreshold,
			},
			"oracle": oracle.Configuration{
				Metadata:       meta,
				Owner:          admin,
				Deployment:     "billchain-dev",
				ServiceAddress: admin,
			},
			"bill": bill.Configuration{
				Metadata:     meta,
				Owner:        admin,
				FeeBps:       bill.DefaultFeeBps,
				FeeCollector: admin,
				NativeTicker: NativeTicker,
			},
			"dispute": dispute.Configuration{Metadata: meta, Owner: admin},
		},
	}
	return json.MarshalIndent(state, "", "  ")
}

// Initializers returns the genesis loaders of every module, in the order
// they must run.
func Initializers() billchain.Initializer {
	return app.ChainInitializers(
		cash.Initializer{},
		&currency.Initializer{},
		risk.Initializer{},
		oracle.Initializer{},
		bill.Initializer{},
		dispute.Initializer{},
	)
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "billchain.db")
	}

	application, err := Application(Name, Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers())
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Address billchain.Address  `json:"address"`
	Bech32  string             `json:"bech32"`
	Pubkey  *crypto.PublicKey  `json:"pub_key"`
	Secret  *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
// You can give coins to this address and
// import the keys in a client to use them
func GenerateCoinKey() (billchain.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()
	b32, err := addr.Bech32String()
	if err != nil {
		return nil, "", err
	}

	out := output{Address: addr, Bech32: b32, Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return addr, string(keys), nil
}
