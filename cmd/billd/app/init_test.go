package app

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/chaintest"
	"github.com/iov-one/billchain/chaintest/assert"
	"github.com/iov-one/billchain/crypto"
	"github.com/iov-one/billchain/errors"
	"github.com/iov-one/billchain/store"
	"github.com/iov-one/billchain/x/bill"
	"github.com/iov-one/billchain/x/dispute"
	"github.com/iov-one/billchain/x/oracle"
)

func TestGenInitOptions(t *testing.T) {
	admin := chaintest.NewCondition().Address()
	oracleKey := crypto.GenPrivKeyEd25519()
	oracleHex := hex.EncodeToString(oracleKey.PublicKey().Ed25519)

	cases := map[string]struct {
		args        []string
		wantErr     *errors.Error
		wantOracles int
	}{
		"generated admin": {
			args: nil,
		},
		"given admin": {
			args: []string{admin.String()},
		},
		"admin as bech32": {
			args: []string{mustBech32(t, admin)},
		},
		"admin and oracle": {
			args:        []string{admin.String(), oracleHex},
			wantOracles: 1,
		},
		"invalid admin": {
			args:    []string{"not-an-address"},
			wantErr: errors.ErrInput,
		},
		"invalid oracle key": {
			args:    []string{admin.String(), "zz"},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := GenInitOptions(tc.args)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			var opts billchain.Options
			assert.Nil(t, json.Unmarshal(raw, &opts))

			db := store.MemStore()
			params := billchain.GenesisParams{ChainID: chainID}
			assert.Nil(t, Initializers().FromGenesis(opts, params, db))

			paused, err := bill.IsPaused(db)
			assert.Nil(t, err)
			assert.Equal(t, false, paused)

			if tc.wantOracles > 0 {
				assert.Nil(t, oracle.NewOracleBucket().Has(db, oracleKey.PublicKey().Address()))
			}

			var arbitrators []dispute.GenesisArbitrator
			assert.Nil(t, opts.ReadOptions("arbitrators", &arbitrators))
			assert.Equal(t, 1, len(arbitrators))

			var gens []oracle.GenesisOracle
			assert.Nil(t, opts.ReadOptions("oracles", &gens))
			assert.Equal(t, tc.wantOracles, len(gens))
		})
	}
}

func mustBech32(t testing.TB, a billchain.Address) string {
	t.Helper()
	s, err := a.Bech32String()
	if err != nil {
		t.Fatalf("cannot encode address: %s", err)
	}
	return "bech32:" + s
}

func TestGenerateCoinKey(t *testing.T) {
	addr, keys, err := GenerateCoinKey()
	assert.Nil(t, err)
	assert.Nil(t, addr.Validate())

	var out struct {
		Address billchain.Address `json:"address"`
	}
	assert.Nil(t, json.Unmarshal([]byte(keys), &out))
	assert.Equal(t, addr, out.Address)
}
