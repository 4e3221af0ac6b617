package app

import (
	"context"
	"testing"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/store/iavl"
	"github.com/stretchr/testify/assert"
)

const dummyKey = "dummy"

type dummyInit struct{}

func (dummyInit) FromGenesis(opts billchain.Options, params billchain.GenesisParams, kv billchain.KVStore) error {
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return err
	}
	kv.Set([]byte(dummyKey), []byte(value))
	return nil
}

type countInit struct {
	called  int
	chainID string
}

func (c *countInit) FromGenesis(opts billchain.Options, params billchain.GenesisParams, kv billchain.KVStore) error {
	c.called++
	c.chainID = params.ChainID
	return nil
}

func TestLoadGenesis(t *testing.T) {
	cases := map[string]struct {
		file         string
		parseError   bool
		initErr      bool
		expectChain  string
		expectCalled int
		expectValue  []byte
	}{
		"no such file": {
			file:       "testdata/missing.json",
			parseError: true,
			initErr:    true,
		},
		"proper parse": {
			file:         "testdata/genesis.json",
			expectChain:  "test-chain-67",
			expectCalled: 1,
			expectValue:  []byte("secret"),
		},
		"parse genesis, bad init": {
			file:        "testdata/bad_genesis.json",
			initErr:     true,
			expectChain: "super-chain-22",
		},
		"invalid chain id": {
			file:    "testdata/bad_chain.json",
			initErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			gen, err := loadGenesis(tc.file)
			if tc.parseError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			c := new(countInit)
			init := ChainInitializers(dummyInit{}, c)
			app := NewStoreApp("foo", iavl.NewMemCommitStore(), billchain.NewQueryRouter(), context.Background())
			assert.Equal(t, "", app.GetChainID())

			err = app.LoadGenesis(tc.file, init)
			if tc.initErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, gen.ChainID, c.chainID)
			}
			assert.Equal(t, tc.expectChain, app.GetChainID())
			assert.Equal(t, tc.expectCalled, c.called)
			assert.Equal(t, tc.expectValue, app.DeliverStore().Get([]byte(dummyKey)))
		})
	}
}

func TestGenesisLoadedOnce(t *testing.T) {
	app := NewStoreApp("foo", iavl.NewMemCommitStore(), billchain.NewQueryRouter(), context.Background())
	init := ChainInitializers(dummyInit{})
	assert.NoError(t, app.LoadGenesis("testdata/genesis.json", init))
	assert.Error(t, app.LoadGenesis("testdata/genesis.json", init))
	assert.Equal(t, "test-chain-67", app.GetChainID())
}
