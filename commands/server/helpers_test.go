package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/errors"
)

// setupHome creates a home directory with a tendermint genesis file copied
// from testdata.
func setupHome(t *testing.T) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "billd-cmd")
	if err != nil {
		t.Fatalf("cannot create home: %s", err)
	}
	if err := os.Mkdir(filepath.Join(home, "config"), 0755); err != nil {
		t.Fatalf("cannot create config dir: %s", err)
	}
	raw, err := ioutil.ReadFile(filepath.Join("testdata", "genesis.json"))
	if err != nil {
		t.Fatalf("cannot read genesis: %s", err)
	}
	if err := ioutil.WriteFile(filepath.Join(home, "config", "genesis.json"), raw, 0600); err != nil {
		t.Fatalf("cannot write genesis: %s", err)
	}
	return home, func() { os.RemoveAll(home) }
}

func staticOptions(raw string) GenOptions {
	return func(args []string) (json.RawMessage, error) {
		return json.RawMessage(raw), nil
	}
}

// valueInit stores the "value" option under the "value" key and fails if
// it is missing.
type valueInit struct{}

func (valueInit) FromGenesis(opts billchain.Options, params billchain.GenesisParams, db billchain.KVStore) error {
	var v string
	if err := opts.ReadOptions("value", &v); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if v == "" {
		return errors.Wrap(errors.ErrEmpty, "value")
	}
	db.Set([]byte("value"), []byte(v))
	return nil
}
