package chaintest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/billchain"
	"github.com/iov-one/billchain/store/iavl"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data. Use it instead of store.MemStore when the test
// needs the production storage implementation.
func CommitKVStore(t testing.TB) (db billchain.CommitKVStore, cleanup func()) {
	dbpath, err := ioutil.TempDir("", "billchain")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	db = iavl.NewCommitStore(dbpath, "db")
	return db, func() { os.RemoveAll(dbpath) }
}
