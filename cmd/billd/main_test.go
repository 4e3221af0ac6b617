package main

import (
	"testing"

	"github.com/iov-one/billchain/chaintest/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestRootCommands(t *testing.T) {
	root := rootCmd(log.NewNopLogger())

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"init", "start", "validate", "keygen", "version"} {
		assert.Equal(t, true, names[want])
	}

	root.SetArgs([]string{"version"})
	assert.Nil(t, root.Execute())
}
