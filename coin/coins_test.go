package coin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinsAdd(t *testing.T) {
	cs, err := CombineCoins(NewCoin(1, 0, "ETH"), NewCoin(2, 0, "BTC"), NewCoin(0, 5, "ETH"))
	require.NoError(t, err)
	assert.Equal(t, Coins{NewCoin(2, 0, "BTC"), NewCoin(1, 5, "ETH")}, cs)

	next, err := cs.Add(NewCoin(1, 0, "DAI"))
	require.NoError(t, err)
	assert.Equal(t, 3, len(next))
	assert.Equal(t, "DAI", next[1].Ticker)
	// Receiver is left untouched.
	assert.Equal(t, 2, len(cs))

	drained, err := next.Subtract(NewCoin(2, 0, "BTC"))
	require.NoError(t, err)
	assert.Equal(t, Coins{NewCoin(1, 0, "DAI"), NewCoin(1, 5, "ETH")}, drained)
	assert.NoError(t, drained.Validate())
}

func TestCoinsContains(t *testing.T) {
	cs, err := CombineCoins(NewCoin(1, 0, "ETH"))
	require.NoError(t, err)
	assert.True(t, cs.Contains(NewCoin(0, 956000000, "ETH")))
	assert.True(t, cs.Contains(NewCoin(1, 0, "ETH")))
	assert.False(t, cs.Contains(NewCoin(1, 1, "ETH")))
	assert.False(t, cs.Contains(NewCoin(1, 0, "BTC")))
	assert.Equal(t, NewCoin(0, 0, "BTC"), cs.Balance("BTC"))
	assert.Equal(t, NewCoin(1, 0, "ETH"), cs.Balance("ETH"))
}

func TestCoinsValidate(t *testing.T) {
	assert.Error(t, Coins{NewCoin(1, 0, "ETH"), NewCoin(1, 0, "BTC")}.Validate())
	assert.Error(t, Coins{NewCoin(0, 0, "ETH")}.Validate())
	assert.NoError(t, Coins{}.Validate())

	a := Coins{NewCoin(1, 0, "ETH")}
	assert.True(t, a.Equals(a.Clone()))
	assert.True(t, a.IsPositive())
	assert.False(t, Coins{}.IsPositive())
}
