package coin

import (
	"encoding/json"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/iov-one/billchain/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// IsCC validates a currency ticker.
var IsCC = regexp.MustCompile(`^[A-Z]{3,5}$`).MatchString

const (
	// MaxInt is the largest accepted whole value, 10^15-1.
	MaxInt int64 = 999999999999999
	MinInt       = -MaxInt

	// FracUnit is the number of fractional units in one whole unit.
	FracUnit int64 = 1000000000
	MaxFrac        = FracUnit - 1
	MinFrac        = -MaxFrac
)

var (
	bigFracUnit = big.NewInt(FracUnit)
	// maxUnits is the largest value, in fractional units, a coin can
	// represent.
	maxUnits = new(big.Int).Add(
		new(big.Int).Mul(big.NewInt(MaxInt), bigFracUnit),
		big.NewInt(MaxFrac))
)

// Coin is a fixed point amount of a single currency. The value is
// Whole + Fractional/FracUnit and both parts always carry the same sign.
type Coin struct {
	Ticker     string `json:"ticker"`
	Whole      int64  `json:"whole"`
	Fractional int64  `json:"fractional"`
}

func NewCoin(whole int64, fractional int64, ticker string) Coin {
	return Coin{
		Whole:      whole,
		Fractional: fractional,
		Ticker:     ticker,
	}
}

// NewCoinp is NewCoin for the message fields that hold a coin pointer.
func NewCoinp(whole, fractional int64, ticker string) *Coin {
	c := NewCoin(whole, fractional, ticker)
	return &c
}

func (c *Coin) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Coin) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

// units returns the coin value expressed in fractional units.
func (c Coin) units() *big.Int {
	u := new(big.Int).Mul(big.NewInt(c.Whole), bigFracUnit)
	return u.Add(u, big.NewInt(c.Fractional))
}

// fromUnits builds a normalized coin holding the given amount of fractional
// units. Amounts outside of the coin range give ErrOverflow.
func fromUnits(ticker string, u *big.Int) (Coin, error) {
	if new(big.Int).Abs(u).Cmp(maxUnits) > 0 {
		return Coin{}, errors.ErrOverflow
	}
	whole, frac := new(big.Int).QuoRem(u, bigFracUnit, new(big.Int))
	return Coin{Ticker: ticker, Whole: whole.Int64(), Fractional: frac.Int64()}, nil
}

// Divide splits the coin into the given number of equal pieces and returns
// one piece together with the remainder that could not be split.
//   4 EUR / 3 = 1.333333333 EUR, rest 0.000000001 EUR
func (c Coin) Divide(pieces int64) (Coin, Coin, error) {
	zero := Coin{Ticker: c.Ticker}
	if pieces <= 0 {
		return zero, zero, errors.Wrap(errors.ErrInput, "pieces must be greater than zero")
	}
	one, rest := new(big.Int).QuoRem(c.units(), big.NewInt(pieces), new(big.Int))
	piece, err := fromUnits(c.Ticker, one)
	if err != nil {
		return zero, zero, err
	}
	remainder, err := fromUnits(c.Ticker, rest)
	if err != nil {
		return zero, zero, err
	}
	return piece, remainder, nil
}

// Multiply fails with ErrOverflow when the result does not fit in a coin.
func (c Coin) Multiply(times int64) (Coin, error) {
	return fromUnits(c.Ticker, new(big.Int).Mul(c.units(), big.NewInt(times)))
}

// Add fails when the currencies differ or the sum overflows. A zero coin
// without a ticker is neutral.
func (c Coin) Add(o Coin) (Coin, error) {
	if c.Ticker == "" && c.IsZero() {
		return o, nil
	}
	if o.Ticker == "" && o.IsZero() {
		return c, nil
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", c.Ticker, o.Ticker)
	}
	return fromUnits(c.Ticker, new(big.Int).Add(c.units(), o.units()))
}

func (c Coin) Negative() Coin {
	return Coin{Ticker: c.Ticker, Whole: -c.Whole, Fractional: -c.Fractional}
}

func (c Coin) Subtract(amount Coin) (Coin, error) {
	return c.Add(amount.Negative())
}

// Compare returns 1 if c is larger than o, -1 if smaller and 0 if equal.
// Tickers are ignored.
func (c Coin) Compare(o Coin) int {
	return c.units().Cmp(o.units())
}

func (c Coin) Equals(o Coin) bool {
	return c == o
}

func (c Coin) IsZero() bool {
	return c.Whole == 0 && c.Fractional == 0
}

func (c Coin) IsPositive() bool {
	return c.units().Sign() > 0
}

func (c Coin) IsNonNegative() bool {
	return c.Whole >= 0 && c.Fractional >= 0
}

// IsGTE returns true if c is of the same currency and at least as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Compare(o) >= 0
}

func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Validate checks the ticker and the value range. Negative values are
// accepted.
func (c Coin) Validate() error {
	var err error
	if !IsCC(c.Ticker) {
		err = errors.Append(err, errors.Wrapf(errors.ErrCurrency, "invalid currency: %s", c.Ticker))
	}
	if c.Whole < MinInt || c.Whole > MaxInt {
		err = errors.Append(err, errors.ErrOverflow)
	}
	if c.Fractional < MinFrac || c.Fractional > MaxFrac {
		err = errors.Append(err, errors.Wrap(errors.ErrOverflow, "fractional"))
	}
	if c.Whole != 0 && c.Fractional != 0 && (c.Whole > 0) != (c.Fractional > 0) {
		err = errors.Append(err, errors.Wrap(errors.ErrState, "mismatched sign"))
	}
	return err
}

// UnmarshalJSON accepts both the "<whole>[.<fractional>] <ticker>" string
// and the structured object form.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	type plain Coin
	var p plain
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	*c = Coin(p)
	return nil
}

// String returns the human readable form accepted by ParseHumanFormat.
func (c Coin) String() string {
	if n, err := fromUnits(c.Ticker, c.units()); err == nil {
		c = n
	}

	var b strings.Builder
	if c.Whole == 0 && c.Fractional < 0 {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatInt(c.Whole, 10))
	if f := c.Fractional; f != 0 {
		if f < 0 {
			f = -f
		}
		digits := strconv.FormatInt(f, 10)
		digits = strings.Repeat("0", 9-len(digits)) + digits
		b.WriteByte('.')
		b.WriteString(strings.TrimRight(digits, "0"))
	}
	if c.Ticker != "" {
		b.WriteByte(' ')
		b.WriteString(c.Ticker)
	}
	return b.String()
}

var humanCoinFormatRx = regexp.MustCompile(`^(\-?)\s*(\d+)(\.(\d{1,9}))?\s*([A-Z]{3,5})$`)

// ParseHumanFormat parses "<whole>[.<fractional>] <ticker>". At most nine
// fractional digits are accepted.
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormatRx.FindStringSubmatch(strings.TrimSpace(h))
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format %q", h)
	}

	whole, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid whole value: %s", err)
	}
	var frac int64
	if digits := m[4]; digits != "" {
		frac, err = strconv.ParseInt(digits+strings.Repeat("0", 9-len(digits)), 10, 64)
		if err != nil {
			return Coin{}, errors.Wrapf(errors.ErrInput, "invalid fractional value: %s", err)
		}
	}
	if m[1] == "-" {
		whole, frac = -whole, -frac
	}

	c := Coin{Ticker: m[5], Whole: whole, Fractional: frac}
	if err := c.Validate(); err != nil {
		return Coin{}, err
	}
	return c, nil
}
