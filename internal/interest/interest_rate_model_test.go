package interest

import (
	"errors"
	"testing"

	"stakelend/core"
	"stakelend/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDecimal(t *testing.T, expect string, actual decimal.Decimal) {
	t.Helper()
	assert.Truef(t, number.Decimal(expect).Equal(actual), "expect %s, got %s", expect, actual)
}

func TestDefaultCurve(t *testing.T) {
	m := New(nil)

	cases := map[string]string{
		"0":   "0",
		"0.5": "0.225",
		"1":   "0.7",
		"2":   "0.7",
	}

	for u, rate := range cases {
		t.Run(u, func(t *testing.T) {
			r, err := m.VariableRate(number.Decimal(u), core.InterestModelDefault)
			require.Nil(t, err)
			assertDecimal(t, rate, r)
		})
	}
}

func TestStableCoinCurve(t *testing.T) {
	m := New(nil)

	cases := map[string]string{
		"0":   "0",
		"0.5": "0.0361328125",
		"1":   "1",
		"3":   "1",
	}

	for u, rate := range cases {
		t.Run(u, func(t *testing.T) {
			r, err := m.VariableRate(number.Decimal(u), core.InterestModelStableCoin)
			require.Nil(t, err)
			assertDecimal(t, rate, r)
		})
	}
}

func TestStableRateFloor(t *testing.T) {
	m := New(StaticFloor(number.Decimal("0.3")))

	r, err := m.StableRate(number.Decimal("0.5"), decimal.Zero, core.InterestModelDefault, 1)
	require.Nil(t, err)
	assertDecimal(t, "0.3", r)

	r, err = m.StableRate(number.Decimal("1"), decimal.Zero, core.InterestModelDefault, 1)
	require.Nil(t, err)
	assertDecimal(t, "0.7", r)

	r, err = m.WithFloor(nil).StableRate(number.Decimal("0.5"), decimal.Zero, core.InterestModelDefault, 1)
	require.Nil(t, err)
	assertDecimal(t, "0.225", r)
}

type failingFloor struct{}

func (failingFloor) EstimateAPY(uint64) (decimal.Decimal, error) {
	return decimal.Zero, core.ErrArithmeticOverflow
}

func TestStableRateFloorError(t *testing.T) {
	m := New(failingFloor{})
	_, err := m.StableRate(number.Decimal("0.5"), decimal.Zero, core.InterestModelDefault, 1)
	assert.True(t, errors.Is(err, core.ErrArithmeticOverflow))
}

func TestUtilizationRate(t *testing.T) {
	var c number.Checked
	assertDecimal(t, "0", UtilizationRate(&c, number.Decimal("10"), decimal.Zero))
	assertDecimal(t, "0.25", UtilizationRate(&c, number.Decimal("10"), number.Decimal("40")))
	assert.Nil(t, c.Err())
}
