package number

import (
	"errors"
	"testing"

	"github.com/bmizerany/assert"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"0.108":       "0.11",
		"-0.108":      "-0.1",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Ceil(Decimal(k), 2)
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}

func TestFloor(t *testing.T) {
	data := map[string]string{
		"0.10304": "0.1",
		"0.199":   "0.19",
		"-0.101":  "-0.11",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			f := Floor(Decimal(k), 2)
			assert.Equal(t, v, f.String(), "should be floor")
		})
	}
}

func TestCheckedDiv(t *testing.T) {
	var c Checked
	q := c.Div(Decimal("1"), Decimal("3"))
	assert.Equal(t, nil, c.Err())
	assert.Equal(t, "0.333333333333333333", q.String())

	q = c.Div(Decimal("-2"), Decimal("3"))
	assert.Equal(t, "-0.666666666666666666", q.String(), "truncate toward zero")

	c.Div(Decimal("1"), Decimal("0"))
	assert.T(t, errors.Is(c.Err(), ErrDivideByZero))
}

func TestCheckedMul(t *testing.T) {
	var c Checked
	p := c.Mul(Decimal("0.000000000000000001"), Decimal("0.5"))
	assert.Equal(t, nil, c.Err())
	assert.Equal(t, "0", p.String())

	assert.Equal(t, "0.0625", c.Pow(Decimal("0.5"), 4).String())
	assert.Equal(t, "1", c.Pow(Decimal("0.5"), 0).String())
}

func TestCheckedOverflow(t *testing.T) {
	var c Checked
	c.Mul(MaxValue, Decimal("2"))
	assert.T(t, errors.Is(c.Err(), ErrOverflow))

	// the first error sticks
	v := c.Add(Decimal("1"), Decimal("1"))
	assert.Equal(t, "0", v.String())
	assert.T(t, errors.Is(c.Err(), ErrOverflow))

	var s Checked
	s.Sub(MaxValue.Neg(), Decimal("1"))
	assert.T(t, errors.Is(s.Err(), ErrOverflow))
}

func TestMax(t *testing.T) {
	assert.Equal(t, "2", Max(Decimal("1"), Decimal("2")).String())
	assert.Equal(t, "2", Max(Decimal("2"), Decimal("-1")).String())
}
