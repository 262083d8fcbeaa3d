package number

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// MaxValue largest magnitude a checked operation may produce
	MaxValue = Decimal("3138550867693340381917894711603833208051.177722232017256447")

	// ErrOverflow result magnitude exceeds MaxValue
	ErrOverflow = errors.New("decimal overflow")
	// ErrDivideByZero division by zero
	ErrDivideByZero = errors.New("division by zero")
)

// Checked performs fixed-point arithmetic with 18 fractional digits and
// records the first overflow or division by zero it runs into.
//
// Once an error is recorded every later operation returns zero, so a
// sequence of calls can be checked once through Err.
type Checked struct {
	err error
}

// Err returns the first error met by c
func (c *Checked) Err() error {
	return c.err
}

func (c *Checked) fail(err error, op string, a, b decimal.Decimal) decimal.Decimal {
	if c.err == nil {
		c.err = fmt.Errorf("%s(%s, %s): %w", op, a, b, err)
	}

	return decimal.Zero
}

func (c *Checked) check(op string, a, b, v decimal.Decimal) decimal.Decimal {
	if c.err != nil {
		return decimal.Zero
	}

	if v.Abs().GreaterThan(MaxValue) {
		return c.fail(ErrOverflow, op, a, b)
	}

	return v
}

func (c *Checked) Add(a, b decimal.Decimal) decimal.Decimal {
	if c.err != nil {
		return decimal.Zero
	}

	return c.check("add", a, b, a.Add(b))
}

func (c *Checked) Sub(a, b decimal.Decimal) decimal.Decimal {
	if c.err != nil {
		return decimal.Zero
	}

	return c.check("sub", a, b, a.Sub(b))
}

// Mul multiplies and truncates toward zero
func (c *Checked) Mul(a, b decimal.Decimal) decimal.Decimal {
	if c.err != nil {
		return decimal.Zero
	}

	return c.check("mul", a, b, a.Mul(b).Truncate(Precision))
}

// Div divides and truncates toward zero
func (c *Checked) Div(a, b decimal.Decimal) decimal.Decimal {
	if c.err != nil {
		return decimal.Zero
	}

	if b.IsZero() {
		return c.fail(ErrDivideByZero, "div", a, b)
	}

	q, _ := a.QuoRem(b, Precision)
	return c.check("div", a, b, q)
}

// Pow raises a to a non-negative integer power
func (c *Checked) Pow(a decimal.Decimal, n int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for i := 0; i < n; i++ {
		result = c.Mul(result, a)
	}

	return result
}

// Floor rounds toward negative infinity at Precision
func (c *Checked) Floor(a decimal.Decimal) decimal.Decimal {
	if c.err != nil {
		return decimal.Zero
	}

	return c.check("floor", a, decimal.Zero, Floor(a, Precision))
}

// Ceil rounds toward positive infinity at Precision
func (c *Checked) Ceil(a decimal.Decimal) decimal.Decimal {
	if c.err != nil {
		return decimal.Zero
	}

	return c.check("ceil", a, decimal.Zero, Ceil(a, Precision))
}

// Max larger of a and b
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}

	return b
}
