package interest

import (
	"fmt"

	"stakelend/core"
	"stakelend/pkg/number"

	"github.com/shopspring/decimal"
)

var (
	// DefPrimary default linear coefficient
	DefPrimary = number.Decimal("0.2")
	// DefQuadratic default quadratic coefficient
	DefQuadratic = number.Decimal("0.5")
	// StableCoinPrimary stable coin u^4 coefficient
	StableCoinPrimary = number.Decimal("0.55")
	// StableCoinQuadratic stable coin u^8 coefficient
	StableCoinQuadratic = number.Decimal("0.45")
)

// Model interest rate curves shared by all pools
type Model struct {
	DefPrimary          decimal.Decimal
	DefQuadratic        decimal.Decimal
	StableCoinPrimary   decimal.Decimal
	StableCoinQuadratic decimal.Decimal
	// stable rates never go below the floor
	Floor core.IYieldFloor
}

// New new model with the package default coefficients
func New(floor core.IYieldFloor) *Model {
	return &Model{
		DefPrimary:          DefPrimary,
		DefQuadratic:        DefQuadratic,
		StableCoinPrimary:   StableCoinPrimary,
		StableCoinQuadratic: StableCoinQuadratic,
		Floor:               floor,
	}
}

// WithFloor copy of m bounded by floor
func (m *Model) WithFloor(floor core.IYieldFloor) *Model {
	cp := *m
	cp.Floor = floor
	return &cp
}

// UtilizationRate borrow ratio = debt / supply, zero without supply
func UtilizationRate(c *number.Checked, debt, supply decimal.Decimal) decimal.Decimal {
	if supply.IsZero() {
		return decimal.Zero
	}

	return c.Div(debt, supply)
}

// VariableRate variable borrow rate at the utilization
func (m *Model) VariableRate(ratio decimal.Decimal, model core.InterestModel) (decimal.Decimal, error) {
	var c number.Checked
	rate := m.variableRate(&c, ratio, model)
	if err := c.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", core.ErrArithmeticOverflow, err)
	}

	return rate, nil
}

func (m *Model) variableRate(c *number.Checked, ratio decimal.Decimal, model core.InterestModel) decimal.Decimal {
	one := decimal.NewFromInt(1)

	switch model {
	case core.InterestModelStableCoin:
		// primary * u^4 + quadratic * u^8
		r2 := one
		if ratio.LessThanOrEqual(one) {
			r2 = c.Pow(ratio, 2)
		}

		r4 := c.Pow(r2, 2)
		r8 := c.Pow(r2, 4)
		return c.Add(c.Mul(m.StableCoinPrimary, r4), c.Mul(m.StableCoinQuadratic, r8))
	default:
		if ratio.GreaterThan(one) {
			return c.Add(m.DefPrimary, m.DefQuadratic)
		}

		// primary * u + quadratic * u^2
		return c.Add(c.Mul(ratio, m.DefPrimary), c.Mul(c.Pow(ratio, 2), m.DefQuadratic))
	}
}

// StableRate max(variable rate, yield floor)
func (m *Model) StableRate(ratio, stableRatio decimal.Decimal, model core.InterestModel, epoch uint64) (decimal.Decimal, error) {
	rate, err := m.VariableRate(ratio, model)
	if err != nil {
		return decimal.Zero, err
	}

	if m.Floor == nil {
		return rate, nil
	}

	floor, err := m.Floor.EstimateAPY(epoch)
	if err != nil {
		return decimal.Zero, err
	}

	return number.Max(rate, floor), nil
}

// StaticFloor a fixed yield floor
type StaticFloor decimal.Decimal

// EstimateAPY implements core.IYieldFloor
func (f StaticFloor) EstimateAPY(uint64) (decimal.Decimal, error) {
	return decimal.Decimal(f), nil
}
