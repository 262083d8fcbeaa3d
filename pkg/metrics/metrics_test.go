package metrics

import (
	"fmt"
	"testing"

	"stakelend/core"
	"stakelend/pkg/number"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	assert.Equal(t, "ok", result(nil))
	assert.Equal(t, "100105", result(core.ErrInsufficientLiquidity))
	assert.Equal(t, "100106", result(fmt.Errorf("%w: mul", core.ErrArithmeticOverflow)))
	assert.Equal(t, "error", result(fmt.Errorf("boom")))
}

func TestObserve(t *testing.T) {
	m := Lending()

	m.ObserveOperation(core.ActionTypeAddLiquidity, nil)
	m.ObserveOperation(core.ActionTypeAddLiquidity, nil)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.operations.WithLabelValues("add_liquidity", "ok")))

	pool := core.NewPool("xrd", "dx-xrd", core.InterestModelDefault, number.Decimal("0.1"))
	pool.VaultBalance = number.Decimal("12.5")
	m.ObservePool(pool)
	assert.Equal(t, 12.5, testutil.ToFloat64(m.vault.WithLabelValues("xrd")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.depositIndex.WithLabelValues("xrd")))

	var nilMetrics *LendingMetrics
	nilMetrics.ObservePool(pool)
	nilMetrics.SetKeeperAPY(number.Decimal("0.1"))
}
