package metrics

import (
	"errors"
	"sync"

	"stakelend/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// LendingMetrics pool and keeper collectors
type LendingMetrics struct {
	operations   *prometheus.CounterVec
	depositIndex *prometheus.GaugeVec
	loanIndex    *prometheus.GaugeVec
	rates        *prometheus.GaugeVec
	vault        *prometheus.GaugeVec
	insurance    *prometheus.GaugeVec
	keeperAPY    prometheus.Gauge
}

var (
	lendingOnce     sync.Once
	lendingRegistry *LendingMetrics
)

// Lending process wide collectors, registered on first use
func Lending() *LendingMetrics {
	lendingOnce.Do(func() {
		lendingRegistry = &LendingMetrics{
			operations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "stakelend_operations_total",
				Help: "Count of pool operations by action and result.",
			}, []string{"action", "result"}),
			depositIndex: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "stakelend_pool_deposit_index",
				Help: "Deposit index of the pool after its last operation.",
			}, []string{"asset"}),
			loanIndex: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "stakelend_pool_loan_index",
				Help: "Variable loan index of the pool after its last operation.",
			}, []string{"asset"}),
			rates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "stakelend_pool_rate",
				Help: "Annual pool rates by kind.",
			}, []string{"asset", "kind"}),
			vault: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "stakelend_pool_vault_balance",
				Help: "Liquid balance held by the pool.",
			}, []string{"asset"}),
			insurance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Name: "stakelend_pool_insurance_balance",
				Help: "Insurance buffer accrued by the pool.",
			}, []string{"asset"}),
			keeperAPY: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "stakelend_keeper_apy",
				Help: "Mean one week staking APY of the tracked validators.",
			}),
		}
		prometheus.MustRegister(
			lendingRegistry.operations,
			lendingRegistry.depositIndex,
			lendingRegistry.loanIndex,
			lendingRegistry.rates,
			lendingRegistry.vault,
			lendingRegistry.insurance,
			lendingRegistry.keeperAPY,
		)
	})
	return lendingRegistry
}

func result(err error) string {
	if err == nil {
		return "ok"
	}

	var code core.ErrorCode
	if errors.As(err, &code) {
		return code.String()
	}

	return "error"
}

// ObserveOperation counts one operation outcome
func (m *LendingMetrics) ObserveOperation(action core.ActionType, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(action.String(), result(err)).Inc()
}

// ObservePool publishes the pool state
func (m *LendingMetrics) ObservePool(pool *core.Pool) {
	if m == nil || pool == nil {
		return
	}

	asset := pool.Underlying
	m.depositIndex.WithLabelValues(asset).Set(toFloat(pool.DepositIndex))
	m.loanIndex.WithLabelValues(asset).Set(toFloat(pool.LoanIndex))
	m.rates.WithLabelValues(asset, "deposit").Set(toFloat(pool.DepositRate))
	m.rates.WithLabelValues(asset, "variable").Set(toFloat(pool.VariableLoanRate))
	m.rates.WithLabelValues(asset, "stable").Set(toFloat(pool.StableLoanRate))
	m.vault.WithLabelValues(asset).Set(toFloat(pool.VaultBalance))
	m.insurance.WithLabelValues(asset).Set(toFloat(pool.InsuranceBalance))
}

// SetKeeperAPY publishes the current yield floor
func (m *LendingMetrics) SetKeeperAPY(apy decimal.Decimal) {
	if m == nil {
		return
	}
	m.keeperAPY.Set(toFloat(apy))
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
