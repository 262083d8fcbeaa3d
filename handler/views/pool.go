package views

import (
	"stakelend/core"

	"github.com/shopspring/decimal"
)

// Pool pool view at the quoted epoch
type Pool struct {
	Underlying         string          `json:"underlying"`
	DepositShareToken  string          `json:"deposit_share_token"`
	InterestModel      string          `json:"interest_model"`
	Epoch              uint64          `json:"epoch"`
	DepositIndex       decimal.Decimal `json:"deposit_index"`
	LoanIndex          decimal.Decimal `json:"loan_index"`
	DepositRate        decimal.Decimal `json:"deposit_rate"`
	VariableRate       decimal.Decimal `json:"variable_rate"`
	StableRate         decimal.Decimal `json:"stable_rate"`
	Available          decimal.Decimal `json:"available"`
	UnderlyingValue    decimal.Decimal `json:"underlying_value"`
	StableLoanValue    decimal.Decimal `json:"stable_loan_value"`
	StableLoanRate     decimal.Decimal `json:"stable_loan_rate"`
	DepositShareSupply decimal.Decimal `json:"deposit_share_supply"`
	VariableLoanShares decimal.Decimal `json:"variable_loan_shares"`
	InsuranceBalance   decimal.Decimal `json:"insurance_balance"`
	InsuranceRatio     decimal.Decimal `json:"insurance_ratio"`
}

// PoolFromQuote pool view
func PoolFromQuote(quote *core.PoolQuote) Pool {
	pool := quote.Pool
	return Pool{
		Underlying:         pool.Underlying,
		DepositShareToken:  pool.DepositShareToken,
		InterestModel:      pool.InterestModel.String(),
		Epoch:              quote.Epoch,
		DepositIndex:       quote.DepositIndex,
		LoanIndex:          quote.LoanIndex,
		DepositRate:        quote.Rates.DepositRate,
		VariableRate:       quote.Rates.VariableRate,
		StableRate:         quote.Rates.StableRate,
		Available:          quote.Available,
		UnderlyingValue:    quote.UnderlyingValue,
		StableLoanValue:    quote.StableLoanValue,
		StableLoanRate:     pool.StableLoanRate,
		DepositShareSupply: pool.DepositShareSupply,
		VariableLoanShares: pool.VariableLoanShares,
		InsuranceBalance:   pool.InsuranceBalance,
		InsuranceRatio:     pool.InsuranceRatio,
	}
}
