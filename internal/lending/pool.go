package lending

import (
	"fmt"

	"stakelend/core"
	"stakelend/internal/epoch"
	"stakelend/internal/interest"
	"stakelend/pkg/number"

	"github.com/shopspring/decimal"
)

// RateCurve prices a pool from its utilization
type RateCurve interface {
	VariableRate(ratio decimal.Decimal, model core.InterestModel) (decimal.Decimal, error)
	StableRate(ratio, stableRatio decimal.Decimal, model core.InterestModel, epoch uint64) (decimal.Decimal, error)
}

// Pool index accrual engine over a pool record.
//
// Every mutating operation refreshes the indices, applies its balance change
// and reprices the pool, all against a copy of the record. The record is
// replaced only when the three steps succeed.
type Pool struct {
	state *core.Pool
	curve RateCurve
}

// New new pool engine
func New(state *core.Pool, curve RateCurve) *Pool {
	return &Pool{state: state, curve: curve}
}

// State the underlying record
func (p *Pool) State() *core.Pool {
	return p.state
}

func overflow(err error) error {
	return fmt.Errorf("%w: %v", core.ErrArithmeticOverflow, err)
}

func (p *Pool) mutate(e uint64, fn func(s *core.Pool, c *number.Checked) error) error {
	if e < p.state.LastUpdateEpoch {
		return core.ErrInvalidEpoch
	}

	next := *p.state
	var c number.Checked

	refreshIndices(&next, &c, e)
	if err := c.Err(); err != nil {
		return overflow(err)
	}

	if err := fn(&next, &c); err != nil {
		return err
	}

	if err := c.Err(); err != nil {
		return overflow(err)
	}

	rates, err := p.rates(&next, e)
	if err != nil {
		return err
	}

	next.DepositRate = rates.DepositRate
	next.VariableLoanRate = rates.VariableRate
	*p.state = next
	return nil
}

// refreshIndices advances both indices to e and moves the realized spread
// between borrow and supply interest into the insurance balance
func refreshIndices(s *core.Pool, c *number.Checked, e uint64) {
	delta := e - s.LastUpdateEpoch
	if delta == 0 {
		return
	}

	years := epoch.YearFraction(c, delta)
	depositIndex, loanIndex := projectIndices(s, c, years)

	variableInterest := c.Mul(s.VariableLoanShares, c.Sub(loanIndex, s.LoanIndex))
	stableInterest := c.Mul(c.Mul(s.StableLoanAmount, s.StableLoanRate), years)
	supplyInterest := c.Mul(s.DepositShareSupply, c.Sub(depositIndex, s.DepositIndex))
	s.InsuranceBalance = c.Add(s.InsuranceBalance, c.Sub(c.Add(variableInterest, stableInterest), supplyInterest))

	s.DepositIndex = depositIndex
	s.LoanIndex = loanIndex
	s.LastUpdateEpoch = e
}

func projectIndices(s *core.Pool, c *number.Checked, years decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	one := decimal.NewFromInt(1)
	depositIndex := c.Mul(s.DepositIndex, c.Add(one, c.Mul(s.DepositRate, years)))
	loanIndex := c.Mul(s.LoanIndex, c.Add(one, c.Mul(s.VariableLoanRate, years)))
	return depositIndex, loanIndex
}

func elapsed(s *core.Pool, e uint64) uint64 {
	if e <= s.LastUpdateEpoch {
		return 0
	}

	return e - s.LastUpdateEpoch
}

func currentIndex(s *core.Pool, c *number.Checked, e uint64) (decimal.Decimal, decimal.Decimal) {
	delta := elapsed(s, e)
	if delta == 0 {
		return s.DepositIndex, s.LoanIndex
	}

	return projectIndices(s, c, epoch.YearFraction(c, delta))
}

func stableLoanValue(s *core.Pool, c *number.Checked, e uint64) decimal.Decimal {
	delta := elapsed(s, e)
	if delta == 0 {
		return s.StableLoanAmount
	}

	years := epoch.YearFraction(c, delta)
	return c.Mul(s.StableLoanAmount, c.Add(decimal.NewFromInt(1), c.Mul(s.StableLoanRate, years)))
}

func (p *Pool) rates(s *core.Pool, e uint64) (core.Rates, error) {
	var c number.Checked

	depositIndex, loanIndex := currentIndex(s, &c, e)
	// supply could be zero
	supply := c.Mul(s.DepositShareSupply, depositIndex)
	variableBorrow := c.Mul(s.VariableLoanShares, loanIndex)
	stableBorrow := stableLoanValue(s, &c, e)
	totalDebt := c.Add(variableBorrow, stableBorrow)

	ratio := interest.UtilizationRate(&c, totalDebt, supply)
	stableRatio := decimal.Zero
	if !totalDebt.IsZero() {
		stableRatio = c.Div(stableBorrow, totalDebt)
	}

	if err := c.Err(); err != nil {
		return core.Rates{}, overflow(err)
	}

	variableRate, err := p.curve.VariableRate(ratio, s.InterestModel)
	if err != nil {
		return core.Rates{}, err
	}

	stableRate, err := p.curve.StableRate(ratio, stableRatio, s.InterestModel, e)
	if err != nil {
		return core.Rates{}, err
	}

	overallRate := decimal.Zero
	if !totalDebt.IsZero() {
		weighted := c.Add(c.Mul(variableBorrow, variableRate), c.Mul(stableBorrow, s.StableLoanRate))
		overallRate = c.Div(weighted, totalDebt)
	}

	depositRate := decimal.Zero
	if !supply.IsZero() {
		toDepositors := c.Mul(c.Mul(totalDebt, overallRate), c.Sub(decimal.NewFromInt(1), s.InsuranceRatio))
		depositRate = c.Div(toDepositors, supply)
	}

	if err := c.Err(); err != nil {
		return core.Rates{}, overflow(err)
	}

	return core.Rates{
		VariableRate: variableRate,
		StableRate:   stableRate,
		DepositRate:  depositRate,
	}, nil
}

func requireLiquidity(s *core.Pool, amount decimal.Decimal) error {
	if s.VaultBalance.IsZero() || s.VaultBalance.LessThan(amount) {
		return core.ErrInsufficientLiquidity
	}

	return nil
}

// Refresh index tick without any balance change
func (p *Pool) Refresh(e uint64) error {
	return p.mutate(e, func(*core.Pool, *number.Checked) error {
		return nil
	})
}

// AddLiquidity deposits the bucket and mints floor(amount / depositIndex) shares
func (p *Pool) AddLiquidity(e uint64, bucket core.Bucket) (core.Bucket, error) {
	if err := bucket.Expect(p.state.Underlying); err != nil {
		return core.Bucket{}, err
	}

	if !bucket.Amount.IsPositive() {
		return core.Bucket{}, core.ErrInvalidAmount
	}

	var minted decimal.Decimal
	err := p.mutate(e, func(s *core.Pool, c *number.Checked) error {
		minted = c.Floor(c.Div(bucket.Amount, s.DepositIndex))
		if c.Err() == nil && !minted.IsPositive() {
			return core.ErrInvalidAmount
		}

		s.DepositShareSupply = c.Add(s.DepositShareSupply, minted)
		s.VaultBalance = c.Add(s.VaultBalance, bucket.Amount)
		return nil
	})
	if err != nil {
		return core.Bucket{}, err
	}

	return core.NewBucket(p.state.DepositShareToken, minted), nil
}

// RemoveLiquidity burns deposit shares and pays out their value at the current index
func (p *Pool) RemoveLiquidity(e uint64, shares core.Bucket) (core.Bucket, error) {
	if err := shares.Expect(p.state.DepositShareToken); err != nil {
		return core.Bucket{}, err
	}

	if !shares.Amount.IsPositive() {
		return core.Bucket{}, core.ErrInvalidAmount
	}

	var value decimal.Decimal
	err := p.mutate(e, func(s *core.Pool, c *number.Checked) error {
		if shares.Amount.GreaterThan(s.DepositShareSupply) {
			return core.ErrInvalidState
		}

		value = c.Mul(shares.Amount, s.DepositIndex)
		if err := requireLiquidity(s, value); err != nil {
			return err
		}

		s.DepositShareSupply = c.Sub(s.DepositShareSupply, shares.Amount)
		s.VaultBalance = c.Sub(s.VaultBalance, value)
		return nil
	})
	if err != nil {
		return core.Bucket{}, err
	}

	return core.NewBucket(p.state.Underlying, value), nil
}

// BorrowVariable lends amount against amount / loanIndex variable loan shares
func (p *Pool) BorrowVariable(e uint64, amount decimal.Decimal) (core.Bucket, error) {
	if !amount.IsPositive() {
		return core.Bucket{}, core.ErrInvalidAmount
	}

	err := p.mutate(e, func(s *core.Pool, c *number.Checked) error {
		if err := requireLiquidity(s, amount); err != nil {
			return err
		}

		s.VariableLoanShares = c.Add(s.VariableLoanShares, c.Div(amount, s.LoanIndex))
		s.VaultBalance = c.Sub(s.VaultBalance, amount)
		return nil
	})
	if err != nil {
		return core.Bucket{}, err
	}

	return core.NewBucket(p.state.Underlying, amount), nil
}

// BorrowStable lends amount at rate and folds it into the principal weighted stable rate
func (p *Pool) BorrowStable(e uint64, amount, rate decimal.Decimal) (core.Bucket, error) {
	if !amount.IsPositive() || rate.IsNegative() {
		return core.Bucket{}, core.ErrInvalidAmount
	}

	err := p.mutate(e, func(s *core.Pool, c *number.Checked) error {
		if err := requireLiquidity(s, amount); err != nil {
			return err
		}

		newAmount := c.Add(s.StableLoanAmount, amount)
		weighted := c.Add(c.Mul(s.StableLoanAmount, s.StableLoanRate), c.Mul(amount, rate))
		s.StableLoanRate = c.Div(weighted, newAmount)
		s.StableLoanAmount = newAmount
		s.StableLoanLastUpdate = e
		s.VaultBalance = c.Sub(s.VaultBalance, amount)
		return nil
	})
	if err != nil {
		return core.Bucket{}, err
	}

	return core.NewBucket(p.state.Underlying, amount), nil
}

// RepayVariable burns repay amount / loanIndex variable loan shares and returns them
func (p *Pool) RepayVariable(e uint64, bucket core.Bucket) (decimal.Decimal, error) {
	if err := bucket.Expect(p.state.Underlying); err != nil {
		return decimal.Zero, err
	}

	if !bucket.Amount.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	var shares decimal.Decimal
	err := p.mutate(e, func(s *core.Pool, c *number.Checked) error {
		shares = c.Div(bucket.Amount, s.LoanIndex)
		if shares.GreaterThan(s.VariableLoanShares) {
			return core.ErrOverRepayment
		}

		s.VariableLoanShares = c.Sub(s.VariableLoanShares, shares)
		s.VaultBalance = c.Add(s.VaultBalance, bucket.Amount)
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	return shares, nil
}

// RepayStable repays a single stable loan tracked by the caller.
//
// Interest not covered by the bucket is capitalized onto the pooled stable
// principal and reported as a negative principal repaid. The unused part of
// the bucket is handed back as change.
func (p *Pool) RepayStable(e uint64, bucket core.Bucket, loan core.StableLoan) (*core.StableRepayment, core.Bucket, error) {
	if err := bucket.Expect(p.state.Underlying); err != nil {
		return nil, core.Bucket{}, err
	}

	if bucket.Amount.IsNegative() || loan.Principal.IsNegative() || loan.Rate.IsNegative() {
		return nil, core.Bucket{}, core.ErrInvalidAmount
	}

	if loan.LastEpoch > e {
		return nil, core.Bucket{}, core.ErrInvalidEpoch
	}

	var (
		applied         = bucket.Amount
		principalRepaid decimal.Decimal
		loanInterest    decimal.Decimal
	)

	err := p.mutate(e, func(s *core.Pool, c *number.Checked) error {
		years := epoch.YearFraction(c, e-loan.LastEpoch)
		loanInterest = c.Ceil(c.Mul(c.Mul(loan.Principal, loan.Rate), years))
		previousDebt := c.Mul(s.StableLoanAmount, s.StableLoanRate)

		if applied.LessThan(loanInterest) {
			outstanding := c.Sub(loanInterest, applied)
			principalRepaid = outstanding.Neg()
			s.StableLoanAmount = c.Add(s.StableLoanAmount, outstanding)
			s.StableLoanRate = c.Div(c.Add(previousDebt, c.Mul(outstanding, loan.Rate)), s.StableLoanAmount)
		} else {
			if full := c.Add(loan.Principal, loanInterest); applied.GreaterThanOrEqual(full) {
				applied = full
				principalRepaid = loan.Principal
			} else {
				principalRepaid = c.Sub(applied, loanInterest)
			}

			// loans are repaid one by one against a pooled book, so the last
			// repayment may exceed what is left of it
			if principalRepaid.GreaterThanOrEqual(s.StableLoanAmount) {
				s.StableLoanAmount = decimal.Zero
				s.StableLoanRate = decimal.Zero
			} else {
				s.StableLoanAmount = c.Sub(s.StableLoanAmount, principalRepaid)
				s.StableLoanRate = c.Div(c.Sub(previousDebt, c.Mul(principalRepaid, loan.Rate)), s.StableLoanAmount)
			}
		}

		s.StableLoanLastUpdate = e
		s.VaultBalance = c.Add(s.VaultBalance, applied)
		return nil
	})
	if err != nil {
		return nil, core.Bucket{}, err
	}

	change := core.NewBucket(bucket.Resource, bucket.Amount.Sub(applied))
	return &core.StableRepayment{
		Applied:         applied,
		PrincipalRepaid: principalRepaid,
		Interest:        loanInterest,
		Epoch:           e,
	}, change, nil
}

// CurrentIndex deposit and loan index projected to epoch e
func (p *Pool) CurrentIndex(e uint64) (depositIndex, loanIndex decimal.Decimal, err error) {
	var c number.Checked
	depositIndex, loanIndex = currentIndex(p.state, &c, e)
	if err = c.Err(); err != nil {
		return decimal.Zero, decimal.Zero, overflow(err)
	}

	return depositIndex, loanIndex, nil
}

// InterestRate reprices the pool at epoch e without touching it
func (p *Pool) InterestRate(e uint64) (core.Rates, error) {
	return p.rates(p.state, e)
}

// RedemptionValue underlying value of deposit shares at epoch e
func (p *Pool) RedemptionValue(e uint64, shares decimal.Decimal) (decimal.Decimal, error) {
	var c number.Checked
	depositIndex, _ := currentIndex(p.state, &c, e)
	value := c.Mul(shares, depositIndex)
	if err := c.Err(); err != nil {
		return decimal.Zero, overflow(err)
	}

	return value, nil
}

// Available liquid balance of the vault
func (p *Pool) Available() decimal.Decimal {
	return p.state.VaultBalance
}

// LastUpdate epoch of the last index refresh
func (p *Pool) LastUpdate() uint64 {
	return p.state.LastUpdateEpoch
}

// DepositShareQuantity deposit shares in circulation
func (p *Pool) DepositShareQuantity() decimal.Decimal {
	return p.state.DepositShareSupply
}

// VariableShareQuantity outstanding variable loan shares
func (p *Pool) VariableShareQuantity() decimal.Decimal {
	return p.state.VariableLoanShares
}

// UnderlyingValue value owed to depositors at epoch e
func (p *Pool) UnderlyingValue(e uint64) (decimal.Decimal, error) {
	return p.RedemptionValue(e, p.state.DepositShareSupply)
}

// StableLoanValue pooled stable principal plus interest accrued since the last refresh
func (p *Pool) StableLoanValue(e uint64) (decimal.Decimal, error) {
	var c number.Checked
	value := stableLoanValue(p.state, &c, e)
	if err := c.Err(); err != nil {
		return decimal.Zero, overflow(err)
	}

	return value, nil
}

// LoanValue total variable and stable debt at epoch e
func (p *Pool) LoanValue(e uint64) (decimal.Decimal, error) {
	var c number.Checked
	_, loanIndex := currentIndex(p.state, &c, e)
	value := c.Add(c.Mul(p.state.VariableLoanShares, loanIndex), stableLoanValue(p.state, &c, e))
	if err := c.Err(); err != nil {
		return decimal.Zero, overflow(err)
	}

	return value, nil
}

// Quote every read projection of the pool at epoch e
func (p *Pool) Quote(e uint64) (*core.PoolQuote, error) {
	depositIndex, loanIndex, err := p.CurrentIndex(e)
	if err != nil {
		return nil, err
	}

	rates, err := p.InterestRate(e)
	if err != nil {
		return nil, err
	}

	stable, err := p.StableLoanValue(e)
	if err != nil {
		return nil, err
	}

	underlying, err := p.UnderlyingValue(e)
	if err != nil {
		return nil, err
	}

	return &core.PoolQuote{
		Pool:            p.state,
		Epoch:           e,
		DepositIndex:    depositIndex,
		LoanIndex:       loanIndex,
		Rates:           rates,
		Available:       p.Available(),
		StableLoanValue: stable,
		UnderlyingValue: underlying,
	}, nil
}
