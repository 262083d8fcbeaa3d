package staking

import (
	"context"
	"fmt"
	"sort"

	"stakelend/core"
	"stakelend/pkg/number"

	"github.com/shopspring/decimal"
)

// Pool share ledger redeemable against stake delegated across validators
type Pool struct {
	state      *core.StakingPool
	validators core.IValidatorService
}

// New staking engine over the pool record
func New(state *core.StakingPool, validators core.IValidatorService) *Pool {
	if state.Validators == nil {
		state.Validators = map[string]*core.StakeData{}
	}

	if state.Holdings == nil {
		state.Holdings = map[string]core.Bucket{}
	}

	return &Pool{state: state, validators: validators}
}

// State the pool record
func (p *Pool) State() *core.StakingPool {
	return p.state
}

func overflow(err error) error {
	return fmt.Errorf("%w: %v", core.ErrArithmeticOverflow, err)
}

// VaultAmount current redemption value of every validator holding
func (p *Pool) VaultAmount(ctx context.Context) (decimal.Decimal, error) {
	validators := make([]string, 0, len(p.state.Holdings))
	for v := range p.state.Holdings {
		validators = append(validators, v)
	}
	sort.Strings(validators)

	var c number.Checked
	sum := decimal.Zero
	for _, v := range validators {
		holding := p.state.Holdings[v]
		if holding.IsEmpty() {
			continue
		}

		value, err := p.validators.RedemptionValue(ctx, v, holding.Amount)
		if err != nil {
			return decimal.Zero, err
		}

		sum = c.Add(sum, value)
	}

	if err := c.Err(); err != nil {
		return decimal.Zero, overflow(err)
	}

	return sum, nil
}

// Values total staked value, share supply and value per share
func (p *Pool) Values(ctx context.Context) (total, supply, valuePerShare decimal.Decimal, err error) {
	total, err = p.VaultAmount(ctx)
	if err != nil {
		return
	}

	supply = p.state.ShareSupply
	if supply.IsZero() {
		return total, supply, decimal.NewFromInt(1), nil
	}

	var c number.Checked
	valuePerShare = c.Div(total, supply)
	if e := c.Err(); e != nil {
		err = overflow(e)
	}

	return
}

// RedemptionValue stake value of the pool shares
func (p *Pool) RedemptionValue(ctx context.Context, shares decimal.Decimal) (decimal.Decimal, error) {
	_, _, valuePerShare, err := p.Values(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	var c number.Checked
	value := c.Mul(shares, valuePerShare)
	if err := c.Err(); err != nil {
		return decimal.Zero, overflow(err)
	}

	return value, nil
}

// Contribute stakes the bucket with validator and mints pool shares at the
// current value per share
func (p *Pool) Contribute(ctx context.Context, e uint64, bucket core.Bucket, validator string) (core.Bucket, error) {
	if err := bucket.Expect(p.state.StakeToken); err != nil {
		return core.Bucket{}, err
	}

	if !bucket.Amount.IsPositive() {
		return core.Bucket{}, core.ErrInvalidAmount
	}

	_, _, valuePerShare, err := p.Values(ctx)
	if err != nil {
		return core.Bucket{}, err
	}

	// outstanding shares with nothing staked behind them
	if !valuePerShare.IsPositive() {
		return core.Bucket{}, core.ErrInvalidState
	}

	var c number.Checked
	shares := c.Floor(c.Div(bucket.Amount, valuePerShare))
	supply := c.Add(p.state.ShareSupply, shares)
	if err := c.Err(); err != nil {
		return core.Bucket{}, overflow(err)
	}

	if !shares.IsPositive() {
		return core.Bucket{}, core.ErrInvalidAmount
	}

	lsu, err := p.validators.Stake(ctx, validator, bucket)
	if err != nil {
		return core.Bucket{}, err
	}

	holding, ok := p.state.Holdings[validator]
	if !ok {
		holding = core.NewBucket(lsu.Resource, decimal.Zero)
	}

	if err := holding.Put(lsu); err != nil {
		return core.Bucket{}, err
	}

	staked, err := p.validators.RedemptionValue(ctx, validator, holding.Amount)
	if err != nil {
		return core.Bucket{}, err
	}

	p.state.Holdings[validator] = holding
	p.state.Validators[validator] = &core.StakeData{
		LastLsu:        holding.Amount,
		LastStaked:     staked,
		LastStakeEpoch: e,
	}
	p.state.ShareSupply = supply

	return core.NewBucket(p.state.ShareToken, shares), nil
}

// Redeem burns pool shares and unstakes their value from validator
func (p *Pool) Redeem(ctx context.Context, e uint64, shares core.Bucket, validator string) (*core.UnstakeReceipt, error) {
	if err := shares.Expect(p.state.ShareToken); err != nil {
		return nil, err
	}

	if !shares.Amount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	holding, ok := p.state.Holdings[validator]
	if !ok || holding.IsEmpty() {
		return nil, core.ErrInvalidState
	}

	if shares.Amount.GreaterThan(p.state.ShareSupply) {
		return nil, core.ErrInvalidState
	}

	_, _, valuePerShare, err := p.Values(ctx)
	if err != nil {
		return nil, err
	}

	lsuValue, err := p.validators.RedemptionValue(ctx, validator, holding.Amount)
	if err != nil {
		return nil, err
	}

	var c number.Checked
	redeemValue := c.Mul(shares.Amount, valuePerShare)
	if err := c.Err(); err != nil {
		return nil, overflow(err)
	}

	if lsuValue.LessThan(redeemValue) {
		return nil, core.ErrInsufficientLiquidity
	}

	lsuIndex := c.Div(lsuValue, holding.Amount)
	unstake := c.Floor(c.Div(redeemValue, lsuIndex))
	supply := c.Sub(p.state.ShareSupply, shares.Amount)
	if err := c.Err(); err != nil {
		return nil, overflow(err)
	}

	lsu, err := holding.Take(unstake)
	if err != nil {
		return nil, err
	}

	receipt, err := p.validators.Unstake(ctx, validator, lsu)
	if err != nil {
		return nil, err
	}

	p.state.Holdings[validator] = holding
	p.state.Validators[validator] = &core.StakeData{
		LastLsu:        holding.Amount,
		LastStaked:     lsuValue.Sub(receipt.ClaimAmount),
		LastStakeEpoch: e,
	}
	p.state.ShareSupply = supply

	return receipt, nil
}
