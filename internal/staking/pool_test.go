package staking

import (
	"context"
	"errors"
	"testing"

	"stakelend/core"
	"stakelend/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatorState struct {
	supply decimal.Decimal
	staked decimal.Decimal
}

// validators in-memory accessor, share units named after the validator
type validators map[string]*validatorState

func (v validators) get(validator string) (*validatorState, error) {
	s, ok := v[validator]
	if !ok {
		return nil, core.ErrValidatorNotFound
	}

	return s, nil
}

func (v validators) TotalShareSupply(_ context.Context, validator string) (decimal.Decimal, error) {
	s, err := v.get(validator)
	if err != nil {
		return decimal.Zero, err
	}

	return s.supply, nil
}

func (v validators) TotalStakedValue(_ context.Context, validator string) (decimal.Decimal, error) {
	s, err := v.get(validator)
	if err != nil {
		return decimal.Zero, err
	}

	return s.staked, nil
}

func (v validators) Stake(_ context.Context, validator string, bucket core.Bucket) (core.Bucket, error) {
	s, err := v.get(validator)
	if err != nil {
		return core.Bucket{}, err
	}

	units := bucket.Amount
	if !s.supply.IsZero() {
		units = bucket.Amount.Mul(s.supply).Div(s.staked)
	}

	s.supply = s.supply.Add(units)
	s.staked = s.staked.Add(bucket.Amount)
	return core.NewBucket("lsu-"+validator, units), nil
}

func (v validators) Unstake(ctx context.Context, validator string, shares core.Bucket) (*core.UnstakeReceipt, error) {
	value, err := v.RedemptionValue(ctx, validator, shares.Amount)
	if err != nil {
		return nil, err
	}

	s := v[validator]
	s.supply = s.supply.Sub(shares.Amount)
	s.staked = s.staked.Sub(value)
	return &core.UnstakeReceipt{Validator: validator, ClaimEpoch: 10, ClaimAmount: value}, nil
}

func (v validators) RedemptionValue(_ context.Context, validator string, shares decimal.Decimal) (decimal.Decimal, error) {
	s, err := v.get(validator)
	if err != nil {
		return decimal.Zero, err
	}

	if s.supply.IsZero() {
		return decimal.Zero, nil
	}

	return shares.Mul(s.staked).Div(s.supply), nil
}

func newPool() (*Pool, validators) {
	vs := validators{
		"v1": {supply: decimal.Zero, staked: decimal.Zero},
		"v2": {supply: decimal.Zero, staked: decimal.Zero},
	}

	return New(core.NewStakingPool("xrd", "dse-xrd"), vs), vs
}

func TestContribute(t *testing.T) {
	ctx := context.Background()
	p, vs := newPool()

	shares, err := p.Contribute(ctx, 1, core.NewBucket("xrd", number.Decimal("100")), "v1")
	require.Nil(t, err)
	assert.Equal(t, "dse-xrd", shares.Resource)
	assert.True(t, shares.Amount.Equal(number.Decimal("100")))

	// staking rewards lift the value per share to 1.1
	vs["v1"].staked = number.Decimal("110")

	shares, err = p.Contribute(ctx, 2, core.NewBucket("xrd", number.Decimal("110")), "v1")
	require.Nil(t, err)
	assert.True(t, shares.Amount.Equal(number.Decimal("100")))

	total, supply, vps, err := p.Values(ctx)
	require.Nil(t, err)
	assert.True(t, total.Equal(number.Decimal("220")))
	assert.True(t, supply.Equal(number.Decimal("200")))
	assert.True(t, vps.Equal(number.Decimal("1.1")))

	data := p.State().Validators["v1"]
	assert.True(t, data.LastLsu.Equal(number.Decimal("200")))
	assert.True(t, data.LastStaked.Equal(number.Decimal("220")))
	assert.Equal(t, uint64(2), data.LastStakeEpoch)

	_, err = p.Contribute(ctx, 2, core.NewBucket("btc", number.Decimal("1")), "v1")
	assert.Equal(t, core.ErrWrongAsset, err)
}

func TestRedeem(t *testing.T) {
	ctx := context.Background()
	p, vs := newPool()

	_, err := p.Contribute(ctx, 1, core.NewBucket("xrd", number.Decimal("100")), "v1")
	require.Nil(t, err)
	vs["v1"].staked = number.Decimal("110")
	_, err = p.Contribute(ctx, 2, core.NewBucket("xrd", number.Decimal("110")), "v1")
	require.Nil(t, err)

	_, err = p.Redeem(ctx, 3, core.NewBucket("dse-xrd", number.Decimal("50")), "v2")
	assert.Equal(t, core.ErrInvalidState, err)

	receipt, err := p.Redeem(ctx, 3, core.NewBucket("dse-xrd", number.Decimal("50")), "v1")
	require.Nil(t, err)
	assert.Equal(t, "v1", receipt.Validator)
	assert.True(t, receipt.ClaimAmount.Equal(number.Decimal("55")))

	assert.True(t, p.State().ShareSupply.Equal(number.Decimal("150")))
	assert.True(t, p.State().Holdings["v1"].Amount.Equal(number.Decimal("150")))

	data := p.State().Validators["v1"]
	assert.True(t, data.LastStaked.Equal(number.Decimal("165")))
	assert.Equal(t, uint64(3), data.LastStakeEpoch)

	value, err := p.RedemptionValue(ctx, number.Decimal("150"))
	require.Nil(t, err)
	assert.True(t, value.Equal(number.Decimal("165")))
}

func TestRedeemInsufficientHolding(t *testing.T) {
	ctx := context.Background()
	p, _ := newPool()

	_, err := p.Contribute(ctx, 1, core.NewBucket("xrd", number.Decimal("100")), "v1")
	require.Nil(t, err)
	_, err = p.Contribute(ctx, 1, core.NewBucket("xrd", number.Decimal("10")), "v2")
	require.Nil(t, err)

	before := p.State().ShareSupply
	_, err = p.Redeem(ctx, 2, core.NewBucket("dse-xrd", number.Decimal("50")), "v2")
	assert.Equal(t, core.ErrInsufficientLiquidity, err)
	assert.True(t, p.State().ShareSupply.Equal(before))

	_, err = p.Redeem(ctx, 2, core.NewBucket("dse-xrd", number.Decimal("500")), "v1")
	assert.Equal(t, core.ErrInvalidState, err)
}

func TestContributeValidatorError(t *testing.T) {
	ctx := context.Background()
	p, _ := newPool()

	_, err := p.Contribute(ctx, 1, core.NewBucket("xrd", number.Decimal("100")), "unknown")
	assert.True(t, errors.Is(err, core.ErrValidatorNotFound))
	assert.True(t, p.State().ShareSupply.IsZero())
	assert.Empty(t, p.State().Holdings)
}

func TestContributeWithoutBacking(t *testing.T) {
	ctx := context.Background()
	p, vs := newPool()

	_, err := p.Contribute(ctx, 1, core.NewBucket("xrd", number.Decimal("100")), "v1")
	require.Nil(t, err)

	// stake slashed away, shares still outstanding
	vs["v1"].staked = decimal.Zero

	_, _, vps, err := p.Values(ctx)
	require.Nil(t, err)
	assert.True(t, vps.IsZero())

	_, err = p.Contribute(ctx, 2, core.NewBucket("xrd", number.Decimal("10")), "v1")
	assert.Equal(t, core.ErrInvalidState, err)
	assert.True(t, p.State().ShareSupply.Equal(number.Decimal("100")))
}
