package staking

import (
	"context"
	"testing"

	"stakelend/core"
	"stakelend/pkg/number"

	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type stakingStore struct {
	core.IStakingStore
	pool *core.StakingPool
}

func (s *stakingStore) Find(ctx context.Context, stakeToken string) (*core.StakingPool, error) {
	if s.pool == nil || s.pool.StakeToken != stakeToken {
		return nil, gorm.ErrRecordNotFound
	}

	return s.pool, nil
}

type validators struct {
	core.IValidatorService
}

// RedemptionValue every validator share unit is worth two stake tokens
func (validators) RedemptionValue(ctx context.Context, validator string, shares decimal.Decimal) (decimal.Decimal, error) {
	return shares.Mul(decimal.NewFromInt(2)), nil
}

func TestRedemptionValue(t *testing.T) {
	ctx := context.Background()
	store := &stakingStore{}
	s := New(nil, store, nil, validators{}, nil, core.Staking{StakeToken: "xrd", ShareToken: "sxrd"})

	// empty pool values shares at one
	value, err := s.RedemptionValue(ctx, number.Decimal("10"))
	if assert.Nil(t, err) {
		assert.Equal(t, "10", value.String())
	}

	pool := core.NewStakingPool("xrd", "sxrd")
	pool.ShareSupply = number.Decimal("100")
	pool.Holdings["v1"] = core.NewBucket("lsu-v1", number.Decimal("60"))
	store.pool = pool

	value, err = s.RedemptionValue(ctx, number.Decimal("10"))
	if assert.Nil(t, err) {
		assert.Equal(t, "12", value.String())
	}
}
