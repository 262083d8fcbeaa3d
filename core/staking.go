package core

import (
	"context"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// StakeData latest stake bookkeeping of the staking pool at a validator
type StakeData struct {
	LastLsu        decimal.Decimal `json:"last_lsu"`
	LastStaked     decimal.Decimal `json:"last_staked"`
	LastStakeEpoch uint64          `json:"last_stake_epoch"`
}

// StakingPool share ledger over stake delegated to several validators
type StakingPool struct {
	StakeToken  string                `json:"stake_token"`
	ShareToken  string                `json:"share_token"`
	ShareSupply decimal.Decimal       `json:"share_supply"`
	Validators  map[string]*StakeData `json:"validators"`
	// validator share units held per validator
	Holdings map[string]Bucket `json:"holdings"`
	Version  int64             `json:"version"`
}

// NewStakingPool empty staking pool
func NewStakingPool(stakeToken, shareToken string) *StakingPool {
	return &StakingPool{
		StakeToken: stakeToken,
		ShareToken: shareToken,
		Validators: map[string]*StakeData{},
		Holdings:   map[string]Bucket{},
	}
}

// IStakingStore staking pool store interface
type IStakingStore interface {
	Find(ctx context.Context, stakeToken string) (*StakingPool, error)
	Create(ctx context.Context, tx *db.DB, pool *StakingPool) error
	Update(ctx context.Context, tx *db.DB, pool *StakingPool) error
}

// IStakingService staking pool service interface
type IStakingService interface {
	Contribute(ctx context.Context, bucket Bucket, validator string) (Bucket, error)
	Redeem(ctx context.Context, shares Bucket, validator string) (*UnstakeReceipt, error)
	RedemptionValue(ctx context.Context, shares decimal.Decimal) (decimal.Decimal, error)
}
