package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// UnstakeReceipt claim produced by unstaking
type UnstakeReceipt struct {
	Validator string `json:"validator"`
	// epoch at or after which the claim may be redeemed
	ClaimEpoch  uint64          `json:"claim_epoch"`
	ClaimAmount decimal.Decimal `json:"claim_amount"`
}

// IValidatorService validator accessor
type IValidatorService interface {
	TotalShareSupply(ctx context.Context, validator string) (decimal.Decimal, error)
	TotalStakedValue(ctx context.Context, validator string) (decimal.Decimal, error)
	// Stake delegates the bucket and returns the validator's share units
	Stake(ctx context.Context, validator string, bucket Bucket) (Bucket, error)
	Unstake(ctx context.Context, validator string, shares Bucket) (*UnstakeReceipt, error)
	RedemptionValue(ctx context.Context, validator string, shares decimal.Decimal) (decimal.Decimal, error)
}
