package core

import (
	"github.com/shopspring/decimal"
)

// Bucket an amount of a single resource moving between custody and the pools
type Bucket struct {
	Resource string          `json:"resource"`
	Amount   decimal.Decimal `json:"amount"`
}

// NewBucket new bucket
func NewBucket(resource string, amount decimal.Decimal) Bucket {
	return Bucket{Resource: resource, Amount: amount}
}

// IsEmpty no amount left
func (b Bucket) IsEmpty() bool {
	return !b.Amount.IsPositive()
}

// Expect fails with ErrWrongAsset unless b holds resource
func (b Bucket) Expect(resource string) error {
	if b.Resource != resource {
		return ErrWrongAsset
	}

	return nil
}

// Take split amount out of b
func (b *Bucket) Take(amount decimal.Decimal) (Bucket, error) {
	if amount.IsNegative() {
		return Bucket{}, ErrInvalidAmount
	}

	if amount.GreaterThan(b.Amount) {
		return Bucket{}, ErrInsufficientLiquidity
	}

	b.Amount = b.Amount.Sub(amount)
	return NewBucket(b.Resource, amount), nil
}

// Put merge other into b
func (b *Bucket) Put(other Bucket) error {
	if err := other.Expect(b.Resource); err != nil {
		return err
	}

	b.Amount = b.Amount.Add(other.Amount)
	return nil
}
