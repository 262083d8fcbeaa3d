package core

import "context"

// IEpochService ledger epoch clock, never goes backwards
type IEpochService interface {
	CurrentEpoch(ctx context.Context) (uint64, error)
}
