package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// StakeSnapshot one weekly observation of a validator
type StakeSnapshot struct {
	LsuSupply   decimal.Decimal `json:"lsu_supply"`
	StakedValue decimal.Decimal `json:"staked_value"`
	Epoch       uint64          `json:"epoch"`
}

// ValidatorSeries newest-first weekly snapshots of a validator
type ValidatorSeries struct {
	Validator string          `json:"validator"`
	Snapshots []StakeSnapshot `json:"snapshots"`
	Version   int64           `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Keeper keeper aggregate
type Keeper struct {
	ID             uint64          `sql:"PRIMARY_KEY" json:"id"`
	LastStaked     decimal.Decimal `sql:"type:decimal(64,18)" json:"last_staked"`
	LastStakeEpoch uint64          `json:"last_stake_epoch"`
	// tracked validators in name order as of the last log
	Validators pq.StringArray `sql:"type:varchar(1024)" json:"validators"`
	Version    int64          `sql:"default:0" json:"version"`
	UpdatedAt  time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Observation current totals of a validator
type Observation struct {
	LsuSupply   decimal.Decimal `json:"lsu_supply"`
	StakedValue decimal.Decimal `json:"staked_value"`
}

// IYieldFloor lower bound for the stable borrow rate
type IYieldFloor interface {
	EstimateAPY(epoch uint64) (decimal.Decimal, error)
}

// IValidatorStore keeper series store interface
type IValidatorStore interface {
	ListSeries(ctx context.Context) ([]*ValidatorSeries, error)
	FindSeries(ctx context.Context, validator string) (*ValidatorSeries, error)
	SaveSeries(ctx context.Context, tx *db.DB, series *ValidatorSeries) error
	DeleteSeries(ctx context.Context, tx *db.DB, validator string) error
	FindKeeper(ctx context.Context) (*Keeper, error)
	SaveKeeper(ctx context.Context, tx *db.DB, keeper *Keeper) error
}

// IKeeperService validator keeper service interface
type IKeeperService interface {
	// Log removes validators, records every tracked validator and starts tracking the new ones
	Log(ctx context.Context, add, remove []string) (*Keeper, error)
	RecordSnapshot(ctx context.Context, validator string) error
	EstimateAPY(ctx context.Context) (decimal.Decimal, error)
	Series(ctx context.Context, validator string) (*ValidatorSeries, error)
	YieldFloor(ctx context.Context) (IYieldFloor, error)
}
