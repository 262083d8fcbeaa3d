package staking

import (
	"context"
	"encoding/json"
	"time"

	"stakelend/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

type stakingPool struct {
	ID          int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT"`
	StakeToken  string          `sql:"size:64"`
	ShareToken  string          `sql:"size:64"`
	ShareSupply decimal.Decimal `sql:"type:decimal(64,18)"`
	Validators  types.JSONText  `sql:"type:TEXT"`
	Holdings    types.JSONText  `sql:"type:TEXT"`
	Version     int64           `sql:"default:0"`
	CreatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP"`
}

func (stakingPool) TableName() string {
	return "staking_pools"
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(stakingPool{})
		if err := tx.AutoMigrate(stakingPool{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_staking_pools_stake_token", "stake_token").Error; err != nil {
			return err
		}

		return nil
	})
}

type stakingStore struct {
	db *db.DB
}

// New new staking pool store
func New(db *db.DB) core.IStakingStore {
	return &stakingStore{db: db}
}

func toRecord(pool *core.StakingPool) (*stakingPool, error) {
	validators, err := json.Marshal(pool.Validators)
	if err != nil {
		return nil, err
	}

	holdings, err := json.Marshal(pool.Holdings)
	if err != nil {
		return nil, err
	}

	return &stakingPool{
		StakeToken:  pool.StakeToken,
		ShareToken:  pool.ShareToken,
		ShareSupply: pool.ShareSupply,
		Validators:  validators,
		Holdings:    holdings,
		Version:     pool.Version,
	}, nil
}

func fromRecord(r *stakingPool) (*core.StakingPool, error) {
	pool := core.NewStakingPool(r.StakeToken, r.ShareToken)
	pool.ShareSupply = r.ShareSupply
	pool.Version = r.Version

	if len(r.Validators) > 0 {
		if err := r.Validators.Unmarshal(&pool.Validators); err != nil {
			return nil, err
		}
	}

	if len(r.Holdings) > 0 {
		if err := r.Holdings.Unmarshal(&pool.Holdings); err != nil {
			return nil, err
		}
	}

	return pool, nil
}

func (s *stakingStore) Find(ctx context.Context, stakeToken string) (*core.StakingPool, error) {
	var r stakingPool
	if err := s.db.View().Where("stake_token = ?", stakeToken).First(&r).Error; err != nil {
		return nil, err
	}

	return fromRecord(&r)
}

func (s *stakingStore) Create(ctx context.Context, tx *db.DB, pool *core.StakingPool) error {
	r, err := toRecord(pool)
	if err != nil {
		return err
	}

	r.Version = 1
	if err := tx.Update().Create(r).Error; err != nil {
		return err
	}

	pool.Version = r.Version
	return nil
}

func (s *stakingStore) Update(ctx context.Context, tx *db.DB, pool *core.StakingPool) error {
	r, err := toRecord(pool)
	if err != nil {
		return err
	}

	update := tx.Update().Model(stakingPool{}).Where("stake_token = ? AND version = ?", pool.StakeToken, pool.Version).Updates(map[string]interface{}{
		"share_supply": r.ShareSupply,
		"validators":   r.Validators,
		"holdings":     r.Holdings,
		"version":      pool.Version + 1,
		"updated_at":   time.Now(),
	})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	pool.Version++
	return nil
}
