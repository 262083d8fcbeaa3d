package pool

import (
	"context"

	"stakelend/core"

	"github.com/fox-one/pkg/store/db"
)

type poolStore struct {
	db *db.DB
}

// New new pool store
func New(db *db.DB) core.IPoolStore {
	return &poolStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Pool{})
		if err := tx.AutoMigrate(core.Pool{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_pools_underlying", "underlying").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *poolStore) Create(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	return tx.Update().Create(pool).Error
}

func (s *poolStore) Find(ctx context.Context, underlying string) (*core.Pool, error) {
	var pool core.Pool
	if err := s.db.View().Where("underlying = ?", underlying).First(&pool).Error; err != nil {
		return nil, err
	}

	return &pool, nil
}

func (s *poolStore) All(ctx context.Context) ([]*core.Pool, error) {
	var pools []*core.Pool
	if err := s.db.View().Order("id").Find(&pools).Error; err != nil {
		return nil, err
	}

	return pools, nil
}

func toUpdateParams(pool *core.Pool) map[string]interface{} {
	return map[string]interface{}{
		"vault_balance":           pool.VaultBalance,
		"deposit_share_supply":    pool.DepositShareSupply,
		"deposit_index":           pool.DepositIndex,
		"loan_index":              pool.LoanIndex,
		"last_update_epoch":       pool.LastUpdateEpoch,
		"insurance_balance":       pool.InsuranceBalance,
		"deposit_rate":            pool.DepositRate,
		"variable_loan_rate":      pool.VariableLoanRate,
		"variable_loan_shares":    pool.VariableLoanShares,
		"stable_loan_amount":      pool.StableLoanAmount,
		"stable_loan_rate":        pool.StableLoanRate,
		"stable_loan_last_update": pool.StableLoanLastUpdate,
	}
}

func (s *poolStore) Update(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	updates := toUpdateParams(pool)
	updates["version"] = pool.Version + 1

	update := tx.Update().Model(core.Pool{}).Where("id = ? AND version = ?", pool.ID, pool.Version).Updates(updates)
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	pool.Version++
	return nil
}
