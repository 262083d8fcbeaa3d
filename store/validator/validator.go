package validator

import (
	"context"
	"time"

	"stakelend/core"

	"github.com/fox-one/msgpack"
	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// keeper aggregate is a single row
const keeperID = 1

type series struct {
	ID        int64  `sql:"PRIMARY_KEY;AUTO_INCREMENT"`
	Validator string `sql:"size:128"`
	// msgpack encoded newest-first snapshots
	Snapshots []byte
	Version   int64     `sql:"default:0"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP"`
}

func (series) TableName() string {
	return "validator_series"
}

type snapshot struct {
	LsuSupply   string `msgpack:"l"`
	StakedValue string `msgpack:"s"`
	Epoch       uint64 `msgpack:"e"`
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(series{})
		if err := tx.AutoMigrate(series{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_validator_series_validator", "validator").Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.Keeper{}).AutoMigrate(core.Keeper{}).Error; err != nil {
			return err
		}

		return nil
	})
}

type validatorStore struct {
	db *db.DB
}

// New new validator series store
func New(db *db.DB) core.IValidatorStore {
	return &validatorStore{db: db}
}

func encodeSnapshots(snapshots []core.StakeSnapshot) ([]byte, error) {
	items := make([]snapshot, 0, len(snapshots))
	for _, s := range snapshots {
		items = append(items, snapshot{
			LsuSupply:   s.LsuSupply.String(),
			StakedValue: s.StakedValue.String(),
			Epoch:       s.Epoch,
		})
	}

	return msgpack.Marshal(items)
}

func decodeSnapshots(data []byte) ([]core.StakeSnapshot, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var items []snapshot
	if err := msgpack.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	snapshots := make([]core.StakeSnapshot, 0, len(items))
	for _, item := range items {
		lsu, err := decimal.NewFromString(item.LsuSupply)
		if err != nil {
			return nil, err
		}

		staked, err := decimal.NewFromString(item.StakedValue)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, core.StakeSnapshot{
			LsuSupply:   lsu,
			StakedValue: staked,
			Epoch:       item.Epoch,
		})
	}

	return snapshots, nil
}

func fromRecord(r *series) (*core.ValidatorSeries, error) {
	snapshots, err := decodeSnapshots(r.Snapshots)
	if err != nil {
		return nil, err
	}

	return &core.ValidatorSeries{
		Validator: r.Validator,
		Snapshots: snapshots,
		Version:   r.Version,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func (s *validatorStore) ListSeries(ctx context.Context) ([]*core.ValidatorSeries, error) {
	var records []*series
	if err := s.db.View().Order("validator").Find(&records).Error; err != nil {
		return nil, err
	}

	list := make([]*core.ValidatorSeries, 0, len(records))
	for _, r := range records {
		item, err := fromRecord(r)
		if err != nil {
			return nil, err
		}

		list = append(list, item)
	}

	return list, nil
}

// FindSeries an untracked validator yields an empty series with version 0
func (s *validatorStore) FindSeries(ctx context.Context, validator string) (*core.ValidatorSeries, error) {
	var r series
	err := s.db.View().Where("validator = ?", validator).First(&r).Error
	if store.IsErrNotFound(err) {
		return &core.ValidatorSeries{Validator: validator}, nil
	} else if err != nil {
		return nil, err
	}

	return fromRecord(&r)
}

func (s *validatorStore) SaveSeries(ctx context.Context, tx *db.DB, item *core.ValidatorSeries) error {
	data, err := encodeSnapshots(item.Snapshots)
	if err != nil {
		return err
	}

	now := time.Now()
	if item.Version == 0 {
		r := series{
			Validator: item.Validator,
			Snapshots: data,
			Version:   1,
			UpdatedAt: now,
		}

		if err := tx.Update().Create(&r).Error; err != nil {
			return err
		}

		item.Version = r.Version
		item.UpdatedAt = now
		return nil
	}

	update := tx.Update().Model(series{}).Where("validator = ? AND version = ?", item.Validator, item.Version).Updates(map[string]interface{}{
		"snapshots":  data,
		"version":    item.Version + 1,
		"updated_at": now,
	})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	item.Version++
	item.UpdatedAt = now
	return nil
}

func (s *validatorStore) DeleteSeries(ctx context.Context, tx *db.DB, validator string) error {
	return tx.Update().Where("validator = ?", validator).Delete(series{}).Error
}

// FindKeeper an empty aggregate before the first log
func (s *validatorStore) FindKeeper(ctx context.Context) (*core.Keeper, error) {
	var keeper core.Keeper
	err := s.db.View().Where("id = ?", keeperID).First(&keeper).Error
	if store.IsErrNotFound(err) {
		return &core.Keeper{LastStaked: decimal.Zero}, nil
	} else if err != nil {
		return nil, err
	}

	return &keeper, nil
}

func (s *validatorStore) SaveKeeper(ctx context.Context, tx *db.DB, keeper *core.Keeper) error {
	keeper.UpdatedAt = time.Now()

	if keeper.ID == 0 {
		keeper.ID = keeperID
		keeper.Version = 1
		return tx.Update().Create(keeper).Error
	}

	update := tx.Update().Model(core.Keeper{}).Where("id = ? AND version = ?", keeper.ID, keeper.Version).Updates(map[string]interface{}{
		"last_staked":      keeper.LastStaked,
		"last_stake_epoch": keeper.LastStakeEpoch,
		"validators":       keeper.Validators,
		"version":          keeper.Version + 1,
		"updated_at":       keeper.UpdatedAt,
	})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	keeper.Version++
	return nil
}
