package operation

import (
	"context"

	"stakelend/core"

	"github.com/fox-one/pkg/store/db"
)

type operationStore struct {
	db *db.DB
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Operation{})
		if err := tx.AutoMigrate(core.Operation{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_operations_trace_id", "trace_id").Error; err != nil {
			return err
		}

		return nil
	})
}

// New new operation log store
func New(db *db.DB) core.IOperationStore {
	return &operationStore{
		db: db,
	}
}

func (s *operationStore) Create(ctx context.Context, tx *db.DB, op *core.Operation) error {
	return tx.Update().Where("trace_id = ?", op.TraceID).FirstOrCreate(op).Error
}

func (s *operationStore) List(ctx context.Context, asset string, fromID int64, limit int) ([]*core.Operation, error) {
	var ops []*core.Operation

	query := s.db.View().Where("id > ?", fromID)
	if asset != "" {
		query = query.Where("asset = ?", asset)
	}

	if err := query.Order("id").Limit(limit).Find(&ops).Error; err != nil {
		return nil, err
	}

	return ops, nil
}
