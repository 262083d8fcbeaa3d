package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// ActionType operation action
type ActionType string

const (
	// ActionTypeCreatePool create pool
	ActionTypeCreatePool ActionType = "create_pool"
	// ActionTypeAddLiquidity deposit
	ActionTypeAddLiquidity ActionType = "add_liquidity"
	// ActionTypeRemoveLiquidity withdraw
	ActionTypeRemoveLiquidity ActionType = "remove_liquidity"
	// ActionTypeBorrowVariable borrow at variable rate
	ActionTypeBorrowVariable ActionType = "borrow_variable"
	// ActionTypeBorrowStable borrow at stable rate
	ActionTypeBorrowStable ActionType = "borrow_stable"
	// ActionTypeRepayVariable repay variable loan
	ActionTypeRepayVariable ActionType = "repay_variable"
	// ActionTypeRepayStable repay stable loan
	ActionTypeRepayStable ActionType = "repay_stable"
	// ActionTypeRefresh index tick
	ActionTypeRefresh ActionType = "refresh"
	// ActionTypeContribute stake into the staking pool
	ActionTypeContribute ActionType = "contribute"
	// ActionTypeRedeem unstake from the staking pool
	ActionTypeRedeem ActionType = "redeem"
)

func (a ActionType) String() string {
	return string(a)
}

const (
	// OperationKeyShares shares minted, burned or repaid
	OperationKeyShares = "shares"
	// OperationKeyRate rate applied
	OperationKeyRate = "rate"
	// OperationKeyPrincipal principal repaid
	OperationKeyPrincipal = "principal"
	// OperationKeyInterest interest charged
	OperationKeyInterest = "interest"
	// OperationKeyValue redeemed value
	OperationKeyValue = "value"
	// OperationKeyValidator validator
	OperationKeyValidator = "validator"
	// OperationKeyClaimEpoch claim epoch
	OperationKeyClaimEpoch = "claim_epoch"
	// OperationKeyDepositIndex deposit index after the operation
	OperationKeyDepositIndex = "deposit_index"
	// OperationKeyLoanIndex loan index after the operation
	OperationKeyLoanIndex = "loan_index"
)

// OperationExtraData extra data
type OperationExtraData map[string]interface{}

// NewOperationExtra new operation extra instance
func NewOperationExtra() OperationExtraData {
	return make(OperationExtraData)
}

// Put put data
func (t OperationExtraData) Put(key string, value interface{}) {
	t[key] = value
}

// Format format as []byte by default
func (t OperationExtraData) Format() []byte {
	bs, e := json.Marshal(t)
	if e != nil {
		return []byte("{}")
	}

	return bs
}

// Operation applied mutating operation
type Operation struct {
	ID        int64           `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	TraceID   string          `sql:"size:36;unique_index:idx_operations_trace_id" json:"trace_id,omitempty"`
	Action    ActionType      `sql:"size:32" json:"action,omitempty"`
	Asset     string          `sql:"size:64;index:idx_operations_asset" json:"asset,omitempty"`
	Epoch     uint64          `json:"epoch,omitempty"`
	Amount    decimal.Decimal `sql:"type:decimal(64,18)" json:"amount,omitempty"`
	Extra     types.JSONText  `sql:"type:varchar(1024)" json:"extra,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
}

// IOperationStore operation store interface
type IOperationStore interface {
	Create(ctx context.Context, tx *db.DB, op *Operation) error
	List(ctx context.Context, asset string, fromID int64, limit int) ([]*Operation, error)
}
