package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// InterestModel rate curve variant used by a pool
type InterestModel string

const (
	// InterestModelDefault primary*u + quadratic*u^2, flat above full utilization
	InterestModelDefault InterestModel = "default"
	// InterestModelStableCoin primary*u^4 + quadratic*u^8
	InterestModelStableCoin InterestModel = "stable_coin"
)

func (m InterestModel) String() string {
	return string(m)
}

// Valid known model
func (m InterestModel) Valid() bool {
	return m == InterestModelDefault || m == InterestModelStableCoin
}

// Pool lending pool state, one per underlying asset
type Pool struct {
	ID                uint64        `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Underlying        string        `sql:"size:64;unique_index:idx_pools_underlying" json:"underlying"`
	DepositShareToken string        `sql:"size:64" json:"deposit_share_token"`
	InterestModel     InterestModel `sql:"size:20" json:"interest_model"`
	// liquid asset held by the pool
	VaultBalance decimal.Decimal `sql:"type:decimal(64,18)" json:"vault_balance"`
	// total supply of deposit share token, minted and burned by the pool only
	DepositShareSupply decimal.Decimal `sql:"type:decimal(64,18)" json:"deposit_share_supply"`
	DepositIndex       decimal.Decimal `sql:"type:decimal(64,18)" json:"deposit_index"`
	LoanIndex          decimal.Decimal `sql:"type:decimal(64,18)" json:"loan_index"`
	LastUpdateEpoch    uint64          `json:"last_update_epoch"`
	// spread between borrow and supply interest owned by the protocol
	InsuranceBalance decimal.Decimal `sql:"type:decimal(64,18)" json:"insurance_balance"`
	// [0, 1)
	InsuranceRatio       decimal.Decimal `sql:"type:decimal(64,18)" json:"insurance_ratio"`
	DepositRate          decimal.Decimal `sql:"type:decimal(64,18)" json:"deposit_rate"`
	VariableLoanRate     decimal.Decimal `sql:"type:decimal(64,18)" json:"variable_loan_rate"`
	VariableLoanShares   decimal.Decimal `sql:"type:decimal(64,18)" json:"variable_loan_shares"`
	StableLoanAmount     decimal.Decimal `sql:"type:decimal(64,18)" json:"stable_loan_amount"`
	StableLoanRate       decimal.Decimal `sql:"type:decimal(64,18)" json:"stable_loan_rate"`
	StableLoanLastUpdate uint64          `json:"stable_loan_last_update"`
	Version              int64           `sql:"default:0" json:"version"`
	CreatedAt            time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt            time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// NewPool new pool with both indices at one
func NewPool(underlying, shareToken string, model InterestModel, insuranceRatio decimal.Decimal) *Pool {
	return &Pool{
		Underlying:        underlying,
		DepositShareToken: shareToken,
		InterestModel:     model,
		DepositIndex:      decimal.NewFromInt(1),
		LoanIndex:         decimal.NewFromInt(1),
		InsuranceRatio:    insuranceRatio,
	}
}

// Rates borrow and supply rates at a utilization
type Rates struct {
	VariableRate decimal.Decimal `json:"variable_rate"`
	StableRate   decimal.Decimal `json:"stable_rate"`
	DepositRate  decimal.Decimal `json:"deposit_rate"`
}

// StableRepayment outputs of a stable loan repayment, the caller persists
// them as the new per-loan state
type StableRepayment struct {
	// amount taken from the repay bucket
	Applied decimal.Decimal `json:"applied"`
	// negative when unpaid interest was capitalized
	PrincipalRepaid decimal.Decimal `json:"principal_repaid"`
	Interest        decimal.Decimal `json:"interest"`
	Epoch           uint64          `json:"epoch"`
}

// StableLoan a single stable loan tracked by the caller
type StableLoan struct {
	Principal decimal.Decimal `json:"principal"`
	Rate      decimal.Decimal `json:"rate"`
	LastEpoch uint64          `json:"last_epoch"`
}

// PoolQuote read-only projection of a pool at an epoch
type PoolQuote struct {
	Pool            *Pool           `json:"pool"`
	Epoch           uint64          `json:"epoch"`
	DepositIndex    decimal.Decimal `json:"deposit_index"`
	LoanIndex       decimal.Decimal `json:"loan_index"`
	Rates           Rates           `json:"rates"`
	Available       decimal.Decimal `json:"available"`
	StableLoanValue decimal.Decimal `json:"stable_loan_value"`
	UnderlyingValue decimal.Decimal `json:"underlying_value"`
}

// IPoolStore pool store interface
type IPoolStore interface {
	Create(ctx context.Context, tx *db.DB, pool *Pool) error
	Find(ctx context.Context, underlying string) (*Pool, error)
	All(ctx context.Context) ([]*Pool, error)
	Update(ctx context.Context, tx *db.DB, pool *Pool) error
}

// IPoolService pool service interface
type IPoolService interface {
	Create(ctx context.Context, pool *Pool) error
	AddLiquidity(ctx context.Context, underlying string, bucket Bucket) (Bucket, error)
	RemoveLiquidity(ctx context.Context, underlying string, shares Bucket) (Bucket, error)
	BorrowVariable(ctx context.Context, underlying string, amount decimal.Decimal) (Bucket, error)
	// a zero rate borrows at the pool's current stable quote
	BorrowStable(ctx context.Context, underlying string, amount, rate decimal.Decimal) (Bucket, decimal.Decimal, error)
	RepayVariable(ctx context.Context, underlying string, bucket Bucket) (decimal.Decimal, error)
	RepayStable(ctx context.Context, underlying string, bucket Bucket, loan StableLoan) (*StableRepayment, Bucket, error)
	Refresh(ctx context.Context, underlying string) error
	Quote(ctx context.Context, underlying string) (*PoolQuote, error)
	RedemptionValue(ctx context.Context, underlying string, shares decimal.Decimal) (decimal.Decimal, error)
}

// QuoteKey everything a pool quote is computed from
type QuoteKey struct {
	Underlying  string
	Epoch       uint64
	PoolVersion int64
	// yield floor at Epoch
	Floor decimal.Decimal
}

// IQuoteStore short lived cache of pool quotes, superseded keys expire
type IQuoteStore interface {
	SaveQuote(ctx context.Context, key QuoteKey, quote *PoolQuote) error
	FindQuote(ctx context.Context, key QuoteKey) (*PoolQuote, error)
}
