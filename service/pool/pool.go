package pool

import (
	"context"

	"stakelend/core"
	"stakelend/internal/interest"
	"stakelend/internal/lending"
	"stakelend/pkg/id"
	"stakelend/pkg/metrics"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type service struct {
	db      *db.DB
	pools   core.IPoolStore
	ops     core.IOperationStore
	quotes  core.IQuoteStore
	epochs  core.IEpochService
	keeper  core.IKeeperService
	curve   *interest.Model
	metrics *metrics.LendingMetrics
}

// New new pool service, quotes and keeper are optional
func New(
	db *db.DB,
	pools core.IPoolStore,
	ops core.IOperationStore,
	quotes core.IQuoteStore,
	epochs core.IEpochService,
	keeper core.IKeeperService,
	curve *interest.Model,
) core.IPoolService {
	return &service{
		db:      db,
		pools:   pools,
		ops:     ops,
		quotes:  quotes,
		epochs:  epochs,
		keeper:  keeper,
		curve:   curve,
		metrics: metrics.Lending(),
	}
}

func (s *service) find(ctx context.Context, underlying string) (*core.Pool, error) {
	pool, err := s.pools.Find(ctx, underlying)
	if store.IsErrNotFound(err) {
		return nil, core.ErrPoolNotFound
	}

	return pool, err
}

// yieldFloor current keeper floor, nil without a keeper
func (s *service) yieldFloor(ctx context.Context) (core.IYieldFloor, error) {
	if s.keeper == nil {
		return nil, nil
	}

	return s.keeper.YieldFloor(ctx)
}

func (s *service) engineWith(pool *core.Pool, floor core.IYieldFloor) *lending.Pool {
	if floor == nil {
		return lending.New(pool, s.curve)
	}

	return lending.New(pool, s.curve.WithFloor(floor))
}

func (s *service) engine(ctx context.Context, pool *core.Pool) (*lending.Pool, error) {
	floor, err := s.yieldFloor(ctx)
	if err != nil {
		return nil, err
	}

	return s.engineWith(pool, floor), nil
}

// mutation applies one operation to the engine at epoch e and returns the
// amount to log, details go to extra
type mutation func(p *lending.Pool, e uint64, extra core.OperationExtraData) (decimal.Decimal, error)

func (s *service) mutate(ctx context.Context, underlying string, action core.ActionType, fn mutation) (err error) {
	defer func() {
		s.metrics.ObserveOperation(action, err)
	}()

	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"asset":  underlying,
		"action": action,
	})

	e, err := s.epochs.CurrentEpoch(ctx)
	if err != nil {
		return err
	}

	pool, err := s.find(ctx, underlying)
	if err != nil {
		return err
	}

	p, err := s.engine(ctx, pool)
	if err != nil {
		return err
	}

	extra := core.NewOperationExtra()
	amount, err := fn(p, e, extra)
	if err != nil {
		log.WithError(err).Infoln("rejected")
		return err
	}

	extra.Put(core.OperationKeyDepositIndex, pool.DepositIndex)
	extra.Put(core.OperationKeyLoanIndex, pool.LoanIndex)
	op := &core.Operation{
		TraceID: id.GenTraceID(),
		Action:  action,
		Asset:   underlying,
		Epoch:   e,
		Amount:  amount,
		Extra:   extra.Format(),
	}

	err = s.db.Tx(func(tx *db.DB) error {
		if err := s.pools.Update(ctx, tx, pool); err != nil {
			return err
		}

		if action == core.ActionTypeRefresh {
			return nil
		}

		return s.ops.Create(ctx, tx, op)
	})
	if err != nil {
		log.WithError(err).Errorln("save pool")
		return err
	}

	s.metrics.ObservePool(pool)

	log.Debugf("applied at epoch %d, amount %s", e, amount)
	return nil
}

func (s *service) Create(ctx context.Context, pool *core.Pool) (err error) {
	defer func() {
		s.metrics.ObserveOperation(core.ActionTypeCreatePool, err)
	}()

	if !pool.InterestModel.Valid() || pool.Underlying == "" || pool.DepositShareToken == "" {
		return core.ErrInvalidState
	}

	if pool.InsuranceRatio.IsNegative() || pool.InsuranceRatio.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return core.ErrInvalidAmount
	}

	if _, err := s.find(ctx, pool.Underlying); err == nil {
		return core.ErrPoolExists
	} else if err != core.ErrPoolNotFound {
		return err
	}

	e, err := s.epochs.CurrentEpoch(ctx)
	if err != nil {
		return err
	}

	pool.LastUpdateEpoch = e
	pool.StableLoanLastUpdate = e
	op := &core.Operation{
		TraceID: id.TraceIDFrom(core.ActionTypeCreatePool.String(), pool.Underlying),
		Action:  core.ActionTypeCreatePool,
		Asset:   pool.Underlying,
		Epoch:   e,
		Amount:  decimal.Zero,
		Extra:   core.NewOperationExtra().Format(),
	}

	return s.db.Tx(func(tx *db.DB) error {
		if err := s.pools.Create(ctx, tx, pool); err != nil {
			return err
		}

		return s.ops.Create(ctx, tx, op)
	})
}

func (s *service) AddLiquidity(ctx context.Context, underlying string, bucket core.Bucket) (core.Bucket, error) {
	var shares core.Bucket
	err := s.mutate(ctx, underlying, core.ActionTypeAddLiquidity, func(p *lending.Pool, e uint64, extra core.OperationExtraData) (decimal.Decimal, error) {
		var err error
		if shares, err = p.AddLiquidity(e, bucket); err != nil {
			return decimal.Zero, err
		}

		extra.Put(core.OperationKeyShares, shares.Amount)
		return bucket.Amount, nil
	})

	return shares, err
}

func (s *service) RemoveLiquidity(ctx context.Context, underlying string, shares core.Bucket) (core.Bucket, error) {
	var value core.Bucket
	err := s.mutate(ctx, underlying, core.ActionTypeRemoveLiquidity, func(p *lending.Pool, e uint64, extra core.OperationExtraData) (decimal.Decimal, error) {
		var err error
		if value, err = p.RemoveLiquidity(e, shares); err != nil {
			return decimal.Zero, err
		}

		extra.Put(core.OperationKeyShares, shares.Amount)
		return value.Amount, nil
	})

	return value, err
}

func (s *service) BorrowVariable(ctx context.Context, underlying string, amount decimal.Decimal) (core.Bucket, error) {
	var borrowed core.Bucket
	err := s.mutate(ctx, underlying, core.ActionTypeBorrowVariable, func(p *lending.Pool, e uint64, extra core.OperationExtraData) (decimal.Decimal, error) {
		var err error
		if borrowed, err = p.BorrowVariable(e, amount); err != nil {
			return decimal.Zero, err
		}

		extra.Put(core.OperationKeyRate, p.State().VariableLoanRate)
		return amount, nil
	})

	return borrowed, err
}

// BorrowStable a zero rate borrows at the current stable quote, an explicit
// rate may not undercut it
func (s *service) BorrowStable(ctx context.Context, underlying string, amount, rate decimal.Decimal) (core.Bucket, decimal.Decimal, error) {
	var borrowed core.Bucket
	err := s.mutate(ctx, underlying, core.ActionTypeBorrowStable, func(p *lending.Pool, e uint64, extra core.OperationExtraData) (decimal.Decimal, error) {
		quote, err := p.InterestRate(e)
		if err != nil {
			return decimal.Zero, err
		}

		if rate.IsZero() {
			rate = quote.StableRate
		} else if rate.LessThan(quote.StableRate) {
			return decimal.Zero, core.ErrInvalidAmount
		}

		if borrowed, err = p.BorrowStable(e, amount, rate); err != nil {
			return decimal.Zero, err
		}

		extra.Put(core.OperationKeyRate, rate)
		return amount, nil
	})
	if err != nil {
		return core.Bucket{}, decimal.Zero, err
	}

	return borrowed, rate, nil
}

func (s *service) RepayVariable(ctx context.Context, underlying string, bucket core.Bucket) (decimal.Decimal, error) {
	var shares decimal.Decimal
	err := s.mutate(ctx, underlying, core.ActionTypeRepayVariable, func(p *lending.Pool, e uint64, extra core.OperationExtraData) (decimal.Decimal, error) {
		var err error
		if shares, err = p.RepayVariable(e, bucket); err != nil {
			return decimal.Zero, err
		}

		extra.Put(core.OperationKeyShares, shares)
		return bucket.Amount, nil
	})

	return shares, err
}

// RepayStable the operation log keeps the outputs the caller persists as the new loan state
func (s *service) RepayStable(ctx context.Context, underlying string, bucket core.Bucket, loan core.StableLoan) (*core.StableRepayment, core.Bucket, error) {
	var (
		out    *core.StableRepayment
		change core.Bucket
	)

	err := s.mutate(ctx, underlying, core.ActionTypeRepayStable, func(p *lending.Pool, e uint64, extra core.OperationExtraData) (decimal.Decimal, error) {
		var err error
		if out, change, err = p.RepayStable(e, bucket, loan); err != nil {
			return decimal.Zero, err
		}

		extra.Put(core.OperationKeyPrincipal, out.PrincipalRepaid)
		extra.Put(core.OperationKeyInterest, out.Interest)
		extra.Put(core.OperationKeyRate, loan.Rate)
		return out.Applied, nil
	})
	if err != nil {
		return nil, core.Bucket{}, err
	}

	return out, change, nil
}

func (s *service) Refresh(ctx context.Context, underlying string) error {
	return s.mutate(ctx, underlying, core.ActionTypeRefresh, func(p *lending.Pool, e uint64, _ core.OperationExtraData) (decimal.Decimal, error) {
		return decimal.Zero, p.Refresh(e)
	})
}

// Quote cached per pool version and yield floor, a commit or keeper log
// moves the key so older quotes are never served
func (s *service) Quote(ctx context.Context, underlying string) (*core.PoolQuote, error) {
	e, err := s.epochs.CurrentEpoch(ctx)
	if err != nil {
		return nil, err
	}

	pool, err := s.find(ctx, underlying)
	if err != nil {
		return nil, err
	}

	floor, err := s.yieldFloor(ctx)
	if err != nil {
		return nil, err
	}

	key := core.QuoteKey{
		Underlying:  underlying,
		Epoch:       e,
		PoolVersion: pool.Version,
		Floor:       decimal.Zero,
	}

	if floor != nil {
		if key.Floor, err = floor.EstimateAPY(e); err != nil {
			return nil, err
		}
	}

	if s.quotes != nil {
		if quote, err := s.quotes.FindQuote(ctx, key); err == nil {
			return quote, nil
		}
	}

	quote, err := s.engineWith(pool, floor).Quote(e)
	if err != nil {
		return nil, err
	}

	if s.quotes != nil {
		if err := s.quotes.SaveQuote(ctx, key, quote); err != nil {
			logger.FromContext(ctx).WithError(err).WithField("asset", underlying).Warnln("cache quote")
		}
	}

	return quote, nil
}

func (s *service) RedemptionValue(ctx context.Context, underlying string, shares decimal.Decimal) (decimal.Decimal, error) {
	e, err := s.epochs.CurrentEpoch(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	pool, err := s.find(ctx, underlying)
	if err != nil {
		return decimal.Zero, err
	}

	return lending.New(pool, s.curve).RedemptionValue(e, shares)
}
