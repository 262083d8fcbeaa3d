package staking

import (
	"context"

	"stakelend/core"
	"stakelend/internal/staking"
	"stakelend/pkg/id"
	"stakelend/pkg/metrics"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type service struct {
	db         *db.DB
	pools      core.IStakingStore
	ops        core.IOperationStore
	validators core.IValidatorService
	epochs     core.IEpochService
	config     core.Staking
}

// New new staking pool service
func New(
	db *db.DB,
	pools core.IStakingStore,
	ops core.IOperationStore,
	validators core.IValidatorService,
	epochs core.IEpochService,
	config core.Staking,
) core.IStakingService {
	return &service{
		db:         db,
		pools:      pools,
		ops:        ops,
		validators: validators,
		epochs:     epochs,
		config:     config,
	}
}

// load the configured pool, an empty one until the first contribution
func (s *service) load(ctx context.Context) (*core.StakingPool, error) {
	pool, err := s.pools.Find(ctx, s.config.StakeToken)
	if store.IsErrNotFound(err) {
		return core.NewStakingPool(s.config.StakeToken, s.config.ShareToken), nil
	}

	return pool, err
}

func (s *service) save(ctx context.Context, pool *core.StakingPool, op *core.Operation) error {
	return s.db.Tx(func(tx *db.DB) error {
		var err error
		if pool.Version == 0 {
			err = s.pools.Create(ctx, tx, pool)
		} else {
			err = s.pools.Update(ctx, tx, pool)
		}

		if err != nil {
			return err
		}

		return s.ops.Create(ctx, tx, op)
	})
}

func (s *service) Contribute(ctx context.Context, bucket core.Bucket, validator string) (shares core.Bucket, err error) {
	defer func() {
		metrics.Lending().ObserveOperation(core.ActionTypeContribute, err)
	}()

	log := logger.FromContext(ctx).WithField("validator", validator)

	e, err := s.epochs.CurrentEpoch(ctx)
	if err != nil {
		return core.Bucket{}, err
	}

	pool, err := s.load(ctx)
	if err != nil {
		return core.Bucket{}, err
	}

	shares, err = staking.New(pool, s.validators).Contribute(ctx, e, bucket, validator)
	if err != nil {
		log.WithError(err).Infoln("contribute rejected")
		return core.Bucket{}, err
	}

	extra := core.NewOperationExtra()
	extra.Put(core.OperationKeyValidator, validator)
	extra.Put(core.OperationKeyShares, shares.Amount)
	op := &core.Operation{
		TraceID: id.GenTraceID(),
		Action:  core.ActionTypeContribute,
		Asset:   pool.StakeToken,
		Epoch:   e,
		Amount:  bucket.Amount,
		Extra:   extra.Format(),
	}

	if err := s.save(ctx, pool, op); err != nil {
		log.WithError(err).Errorln("save staking pool")
		return core.Bucket{}, err
	}

	return shares, nil
}

func (s *service) Redeem(ctx context.Context, shares core.Bucket, validator string) (receipt *core.UnstakeReceipt, err error) {
	defer func() {
		metrics.Lending().ObserveOperation(core.ActionTypeRedeem, err)
	}()

	log := logger.FromContext(ctx).WithField("validator", validator)

	e, err := s.epochs.CurrentEpoch(ctx)
	if err != nil {
		return nil, err
	}

	pool, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	receipt, err = staking.New(pool, s.validators).Redeem(ctx, e, shares, validator)
	if err != nil {
		log.WithError(err).Infoln("redeem rejected")
		return nil, err
	}

	extra := core.NewOperationExtra()
	extra.Put(core.OperationKeyValidator, validator)
	extra.Put(core.OperationKeyValue, receipt.ClaimAmount)
	extra.Put(core.OperationKeyClaimEpoch, receipt.ClaimEpoch)
	op := &core.Operation{
		TraceID: id.GenTraceID(),
		Action:  core.ActionTypeRedeem,
		Asset:   pool.ShareToken,
		Epoch:   e,
		Amount:  shares.Amount,
		Extra:   extra.Format(),
	}

	if err := s.save(ctx, pool, op); err != nil {
		log.WithError(err).Errorln("save staking pool")
		return nil, err
	}

	return receipt, nil
}

func (s *service) RedemptionValue(ctx context.Context, shares decimal.Decimal) (decimal.Decimal, error) {
	pool, err := s.load(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return staking.New(pool, s.validators).RedemptionValue(ctx, shares)
}
