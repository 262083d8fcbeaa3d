package keeper

import (
	"context"
	"sync"

	"stakelend/core"
	"stakelend/internal/keeper"
	"stakelend/pkg/metrics"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type service struct {
	db         *db.DB
	store      core.IValidatorStore
	validators core.IValidatorService
	epochs     core.IEpochService
}

// New new keeper service
func New(
	db *db.DB,
	store core.IValidatorStore,
	validators core.IValidatorService,
	epochs core.IEpochService,
) core.IKeeperService {
	return &service{
		db:         db,
		store:      store,
		validators: validators,
		epochs:     epochs,
	}
}

func (s *service) load(ctx context.Context) (*keeper.Keeper, error) {
	state, err := s.store.FindKeeper(ctx)
	if err != nil {
		return nil, err
	}

	series, err := s.store.ListSeries(ctx)
	if err != nil {
		return nil, err
	}

	return keeper.New(state, series), nil
}

func (s *service) observe(ctx context.Context, validators []string) (map[string]core.Observation, error) {
	var (
		mu           sync.Mutex
		observations = make(map[string]core.Observation, len(validators))
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, v := range validators {
		v := v
		g.Go(func() error {
			supply, err := s.validators.TotalShareSupply(ctx, v)
			if err != nil {
				return err
			}

			staked, err := s.validators.TotalStakedValue(ctx, v)
			if err != nil {
				return err
			}

			mu.Lock()
			observations[v] = core.Observation{LsuSupply: supply, StakedValue: staked}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return observations, nil
}

// targets validators to observe for a log call, the tracked ones that stay
// plus every added one
func targets(tracked, add, remove []string) []string {
	removed := make(map[string]bool, len(remove))
	for _, v := range remove {
		removed[v] = true
	}

	var (
		list []string
		seen = map[string]bool{}
	)

	for _, v := range tracked {
		if !removed[v] && !seen[v] {
			seen[v] = true
			list = append(list, v)
		}
	}

	for _, v := range add {
		if !seen[v] {
			seen[v] = true
			list = append(list, v)
		}
	}

	return list
}

func (s *service) Log(ctx context.Context, add, remove []string) (*core.Keeper, error) {
	log := logger.FromContext(ctx).WithField("service", "keeper")

	e, err := s.epochs.CurrentEpoch(ctx)
	if err != nil {
		return nil, err
	}

	k, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	observations, err := s.observe(ctx, targets(k.Validators(), add, remove))
	if err != nil {
		log.WithError(err).Errorln("observe validators")
		return nil, err
	}

	if err := k.Log(e, observations, add, remove); err != nil {
		return nil, err
	}

	err = s.db.Tx(func(tx *db.DB) error {
		for _, v := range remove {
			if err := s.store.DeleteSeries(ctx, tx, v); err != nil {
				return err
			}
		}

		for _, v := range k.Validators() {
			if err := s.store.SaveSeries(ctx, tx, k.Series(v)); err != nil {
				return err
			}
		}

		return s.store.SaveKeeper(ctx, tx, k.State())
	})
	if err != nil {
		log.WithError(err).Errorln("save keeper")
		return nil, err
	}

	if apy, err := k.EstimateAPY(e); err == nil {
		metrics.Lending().SetKeeperAPY(apy)
	}

	log.Infof("logged %d validators at epoch %d, staked %s", len(k.Validators()), e, k.State().LastStaked)
	return k.State(), nil
}

func (s *service) RecordSnapshot(ctx context.Context, validator string) error {
	e, err := s.epochs.CurrentEpoch(ctx)
	if err != nil {
		return err
	}

	series, err := s.store.FindSeries(ctx, validator)
	if err != nil {
		return err
	}

	observations, err := s.observe(ctx, []string{validator})
	if err != nil {
		return err
	}

	k := keeper.New(nil, []*core.ValidatorSeries{series})
	k.Record(validator, observations[validator], e)

	return s.db.Tx(func(tx *db.DB) error {
		return s.store.SaveSeries(ctx, tx, k.Series(validator))
	})
}

func (s *service) EstimateAPY(ctx context.Context) (decimal.Decimal, error) {
	e, err := s.epochs.CurrentEpoch(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	k, err := s.load(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return k.EstimateAPY(e)
}

func (s *service) Series(ctx context.Context, validator string) (*core.ValidatorSeries, error) {
	series, err := s.store.FindSeries(ctx, validator)
	if err != nil {
		return nil, err
	}

	if series.Version == 0 {
		return nil, core.ErrValidatorNotFound
	}

	return series, nil
}

// YieldFloor snapshot of the keeper used to floor stable rates
func (s *service) YieldFloor(ctx context.Context) (core.IYieldFloor, error) {
	return s.load(ctx)
}
