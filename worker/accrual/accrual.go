package accrual

import (
	"context"
	"sync"

	"stakelend/core"
	"stakelend/pkg/concurrency"
	"stakelend/worker"

	"github.com/fox-one/pkg/logger"
)

// Worker advances the indices of every pool on schedule
type Worker struct {
	worker.BaseJob
	pools       core.IPoolStore
	poolService core.IPoolService
}

// New new accrual worker
func New(location, spec string, pools core.IPoolStore, poolService core.IPoolService) (*Worker, error) {
	w := &Worker{
		pools:       pools,
		poolService: poolService,
	}

	w.Name = "accrual"
	w.OnWork = w.onWork
	if err := w.Schedule(location, spec); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	pools, err := w.pools.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("list pools")
		return err
	}

	var (
		limit = concurrency.NewGoLimit(concurrency.DefaultMax)
		wg    sync.WaitGroup
	)

	for _, pool := range pools {
		limit.Add()
		wg.Add(1)
		go func(underlying string) {
			defer wg.Done()
			defer limit.Done()

			if err := w.poolService.Refresh(ctx, underlying); err != nil {
				log.WithError(err).Errorln("refresh", underlying)
			}
		}(pool.Underlying)
	}

	wg.Wait()
	return nil
}
