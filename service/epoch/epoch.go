package epoch

import (
	"context"
	"sync/atomic"
	"time"

	"stakelend/core"
	"stakelend/internal/epoch"
)

type service struct {
	// first for 64 bit atomic alignment
	last   uint64
	config *core.Config
	now    func() time.Time
}

// New new epoch service
func New(config *core.Config) core.IEpochService {
	return &service{
		config: config,
		now:    time.Now,
	}
}

// CurrentEpoch current ledger epoch, never less than one already returned
func (s *service) CurrentEpoch(ctx context.Context) (uint64, error) {
	current, e := epoch.Current(s.now(), s.config.App.Genesis, s.config.App.SecondsPerEpoch, s.config.App.GenesisEpoch)
	if e != nil {
		return 0, e
	}

	for {
		last := atomic.LoadUint64(&s.last)
		if current <= last {
			return last, nil
		}

		if atomic.CompareAndSwapUint64(&s.last, last, current) {
			return current, nil
		}
	}
}
