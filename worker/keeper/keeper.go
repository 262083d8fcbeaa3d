package keeper

import (
	"context"
	"time"

	"stakelend/core"
	"stakelend/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
)

const checkpointKey = "keeper_last_log"

// Worker logs the configured validators on schedule
type Worker struct {
	worker.BaseJob
	config   core.KeeperJob
	keepers  core.IKeeperService
	property property.Store
}

// New new keeper worker
func New(location string, config core.KeeperJob, keepers core.IKeeperService, property property.Store) (*Worker, error) {
	w := &Worker{
		config:   config,
		keepers:  keepers,
		property: property,
	}

	w.Name = "keeper"
	w.OnWork = w.onWork
	if err := w.Schedule(location, config.Spec); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	v, err := w.property.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	keeper, err := w.keepers.Log(ctx, w.config.Validators, nil)
	if err != nil {
		return err
	}

	now := time.Now()
	if last := v.Time(); !last.IsZero() {
		log.Debugf("last log %s ago", now.Sub(last))
	}

	if err := w.property.Save(ctx, checkpointKey, now); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	log.Infof("staked %s at epoch %d", keeper.LastStaked, keeper.LastStakeEpoch)
	return nil
}
