package rates

import (
	"context"
	"time"

	"xplend/core"
	"xplend/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"
)

// Worker refreshes the cached supply/borrow APY display columns from
// live utilization. Indices are untouched: the pool accrues nothing in
// the background, rates are recomputed on read anyway and this cache
// only serves list views.
type Worker struct {
	worker.BaseJob
	Config      *core.Config
	DB          *db.DB
	PoolStore   core.IPoolStore
	PoolService core.IPoolService
}

// New new rates worker
func New(cfg *core.Config, db *db.DB, poolStore core.IPoolStore, poolService core.IPoolService) *Worker {
	job := Worker{
		Config:      cfg,
		DB:          db,
		PoolStore:   poolStore,
		PoolService: poolService,
	}

	l, _ := time.LoadLocation(job.Config.App.Location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 1m"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "rates")

	pools, err := w.PoolStore.All(ctx)
	if err != nil {
		log.Errorln("fetch all pools error:", err)
		return err
	}

	for _, pool := range pools {
		supplyAPY := w.PoolService.CurSupplyRate(pool)
		borrowAPY := w.PoolService.CurBorrowRate(pool)

		if pool.SupplyAPY.Equal(supplyAPY) && pool.BorrowAPY.Equal(borrowAPY) {
			continue
		}

		pool.SupplyAPY = supplyAPY
		pool.BorrowAPY = borrowAPY

		err := w.DB.Tx(func(tx *db.DB) error {
			return w.PoolStore.Update(ctx, tx, pool)
		})
		if err != nil {
			log.Errorln("update pool rates error:", err)
			continue
		}

		log.Debugf("pool %s rates refreshed: supply %s borrow %s", pool.Asset, supplyAPY, borrowAPY)
	}

	return nil
}
