package rest

import (
	"net/http"

	"xplend/core"
	"xplend/handler/render"
	"xplend/handler/views"
	"xplend/pkg/number"
)

func poolsHandler(cfg *core.Config, poolService core.IPoolService, supplyStore core.ISupplyStore, borrowStore core.IBorrowStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		pool, err := poolService.Get(ctx, cfg.PoolAsset())
		if err != nil {
			handleOperationError(w, err)
			return
		}

		suppliers, err := supplyStore.CountOfSuppliers(ctx, pool.Asset)
		if err != nil {
			suppliers = 0
		}

		borrowers, err := borrowStore.CountOfBorrowers(ctx, pool.Asset)
		if err != nil {
			borrowers = 0
		}

		view := views.Pool{
			Pool:        *pool,
			Utilization: number.Percent(poolService.CurUtilization(pool)),
			SupplyApy:   number.Percent(poolService.CurSupplyRate(pool)),
			BorrowApy:   number.Percent(poolService.CurBorrowRate(pool)),
			TVL:         pool.TotalSupplied,
			Suppliers:   suppliers,
			Borrowers:   borrowers,
		}

		render.JSON(w, view)
	}
}
