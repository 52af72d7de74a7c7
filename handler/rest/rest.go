package rest

import (
	"errors"
	"net/http"

	"xplend/core"
	"xplend/handler/auth"
	"xplend/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(cfg *core.Config,
	lendingService core.ILendingService,
	poolService core.IPoolService,
	supplyStore core.ISupplyStore,
	borrowStore core.IBorrowStore,
	transactionStore core.TransactionStore) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/lending/pools", poolsHandler(cfg, poolService, supplyStore, borrowStore))

	router.Group(func(router chi.Router) {
		router.Use(auth.HandleAuthentication(cfg.API.JWTSecret))

		router.Get("/lending/my-positions", positionsHandler(lendingService))
		router.Post("/lending/supply", supplyHandler(lendingService))
		router.Post("/lending/withdraw", withdrawHandler(lendingService))
		router.Post("/lending/borrow", borrowHandler(lendingService))
		router.Post("/lending/repay", repayHandler(lendingService))
		router.Get("/transactions", transactionsHandler(transactionStore))
	})

	return router
}

func handleOperationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrPoolNotFound),
		errors.Is(err, core.ErrSupplyNotFound),
		errors.Is(err, core.ErrBorrowNotFound):
		render.NotFoundRequest(w, err)
	default:
		render.BadRequest(w, err)
	}
}
