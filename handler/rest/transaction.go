package rest

import (
	"net/http"

	"xplend/core"
	"xplend/handler/param"
	"xplend/handler/render"
	"xplend/handler/request"
)

const maxTransactionLimit = 100

func transactionsHandler(transactionStore core.TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, ok := request.UserFrom(ctx)
		if !ok {
			render.Unauthorized(w, errLoginRequired)
			return
		}

		var params struct {
			Limit int `schema:"limit"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Limit <= 0 || params.Limit > maxTransactionLimit {
			params.Limit = maxTransactionLimit
		}

		transactions, err := transactionStore.ListByUser(ctx, user.ID, params.Limit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, transactions)
	}
}
