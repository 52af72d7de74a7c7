package rest

import (
	"errors"
	"net/http"

	"xplend/core"
	"xplend/handler/param"
	"xplend/handler/render"
	"xplend/handler/request"

	"github.com/shopspring/decimal"
)

var errLoginRequired = errors.New("login required")

func positionsHandler(lendingService core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, ok := request.UserFrom(ctx)
		if !ok {
			render.Unauthorized(w, errLoginRequired)
			return
		}

		positions, err := lendingService.Positions(ctx, user.ID)
		if err != nil {
			handleOperationError(w, err)
			return
		}

		render.JSON(w, positions)
	}
}

func supplyHandler(lendingService core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, ok := request.UserFrom(ctx)
		if !ok {
			render.Unauthorized(w, errLoginRequired)
			return
		}

		var params struct {
			Amount string `json:"amount" valid:"required"`
			TxHash string `json:"tx_hash"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := decimal.NewFromString(params.Amount)
		if err != nil {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}

		position, err := lendingService.Supply(ctx, user.ID, amount, params.TxHash)
		if err != nil {
			handleOperationError(w, err)
			return
		}

		render.JSON(w, position)
	}
}

func withdrawHandler(lendingService core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, ok := request.UserFrom(ctx)
		if !ok {
			render.Unauthorized(w, errLoginRequired)
			return
		}

		var params struct {
			Amount string `json:"amount" valid:"required"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := decimal.NewFromString(params.Amount)
		if err != nil {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}

		position, err := lendingService.Withdraw(ctx, user.ID, amount)
		if err != nil {
			handleOperationError(w, err)
			return
		}

		render.JSON(w, position)
	}
}

func borrowHandler(lendingService core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, ok := request.UserFrom(ctx)
		if !ok {
			render.Unauthorized(w, errLoginRequired)
			return
		}

		var params struct {
			BorrowAmount     string `json:"borrow_amount" valid:"required"`
			CollateralAmount string `json:"collateral_amount" valid:"required"`
			CollateralAsset  string `json:"collateral_asset"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		borrowAmount, err := decimal.NewFromString(params.BorrowAmount)
		if err != nil {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}

		collateralAmount, err := decimal.NewFromString(params.CollateralAmount)
		if err != nil {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}

		position, err := lendingService.Borrow(ctx, user.ID, borrowAmount, collateralAmount, params.CollateralAsset)
		if err != nil {
			handleOperationError(w, err)
			return
		}

		render.JSON(w, position)
	}
}

func repayHandler(lendingService core.ILendingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		user, ok := request.UserFrom(ctx)
		if !ok {
			render.Unauthorized(w, errLoginRequired)
			return
		}

		var params struct {
			PositionID string `json:"position_id" valid:"required"`
			Amount     string `json:"amount" valid:"required"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		amount, err := decimal.NewFromString(params.Amount)
		if err != nil {
			render.BadRequest(w, core.ErrInvalidAmount)
			return
		}

		position, err := lendingService.Repay(ctx, user.ID, params.PositionID, amount)
		if err != nil {
			handleOperationError(w, err)
			return
		}

		render.JSON(w, position)
	}
}
