package rest

import (
	"net/http"

	"stakelend/core"
	"stakelend/handler/param"
	"stakelend/handler/render"
	"stakelend/handler/views"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

func listPoolsHandler(pools core.IPoolStore, poolz core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		all, err := pools.All(ctx)
		if err != nil {
			render.Error(w, err)
			return
		}

		items := make([]views.Pool, 0, len(all))
		for _, pool := range all {
			quote, err := poolz.Quote(ctx, pool.Underlying)
			if err != nil {
				logger.FromContext(ctx).WithError(err).Errorln("quote", pool.Underlying)
				continue
			}

			items = append(items, views.PoolFromQuote(quote))
		}

		render.JSON(w, items)
	}
}

func poolHandler(poolz core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quote, err := poolz.Quote(r.Context(), chi.URLParam(r, "asset"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.PoolFromQuote(quote))
	}
}

type redemptionParams struct {
	Shares decimal.Decimal `json:"shares"`
}

func poolRedemptionHandler(poolz core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params redemptionParams
		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		asset := chi.URLParam(r, "asset")
		value, err := poolz.RedemptionValue(r.Context(), asset, params.Shares)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"asset":  asset,
			"shares": params.Shares,
			"value":  value,
		})
	}
}
