package rest

import (
	"net/http"

	"stakelend/core"
	"stakelend/handler/param"
	"stakelend/handler/render"
	"stakelend/handler/views"

	"github.com/go-chi/chi"
)

func apyHandler(keepers core.IKeeperService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apy, err := keepers.EstimateAPY(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{"apy": apy})
	}
}

func seriesHandler(keepers core.IKeeperService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		series, err := keepers.Series(r.Context(), chi.URLParam(r, "validator"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.SeriesView(series))
	}
}

func stakingRedemptionHandler(stakings core.IStakingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params redemptionParams
		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		value, err := stakings.RedemptionValue(r.Context(), params.Shares)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"shares": params.Shares,
			"value":  value,
		})
	}
}
