package rest

import (
	"net/http"

	"stakelend/core"
	"stakelend/handler/param"
	"stakelend/handler/render"

	"github.com/go-chi/chi"
)

type operationParams struct {
	From  int64 `json:"from"`
	Limit int   `json:"limit" valid:"range(0|500)"`
}

func operationsHandler(ops core.IOperationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params operationParams
		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		if params.Limit == 0 {
			params.Limit = 50
		}

		items, err := ops.List(r.Context(), chi.URLParam(r, "asset"), params.From, params.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, items)
	}
}
