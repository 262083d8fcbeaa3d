package rest

import (
	"net/http"

	"stakelend/core"
	"stakelend/handler/render"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Handle handle rest api request
func Handle(
	pools core.IPoolStore,
	ops core.IOperationStore,
	poolz core.IPoolService,
	keepers core.IKeeperService,
	stakings core.IStakingService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	router.Route("/pools", func(r chi.Router) {
		r.Get("/", listPoolsHandler(pools, poolz))
		r.Get("/{asset}", poolHandler(poolz))
		r.Get("/{asset}/redemption", poolRedemptionHandler(poolz))
		r.Get("/{asset}/operations", operationsHandler(ops))
	})

	router.Route("/keeper", func(r chi.Router) {
		r.Get("/apy", apyHandler(keepers))
		r.Get("/validators/{validator}", seriesHandler(keepers))
	})

	router.Get("/staking/redemption", stakingRedemptionHandler(stakings))

	return router
}
