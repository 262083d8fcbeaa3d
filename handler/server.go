package handler

import (
	"net/http"

	"stakelend/core"
	"stakelend/handler/render"
	"stakelend/handler/rest"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	pools    core.IPoolStore
	ops      core.IOperationStore
	poolz    core.IPoolService
	keepers  core.IKeeperService
	stakings core.IStakingService
}

// New new server function
func New(
	pools core.IPoolStore,
	ops core.IOperationStore,
	poolz core.IPoolService,
	keepers core.IKeeperService,
	stakings core.IStakingService,
) Server {
	return Server{
		pools:    pools,
		ops:      ops,
		poolz:    poolz,
		keepers:  keepers,
		stakings: stakings,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(s.pools, s.ops, s.poolz, s.keepers, s.stakings))
	return r
}
