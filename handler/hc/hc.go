package hc

import (
	"net/http"
	"time"

	"stakelend/core"
	"stakelend/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle health check reporting uptime and the ledger epoch
func Handle(version string, epochs core.IEpochService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Get("/", check(version, epochs))
	return r
}

func check(version string, epochs core.IEpochService) http.HandlerFunc {
	started := time.Now()

	return func(w http.ResponseWriter, r *http.Request) {
		epoch, err := epochs.CurrentEpoch(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"epoch":   epoch,
			"uptime":  time.Since(started).Truncate(time.Second).String(),
			"version": version,
		})
	}
}
