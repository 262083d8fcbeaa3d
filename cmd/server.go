package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"stakelend/handler"
	"stakelend/handler/hc"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newMux(s *services) http.Handler {
	mux := chi.NewMux()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(cors.AllowAll().Handler)
	mux.Use(logger.WithRequestID)
	mux.Use(middleware.Logger)
	mux.Use(middleware.NewCompressor(5).Handler)

	mux.Mount("/hc", hc.Handle(rootCmd.Version, s.epochs))
	mux.Handle("/metrics", promhttp.Handler())

	server := handler.New(s.pools, s.ops, s.poolz, s.keepers, s.stakings)
	mux.Mount("/api", server.HandleRestAPI())

	return mux
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "serve the pool, keeper and staking read api",
	Run: func(cmd *cobra.Command, args []string) {
		s := provideServices()
		defer s.db.Close()

		port, _ := cmd.Flags().GetInt("port")
		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newMux(s),
		}

		done := make(chan struct{})
		ctx := signal.WithContext(cmd.Context())
		go func() {
			defer close(done)
			<-ctx.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}
		}()

		logrus.Infoln("serve at", server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
}
