package cmd

import (
	"stakelend/worker"
	"stakelend/worker/accrual"
	"stakelend/worker/keeper"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run keeper and accrual jobs",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)

		s := provideServices()
		defer s.db.Close()

		keeperWorker, err := keeper.New(cfg.App.Location, cfg.Keeper, s.keepers, providePropertyStore(s.db))
		if err != nil {
			log.WithError(err).Fatalln("schedule keeper")
		}

		accrualWorker, err := accrual.New(cfg.App.Location, cfg.Accrual.Spec, s.pools, s.poolz)
		if err != nil {
			log.WithError(err).Fatalln("schedule accrual")
		}

		jobs := []worker.IJob{keeperWorker, accrualWorker}
		for _, job := range jobs {
			_ = job.Start()
		}

		log.Infoln("workers started")
		<-ctx.Done()

		for _, job := range jobs {
			_ = job.Stop()
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
