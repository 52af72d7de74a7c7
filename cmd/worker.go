package cmd

import (
	"xplend/worker"
	"xplend/worker/rates"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run xplend background workers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		poolStore := providePoolStore(database)
		poolService := providePoolService(poolStore)

		workers := []worker.IJob{
			rates.New(provideConfig(), database, poolStore, poolService),
		}

		ctx = signal.WithContext(ctx)

		var g errgroup.Group
		for _, w := range workers {
			w := w
			g.Go(w.Start)
		}

		if err := g.Wait(); err != nil {
			log.WithError(err).Error("start workers failed")
			return
		}

		<-ctx.Done()

		for _, w := range workers {
			if err := w.Stop(); err != nil {
				log.WithError(err).Error("stop worker failed")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
