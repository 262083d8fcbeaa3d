package cmd

import (
	"stakelend/handler/views"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
)

var keeperCmd = &cobra.Command{
	Use:   "keeper",
	Short: "validator keeper cmd group",
	Example: heredoc.Doc(`
		$stakelend keeper log --add validator_a --add validator_b
		$stakelend keeper log --remove validator_a
		$stakelend keeper apy
		$stakelend keeper series validator_b
	`),
}

var keeperLogCmd = &cobra.Command{
	Use:   "log",
	Short: "record the tracked validators and change the tracked set",
	Run: func(cmd *cobra.Command, args []string) {
		s := provideServices()
		defer s.db.Close()

		add, _ := cmd.Flags().GetStringSlice("add")
		remove, _ := cmd.Flags().GetStringSlice("remove")

		keeper, err := s.keepers.Log(cmd.Context(), add, remove)
		if err != nil {
			cmd.PrintErrln("keeper log:", err)
			return
		}

		printView(cmd, keeper)
	},
}

var keeperAPYCmd = &cobra.Command{
	Use:   "apy",
	Short: "estimated staking apy across the tracked validators",
	Run: func(cmd *cobra.Command, args []string) {
		s := provideServices()
		defer s.db.Close()

		apy, err := s.keepers.EstimateAPY(cmd.Context())
		if err != nil {
			cmd.PrintErrln("estimate apy:", err)
			return
		}

		cmd.Println("apy:", apy)
	},
}

var keeperSeriesCmd = &cobra.Command{
	Use:   "series <validator>",
	Short: "weekly snapshots of a validator, newest first",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := provideServices()
		defer s.db.Close()

		series, err := s.keepers.Series(cmd.Context(), args[0])
		if err != nil {
			cmd.PrintErrln("series:", err)
			return
		}

		for _, snapshot := range views.SeriesView(series).Snapshots {
			cmd.Printf("week %d epoch %d lsu %s staked %s\n", snapshot.Week, snapshot.Epoch, snapshot.LsuSupply, snapshot.StakedValue)
		}
	},
}

func init() {
	rootCmd.AddCommand(keeperCmd)
	keeperCmd.AddCommand(keeperLogCmd, keeperAPYCmd, keeperSeriesCmd)

	keeperLogCmd.Flags().StringSlice("add", nil, "validators to start tracking")
	keeperLogCmd.Flags().StringSlice("remove", nil, "validators to stop tracking")
}
