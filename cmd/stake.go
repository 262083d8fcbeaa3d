package cmd

import (
	"stakelend/core"

	"github.com/MakeNowJust/heredoc"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var stakeCmd = &cobra.Command{
	Use:   "stake",
	Short: "staking pool cmd group",
	Example: heredoc.Doc(`
		$stakelend stake contribute validator_a 100
		$stakelend stake redeem validator_a 40
		$stakelend stake value 40
	`),
}

var contributeCmd = &cobra.Command{
	Use:   "contribute <validator> <amount>",
	Short: "stake with a validator for pool shares",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := provideServices()
		defer s.db.Close()

		amount, err := parseAmount(args[1])
		if err != nil {
			cmd.PrintErrln("invalid amount:", err)
			return
		}

		shares, err := s.stakings.Contribute(cmd.Context(), core.NewBucket(cfg.Staking.StakeToken, amount), args[0])
		if err != nil {
			cmd.PrintErrln("contribute:", err)
			return
		}

		cmd.Println("shares:", shares.Amount, shares.Resource)
	},
}

var redeemCmd = &cobra.Command{
	Use:   "redeem <validator> <shares>",
	Short: "burn pool shares and unstake their value from a validator",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := provideServices()
		defer s.db.Close()

		shares, err := parseAmount(args[1])
		if err != nil {
			cmd.PrintErrln("invalid shares:", err)
			return
		}

		receipt, err := s.stakings.Redeem(cmd.Context(), core.NewBucket(cfg.Staking.ShareToken, shares), args[0])
		if err != nil {
			cmd.PrintErrln("redeem:", err)
			return
		}

		printView(cmd, receipt)
	},
}

var stakeValueCmd = &cobra.Command{
	Use:   "value <shares>",
	Short: "stake value of pool shares",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := provideServices()
		defer s.db.Close()

		shares, err := decimal.NewFromString(args[0])
		if err != nil {
			cmd.PrintErrln("invalid shares:", err)
			return
		}

		value, err := s.stakings.RedemptionValue(cmd.Context(), shares)
		if err != nil {
			cmd.PrintErrln("redemption value:", err)
			return
		}

		cmd.Println("value:", value)
	},
}

func init() {
	rootCmd.AddCommand(stakeCmd)
	stakeCmd.AddCommand(contributeCmd, redeemCmd, stakeValueCmd)
}
