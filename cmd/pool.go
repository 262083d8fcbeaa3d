package cmd

import (
	"errors"

	"stakelend/core"
	"stakelend/handler/views"

	"github.com/MakeNowJust/heredoc"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "lending pool cmd group",
	Example: heredoc.Doc(`
		$stakelend pool create xrd --share dx-xrd --model default --insurance 0.1
		$stakelend pool deposit xrd 100
		$stakelend pool borrow-stable xrd 50 --rate 0.12
		$stakelend pool repay-stable xrd 60 --principal 50 --rate 0.12 --since 18000
		$stakelend pool show xrd
	`),
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}

	if !amount.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}

	return amount, nil
}

func flagDecimal(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return decimal.Zero, nil
	}

	return decimal.NewFromString(v)
}

var createPoolCmd = &cobra.Command{
	Use:   "create <asset>",
	Short: "create a lending pool",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := provideServices()
		defer s.db.Close()

		share, _ := cmd.Flags().GetString("share")
		if share == "" {
			cmd.PrintErrln("no share token specified")
			return
		}

		model, _ := cmd.Flags().GetString("model")
		insurance, err := flagDecimal(cmd, "insurance")
		if err != nil {
			cmd.PrintErrln("invalid insurance ratio:", err)
			return
		}

		pool := core.NewPool(args[0], share, core.InterestModel(model), insurance)
		if err := s.poolz.Create(cmd.Context(), pool); err != nil {
			cmd.PrintErrln("create pool:", err)
			return
		}

		cmd.Println("pool created:", pool.Underlying)
	},
}

var depositCmd = &cobra.Command{
	Use:   "deposit <asset> <amount>",
	Short: "add liquidity and mint deposit shares",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := provideServices()
		defer s.db.Close()

		amount, err := parseAmount(args[1])
		if err != nil {
			cmd.PrintErrln("invalid amount:", err)
			return
		}

		shares, err := s.poolz.AddLiquidity(cmd.Context(), args[0], core.NewBucket(args[0], amount))
		if err != nil {
			cmd.PrintErrln("deposit:", err)
			return
		}

		cmd.Println("shares:", shares.Amount, shares.Resource)
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw <asset> <shares>",
	Short: "burn deposit shares for their underlying value",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := provideServices()
		defer s.db.Close()

		quote, err := s.poolz.Quote(ctx, args[0])
		if err != nil {
			cmd.PrintErrln("find pool:", err)
			return
		}

		amount, err := parseAmount(args[1])
		if err != nil {
			cmd.PrintErrln("invalid shares:", err)
			return
		}

		value, err := s.poolz.RemoveLiquidity(ctx, args[0], core.NewBucket(quote.Pool.DepositShareToken, amount))
		if err != nil {
			cmd.PrintErrln("withdraw:", err)
			return
		}

		cmd.Println("withdrawn:", value.Amount, value.Resource)
	},
}

var borrowCmd = &cobra.Command{
	Use:   "borrow <asset> <amount>",
	Short: "borrow at the variable rate",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := provideServices()
		defer s.db.Close()

		amount, err := parseAmount(args[1])
		if err != nil {
			cmd.PrintErrln("invalid amount:", err)
			return
		}

		borrowed, err := s.poolz.BorrowVariable(cmd.Context(), args[0], amount)
		if err != nil {
			cmd.PrintErrln("borrow:", err)
			return
		}

		cmd.Println("borrowed:", borrowed.Amount, borrowed.Resource)
	},
}

var borrowStableCmd = &cobra.Command{
	Use:   "borrow-stable <asset> <amount>",
	Short: "borrow at a stable rate, the current quote without --rate",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := provideServices()
		defer s.db.Close()

		amount, err := parseAmount(args[1])
		if err != nil {
			cmd.PrintErrln("invalid amount:", err)
			return
		}

		rate, err := flagDecimal(cmd, "rate")
		if err != nil {
			cmd.PrintErrln("invalid rate:", err)
			return
		}

		borrowed, rate, err := s.poolz.BorrowStable(cmd.Context(), args[0], amount, rate)
		if err != nil {
			cmd.PrintErrln("borrow stable:", err)
			return
		}

		cmd.Println("borrowed:", borrowed.Amount, borrowed.Resource, "at", rate)
	},
}

var repayCmd = &cobra.Command{
	Use:   "repay <asset> <amount>",
	Short: "repay variable rate debt",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := provideServices()
		defer s.db.Close()

		amount, err := parseAmount(args[1])
		if err != nil {
			cmd.PrintErrln("invalid amount:", err)
			return
		}

		shares, err := s.poolz.RepayVariable(cmd.Context(), args[0], core.NewBucket(args[0], amount))
		if err != nil {
			cmd.PrintErrln("repay:", err)
			return
		}

		cmd.Println("loan shares repaid:", shares)
	},
}

var repayStableCmd = &cobra.Command{
	Use:   "repay-stable <asset> <amount>",
	Short: "repay a stable rate loan",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := provideServices()
		defer s.db.Close()

		amount, err := parseAmount(args[1])
		if err != nil {
			cmd.PrintErrln("invalid amount:", err)
			return
		}

		principal, err := flagDecimal(cmd, "principal")
		if err != nil || !principal.IsPositive() {
			cmd.PrintErrln("invalid principal")
			return
		}

		rate, err := flagDecimal(cmd, "rate")
		if err != nil {
			cmd.PrintErrln("invalid rate:", err)
			return
		}

		since, _ := cmd.Flags().GetString("since")
		lastEpoch, err := cast.ToUint64E(since)
		if err != nil {
			cmd.PrintErrln("invalid since epoch:", err)
			return
		}

		loan := core.StableLoan{Principal: principal, Rate: rate, LastEpoch: lastEpoch}
		out, change, err := s.poolz.RepayStable(cmd.Context(), args[0], core.NewBucket(args[0], amount), loan)
		if err != nil {
			cmd.PrintErrln("repay stable:", err)
			return
		}

		printView(cmd, out)
		if !change.IsEmpty() {
			cmd.Println("change:", change.Amount, change.Resource)
		}
	},
}

var showPoolCmd = &cobra.Command{
	Use:   "show <asset>",
	Short: "show the pool at the current epoch",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := provideServices()
		defer s.db.Close()

		quote, err := s.poolz.Quote(cmd.Context(), args[0])
		if err != nil {
			if errors.Is(err, core.ErrPoolNotFound) {
				cmd.PrintErrln("no pool for", args[0])
				return
			}

			cmd.PrintErrln("quote:", err)
			return
		}

		printView(cmd, views.PoolFromQuote(quote))
	},
}

func init() {
	rootCmd.AddCommand(poolCmd)
	poolCmd.AddCommand(createPoolCmd, depositCmd, withdrawCmd, borrowCmd, borrowStableCmd, repayCmd, repayStableCmd, showPoolCmd)

	createPoolCmd.Flags().String("share", "", "deposit share token")
	createPoolCmd.Flags().String("model", core.InterestModelDefault.String(), "interest model, default or stable_coin")
	createPoolCmd.Flags().String("insurance", "0.1", "insurance ratio in [0, 1)")

	borrowStableCmd.Flags().String("rate", "", "stable rate, current quote when empty")

	repayStableCmd.Flags().String("principal", "", "loan principal")
	repayStableCmd.Flags().String("rate", "", "loan rate")
	repayStableCmd.Flags().String("since", "0", "epoch the loan was last settled")
}
