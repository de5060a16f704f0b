package cmd

import (
	"fmt"
	"text/tabwriter"

	"crypto-trade-journal/internal/stats"
	"crypto-trade-journal/internal/store"

	"github.com/spf13/cobra"
)

func newStatsCmd(opts *options) *cobra.Command {
	var (
		user  string
		group string
		order string
		from  string
		to    string
	)

	c := &cobra.Command{
		Use:   "stats",
		Short: "Show journal statistics for a user",
		Long: fmt.Sprintf(`Without --group a summary of every closed trade is shown.
With --group the closed trades are broken down by one of: %v`, stats.Groups()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open()
			if err != nil {
				return err
			}
			defer e.close()

			f := store.TradeFilter{From: from, To: to}
			out := cmd.OutOrStdout()

			if group == "" {
				s, err := e.journal.Summary(cmd.Context(), user, f)
				if err != nil {
					return err
				}
				printSummary(cmd, s)
				return nil
			}

			sortBy, ok := stats.ParseOrder(order)
			if !ok {
				return fmt.Errorf("sort must be pl, count or key, got %q", order)
			}
			views, err := e.journal.Breakdown(cmd.Context(), user, group, sortBy, f)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tTRADES\tWINS\tLOSSES\tWIN%\tP/L\tAVG R:R")
			for _, v := range views {
				rr := "-"
				if v.AvgRiskReward != nil {
					rr = fmt.Sprintf("%.2f", *v.AvgRiskReward)
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.2f\t%s\t%s\n", v.Key, v.Trades, v.Wins, v.Losses, v.WinRate, money(v.TotalPL), rr)
			}
			return tw.Flush()
		},
	}

	c.Flags().StringVarP(&user, "user", "u", "", "journal owner")
	c.Flags().StringVarP(&group, "group", "g", "", "grouping for a breakdown")
	c.Flags().StringVar(&order, "sort", string(stats.OrderPL), "breakdown order: pl, count or key")
	c.Flags().StringVar(&from, "from", "", "first trade date YYYY-MM-DD")
	c.Flags().StringVar(&to, "to", "", "last trade date YYYY-MM-DD")
	_ = c.MarkFlagRequired("user")
	return c
}

func printSummary(cmd *cobra.Command, s stats.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Trades:        %d (%d closed, %d open)\n", s.TotalTrades, s.ClosedTrades, s.OpenTrades)
	fmt.Fprintf(out, "Wins/Losses:   %d/%d (%d break even)\n", s.Wins, s.Losses, s.BreakEvens)
	fmt.Fprintf(out, "Win rate:      %.2f%%\n", s.WinRate)
	fmt.Fprintf(out, "Total P/L:     %s\n", money(s.TotalPL))
	if s.ProfitFactor != nil {
		fmt.Fprintf(out, "Profit factor: %.2f\n", *s.ProfitFactor)
	}
	if s.AvgRiskReward != nil {
		fmt.Fprintf(out, "Avg R:R:       %.2f\n", *s.AvgRiskReward)
	}
}
