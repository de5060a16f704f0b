package cmd

import (
	"encoding/json"
	"fmt"

	"crypto-trade-journal/internal/calc"
	"crypto-trade-journal/internal/models"

	"github.com/spf13/cobra"
)

func newCalcCmd() *cobra.Command {
	var (
		in         calc.Inputs
		direction  string
		takeProfit float64
		exitPrice  float64
		tolerance  float64
		asJSON     bool
	)

	c := &cobra.Command{
		Use:   "calc",
		Short: "Size a position and compute R:R and P/L",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Direction = models.Direction(direction)
			if cmd.Flags().Changed("tp") {
				in.TakeProfit = &takeProfit
			}
			if cmd.Flags().Changed("exit") {
				in.ExitPrice = &exitPrice
			}
			if in.Direction != "" && !in.Direction.Valid() {
				return fmt.Errorf("direction must be Long or Short, got %q", direction)
			}

			d := calc.NewCalculator(tolerance).Derive(in)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			}

			fmt.Fprintf(out, "Risk:          $%.2f\n", d.RiskDollar)
			fmt.Fprintf(out, "Position size: %s\n", formatSize(d.PositionSize))
			if d.RiskRewardRatio != nil {
				fmt.Fprintf(out, "Risk:Reward:   1:%.2f\n", *d.RiskRewardRatio)
			}
			if d.Outcome != nil {
				fmt.Fprintf(out, "P/L:           %s (%.2f%%)\n", money(d.Outcome.PLDollar), d.Outcome.PLPercent)
				fmt.Fprintf(out, "Result:        %s\n", d.Outcome.Result)
				if d.Outcome.Duration != "" {
					fmt.Fprintf(out, "Duration:      %s\n", d.Outcome.Duration)
				}
			}
			return nil
		},
	}

	f := c.Flags()
	f.Float64Var(&in.AccountBalance, "balance", 0, "account balance")
	f.Float64Var(&in.RiskPercent, "risk", 1, "risk percent of the balance")
	f.StringVar(&direction, "direction", "", "Long or Short")
	f.Float64Var(&in.EntryPrice, "entry", 0, "entry price")
	f.Float64Var(&in.StopLoss, "stop", 0, "stop loss price")
	f.Float64Var(&takeProfit, "tp", 0, "take profit price")
	f.Float64Var(&exitPrice, "exit", 0, "exit price of a closed trade")
	f.StringVar(&in.EntryTime, "entry-time", "", "entry clock time HH:MM")
	f.StringVar(&in.ExitTime, "exit-time", "", "exit clock time HH:MM")
	f.Float64Var(&tolerance, "break-even", 0, "absolute P/L treated as break even")
	f.BoolVar(&asJSON, "json", false, "print JSON")
	return c
}

func formatSize(v float64) string {
	return fmt.Sprintf("%.8g", v)
}
