package cmd

import (
	"fmt"

	"crypto-trade-journal/internal/alerts"
	"crypto-trade-journal/internal/market"

	"github.com/spf13/cobra"
)

func newAlertsCmd(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "alerts",
		Short: "Manage price alerts",
	}

	check := &cobra.Command{
		Use:   "check",
		Short: "Run one alert pass against live prices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open()
			if err != nil {
				return err
			}
			defer e.close()

			prices := market.NewClient(e.cfg.Market, e.log)
			w := alerts.NewWatcher(e.log, e.store, prices, alerts.NotifierFor(e.cfg.Alerts, e.log), alerts.PollInterval(e.cfg.Alerts))

			fired, err := w.CheckOnce(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d alert(s) fired\n", fired)
			return nil
		},
	}

	c.AddCommand(check)
	return c
}
