package cmd

import (
	"fmt"
	"io"
	"os"

	"crypto-trade-journal/internal/store"

	"github.com/spf13/cobra"
)

func newExportCmd(opts *options) *cobra.Command {
	var (
		user string
		out  string
		from string
		to   string
	)

	c := &cobra.Command{
		Use:   "export",
		Short: "Export a user's trades as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open()
			if err != nil {
				return err
			}
			defer e.close()

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				file, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer file.Close()
				w = file
			}

			return e.journal.ExportCSV(cmd.Context(), user, store.TradeFilter{From: from, To: to}, w)
		},
	}

	c.Flags().StringVarP(&user, "user", "u", "", "journal owner")
	c.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	c.Flags().StringVar(&from, "from", "", "first trade date YYYY-MM-DD")
	c.Flags().StringVar(&to, "to", "", "last trade date YYYY-MM-DD")
	_ = c.MarkFlagRequired("user")
	return c
}
