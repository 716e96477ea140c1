package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/twoong-studio/portfolio-backend/internal/portfolio/sheets"
)

func newFetchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <table>",
		Short: "Fetch one table and print the mapped records as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := sheets.ParseTable(args[0])
			if err != nil {
				return err
			}
			svc, err := opts.service()
			if err != nil {
				return err
			}

			items, _, err := svc.Inspect(cmd.Context(), table)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", table, err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(items)
		},
	}
}

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Report kept and dropped rows for every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.service()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TABLE\tKEPT\tDROPPED\tNOTE")
			failed := 0
			for _, table := range sheets.Tables {
				_, report, err := svc.Inspect(cmd.Context(), table)
				switch {
				case errors.Is(err, sheets.ErrUnknownTable):
					fmt.Fprintf(w, "%s\t-\t-\tnot configured\n", table)
					continue
				case err != nil:
					failed++
					fmt.Fprintf(w, "%s\t-\t-\t%v\n", table, err)
					continue
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t\n", table, report.Kept, len(report.Dropped))
				for _, d := range report.Dropped {
					fmt.Fprintf(w, "\t\t\tline %d: %s\n", d.Line, d.Reason)
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d table(s) could not be read", failed)
			}
			return nil
		},
	}
}
