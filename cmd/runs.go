package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/leadgen-cli/internal/store"
)

var (
	runsLimit  int
	runsSource string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List past aggregation runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return eris.Wrap(err, "runs: open store")
		}
		defer st.Close() //nolint:errcheck

		runs, err := st.ListRuns(ctx, store.RunFilter{
			Source: runsSource,
			Limit:  runsLimit,
		})
		if err != nil {
			return eris.Wrap(err, "runs: list")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "max runs to list")
	runsCmd.Flags().StringVar(&runsSource, "source", "", "filter by source (cli or api)")
	rootCmd.AddCommand(runsCmd)
}
