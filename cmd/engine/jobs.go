package main

import (
	"encoding/json"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"jobfinder-engine/internal/directory"
)

var jobsQuery string

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Fetch the job list once and print it as JSON",
	Long: `Fetch the configured source once, normalize every listing and print the
visible jobs. With --query only jobs whose title contains the text are printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = rt.log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		dir := newDirectory(rt.cfg, rt.log)
		st := dir.Refresh(ctx)
		if st.Status != directory.StatusReady {
			return errors.New(st.Message)
		}
		if jobsQuery != "" {
			st, _ = dir.SetSearchText(jobsQuery)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(st.Jobs)
	},
}

func init() {
	jobsCmd.Flags().StringVarP(&jobsQuery, "query", "q", "", "case-insensitive title filter")
	rootCmd.AddCommand(jobsCmd)
}
