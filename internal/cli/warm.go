package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

func newWarmCmd(opts *rootOptions) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Fetch a page of photos and cache every image",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, method, err := opts.setup()
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := a.Gallery.Warm(cmd.Context(), method, workers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ids := make([]string, 0, len(stats.Failures))
			for id := range stats.Failures {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Fprintf(out, "failed %s: %v\n", id, stats.Failures[id])
			}
			fmt.Fprintf(out, "warmed %d/%d images (%d failed) in %s\n",
				stats.Fetched, stats.Total, stats.Failed, stats.EndTime.Sub(stats.StartTime).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "concurrent image downloads")
	return cmd
}
