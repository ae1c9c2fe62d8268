package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/timmy/photorama/internal/feed"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Fetch and print one page of photos",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, method, err := opts.setup()
			if err != nil {
				return err
			}
			defer a.Close()

			snap, err := a.Gallery.Refresh(cmd.Context(), method)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				type row struct {
					ID        string `json:"id"`
					Title     string `json:"title"`
					DateTaken string `json:"date_taken"`
					URL       string `json:"url"`
				}
				rows := make([]row, 0, len(snap.Photos))
				for _, p := range snap.Photos {
					rows = append(rows, row{p.ID(), p.Title(), p.DateTaken().Format(feed.DateTakenLayout), p.RemoteURL().String()})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tID\tTAKEN\tTITLE")
			for i, p := range snap.Photos {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, p.ID(), p.DateTaken().Format(feed.DateTakenLayout), p.Title())
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d photos (%s)\n", len(snap.Photos), method)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
