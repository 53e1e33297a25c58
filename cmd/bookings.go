package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/marcus/bookmodal/internal/db"
	"github.com/marcus/bookmodal/internal/output"
	"github.com/spf13/cobra"
)

var bookingsCmd = &cobra.Command{
	Use:     "bookings",
	Aliases: []string{"ls"},
	Short:   "List recorded booking requests, newest first",
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		jsonOut, _ := cmd.Flags().GetBool("json")

		store, err := db.Open(getBaseDir())
		if err != nil {
			output.Error("failed to open outbox: %v", err)
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		rows, err := store.ListSubmissions(ctx, limit)
		if err != nil {
			return fmt.Errorf("list bookings: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		}

		if len(rows) == 0 {
			fmt.Fprintln(out, "No bookings recorded")
			return nil
		}

		output.BookingsTable(out, rows, time.Now())
		total, err := store.CountSubmissions(ctx)
		if err == nil && total > len(rows) {
			fmt.Fprintf(out, "Showing %d of %d (use --limit)\n", len(rows), total)
		}
		return nil
	},
}

func init() {
	bookingsCmd.Flags().IntP("limit", "n", 20, "Maximum bookings to show (0 for all)")
	bookingsCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(bookingsCmd)
}
