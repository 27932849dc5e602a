package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flightify/flightify/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent finished attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		key, _ := cmd.Flags().GetString("config")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		records, err := s.AttemptRepo().RecentAttempts(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No attempts recorded.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-16s  %-10s  %-24s  %-7s  %s\n",
			"#", "Finished", "Key", "Label", "Score", "Time")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		for _, r := range records {
			if key != "" && r.ConfigurationKey != key {
				continue
			}
			dur := r.FinishedAt.Sub(r.StartedAt)
			fmt.Fprintf(out, "%-5d  %-16s  %-10s  %-24s  %-7s  %d:%02d\n",
				r.Sequence,
				r.FinishedAt.Local().Format("2006-01-02 15:04"),
				r.ConfigurationKey,
				r.ConfigurationLabel,
				fmt.Sprintf("%d/%d", r.Correct, r.Total),
				int(dur.Minutes()), int(dur.Seconds())%60,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of attempts to show (0 = all)")
	historyCmd.Flags().String("config", "", "Only show attempts for this configuration key")
}
