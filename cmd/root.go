package cmd

import (
	"github.com/flightify/flightify/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flightify",
	Short: "Aircraft layout matching quiz",
	Long:  "Flightify: place crew, passengers and parts into the right zones of an aircraft, then see how you did.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite attempt log (overrides FLIGHTIFY_DB env var)")
	pf.String("catalog", "", "Catalog file (.json/.yaml) to use instead of the built-in aircraft")
	pf.String("bank", "", "Item bank strategy: dedup or per-occurrence")
	pf.String("log-level", "", "Log level: DEBUG, INFO, WARN, ERROR")
	pf.String("log-file", "", "Write logs to this file")

	rootCmd.Flags().Bool("no-history", false, "Do not record finished attempts")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then FLIGHTIFY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
