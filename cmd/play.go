package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flightify/flightify/internal/app"
	"github.com/flightify/flightify/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive test",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	playCmd.Flags().Bool("no-history", false, "Do not record finished attempts")
}

// runApp opens the attempt log, builds the engine, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer log.Sync()

	eng, err := newEngine(cfg, log)
	if err != nil {
		return err
	}
	opts := app.Options{Engine: eng, Logger: log}

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		opts.Attempts = st.AttemptRepo()
		log.Infow("attempt log opened", "path", dbPath)
	}

	return app.Run(opts)
}
