package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flightify/flightify/internal/version"
)

// appVersion is set via -ldflags at build time.
var appVersion = version.Dev

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "flightify", appVersion)

		other, _ := cmd.Flags().GetString("check")
		if other == "" {
			return nil
		}

		status, err := version.Compare(appVersion, other)
		if errors.Is(err, version.ErrDevBuild) {
			fmt.Fprintln(out, "Development build; nothing to compare.")
			return nil
		}
		if err != nil {
			return err
		}

		switch status {
		case version.Older:
			fmt.Fprintf(out, "%s is available.\n", other)
		case version.Newer:
			fmt.Fprintf(out, "Running a newer version than %s.\n", other)
		default:
			fmt.Fprintln(out, "Up to date.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().String("check", "", "Compare with this version (e.g. v1.2.0)")
}
