package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flightify/flightify/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect aircraft configurations",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configurations (built-in, or from --catalog)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg.CatalogPath)
		if err != nil {
			return err
		}

		verbose, _ := cmd.Flags().GetBool("zones")
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%-10s  %-24s  %5s  %5s\n", "KEY", "LABEL", "ZONES", "ITEMS")
		fmt.Fprintln(out, strings.Repeat("─", 50))
		for _, e := range cat.List() {
			c, err := cat.Get(e.Key)
			if err != nil {
				return err
			}
			items := 0
			for _, z := range c.Zones {
				items += len(z.Required)
			}
			fmt.Fprintf(out, "%-10s  %-24s  %5d  %5d\n", c.Key, c.Label, len(c.Zones), items)

			if verbose {
				for _, z := range c.Zones {
					fmt.Fprintf(out, "    %-8s %-16s %s\n", z.ID, z.Label, strings.Join(z.Required, ", "))
				}
			}
		}
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalog file against the schema and structural rules",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d configurations OK\n", args[0], cat.Len())
		for _, e := range cat.List() {
			c, _ := cat.Get(e.Key)
			if shared := catalog.SharedTokens(c); len(shared) > 0 {
				fmt.Fprintf(out, "  note: %s offers %s once under the dedup bank\n",
					e.Key, strings.Join(shared, ", "))
			}
			if repeated := catalog.RepeatedTokens(c); len(repeated) > 0 {
				fmt.Fprintf(out, "  note: %s repeats %s within one zone, which can never be correct\n",
					e.Key, strings.Join(repeated, ", "))
			}
		}
		return nil
	},
}

func init() {
	catalogListCmd.Flags().Bool("zones", false, "Show each configuration's zones")
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}
