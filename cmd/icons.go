package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var iconsCmd = &cobra.Command{
	Use:   "icons",
	Short: "Inspect the collection icon pack",
}

var iconsListCmd = &cobra.Command{
	Use:     "list [filter]",
	Short:   "List the icons available for collections, optionally filtered by name",
	Aliases: []string{"ls"},
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter string
		if len(args) == 1 {
			filter = args[0]
		}
		names, err := current.icons.Search(filter)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(names) == 0 && filter != "" {
			fmt.Fprintf(out, "No icons match %q.\n", filter)
			return nil
		}
		if len(names) == 0 {
			fmt.Fprintf(out, "No icons in %s; new collections use %s.\n", current.icons.Dir(), current.icons.Fallback())
			return nil
		}
		for _, n := range names {
			fmt.Fprintln(out, n)
		}
		return nil
	},
}

var iconsResolveCmd = &cobra.Command{
	Use:   "resolve [name]",
	Short: "Print the file backing an icon name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := current.icons.Resolve(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	iconsCmd.AddCommand(iconsListCmd, iconsResolveCmd)
	rootCmd.AddCommand(iconsCmd)
}
