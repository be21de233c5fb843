package cmd

import (
	"fmt"

	"querry/viewmodel"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database location, schema version and the startup page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		version, dirty, err := current.store.SchemaVersion()
		if err != nil {
			return err
		}
		count, err := current.store.CountCollections(cmd.Context())
		if err != nil {
			return err
		}
		page := "welcome"
		if viewmodel.StartPage(count) == viewmodel.PageCollections {
			page = "collections"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Database:    %s\n", current.store.Path())
		fmt.Fprintf(out, "Schema:      v%d (dirty: %t)\n", version, dirty)
		fmt.Fprintf(out, "Collections: %d\n", count)
		fmt.Fprintf(out, "Start page:  %s\n", page)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
