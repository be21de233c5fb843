package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"querry/logger"
	"querry/models"
	"querry/viewmodel"

	"github.com/spf13/cobra"
)

var collectionIcon string

var collectionCmd = &cobra.Command{
	Use:     "collection",
	Short:   "Manage collections",
	Long:    `Allows you to list, search, create, rename, inspect or delete collections.`,
	Aliases: []string{"c", "col"},
}

func printCollections(cmd *cobra.Command, collections []models.Collection, empty string) {
	out := cmd.OutOrStdout()
	if len(collections) == 0 {
		fmt.Fprintln(out, empty)
		return
	}
	list := viewmodel.NewCollectionList(collections)
	writer := new(tabwriter.Writer)
	writer.Init(out, 0, 8, 1, '\t', 0)
	fmt.Fprintln(writer, "ID\tNAME\tICON\tREQUESTS")
	fmt.Fprintln(writer, "--\t----\t----\t--------")
	for _, c := range list.Items() {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%d\n", c.ID, c.Name, c.Icon, c.RequestCount)
	}
	writer.Flush()
}

var collectionListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all collections, newest first",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		collections, err := current.svc.ListCollections(cmd.Context(), "")
		if err != nil {
			return err
		}
		printCollections(cmd, collections, "No collections found in the database.")
		logger.Info("Successfully listed %d collections", len(collections))
		return nil
	},
}

var collectionSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Find collections whose name contains term, ignoring case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collections, err := current.svc.ListCollections(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printCollections(cmd, collections, fmt.Sprintf("No collections match '%s'.", args[0]))
		return nil
	},
}

var collectionCreateCmd = &cobra.Command{
	Use:     "create [name]",
	Short:   "Create a collection (default name \"New Collection\")",
	Aliases: []string{"add"},
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		c, err := current.svc.NewCollection(cmd.Context(), name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully created collection: ID %s, Name '%s', Icon %s\n", c.ID, c.Name, c.Icon)
		return nil
	},
}

var collectionGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := current.svc.GetCollection(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Collection Details:\n")
		fmt.Fprintf(out, "  ID:       %s\n", c.ID)
		fmt.Fprintf(out, "  Name:     %s\n", c.Name)
		fmt.Fprintf(out, "  Icon:     %s\n", c.Icon)
		fmt.Fprintf(out, "  Requests: %d\n", c.RequestCount)
		fmt.Fprintf(out, "  Created:  %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		return nil
	},
}

var collectionRenameCmd = &cobra.Command{
	Use:   "rename [id] [name]",
	Short: "Rename a collection, optionally changing its icon",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := current.svc.GetCollection(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		upd := models.CollectionUpdate{Name: args[1], Icon: c.Icon, RequestCount: c.RequestCount}
		if icon := strings.TrimSpace(collectionIcon); icon != "" {
			if _, err := current.icons.Resolve(icon); err != nil {
				return err
			}
			upd.Icon = icon
		}
		c, err = current.svc.UpdateCollection(cmd.Context(), args[0], upd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Collection %s is now '%s' (%s)\n", c.ID, c.Name, c.Icon)
		return nil
	},
}

var collectionDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Short:   "Delete a collection together with its requests and headers",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.svc.DeleteCollection(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Collection %s deleted.\n", args[0])
		return nil
	},
}

func init() {
	collectionRenameCmd.Flags().StringVar(&collectionIcon, "icon", "", "icon file name from the icon pack")
	collectionCmd.AddCommand(collectionListCmd, collectionSearchCmd, collectionCreateCmd,
		collectionGetCmd, collectionRenameCmd, collectionDeleteCmd)
	rootCmd.AddCommand(collectionCmd)
}
