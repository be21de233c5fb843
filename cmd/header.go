package cmd

import (
	"fmt"
	"text/tabwriter"

	"querry/models"

	"github.com/spf13/cobra"
)

var headerCmd = &cobra.Command{
	Use:   "header",
	Short: "Manage the default headers of a collection",
}

var headerListCmd = &cobra.Command{
	Use:     "list [collection-id]",
	Short:   "List the headers of a collection",
	Aliases: []string{"ls"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headers, err := current.svc.ListHeaders(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(headers) == 0 {
			fmt.Fprintln(out, "No headers for this collection.")
			return nil
		}
		writer := new(tabwriter.Writer)
		writer.Init(out, 0, 8, 1, '\t', 0)
		fmt.Fprintln(writer, "ID\tNAME\tVALUE")
		fmt.Fprintln(writer, "--\t----\t-----")
		for _, h := range headers {
			fmt.Fprintf(writer, "%s\t%s\t%s\n", h.ID, h.Name, h.Value)
		}
		writer.Flush()
		return nil
	},
}

var headerAddCmd = &cobra.Command{
	Use:   "add [collection-id] [name] [value]",
	Short: "Add a header to a collection",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := current.svc.AddHeader(cmd.Context(), args[0], models.HeaderRequest{Name: args[1], Value: args[2]})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully added header: ID %s, %s: %s\n", h.ID, h.Name, h.Value)
		return nil
	},
}

var headerDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Short:   "Delete a header",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.svc.DeleteHeader(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Header %s deleted.\n", args[0])
		return nil
	},
}

func init() {
	headerCmd.AddCommand(headerListCmd, headerAddCmd, headerDeleteCmd)
	rootCmd.AddCommand(headerCmd)
}
