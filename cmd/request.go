package cmd

import (
	"fmt"
	"text/tabwriter"

	"querry/models"

	"github.com/spf13/cobra"
)

var (
	newRequestProtocol string
	requestProtocol    string
	requestName        string
	requestURL         string
	requestMethod      string
)

var requestCmd = &cobra.Command{
	Use:     "request",
	Short:   "Manage the saved requests of a collection",
	Aliases: []string{"r", "req"},
}

var requestListCmd = &cobra.Command{
	Use:     "list [collection-id]",
	Short:   "List the requests of a collection, newest first",
	Aliases: []string{"ls"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := current.svc.GetCollection(cmd.Context(), args[0]); err != nil {
			return err
		}
		requests, err := current.svc.ListRequests(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(requests) == 0 {
			fmt.Fprintln(out, "No requests in this collection.")
			return nil
		}
		writer := new(tabwriter.Writer)
		writer.Init(out, 0, 8, 1, '\t', 0)
		fmt.Fprintln(writer, "ID\tNAME\tPROTOCOL\tMETHOD\tURL")
		fmt.Fprintln(writer, "--\t----\t--------\t------\t---")
		for _, r := range requests {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Protocol, r.HTTPMethod, r.URL)
		}
		writer.Flush()
		return nil
	},
}

var requestCreateCmd = &cobra.Command{
	Use:     "create [collection-id]",
	Short:   "Add a new GET request to a collection",
	Aliases: []string{"add"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		protocol, err := models.ParseProtocol(newRequestProtocol)
		if err != nil {
			return err
		}
		r, err := current.svc.NewRequest(cmd.Context(), protocol, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Successfully created request: ID %s (%s %s)\n", r.ID, r.Protocol, r.HTTPMethod)
		return nil
	},
}

var requestGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := current.svc.GetRequest(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Request Details:\n")
		fmt.Fprintf(out, "  ID:         %s\n", r.ID)
		fmt.Fprintf(out, "  Name:       %s\n", r.Name)
		fmt.Fprintf(out, "  Protocol:   %s\n", r.Protocol)
		fmt.Fprintf(out, "  Method:     %s\n", r.HTTPMethod)
		fmt.Fprintf(out, "  URL:        %s\n", r.URL)
		fmt.Fprintf(out, "  Collection: %s\n", r.CollectionID)
		return nil
	},
}

var requestUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Change name, URL, protocol or method of a request",
	Long: `Only the flags that are given are written. Methods are GET, POST, PUT and DEL;
protocols are HTTP, WS, GRPC and GQL.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var upd models.RequestUpdate
		flags := cmd.Flags()
		if flags.Changed("name") {
			upd.Name = &requestName
		}
		if flags.Changed("url") {
			upd.URL = &requestURL
		}
		if flags.Changed("protocol") {
			p, err := models.ParseProtocol(requestProtocol)
			if err != nil {
				return err
			}
			upd.Protocol = &p
		}
		if flags.Changed("method") {
			m, err := models.ParseHTTPMethod(requestMethod)
			if err != nil {
				return err
			}
			upd.HTTPMethod = &m
		}
		if upd.Empty() {
			return fmt.Errorf("%w: nothing to update, pass --name, --url, --protocol or --method", models.ErrValidation)
		}
		r, err := current.svc.UpdateRequest(cmd.Context(), args[0], upd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Request %s updated: '%s' %s %s %s\n", r.ID, r.Name, r.Protocol, r.HTTPMethod, r.URL)
		return nil
	},
}

var requestDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Short:   "Delete a request",
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.svc.DeleteRequest(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Request %s deleted.\n", args[0])
		return nil
	},
}

func init() {
	requestCreateCmd.Flags().StringVar(&newRequestProtocol, "protocol", string(models.ProtocolHTTP), "protocol: HTTP, WS, GRPC or GQL")

	requestUpdateCmd.Flags().StringVar(&requestName, "name", "", "new request name")
	requestUpdateCmd.Flags().StringVar(&requestURL, "url", "", "new request URL")
	requestUpdateCmd.Flags().StringVar(&requestProtocol, "protocol", "", "protocol: HTTP, WS, GRPC or GQL")
	requestUpdateCmd.Flags().StringVar(&requestMethod, "method", "", "method: GET, POST, PUT or DEL")

	requestCmd.AddCommand(requestListCmd, requestCreateCmd, requestGetCmd, requestUpdateCmd, requestDeleteCmd)
	rootCmd.AddCommand(requestCmd)
}
