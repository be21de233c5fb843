package cmd

import (
	"fmt"
	"os"

	"querry/logger"
	"querry/transfer"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [collection-id]",
	Short: "Write a collection with its headers and requests as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := transfer.ExportCollection(cmd.Context(), current.store, args[0])
		if err != nil {
			return err
		}
		if exportOutput == "" || exportOutput == "-" {
			return transfer.WriteYAML(cmd.OutOrStdout(), doc)
		}
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		defer f.Close()
		if err := transfer.WriteYAML(f, doc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported '%s' (%d requests) to %s\n", doc.Name, len(doc.Requests), exportOutput)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file.yaml]",
	Short: "Create a new collection from an exported YAML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()
		doc, err := transfer.ReadYAML(f)
		if err != nil {
			return err
		}
		c, err := transfer.Import(cmd.Context(), current.svc, doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported collection: ID %s, Name '%s', %d requests\n", c.ID, c.Name, c.RequestCount)
		return nil
	},
}

var importPostmanCmd = &cobra.Command{
	Use:   "import-postman [file.json]",
	Short: "Create a new collection from a Postman v2.1 collection export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		doc, err := transfer.ParsePostman(data)
		if err != nil {
			return err
		}
		c, err := transfer.Import(cmd.Context(), current.svc, doc)
		if err != nil {
			return err
		}
		logger.Info("Postman collection %s imported as %s", args[0], c.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "Imported collection: ID %s, Name '%s', %d requests\n", c.ID, c.Name, c.RequestCount)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(exportCmd, importCmd, importPostmanCmd)
}
