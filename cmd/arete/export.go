// ABOUTME: CLI commands for exporting and importing all data.
// ABOUTME: Exports progress documents and tasks as JSON or YAML.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/arete/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all progress and tasks",
	Long: `Export every progress document and task to JSON or YAML.

Examples:
  arete export
  arete export --format yaml
  arete export -o backup.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := repo.GetAllData()
		if err != nil {
			return fmt.Errorf("failed to export data: %w", err)
		}

		var out []byte
		switch exportFormat {
		case "json":
			out, err = storage.ExportJSON(data)
		case "yaml":
			out, err = storage.ExportYAML(data)
		default:
			return fmt.Errorf("invalid format %q (use json or yaml)", exportFormat)
		}
		if err != nil {
			return fmt.Errorf("failed to render export: %w", err)
		}

		if exportOutput == "" {
			fmt.Println(string(out))
			return nil
		}
		if err := os.WriteFile(exportOutput, out, 0600); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}
		color.Green("✓ Exported %d progress documents and %d tasks to %s",
			len(data.Progress), len(data.Tasks), exportOutput)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a JSON export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}
		var data storage.ExportData
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("failed to parse import file: %w", err)
		}
		if err := repo.ImportData(&data); err != nil {
			return fmt.Errorf("failed to import data: %w", err)
		}
		color.Green("✓ Imported %d progress documents and %d tasks",
			len(data.Progress), len(data.Tasks))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json, yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd, importCmd)
}
