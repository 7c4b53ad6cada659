package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"synthdeck/internal/model"
	"synthdeck/internal/validate"
)

// maxImportErrors is how many error messages an aborted import shows.
const maxImportErrors = 3

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate a JSON file and commit it as the current document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		result := validate.Validate(string(raw))
		if !result.IsValid {
			// Current state stays untouched
			return fmt.Errorf("invalid data format: %s", validate.FirstMessages(result.Errors, maxImportErrors))
		}
		if n := len(result.Warnings); n > 0 {
			fmt.Printf("Imported with %d warning(s). Data may have inconsistencies.\n", n)
		}

		doc, err := model.Decode(raw)
		if err != nil {
			return err
		}

		s, err := OpenStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SaveDocument(doc); err != nil {
			return err
		}

		themes, clusters, entities := doc.Totals()
		fmt.Printf("Imported %d themes, %d clusters, %d findings\n", themes, clusters, entities)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write the current document to a JSON file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := OpenStore()
		if err != nil {
			return err
		}
		defer s.Close()

		doc, err := LoadDocument(s)
		if err != nil {
			return err
		}

		path := exportFilename(time.Now())
		if len(args) == 1 {
			path = args[0]
		}

		raw, err := doc.Encode()
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		fmt.Printf("Exported to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

func exportFilename(t time.Time) string {
	return fmt.Sprintf("research-data-%s.json", t.Format("2006-01-02"))
}
