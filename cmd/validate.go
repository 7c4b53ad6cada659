package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"synthdeck/internal/validate"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a JSON file against the Theme/Cluster/Entity schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		result := validate.Validate(string(raw))

		if validateJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
		} else {
			printResult(result)
		}

		if !result.IsValid {
			return fmt.Errorf("validation failed: %d error(s)", len(result.Errors))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(validateCmd)
}

func printResult(result validate.Result) {
	fmt.Println(validate.Summary(result))

	if len(result.Errors) > 0 {
		fmt.Printf("\nErrors:\n")
		for _, issue := range result.Errors {
			fmt.Printf("  %s: %s\n", issue.FieldPath, issue.Message)
		}
	}
	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, issue := range result.Warnings {
			fmt.Printf("  %s: %s\n", issue.FieldPath, issue.Message)
		}
	}
}
