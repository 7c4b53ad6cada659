package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"synthdeck/internal/template"
)

var templateOut string

var templateCmd = &cobra.Command{
	Use:   "template <minimal|example|full>",
	Short: "Print or save a canned document showing the import format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := template.Kind(args[0])
		raw, err := template.Render(kind)
		if err != nil {
			return err
		}

		if templateOut == "" {
			fmt.Println(string(raw))
			return nil
		}

		path := templateOut
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, template.Filename(kind))
		}
		if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("Template written to %s\n", path)
		return nil
	},
}

func init() {
	templateCmd.Flags().StringVarP(&templateOut, "out", "o", "", "Write to a file or directory instead of stdout")
	rootCmd.AddCommand(templateCmd)
}
