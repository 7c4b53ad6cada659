package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"synthdeck/internal/report"
)

var (
	pdfOut     string
	pdfTimeout time.Duration
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Render the current document as a paginated PDF report",
	Args:  cobra.NoArgs,
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

		path := pdfOut
		if path == "" {
			path = report.Filename(time.Now())
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), pdfTimeout)
		defer cancel()

		if err := report.Generate(ctx, doc.Themes, f, newLogger()); err != nil {
			os.Remove(path)
			return err
		}

		info, err := f.Stat()
		if err == nil {
			fmt.Printf("Report written to %s (%.1f KB)\n", path, float64(info.Size())/1024)
		} else {
			fmt.Printf("Report written to %s\n", path)
		}
		return nil
	},
}

func init() {
	pdfCmd.Flags().StringVarP(&pdfOut, "out", "o", "", "Output path (default research-synthesis-report-<date>.pdf)")
	pdfCmd.Flags().DurationVar(&pdfTimeout, "timeout", report.DefaultTimeout, "Abandon rendering after this long")
	rootCmd.AddCommand(pdfCmd)
}
