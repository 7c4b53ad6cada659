package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"synthdeck/internal/search"
)

var (
	searchJSON      bool
	searchLimit     int
	searchThreshold float64
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search across themes, clusters and entities",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		s, err := OpenStore()
		if err != nil {
			return err
		}
		defer s.Close()

		doc, err := LoadDocument(s)
		if err != nil {
			return err
		}

		opts := search.Options{MaxDissimilarity: searchThreshold}
		results := search.Search(doc.Themes, query, opts)
		if searchLimit > 0 && len(results) > searchLimit {
			results = results[:searchLimit]
		}

		if searchJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}

		if len(results) == 0 {
			fmt.Printf("No matches for %q\n", query)
			return nil
		}
		for _, r := range results {
			printSearchResult(r)
		}
		fmt.Printf("\n%d result(s)\n", len(results))
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output as JSON")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum number of results (0 = all)")
	searchCmd.Flags().Float64Var(&searchThreshold, "threshold", search.DefaultMaxDissimilarity, "Match looseness: lower is stricter, 1 matches everything, 0 uses the default")
	rootCmd.AddCommand(searchCmd)
}

// printSearchResult shows one match with its breadcrumb and a snippet
// centered on the first matched span.
func printSearchResult(r search.Result) {
	switch r.Kind {
	case search.KindTheme:
		fmt.Printf("[theme]   %s\n", r.Theme.Title)
	case search.KindCluster:
		fmt.Printf("[cluster] %s > %s\n", r.Theme.Title, r.Cluster.Name)
	case search.KindEntity:
		fmt.Printf("[entity]  %s > %s > %s\n", r.Theme.Title, r.Cluster.Name, r.Entity.ID)
	}

	if len(r.FieldMatches) == 0 {
		return
	}
	match := r.FieldMatches[0]
	text := fieldValue(r, match.Field)
	snippet := search.MatchPreview(text, match.Spans, 100)
	fmt.Printf("          %s: %s\n", match.Field, snippet)
}

// fieldValue resolves a matched field name back to its text.
func fieldValue(r search.Result, field string) string {
	switch field {
	case "title":
		return r.Theme.Title
	case "description":
		return r.Theme.Description
	case "name":
		return r.Cluster.Name
	case "summary":
		return r.Cluster.Summary
	case "statement":
		return r.Entity.Statement
	case "verbatimQuote":
		return r.Entity.VerbatimQuote
	case "context":
		return r.Entity.Context
	case "source":
		return r.Entity.Source
	}
	return ""
}
