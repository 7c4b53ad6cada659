package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"synthdeck/internal/model"
)

var (
	showJSON    bool
	showTheme   string
	showCluster string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Browse the hierarchy: all themes, one theme, or one cluster",
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

		if showJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}

		if showTheme == "" {
			printThemes(doc)
			return nil
		}

		theme := doc.FindTheme(showTheme)
		if theme == nil {
			return fmt.Errorf("theme not found: %s", showTheme)
		}
		if showCluster == "" {
			printTheme(theme)
			return nil
		}

		cluster := theme.FindCluster(showCluster)
		if cluster == nil {
			return fmt.Errorf("cluster not found in theme %s: %s", showTheme, showCluster)
		}
		printCluster(theme, cluster)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache location, document totals and last save time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := ResolveCachePath()
		if err != nil {
			return err
		}

		s, err := OpenStore()
		if err != nil {
			return err
		}
		defer s.Close()

		doc, err := LoadDocument(s)
		if err != nil {
			return err
		}
		themes, clusters, entities := doc.Totals()

		fmt.Printf("Cache:    %s\n", path)
		fmt.Printf("Document: %d themes, %d clusters, %d findings\n", themes, clusters, entities)

		saved, ok, err := s.LastSaved()
		if err != nil {
			return err
		}
		if ok {
			fmt.Printf("Saved:    %s (%s)\n", saved.Local().Format("2006-01-02 15:04:05"), humanize.Time(saved))
		} else {
			fmt.Println("Saved:    never (showing default dataset)")
		}
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output the document as JSON")
	showCmd.Flags().StringVar(&showTheme, "theme", "", "Theme id to descend into")
	showCmd.Flags().StringVar(&showCluster, "cluster", "", "Cluster id to descend into (requires --theme)")
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statusCmd)
}

// Counts shown below are always derived from array lengths; the stored
// clusterCount/entityCount fields are a validation signal only.

func printThemes(doc model.Document) {
	if len(doc.Themes) == 0 {
		fmt.Println("No themes")
		return
	}
	for i := range doc.Themes {
		t := &doc.Themes[i]
		fmt.Printf("%-10s [%s]  %s  (%d clusters)\n", t.ID, t.Color, t.Title, t.LiveClusterCount())
	}
}

func printTheme(t *model.Theme) {
	fmt.Printf("%s\n%s\n", t.Title, t.Description)
	if len(t.Sources) > 0 {
		fmt.Printf("Sources: %v\n", t.Sources)
	}
	fmt.Println()
	for i := range t.Clusters {
		c := &t.Clusters[i]
		fmt.Printf("  %-10s %s  (%d findings)\n", c.ID, c.Name, c.LiveEntityCount())
		if c.Summary != "" {
			fmt.Printf("             %s\n", c.Summary)
		}
	}
}

func printCluster(t *model.Theme, c *model.Cluster) {
	fmt.Printf("%s > %s\n%s\n\n", t.Title, c.Name, c.Summary)
	for i := range c.Entities {
		e := &c.Entities[i]
		fmt.Printf("  %-10s [%s] %s\n", e.ID, e.Type, e.Statement)
		for _, p := range e.Pains {
			fmt.Printf("             pain: %s\n", p)
		}
		for _, g := range e.Gains {
			fmt.Printf("             gain: %s\n", g)
		}
		if e.VerbatimQuote != "" {
			fmt.Printf("             %q\n", e.VerbatimQuote)
		}
		if e.Source != "" || e.Date != "" {
			fmt.Printf("             %s %s %s %s\n", e.Source, e.ParticipantID, e.Date, e.Timestamp)
		}
	}
}
