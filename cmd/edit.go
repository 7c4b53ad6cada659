package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"synthdeck/internal/model"
)

// Mutation commands replace the relevant sub-tree immutably through the
// model helpers and persist the new document. Derived counts are
// recomputed on the touched path; nothing else is reordered.

var (
	themeTitle       string
	themeDescription string
	themeColor       string
	themeSources     []string

	clusterTheme   string
	clusterName    string
	clusterSummary string

	entityTheme     string
	entityCluster   string
	entityStatement string
	entityType      string
	entitySource    string
	entityQuote     string
	entityContext   string
	entityPains     []string
	entityGains     []string
)

// withDocument loads the current document, applies fn, and saves the result.
func withDocument(fn func(model.Document) (model.Document, error)) error {
	s, err := OpenStore()
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := LoadDocument(s)
	if err != nil {
		return err
	}
	updated, err := fn(doc)
	if err != nil {
		return err
	}
	return s.SaveDocument(updated)
}

var themeCmd = &cobra.Command{Use: "theme", Short: "Add, edit or remove themes"}

var themeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		color := model.ThemeColor(themeColor)
		if !color.Valid() {
			return fmt.Errorf("invalid color %q. Must be one of: %s", themeColor, model.ValidColorList())
		}
		t := model.Theme{
			Title:       themeTitle,
			Description: themeDescription,
			Sources:     themeSources,
			Color:       color,
			Clusters:    []model.Cluster{},
		}
		return withDocument(func(doc model.Document) (model.Document, error) {
			updated := doc.AddTheme(t)
			fmt.Printf("Added theme %q\n", themeTitle)
			return updated, nil
		})
	},
}

var themeEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a theme's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDocument(func(doc model.Document) (model.Document, error) {
			existing := doc.FindTheme(args[0])
			if existing == nil {
				return model.Document{}, fmt.Errorf("theme not found: %s", args[0])
			}
			t := *existing
			if cmd.Flags().Changed("title") {
				t.Title = themeTitle
			}
			if cmd.Flags().Changed("description") {
				t.Description = themeDescription
			}
			if cmd.Flags().Changed("color") {
				color := model.ThemeColor(themeColor)
				if !color.Valid() {
					return model.Document{}, fmt.Errorf("invalid color %q. Must be one of: %s", themeColor, model.ValidColorList())
				}
				t.Color = color
			}
			if cmd.Flags().Changed("source") {
				t.Sources = themeSources
			}
			return doc.UpdateTheme(t)
		})
	},
}

var themeRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a theme and everything under it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDocument(func(doc model.Document) (model.Document, error) {
			return doc.DeleteTheme(args[0])
		})
	},
}

var clusterCmd = &cobra.Command{Use: "cluster", Short: "Add, edit or remove clusters"}

var clusterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a cluster to a theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := model.Cluster{Name: clusterName, Summary: clusterSummary, Entities: []model.Entity{}}
		return withDocument(func(doc model.Document) (model.Document, error) {
			return doc.AddCluster(clusterTheme, c)
		})
	},
}

var clusterEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a cluster's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDocument(func(doc model.Document) (model.Document, error) {
			theme := doc.FindTheme(clusterTheme)
			if theme == nil {
				return model.Document{}, fmt.Errorf("theme not found: %s", clusterTheme)
			}
			existing := theme.FindCluster(args[0])
			if existing == nil {
				return model.Document{}, fmt.Errorf("cluster not found in theme %s: %s", clusterTheme, args[0])
			}
			c := *existing
			if cmd.Flags().Changed("name") {
				c.Name = clusterName
			}
			if cmd.Flags().Changed("summary") {
				c.Summary = clusterSummary
			}
			return doc.UpdateCluster(clusterTheme, c)
		})
	},
}

var clusterRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a cluster and its entities",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDocument(func(doc model.Document) (model.Document, error) {
			return doc.DeleteCluster(clusterTheme, args[0])
		})
	},
}

var entityCmd = &cobra.Command{Use: "entity", Short: "Add, edit or remove entities"}

var entityAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an entity to a cluster",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		typ := model.EntityType(entityType)
		if !typ.Valid() {
			return fmt.Errorf("invalid type %q. Must be one of: %s", entityType, model.ValidTypeList())
		}
		e := model.Entity{
			Statement:     entityStatement,
			Type:          typ,
			Pains:         entityPains,
			Gains:         entityGains,
			Source:        entitySource,
			VerbatimQuote: entityQuote,
			Context:       entityContext,
		}
		return withDocument(func(doc model.Document) (model.Document, error) {
			return doc.AddEntity(entityTheme, entityCluster, e)
		})
	},
}

var entityEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an entity's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDocument(func(doc model.Document) (model.Document, error) {
			theme := doc.FindTheme(entityTheme)
			if theme == nil {
				return model.Document{}, fmt.Errorf("theme not found: %s", entityTheme)
			}
			cluster := theme.FindCluster(entityCluster)
			if cluster == nil {
				return model.Document{}, fmt.Errorf("cluster not found in theme %s: %s", entityTheme, entityCluster)
			}
			existing := cluster.FindEntity(args[0])
			if existing == nil {
				return model.Document{}, fmt.Errorf("entity not found in cluster %s: %s", entityCluster, args[0])
			}
			e := *existing
			if cmd.Flags().Changed("statement") {
				e.Statement = entityStatement
			}
			if cmd.Flags().Changed("type") {
				typ := model.EntityType(entityType)
				if !typ.Valid() {
					return model.Document{}, fmt.Errorf("invalid type %q. Must be one of: %s", entityType, model.ValidTypeList())
				}
				e.Type = typ
			}
			if cmd.Flags().Changed("source") {
				e.Source = entitySource
			}
			if cmd.Flags().Changed("quote") {
				e.VerbatimQuote = entityQuote
			}
			if cmd.Flags().Changed("context") {
				e.Context = entityContext
			}
			if cmd.Flags().Changed("pain") {
				e.Pains = entityPains
			}
			if cmd.Flags().Changed("gain") {
				e.Gains = entityGains
			}
			return doc.UpdateEntity(entityTheme, entityCluster, e)
		})
	},
}

var entityRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an entity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDocument(func(doc model.Document) (model.Document, error) {
			return doc.DeleteEntity(entityTheme, entityCluster, args[0])
		})
	},
}

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the cached document and return to the default dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce {
			return fmt.Errorf("reset discards the cached document; re-run with --force")
		}
		s, err := OpenStore()
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.Clear(); err != nil {
			return err
		}
		fmt.Println("Reset to default data")
		return nil
	},
}

func init() {
	themeAddCmd.Flags().StringVar(&themeTitle, "title", "", "Theme title")
	themeAddCmd.Flags().StringVar(&themeDescription, "description", "", "Theme description")
	themeAddCmd.Flags().StringVar(&themeColor, "color", "blue", "Theme color")
	themeAddCmd.Flags().StringArrayVar(&themeSources, "source", nil, "Source label (repeatable)")
	themeAddCmd.MarkFlagRequired("title")

	themeEditCmd.Flags().StringVar(&themeTitle, "title", "", "New title")
	themeEditCmd.Flags().StringVar(&themeDescription, "description", "", "New description")
	themeEditCmd.Flags().StringVar(&themeColor, "color", "", "New color")
	themeEditCmd.Flags().StringArrayVar(&themeSources, "source", nil, "New source labels (repeatable)")

	themeCmd.AddCommand(themeAddCmd, themeEditCmd, themeRmCmd)

	clusterCmd.PersistentFlags().StringVar(&clusterTheme, "theme", "", "Owning theme id")
	clusterCmd.MarkPersistentFlagRequired("theme")
	clusterAddCmd.Flags().StringVar(&clusterName, "name", "", "Cluster name")
	clusterAddCmd.Flags().StringVar(&clusterSummary, "summary", "", "Cluster summary")
	clusterAddCmd.MarkFlagRequired("name")
	clusterEditCmd.Flags().StringVar(&clusterName, "name", "", "New name")
	clusterEditCmd.Flags().StringVar(&clusterSummary, "summary", "", "New summary")

	clusterCmd.AddCommand(clusterAddCmd, clusterEditCmd, clusterRmCmd)

	entityCmd.PersistentFlags().StringVar(&entityTheme, "theme", "", "Owning theme id")
	entityCmd.PersistentFlags().StringVar(&entityCluster, "cluster", "", "Owning cluster id")
	entityCmd.MarkPersistentFlagRequired("theme")
	entityCmd.MarkPersistentFlagRequired("cluster")
	entityAddCmd.Flags().StringVar(&entityStatement, "statement", "", "Finding statement")
	entityAddCmd.Flags().StringVar(&entityType, "type", "fact", "Entity type (jtbd, fact, pain, gain)")
	entityAddCmd.Flags().StringVar(&entitySource, "source", "", "Source label")
	entityAddCmd.Flags().StringVar(&entityQuote, "quote", "", "Verbatim quote")
	entityAddCmd.Flags().StringVar(&entityContext, "context", "", "Question or context")
	entityAddCmd.Flags().StringArrayVar(&entityPains, "pain", nil, "Pain (repeatable)")
	entityAddCmd.Flags().StringArrayVar(&entityGains, "gain", nil, "Gain (repeatable)")
	entityAddCmd.MarkFlagRequired("statement")
	entityEditCmd.Flags().StringVar(&entityStatement, "statement", "", "New statement")
	entityEditCmd.Flags().StringVar(&entityType, "type", "", "New type")
	entityEditCmd.Flags().StringVar(&entitySource, "source", "", "New source")
	entityEditCmd.Flags().StringVar(&entityQuote, "quote", "", "New quote")
	entityEditCmd.Flags().StringVar(&entityContext, "context", "", "New context")
	entityEditCmd.Flags().StringArrayVar(&entityPains, "pain", nil, "New pains (repeatable)")
	entityEditCmd.Flags().StringArrayVar(&entityGains, "gain", nil, "New gains (repeatable)")

	entityCmd.AddCommand(entityAddCmd, entityEditCmd, entityRmCmd)

	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Skip confirmation")

	rootCmd.AddCommand(themeCmd, clusterCmd, entityCmd, resetCmd)
}
