package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"synthdeck/internal/model"
	"synthdeck/internal/search"
	"synthdeck/internal/store"
	"synthdeck/internal/template"
	"synthdeck/internal/validate"
)

var replDebounce time.Duration

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive search session over the current document",
	Long: `Starts an interactive prompt. Plain input is searched across all
themes, clusters and entities. Commands:

  :import <file>   validate and load a document (autosaved)
  :reset           return to the default dataset
  :quit            exit`,
	Args: cobra.NoArgs,
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

		log := newLogger()

		// The session owns the in-memory document; the store is a
		// best-effort cache behind the debounced autosaver.
		var mu sync.Mutex
		current := doc

		saver := store.NewAutosaver(s, store.DefaultAutosaveDelay, log)
		saver.OnError = func(err error) {
			fmt.Fprintf(os.Stderr, "autosave failed (in-memory data is intact): %v\n", err)
		}
		defer saver.Close()

		live := search.NewLive(
			func() []model.Theme {
				mu.Lock()
				defer mu.Unlock()
				return current.Themes
			},
			func(query string, results []search.Result) {
				printLiveResults(query, results)
			},
			search.Options{},
			replDebounce,
			log,
		)
		defer live.Close()

		themes, clusters, entities := doc.Totals()
		fmt.Printf("Loaded %d themes, %d clusters, %d findings. Type a query, or :quit.\n", themes, clusters, entities)

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			switch {
			case line == "":
				continue
			case line == ":quit" || line == ":q":
				return scanner.Err()
			case line == ":reset":
				mu.Lock()
				current = template.Default()
				saver.Save(current)
				mu.Unlock()
				fmt.Println("Reset to default data")
			case strings.HasPrefix(line, ":import "):
				path := strings.TrimSpace(strings.TrimPrefix(line, ":import "))
				next, err := loadValidated(path)
				if err != nil {
					fmt.Println(err)
					continue
				}
				mu.Lock()
				current = next
				saver.Save(current)
				mu.Unlock()
				fmt.Printf("Imported %s\n", path)
			default:
				live.Query(line)
			}
		}
		return scanner.Err()
	},
}

func init() {
	replCmd.Flags().DurationVar(&replDebounce, "debounce", search.DefaultDebounce, "Delay before a query runs")
	rootCmd.AddCommand(replCmd)
}

// loadValidated reads and validates a document file, keeping the current
// state untouched on any failure.
func loadValidated(path string) (model.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	result := validate.Validate(string(raw))
	if !result.IsValid {
		return model.Document{}, fmt.Errorf("invalid data format: %s", validate.FirstMessages(result.Errors, maxImportErrors))
	}
	if n := len(result.Warnings); n > 0 {
		fmt.Printf("Imported with %d warning(s). Data may have inconsistencies.\n", n)
	}
	return model.Decode(raw)
}

func printLiveResults(query string, results []search.Result) {
	if len(results) == 0 {
		fmt.Printf("\nNo matches for %q\n> ", query)
		return
	}
	fmt.Printf("\n%d result(s) for %q:\n", len(results), query)
	limit := 10
	if len(results) < limit {
		limit = len(results)
	}
	for _, r := range results[:limit] {
		printSearchResult(r)
	}
	if len(results) > limit {
		fmt.Printf("  ... and %d more\n", len(results)-limit)
	}
	fmt.Print("> ")
}
