package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"synthdeck/internal/model"
	"synthdeck/internal/store"
	"synthdeck/internal/template"
)

const cacheFileName = ".synthdeck.db"

var (
	cachePath string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "synthdeck",
	Short: "Research synthesis dashboard: browse, search, validate and export Theme/Cluster/Entity data",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache", "", "Path to the .synthdeck.db cache database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newLogger builds the command-scoped logger. Background components log at
// debug level only when --verbose is set.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// ResolveCachePath finds the cache location using priority: env > flag >
// walk-up > XDG fallback. The returned path may not exist yet; OpenStore
// creates it on first use.
func ResolveCachePath() (string, error) {
	if envPath := os.Getenv("SYNTHDECK_DB"); envPath != "" {
		return envPath, nil
	}

	if cachePath != "" {
		return cachePath, nil
	}

	// Walk up from CWD looking for an existing cache
	dir, err := os.Getwd()
	if err == nil {
		for {
			candidate := filepath.Join(dir, cacheFileName)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	// XDG fallback
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving cache path: %w", err)
	}
	dataDir := filepath.Join(home, ".local", "share", "synthdeck")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	return filepath.Join(dataDir, "synthdeck.db"), nil
}

// OpenStore resolves and opens the cache database.
func OpenStore() (*store.Store, error) {
	path, err := ResolveCachePath()
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}

// LoadDocument returns the current document: the cached one when present,
// otherwise the bundled default dataset.
func LoadDocument(s *store.Store) (model.Document, error) {
	doc, ok, err := s.LoadDocument()
	if err != nil {
		return model.Document{}, err
	}
	if !ok {
		return template.Default(), nil
	}
	return doc, nil
}
