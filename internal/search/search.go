// Package search ranks themes, clusters and entities against a free-text
// query with fuzzy matching, and extracts snippets for highlighting.
//
// Three independent passes run against three field sets, because each level
// of the hierarchy exposes different searchable text. Results are
// concatenated in hierarchy order (all theme matches, then per theme its
// cluster matches, then per cluster its entity matches), each pass sorted
// best-to-worst internally. Kinds are never interleaved by global score.
package search

import (
	"sort"
	"strings"

	"synthdeck/internal/model"
)

// Kind of object a result points at
type Kind string

const (
	KindTheme   Kind = "theme"
	KindCluster Kind = "cluster"
	KindEntity  Kind = "entity"
)

// FieldMatch records which field matched and where, for highlighting.
type FieldMatch struct {
	Field string `json:"field"`
	Spans []Span `json:"spans"`
}

// Result is one ranked match. Theme is always set; for cluster results it
// is the owning theme, for entity results Cluster is additionally the
// owning cluster. Pointers alias the caller's slice so breadcrumbs can be
// built without re-traversing the tree.
type Result struct {
	Kind         Kind           `json:"kind"`
	Theme        *model.Theme   `json:"theme"`
	Cluster      *model.Cluster `json:"cluster,omitempty"`
	Entity       *model.Entity  `json:"entity,omitempty"`
	FieldMatches []FieldMatch   `json:"fieldMatches"`
	Score        float64        `json:"score"`
}

// Options tunes the matching backend. The zero value is usable; blanks are
// filled with the defaults below.
type Options struct {
	// MaxDissimilarity is the loosest accepted distance from a perfect
	// match: small values accept near-exact text only, 1 accepts
	// everything. Zero or negative means the default.
	MaxDissimilarity float64
	// MinMatchLength is the shortest fragment that can carry a match by
	// itself, filtering single-character coincidences.
	MinMatchLength int
	// Scorer overrides the default fuzzy backend.
	Scorer Scorer
}

const (
	DefaultMaxDissimilarity = 0.4
	DefaultMinMatchLength   = 2
)

func (o Options) withDefaults() Options {
	if o.MaxDissimilarity <= 0 {
		o.MaxDissimilarity = DefaultMaxDissimilarity
	}
	if o.MinMatchLength <= 0 {
		o.MinMatchLength = DefaultMinMatchLength
	}
	if o.Scorer == nil {
		o.Scorer = &fuzzyScorer{
			maxDissimilarity: o.MaxDissimilarity,
			minMatchLength:   o.MinMatchLength,
		}
	}
	return o
}

type fieldText struct {
	name   string
	weight float64
	text   string
}

// Search runs all three passes across the hierarchy. A blank query returns
// an empty list. Search never returns an error; an unmatched query is
// simply an empty result.
func Search(themes []model.Theme, query string, opts Options) []Result {
	if strings.TrimSpace(query) == "" {
		return []Result{}
	}
	opts = opts.withDefaults()

	results := searchThemes(themes, query, opts.Scorer)

	for i := range themes {
		theme := &themes[i]
		results = append(results, searchClusters(theme, query, opts.Scorer)...)
		for j := range theme.Clusters {
			results = append(results, searchEntities(theme, &theme.Clusters[j], query, opts.Scorer)...)
		}
	}
	return results
}

func searchThemes(themes []model.Theme, query string, sc Scorer) []Result {
	var out []Result
	for i := range themes {
		t := &themes[i]
		score, matches, ok := scoreFields(sc, query, []fieldText{
			{name: "title", weight: 2, text: t.Title},
			{name: "description", weight: 1.5, text: t.Description},
		})
		if !ok {
			continue
		}
		out = append(out, Result{Kind: KindTheme, Theme: t, FieldMatches: matches, Score: score})
	}
	sortByScore(out)
	return out
}

func searchClusters(theme *model.Theme, query string, sc Scorer) []Result {
	var out []Result
	for i := range theme.Clusters {
		c := &theme.Clusters[i]
		score, matches, ok := scoreFields(sc, query, []fieldText{
			{name: "name", weight: 2, text: c.Name},
			{name: "summary", weight: 1.5, text: c.Summary},
		})
		if !ok {
			continue
		}
		out = append(out, Result{Kind: KindCluster, Theme: theme, Cluster: c, FieldMatches: matches, Score: score})
	}
	sortByScore(out)
	return out
}

func searchEntities(theme *model.Theme, cluster *model.Cluster, query string, sc Scorer) []Result {
	var out []Result
	for i := range cluster.Entities {
		e := &cluster.Entities[i]
		score, matches, ok := scoreFields(sc, query, []fieldText{
			{name: "statement", weight: 1.5, text: e.Statement},
			{name: "verbatimQuote", weight: 1, text: e.VerbatimQuote},
			{name: "context", weight: 0.8, text: e.Context},
			{name: "source", weight: 0.5, text: e.Source},
		})
		if !ok {
			continue
		}
		out = append(out, Result{Kind: KindEntity, Theme: theme, Cluster: cluster, Entity: e, FieldMatches: matches, Score: score})
	}
	sortByScore(out)
	return out
}

// scoreFields scores every field independently. Weight shapes ranking only;
// any field passing the scorer counts as a match regardless of weight.
func scoreFields(sc Scorer, query string, fields []fieldText) (float64, []FieldMatch, bool) {
	var total float64
	var matches []FieldMatch
	for _, f := range fields {
		sim, spans, ok := sc.Score(query, f.text)
		if !ok {
			continue
		}
		total += f.weight * sim
		matches = append(matches, FieldMatch{Field: f.name, Spans: spans})
	}
	return total, matches, len(matches) > 0
}

// sortByScore orders best-to-worst, keeping document order on ties so
// repeated searches are deterministic.
func sortByScore(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
