package report

import "synthdeck/internal/model"

// Rendering-layer limits keeping entity blocks inside the page layout.
// These truncate the rendered copy only, never the stored document.
const (
	maxStatementLength = 300
	maxPainGainLength  = 100
	maxPainGainItems   = 3
	maxQuoteLength     = 150
)

// sanitizeThemes deep-copies the themes with defaults for blank display
// fields, so rendering never dereferences missing text and the caller's
// document is untouched.
func sanitizeThemes(themes []model.Theme) []model.Theme {
	out := make([]model.Theme, len(themes))
	for i, theme := range themes {
		if theme.Title == "" {
			theme.Title = "Untitled Theme"
		}
		if theme.Sources == nil {
			theme.Sources = []string{}
		}
		clusters := make([]model.Cluster, len(theme.Clusters))
		for j, cluster := range theme.Clusters {
			if cluster.Name == "" {
				cluster.Name = "Untitled Cluster"
			}
			entities := make([]model.Entity, len(cluster.Entities))
			copy(entities, cluster.Entities)
			cluster.Entities = entities
			clusters[j] = cluster
		}
		theme.Clusters = clusters
		out[i] = theme
	}
	return out
}

// truncate cuts text at max bytes with an ellipsis marker.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}

// capStrings limits a pains/gains list to n items, each truncated.
func capStrings(items []string, n, maxLen int) []string {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = truncate(item, maxLen)
	}
	return out
}
