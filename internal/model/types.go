package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EntityType classifies an atomic research finding
type EntityType string

const (
	TypeJTBD EntityType = "jtbd"
	TypeFact EntityType = "fact"
	TypePain EntityType = "pain"
	TypeGain EntityType = "gain"
)

// EntityTypes lists the valid entity types in canonical order.
var EntityTypes = []EntityType{TypeJTBD, TypeFact, TypePain, TypeGain}

func (t EntityType) String() string { return string(t) }

// Valid reports whether t is one of the four entity type literals.
func (t EntityType) Valid() bool {
	switch t {
	case TypeJTBD, TypeFact, TypePain, TypeGain:
		return true
	}
	return false
}

// ThemeColor is the display color key for a theme
type ThemeColor string

const (
	ColorBlue   ThemeColor = "blue"
	ColorGreen  ThemeColor = "green"
	ColorAmber  ThemeColor = "amber"
	ColorPurple ThemeColor = "purple"
	ColorRose   ThemeColor = "rose"
	ColorCyan   ThemeColor = "cyan"
)

// ThemeColors lists the valid theme colors in canonical order.
var ThemeColors = []ThemeColor{ColorBlue, ColorGreen, ColorAmber, ColorPurple, ColorRose, ColorCyan}

func (c ThemeColor) String() string { return string(c) }

// Valid reports whether c is one of the six theme color literals.
func (c ThemeColor) Valid() bool {
	switch c {
	case ColorBlue, ColorGreen, ColorAmber, ColorPurple, ColorRose, ColorCyan:
		return true
	}
	return false
}

// Entity is an atomic research finding with source provenance.
// Pains and gains are optional; absent and empty are equivalent.
type Entity struct {
	ID            string     `json:"id"`
	Statement     string     `json:"statement"`
	Type          EntityType `json:"type"`
	Pains         []string   `json:"pains,omitempty"`
	Gains         []string   `json:"gains,omitempty"`
	Source        string     `json:"source"`
	TranscriptID  string     `json:"transcriptId"`
	ParticipantID string     `json:"participantId"`
	Timestamp     string     `json:"timestamp"`
	Date          string     `json:"date"`
	VerbatimQuote string     `json:"verbatimQuote"`
	Context       string     `json:"context"`
}

// Cluster is a named sub-grouping of entities within a theme.
// EntityCount is stored denormalized; display code must use LiveEntityCount.
type Cluster struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Summary     string   `json:"summary"`
	EntityCount int      `json:"entityCount"`
	Entities    []Entity `json:"entities"`
}

// LiveEntityCount returns the actual number of entities, ignoring the
// stored counter.
func (c *Cluster) LiveEntityCount() int { return len(c.Entities) }

// Theme is a top-level research insight grouping.
type Theme struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Sources      []string   `json:"sources"`
	ClusterCount int        `json:"clusterCount"`
	Color        ThemeColor `json:"color"`
	Clusters     []Cluster  `json:"clusters"`
}

// LiveClusterCount returns the actual number of clusters, ignoring the
// stored counter.
func (t *Theme) LiveClusterCount() int { return len(t.Clusters) }

// Document is the root of the research hierarchy and the sole
// import/export format.
type Document struct {
	Themes []Theme `json:"themes"`
}

// Totals returns live theme, cluster and entity counts for the document.
func (d Document) Totals() (themes, clusters, entities int) {
	themes = len(d.Themes)
	for i := range d.Themes {
		clusters += len(d.Themes[i].Clusters)
		for j := range d.Themes[i].Clusters {
			entities += len(d.Themes[i].Clusters[j].Entities)
		}
	}
	return themes, clusters, entities
}

// Encode serializes the document with stable 2-space indentation. This is
// the on-disk, export and cache format.
func (d Document) Encode() ([]byte, error) {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return out, nil
}

// Decode parses a serialized document. It performs no schema validation;
// callers that accept untrusted input run validate.Validate first.
func Decode(raw []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(raw, &d); err != nil {
		return Document{}, fmt.Errorf("decoding document: %w", err)
	}
	return d, nil
}

// FindTheme returns the theme with the given id, or nil.
func (d Document) FindTheme(id string) *Theme {
	for i := range d.Themes {
		if d.Themes[i].ID == id {
			return &d.Themes[i]
		}
	}
	return nil
}

// FindCluster returns the cluster with the given id inside the theme, or nil.
func (t *Theme) FindCluster(id string) *Cluster {
	for i := range t.Clusters {
		if t.Clusters[i].ID == id {
			return &t.Clusters[i]
		}
	}
	return nil
}

// FindEntity returns the entity with the given id inside the cluster, or nil.
func (c *Cluster) FindEntity(id string) *Entity {
	for i := range c.Entities {
		if c.Entities[i].ID == id {
			return &c.Entities[i]
		}
	}
	return nil
}

func joinTypes() string {
	parts := make([]string, len(EntityTypes))
	for i, t := range EntityTypes {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func joinColors() string {
	parts := make([]string, len(ThemeColors))
	for i, c := range ThemeColors {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

// ValidTypeList returns the entity type literals as a display string.
func ValidTypeList() string { return joinTypes() }

// ValidColorList returns the theme color literals as a display string.
func ValidColorList() string { return joinColors() }
