// Package validate checks candidate research documents against the
// Theme/Cluster/Entity schema before they touch in-memory state.
//
// The error policy is two-tier: the four structural checks (JSON syntax,
// object root, themes presence, themes array) abort immediately with a
// single issue, while everything deeper is accumulated exhaustively so the
// caller sees every defect in one pass. Count-field mismatches are
// warnings and never block an import.
package validate

import (
	"encoding/json"
	"fmt"
	"strconv"

	"synthdeck/internal/model"
)

// Severity of a validation issue
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single validation finding located by a JSON path such as
// themes[0].clusters[1].id.
type Issue struct {
	FieldPath string   `json:"fieldPath"`
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
}

// Result is the outcome of validating one document. Warnings never affect
// IsValid.
type Result struct {
	IsValid  bool    `json:"isValid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

type kind int

const (
	kindString kind = iota
	kindNumber
	kindArray
)

func (k kind) label() string {
	switch k {
	case kindNumber:
		return "number"
	case kindArray:
		return "array"
	default:
		return "string"
	}
}

// Validate parses raw text and checks it against the document schema.
// It never panics or returns a Go error for malformed input; every outcome
// is a structured Result.
func Validate(raw string) Result {
	var errors, warnings []Issue

	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return Result{
			IsValid: false,
			Errors: []Issue{{
				FieldPath: "root",
				Message:   fmt.Sprintf("Invalid JSON syntax: %v", err),
				Severity:  SeverityError,
			}},
			Warnings: []Issue{},
		}
	}

	root, ok := data.(map[string]any)
	if !ok || root == nil {
		errors = append(errors, Issue{FieldPath: "root", Message: "Root must be an object", Severity: SeverityError})
		return Result{IsValid: false, Errors: errors, Warnings: []Issue{}}
	}

	themesVal, present := root["themes"]
	if !present {
		errors = append(errors, Issue{FieldPath: "themes", Message: `Missing required "themes" property`, Severity: SeverityError})
		return Result{IsValid: false, Errors: errors, Warnings: []Issue{}}
	}

	themes, ok := themesVal.([]any)
	if !ok {
		errors = append(errors, Issue{FieldPath: "themes", Message: `"themes" must be an array`, Severity: SeverityError})
		return Result{IsValid: false, Errors: errors, Warnings: []Issue{}}
	}

	// Theme ids are unique across the whole document; cluster and entity
	// sets are created fresh per scope below.
	themeIDs := map[string]bool{}

	for i, themeVal := range themes {
		themePath := fmt.Sprintf("themes[%d]", i)

		theme, ok := themeVal.(map[string]any)
		if !ok {
			errors = append(errors, Issue{FieldPath: themePath, Message: "Theme must be an object", Severity: SeverityError})
			continue
		}

		requireField(theme, "id", kindString, themePath, &errors)
		requireField(theme, "title", kindString, themePath, &errors)
		requireField(theme, "description", kindString, themePath, &errors)
		requireField(theme, "sources", kindArray, themePath, &errors)
		requireField(theme, "clusterCount", kindNumber, themePath, &errors)
		requireField(theme, "color", kindString, themePath, &errors)
		requireField(theme, "clusters", kindArray, themePath, &errors)

		if id, ok := theme["id"].(string); ok && id != "" {
			if themeIDs[id] {
				errors = append(errors, Issue{
					FieldPath: themePath + ".id",
					Message:   fmt.Sprintf("Duplicate theme ID %q", id),
					Severity:  SeverityError,
				})
			}
			themeIDs[id] = true
		}

		if color, ok := theme["color"].(string); ok && color != "" && !model.ThemeColor(color).Valid() {
			errors = append(errors, Issue{
				FieldPath: themePath + ".color",
				Message:   fmt.Sprintf("Invalid color %q. Must be one of: %s", color, model.ValidColorList()),
				Severity:  SeverityError,
			})
		}

		clusters, clustersIsArray := theme["clusters"].([]any)
		if count, hasCount := theme["clusterCount"].(float64); hasCount && clustersIsArray {
			if count != float64(len(clusters)) {
				warnings = append(warnings, Issue{
					FieldPath: themePath + ".clusterCount",
					Message:   fmt.Sprintf("clusterCount (%s) doesn't match clusters array length (%d)", formatCount(count), len(clusters)),
					Severity:  SeverityWarning,
				})
			}
		}

		if clustersIsArray {
			validateClusters(clusters, theme, i, themePath, &errors, &warnings)
		}
	}

	if errors == nil {
		errors = []Issue{}
	}
	if warnings == nil {
		warnings = []Issue{}
	}
	return Result{IsValid: len(errors) == 0, Errors: errors, Warnings: warnings}
}

func validateClusters(clusters []any, theme map[string]any, themeIndex int, themePath string, errors, warnings *[]Issue) {
	clusterIDs := map[string]bool{}

	for j, clusterVal := range clusters {
		clusterPath := fmt.Sprintf("%s.clusters[%d]", themePath, j)

		cluster, ok := clusterVal.(map[string]any)
		if !ok {
			*errors = append(*errors, Issue{FieldPath: clusterPath, Message: "Cluster must be an object", Severity: SeverityError})
			continue
		}

		requireField(cluster, "id", kindString, clusterPath, errors)
		requireField(cluster, "name", kindString, clusterPath, errors)
		requireField(cluster, "summary", kindString, clusterPath, errors)
		requireField(cluster, "entityCount", kindNumber, clusterPath, errors)
		requireField(cluster, "entities", kindArray, clusterPath, errors)

		if id, ok := cluster["id"].(string); ok && id != "" {
			if clusterIDs[id] {
				*errors = append(*errors, Issue{
					FieldPath: clusterPath + ".id",
					Message:   fmt.Sprintf("Duplicate cluster ID %q in theme %q", id, scopeLabel(theme["id"], themeIndex)),
					Severity:  SeverityError,
				})
			}
			clusterIDs[id] = true
		}

		entities, entitiesIsArray := cluster["entities"].([]any)
		if count, hasCount := cluster["entityCount"].(float64); hasCount && entitiesIsArray {
			if count != float64(len(entities)) {
				*warnings = append(*warnings, Issue{
					FieldPath: clusterPath + ".entityCount",
					Message:   fmt.Sprintf("entityCount (%s) doesn't match entities array length (%d)", formatCount(count), len(entities)),
					Severity:  SeverityWarning,
				})
			}
		}

		if entitiesIsArray {
			validateEntities(entities, cluster, j, clusterPath, errors)
		}
	}
}

var entityStringFields = []string{
	"id", "statement", "type", "source", "transcriptId",
	"participantId", "timestamp", "date", "verbatimQuote", "context",
}

func validateEntities(entities []any, cluster map[string]any, clusterIndex int, clusterPath string, errors *[]Issue) {
	entityIDs := map[string]bool{}

	for k, entityVal := range entities {
		entityPath := fmt.Sprintf("%s.entities[%d]", clusterPath, k)

		entity, ok := entityVal.(map[string]any)
		if !ok {
			*errors = append(*errors, Issue{FieldPath: entityPath, Message: "Entity must be an object", Severity: SeverityError})
			continue
		}

		for _, field := range entityStringFields {
			requireField(entity, field, kindString, entityPath, errors)
		}

		if id, ok := entity["id"].(string); ok && id != "" {
			if entityIDs[id] {
				*errors = append(*errors, Issue{
					FieldPath: entityPath + ".id",
					Message:   fmt.Sprintf("Duplicate entity ID %q in cluster %q", id, scopeLabel(cluster["id"], clusterIndex)),
					Severity:  SeverityError,
				})
			}
			entityIDs[id] = true
		}

		if typ, ok := entity["type"].(string); ok && typ != "" && !model.EntityType(typ).Valid() {
			*errors = append(*errors, Issue{
				FieldPath: entityPath + ".type",
				Message:   fmt.Sprintf("Invalid type %q. Must be one of: %s", typ, model.ValidTypeList()),
				Severity:  SeverityError,
			})
		}

		checkStringList(entity, "pains", entityPath, errors)
		checkStringList(entity, "gains", entityPath, errors)
	}
}

// checkStringList validates the optional pains/gains fields: when present
// and non-null, the value must be an array whose elements are all strings.
func checkStringList(obj map[string]any, field, path string, errors *[]Issue) {
	val, present := obj[field]
	if !present || val == nil {
		return
	}
	list, ok := val.([]any)
	if !ok {
		*errors = append(*errors, Issue{
			FieldPath: path + "." + field,
			Message:   fmt.Sprintf("%s must be an array of strings", field),
			Severity:  SeverityError,
		})
		return
	}
	for _, item := range list {
		if _, ok := item.(string); !ok {
			*errors = append(*errors, Issue{
				FieldPath: path + "." + field,
				Message:   fmt.Sprintf("All items in %s array must be strings", field),
				Severity:  SeverityError,
			})
			return
		}
	}
}

func requireField(obj map[string]any, field string, expected kind, path string, errors *[]Issue) {
	fieldPath := path + "." + field

	val, present := obj[field]
	if !present {
		*errors = append(*errors, Issue{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("Missing required field %q", field),
			Severity:  SeverityError,
		})
		return
	}

	var ok bool
	switch expected {
	case kindString:
		_, ok = val.(string)
	case kindNumber:
		_, ok = val.(float64)
	case kindArray:
		_, ok = val.([]any)
	}
	if !ok {
		article := "a"
		if expected == kindArray {
			article = "an"
		}
		*errors = append(*errors, Issue{
			FieldPath: fieldPath,
			Message:   fmt.Sprintf("Field %q must be %s %s", field, article, expected.label()),
			Severity:  SeverityError,
		})
	}
}

// formatCount renders a stored counter exactly as it appeared in the JSON,
// so a fractional value like 2.5 is not reported as 2.
func formatCount(count float64) string {
	return strconv.FormatFloat(count, 'f', -1, 64)
}

// scopeLabel names the enclosing scope for a duplicate-id message: the
// parent's id when it has one, otherwise its index.
func scopeLabel(id any, index int) string {
	if s, ok := id.(string); ok && s != "" {
		return s
	}
	return fmt.Sprintf("%d", index)
}
