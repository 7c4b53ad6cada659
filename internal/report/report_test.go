package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"synthdeck/internal/model"
)

func reportThemes() []model.Theme {
	return []model.Theme{
		{
			ID:          "t1",
			Title:       "Onboarding friction",
			Description: "New users struggle with the first session.",
			Color:       model.ColorBlue,
			Sources:     []string{"interview-1.txt", "interview-2.txt"},
			Clusters: []model.Cluster{
				{
					ID:      "c1",
					Name:    "Setup confusion",
					Summary: "Setup steps are unclear.",
					Entities: []model.Entity{
						{
							ID:            "e1",
							Type:          model.TypePain,
							Statement:     "Users abandon signup halfway through",
							VerbatimQuote: "I gave up after the third form",
							Pains:         []string{"too many steps", "unclear progress"},
							Source:        "interview-1.txt",
							ParticipantID: "P3",
							Date:          "2024-03-01",
							Timestamp:     "12:40",
						},
					},
				},
			},
		},
	}
}

func TestBuild_ProducesPDF(t *testing.T) {
	data, err := Build(reportThemes(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header: %q", data[:8])
	}
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	themes := []model.Theme{
		{ID: "t1", Clusters: []model.Cluster{{ID: "c1"}}},
	}
	if _, err := Build(themes, time.Now()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if themes[0].Title != "" {
		t.Errorf("input title mutated to %q", themes[0].Title)
	}
	if themes[0].Clusters[0].Name != "" {
		t.Errorf("input cluster name mutated to %q", themes[0].Clusters[0].Name)
	}
}

func TestGenerate_WritesReport(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(context.Background(), reportThemes(), &buf, zerolog.Nop())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("no bytes written")
	}
}

func TestGenerate_EmptyThemes(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(context.Background(), nil, &buf, zerolog.Nop())
	if err == nil {
		t.Fatal("expected error for empty themes")
	}
	if buf.Len() != 0 {
		t.Error("bytes written despite error")
	}
}

func TestGenerate_Timeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := Generate(ctx, reportThemes(), &buf, zerolog.Nop())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("err = %v, want timed out", err)
	}
	if buf.Len() != 0 {
		t.Error("bytes written despite timeout")
	}
}

func TestFilename(t *testing.T) {
	got := Filename(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	if got != "research-synthesis-report-2024-06-01.pdf" {
		t.Errorf("Filename = %q", got)
	}
}

func TestSanitizeThemes_Defaults(t *testing.T) {
	themes := sanitizeThemes([]model.Theme{
		{ID: "t1", Clusters: []model.Cluster{{ID: "c1"}}},
	})
	if themes[0].Title != "Untitled Theme" {
		t.Errorf("title = %q", themes[0].Title)
	}
	if themes[0].Clusters[0].Name != "Untitled Cluster" {
		t.Errorf("cluster name = %q", themes[0].Clusters[0].Name)
	}
	if themes[0].Sources == nil {
		t.Error("sources not defaulted")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("short text changed: %q", got)
	}
	if got := truncate("hello world", 5); got != "hello..." {
		t.Errorf("truncate = %q, want hello...", got)
	}
}

func TestCapStrings(t *testing.T) {
	long := strings.Repeat("x", maxPainGainLength+10)
	got := capStrings([]string{"a", "b", "c", "d", long}, maxPainGainItems, maxPainGainLength)
	if len(got) != maxPainGainItems {
		t.Fatalf("len = %d, want %d", len(got), maxPainGainItems)
	}
	if got[0] != "a" || got[2] != "c" {
		t.Errorf("items = %v", got)
	}

	got = capStrings([]string{long}, maxPainGainItems, maxPainGainLength)
	want := strings.Repeat("x", maxPainGainLength) + "..."
	if got[0] != want {
		t.Errorf("long item not truncated: len=%d", len(got[0]))
	}
}
