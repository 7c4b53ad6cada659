package search

import (
	"testing"

	"synthdeck/internal/model"
)

func fixtureThemes() []model.Theme {
	return []model.Theme{
		{
			ID: "t1", Title: "Async tools", Description: "How teams work without meetings",
			Color: model.ColorBlue,
			Clusters: []model.Cluster{
				{
					ID: "c1", Name: "Async communication", Summary: "Sharing work without a call",
					Entities: []model.Entity{
						{
							ID: "e1", Statement: "Async feedback beats another meeting",
							Type: model.TypeJTBD, VerbatimQuote: "Just let me record my screen",
							Context: "Question about feedback", Source: "Interview #12",
						},
						{
							ID: "e2", Statement: "Dashboards reduce status pings",
							Type: model.TypeGain, VerbatimQuote: "I check the board instead of asking",
							Context: "Question about visibility", Source: "Interview #20",
						},
					},
				},
			},
		},
		{
			ID: "t2", Title: "Billing flow", Description: "Payment friction",
			Color: model.ColorRose,
			Clusters: []model.Cluster{
				{
					ID: "c2", Name: "Checkout drop-off", Summary: "Where buyers give up",
					Entities: []model.Entity{
						{
							ID: "e3", Statement: "Surprise fees end checkouts",
							Type: model.TypePain, VerbatimQuote: "The shipping cost killed it",
							Context: "Question about purchases", Source: "Interview #31",
						},
					},
				},
			},
		},
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	themes := fixtureThemes()
	for _, query := range []string{"", "   ", "\t"} {
		if got := Search(themes, query, Options{}); len(got) != 0 {
			t.Errorf("Search(%q): got %d results, want 0", query, len(got))
		}
	}
}

func TestSearch_NoMatch(t *testing.T) {
	if got := Search(fixtureThemes(), "zzzzqqqq", Options{}); len(got) != 0 {
		t.Errorf("got %d results, want 0", len(got))
	}
}

func TestSearch_KindOrdering(t *testing.T) {
	// "async" appears in theme t1, cluster c1 and entity e1. The theme
	// pass comes first, then clusters, then entities, regardless of
	// per-result scores.
	results := Search(fixtureThemes(), "async", Options{})
	if len(results) < 3 {
		t.Fatalf("got %d results, want at least 3", len(results))
	}
	if results[0].Kind != KindTheme || results[0].Theme.ID != "t1" {
		t.Errorf("first result: got %s %s", results[0].Kind, results[0].Theme.ID)
	}
	sawCluster := -1
	sawEntity := -1
	for i, r := range results {
		if r.Kind == KindCluster && sawCluster < 0 {
			sawCluster = i
		}
		if r.Kind == KindEntity && sawEntity < 0 {
			sawEntity = i
		}
		if r.Kind == KindTheme && r.Theme.ID == "t2" {
			t.Error("Billing flow must not match \"async\"")
		}
	}
	if sawCluster < 0 || sawEntity < 0 || sawCluster > sawEntity {
		t.Errorf("cluster pass at %d, entity pass at %d", sawCluster, sawEntity)
	}
}

func TestSearch_TitleWeightBeatsDescription(t *testing.T) {
	themes := []model.Theme{
		{ID: "a", Title: "Automation pains", Description: "Async mentioned here"},
		{ID: "b", Title: "Async tools", Description: "Automation mentioned here"},
	}
	results := Search(themes, "async", Options{})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// Title carries weight 2, description 1.5
	if results[0].Theme.ID != "b" {
		t.Errorf("got %s first, want b", results[0].Theme.ID)
	}
}

func TestSearch_TypoTolerance(t *testing.T) {
	results := Search(fixtureThemes(), "asinc", Options{})
	if len(results) == 0 {
		t.Fatal("one-letter typo should still match")
	}
	if results[0].Theme.ID != "t1" {
		t.Errorf("got %s, want t1", results[0].Theme.ID)
	}
}

func TestSearch_MinMatchLength(t *testing.T) {
	if got := Search(fixtureThemes(), "a", Options{}); len(got) != 0 {
		t.Errorf("single-character query matched %d results, want 0", len(got))
	}
}

func TestSearch_BackReferences(t *testing.T) {
	themes := fixtureThemes()
	results := Search(themes, "checkout", Options{})
	if len(results) == 0 {
		t.Fatal("expected matches")
	}
	for _, r := range results {
		switch r.Kind {
		case KindCluster:
			if r.Theme != &themes[1] {
				t.Error("cluster result must alias its owning theme")
			}
			if r.Cluster != &themes[1].Clusters[0] {
				t.Error("cluster result must alias the matched cluster")
			}
		case KindEntity:
			if r.Theme != &themes[1] || r.Cluster != &themes[1].Clusters[0] {
				t.Error("entity result must alias its owning theme and cluster")
			}
		}
	}
}

func TestSearch_FieldMatchesCarrySpans(t *testing.T) {
	results := Search(fixtureThemes(), "billing", Options{})
	if len(results) == 0 {
		t.Fatal("expected a match")
	}
	r := results[0]
	if len(r.FieldMatches) == 0 {
		t.Fatal("expected field matches")
	}
	m := r.FieldMatches[0]
	if m.Field != "title" {
		t.Errorf("got field %q, want title", m.Field)
	}
	if len(m.Spans) == 0 {
		t.Fatal("expected spans")
	}
	s := m.Spans[0]
	if r.Theme.Title[s.Start:s.End] != "Billing" {
		t.Errorf("span covers %q", r.Theme.Title[s.Start:s.End])
	}
}

func TestSearch_InsertionOrderKeptOnTies(t *testing.T) {
	themes := []model.Theme{
		{ID: "x", Title: "Automation first"},
		{ID: "y", Title: "Automation second"},
	}
	results := Search(themes, "automation", Options{})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Theme.ID != "x" || results[1].Theme.ID != "y" {
		t.Errorf("tie order broken: %s, %s", results[0].Theme.ID, results[1].Theme.ID)
	}
}

func TestOptions_NonPositiveValuesMeanDefaults(t *testing.T) {
	for _, v := range []float64{0, -1} {
		opts := Options{MaxDissimilarity: v, MinMatchLength: int(v)}.withDefaults()
		if opts.MaxDissimilarity != DefaultMaxDissimilarity {
			t.Errorf("MaxDissimilarity(%v) = %v, want default", v, opts.MaxDissimilarity)
		}
		if opts.MinMatchLength != DefaultMinMatchLength {
			t.Errorf("MinMatchLength(%v) = %d, want default", v, opts.MinMatchLength)
		}
		if opts.Scorer == nil {
			t.Error("Scorer not defaulted")
		}
	}
}

func TestScorer_SubstringSpans(t *testing.T) {
	sc := &fuzzyScorer{maxDissimilarity: DefaultMaxDissimilarity, minMatchLength: DefaultMinMatchLength}
	sim, spans, ok := sc.Score("meeting", "Async feedback beats another meeting")
	if !ok || sim != 1 {
		t.Fatalf("got sim %v, ok %v", sim, ok)
	}
	if len(spans) != 1 || spans[0].Start != 29 || spans[0].End != 36 {
		t.Errorf("got spans %+v", spans)
	}
}

func TestScorer_SubstringSpansSurviveCaseFolding(t *testing.T) {
	// strings.ToLower("İ") grows from 2 bytes to 3, which would shift every
	// span after it; offsets must stay aligned with the original text.
	sc := &fuzzyScorer{maxDissimilarity: DefaultMaxDissimilarity, minMatchLength: DefaultMinMatchLength}

	sim, spans, ok := sc.Score("istanbul", "İstanbul meeting")
	if !ok || sim != 1 {
		t.Fatalf("got sim %v, ok %v", sim, ok)
	}
	if len(spans) != 1 || spans[0].Start != 0 || spans[0].End != len("İstanbul") {
		t.Errorf("got spans %+v, want [{0 %d}]", spans, len("İstanbul"))
	}

	sim, spans, ok = sc.Score("İSTANBUL", "visit İstanbul")
	if !ok || sim != 1 {
		t.Fatalf("got sim %v, ok %v", sim, ok)
	}
	if len(spans) != 1 || spans[0].Start != 6 || spans[0].End != len("visit İstanbul") {
		t.Errorf("got spans %+v", spans)
	}
}

func TestScorer_RejectsShortQueries(t *testing.T) {
	sc := &fuzzyScorer{maxDissimilarity: DefaultMaxDissimilarity, minMatchLength: DefaultMinMatchLength}
	if _, _, ok := sc.Score("a", "anything at all"); ok {
		t.Error("single-character query must not match")
	}
	if _, _, ok := sc.Score("ab", ""); ok {
		t.Error("empty text must not match")
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"abc", "", 3},
		{"same", "same", 0},
		{"asinc", "async", 1},
	}
	for _, tc := range cases {
		if got := levenshtein([]rune(tc.a), []rune(tc.b)); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	tokens := tokenize("Async feedback, please!")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens", len(tokens))
	}
	if tokens[1].text != "feedback" || tokens[1].start != 6 || tokens[1].end != 14 {
		t.Errorf("got %+v", tokens[1])
	}
}
