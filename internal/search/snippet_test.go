package search

import (
	"reflect"
	"strings"
	"testing"
)

func TestMatchPreview_CentersOnSpan(t *testing.T) {
	got := MatchPreview("abcdefghij", []Span{{Start: 4, End: 6}}, 4)
	if got != "...cdef..." {
		t.Errorf("got %q, want %q", got, "...cdef...")
	}
}

func TestMatchPreview_NoSpans(t *testing.T) {
	if got := MatchPreview("hello", nil, 150); got != "hello" {
		t.Errorf("got %q", got)
	}
	long := strings.Repeat("x", 200)
	if got := MatchPreview(long, nil, 150); got != long[:150] {
		t.Errorf("got %d chars, want 150", len(got))
	}
}

func TestMatchPreview_ClampsToStart(t *testing.T) {
	got := MatchPreview("abcdefghij", []Span{{Start: 0, End: 2}}, 6)
	// Window starts at the text start: no leading ellipsis.
	if strings.HasPrefix(got, "...") {
		t.Errorf("unexpected leading ellipsis in %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("missing trailing ellipsis in %q", got)
	}
}

func TestMatchPreview_ClampsToEnd(t *testing.T) {
	got := MatchPreview("abcdefghij", []Span{{Start: 9, End: 10}}, 6)
	if !strings.HasPrefix(got, "...") {
		t.Errorf("missing leading ellipsis in %q", got)
	}
	if strings.HasSuffix(got, "...") {
		t.Errorf("unexpected trailing ellipsis in %q", got)
	}
}

func TestMatchPreview_WholeTextFits(t *testing.T) {
	if got := MatchPreview("short", []Span{{Start: 1, End: 3}}, 150); got != "short" {
		t.Errorf("got %q", got)
	}
}

func TestHighlightSegments(t *testing.T) {
	got := HighlightSegments("hello world", []Span{{Start: 6, End: 11}})
	want := []Segment{
		{Text: "hello "},
		{Text: "world", IsMatch: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v", got)
	}
}

func TestHighlightSegments_NoSpans(t *testing.T) {
	got := HighlightSegments("plain", nil)
	if len(got) != 1 || got[0].IsMatch || got[0].Text != "plain" {
		t.Errorf("got %+v", got)
	}
}

func TestHighlightSegments_UnsortedAndOverlapping(t *testing.T) {
	got := HighlightSegments("abcdef", []Span{{Start: 4, End: 6}, {Start: 0, End: 2}, {Start: 1, End: 3}})
	want := []Segment{
		{Text: "ab", IsMatch: true},
		{Text: "c", IsMatch: true},
		{Text: "d"},
		{Text: "ef", IsMatch: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v", got)
	}
}
