package search

import "sort"

// DefaultPreviewLength is the target snippet width in bytes.
const DefaultPreviewLength = 150

// MatchPreview returns a window of text suitable for a result list. With no
// spans the text is truncated from the start. With spans the window is
// centered on the midpoint of the first span, clamped to the text bounds,
// with "..." marking whichever ends were cut. Offsets are byte offsets, as
// produced by the scorer.
func MatchPreview(text string, spans []Span, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultPreviewLength
	}
	if len(spans) == 0 || text == "" {
		if len(text) > maxLength {
			return text[:maxLength]
		}
		return text
	}

	first := spans[0]
	center := (first.Start + first.End - 1) / 2
	half := maxLength / 2

	start := center - half
	if start < 0 {
		start = 0
	}
	end := center + half
	if end > len(text) {
		end = len(text)
	}

	snippet := text[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(text) {
		snippet = snippet + "..."
	}
	return snippet
}

// Segment is a run of text that either is or is not part of a match.
type Segment struct {
	Text    string `json:"text"`
	IsMatch bool   `json:"isMatch"`
}

// HighlightSegments splits text into alternating plain and matched runs so
// a renderer can emphasize the matched fragments. Overlapping or unsorted
// spans are tolerated.
func HighlightSegments(text string, spans []Span) []Segment {
	if len(spans) == 0 {
		return []Segment{{Text: text}}
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var segments []Segment
	last := 0
	for _, s := range sorted {
		start, end := s.Start, s.End
		if start < last {
			start = last
		}
		if end > len(text) {
			end = len(text)
		}
		if start >= end {
			continue
		}
		if start > last {
			segments = append(segments, Segment{Text: text[last:start]})
		}
		segments = append(segments, Segment{Text: text[start:end], IsMatch: true})
		last = end
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}
