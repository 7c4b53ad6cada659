package search

import (
	"sort"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
)

// Span is a half-open [Start, End) byte range inside a field's text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Scorer judges how well a query matches a candidate text. It returns a
// similarity in (0, 1], the matched spans for highlighting, and whether the
// text matched at all. Implementations must treat a non-match as ok=false,
// never as an error.
type Scorer interface {
	Score(query, text string) (similarity float64, spans []Span, ok bool)
}

// fuzzyScorer is the default matching backend. It tries three passes in
// decreasing strictness:
//
//  1. case-insensitive substring (similarity 1.0)
//  2. in-order subsequence via sahilm/fuzzy, accepted when the longest
//     contiguous run covers enough of the query
//  3. per-token edit distance, so single-token typos still match
type fuzzyScorer struct {
	maxDissimilarity float64
	minMatchLength   int
}

func (s *fuzzyScorer) Score(query, text string) (float64, []Span, bool) {
	query = strings.TrimSpace(query)
	queryRunes := len([]rune(query))
	if queryRunes < s.minMatchLength || text == "" {
		return 0, nil, false
	}

	if span, ok := foldIndex(text, query); ok {
		return 1, []Span{span}, true
	}

	if matches := fuzzy.Find(query, []string{text}); len(matches) > 0 {
		spans, longest := runSpans(text, matches[0].MatchedIndexes, s.minMatchLength)
		if len(spans) > 0 {
			dissimilarity := 1 - float64(longest)/float64(queryRunes)
			if dissimilarity <= s.maxDissimilarity {
				return 1 - dissimilarity, spans, true
			}
		}
	}

	return s.scoreTokens(query, text)
}

// scoreTokens matches each query token against the text's tokens by
// normalized Levenshtein distance. At least one query token must land
// within the dissimilarity bound.
func (s *fuzzyScorer) scoreTokens(query, text string) (float64, []Span, bool) {
	queryTokens := strings.Fields(strings.ToLower(query))
	if len(queryTokens) == 0 {
		return 0, nil, false
	}
	textTokens := tokenize(text)

	var spans []Span
	var simSum float64
	matched := 0

	for _, qt := range queryTokens {
		qr := []rune(qt)
		if len(qr) < s.minMatchLength {
			continue
		}
		bestDist := 1.0
		bestSpan := Span{}
		for _, tt := range textTokens {
			tr := []rune(strings.ToLower(tt.text))
			longer := len(qr)
			if len(tr) > longer {
				longer = len(tr)
			}
			d := float64(levenshtein(qr, tr)) / float64(longer)
			if d < bestDist {
				bestDist = d
				bestSpan = Span{Start: tt.start, End: tt.end}
			}
		}
		if bestDist <= s.maxDissimilarity {
			matched++
			simSum += 1 - bestDist
			spans = append(spans, bestSpan)
		}
	}

	if matched == 0 {
		return 0, nil, false
	}
	return simSum / float64(len(queryTokens)), sortSpans(spans), true
}

// foldIndex finds the first case-insensitive occurrence of query in text
// and returns its byte span. Folding is rune by rune so the span always
// addresses the original text, even when strings.ToLower would change byte
// lengths (e.g. U+0130).
func foldIndex(text, query string) (Span, bool) {
	qr := []rune(query)
	for i := range qr {
		qr[i] = unicode.ToLower(qr[i])
	}

	tr := make([]rune, 0, len(text))
	offsets := make([]int, 0, len(text)+1)
	for i, r := range text {
		tr = append(tr, unicode.ToLower(r))
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))

	for i := 0; i+len(qr) <= len(tr); i++ {
		j := 0
		for j < len(qr) && tr[i+j] == qr[j] {
			j++
		}
		if j == len(qr) {
			return Span{Start: offsets[i], End: offsets[i+len(qr)]}, true
		}
	}
	return Span{}, false
}

type token struct {
	text  string
	start int
	end   int
}

// tokenize splits text into letter/digit runs, keeping byte offsets.
func tokenize(text string) []token {
	var tokens []token
	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, token{text: text[start:i], start: start, end: i})
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{text: text[start:], start: start, end: len(text)})
	}
	return tokens
}

// runSpans groups matched rune indexes into contiguous runs and converts
// them to byte spans. Runs shorter than minLen are dropped so stray
// single-character coincidences cannot carry a match. Returns the kept
// spans and the length (in runes) of the longest run overall.
func runSpans(text string, matchedIndexes []int, minLen int) ([]Span, int) {
	if len(matchedIndexes) == 0 {
		return nil, 0
	}

	// Map rune index -> byte offset; sahilm/fuzzy reports rune positions.
	byteAt := make([]int, 0, len(text)+1)
	for i := range text {
		byteAt = append(byteAt, i)
	}
	byteAt = append(byteAt, len(text))

	var spans []Span
	longest := 0
	runStart := matchedIndexes[0]
	prev := matchedIndexes[0]

	flush := func(end int) {
		length := end - runStart + 1
		if length > longest {
			longest = length
		}
		if length >= minLen && end+1 < len(byteAt) {
			spans = append(spans, Span{Start: byteAt[runStart], End: byteAt[end+1]})
		}
	}

	for _, idx := range matchedIndexes[1:] {
		if idx == prev+1 {
			prev = idx
			continue
		}
		flush(prev)
		runStart = idx
		prev = idx
	}
	flush(prev)

	return spans, longest
}

func sortSpans(spans []Span) []Span {
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans
}
