package validate

import (
	"fmt"
	"strings"
)

// Summary renders a one-line human-readable verdict for a result.
func Summary(r Result) string {
	if r.IsValid && len(r.Warnings) == 0 {
		return "Valid! Your data structure is correct and ready to import."
	}

	var b strings.Builder
	if n := len(r.Errors); n > 0 {
		fmt.Fprintf(&b, "%d %s found. ", n, plural("error", n))
	}
	if n := len(r.Warnings); n > 0 {
		fmt.Fprintf(&b, "%d %s found. ", n, plural("warning", n))
	}
	if len(r.Errors) == 0 && len(r.Warnings) > 0 {
		b.WriteString("You can still import, but fixing warnings is recommended.")
	}
	return strings.TrimSpace(b.String())
}

// FirstMessages joins up to limit error messages with "; ", appending "..."
// when more were truncated. Used by import to keep failure output short.
func FirstMessages(issues []Issue, limit int) string {
	if len(issues) == 0 {
		return ""
	}
	n := limit
	if len(issues) < n {
		n = len(issues)
	}
	msgs := make([]string, n)
	for i := 0; i < n; i++ {
		msgs[i] = issues[i].Message
	}
	out := strings.Join(msgs, "; ")
	if len(issues) > limit {
		out += "..."
	}
	return out
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
