package search

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"synthdeck/internal/model"
)

type delivery struct {
	query   string
	results []Result
}

func newTestLive(t *testing.T, debounce time.Duration) (*Live, chan delivery) {
	t.Helper()
	themes := fixtureThemes()
	ch := make(chan delivery, 16)
	live := NewLive(
		func() []model.Theme { return themes },
		func(query string, results []Result) {
			ch <- delivery{query: query, results: results}
		},
		Options{},
		debounce,
		zerolog.Nop(),
	)
	t.Cleanup(live.Close)
	return live, ch
}

func waitDelivery(t *testing.T, ch chan delivery) delivery {
	t.Helper()
	select {
	case d := <-ch:
		return d
	case <-time.After(2 * time.Second):
		t.Fatal("no delivery")
		return delivery{}
	}
}

func assertNoDelivery(t *testing.T, ch chan delivery, wait time.Duration) {
	t.Helper()
	select {
	case d := <-ch:
		t.Fatalf("unexpected delivery for %q", d.query)
	case <-time.After(wait):
	}
}

func TestLive_DebouncesBursts(t *testing.T) {
	live, ch := newTestLive(t, 30*time.Millisecond)

	// Keystroke burst: only the final query may produce results.
	live.Query("a")
	live.Query("as")
	live.Query("asy")
	live.Query("async")

	d := waitDelivery(t, ch)
	if d.query != "async" {
		t.Errorf("got delivery for %q, want async", d.query)
	}
	if len(d.results) == 0 {
		t.Error("expected results for async")
	}
	assertNoDelivery(t, ch, 100*time.Millisecond)
}

func TestLive_SupersededQueryDiscarded(t *testing.T) {
	live, ch := newTestLive(t, 10*time.Millisecond)

	live.Query("billing")
	// Let the first query start, then supersede it.
	time.Sleep(5 * time.Millisecond)
	live.Query("async")

	d := waitDelivery(t, ch)
	if d.query != "async" {
		t.Errorf("got delivery for %q, want async", d.query)
	}
	assertNoDelivery(t, ch, 100*time.Millisecond)
}

func TestLive_CloseDropsPending(t *testing.T) {
	live, ch := newTestLive(t, 20*time.Millisecond)

	live.Query("async")
	live.Close()

	assertNoDelivery(t, ch, 100*time.Millisecond)

	// Queries after Close are ignored.
	live.Query("billing")
	assertNoDelivery(t, ch, 100*time.Millisecond)
}

func TestLive_SequentialQueriesBothDeliver(t *testing.T) {
	live, ch := newTestLive(t, 10*time.Millisecond)

	live.Query("async")
	first := waitDelivery(t, ch)
	if first.query != "async" {
		t.Errorf("got %q", first.query)
	}

	live.Query("billing")
	second := waitDelivery(t, ch)
	if second.query != "billing" {
		t.Errorf("got %q", second.query)
	}
}
