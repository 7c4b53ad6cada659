package search

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"synthdeck/internal/model"
)

// DefaultDebounce quantizes live search to the last keystroke after this
// much inactivity. A latency/throughput tradeoff, not a correctness
// requirement.
const DefaultDebounce = 300 * time.Millisecond

// Live is a debounced search session. Queries may be submitted at any rate
// from any goroutine; after the debounce window the latest query runs
// against a fresh snapshot of the hierarchy and its results are delivered.
// Results of queries that were superseded while in flight are discarded,
// so the callback only ever sees the most recent query.
type Live struct {
	source   func() []model.Theme
	deliver  func(query string, results []Result)
	opts     Options
	debounce time.Duration
	log      zerolog.Logger

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64
	closed bool
}

// NewLive builds a session. source must return the current hierarchy and
// deliver receives ranked results; deliver runs on a timer goroutine and
// must not call back into the session.
func NewLive(source func() []model.Theme, deliver func(string, []Result), opts Options, debounce time.Duration, log zerolog.Logger) *Live {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Live{
		source:   source,
		deliver:  deliver,
		opts:     opts,
		debounce: debounce,
		log:      log,
	}
}

// Query schedules q, superseding any pending or in-flight query.
func (l *Live) Query(q string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.gen++
	gen := l.gen
	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = time.AfterFunc(l.debounce, func() { l.run(q, gen) })
}

func (l *Live) run(q string, gen uint64) {
	started := time.Now()
	results := Search(l.source(), q, l.opts)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || gen != l.gen {
		l.log.Debug().Str("query", q).Msg("discarding stale search results")
		return
	}
	l.log.Debug().Str("query", q).Int("results", len(results)).Dur("took", time.Since(started)).Msg("search complete")
	l.deliver(q, results)
}

// Close stops the session; pending queries are dropped.
func (l *Live) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	if l.timer != nil {
		l.timer.Stop()
	}
}
