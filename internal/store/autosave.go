package store

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"synthdeck/internal/model"
)

// DefaultAutosaveDelay coalesces rapid document changes into one write.
const DefaultAutosaveDelay = 500 * time.Millisecond

// DocumentSaver persists a document snapshot.
type DocumentSaver interface {
	SaveDocument(model.Document) error
}

// Autosaver debounces fire-and-forget persistence. Each Save stages a
// snapshot and restarts the delay timer; when the timer fires the newest
// snapshot is written. Write failures are logged and surfaced through the
// OnError hook but never affect the in-memory document.
type Autosaver struct {
	saver DocumentSaver
	delay time.Duration
	log   zerolog.Logger

	// OnError, when set, receives write failures (e.g. to notify the
	// user). Called from the timer goroutine.
	OnError func(error)

	mu      sync.Mutex
	timer   *time.Timer
	pending *model.Document
	closed  bool
}

// NewAutosaver wraps saver with a debounced writer.
func NewAutosaver(saver DocumentSaver, delay time.Duration, log zerolog.Logger) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosaver{saver: saver, delay: delay, log: log}
}

// Save stages d for writing after the debounce delay.
func (a *Autosaver) Save(d model.Document) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.pending = &d
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.writePending)
}

// Flush writes any staged snapshot immediately.
func (a *Autosaver) Flush() error {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
	}
	doc := a.pending
	a.pending = nil
	a.mu.Unlock()

	if doc == nil {
		return nil
	}
	return a.saver.SaveDocument(*doc)
}

// Close flushes and stops the autosaver; later Saves are ignored.
func (a *Autosaver) Close() error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	return a.Flush()
}

func (a *Autosaver) writePending() {
	a.mu.Lock()
	doc := a.pending
	a.pending = nil
	a.mu.Unlock()

	if doc == nil {
		return
	}
	if err := a.saver.SaveDocument(*doc); err != nil {
		a.log.Error().Err(err).Msg("autosave failed")
		if a.OnError != nil {
			a.OnError(err)
		}
		return
	}
	a.log.Debug().Msg("autosaved document")
}
