package suggest

import "context"

// Source supplies the known-token corpora. Implementations may perform I/O;
// lookup failures are treated by callers as "no suggestions" since
// autocomplete is a non-critical enhancement.
type Source interface {
	Contexts(ctx context.Context) ([]string, error)
	Tags(ctx context.Context) ([]string, error)
}

// Tracker orders asynchronous corpus lookups. Each lookup takes a sequence
// number from Next; a result is applied only when Latest still returns that
// number, so a superseded lookup's result is silently discarded.
//
// Single-goroutine use only: the TUI event loop issues lookups and applies
// results on the same goroutine, so no locking is needed.
type Tracker struct {
	seq uint64
}

// Next registers a new lookup and returns its sequence number.
func (t *Tracker) Next() uint64 {
	t.seq++
	return t.seq
}

// Latest returns the sequence number of the most recent lookup.
func (t *Tracker) Latest() uint64 {
	return t.seq
}

// Current reports whether a result with the given sequence number is still
// the most recent and should be applied.
func (t *Tracker) Current(seq uint64) bool {
	return seq == t.seq
}

// StaticSource serves fixed corpora, useful for tests and offline callers.
type StaticSource struct {
	ContextList []string
	TagList     []string
}

func (s StaticSource) Contexts(ctx context.Context) ([]string, error) {
	return s.ContextList, nil
}

func (s StaticSource) Tags(ctx context.Context) ([]string, error) {
	return s.TagList, nil
}
