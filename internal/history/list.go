// Package history keeps the list of previously submitted analyses.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/launchlens/pkg/launchlens"
)

// debounceWindow suppresses repeated fetches from rapid re-opens.
const debounceWindow = time.Second

// Fetcher lists history entries. launchlens.Client satisfies it.
type Fetcher interface {
	History(ctx context.Context) ([]launchlens.HistoryEntry, error)
}

// List is the history collaborator. It refreshes on every Open, except
// that an Open within a second of the previous fetch reuses that result
// unless MarkStale was called in between.
type List struct {
	fetcher Fetcher
	now     func() time.Time

	mu        sync.Mutex
	entries   []launchlens.HistoryEntry
	lastFetch time.Time
	stale     bool
}

// NewList returns an empty history list.
func NewList(fetcher Fetcher) *List {
	return &List{fetcher: fetcher, now: time.Now, stale: true}
}

// MarkStale records that new history exists, for example after an analysis
// succeeded. The next Open always fetches.
func (l *List) MarkStale() {
	l.mu.Lock()
	l.stale = true
	l.mu.Unlock()
}

// Stale reports whether the next Open is guaranteed to fetch.
func (l *List) Stale() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stale
}

// Open returns the history, fetching it unless a fetch just happened. A
// failed fetch empties the list.
func (l *List) Open(ctx context.Context) ([]launchlens.HistoryEntry, error) {
	l.mu.Lock()
	if !l.stale && l.now().Sub(l.lastFetch) < debounceWindow {
		entries := append([]launchlens.HistoryEntry(nil), l.entries...)
		l.mu.Unlock()
		return entries, nil
	}
	l.lastFetch = l.now()
	l.stale = false
	l.mu.Unlock()

	entries, err := l.fetcher.History(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.entries = nil
		zap.L().Warn("history: fetch failed", zap.Error(err))
		return nil, eris.Wrap(err, "history: open")
	}
	l.entries = append([]launchlens.HistoryEntry(nil), entries...)
	return append([]launchlens.HistoryEntry(nil), entries...), nil
}

// Entries returns the last fetched entries without fetching.
func (l *List) Entries() []launchlens.HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]launchlens.HistoryEntry(nil), l.entries...)
}

// Clear drops the cached entries, used on session teardown.
func (l *List) Clear() {
	l.mu.Lock()
	l.entries = nil
	l.stale = true
	l.mu.Unlock()
}
