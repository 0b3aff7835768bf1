package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/launchlens/pkg/launchlens"
	"github.com/sells-group/launchlens/pkg/launchlens/mocks"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestList(t *testing.T) (*List, *mocks.MockClient, *fakeClock) {
	t.Helper()
	f := mocks.NewMockClient(t)
	clock := &fakeClock{t: time.Date(2025, 7, 30, 12, 0, 0, 0, time.UTC)}
	l := NewList(f)
	l.now = clock.now
	return l, f, clock
}

func TestList_OpenFetches(t *testing.T) {
	l, f, _ := newTestList(t)
	f.On("History", mock.Anything).Return([]launchlens.HistoryEntry{{ID: "1", Idea: "Bakery"}}, nil).Once()

	entries, err := l.Open(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Bakery", entries[0].Idea)
	assert.False(t, l.Stale())
}

func TestList_DebouncesRapidReopen(t *testing.T) {
	l, f, clock := newTestList(t)
	f.On("History", mock.Anything).Return([]launchlens.HistoryEntry{{ID: "1"}}, nil).Once()

	_, err := l.Open(context.Background())
	require.NoError(t, err)

	clock.advance(500 * time.Millisecond)
	entries, err := l.Open(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "served from the previous fetch")
	f.AssertNumberOfCalls(t, "History", 1)
}

func TestList_RefreshesOnEveryOpenAfterWindow(t *testing.T) {
	l, f, clock := newTestList(t)
	f.On("History", mock.Anything).Return([]launchlens.HistoryEntry{{ID: "1"}}, nil).Twice()

	_, _ = l.Open(context.Background())
	clock.advance(2 * time.Second)
	_, _ = l.Open(context.Background())
	f.AssertNumberOfCalls(t, "History", 2)
}

func TestList_MarkStaleBypassesDebounce(t *testing.T) {
	l, f, clock := newTestList(t)
	f.On("History", mock.Anything).Return([]launchlens.HistoryEntry{{ID: "1"}}, nil).Once()
	f.On("History", mock.Anything).Return([]launchlens.HistoryEntry{{ID: "1"}, {ID: "2"}}, nil).Once()

	_, _ = l.Open(context.Background())
	clock.advance(100 * time.Millisecond)
	l.MarkStale()

	entries, err := l.Open(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestList_FailureEmptiesList(t *testing.T) {
	l, f, clock := newTestList(t)
	f.On("History", mock.Anything).Return([]launchlens.HistoryEntry{{ID: "1"}}, nil).Once()
	f.On("History", mock.Anything).Return(nil, errors.New("500")).Once()

	_, _ = l.Open(context.Background())
	clock.advance(2 * time.Second)

	entries, err := l.Open(context.Background())
	require.Error(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, l.Entries())
}

func TestList_Clear(t *testing.T) {
	l, f, _ := newTestList(t)
	f.On("History", mock.Anything).Return([]launchlens.HistoryEntry{{ID: "1"}}, nil).Once()

	_, _ = l.Open(context.Background())
	l.Clear()
	assert.Empty(t, l.Entries())
	assert.True(t, l.Stale())
}
