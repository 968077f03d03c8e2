package metrics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "metrics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func at(s *Store, ts time.Time) { s.now = func() time.Time { return ts } }

func TestHashIP(t *testing.T) {
	s := newTestStore(t)

	h := s.HashIP("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, s.HashIP("203.0.113.7"))
	assert.NotEqual(t, h, s.HashIP("203.0.113.8"))
	assert.NotContains(t, h, "203")
}

func TestHashIP_SaltedPerStore(t *testing.T) {
	a := newTestStore(t)
	b := newTestStore(t)
	assert.NotEqual(t, a.HashIP("203.0.113.7"), b.HashIP("203.0.113.7"))
}

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	at(s, base)
	require.NoError(t, s.Record(ctx, "203.0.113.7", "curl/8", "/"))
	at(s, base.Add(time.Minute))
	require.NoError(t, s.Record(ctx, "203.0.113.8", "firefox", "/projects"))

	visits, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visits, 2)

	assert.Equal(t, "/projects", visits[0].Path)
	assert.Equal(t, "firefox", visits[0].UserAgent)
	assert.Equal(t, s.HashIP("203.0.113.8"), visits[0].HashedIP)
	assert.True(t, visits[0].Timestamp.Equal(base.Add(time.Minute)))
	assert.Equal(t, "/", visits[1].Path)

	limited, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)

	at(s, now.Add(-30*24*time.Hour))
	require.NoError(t, s.Record(ctx, "10.0.0.1", "ua", "/"))
	at(s, now.Add(-3*24*time.Hour))
	require.NoError(t, s.Record(ctx, "10.0.0.2", "ua", "/projects"))
	at(s, now.Add(-time.Hour))
	require.NoError(t, s.Record(ctx, "10.0.0.1", "ua", "/"))
	require.NoError(t, s.Record(ctx, "10.0.0.3", "ua", "/"))

	at(s, now)
	stats, err := s.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalVisitors)
	assert.Equal(t, int64(3), stats.UniqueVisitors)
	assert.Equal(t, int64(2), stats.VisitorsToday)
	assert.Equal(t, int64(3), stats.VisitorsThisWeek)
	require.NotEmpty(t, stats.TopPaths)
	assert.Equal(t, PathCount{Path: "/", Visits: 3}, stats.TopPaths[0])
	assert.Len(t, stats.RecentVisitors, 4)
}

func TestStats_Empty(t *testing.T) {
	stats, err := newTestStore(t).Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalVisitors)
	assert.Empty(t, stats.TopPaths)
	assert.Empty(t, stats.RecentVisitors)
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	at(s, now.AddDate(-2, 0, 0))
	require.NoError(t, s.Record(ctx, "10.0.0.1", "ua", "/"))
	at(s, now.AddDate(0, -1, 0))
	require.NoError(t, s.Record(ctx, "10.0.0.2", "ua", "/"))

	at(s, now)
	removed, err := s.Cleanup(ctx, 365*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	visits, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, s.HashIP("10.0.0.2"), visits[0].HashedIP)
}

func TestRunCleanup_StopsOnCancel(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.RunCleanup(ctx, time.Hour, time.Hour)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("RunCleanup did not stop after cancel")
	}
}

func TestNewToken(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
