package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(Config{Path: filepath.Join(t.TempDir(), "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "history.db")

	store, err := Open(Config{Path: path})
	require.NoError(t, err)
	defer store.Close()

	require.True(t, store.Enabled())
}

func TestRecordAndRecent(t *testing.T) {
	store := newTestStore(t)

	err := store.Record(context.Background(), Record{
		URL:        "https://example.com/docs",
		Status:     StatusOK,
		Title:      "Docs",
		Cards:      1,
		Files:      3,
		Images:     2,
		Links:      10,
		Downloaded: true,
		DurationMS: 4200,
	})
	require.NoError(t, err)

	got, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)

	rec := got[0]
	require.NotEmpty(t, rec.ID)
	require.Equal(t, "https://example.com/docs", rec.URL)
	require.Equal(t, StatusOK, rec.Status)
	require.Empty(t, rec.Error)
	require.Equal(t, "Docs", rec.Title)
	require.Equal(t, 3, rec.Files)
	require.True(t, rec.Downloaded)
	require.EqualValues(t, 4200, rec.DurationMS)
	require.False(t, rec.CreatedAt.IsZero())
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		err := store.Record(context.Background(), Record{
			URL:       fmt.Sprintf("https://example.com/%d", i),
			Status:    StatusOK,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	got, err := store.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "https://example.com/2", got[0].URL)
	require.Equal(t, "https://example.com/1", got[1].URL)
}

func TestRecordPrunesOldRuns(t *testing.T) {
	store := newTestStore(t)
	store.keepRuns = 2
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		err := store.Record(context.Background(), Record{
			URL:       fmt.Sprintf("https://example.com/%d", i),
			Status:    StatusOK,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	got, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "https://example.com/2", got[0].URL)
	require.Equal(t, "https://example.com/1", got[1].URL)
}

func TestRecordUpsertsOnSameID(t *testing.T) {
	store := newTestStore(t)
	id := uuid.NewString()

	err := store.Record(context.Background(), Record{
		ID:     id,
		URL:    "https://example.com",
		Status: StatusError,
		Error:  "scraper exited with an error",
	})
	require.NoError(t, err)

	err = store.Record(context.Background(), Record{
		ID:     id,
		URL:    "https://example.com",
		Status: StatusOK,
		Files:  2,
	})
	require.NoError(t, err)

	got, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, StatusOK, got[0].Status)
	require.Empty(t, got[0].Error)
	require.Equal(t, 2, got[0].Files)
}

func TestRecordRejectsUnknownStatus(t *testing.T) {
	store := newTestStore(t)

	err := store.Record(context.Background(), Record{URL: "https://example.com", Status: "weird"})
	require.Error(t, err)
}

func TestDisabledStoreSkipsPersistence(t *testing.T) {
	store, err := Open(Config{})
	require.NoError(t, err)
	defer store.Close()

	require.False(t, store.Enabled())
	require.NoError(t, store.Record(context.Background(), Record{URL: "https://example.com", Status: StatusOK}))

	got, err := store.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Empty(t, got)
}
