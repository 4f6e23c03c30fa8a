package scores_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielsants/react-tetris/scores"
)

type namedStore struct {
	name string
	open func(t *testing.T) scores.Store
}

func stores() []namedStore {
	return []namedStore{
		{"memory", func(t *testing.T) scores.Store { return scores.NewMemoryStore() }},
		{"sqlite", func(t *testing.T) scores.Store {
			s, err := scores.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "db", "scores.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		}},
	}
}

func TestStoreOrdering(t *testing.T) {
	for _, ns := range stores() {
		t.Run(ns.name, func(t *testing.T) {
			store := ns.open(t)
			ctx := context.Background()
			for _, sub := range []scores.Submission{
				scores.NewSubmission("low", 10, 1, 0),
				scores.NewSubmission("high", 900, 3, 25),
				scores.NewSubmission("tie-first", 400, 2, 11),
				scores.NewSubmission("tie-second", 400, 2, 12),
			} {
				_, err := store.Create(ctx, sub)
				require.NoError(t, err)
			}

			records, err := store.Top(ctx, 10)
			require.NoError(t, err)
			names := make([]string, 0, len(records))
			for _, r := range records {
				names = append(names, r.PlayerName)
			}
			assert.Equal(t, []string{"high", "tie-first", "tie-second", "low"}, names)

			top, err := store.Top(ctx, 2)
			require.NoError(t, err)
			assert.Len(t, top, 2)
		})
	}
}

func TestStoreCreateAssignsIDs(t *testing.T) {
	for _, ns := range stores() {
		t.Run(ns.name, func(t *testing.T) {
			store := ns.open(t)
			ctx := context.Background()
			first, err := store.Create(ctx, scores.NewSubmission(" Ann ", 120, 2, 10))
			require.NoError(t, err)
			second, err := store.Create(ctx, scores.NewSubmission("Bob", 0, 1, 0))
			require.NoError(t, err)

			assert.Equal(t, scores.Record{ID: first.ID, PlayerName: "Ann", Score: 120, Level: 2, Lines: 10}, first)
			assert.Greater(t, second.ID, first.ID)
		})
	}
}

func TestStoreRejectsInvalid(t *testing.T) {
	for _, ns := range stores() {
		t.Run(ns.name, func(t *testing.T) {
			store := ns.open(t)
			_, err := store.Create(context.Background(), scores.NewSubmission("A", -1, 1, 0))
			assert.True(t, errors.Is(err, scores.ErrInvalid))

			records, err := store.Top(context.Background(), 10)
			require.NoError(t, err)
			assert.Empty(t, records)
		})
	}
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	ctx := context.Background()

	s, err := scores.OpenSQLite(ctx, path)
	require.NoError(t, err)
	_, err = s.Create(ctx, scores.NewSubmission("Kept", 77, 1, 7))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = scores.OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	records, err := s.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Kept", records[0].PlayerName)
}

func TestMemoryStoreConcurrentCreates(t *testing.T) {
	store := scores.NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Create(context.Background(), scores.NewSubmission("P", i, 1, 0))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	records, err := store.Top(context.Background(), scores.MaxLimit)
	require.NoError(t, err)
	require.Len(t, records, 50)
	ids := map[int64]bool{}
	for i, r := range records {
		ids[r.ID] = true
		if i > 0 {
			assert.GreaterOrEqual(t, records[i-1].Score, r.Score)
		}
	}
	assert.Len(t, ids, 50)
}
