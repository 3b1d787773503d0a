package docstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	pkgerrors "github.com/ideabank/ideabank-backend/pkg/errors"
	"github.com/stretchr/testify/require"
)

type counterDoc struct {
	LastID int64   `json:"last_id"`
	IDs    []int64 `json:"ids"`
}

func defaultCounterDoc() (*counterDoc, error) {
	return &counterDoc{}, nil
}

func openCounterStore(t *testing.T) (*Store[counterDoc], string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "counters.json")
	store, err := Open("counters", path, defaultCounterDoc)
	require.NoError(t, err)
	return store, path
}

func TestOpenInitializesMissingDocument(t *testing.T) {
	_, path := openCounterStore(t)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"last_id": 0`)
}

func TestUpdatePersistsAcrossReopen(t *testing.T) {
	store, path := openCounterStore(t)

	err := store.Update(context.Background(), func(doc *counterDoc) error {
		doc.LastID = 7
		doc.IDs = append(doc.IDs, 7)
		return nil
	})
	require.NoError(t, err)

	reopened, err := Open("counters", path, defaultCounterDoc)
	require.NoError(t, err)

	var got counterDoc
	require.NoError(t, reopened.View(context.Background(), func(doc *counterDoc) error {
		got = *doc
		return nil
	}))
	require.Equal(t, int64(7), got.LastID)
	require.Equal(t, []int64{7}, got.IDs)
}

func TestFailedMutatorWritesNothing(t *testing.T) {
	store, path := openCounterStore(t)

	require.NoError(t, store.Update(context.Background(), func(doc *counterDoc) error {
		doc.LastID = 3
		return nil
	}))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	boom := errors.New("mutator failed")
	err = store.Update(context.Background(), func(doc *counterDoc) error {
		doc.LastID = 99 // partial mutation that must not survive
		return boom
	})
	require.ErrorIs(t, err, boom)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))

	// The discarded mutation must not leak into the next transaction.
	require.NoError(t, store.View(context.Background(), func(doc *counterDoc) error {
		require.Equal(t, int64(3), doc.LastID)
		return nil
	}))
}

func TestOpenCorruptDocumentIsStorageUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open("broken", path, defaultCounterDoc)
	require.Error(t, err)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStorageUnavailable),
		"expected STORAGE_UNAVAILABLE, got %v", err)
}

func TestConcurrentUpdatesAllocateUniqueIDs(t *testing.T) {
	store, _ := openCounterStore(t)

	const writers = 32
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			err := store.Update(context.Background(), func(doc *counterDoc) error {
				next := doc.LastID + 1
				doc.LastID = next
				doc.IDs = append(doc.IDs, next)
				return nil
			})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.NoError(t, store.View(context.Background(), func(doc *counterDoc) error {
		require.Equal(t, int64(writers), doc.LastID)
		require.Len(t, doc.IDs, writers)
		seen := map[int64]bool{}
		for _, id := range doc.IDs {
			require.False(t, seen[id], "identifier %d allocated twice", id)
			seen[id] = true
		}
		return nil
	}))
}

func TestUpdateHonorsContextCancellation(t *testing.T) {
	store, _ := openCounterStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Update(ctx, func(doc *counterDoc) error {
		t.Fatal("mutator must not run on a cancelled context")
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}
