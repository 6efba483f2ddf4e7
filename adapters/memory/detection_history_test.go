package memory

import (
	"context"
	"sync"
	"testing"

	"structdetect/domain/core"
	"structdetect/domain/structured"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(t structured.EntityType) *structured.HistoryEntry {
	return &structured.HistoryEntry{
		ID:   core.NewDetectionID(),
		Type: t,
	}
}

func TestDetectionHistorySaveAndGet(t *testing.T) {
	ctx := context.Background()
	history := NewDetectionHistory(10)

	entry := newEntry(structured.TypeLeadList)
	require.NoError(t, history.Save(ctx, entry))

	got, err := history.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Same(t, entry, got)

	_, err = history.GetByID(ctx, core.NewDetectionID())
	assert.True(t, core.IsNotFoundError(err))
}

func TestDetectionHistoryEvictsOldest(t *testing.T) {
	ctx := context.Background()
	history := NewDetectionHistory(2)

	first := newEntry(structured.TypeStudentRoster)
	second := newEntry(structured.TypeClassSchedule)
	third := newEntry(structured.TypeLeadList)
	for _, e := range []*structured.HistoryEntry{first, second, third} {
		require.NoError(t, history.Save(ctx, e))
	}

	recent, err := history.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, third.ID, recent[0].ID)
	assert.Equal(t, second.ID, recent[1].ID)

	_, err = history.GetByID(ctx, first.ID)
	assert.Error(t, err)
}

func TestDetectionHistoryListLimitAndCounts(t *testing.T) {
	ctx := context.Background()
	history := NewDetectionHistory(10)

	for _, typ := range []structured.EntityType{
		structured.TypeStudentRoster, structured.TypeStudentRoster, structured.TypeUnknown,
	} {
		require.NoError(t, history.Save(ctx, newEntry(typ)))
	}

	recent, err := history.ListRecent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
	assert.Equal(t, structured.TypeUnknown, recent[0].Type)

	counts, err := history.CountByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[structured.EntityType]int{
		structured.TypeStudentRoster: 2,
		structured.TypeUnknown:       1,
	}, counts)
}

func TestDetectionHistoryConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	history := NewDetectionHistory(1000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = history.Save(ctx, newEntry(structured.TypeClassSchedule))
		}()
	}
	wg.Wait()

	recent, err := history.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 50)
}

func TestDetectionHistorySaveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewDetectionHistory(1).Save(ctx, newEntry(structured.TypeUnknown)), context.Canceled)
}
