package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lpc17xx/canfilter/canfilter"
)

func TestSession_InsertRecordsHistory(t *testing.T) {
	s := NewSession("s1", nil)

	res := s.InsertStandardFilter(canfilter.CAN1, 0x100)
	assert.Equal(t, 0, res.Code)
	assert.NoError(t, res.Err)

	last, ok := s.LastMutation()
	require.True(t, ok)
	assert.Equal(t, "insertStandardFilter", last.Op)
	assert.Equal(t, uint16(0), last.Before.Counts.Standard)
	assert.Equal(t, uint16(1), last.After.Counts.Standard)
}

func TestSession_FailedMutationRecordsError(t *testing.T) {
	s := NewSession("s1", nil)

	res := s.DeleteStandardFilter(canfilter.CAN1, 0x100)
	assert.Equal(t, -1, res.Code)
	assert.ErrorIs(t, res.Err, canfilter.ErrTableEmpty)

	last, ok := s.LastMutation()
	require.True(t, ok)
	assert.ErrorIs(t, last.Err, canfilter.ErrTableEmpty)
}

// TestSession_SnapshotMatchesEngineAfterMutation covers the
// no-observability-drift property: LastMutation's after-snapshot always
// equals the engine's actual post-call geometry and counts.
func TestSession_SnapshotMatchesEngineAfterMutation(t *testing.T) {
	s := NewSession("s1", nil)

	require.Equal(t, 0, s.InsertExtendedGroupFilter(canfilter.CAN1, 0x1000, 0x1100).Code)

	last, ok := s.LastMutation()
	require.True(t, ok)

	live := s.Snapshot()
	assert.Equal(t, live.Counts, last.After.Counts)
	assert.Equal(t, live.Addresses, last.After.Addresses)
	assert.Equal(t, live.Mode, last.After.Mode)
}

// TestSession_ConcurrentSessionsDoNotShareState covers independent
// engines per session under concurrent mutation.
func TestSession_ConcurrentSessionsDoNotShareState(t *testing.T) {
	a := NewSession("a", nil)
	b := NewSession("b", nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			a.InsertExtendedFilter(canfilter.CAN1, uint32(i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 30; i++ {
			b.InsertExtendedFilter(canfilter.CAN1, uint32(i))
		}
	}()
	wg.Wait()

	assert.Equal(t, uint16(50), a.Snapshot().Counts.Extended)
	assert.Equal(t, uint16(30), b.Snapshot().Counts.Extended)
}

func TestSession_History(t *testing.T) {
	s := NewSession("s1", nil)
	s.InsertStandardFilter(canfilter.CAN1, 0x100)
	s.InsertStandardFilter(canfilter.CAN1, 0x200)

	hist := s.History()
	assert.Len(t, hist, 2)
}

func TestSession_ResetFilter(t *testing.T) {
	s := NewSession("s1", nil)
	s.InsertStandardFilter(canfilter.CAN1, 0x100)

	res := s.ResetFilter()
	assert.Equal(t, 0, res.Code)
	assert.Equal(t, canfilter.Counts{}, s.Snapshot().Counts)
}
