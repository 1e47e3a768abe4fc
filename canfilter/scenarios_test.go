package canfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenario_SectionBoundariesAdvance covers S3: one entry of each kind
// advances every section-address register by exactly its entry's width.
func TestScenario_SectionBoundariesAdvance(t *testing.T) {
	e, _ := newTestEngine()

	require.NoError(t, e.InsertStandardFilter(CAN1, 0x100))
	require.NoError(t, e.InsertStandardGroupFilter(CAN1, 0x10, 0x20))
	require.NoError(t, e.InsertExtendedFilter(CAN1, 0x1000))
	require.NoError(t, e.InsertExtendedGroupFilter(CAN1, 0x2000, 0x3000))

	addrs := e.Addresses()
	assert.Equal(t, uint32(0), addrs.SFFsa)
	assert.Equal(t, uint32(4), addrs.SFFGRPsa)
	assert.Equal(t, uint32(8), addrs.EFFsa)
	assert.Equal(t, uint32(12), addrs.EFFGRPsa)
	assert.Equal(t, uint32(20), addrs.ENDofTable)
}

// TestScenario_DeleteUnwindsBoundaries checks that deleting every inserted
// entry in S3 returns the geometry to its power-on-reset shape.
func TestScenario_DeleteUnwindsBoundaries(t *testing.T) {
	e, _ := newTestEngine()

	require.NoError(t, e.InsertStandardFilter(CAN1, 0x100))
	require.NoError(t, e.InsertStandardGroupFilter(CAN1, 0x10, 0x20))
	require.NoError(t, e.InsertExtendedFilter(CAN1, 0x1000))
	require.NoError(t, e.InsertExtendedGroupFilter(CAN1, 0x2000, 0x3000))

	require.NoError(t, e.DeleteExtendedGroupFilter(CAN1, 0x2000, 0x3000))
	require.NoError(t, e.DeleteExtendedFilter(CAN1, 0x1000))
	require.NoError(t, e.DeleteStandardGroupFilter(CAN1, 0x10, 0x20))
	require.NoError(t, e.DeleteStandardFilter(CAN1, 0x100))

	assert.Equal(t, Counts{}, e.Counts())
	addrs := e.Addresses()
	assert.Equal(t, Addresses{}, addrs)
}

// TestScenario_InterleavedInsertsPreserveOrdering builds a table with
// several entries per section in scrambled insertion order and checks
// every section reads back strictly ascending.
func TestScenario_InterleavedInsertsPreserveOrdering(t *testing.T) {
	e, f := newTestEngine()

	for _, id := range []uint16{0x300, 0x100, 0x500, 0x200, 0x400} {
		require.NoError(t, e.InsertStandardFilter(CAN1, id))
	}
	for _, id := range []uint32{0x5000, 0x1000, 0x3000} {
		require.NoError(t, e.InsertExtendedFilter(CAN1, id))
	}

	assert.Equal(t, uint16(5), e.Counts().Standard)
	n := int(e.Counts().Standard)
	for p := 0; p < n-1; p++ {
		assert.Less(t, e.stdHalf(p), e.stdHalf(p+1))
	}

	base := int(e.Addresses().EFFsa / 4)
	for i := 0; i < 2; i++ {
		assert.Less(t, f.ReadWord(base+i), f.ReadWord(base+i+1))
	}
}

func TestRecomputeAddresses_Empty(t *testing.T) {
	addrs := recomputeAddresses(counts{})
	assert.Equal(t, Addresses{}, addrs)
}

func TestRecomputeAddresses_OddStandardRoundsUp(t *testing.T) {
	addrs := recomputeAddresses(counts{std: 3})
	assert.Equal(t, uint32(8), addrs.SFFGRPsa)
}

// TestScenario_StandardInsertRelocatesLaterSections covers inserting a
// standard entry while stdCount is even (0, a fresh word is needed) with a
// later section already occupying the word that follows: the later
// section's contents must be relocated, not overwritten.
func TestScenario_StandardInsertRelocatesLaterSections(t *testing.T) {
	e, f := newTestEngine()

	require.NoError(t, e.InsertExtendedFilter(CAN1, 0x1000))
	require.NoError(t, e.InsertStandardFilter(CAN1, 0x100))

	addrs := e.Addresses()
	assert.Equal(t, uint32(4), addrs.EFFsa)
	assert.Equal(t, uint32(8), addrs.EFFGRPsa)
	assert.Equal(t, uint32(8), addrs.ENDofTable)

	assert.Equal(t, sanitizeStd(CAN1, 0x100), e.stdHalf(0))

	extBase := int(addrs.EFFsa / 4)
	assert.Equal(t, sanitizeExt(CAN1, 0x1000), f.ReadWord(extBase))
}

// TestScenario_StandardInsertCrossingEvenBoundaryTwice exercises three
// standard inserts, two of them at an even count (each needing a fresh
// word), with a standard-group entry parked right after the standard
// section, and checks the group entry survives both relocations intact.
func TestScenario_StandardInsertCrossingEvenBoundaryTwice(t *testing.T) {
	e, f := newTestEngine()

	require.NoError(t, e.InsertStandardGroupFilter(CAN1, 0x10, 0x20))
	require.NoError(t, e.InsertStandardFilter(CAN1, 0x100))
	require.NoError(t, e.InsertStandardFilter(CAN1, 0x200))
	require.NoError(t, e.InsertStandardFilter(CAN1, 0x300))

	assert.Equal(t, uint16(3), e.Counts().Standard)
	assert.Equal(t, uint16(1), e.Counts().StandardGroup)

	addrs := e.Addresses()
	grpBase := int(addrs.SFFGRPsa / 4)
	assert.Equal(t, packGroup16(sanitizeStd(CAN1, 0x10), sanitizeStd(CAN1, 0x20)), f.ReadWord(grpBase))
}
