package canfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardGroup_InsertAndOrdering(t *testing.T) {
	e, f := newTestEngine()

	require.NoError(t, e.InsertStandardGroupFilter(CAN1, 0x300, 0x310))
	require.NoError(t, e.InsertStandardGroupFilter(CAN1, 0x100, 0x110))

	assert.Equal(t, uint16(2), e.Counts().StandardGroup)
	base := int(e.Addresses().SFFGRPsa / 4)
	start0, _ := unpackGroup16(f.ReadWord(base))
	start1, _ := unpackGroup16(f.ReadWord(base + 1))
	assert.Equal(t, sanitizeStd(CAN1, 0x100), start0)
	assert.Equal(t, sanitizeStd(CAN1, 0x300), start1)
}

func TestStandardGroup_DeleteAndUpdate(t *testing.T) {
	e, _ := newTestEngine()

	require.NoError(t, e.InsertStandardGroupFilter(CAN1, 0x100, 0x110))
	require.NoError(t, e.UpdateStandardGroupFilter(CAN1, 0x100, 0x110, 0x200, 0x210))
	assert.Equal(t, uint16(1), e.Counts().StandardGroup)

	require.NoError(t, e.DeleteStandardGroupFilter(CAN1, 0x200, 0x210))
	assert.Equal(t, uint16(0), e.Counts().StandardGroup)
}

func TestStandardGroup_DeleteNotFound(t *testing.T) {
	e, _ := newTestEngine()
	require.NoError(t, e.InsertStandardGroupFilter(CAN1, 0x100, 0x110))

	err := e.DeleteStandardGroupFilter(CAN1, 0x900, 0x910)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStandardGroup_DeleteEmpty(t *testing.T) {
	e, _ := newTestEngine()
	err := e.DeleteStandardGroupFilter(CAN1, 0x100, 0x110)
	assert.ErrorIs(t, err, ErrTableEmpty)
}

func TestStandardGroup_PackUsesOR(t *testing.T) {
	key := packGroup16(0x0F0F, 0x00F0)
	assert.Equal(t, uint32(0x0F0F00F0), key)
}
