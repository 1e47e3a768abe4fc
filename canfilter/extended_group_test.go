package canfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtendedGroup_InsertOccupiesTwoWords(t *testing.T) {
	e, f := newTestEngine()

	require.NoError(t, e.InsertExtendedGroupFilter(CAN1, 0x2000, 0x3000))

	assert.Equal(t, uint16(1), e.Counts().ExtendedGroup)
	base := int(e.Addresses().EFFGRPsa / 4)
	assert.Equal(t, sanitizeExt(CAN1, 0x2000), f.ReadWord(base))
	assert.Equal(t, sanitizeExt(CAN1, 0x3000), f.ReadWord(base+1))
	assert.Equal(t, uint32((base+2)*4), e.Addresses().ENDofTable)
}

func TestExtendedGroup_InsertOrdersByStart(t *testing.T) {
	e, f := newTestEngine()

	require.NoError(t, e.InsertExtendedGroupFilter(CAN1, 0x5000, 0x5100))
	require.NoError(t, e.InsertExtendedGroupFilter(CAN1, 0x1000, 0x1100))

	base := int(e.Addresses().EFFGRPsa / 4)
	assert.Equal(t, sanitizeExt(CAN1, 0x1000), f.ReadWord(base))
	assert.Equal(t, sanitizeExt(CAN1, 0x1100), f.ReadWord(base+1))
	assert.Equal(t, sanitizeExt(CAN1, 0x5000), f.ReadWord(base+2))
	assert.Equal(t, sanitizeExt(CAN1, 0x5100), f.ReadWord(base+3))
}

func TestExtendedGroup_DeleteAndUpdate(t *testing.T) {
	e, _ := newTestEngine()

	require.NoError(t, e.InsertExtendedGroupFilter(CAN1, 0x2000, 0x3000))
	require.NoError(t, e.UpdateExtendedGroupFilter(CAN1, 0x2000, 0x3000, 0x4000, 0x4100))
	assert.Equal(t, uint16(1), e.Counts().ExtendedGroup)

	require.NoError(t, e.DeleteExtendedGroupFilter(CAN1, 0x4000, 0x4100))
	assert.Equal(t, uint16(0), e.Counts().ExtendedGroup)
	assert.Equal(t, uint32(0), e.Addresses().ENDofTable)
}

func TestExtendedGroup_DeleteNotFound(t *testing.T) {
	e, _ := newTestEngine()
	require.NoError(t, e.InsertExtendedGroupFilter(CAN1, 0x2000, 0x3000))

	err := e.DeleteExtendedGroupFilter(CAN1, 0x9000, 0x9100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExtendedGroup_DeleteEmpty(t *testing.T) {
	e, _ := newTestEngine()
	err := e.DeleteExtendedGroupFilter(CAN1, 0x2000, 0x3000)
	assert.ErrorIs(t, err, ErrTableEmpty)
}

// TestExtendedGroup_MultipleDeletesShrinkEndOfTable checks that deleting
// two-word entries correctly shrinks ENDofTable by two words each time,
// not one.
func TestExtendedGroup_MultipleDeletesShrinkEndOfTable(t *testing.T) {
	e, _ := newTestEngine()

	require.NoError(t, e.InsertExtendedGroupFilter(CAN1, 0x1000, 0x1100))
	require.NoError(t, e.InsertExtendedGroupFilter(CAN1, 0x2000, 0x2100))
	require.Equal(t, uint32(16), e.Addresses().ENDofTable)

	require.NoError(t, e.DeleteExtendedGroupFilter(CAN1, 0x1000, 0x1100))
	assert.Equal(t, uint32(8), e.Addresses().ENDofTable)
	assert.Equal(t, uint16(1), e.Counts().ExtendedGroup)
}
