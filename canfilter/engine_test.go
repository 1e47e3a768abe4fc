package canfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lpc17xx/canfilter/hal"
)

func newTestEngine() (*Engine, *hal.Fake) {
	f := hal.NewFake()
	return New(f), f
}

func TestNew_DoesNotResetHAL(t *testing.T) {
	f := hal.NewFake()
	f.WriteWord(0, 0xdeadbeef)
	e := New(f)
	assert.Equal(t, uint32(0xdeadbeef), f.ReadWord(0))
	assert.Equal(t, Counts{}, e.Counts())
}

func TestResetFilter(t *testing.T) {
	e, f := newTestEngine()
	require.NoError(t, e.InsertStandardFilter(CAN1, 0x100))

	e.ResetFilter()

	assert.Equal(t, Counts{}, e.Counts())
	assert.Equal(t, hal.ModeBypass, e.Mode())
	assert.Equal(t, uint32(0), f.SFFsa())
	assert.Equal(t, uint32(0), f.SFFGRPsa())
	assert.Equal(t, uint32(0), f.EFFsa())
	assert.Equal(t, uint32(0), f.EFFGRPsa())
	assert.Equal(t, uint32(0), f.ENDofTable())
}

func TestSetFilterMode(t *testing.T) {
	e, _ := newTestEngine()
	e.SetFilterMode(hal.ModeOff)
	assert.Equal(t, hal.ModeOff, e.Mode())
	e.SetFilterMode(hal.ModeOperating)
	assert.Equal(t, hal.ModeOperating, e.Mode())
}

// TestModeEndsOperating covers I-2: every successful mutation leaves the
// mode register in the operating state.
func TestModeEndsOperating(t *testing.T) {
	e, _ := newTestEngine()
	require.NoError(t, e.InsertStandardFilter(CAN1, 5))
	assert.Equal(t, hal.ModeOperating, e.Mode())

	require.NoError(t, e.InsertExtendedGroupFilter(CAN1, 10, 20))
	assert.Equal(t, hal.ModeOperating, e.Mode())
}

// TestFailedMutationRestoresMode covers the failure-path guarantee: a
// failed update/delete restores whatever mode preceded the call and
// leaves counts untouched.
func TestFailedMutationRestoresMode(t *testing.T) {
	e, _ := newTestEngine()
	e.SetFilterMode(hal.ModeOff)

	err := e.DeleteStandardFilter(CAN1, 42)
	assert.ErrorIs(t, err, ErrTableEmpty)
	assert.Equal(t, hal.ModeOff, e.Mode())
	assert.Equal(t, Counts{}, e.Counts())
}

// TestCapacityExhausted covers I-7: inserts beyond the 512-word cap fail
// cleanly without mutating state.
func TestCapacityExhausted(t *testing.T) {
	e, _ := newTestEngine()

	for i := 0; i < 512; i++ {
		require.NoError(t, e.InsertExtendedFilter(CAN1, uint32(i)))
	}

	before := e.Counts()
	err := e.InsertExtendedFilter(CAN1, 9999)
	assert.ErrorIs(t, err, ErrCapacityExhausted)
	assert.Equal(t, before, e.Counts())
	assert.Equal(t, -1, Code(err))
}

func TestCode(t *testing.T) {
	assert.Equal(t, 0, Code(nil))
	assert.Equal(t, -1, Code(ErrCapacityExhausted))
	assert.Equal(t, -1, Code(ErrTableEmpty))
	assert.Equal(t, -2, Code(ErrNotFound))
}
