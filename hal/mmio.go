//go:build mmio

package hal

import "unsafe"

// MMIO binds HAL directly to the LPC17xx CANAF/CANAF_RAM peripheral
// registers, for firmware builds that import this module on real
// hardware. It is excluded from the default build (and from this
// module's own tests, which only exercise Fake) behind the "mmio" build
// tag, since the addresses below are only valid on an LPC17xx part and
// nothing in this repo's test suite runs on one.
type MMIO struct {
	base uintptr
}

// LPC17xx CANAF / CANAF_RAM base addresses, per the NXP UM10360
// peripheral memory map.
const (
	canafRAMBase = 0x40038000
	canafBase    = 0x4003C000
)

func NewMMIO() *MMIO {
	return &MMIO{base: canafBase}
}

func (m *MMIO) ReadWord(i int) uint32 {
	addr := (*uint32)(unsafe.Pointer(canafRAMBase + uintptr(i)*4)) //nolint:govet
	return *addr
}

func (m *MMIO) WriteWord(i int, v uint32) {
	addr := (*uint32)(unsafe.Pointer(canafRAMBase + uintptr(i)*4)) //nolint:govet
	*addr = v
}

func (m *MMIO) regPtr(offset uintptr) *uint32 {
	return (*uint32)(unsafe.Pointer(m.base + offset)) //nolint:govet
}

// Register offsets within CANAF, per UM10360 table 554.
const (
	offAFMR       = 0x00
	offSFFsa      = 0x04
	offSFFGRPsa   = 0x08
	offEFFsa      = 0x0C
	offEFFGRPsa   = 0x10
	offENDofTable = 0x14
)

func (m *MMIO) Mode() Mode     { return Mode(*m.regPtr(offAFMR)) }
func (m *MMIO) SetMode(mo Mode) { *m.regPtr(offAFMR) = uint32(mo) }

func (m *MMIO) SFFsa() uint32        { return *m.regPtr(offSFFsa) }
func (m *MMIO) SetSFFsa(v uint32)    { *m.regPtr(offSFFsa) = v }
func (m *MMIO) SFFGRPsa() uint32     { return *m.regPtr(offSFFGRPsa) }
func (m *MMIO) SetSFFGRPsa(v uint32) { *m.regPtr(offSFFGRPsa) = v }
func (m *MMIO) EFFsa() uint32        { return *m.regPtr(offEFFsa) }
func (m *MMIO) SetEFFsa(v uint32)    { *m.regPtr(offEFFsa) = v }
func (m *MMIO) EFFGRPsa() uint32     { return *m.regPtr(offEFFGRPsa) }
func (m *MMIO) SetEFFGRPsa(v uint32) { *m.regPtr(offEFFGRPsa) = v }
func (m *MMIO) ENDofTable() uint32     { return *m.regPtr(offENDofTable) }
func (m *MMIO) SetENDofTable(v uint32) { *m.regPtr(offENDofTable) = v }
