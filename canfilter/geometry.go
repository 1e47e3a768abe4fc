package canfilter

import "github.com/lpc17xx/canfilter/hal"

// recomputeAddresses derives the four section starts and ENDofTable from
// the current counts, per the invariant:
//
//	SFFsa == 0
//	SFFGRPsa == SFFsa + ceil(std/2)*4
//	EFFsa == SFFGRPsa + stdGrp*4
//	EFFGRPsa == EFFsa + ext*4
//	ENDofTable == EFFGRPsa + extGrp*8
func recomputeAddresses(c counts) Addresses {
	sffSA := uint32(0)
	sffGrpSA := sffSA + uint32((c.std+1)/2)*4
	effSA := sffGrpSA + uint32(c.stdGrp)*4
	effGrpSA := effSA + uint32(c.ext)*4
	end := effGrpSA + uint32(c.extGrp)*8

	return Addresses{
		SFFsa:      sffSA,
		SFFGRPsa:   sffGrpSA,
		EFFsa:      effSA,
		EFFGRPsa:   effGrpSA,
		ENDofTable: end,
	}
}

// calculateAddresses writes the derived geometry back to the HAL's
// section registers and restores the mode register to operating. Must be
// called with the mode register already in bypass, per spec - it is the
// last step of every successful mutation.
func (e *Engine) calculateAddresses() {
	addrs := recomputeAddresses(e.counts)

	e.hal.SetSFFsa(addrs.SFFsa)
	e.hal.SetSFFGRPsa(addrs.SFFGRPsa)
	e.hal.SetEFFsa(addrs.EFFsa)
	e.hal.SetEFFGRPsa(addrs.EFFGRPsa)
	e.hal.SetENDofTable(addrs.ENDofTable)

	e.hal.SetMode(hal.ModeOperating)
}

// wouldExceedCapacity reports whether adding extraWords words to the
// table (after accounting for a possible new half-word-only addition
// that doesn't grow the word count) would push ENDofTable/4 above the
// hardware's 512-word cap.
func wouldExceedCapacity(c counts, extraWords int) bool {
	return c.total()+extraWords > LUTCapacityWords
}

// LUTCapacityWords is the hardware's 512-word Look-Up Table RAM cap.
const LUTCapacityWords = 512
