// Package canfilter implements the table-mutation engine for an LPC17xx
// CAN peripheral's hardware acceptance filter: inserting, updating, and
// deleting standard/extended single and group ID filters while preserving
// the four-section layout, the ascending-order invariant within each
// section, the packed-pair encoding of standard IDs, and the mode
// register sequencing the hardware requires around table edits.
package canfilter

// Controller identifies which on-chip CAN controller a filter entry
// applies to. Baked into the high bits of every stored entry.
type Controller uint8

const (
	CAN1 Controller = 0b000
	CAN2 Controller = 0b001
)

// counts is the single source of truth for section geometry; the
// section-address registers are derived from these and recomputed after
// every successful mutation.
type counts struct {
	std    uint16 // standard single IDs, 1/2 word each
	stdGrp uint16 // standard group ranges, 1 word each
	ext    uint16 // extended single IDs, 1 word each
	extGrp uint16 // extended group ranges, 2 words each
}

func (c counts) total() int {
	return 0 +
		int((c.std+1)/2) +
		int(c.stdGrp) +
		int(c.ext) +
		int(c.extGrp)*2
}

// Addresses is the derived section geometry written to the five
// section-address registers.
type Addresses struct {
	SFFsa      uint32
	SFFGRPsa   uint32
	EFFsa      uint32
	EFFGRPsa   uint32
	ENDofTable uint32
}

// Counts reports the current per-section entry counts.
type Counts struct {
	Standard      uint16
	StandardGroup uint16
	Extended      uint16
	ExtendedGroup uint16
}
