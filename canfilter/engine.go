package canfilter

import "github.com/lpc17xx/canfilter/hal"

// Engine is the table-mutation engine: the four section counts plus the
// HAL binding they govern, grouped into one owning value so test seams
// and the single-caller reentrancy discipline from spec are explicit.
// An Engine is not safe for concurrent use - spec's concurrency model is
// single-threaded cooperative; callers needing concurrent access (e.g.
// the API layer) must serialize externally.
type Engine struct {
	hal    hal.HAL
	counts counts
}

// New creates an Engine bound to the given HAL. It does not reset the
// HAL's existing state - call ResetFilter first if a clean table is
// required.
func New(h hal.HAL) *Engine {
	return &Engine{hal: h}
}

// Counts reports the current per-section entry counts.
func (e *Engine) Counts() Counts {
	return Counts{
		Standard:      e.counts.std,
		StandardGroup: e.counts.stdGrp,
		Extended:      e.counts.ext,
		ExtendedGroup: e.counts.extGrp,
	}
}

// Addresses reports the section geometry currently derived from Counts.
func (e *Engine) Addresses() Addresses {
	return recomputeAddresses(e.counts)
}

// Mode reports the current mode register value.
func (e *Engine) Mode() hal.Mode {
	return e.hal.Mode()
}

// SetFilterMode writes the enumerated value into the mode register. No
// other state changes; this is the only operation that may impose an
// arbitrary mode unconditionally.
func (e *Engine) SetFilterMode(mode hal.Mode) {
	e.hal.SetMode(mode)
}

// withBypass runs fn with the mode register in bypass, as every
// insert/update/delete requires. On success it invokes calculateAddresses
// (which restores mode to operating). On failure (fn returning a non-nil
// error, e.g. ErrNotFound) it restores the mode register to whatever it
// held before the call, per spec's failure-path guarantee, and leaves
// counts and the LUT untouched.
func (e *Engine) withBypass(fn func() error) error {
	prev := e.hal.Mode()
	e.hal.SetMode(hal.ModeBypass)

	if err := fn(); err != nil {
		e.hal.SetMode(prev)
		return err
	}

	e.calculateAddresses()
	return nil
}

// ResetFilter zeroes all four counts, sets the mode register to bypass,
// and zeroes the four section-start registers and ENDofTable. Mode
// remains bypass afterward - the peripheral accepts all messages in that
// state, which is the documented contract of a reset filter.
func (e *Engine) ResetFilter() {
	e.counts = counts{}

	e.hal.SetMode(hal.ModeBypass)

	e.hal.SetSFFsa(0)
	e.hal.SetSFFGRPsa(0)
	e.hal.SetEFFsa(0)
	e.hal.SetEFFGRPsa(0)
	e.hal.SetENDofTable(0)
}
