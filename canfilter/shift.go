package canfilter

// The shift primitives are the only functions in this package that
// manipulate the LUT's packed bit layout directly; every other function
// treats entries as whole encoded values and lets these four carry the
// bit arithmetic. All four run with the mode register already in bypass.

// stdHalf reads half-word position p from the standard section: p=2k is
// the MSB of word k, p=2k+1 is its LSB.
func (e *Engine) stdHalf(p int) uint16 {
	msb, lsb := unpackStd(e.hal.ReadWord(p / 2))
	if p%2 == 0 {
		return msb
	}
	return lsb
}

// setStdHalf writes half-word position p in the standard section,
// preserving the other half of the containing word.
func (e *Engine) setStdHalf(p int, v uint16) {
	idx := p / 2
	msb, lsb := unpackStd(e.hal.ReadWord(idx))
	if p%2 == 0 {
		msb = v
	} else {
		lsb = v
	}
	e.hal.WriteWord(idx, packStd(msb, lsb))
}

// upShiftStd opens a one-half-word gap at half-word position p within the
// standard section, carrying every occupied half-word from p through the
// last real entry (n, the live half-word count before this insert) up by
// one slot. When p==n this is a no-op: the trailing free half-word case,
// where the new entry lands in the already-free slot with no shift at
// all. This only ever touches half-words within words the standard
// section already owns; when n is even the caller must first call
// upShiftFull to claim a new word before this runs.
func (e *Engine) upShiftStd(p, n int) {
	for idx := n - 1; idx >= p; idx-- {
		e.setStdHalf(idx+1, e.stdHalf(idx))
	}
}

// downShiftStd closes a one-half-word gap at half-word position p,
// carrying every occupied half-word from p+1 through the last real entry
// (n, the live half-word count after this delete) down by one slot.
func (e *Engine) downShiftStd(p, n int) {
	for idx := p; idx < n; idx++ {
		e.setStdHalf(idx, e.stdHalf(idx+1))
	}
}

// upShiftFull opens a one-word gap at word index i, shifting every word
// from i through ENDofTable/4-1 one position toward higher addresses and
// extending ENDofTable by one word. The word at i is left holding a
// duplicate of its pre-shift contents; the caller overwrites it next.
// Used for the standard-group, extended, and extended-group sections,
// whose entries are always whole words, and by the standard section only
// to claim a fresh trailing word when its count is even; moving standard
// entries between half-word slots is left to upShiftStd.
func (e *Engine) upShiftFull(i int) {
	end := int(e.hal.ENDofTable() / 4)
	for idx := end; idx > i; idx-- {
		e.hal.WriteWord(idx, e.hal.ReadWord(idx-1))
	}
	e.hal.SetENDofTable(uint32(end+1) * 4)
}

// downShiftFull closes the gap at word index i, moving each subsequent
// word one position toward lower addresses, up to ENDofTable/4, and
// shrinking ENDofTable by one word. The word at the old end is left
// unmodified.
func (e *Engine) downShiftFull(i int) {
	end := int(e.hal.ENDofTable() / 4)
	for idx := i; idx < end-1; idx++ {
		e.hal.WriteWord(idx, e.hal.ReadWord(idx+1))
	}
	e.hal.SetENDofTable(uint32(end-1) * 4)
}
