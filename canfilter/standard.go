package canfilter

// InsertStandardFilter inserts a standard (11-bit) CAN ID filter for the
// given controller, keeping the standard section strictly ascending by
// its sanitized 16-bit value. Returns ErrCapacityExhausted if the new
// entry would need a word beyond the 512-word cap; when the standard count
// is odd the entry fills the trailing free half-word and needs no new word.
func (e *Engine) InsertStandardFilter(ctrl Controller, id uint16) error {
	next := e.counts
	next.std++
	if next.total() > LUTCapacityWords {
		return ErrCapacityExhausted
	}

	val := sanitizeStd(ctrl, id)

	return e.withBypass(func() error {
		e.insertStdRaw(val)
		return nil
	})
}

// UpdateStandardFilter replaces the entry matching (ctrl, oldID) with
// (ctrl, newID), observably atomic from the caller's viewpoint: the mode
// register stays in bypass across the whole delete+insert.
func (e *Engine) UpdateStandardFilter(ctrl Controller, oldID, newID uint16) error {
	if e.counts.std == 0 {
		return ErrTableEmpty
	}

	oldVal := sanitizeStd(ctrl, oldID)
	newVal := sanitizeStd(ctrl, newID)

	return e.withBypass(func() error {
		if !e.deleteStdRaw(oldVal) {
			return ErrNotFound
		}
		e.insertStdRaw(newVal)
		return nil
	})
}

// DeleteStandardFilter removes the entry matching (ctrl, id). Returns
// ErrTableEmpty if the standard section is empty, or ErrNotFound if no
// entry matches.
func (e *Engine) DeleteStandardFilter(ctrl Controller, id uint16) error {
	if e.counts.std == 0 {
		return ErrTableEmpty
	}

	val := sanitizeStd(ctrl, id)

	return e.withBypass(func() error {
		if !e.deleteStdRaw(val) {
			return ErrNotFound
		}
		return nil
	})
}

// insertStdRaw locates val's ordered position among the live standard
// entries, opens a slot for it, writes the payload, and bumps the count.
// Must run with mode already in bypass. When n is even the standard
// section's words are all fully occupied, so the new entry needs a word
// that does not exist yet: upShiftFull relocates every later-section word
// up by one to make it, the same primitive standard_group/extended/
// extended_group use to grow into their own sections. When n is odd the
// trailing word already has a free half and upShiftStd alone suffices.
func (e *Engine) insertStdRaw(val uint16) {
	n := int(e.counts.std)

	slot := n
	for p := 0; p < n; p++ {
		if val < e.stdHalf(p) {
			slot = p
			break
		}
	}

	if n%2 == 0 {
		e.upShiftFull(n / 2)
	}

	e.upShiftStd(slot, n)
	e.setStdHalf(slot, val)
	e.counts.std++
}

// deleteStdRaw scans the live standard entries for val, closes its slot,
// and collapses the section's freed trailing word when the pre-delete
// count was odd. Reports whether a match was found. Must run with mode
// already in bypass.
func (e *Engine) deleteStdRaw(val uint16) bool {
	n := int(e.counts.std)

	pos := -1
	for p := 0; p < n; p++ {
		if e.stdHalf(p) == val {
			pos = p
			break
		}
	}
	if pos == -1 {
		return false
	}

	e.downShiftStd(pos, n-1)

	if n%2 == 1 {
		sffGrpWord := int(e.hal.SFFGRPsa() / 4)
		e.downShiftFull(sffGrpWord - 1)
	}

	e.counts.std--
	return true
}
