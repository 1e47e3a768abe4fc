package canfilter

// InsertStandardGroupFilter inserts a standard (11-bit) group filter
// [start, end] for the given controller, keeping the standard-group
// section strictly ascending by its packed 32-bit key.
func (e *Engine) InsertStandardGroupFilter(ctrl Controller, start, end uint16) error {
	next := e.counts
	next.stdGrp++
	if next.total() > LUTCapacityWords {
		return ErrCapacityExhausted
	}

	key := packGroup16(sanitizeStd(ctrl, start), sanitizeStd(ctrl, end))

	return e.withBypass(func() error {
		e.insertStdGroupRaw(key)
		return nil
	})
}

// UpdateStandardGroupFilter replaces the group matching (ctrl, oldStart,
// oldEnd) with (ctrl, newStart, newEnd), atomically from the caller's
// viewpoint.
func (e *Engine) UpdateStandardGroupFilter(ctrl Controller, oldStart, oldEnd, newStart, newEnd uint16) error {
	if e.counts.stdGrp == 0 {
		return ErrTableEmpty
	}

	oldKey := packGroup16(sanitizeStd(ctrl, oldStart), sanitizeStd(ctrl, oldEnd))
	newKey := packGroup16(sanitizeStd(ctrl, newStart), sanitizeStd(ctrl, newEnd))

	return e.withBypass(func() error {
		if !e.deleteStdGroupRaw(oldKey) {
			return ErrNotFound
		}
		e.insertStdGroupRaw(newKey)
		return nil
	})
}

// DeleteStandardGroupFilter removes the group matching (ctrl, start, end).
func (e *Engine) DeleteStandardGroupFilter(ctrl Controller, start, end uint16) error {
	if e.counts.stdGrp == 0 {
		return ErrTableEmpty
	}

	key := packGroup16(sanitizeStd(ctrl, start), sanitizeStd(ctrl, end))

	return e.withBypass(func() error {
		if !e.deleteStdGroupRaw(key) {
			return ErrNotFound
		}
		return nil
	})
}

func (e *Engine) insertStdGroupRaw(key uint32) {
	base := int(e.hal.SFFGRPsa() / 4)
	n := int(e.counts.stdGrp)

	slot := base + n
	for w := 0; w < n; w++ {
		if key < e.hal.ReadWord(base+w) {
			slot = base + w
			break
		}
	}

	e.upShiftFull(slot)
	e.hal.WriteWord(slot, key)
	e.counts.stdGrp++
}

func (e *Engine) deleteStdGroupRaw(key uint32) bool {
	base := int(e.hal.SFFGRPsa() / 4)
	n := int(e.counts.stdGrp)

	idx := -1
	for w := 0; w < n; w++ {
		if e.hal.ReadWord(base+w) == key {
			idx = base + w
			break
		}
	}
	if idx == -1 {
		return false
	}

	e.downShiftFull(idx)
	e.counts.stdGrp--
	return true
}
