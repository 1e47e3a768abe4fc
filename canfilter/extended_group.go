package canfilter

// InsertExtendedGroupFilter inserts an extended (29-bit) group filter
// [start, end] for the given controller. Extended groups occupy two
// consecutive words, start then end, and are ordered by their sanitized
// start value.
func (e *Engine) InsertExtendedGroupFilter(ctrl Controller, start, end uint32) error {
	next := e.counts
	next.extGrp++
	if next.total() > LUTCapacityWords {
		return ErrCapacityExhausted
	}

	s := sanitizeExt(ctrl, start)
	en := sanitizeExt(ctrl, end)

	return e.withBypass(func() error {
		e.insertExtGroupRaw(s, en)
		return nil
	})
}

// UpdateExtendedGroupFilter replaces the group matching (ctrl, oldStart,
// oldEnd) with (ctrl, newStart, newEnd), atomically from the caller's
// viewpoint.
func (e *Engine) UpdateExtendedGroupFilter(ctrl Controller, oldStart, oldEnd, newStart, newEnd uint32) error {
	if e.counts.extGrp == 0 {
		return ErrTableEmpty
	}

	oldS := sanitizeExt(ctrl, oldStart)
	oldE := sanitizeExt(ctrl, oldEnd)
	newS := sanitizeExt(ctrl, newStart)
	newE := sanitizeExt(ctrl, newEnd)

	return e.withBypass(func() error {
		if !e.deleteExtGroupRaw(oldS, oldE) {
			return ErrNotFound
		}
		e.insertExtGroupRaw(newS, newE)
		return nil
	})
}

// DeleteExtendedGroupFilter removes the group matching (ctrl, start, end);
// both bounds must match exactly.
func (e *Engine) DeleteExtendedGroupFilter(ctrl Controller, start, end uint32) error {
	if e.counts.extGrp == 0 {
		return ErrTableEmpty
	}

	s := sanitizeExt(ctrl, start)
	en := sanitizeExt(ctrl, end)

	return e.withBypass(func() error {
		if !e.deleteExtGroupRaw(s, en) {
			return ErrNotFound
		}
		return nil
	})
}

func (e *Engine) insertExtGroupRaw(start, end uint32) {
	base := int(e.hal.EFFGRPsa() / 4)
	n := int(e.counts.extGrp)

	slot := base + n*2
	for k := 0; k < n; k++ {
		w := base + k*2
		if start < e.hal.ReadWord(w) {
			slot = w
			break
		}
	}

	// Two upShiftFull calls at the same index open a two-word gap: the
	// first opens a slot and extends ENDofTable by a word, the second
	// (now seeing the extended end) opens the second slot behind it.
	e.upShiftFull(slot)
	e.upShiftFull(slot)

	e.hal.WriteWord(slot, start)
	e.hal.WriteWord(slot+1, end)
	e.counts.extGrp++
}

func (e *Engine) deleteExtGroupRaw(start, end uint32) bool {
	base := int(e.hal.EFFGRPsa() / 4)
	n := int(e.counts.extGrp)

	idx := -1
	for k := 0; k < n; k++ {
		w := base + k*2
		if e.hal.ReadWord(w) == start && e.hal.ReadWord(w+1) == end {
			idx = w
			break
		}
	}
	if idx == -1 {
		return false
	}

	e.downShiftFull(idx)
	e.downShiftFull(idx)
	e.counts.extGrp--
	return true
}
