package canfilter

// InsertExtendedFilter inserts an extended (29-bit) CAN ID filter for the
// given controller, keeping the extended section strictly ascending by
// its sanitized 32-bit value.
func (e *Engine) InsertExtendedFilter(ctrl Controller, id uint32) error {
	next := e.counts
	next.ext++
	if next.total() > LUTCapacityWords {
		return ErrCapacityExhausted
	}

	val := sanitizeExt(ctrl, id)

	return e.withBypass(func() error {
		e.insertExtRaw(val)
		return nil
	})
}

// UpdateExtendedFilter replaces the entry matching (ctrl, oldID) with
// (ctrl, newID), atomically from the caller's viewpoint.
func (e *Engine) UpdateExtendedFilter(ctrl Controller, oldID, newID uint32) error {
	if e.counts.ext == 0 {
		return ErrTableEmpty
	}

	oldVal := sanitizeExt(ctrl, oldID)
	newVal := sanitizeExt(ctrl, newID)

	return e.withBypass(func() error {
		if !e.deleteExtRaw(oldVal) {
			return ErrNotFound
		}
		e.insertExtRaw(newVal)
		return nil
	})
}

// DeleteExtendedFilter removes the entry matching (ctrl, id).
func (e *Engine) DeleteExtendedFilter(ctrl Controller, id uint32) error {
	if e.counts.ext == 0 {
		return ErrTableEmpty
	}

	val := sanitizeExt(ctrl, id)

	return e.withBypass(func() error {
		if !e.deleteExtRaw(val) {
			return ErrNotFound
		}
		return nil
	})
}

func (e *Engine) insertExtRaw(val uint32) {
	base := int(e.hal.EFFsa() / 4)
	n := int(e.counts.ext)

	slot := base + n
	for w := 0; w < n; w++ {
		if val < e.hal.ReadWord(base+w) {
			slot = base + w
			break
		}
	}

	e.upShiftFull(slot)
	e.hal.WriteWord(slot, val)
	e.counts.ext++
}

func (e *Engine) deleteExtRaw(val uint32) bool {
	base := int(e.hal.EFFsa() / 4)
	n := int(e.counts.ext)

	idx := -1
	for w := 0; w < n; w++ {
		if e.hal.ReadWord(base+w) == val {
			idx = base + w
			break
		}
	}
	if idx == -1 {
		return false
	}

	e.downShiftFull(idx)
	e.counts.ext--
	return true
}
