package service

import (
	"fmt"

	"github.com/lpc17xx/canfilter/canfilter"
	"github.com/lpc17xx/canfilter/hal"
)

// Result is the documented return-code/error pair surfaced at the
// api/CLI boundary: Code mirrors the hardware-facing 0/-1/-2 contract,
// Err carries the Go error for logging and JSON error fields.
type Result struct {
	Code int
	Err  error
}

func result(err error) Result {
	return Result{Code: canfilter.Code(err), Err: err}
}

// ResetFilter clears all counts and section registers and leaves mode in
// bypass, per the engine's documented reset behavior.
func (s *Session) ResetFilter() Result {
	err := s.record("resetFilter", "", func() error {
		s.engine.ResetFilter()
		return nil
	})
	return result(err)
}

// SetFilterMode writes the mode register directly.
func (s *Session) SetFilterMode(mode hal.Mode) Result {
	err := s.record("setFilterMode", mode.String(), func() error {
		s.engine.SetFilterMode(mode)
		return nil
	})
	return result(err)
}

func (s *Session) InsertStandardFilter(ctrl canfilter.Controller, id uint16) Result {
	var err error
	s.record("insertStandardFilter", fmt.Sprintf("ctrl=%d id=0x%x", ctrl, id), func() error {
		err = s.engine.InsertStandardFilter(ctrl, id)
		return err
	})
	return result(err)
}

func (s *Session) UpdateStandardFilter(ctrl canfilter.Controller, oldID, newID uint16) Result {
	var err error
	s.record("updateStandardFilter", fmt.Sprintf("ctrl=%d old=0x%x new=0x%x", ctrl, oldID, newID), func() error {
		err = s.engine.UpdateStandardFilter(ctrl, oldID, newID)
		return err
	})
	return result(err)
}

func (s *Session) DeleteStandardFilter(ctrl canfilter.Controller, id uint16) Result {
	var err error
	s.record("deleteStandardFilter", fmt.Sprintf("ctrl=%d id=0x%x", ctrl, id), func() error {
		err = s.engine.DeleteStandardFilter(ctrl, id)
		return err
	})
	return result(err)
}

func (s *Session) InsertStandardGroupFilter(ctrl canfilter.Controller, start, end uint16) Result {
	var err error
	s.record("insertStandardGroupFilter", fmt.Sprintf("ctrl=%d start=0x%x end=0x%x", ctrl, start, end), func() error {
		err = s.engine.InsertStandardGroupFilter(ctrl, start, end)
		return err
	})
	return result(err)
}

func (s *Session) UpdateStandardGroupFilter(ctrl canfilter.Controller, oldStart, oldEnd, newStart, newEnd uint16) Result {
	var err error
	s.record("updateStandardGroupFilter", fmt.Sprintf("ctrl=%d old=[0x%x,0x%x] new=[0x%x,0x%x]", ctrl, oldStart, oldEnd, newStart, newEnd), func() error {
		err = s.engine.UpdateStandardGroupFilter(ctrl, oldStart, oldEnd, newStart, newEnd)
		return err
	})
	return result(err)
}

func (s *Session) DeleteStandardGroupFilter(ctrl canfilter.Controller, start, end uint16) Result {
	var err error
	s.record("deleteStandardGroupFilter", fmt.Sprintf("ctrl=%d start=0x%x end=0x%x", ctrl, start, end), func() error {
		err = s.engine.DeleteStandardGroupFilter(ctrl, start, end)
		return err
	})
	return result(err)
}

func (s *Session) InsertExtendedFilter(ctrl canfilter.Controller, id uint32) Result {
	var err error
	s.record("insertExtendedFilter", fmt.Sprintf("ctrl=%d id=0x%x", ctrl, id), func() error {
		err = s.engine.InsertExtendedFilter(ctrl, id)
		return err
	})
	return result(err)
}

func (s *Session) UpdateExtendedFilter(ctrl canfilter.Controller, oldID, newID uint32) Result {
	var err error
	s.record("updateExtendedFilter", fmt.Sprintf("ctrl=%d old=0x%x new=0x%x", ctrl, oldID, newID), func() error {
		err = s.engine.UpdateExtendedFilter(ctrl, oldID, newID)
		return err
	})
	return result(err)
}

func (s *Session) DeleteExtendedFilter(ctrl canfilter.Controller, id uint32) Result {
	var err error
	s.record("deleteExtendedFilter", fmt.Sprintf("ctrl=%d id=0x%x", ctrl, id), func() error {
		err = s.engine.DeleteExtendedFilter(ctrl, id)
		return err
	})
	return result(err)
}

func (s *Session) InsertExtendedGroupFilter(ctrl canfilter.Controller, start, end uint32) Result {
	var err error
	s.record("insertExtendedGroupFilter", fmt.Sprintf("ctrl=%d start=0x%x end=0x%x", ctrl, start, end), func() error {
		err = s.engine.InsertExtendedGroupFilter(ctrl, start, end)
		return err
	})
	return result(err)
}

func (s *Session) UpdateExtendedGroupFilter(ctrl canfilter.Controller, oldStart, oldEnd, newStart, newEnd uint32) Result {
	var err error
	s.record("updateExtendedGroupFilter", fmt.Sprintf("ctrl=%d old=[0x%x,0x%x] new=[0x%x,0x%x]", ctrl, oldStart, oldEnd, newStart, newEnd), func() error {
		err = s.engine.UpdateExtendedGroupFilter(ctrl, oldStart, oldEnd, newStart, newEnd)
		return err
	})
	return result(err)
}

func (s *Session) DeleteExtendedGroupFilter(ctrl canfilter.Controller, start, end uint32) Result {
	var err error
	s.record("deleteExtendedGroupFilter", fmt.Sprintf("ctrl=%d start=0x%x end=0x%x", ctrl, start, end), func() error {
		err = s.engine.DeleteExtendedGroupFilter(ctrl, start, end)
		return err
	})
	return result(err)
}
