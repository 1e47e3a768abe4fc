package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lpc17xx/canfilter/canfilter"
	"github.com/lpc17xx/canfilter/hal"
	"github.com/lpc17xx/canfilter/service"
)

// Execute parses and runs one command line against session, returning a
// status string for display. Accepts the same verbs as the HTTP API:
//
//	insert-std <ctrl> <id>
//	update-std <ctrl> <oldId> <newId>
//	delete-std <ctrl> <id>
//	insert-std-group <ctrl> <start> <end>
//	update-std-group <ctrl> <oldStart> <oldEnd> <newStart> <newEnd>
//	delete-std-group <ctrl> <start> <end>
//	insert-ext <ctrl> <id>
//	update-ext <ctrl> <oldId> <newId>
//	delete-ext <ctrl> <id>
//	insert-ext-group <ctrl> <start> <end>
//	update-ext-group <ctrl> <oldStart> <oldEnd> <newStart> <newEnd>
//	delete-ext-group <ctrl> <start> <end>
//	reset
//	mode <operating|bypass|off>
func Execute(session *service.Session, line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}

	verb := fields[0]
	args := fields[1:]

	var res service.Result
	switch verb {
	case "reset":
		res = session.ResetFilter()

	case "mode":
		if len(args) != 1 {
			return "usage: mode <operating|bypass|off>"
		}
		mode, ok := parseModeArg(args[0])
		if !ok {
			return "unknown mode: " + args[0]
		}
		res = session.SetFilterMode(mode)

	case "insert-std":
		ctrl, id, err := parseCtrlID16(args)
		if err != nil {
			return err.Error()
		}
		res = session.InsertStandardFilter(ctrl, id)

	case "update-std":
		ctrl, old, new_, err := parseCtrlOldNew16(args)
		if err != nil {
			return err.Error()
		}
		res = session.UpdateStandardFilter(ctrl, old, new_)

	case "delete-std":
		ctrl, id, err := parseCtrlID16(args)
		if err != nil {
			return err.Error()
		}
		res = session.DeleteStandardFilter(ctrl, id)

	case "insert-std-group":
		ctrl, start, end, err := parseCtrlRange16(args)
		if err != nil {
			return err.Error()
		}
		res = session.InsertStandardGroupFilter(ctrl, start, end)

	case "update-std-group":
		ctrl, os, oe, ns, ne, err := parseCtrlOldNewRange16(args)
		if err != nil {
			return err.Error()
		}
		res = session.UpdateStandardGroupFilter(ctrl, os, oe, ns, ne)

	case "delete-std-group":
		ctrl, start, end, err := parseCtrlRange16(args)
		if err != nil {
			return err.Error()
		}
		res = session.DeleteStandardGroupFilter(ctrl, start, end)

	case "insert-ext":
		ctrl, id, err := parseCtrlID32(args)
		if err != nil {
			return err.Error()
		}
		res = session.InsertExtendedFilter(ctrl, id)

	case "update-ext":
		ctrl, old, new_, err := parseCtrlOldNew32(args)
		if err != nil {
			return err.Error()
		}
		res = session.UpdateExtendedFilter(ctrl, old, new_)

	case "delete-ext":
		ctrl, id, err := parseCtrlID32(args)
		if err != nil {
			return err.Error()
		}
		res = session.DeleteExtendedFilter(ctrl, id)

	case "insert-ext-group":
		ctrl, start, end, err := parseCtrlRange32(args)
		if err != nil {
			return err.Error()
		}
		res = session.InsertExtendedGroupFilter(ctrl, start, end)

	case "update-ext-group":
		ctrl, os, oe, ns, ne, err := parseCtrlOldNewRange32(args)
		if err != nil {
			return err.Error()
		}
		res = session.UpdateExtendedGroupFilter(ctrl, os, oe, ns, ne)

	case "delete-ext-group":
		ctrl, start, end, err := parseCtrlRange32(args)
		if err != nil {
			return err.Error()
		}
		res = session.DeleteExtendedGroupFilter(ctrl, start, end)

	default:
		return "unknown command: " + verb
	}

	if res.Err != nil {
		return fmt.Sprintf("code=%d error=%v", res.Code, res.Err)
	}
	return fmt.Sprintf("code=%d ok", res.Code)
}

func parseModeArg(s string) (hal.Mode, bool) {
	switch s {
	case "operating":
		return hal.ModeOperating, true
	case "bypass":
		return hal.ModeBypass, true
	case "off":
		return hal.ModeOff, true
	default:
		return 0, false
	}
}

func parseUint(s string, bits int) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(s, "0x"), hexOrDecBase(s), bits)
}

func hexOrDecBase(s string) int {
	if strings.HasPrefix(s, "0x") {
		return 16
	}
	return 10
}

func parseCtrlID16(args []string) (canfilter.Controller, uint16, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("usage: <ctrl> <id>")
	}
	ctrl, err := parseUint(args[0], 8)
	if err != nil {
		return 0, 0, err
	}
	id, err := parseUint(args[1], 16)
	if err != nil {
		return 0, 0, err
	}
	return canfilter.Controller(ctrl), uint16(id), nil
}

func parseCtrlID32(args []string) (canfilter.Controller, uint32, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("usage: <ctrl> <id>")
	}
	ctrl, err := parseUint(args[0], 8)
	if err != nil {
		return 0, 0, err
	}
	id, err := parseUint(args[1], 32)
	if err != nil {
		return 0, 0, err
	}
	return canfilter.Controller(ctrl), uint32(id), nil
}

func parseCtrlOldNew16(args []string) (canfilter.Controller, uint16, uint16, error) {
	if len(args) != 3 {
		return 0, 0, 0, fmt.Errorf("usage: <ctrl> <oldId> <newId>")
	}
	ctrl, err := parseUint(args[0], 8)
	if err != nil {
		return 0, 0, 0, err
	}
	old, err := parseUint(args[1], 16)
	if err != nil {
		return 0, 0, 0, err
	}
	new_, err := parseUint(args[2], 16)
	if err != nil {
		return 0, 0, 0, err
	}
	return canfilter.Controller(ctrl), uint16(old), uint16(new_), nil
}

func parseCtrlOldNew32(args []string) (canfilter.Controller, uint32, uint32, error) {
	if len(args) != 3 {
		return 0, 0, 0, fmt.Errorf("usage: <ctrl> <oldId> <newId>")
	}
	ctrl, err := parseUint(args[0], 8)
	if err != nil {
		return 0, 0, 0, err
	}
	old, err := parseUint(args[1], 32)
	if err != nil {
		return 0, 0, 0, err
	}
	new_, err := parseUint(args[2], 32)
	if err != nil {
		return 0, 0, 0, err
	}
	return canfilter.Controller(ctrl), uint32(old), uint32(new_), nil
}

func parseCtrlRange16(args []string) (canfilter.Controller, uint16, uint16, error) {
	if len(args) != 3 {
		return 0, 0, 0, fmt.Errorf("usage: <ctrl> <start> <end>")
	}
	ctrl, err := parseUint(args[0], 8)
	if err != nil {
		return 0, 0, 0, err
	}
	start, err := parseUint(args[1], 16)
	if err != nil {
		return 0, 0, 0, err
	}
	end, err := parseUint(args[2], 16)
	if err != nil {
		return 0, 0, 0, err
	}
	return canfilter.Controller(ctrl), uint16(start), uint16(end), nil
}

func parseCtrlRange32(args []string) (canfilter.Controller, uint32, uint32, error) {
	if len(args) != 3 {
		return 0, 0, 0, fmt.Errorf("usage: <ctrl> <start> <end>")
	}
	ctrl, err := parseUint(args[0], 8)
	if err != nil {
		return 0, 0, 0, err
	}
	start, err := parseUint(args[1], 32)
	if err != nil {
		return 0, 0, 0, err
	}
	end, err := parseUint(args[2], 32)
	if err != nil {
		return 0, 0, 0, err
	}
	return canfilter.Controller(ctrl), uint32(start), uint32(end), nil
}

func parseCtrlOldNewRange16(args []string) (ctrl canfilter.Controller, oldStart, oldEnd, newStart, newEnd uint16, err error) {
	if len(args) != 5 {
		err = fmt.Errorf("usage: <ctrl> <oldStart> <oldEnd> <newStart> <newEnd>")
		return
	}
	c, err := parseUint(args[0], 8)
	if err != nil {
		return
	}
	vals := make([]uint64, 4)
	for i := 0; i < 4; i++ {
		vals[i], err = parseUint(args[i+1], 16)
		if err != nil {
			return
		}
	}
	ctrl = canfilter.Controller(c)
	oldStart, oldEnd, newStart, newEnd = uint16(vals[0]), uint16(vals[1]), uint16(vals[2]), uint16(vals[3])
	return
}

func parseCtrlOldNewRange32(args []string) (ctrl canfilter.Controller, oldStart, oldEnd, newStart, newEnd uint32, err error) {
	if len(args) != 5 {
		err = fmt.Errorf("usage: <ctrl> <oldStart> <oldEnd> <newStart> <newEnd>")
		return
	}
	c, err := parseUint(args[0], 8)
	if err != nil {
		return
	}
	vals := make([]uint64, 4)
	for i := 0; i < 4; i++ {
		vals[i], err = parseUint(args[i+1], 32)
		if err != nil {
			return
		}
	}
	ctrl = canfilter.Controller(c)
	oldStart, oldEnd, newStart, newEnd = uint32(vals[0]), uint32(vals[1]), uint32(vals[2]), uint32(vals[3])
	return
}
