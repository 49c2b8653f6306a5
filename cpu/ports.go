package cpu

import "log/slog"

// dipSwitches is port 0's fixed reply: the board's DIP switch bank, which
// this emulator never makes configurable (§9 Open Question 4).
const dipSwitches = 0b0000_1110

// readPort dispatches an IN instruction's port read. ok is false for an
// unattached port, in which case the accumulator is left unchanged, matching
// the original's decision not to clobber A on an unknown port.
func (c *Cpu) readPort(port byte) (value byte, ok bool) {
	switch port {
	case 0:
		return dipSwitches, true
	case 1:
		return c.Buttons.Port1(), true
	case 2:
		return 0, true
	case 3:
		return c.ShiftRegister.Read(), true
	default:
		slog.Warn("unattached port read", "port", port)
		return 0, false
	}
}

// writePort dispatches an OUT instruction's port write.
func (c *Cpu) writePort(port byte, value byte) {
	switch port {
	case 2:
		c.ShiftRegister.WriteOffset(value)
	case 3:
		c.SoundHandler.Write3(value)
	case 4:
		c.ShiftRegister.Write(value)
	case 5:
		c.SoundHandler.Write5(value)
	case 6:
		slog.Debug("debug port write", "value", value, "char", string(rune(value)))
	default:
		slog.Warn("unattached port write", "port", port, "value", value)
	}
}
