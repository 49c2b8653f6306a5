// Package cpu implements the Intel 8080 microprocessor and the handful of
// Space Invaders cabinet peripherals wired to its I/O ports: the shift
// register, the button port, and the sound edge-detector.
package cpu

import (
	"context"
	"time"

	"github.com/mattfbacon/space80/isa"
	"github.com/mattfbacon/space80/mem"
)

// cycleTime is the duration of one 8080 clock cycle on the arcade board's
// 2 MHz crystal.
const cycleTime = 500 * time.Nanosecond

// Cpu is one 8080 plus the cabinet peripherals its OUT/IN instructions
// reach. Unlike the register file, the peripherals are not part of the
// architectural state the ISA package knows about — they live here, one
// level up, the same way the bus does.
type Cpu struct {
	Registers Registers
	Flags     Flags
	Bus       *mem.Bus

	// InterruptsEnabled gates both RST-style external interrupt delivery
	// and whether HLT parks the CPU forever or merely until the next one
	// (§5).
	InterruptsEnabled bool

	ShiftRegister ShiftRegister
	Buttons       Buttons
	SoundHandler  SoundHandler

	// CycleAccurate, when true, makes Step sleep out the real wall-clock
	// duration of each instruction's cycle count (§5).
	CycleAccurate bool

	lastConditionWasTrue bool
}

// New constructs a Cpu with its program loaded at start and interrupts
// enabled, matching the reference emulator's constructor (§5): a freshly
// built machine is ready to run, not in a separately-armed state.
func New(program []byte, start uint16) *Cpu {
	c := &Cpu{
		Bus:               &mem.Bus{},
		InterruptsEnabled: true,
	}
	c.Bus.Load(start, program)
	c.Registers.PC = start
	return c
}

// Step decodes and executes one instruction at the current PC, returning
// the execution result. If CycleAccurate is set, it blocks for the
// instruction's cycle count before returning.
func (c *Cpu) Step() Result {
	start := time.Now()

	buf := isa.NewBuffer(c.Bus.Bytes[:], int(c.Registers.PC))
	instr := isa.Decode(buf)
	c.Registers.PC = uint16(buf.Cursor())

	result := c.Execute(instr)

	if c.CycleAccurate {
		numCycles := instr.NumCycles(c.lastConditionWasTrue)
		toSleep := cycleTime * time.Duration(numCycles)
		elapsed := time.Since(start)
		if remaining := toSleep - elapsed; remaining > 0 {
			time.Sleep(remaining)
		}
	}

	return result
}

// Run drives the CPU until ctx is cancelled or the program halts with
// interrupts disabled. copyVideo is called with the current video RAM
// immediately before interrupt 2 is dispatched — never before interrupt 1 —
// reproducing the arcade board's vblank timing exactly (§5, §9 Open
// Question 3): the visible frame is latched right as the top-of-screen
// interrupt fires, not the mid-screen one.
func (c *Cpu) Run(ctx context.Context, buttonEvents <-chan ButtonEvent, copyVideo func([]byte)) {
	const interruptPeriod = time.Second / 120

	middleScan := false
	lastInterrupt := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

	drainButtons:
		for {
			select {
			case event := <-buttonEvents:
				c.Buttons.Update(event)
			default:
				break drainButtons
			}
		}

		if c.InterruptsEnabled && time.Since(lastInterrupt) > interruptPeriod {
			if !middleScan {
				copyVideo(c.Bus.Video())
			}

			interruptNumber := byte(1)
			if !middleScan {
				interruptNumber = 2
			}
			c.handleInterrupt(interruptNumber)

			middleScan = !middleScan
			lastInterrupt = time.Now()
		}

		result := c.Step()
		if result.Halted {
			if !result.InterruptsEnabled {
				return
			}
			sleepUntil := lastInterrupt.Add(interruptPeriod)
			if d := time.Until(sleepUntil); d > 0 {
				time.Sleep(d)
			}
		}
	}
}
