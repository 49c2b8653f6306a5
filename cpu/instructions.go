package cpu

import (
	"log/slog"

	"github.com/mattfbacon/space80/isa"
)

// Result reports what executing one instruction produced: normal
// continuation, or a halt carrying whether interrupts were enabled at the
// time (the two have different meanings for the caller's main loop, §5).
type Result struct {
	Halted            bool
	InterruptsEnabled bool
}

// borrowingSub replicates Rust's u8::borrowing_sub: subtract rhs and an
// optional borrow-in from a, reporting whether either subtraction
// underflowed.
func borrowingSub(a, rhs byte, borrowIn bool) (byte, bool) {
	intermediate := a - rhs
	borrowFromRhs := a < rhs
	var bin byte
	if borrowIn {
		bin = 1
	}
	ret := intermediate - bin
	borrowFromBorrow := intermediate < bin
	return ret, borrowFromRhs || borrowFromBorrow
}

// carryingAdd replicates Rust's u8::carrying_add: add rhs and an optional
// carry-in to a, reporting whether either addition overflowed.
func carryingAdd(a, rhs byte, carryIn bool) (byte, bool) {
	intermediate := a + rhs
	carryFromRhs := intermediate < a
	var cin byte
	if carryIn {
		cin = 1
	}
	ret := intermediate + cin
	carryFromCarry := ret < intermediate
	return ret, carryFromRhs || carryFromCarry
}

// doOperation is the ALU core shared by ToAccumulator, ToAccumulatorImmediate,
// Increment, and Decrement. It mutates *dst (except for Compare, which only
// compares) and the flags affected by the operation. Compare's
// auxiliary_carry formula is deliberately not unified with Subtract's: the
// two use different operand shapes (§9 Open Question 2).
func doOperation(flags *Flags, dst *byte, op isa.ALUOp, value byte) {
	reg := *dst
	switch op {
	case isa.ALUAdd:
		flags.AuxiliaryCarry = (reg&0b1111)+(value&0b1111) > 0b1111
		result, carry := carryingAdd(reg, value, false)
		flags.Carry = carry
		*dst = result
		flags.SetFromArithmetic(*dst)
	case isa.ALUAddWithCarry:
		carryIn := flags.Carry
		var carryInBit byte
		if carryIn {
			carryInBit = 1
		}
		flags.AuxiliaryCarry = (reg&0b1111)+(value&0b1111)+carryInBit > 0b1111
		result, carry := carryingAdd(reg, value, carryIn)
		flags.Carry = carry
		*dst = result
		flags.SetFromArithmetic(*dst)
	case isa.ALUSubtract:
		_, auxCarry := borrowingSub(reg>>4, value>>4, false)
		flags.AuxiliaryCarry = auxCarry
		result, borrow := borrowingSub(reg, value, false)
		flags.Carry = borrow
		*dst = result
		flags.SetFromArithmetic(*dst)
	case isa.ALUSubtractWithBorrow:
		borrowIn := flags.Carry
		_, auxCarry := borrowingSub(reg>>4, value>>4, borrowIn)
		flags.AuxiliaryCarry = auxCarry
		result, borrow := borrowingSub(reg, value, borrowIn)
		flags.Carry = borrow
		*dst = result
		flags.SetFromArithmetic(*dst)
	case isa.ALUAnd:
		*dst = reg & value
		flags.Carry = false
		flags.AuxiliaryCarry = false // not in the 8080 manual, but required to pass cpudiag
		flags.SetFromArithmetic(*dst)
	case isa.ALUOr:
		*dst = reg | value
		flags.Carry = false
		flags.AuxiliaryCarry = false // not in the 8080 manual, but required to pass cpudiag
		flags.SetFromArithmetic(*dst)
	case isa.ALUXor:
		*dst = reg ^ value
		flags.Carry = false
		flags.AuxiliaryCarry = false
		flags.SetFromArithmetic(*dst)
	case isa.ALUCompare:
		// reg masked to its top nibble but NOT shifted; value used whole. This
		// differs from Subtract's shifted-nibble formula and must stay that way.
		_, auxCarry := borrowingSub(reg&0b1111_0000, value, false)
		flags.AuxiliaryCarry = auxCarry
		result, borrow := borrowingSub(reg, value, false)
		flags.Carry = borrow
		flags.SetFromArithmetic(result) // *dst is left untouched
	}
}

// getStackOpPair reads the 16-bit value PUSH would push for pair. For
// FlagsA the low byte is A and the high byte is the packed flag byte, per
// §4.5's push order.
func getStackOpPair(regs *Registers, flags *Flags, pair isa.StackOpRegPair) uint16 {
	switch pair {
	case isa.StackPairBC:
		return uint16(regs.C) | uint16(regs.B)<<8
	case isa.StackPairDE:
		return uint16(regs.E) | uint16(regs.D)<<8
	case isa.StackPairHL:
		return regs.HL()
	case isa.StackPairFlagsA:
		return uint16(regs.A) | uint16(flags.AsByte())<<8
	default:
		return 0
	}
}

// setStackOpPair is POP's inverse of getStackOpPair.
func setStackOpPair(regs *Registers, flags *Flags, pair isa.StackOpRegPair, value uint16) {
	lo, hi := byte(value), byte(value>>8)
	switch pair {
	case isa.StackPairBC:
		regs.C, regs.B = lo, hi
	case isa.StackPairDE:
		regs.E, regs.D = lo, hi
	case isa.StackPairHL:
		regs.L, regs.H = lo, hi
	case isa.StackPairFlagsA:
		regs.A = lo
		flags.SetByte(hi)
	}
}

// rotateLeft8 and rotateRight8 are u8::rotate_left(1)/rotate_right(1).
func rotateLeft8(v byte) byte  { return v<<1 | v>>7 }
func rotateRight8(v byte) byte { return v<<7 | v>>1 }

// push writes value onto the stack, predecrementing SP by two (§4.6).
func (c *Cpu) push(value uint16) {
	c.Registers.SP -= 2
	c.Bus.WriteU16(c.Registers.SP, value)
}

// pop reads the top of the stack, postincrementing SP by two (§4.6).
func (c *Cpu) pop() uint16 {
	ret := c.Bus.ReadU16(c.Registers.SP)
	c.Registers.SP += 2
	return ret
}

// handleInterrupt disables interrupts, pushes PC, and transfers control to
// the interrupt vector interruptNumber<<3 — used by the emulator's own
// vblank-style interrupt delivery (§5). RST jumps to the same vectors but
// leaves the interrupt enable flag alone.
func (c *Cpu) handleInterrupt(interruptNumber byte) {
	c.InterruptsEnabled = false
	c.push(c.Registers.PC)
	c.Registers.PC = uint16(interruptNumber) << 3
}

// Execute runs one decoded instruction against the CPU's state, returning
// whether it halted. This is the sole place instruction semantics live;
// Step (cpu.go) handles fetch/decode and cycle pacing around it.
func (c *Cpu) Execute(instr isa.Instruction) Result {
	conditionWasTrue := false

	switch instr.Kind {
	case isa.KindComplementCarry:
		c.Flags.Carry = !c.Flags.Carry
	case isa.KindSetCarry:
		c.Flags.Carry = true
	case isa.KindIncrement:
		dst := c.regRef(instr.Register)
		doOperation(&c.Flags, dst, isa.ALUAdd, 1)
	case isa.KindDecrement:
		dst := c.regRef(instr.Register)
		doOperation(&c.Flags, dst, isa.ALUSubtract, 1)
	case isa.KindComplementAccumulator:
		c.Registers.A = ^c.Registers.A
	case isa.KindDecimalAdjustAccumulator:
		a := c.Registers.A
		low := a & 0b1111
		high := a >> 4
		if low > 9 || c.Flags.AuxiliaryCarry {
			low += 6
			c.Flags.AuxiliaryCarry = low > 0b1111
			high += low >> 4
		}
		if high > 9 || c.Flags.Carry {
			high += 6
			c.Flags.Carry = high > 0b1111
		}
		a = (high << 4) | (low & 0b1111)
		c.Registers.A = a
		c.Flags.SetFromArithmetic(a)
	case isa.KindNop:
		// nothing
	case isa.KindMove:
		c.Registers.Write(instr.Dest, c.Bus, c.Registers.Read(instr.Src, c.Bus))
	case isa.KindStoreAccumulator:
		c.Bus.Write(c.Registers.SmallPairAddress(instr.SmallPair), c.Registers.A)
	case isa.KindLoadAccumulator:
		c.Registers.A = c.Bus.Read(c.Registers.SmallPairAddress(instr.SmallPair))
	case isa.KindToAccumulator:
		value := c.Registers.Read(instr.Register, c.Bus)
		doOperation(&c.Flags, &c.Registers.A, instr.ALUOp, value)
	case isa.KindRotateAccumulator:
		a := c.Registers.A
		switch instr.RotateOp {
		case isa.RotateLeft:
			c.Flags.Carry = a&0b1000_0000 > 0
			c.Registers.A = rotateLeft8(a)
		case isa.RotateRight:
			c.Flags.Carry = a&0b0000_0001 > 0
			c.Registers.A = rotateRight8(a)
		case isa.RotateLeftThroughCarry:
			var carryBit byte
			if c.Flags.Carry {
				carryBit = 1
			}
			c.Flags.Carry = a&0b1000_0000 > 0
			c.Registers.A = (a << 1) | carryBit
		case isa.RotateRightThroughCarry:
			var carryBit byte
			if c.Flags.Carry {
				carryBit = 0b1000_0000
			}
			c.Flags.Carry = a&0b0000_0001 > 0
			c.Registers.A = (a >> 1) | carryBit
		}
	case isa.KindPush:
		c.push(getStackOpPair(&c.Registers, &c.Flags, instr.StackPair))
	case isa.KindPop:
		setStackOpPair(&c.Registers, &c.Flags, instr.StackPair, c.pop())
	case isa.KindAddToHl:
		value := c.Registers.GetPair(instr.LargePair)
		hl := c.Registers.HL()
		sum := hl + value
		c.Flags.Carry = sum < hl
		c.Registers.SetHL(sum)
	case isa.KindIncrementPair:
		c.Registers.SetPair(instr.LargePair, c.Registers.GetPair(instr.LargePair)+1)
	case isa.KindDecrementPair:
		c.Registers.SetPair(instr.LargePair, c.Registers.GetPair(instr.LargePair)-1)
	case isa.KindExchangeRegisters:
		hl := c.Registers.HL()
		de := c.Registers.GetPair(isa.LargePairDE)
		c.Registers.SetHL(de)
		c.Registers.SetPair(isa.LargePairDE, hl)
	case isa.KindExchangeStack:
		hl := c.Registers.HL()
		atStack := c.Bus.ReadU16(c.Registers.SP)
		c.Registers.SetHL(atStack)
		c.Bus.WriteU16(c.Registers.SP, hl)
	case isa.KindLoadSpFromHl:
		c.Registers.SP = c.Registers.HL()
	case isa.KindLoadLargeImmediate:
		c.Registers.SetPair(instr.LargePair, instr.Imm16)
	case isa.KindLoadImmediate:
		c.Registers.Write(instr.Register, c.Bus, instr.Imm8)
	case isa.KindToAccumulatorImmediate:
		doOperation(&c.Flags, &c.Registers.A, instr.ALUOp, instr.Imm8)
	case isa.KindDirectAddress:
		switch instr.AddressOp {
		case isa.DirectLoadAccumulator:
			c.Registers.A = c.Bus.Read(instr.Imm16)
		case isa.DirectStoreAccumulator:
			c.Bus.Write(instr.Imm16, c.Registers.A)
		case isa.DirectLoadHL:
			c.Registers.SetHL(c.Bus.ReadU16(instr.Imm16))
		case isa.DirectStoreHL:
			c.Bus.WriteU16(instr.Imm16, c.Registers.HL())
		}
	case isa.KindLoadProgramCounter:
		c.Registers.PC = c.Registers.HL()
	case isa.KindJump:
		conditionWasTrue = c.Flags.Evaluate(instr.Condition)
		if conditionWasTrue {
			c.Registers.PC = instr.Imm16
		}
	case isa.KindCall:
		conditionWasTrue = c.Flags.Evaluate(instr.Condition)
		if conditionWasTrue {
			c.push(c.Registers.PC)
			c.Registers.PC = instr.Imm16
		}
	case isa.KindReturn:
		conditionWasTrue = c.Flags.Evaluate(instr.Condition)
		if conditionWasTrue {
			c.Registers.PC = c.pop()
		}
	case isa.KindRestart:
		c.push(c.Registers.PC)
		c.Registers.PC = uint16(instr.Restart) << 3
	case isa.KindEnableInterrupts:
		c.InterruptsEnabled = true
	case isa.KindDisableInterrupts:
		c.InterruptsEnabled = false
	case isa.KindIn:
		if v, ok := c.readPort(instr.Imm8); ok {
			c.Registers.A = v
		}
	case isa.KindOut:
		c.writePort(instr.Imm8, c.Registers.A)
	case isa.KindHalt:
		return Result{Halted: true, InterruptsEnabled: c.InterruptsEnabled}
	case isa.KindInvalid:
		slog.Warn("invalid opcode", "opcode", instr.Opcode)
	}

	c.lastConditionWasTrue = conditionWasTrue
	return Result{}
}

// regRef resolves reg to a mutable pointer to its storage, following
// RegMemoryRef through the bus the same way Registers.Read/Write do.
// Increment/Decrement need the pointer form so doOperation can mutate in
// place.
func (c *Cpu) regRef(reg isa.Register) *byte {
	switch reg {
	case isa.RegB:
		return &c.Registers.B
	case isa.RegC:
		return &c.Registers.C
	case isa.RegD:
		return &c.Registers.D
	case isa.RegE:
		return &c.Registers.E
	case isa.RegH:
		return &c.Registers.H
	case isa.RegL:
		return &c.Registers.L
	case isa.RegA:
		return &c.Registers.A
	case isa.RegMemoryRef:
		return &c.Bus.Bytes[c.Registers.HL()]
	default:
		return &c.Registers.A
	}
}
