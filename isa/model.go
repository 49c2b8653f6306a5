// Package isa is the 8080 instruction-set architecture model: the small
// closed enums bit patterns decode into, the tagged Instruction variant,
// the cycle-count table, and the decoder that drives bitpattern.Table over
// an InstructionBuffer. It has no notion of running an instruction — that
// is the execution engine in package cpu.
package isa

import "fmt"

// Register is the 3-bit register field: {B, C, D, E, H, L, MemoryRef, A}.
type Register byte

const (
	RegB Register = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegMemoryRef // memory[HL], not a real register
	RegA
)

func (r Register) String() string {
	switch r {
	case RegB:
		return "B"
	case RegC:
		return "C"
	case RegD:
		return "D"
	case RegE:
		return "E"
	case RegH:
		return "H"
	case RegL:
		return "L"
	case RegMemoryRef:
		return "M"
	case RegA:
		return "A"
	default:
		return fmt.Sprintf("Register(%d)", byte(r))
	}
}

// SmallRegisterPair is the 1-bit pair field used by STAX/LDAX: {BC, DE}.
type SmallRegisterPair byte

const (
	SmallPairBC SmallRegisterPair = iota
	SmallPairDE
)

func (p SmallRegisterPair) String() string {
	if p == SmallPairBC {
		return "BC"
	}
	return "DE"
}

// LargeRegPair is the 2-bit pair field: {BC, DE, HL, SP}.
type LargeRegPair byte

const (
	LargePairBC LargeRegPair = iota
	LargePairDE
	LargePairHL
	LargePairSP
)

func (p LargeRegPair) String() string {
	switch p {
	case LargePairBC:
		return "BC"
	case LargePairDE:
		return "DE"
	case LargePairHL:
		return "HL"
	case LargePairSP:
		return "SP"
	default:
		return fmt.Sprintf("LargeRegPair(%d)", byte(p))
	}
}

// StackOpRegPair is the 2-bit pair field used by PUSH/POP: {BC, DE, HL, FlagsA}.
type StackOpRegPair byte

const (
	StackPairBC StackOpRegPair = iota
	StackPairDE
	StackPairHL
	StackPairFlagsA // A packed with the flag byte
)

func (p StackOpRegPair) String() string {
	switch p {
	case StackPairBC:
		return "BC"
	case StackPairDE:
		return "DE"
	case StackPairHL:
		return "HL"
	case StackPairFlagsA:
		return "PSW"
	default:
		return fmt.Sprintf("StackOpRegPair(%d)", byte(p))
	}
}

// ALUOp is the 3-bit "to accumulator" operation field.
type ALUOp byte

const (
	ALUAdd ALUOp = iota
	ALUAddWithCarry
	ALUSubtract
	ALUSubtractWithBorrow
	ALUAnd
	ALUXor
	ALUOr
	ALUCompare
)

func (o ALUOp) String() string {
	switch o {
	case ALUAdd:
		return "ADD"
	case ALUAddWithCarry:
		return "ADC"
	case ALUSubtract:
		return "SUB"
	case ALUSubtractWithBorrow:
		return "SBB"
	case ALUAnd:
		return "ANA"
	case ALUXor:
		return "XRA"
	case ALUOr:
		return "ORA"
	case ALUCompare:
		return "CMP"
	default:
		return fmt.Sprintf("ALUOp(%d)", byte(o))
	}
}

// RotateOp is the 2-bit accumulator-rotate operation field.
type RotateOp byte

const (
	RotateLeft RotateOp = iota
	RotateRight
	RotateLeftThroughCarry
	RotateRightThroughCarry
)

func (o RotateOp) String() string {
	switch o {
	case RotateLeft:
		return "RLC"
	case RotateRight:
		return "RRC"
	case RotateLeftThroughCarry:
		return "RAL"
	case RotateRightThroughCarry:
		return "RAR"
	default:
		return fmt.Sprintf("RotateOp(%d)", byte(o))
	}
}

// DirectAddressOp is the 2-bit direct-addressing operation field.
type DirectAddressOp byte

const (
	DirectStoreHL DirectAddressOp = iota
	DirectLoadHL
	DirectStoreAccumulator
	DirectLoadAccumulator
)

func (o DirectAddressOp) String() string {
	switch o {
	case DirectStoreHL:
		return "SHLD"
	case DirectLoadHL:
		return "LHLD"
	case DirectStoreAccumulator:
		return "STA"
	case DirectLoadAccumulator:
		return "LDA"
	default:
		return fmt.Sprintf("DirectAddressOp(%d)", byte(o))
	}
}

// Condition is the 3-bit branch-condition field, plus the Unconditional
// variant used for aliased opcodes (§4.2 edge cases).
type Condition byte

const (
	CondNonZero Condition = iota
	CondZero
	CondNoCarry
	CondCarry
	CondParityOdd
	CondParityEven
	CondPlus
	CondMinus
	CondUnconditional
)

func (c Condition) String() string {
	switch c {
	case CondNonZero:
		return "NZ"
	case CondZero:
		return "Z"
	case CondNoCarry:
		return "NC"
	case CondCarry:
		return "C"
	case CondParityOdd:
		return "PO"
	case CondParityEven:
		return "PE"
	case CondPlus:
		return "P"
	case CondMinus:
		return "M"
	case CondUnconditional:
		return ""
	default:
		return fmt.Sprintf("Condition(%d)", byte(c))
	}
}
