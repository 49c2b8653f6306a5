package cpu

import (
	"github.com/mattfbacon/space80/isa"
	"github.com/mattfbacon/space80/mem"
)

// Registers holds the seven 8080 registers plus the stack pointer and
// program counter.
type Registers struct {
	B, C, D, E, H, L, A byte
	SP, PC              uint16
}

// HL returns the 16-bit pair formed from H (high) and L (low).
func (r Registers) HL() uint16 {
	return uint16(r.L) | uint16(r.H)<<8
}

// SetHL writes v back into H and L.
func (r *Registers) SetHL(v uint16) {
	r.L = byte(v)
	r.H = byte(v >> 8)
}

// GetPair reads a LargeRegPair.
func (r Registers) GetPair(p isa.LargeRegPair) uint16 {
	switch p {
	case isa.LargePairBC:
		return uint16(r.C) | uint16(r.B)<<8
	case isa.LargePairDE:
		return uint16(r.E) | uint16(r.D)<<8
	case isa.LargePairHL:
		return r.HL()
	case isa.LargePairSP:
		return r.SP
	default:
		return 0
	}
}

// SetPair writes a LargeRegPair.
func (r *Registers) SetPair(p isa.LargeRegPair, v uint16) {
	switch p {
	case isa.LargePairBC:
		r.C, r.B = byte(v), byte(v>>8)
	case isa.LargePairDE:
		r.E, r.D = byte(v), byte(v>>8)
	case isa.LargePairHL:
		r.SetHL(v)
	case isa.LargePairSP:
		r.SP = v
	}
}

// SmallPairAddress returns the 16-bit address STAX/LDAX forms from a
// SmallRegisterPair: (high<<8 | low), i.e. big-endian relative to memory
// byte order — this is the 8080 ABI for these two instructions specifically
// (§4.4), not the little-endian convention used everywhere else.
func (r Registers) SmallPairAddress(p isa.SmallRegisterPair) uint16 {
	switch p {
	case isa.SmallPairBC:
		return uint16(r.C) | uint16(r.B)<<8
	case isa.SmallPairDE:
		return uint16(r.E) | uint16(r.D)<<8
	default:
		return 0
	}
}

// Read returns the value named by reg, resolving RegMemoryRef through bus
// at the current HL address.
func (r Registers) Read(reg isa.Register, bus *mem.Bus) byte {
	switch reg {
	case isa.RegB:
		return r.B
	case isa.RegC:
		return r.C
	case isa.RegD:
		return r.D
	case isa.RegE:
		return r.E
	case isa.RegH:
		return r.H
	case isa.RegL:
		return r.L
	case isa.RegMemoryRef:
		return bus.Read(r.HL())
	case isa.RegA:
		return r.A
	default:
		return 0
	}
}

// Write stores v into reg, resolving RegMemoryRef through bus at the
// current HL address.
func (r *Registers) Write(reg isa.Register, bus *mem.Bus, v byte) {
	switch reg {
	case isa.RegB:
		r.B = v
	case isa.RegC:
		r.C = v
	case isa.RegD:
		r.D = v
	case isa.RegE:
		r.E = v
	case isa.RegH:
		r.H = v
	case isa.RegL:
		r.L = v
	case isa.RegMemoryRef:
		bus.Write(r.HL(), v)
	case isa.RegA:
		r.A = v
	}
}
