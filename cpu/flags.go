package cpu

import (
	"math/bits"

	"github.com/mattfbacon/space80/isa"
	"github.com/mattfbacon/space80/mask"
)

// Flags holds the five 8080 condition bits this emulator tracks.
type Flags struct {
	Carry          bool
	AuxiliaryCarry bool
	SignPositive   bool // true when the last result's MSB is 0 — the inverse sense of the hardware S flag
	Zero           bool
	ParityEven     bool
}

// SetFromArithmetic derives Zero, SignPositive, and ParityEven from r, the
// byte an ALU operation just produced. Carry and AuxiliaryCarry are set
// separately by the operation itself (§4.5).
func (f *Flags) SetFromArithmetic(r byte) {
	f.SignPositive = r&0x80 == 0
	f.Zero = r == 0
	f.ParityEven = bits.OnesCount8(r)%2 == 0
}

func boolBit(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// AsByte packs the flags into the hardware layout: bit0=carry, bit1=1,
// bit2=parity_even, bit4=auxiliary_carry, bit6=zero, bit7=sign_positive
// (re-inverted here so the packed byte matches the real chip's S flag).
func (f Flags) AsByte() byte {
	var b byte
	b = mask.Set(b, mask.I1, boolBit(!f.SignPositive))
	b = mask.Set(b, mask.I2, boolBit(f.Zero))
	b = mask.Set(b, mask.I4, boolBit(f.AuxiliaryCarry))
	b = mask.Set(b, mask.I6, boolBit(f.ParityEven))
	b = mask.Set(b, mask.I7, 1)
	b = mask.Set(b, mask.I8, boolBit(f.Carry))
	return b
}

// SetByte unpacks b into the five tracked flags, inverting bit 7 back into
// SignPositive; bit 1 and the unused bits are ignored.
func (f *Flags) SetByte(b byte) {
	f.SignPositive = !mask.IsSet(b, mask.I1)
	f.Zero = mask.IsSet(b, mask.I2)
	f.AuxiliaryCarry = mask.IsSet(b, mask.I4)
	f.ParityEven = mask.IsSet(b, mask.I6)
	f.Carry = mask.IsSet(b, mask.I8)
}

// Evaluate reports whether cond holds under the current flags.
// Unconditional always evaluates true.
func (f Flags) Evaluate(cond isa.Condition) bool {
	switch cond {
	case isa.CondNonZero:
		return !f.Zero
	case isa.CondZero:
		return f.Zero
	case isa.CondNoCarry:
		return !f.Carry
	case isa.CondCarry:
		return f.Carry
	case isa.CondParityOdd:
		return !f.ParityEven
	case isa.CondParityEven:
		return f.ParityEven
	case isa.CondPlus:
		return f.SignPositive
	case isa.CondMinus:
		return !f.SignPositive
	case isa.CondUnconditional:
		return true
	default:
		return true
	}
}
