package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeNeverPanicsAndReturnsOneVariant(t *testing.T) {
	for opcode := 0; opcode < 256; opcode++ {
		program := []byte{byte(opcode), 0x00, 0x00}
		buf := NewBuffer(program, 0)
		assert.NotPanics(t, func() {
			Decode(buf)
		}, "opcode 0x%02X", opcode)
	}
}

func TestNumCyclesWithinKnownSet(t *testing.T) {
	valid := map[byte]bool{4: true, 5: true, 7: true, 10: true, 11: true, 13: true, 17: true, 18: true}
	for opcode := 0; opcode < 256; opcode++ {
		program := []byte{byte(opcode), 0x00, 0x00}
		instr := Decode(NewBuffer(program, 0))
		assert.True(t, valid[instr.NumCycles(false)], "opcode 0x%02X num_cycles(false)=%d", opcode, instr.NumCycles(false))
		assert.True(t, valid[instr.NumCycles(true)], "opcode 0x%02X num_cycles(true)=%d", opcode, instr.NumCycles(true))
	}
}

func TestMoveExcludesHalt(t *testing.T) {
	instr := Decode(NewBuffer([]byte{0x76}, 0))
	assert.Equal(t, KindHalt, instr.Kind)
}

func TestInvalidOpcodesCarryTheirByte(t *testing.T) {
	for _, opcode := range []byte{0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38} {
		instr := Decode(NewBuffer([]byte{opcode}, 0))
		assert.Equal(t, KindInvalid, instr.Kind)
		assert.Equal(t, opcode, instr.Opcode)
	}
}

func TestUnconditionalAliasesDecodeAsUnconditional(t *testing.T) {
	jmp := Decode(NewBuffer([]byte{0xC3, 0x00, 0x00}, 0)) // 1100_0011
	assert.Equal(t, KindJump, jmp.Kind)
	assert.Equal(t, CondUnconditional, jmp.Condition)

	call := Decode(NewBuffer([]byte{0xCD, 0x00, 0x00}, 0)) // 1100_1101
	assert.Equal(t, KindCall, call.Kind)
	assert.Equal(t, CondUnconditional, call.Condition)

	ret := Decode(NewBuffer([]byte{0xC9}, 0)) // 1100_1001
	assert.Equal(t, KindReturn, ret.Kind)
	assert.Equal(t, CondUnconditional, ret.Condition)
}

func TestLoadLargeImmediateReadsLittleEndian(t *testing.T) {
	instr := Decode(NewBuffer([]byte{0x21, 0xCD, 0xAB}, 0)) // LXI H, 0xABCD
	assert.Equal(t, KindLoadLargeImmediate, instr.Kind)
	assert.Equal(t, LargePairHL, instr.LargePair)
	assert.Equal(t, uint16(0xABCD), instr.Imm16)
}
