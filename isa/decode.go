package isa

import (
	"fmt"

	"github.com/mattfbacon/space80/bitpattern"
)

type builderFunc func(caps bitpattern.Captures, buf *Buffer) Instruction

type ruleDef struct {
	spec    string
	exclude []string
	build   builderFunc
}

// ruleTable lists every opcode pattern in the same order as the decode
// table's specification, one entry per row (the seven literal "Invalid"
// opcodes are expanded to one rule each, since bitpattern.Pattern covers a
// single template).
var ruleTable = []ruleDef{
	{"0011_1111", nil, func(bitpattern.Captures, *Buffer) Instruction {
		return Instruction{Kind: KindComplementCarry}
	}},
	{"0011_0111", nil, func(bitpattern.Captures, *Buffer) Instruction {
		return Instruction{Kind: KindSetCarry}
	}},
	{"0010_1111", nil, func(bitpattern.Captures, *Buffer) Instruction {
		return Instruction{Kind: KindComplementAccumulator}
	}},
	{"0010_0111", nil, func(bitpattern.Captures, *Buffer) Instruction {
		return Instruction{Kind: KindDecimalAdjustAccumulator}
	}},
	{"0000_0000", nil, func(bitpattern.Captures, *Buffer) Instruction {
		return Instruction{Kind: KindNop}
	}},
	{"1110_1011", nil, func(bitpattern.Captures, *Buffer) Instruction {
		return Instruction{Kind: KindExchangeRegisters}
	}},
	{"1110_0011", nil, func(bitpattern.Captures, *Buffer) Instruction {
		return Instruction{Kind: KindExchangeStack}
	}},
	{"1111_1001", nil, func(bitpattern.Captures, *Buffer) Instruction {
		return Instruction{Kind: KindLoadSpFromHl}
	}},
	{"1110_1001", nil, func(bitpattern.Captures, *Buffer) Instruction {
		return Instruction{Kind: KindLoadProgramCounter}
	}},
	{"1111_1011", nil, func(bitpattern.Captures, *Buffer) Instruction {
		return Instruction{Kind: KindEnableInterrupts}
	}},
	{"1111_0011", nil, func(bitpattern.Captures, *Buffer) Instruction {
		return Instruction{Kind: KindDisableInterrupts}
	}},
	{"1101_1011", nil, func(_ bitpattern.Captures, buf *Buffer) Instruction {
		return Instruction{Kind: KindIn, Imm8: buf.ReadU8()}
	}},
	{"1101_0011", nil, func(_ bitpattern.Captures, buf *Buffer) Instruction {
		return Instruction{Kind: KindOut, Imm8: buf.ReadU8()}
	}},
	{"0111_0110", nil, func(bitpattern.Captures, *Buffer) Instruction {
		return Instruction{Kind: KindHalt}
	}},
	{"00xx_x100", nil, func(caps bitpattern.Captures, _ *Buffer) Instruction {
		return Instruction{Kind: KindIncrement, Register: Register(caps['x'])}
	}},
	{"00xx_x101", nil, func(caps bitpattern.Captures, _ *Buffer) Instruction {
		return Instruction{Kind: KindDecrement, Register: Register(caps['x'])}
	}},
	{"01dd_dsss", []string{"0111_0110"}, func(caps bitpattern.Captures, _ *Buffer) Instruction {
		return Instruction{Kind: KindMove, Dest: Register(caps['d']), Src: Register(caps['s'])}
	}},
	{"000p_0010", nil, func(caps bitpattern.Captures, _ *Buffer) Instruction {
		return Instruction{Kind: KindStoreAccumulator, SmallPair: SmallRegisterPair(caps['p'])}
	}},
	{"000p_1010", nil, func(caps bitpattern.Captures, _ *Buffer) Instruction {
		return Instruction{Kind: KindLoadAccumulator, SmallPair: SmallRegisterPair(caps['p'])}
	}},
	{"10oo_orrr", nil, func(caps bitpattern.Captures, _ *Buffer) Instruction {
		return Instruction{Kind: KindToAccumulator, ALUOp: ALUOp(caps['o']), Register: Register(caps['r'])}
	}},
	{"000o_o111", nil, func(caps bitpattern.Captures, _ *Buffer) Instruction {
		return Instruction{Kind: KindRotateAccumulator, RotateOp: RotateOp(caps['o'])}
	}},
	{"11pp_0101", nil, func(caps bitpattern.Captures, _ *Buffer) Instruction {
		return Instruction{Kind: KindPush, StackPair: StackOpRegPair(caps['p'])}
	}},
	{"11pp_0001", nil, func(caps bitpattern.Captures, _ *Buffer) Instruction {
		return Instruction{Kind: KindPop, StackPair: StackOpRegPair(caps['p'])}
	}},
	{"00pp_1001", nil, func(caps bitpattern.Captures, _ *Buffer) Instruction {
		return Instruction{Kind: KindAddToHl, LargePair: LargeRegPair(caps['p'])}
	}},
	{"00pp_0011", nil, func(caps bitpattern.Captures, _ *Buffer) Instruction {
		return Instruction{Kind: KindIncrementPair, LargePair: LargeRegPair(caps['p'])}
	}},
	{"00pp_1011", nil, func(caps bitpattern.Captures, _ *Buffer) Instruction {
		return Instruction{Kind: KindDecrementPair, LargePair: LargeRegPair(caps['p'])}
	}},
	{"00pp_0001", nil, func(caps bitpattern.Captures, buf *Buffer) Instruction {
		return Instruction{Kind: KindLoadLargeImmediate, LargePair: LargeRegPair(caps['p']), Imm16: buf.ReadU16()}
	}},
	{"00rr_r110", nil, func(caps bitpattern.Captures, buf *Buffer) Instruction {
		return Instruction{Kind: KindLoadImmediate, Register: Register(caps['r']), Imm8: buf.ReadU8()}
	}},
	{"11oo_o110", nil, func(caps bitpattern.Captures, buf *Buffer) Instruction {
		return Instruction{Kind: KindToAccumulatorImmediate, ALUOp: ALUOp(caps['o']), Imm8: buf.ReadU8()}
	}},
	{"001o_o010", nil, func(caps bitpattern.Captures, buf *Buffer) Instruction {
		return Instruction{Kind: KindDirectAddress, AddressOp: DirectAddressOp(caps['o']), Imm16: buf.ReadU16()}
	}},
	{"11ee_e111", nil, func(caps bitpattern.Captures, _ *Buffer) Instruction {
		return Instruction{Kind: KindRestart, Restart: caps['e']}
	}},

	// The seven documented invalid opcodes: one literal rule each, all
	// building the same Invalid(opcode) variant.
	{"0000_1000", nil, invalidBuilder},
	{"0001_0000", nil, invalidBuilder},
	{"0001_1000", nil, invalidBuilder},
	{"0010_0000", nil, invalidBuilder},
	{"0010_1000", nil, invalidBuilder},
	{"0011_0000", nil, invalidBuilder},
	{"0011_1000", nil, invalidBuilder},

	{"11oo_o010", nil, func(caps bitpattern.Captures, buf *Buffer) Instruction {
		return Instruction{Kind: KindJump, Condition: Condition(caps['o']), Imm16: buf.ReadU16()}
	}},
	{"1100_?011", nil, func(_ bitpattern.Captures, buf *Buffer) Instruction {
		return Instruction{Kind: KindJump, Condition: CondUnconditional, Imm16: buf.ReadU16()}
	}},
	{"11oo_o100", nil, func(caps bitpattern.Captures, buf *Buffer) Instruction {
		return Instruction{Kind: KindCall, Condition: Condition(caps['o']), Imm16: buf.ReadU16()}
	}},
	{"11??_1101", nil, func(_ bitpattern.Captures, buf *Buffer) Instruction {
		return Instruction{Kind: KindCall, Condition: CondUnconditional, Imm16: buf.ReadU16()}
	}},
	{"11oo_o000", nil, func(caps bitpattern.Captures, _ *Buffer) Instruction {
		return Instruction{Kind: KindReturn, Condition: Condition(caps['o'])}
	}},
	{"110?_1001", nil, func(bitpattern.Captures, *Buffer) Instruction {
		return Instruction{Kind: KindReturn, Condition: CondUnconditional}
	}},
}

func invalidBuilder(_ bitpattern.Captures, _ *Buffer) Instruction {
	// Opcode is filled in by Decode, since the builder only sees captures.
	return Instruction{Kind: KindInvalid}
}

var (
	decodeTable *bitpattern.Table
	builders    []builderFunc
)

func init() {
	rules := make([]bitpattern.Rule, 0, len(ruleTable))
	builders = make([]builderFunc, 0, len(ruleTable))

	for _, def := range ruleTable {
		p, err := bitpattern.Compile(def.spec)
		if err != nil {
			panic(fmt.Errorf("isa: %w", err))
		}
		if len(def.exclude) > 0 {
			if p, err = p.Exclude(def.exclude...); err != nil {
				panic(fmt.Errorf("isa: %w", err))
			}
		}
		rules = append(rules, bitpattern.Rule{Pattern: p})
		builders = append(builders, def.build)
	}

	var err error
	if decodeTable, err = bitpattern.NewTable(rules); err != nil {
		panic(fmt.Errorf("isa: invalid opcode table: %w", err))
	}
}

// Decode consumes one instruction from buf, which must be positioned at an
// opcode byte.
func Decode(buf *Buffer) Instruction {
	opcode := buf.ReadU8()
	idx, caps := decodeTable.Match(opcode)
	instr := builders[idx](caps, buf)
	if instr.Kind == KindInvalid {
		instr.Opcode = opcode
	}
	return instr
}
