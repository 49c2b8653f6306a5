package bitpattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompile(t *testing.T, spec string) *Pattern {
	t.Helper()
	p, err := Compile(spec)
	require.NoError(t, err)
	return p
}

func TestNewTableRejectsOverlap(t *testing.T) {
	rules := []Rule{
		{Pattern: mustCompile(t, "0000_0000")},
		{Pattern: mustCompile(t, "0000_000?")}, // also covers 0x00
	}
	_, err := NewTable(rules)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "0x00")
}

func TestNewTableRejectsIncompleteCoverage(t *testing.T) {
	rules := []Rule{
		{Pattern: mustCompile(t, "0000_0000")},
	}
	_, err := NewTable(rules)
	assert.Error(t, err)
}

func TestNewTableRejectsCatchAllOverlappingLiteral(t *testing.T) {
	p1 := mustCompile(t, "0000_0000")
	p2 := mustCompile(t, "????_???1")
	// p2 still needs to avoid 0x00's slot, but 0x00 has LSB 0 so it's disjoint already.
	rules := []Rule{
		{Pattern: p1},
		{Pattern: p2},
		{Pattern: mustCompile(t, "????_???0")}, // catches remaining even bytes except 0x00... still overlaps 0x00
	}
	_, err := NewTable(rules)
	assert.Error(t, err) // 0x00 matches both p1 and the final catch-all
}

func TestMatchReturnsOwningRuleAndCaptures(t *testing.T) {
	rules := []Rule{
		{Pattern: mustCompile(t, "01dddsss")},
	}
	for b := 0; b < 256; b++ {
		if b&0b1100_0000 != 0b0100_0000 {
			rules = append(rules, Rule{Pattern: mustCompile(t, byteLiteral(byte(b)))})
		}
	}
	table, err := NewTable(rules)
	require.NoError(t, err)

	idx, caps := table.Match(0b01_010_011)
	assert.Equal(t, 0, idx)
	assert.Equal(t, byte(0b010), caps['d'])
	assert.Equal(t, byte(0b011), caps['s'])
}

func byteLiteral(b byte) string {
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		bit := 7 - i
		if b&(1<<bit) != 0 {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}
