package bitpattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRejectsWrongLength(t *testing.T) {
	_, err := Compile("0011")
	assert.Error(t, err)
}

func TestCompileRejectsNonContiguousCapture(t *testing.T) {
	_, err := Compile("d0d00000")
	assert.Error(t, err)
}

func TestMatchesFixedBits(t *testing.T) {
	p, err := Compile("01dddsss")
	require.NoError(t, err)

	assert.True(t, p.Matches(0b01_000_001))
	assert.False(t, p.Matches(0b00_000_001))
	assert.False(t, p.Matches(0b11_000_001))
}

func TestExtractCaptures(t *testing.T) {
	p, err := Compile("01dddsss")
	require.NoError(t, err)

	caps := p.Extract(0b01_101_011)
	assert.Equal(t, byte(0b101), caps['d'])
	assert.Equal(t, byte(0b011), caps['s'])
}

func TestExtractMatchesShiftAndMaskDefinition(t *testing.T) {
	p, err := Compile("00xxx100")
	require.NoError(t, err)

	for opcode := 0; opcode < 256; opcode++ {
		b := byte(opcode)
		if !p.Matches(b) {
			continue
		}
		caps := p.Extract(b)
		want := (b >> 3) & 0b111
		assert.Equal(t, want, caps['x'], "opcode 0x%02X", b)
	}
}

func TestExcludeRemovesLiteralFromCoverage(t *testing.T) {
	p, err := Compile("01dddsss")
	require.NoError(t, err)
	_, err = p.Exclude("0111_0110")
	require.NoError(t, err)

	assert.False(t, p.Matches(0x76))
	assert.True(t, p.Matches(0x77))

	for _, b := range p.Possibilities() {
		assert.NotEqual(t, byte(0x76), b)
	}
}

func TestPossibilitiesCoverAllWildcardCombinations(t *testing.T) {
	p, err := Compile("000oo111")
	require.NoError(t, err)

	poss := p.Possibilities()
	assert.Len(t, poss, 4)
	for _, b := range poss {
		assert.True(t, p.Matches(b))
	}
}

func TestLiteralPatternHasExactlyOnePossibility(t *testing.T) {
	p, err := Compile("0011_1111")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x3F}, p.Possibilities())
}
