package chip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpSbiSetsIOBit(t *testing.T) {
	c := New(8_000_000)
	require.NoError(t, c.opSbi(0x1B, 3)) // PORTA bit 3
	assert.True(t, bitOf(c.RAM[0x1B+IOOffset], 3))
}

func TestOpCbiClearsIOBit(t *testing.T) {
	c := New(8_000_000)
	c.RAM[0x1B+IOOffset] = 0xFF
	require.NoError(t, c.opCbi(0x1B, 3))
	assert.False(t, bitOf(c.RAM[0x1B+IOOffset], 3))
}

func TestOpSbiRejectsOutOfRangeAddress(t *testing.T) {
	c := New(8_000_000)
	assert.Panics(t, func() { c.opSbi(32, 0) })
}

func TestOpSbiRejectsOutOfRangeBit(t *testing.T) {
	c := New(8_000_000)
	assert.Panics(t, func() { c.opSbi(0, 8) })
}

func TestOpLslSetsCarryFromBit7(t *testing.T) {
	c := New(8_000_000)
	c.RAM[0] = 0x80
	require.NoError(t, c.opLsl(0))
	assert.Equal(t, uint8(0), c.RAM[0])
	assert.True(t, c.SregGet().C)
}

func TestOpRolRotatesThroughCarry(t *testing.T) {
	c := New(8_000_000)
	sreg := c.SregGet()
	sreg.C = true
	c.SregSet(sreg)
	c.RAM[0] = 0x00
	require.NoError(t, c.opRol(0))
	assert.Equal(t, uint8(0x01), c.RAM[0])
}

func TestOpRorDoesNotTouchHalfCarry(t *testing.T) {
	c := New(8_000_000)
	sreg := c.SregGet()
	sreg.H = true
	c.SregSet(sreg)
	c.RAM[0] = 0x01
	require.NoError(t, c.opRor(0))
	assert.True(t, c.SregGet().H, "ror must leave H untouched")
}

func TestOpSbrcSkipsWhenBitClear(t *testing.T) {
	c := New(8_000_000)
	c.RAM[0] = 0x00
	before := c.PC
	require.NoError(t, c.opSbrc(0, 0))
	assert.Equal(t, before+2, c.PC)
}

func TestOpSbrcDoesNotSkipWhenBitSet(t *testing.T) {
	c := New(8_000_000)
	c.RAM[0] = 0x01
	before := c.PC
	require.NoError(t, c.opSbrc(0, 0))
	assert.Equal(t, before+1, c.PC)
}

func TestOpSbrsSkipsWhenBitSet(t *testing.T) {
	c := New(8_000_000)
	c.RAM[0] = 0x01
	before := c.PC
	require.NoError(t, c.opSbrs(0, 0))
	assert.Equal(t, before+2, c.PC)
}

func TestOpSbrsDoesNotSkipWhenBitClear(t *testing.T) {
	c := New(8_000_000)
	c.RAM[0] = 0x00
	before := c.PC
	require.NoError(t, c.opSbrs(0, 0))
	assert.Equal(t, before+1, c.PC)
}
