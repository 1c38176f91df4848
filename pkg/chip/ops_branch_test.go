package chip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpBreqTaken(t *testing.T) {
	c := New(8_000_000)
	sreg := c.SregGet()
	sreg.Z = true
	c.SregSet(sreg)
	c.PC = 10
	require.NoError(t, c.opBreq(3))
	assert.Equal(t, int64(14), c.PC)
}

func TestOpBreqNotTaken(t *testing.T) {
	c := New(8_000_000)
	c.PC = 10
	require.NoError(t, c.opBreq(3))
	assert.Equal(t, int64(11), c.PC)
}

func TestOpRjmp(t *testing.T) {
	c := New(8_000_000)
	c.PC = 5
	require.NoError(t, c.opRjmp(2))
	assert.Equal(t, int64(8), c.PC)
}

func TestOpCpseSkipsWhenEqual(t *testing.T) {
	c := New(8_000_000)
	c.RAM[0] = 7
	c.RAM[1] = 7
	c.PC = 0
	require.NoError(t, c.opCpse(0, 1))
	assert.Equal(t, int64(2), c.PC)
}

func TestOpCpseDoesNotSkipWhenUnequal(t *testing.T) {
	c := New(8_000_000)
	c.RAM[0] = 7
	c.RAM[1] = 8
	c.PC = 0
	require.NoError(t, c.opCpse(0, 1))
	assert.Equal(t, int64(1), c.PC)
}

func TestRcallRetRoundTrip(t *testing.T) {
	c := New(8_000_000)
	c.PC = 100
	sp0 := c.SP()

	require.NoError(t, c.opRcall(50))
	assert.Equal(t, int64(151), c.PC, "rcall target is pc+k+1")
	assert.Equal(t, sp0-2, c.SP())

	require.NoError(t, c.opRet())
	assert.Equal(t, int64(101), c.PC, "ret restores the pushed return address")
	assert.Equal(t, sp0, c.SP())
}

func TestRetiReenablesInterrupts(t *testing.T) {
	c := New(8_000_000)
	c.PC = 20
	require.NoError(t, c.opRcall(1))
	sreg := c.SregGet()
	sreg.I = false
	c.SregSet(sreg)

	require.NoError(t, c.opReti())
	assert.True(t, c.SregGet().I)
}

func TestOpSbisSkipsWhenBitSet(t *testing.T) {
	c := New(8_000_000)
	c.RAM[0x1B+IOOffset] = 0x01
	c.PC = 0
	require.NoError(t, c.opSbis(0x1B, 0))
	assert.Equal(t, int64(2), c.PC)
}

func TestOpSbisDoesNotSkipWhenBitClear(t *testing.T) {
	c := New(8_000_000)
	c.PC = 0
	require.NoError(t, c.opSbis(0x1B, 0))
	assert.Equal(t, int64(1), c.PC)
}
