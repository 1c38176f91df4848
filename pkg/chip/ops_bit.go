package chip

import "fmt"

// requireIOAddress validates an I/O-space address used by cbi/sbi/sbis:
// those instructions only encode 5 bits, reaching I/O addresses 0-31
// (RAM addresses 32-63). A violation is an assembly-time mistake the
// encoder could not have produced, so it panics rather than returning
// a recoverable error.
func requireIOAddress(a int64) {
	if a < 0 || a > 31 {
		panic(fmt.Sprintf("i/o address %d out of range [0, 31]", a))
	}
}

// requireBitIndex validates a 3-bit bit-select operand used by cbi/sbi/
// sbis/sbrc/sbrs.
func requireBitIndex(b int64) {
	if b < 0 || b > 7 {
		panic(fmt.Sprintf("bit index %d out of range [0, 7]", b))
	}
}

func (c *Chip) opCbi(a, b int64) error {
	requireIOAddress(a)
	requireBitIndex(b)
	addr := a + IOOffset
	c.RAM[addr] = setBit(c.RAM[addr], int(b), false)
	c.PC++
	return nil
}

func (c *Chip) opSbi(a, b int64) error {
	requireIOAddress(a)
	requireBitIndex(b)
	addr := a + IOOffset
	c.RAM[addr] = setBit(c.RAM[addr], int(b), true)
	c.PC++
	return nil
}

func (c *Chip) opClc() error {
	sreg := c.SregGet()
	sreg.C = false
	c.SregSet(sreg)
	c.PC++
	return nil
}

func (c *Chip) opClt() error {
	sreg := c.SregGet()
	sreg.T = false
	c.SregSet(sreg)
	c.PC++
	return nil
}

func (c *Chip) opSec() error {
	sreg := c.SregGet()
	sreg.C = true
	c.SregSet(sreg)
	c.PC++
	return nil
}

func (c *Chip) opSei() error {
	sreg := c.SregGet()
	sreg.I = true
	c.SregSet(sreg)
	c.PC++
	return nil
}

func (c *Chip) opSet() error {
	sreg := c.SregGet()
	sreg.T = true
	c.SregSet(sreg)
	c.PC++
	return nil
}

func (c *Chip) opLsl(rd int64) error {
	old := c.RAM[rd]
	val := old << 1
	c.RAM[rd] = val
	sreg := c.SregGet()
	n := bitOf(val, 7)
	sreg.C = bitOf(old, 7)
	sreg.H = bitOf(old, 3)
	sreg.N = n
	sreg.V = n != sreg.C
	sreg.S = n != sreg.V
	sreg.Z = val == 0
	c.SregSet(sreg)
	c.PC++
	return nil
}

func (c *Chip) opRol(rd int64) error {
	old := c.RAM[rd]
	sreg := c.SregGet()
	var carryIn uint8
	if sreg.C {
		carryIn = 1
	}
	val := (old << 1) | carryIn
	c.RAM[rd] = val
	n := bitOf(val, 7)
	sreg.C = bitOf(old, 7)
	sreg.H = bitOf(old, 3)
	sreg.N = n
	sreg.V = n != sreg.C
	sreg.S = n != sreg.V
	sreg.Z = val == 0
	c.SregSet(sreg)
	c.PC++
	return nil
}

// opRor rotates right through carry. Unlike lsl/rol it does not touch
// the half-carry flag.
func (c *Chip) opRor(rd int64) error {
	old := c.RAM[rd]
	sreg := c.SregGet()
	var carryIn uint8
	if sreg.C {
		carryIn = 1 << 7
	}
	val := (old >> 1) | carryIn
	c.RAM[rd] = val
	n := bitOf(val, 7)
	sreg.C = bitOf(old, 0)
	sreg.N = n
	sreg.V = n != sreg.C
	sreg.S = n != sreg.V
	sreg.Z = val == 0
	c.SregSet(sreg)
	c.PC++
	return nil
}

func (c *Chip) opSbrc(rd, b int64) error {
	requireBitIndex(b)
	c.PC++
	if !bitOf(c.RAM[rd], int(b)) {
		c.PC += instrSizeAt(c, c.PC)
	}
	return nil
}

// opSbrs mirrors opSbrc with inverted polarity: it skips the next
// instruction when the tested bit is set rather than clear.
func (c *Chip) opSbrs(rd, b int64) error {
	requireBitIndex(b)
	c.PC++
	if bitOf(c.RAM[rd], int(b)) {
		c.PC += instrSizeAt(c, c.PC)
	}
	return nil
}
