package chip

// instrSizeAt reports the flash-word width of the instruction at addr.
// The naive simulator indexes its program image by PC "slot" rather
// than by true flash address, so every instruction — wide encodings
// included — occupies exactly one slot from the interpreter's point of
// view. Skip instructions (cpse/sbrc/sbrs) rely on this being 1.
func instrSizeAt(c *Chip, addr int64) int64 {
	return 1
}

func (c *Chip) branchIf(taken bool, k int64) {
	if taken {
		c.PC += k + 1
	} else {
		c.PC++
	}
}

func (c *Chip) opBrcc(k int64) error {
	c.branchIf(!c.SregGet().C, k)
	return nil
}

func (c *Chip) opBreq(k int64) error {
	c.branchIf(c.SregGet().Z, k)
	return nil
}

func (c *Chip) opBrne(k int64) error {
	c.branchIf(!c.SregGet().Z, k)
	return nil
}

func (c *Chip) opBrtc(k int64) error {
	c.branchIf(!c.SregGet().T, k)
	return nil
}

func (c *Chip) opBrts(k int64) error {
	c.branchIf(c.SregGet().T, k)
	return nil
}

func (c *Chip) opCpse(rd, rr int64) error {
	next := c.PC + 1
	if c.RAM[rd] == c.RAM[rr] {
		c.PC = next + instrSizeAt(c, next)
	} else {
		c.PC = next
	}
	return nil
}

// pushByte pushes a byte onto the stack, decrementing SP after the
// write — the reverse of popByte's order.
func (c *Chip) pushByte(b uint8) error {
	sp := c.SP()
	if err := c.RAMSetByte(int64(sp), b); err != nil {
		return err
	}
	c.AddSP(-1)
	return nil
}

// popByte increments SP before reading — the reverse of pushByte.
func (c *Chip) popByte() uint8 {
	c.AddSP(1)
	return c.RAM[c.SP()]
}

func (c *Chip) opRcall(k int64) error {
	ret := c.PC + 1
	if err := c.pushByte(uint8(ret)); err != nil {
		return err
	}
	if err := c.pushByte(uint8(ret >> 8)); err != nil {
		return err
	}
	c.PC = c.PC + k + 1
	return nil
}

// opRet and opReti pop the two return-address bytes in the reverse of
// the order rcall pushed them: the first byte popped is treated as the
// high byte of the address and the second as the low byte, mirroring
// the reference implementation's pop sequence exactly.
func (c *Chip) opRet() error {
	high := c.popByte()
	low := c.popByte()
	c.PC = int64(uint16(high)<<8 | uint16(low))
	return nil
}

func (c *Chip) opReti() error {
	high := c.popByte()
	low := c.popByte()
	c.PC = int64(uint16(high)<<8 | uint16(low))
	sreg := c.SregGet()
	sreg.I = true
	c.SregSet(sreg)
	return nil
}

func (c *Chip) opRjmp(k int64) error {
	c.PC = c.PC + k + 1
	return nil
}

func (c *Chip) opSbis(a, b int64) error {
	requireIOAddress(a)
	requireBitIndex(b)
	next := c.PC + 1
	if bitOf(c.RAM[a+IOOffset], int(b)) {
		c.PC = next + instrSizeAt(c, next)
	} else {
		c.PC = next
	}
	return nil
}
