package chip

import "fmt"

// High registers are the only valid destination for instructions that
// take an 8-bit immediate (andi, cpi, ldi, ori, subi) — the immediate
// operand only leaves four bits for the destination register, so the
// encoding can only reach r16-r31. Violating this is an assembly-time
// mistake the encoder itself could not have produced, so it panics
// rather than returning a recoverable error.
func requireHighRegister(rd int64) {
	if rd < 16 || rd > 31 {
		panic(fmt.Sprintf("register r%d is not addressable with an immediate (must be r16-r31)", rd))
	}
}

func (c *Chip) opAnd(rd, rr int64) error {
	val := c.RAM[rd] & c.RAM[rr]
	c.RAM[rd] = val
	sreg := c.SregGet()
	n := bitOf(val, 7)
	sreg.N = n
	sreg.V = false
	sreg.S = n != sreg.V
	sreg.Z = val == 0
	c.SregSet(sreg)
	c.PC++
	return nil
}

func (c *Chip) opAndi(rd, k int64) error {
	requireHighRegister(rd)
	val := c.RAM[rd] & uint8(k)
	c.RAM[rd] = val
	sreg := c.SregGet()
	n := bitOf(val, 7)
	sreg.N = n
	sreg.V = false
	sreg.S = n != sreg.V
	sreg.Z = val == 0
	c.SregSet(sreg)
	c.PC++
	return nil
}

func (c *Chip) opClr(rd int64) error {
	c.RAM[rd] = 0
	sreg := c.SregGet()
	sreg.N = false
	sreg.V = false
	sreg.S = false
	sreg.Z = true
	c.SregSet(sreg)
	c.PC++
	return nil
}

func (c *Chip) opCom(rd int64) error {
	val := uint8(0xFF) - c.RAM[rd]
	c.RAM[rd] = val
	sreg := c.SregGet()
	n := bitOf(val, 7)
	sreg.C = true
	sreg.N = n
	sreg.V = false
	sreg.S = n != sreg.V
	sreg.Z = val == 0
	c.SregSet(sreg)
	c.PC++
	return nil
}

// subFlags computes the H/V/N/S/Z/C flags for an 8-bit rd-minus-rr
// subtraction that does not store its result, per the ATmega16A
// instruction set summary's bitwise flag definitions.
func subFlags(d, r uint8) Sreg {
	result := d - r
	d7, r7, res7 := bitOf(d, 7), bitOf(r, 7), bitOf(result, 7)
	d3, r3, res3 := bitOf(d, 3), bitOf(r, 3), bitOf(result, 3)

	h := (!d3 && r3) || (r3 && res3) || (res3 && !d3)
	v := (d7 && !r7 && !res7) || (!d7 && r7 && res7)
	n := res7
	carry := (!d7 && r7) || (r7 && res7) || (res7 && !d7)

	return Sreg{
		H: h,
		V: v,
		N: n,
		S: n != v,
		Z: result == 0,
		C: carry,
	}
}

func (c *Chip) opCpi(rd, k int64) error {
	requireHighRegister(rd)
	flags := subFlags(c.RAM[rd], uint8(k))
	sreg := c.SregGet()
	sreg.H, sreg.V, sreg.N, sreg.S, sreg.Z, sreg.C = flags.H, flags.V, flags.N, flags.S, flags.Z, flags.C
	c.SregSet(sreg)
	c.PC++
	return nil
}

func (c *Chip) opDec(rd int64) error {
	old := c.RAM[rd]
	val := old - 1
	c.RAM[rd] = val
	sreg := c.SregGet()
	n := bitOf(val, 7)
	sreg.N = n
	sreg.V = old == 0x80
	sreg.S = n != sreg.V
	sreg.Z = val == 0
	c.SregSet(sreg)
	c.PC++
	return nil
}

func (c *Chip) opEor(rd, rr int64) error {
	val := c.RAM[rd] ^ c.RAM[rr]
	c.RAM[rd] = val
	sreg := c.SregGet()
	n := bitOf(val, 7)
	sreg.N = n
	sreg.V = false
	sreg.S = n != sreg.V
	sreg.Z = val == 0
	c.SregSet(sreg)
	c.PC++
	return nil
}

func (c *Chip) opInc(rd int64) error {
	old := c.RAM[rd]
	val := old + 1
	c.RAM[rd] = val
	sreg := c.SregGet()
	n := bitOf(val, 7)
	sreg.N = n
	sreg.V = old == 0x7F
	sreg.S = n != sreg.V
	sreg.Z = val == 0
	c.SregSet(sreg)
	c.PC++
	return nil
}

func (c *Chip) opOr(rd, rr int64) error {
	val := c.RAM[rd] | c.RAM[rr]
	c.RAM[rd] = val
	sreg := c.SregGet()
	n := bitOf(val, 7)
	sreg.N = n
	sreg.V = false
	sreg.S = n != sreg.V
	sreg.Z = val == 0
	c.SregSet(sreg)
	c.PC++
	return nil
}

func (c *Chip) opOri(rd, k int64) error {
	requireHighRegister(rd)
	val := c.RAM[rd] | uint8(k)
	c.RAM[rd] = val
	sreg := c.SregGet()
	n := bitOf(val, 7)
	sreg.N = n
	sreg.V = false
	sreg.S = n != sreg.V
	sreg.Z = val == 0
	c.SregSet(sreg)
	c.PC++
	return nil
}
