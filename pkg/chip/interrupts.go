package chip

// I/O register RAM addresses used by external interrupt sampling.
const (
	gicrAddr  = 91 // General Interrupt Control Register
	mcucrAddr = 85 // MCU Control Register
	pindAddr  = 48
	pinbAddr  = 54
)

// tickInterrupts samples INT0/INT1/INT2's configured edge condition and
// dispatches the highest-priority pending one. Edge state is tracked
// outside architectural RAM (Chip.prevIntN) since the hardware pin
// history isn't something a program can read back. Nothing is sampled
// while the global interrupt enable flag is clear.
func (c *Chip) tickInterrupts() error {
	if !c.SregGet().I {
		return nil
	}

	gicr := c.RAM[gicrAddr]
	mcucr := c.RAM[mcucrAddr]
	pind := c.RAM[pindAddr]
	pinb := c.RAM[pinbAddr]

	int0En := bitOf(gicr, 6)
	int1En := bitOf(gicr, 7)
	int2En := bitOf(gicr, 5)

	isc00 := bitOf(mcucr, 0)
	isc01 := bitOf(mcucr, 1)
	isc10 := bitOf(mcucr, 2)
	isc11 := bitOf(mcucr, 3)
	isc2 := bitOf(mcucr, 6)

	int0Pin := bitOf(pind, 2)
	int1Pin := bitOf(pind, 3)
	int2Pin := bitOf(pinb, 2)

	int0Fired := classifyEdge(isc01, isc00, c.prevInt0, int0Pin)
	int1Fired := classifyEdge(isc11, isc10, c.prevInt1, int1Pin)
	int2Fired := classifyEdgeSingle(isc2, c.prevInt2, int2Pin)

	c.prevInt0, c.prevInt1, c.prevInt2 = int0Pin, int1Pin, int2Pin

	switch {
	case int0En && int0Fired:
		return c.dispatchInterrupt(2)
	case int1En && int1Fired:
		return c.dispatchInterrupt(4)
	case int2En && int2Fired:
		return c.dispatchInterrupt(6)
	}
	return nil
}

// classifyEdge applies the ISCn1:ISCn0 sense-control encoding shared by
// INT0 and INT1: 00 low level, 01 any logical change, 10 falling edge,
// 11 rising edge.
func classifyEdge(iscHigh, iscLow, prev, cur bool) bool {
	switch {
	case !iscHigh && !iscLow:
		return !cur
	case !iscHigh && iscLow:
		return prev != cur
	case iscHigh && !iscLow:
		return prev && !cur
	default:
		return !prev && cur
	}
}

// classifyEdgeSingle applies INT2's single-bit sense control: ISC2=0
// falling edge, ISC2=1 rising edge.
func classifyEdgeSingle(isc2, prev, cur bool) bool {
	if isc2 {
		return !prev && cur
	}
	return prev && !cur
}

// dispatchInterrupt pushes the return PC and jumps to vector, clearing
// the global interrupt enable flag the way a real vector entry would.
func (c *Chip) dispatchInterrupt(vector int64) error {
	if err := c.pushByte(uint8(c.PC)); err != nil {
		return err
	}
	if err := c.pushByte(uint8(c.PC >> 8)); err != nil {
		return err
	}
	sreg := c.SregGet()
	sreg.I = false
	c.SregSet(sreg)
	c.PC = vector
	return nil
}
