package chip

import "fmt"

// requireIOAddress64 validates the wider 6-bit I/O address space used by
// in/out, distinct from the 5-bit space cbi/sbi/sbis encode. Like
// requireHighRegister, a violation here is an assembly-time mistake the
// encoder could not have produced, so it panics.
func requireIOAddress64(a int64) {
	if a < 0 || a > 63 {
		panic(fmt.Sprintf("i/o address %d out of range [0, 63]", a))
	}
}

func (c *Chip) opIn(rd, a int64) error {
	requireIOAddress64(a)
	c.RAM[rd] = c.RAM[a+IOOffset]
	c.PC++
	return nil
}

func (c *Chip) opLdi(rd, k int64) error {
	requireHighRegister(rd)
	c.RAM[rd] = uint8(k)
	c.PC++
	return nil
}

func (c *Chip) opMov(rd, rr int64) error {
	c.RAM[rd] = c.RAM[rr]
	c.PC++
	return nil
}

func (c *Chip) opOut(a, rr int64) error {
	requireIOAddress64(a)
	c.RAM[a+IOOffset] = c.RAM[rr]
	c.PC++
	return nil
}

func (c *Chip) opPop(rd int64) error {
	c.AddSP(1)
	c.RAM[rd] = c.RAM[c.SP()]
	c.PC++
	return nil
}

func (c *Chip) opPush(rr int64) error {
	if err := c.RAMSetByte(int64(c.SP()), c.RAM[rr]); err != nil {
		return err
	}
	c.AddSP(-1)
	c.PC++
	return nil
}
