// Package chip implements a naive ATmega16A-class instruction-set
// simulator: architectural state (pc, ram, SREG, stack pointer) plus
// per-mnemonic execution semantics and edge-triggered external
// interrupt dispatch.
package chip

import (
	"fmt"

	"github.com/avrtools/megasim/pkg/asm"
)

// RAMSize is the size of the ATmega16A's address space as seen by LD/ST:
// 32 general-purpose registers, 64 I/O registers, 1024 bytes of SRAM.
const RAMSize = 1120

// IOOffset is added to an I/O register address to get its RAM address.
const IOOffset = 32

// sregAddr and spLow/spHigh are the RAM addresses of SREG and SP, chosen
// by the ATmega16A's fixed I/O map rather than computed at runtime.
const (
	sregAddr = 95
	spLowAddr  = 93
	spHighAddr = 94
)

// Chip is the simulator's entire machine state. Unlike a real part it
// keeps no peripheral logic beyond what's needed to dispatch external
// interrupts; timers are a deliberate no-op (see Chip.tickTimers).
type Chip struct {
	PC  int64
	RAM [RAMSize]uint8

	ClockHz uint64
	Program asm.CodeImage

	prevInt0, prevInt1, prevInt2 bool
}

// New returns a Chip with its stack pointer parked at RAMEND, matching
// the reset state a real part's hardware would leave SP in before any
// user code runs.
func New(clockHz uint64) *Chip {
	c := &Chip{ClockHz: clockHz}
	c.SetSP(0x045F)
	return c
}

// ApplyCode loads a decoded program image, replacing whatever program
// was previously installed. An address outside the 16-bit PC space is a
// recoverable load error (spec §7); the caller decides whether to
// abort.
func (c *Chip) ApplyCode(code asm.CodeImage) error {
	for addr := range code {
		if addr < 0 || addr > 0xFFFF {
			return fmt.Errorf("code address %d out of range [0, 0x10000)", addr)
		}
	}
	c.Program = code
	return nil
}

// ApplyData writes a data image's initial byte values into RAM. An
// address outside RAM is returned as a recoverable load error; bytes at
// other addresses of the image may already have been written by then.
func (c *Chip) ApplyData(data asm.DataImage) error {
	for addr, val := range data {
		if addr < 0 || addr >= RAMSize {
			return fmt.Errorf("data address %d out of range [0, %d)", addr, RAMSize)
		}
		c.RAM[addr] = uint8(val)
	}
	return nil
}

// RAMSetByte writes val to addr, returning an error instead of
// panicking so instruction semantics can surface an out-of-range access
// as a recoverable Step failure.
func (c *Chip) RAMSetByte(addr int64, val uint8) error {
	if addr < 0 || addr >= RAMSize {
		return fmt.Errorf("ram address %d out of range [0, %d)", addr, RAMSize)
	}
	c.RAM[addr] = val
	return nil
}

// RAMByte reads addr without bounds checking; callers that accept
// user-controlled addresses should validate first.
func (c *Chip) RAMByte(addr int64) uint8 {
	return c.RAM[addr]
}
