package chip

import (
	"fmt"

	"github.com/avrtools/megasim/pkg/asm"
)

// Step advances the simulator by one instruction: it samples external
// interrupt pins, runs the (currently stubbed) timer tick, then
// executes whatever Op is installed at PC. It reports false when PC has
// no installed Op, which callers treat as "program ended".
func (c *Chip) Step() (bool, error) {
	if err := c.tickInterrupts(); err != nil {
		return false, err
	}
	c.tickTimers()

	op, ok := c.Program[c.PC]
	if !ok {
		return false, nil
	}

	if err := c.dispatch(op); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Chip) dispatch(op asm.Op) error {
	switch op.Arity {
	case asm.Nullary:
		return c.dispatchNullary(op.Mnemonic)
	case asm.Unary:
		return c.dispatchUnary(op.Mnemonic, op.A)
	case asm.Binary:
		return c.dispatchBinary(op.Mnemonic, op.A, op.B)
	default:
		panic(fmt.Sprintf("unsupported instruction arity for %q", op.Mnemonic))
	}
}

func (c *Chip) dispatchNullary(mnemonic string) error {
	switch mnemonic {
	case "clc":
		return c.opClc()
	case "clt":
		return c.opClt()
	case "sec":
		return c.opSec()
	case "sei":
		return c.opSei()
	case "set":
		return c.opSet()
	case "ret":
		return c.opRet()
	case "reti":
		return c.opReti()
	default:
		panic(fmt.Sprintf("unknown nullary instruction %q", mnemonic))
	}
}

func (c *Chip) dispatchUnary(mnemonic string, a int64) error {
	switch mnemonic {
	case "clr":
		return c.opClr(a)
	case "com":
		return c.opCom(a)
	case "dec":
		return c.opDec(a)
	case "inc":
		return c.opInc(a)
	case "lsl":
		return c.opLsl(a)
	case "rol":
		return c.opRol(a)
	case "ror":
		return c.opRor(a)
	case "brcc":
		return c.opBrcc(a)
	case "breq":
		return c.opBreq(a)
	case "brne":
		return c.opBrne(a)
	case "brtc":
		return c.opBrtc(a)
	case "brts":
		return c.opBrts(a)
	case "rcall":
		return c.opRcall(a)
	case "rjmp":
		return c.opRjmp(a)
	case "pop":
		return c.opPop(a)
	case "push":
		return c.opPush(a)
	default:
		panic(fmt.Sprintf("unknown unary instruction %q", mnemonic))
	}
}

func (c *Chip) dispatchBinary(mnemonic string, a, b int64) error {
	switch mnemonic {
	case "and":
		return c.opAnd(a, b)
	case "andi":
		return c.opAndi(a, b)
	case "cpi":
		return c.opCpi(a, b)
	case "eor":
		return c.opEor(a, b)
	case "or":
		return c.opOr(a, b)
	case "ori":
		return c.opOri(a, b)
	case "cbi":
		return c.opCbi(a, b)
	case "sbi":
		return c.opSbi(a, b)
	case "sbrc":
		return c.opSbrc(a, b)
	case "sbrs":
		return c.opSbrs(a, b)
	case "cpse":
		return c.opCpse(a, b)
	case "sbis":
		return c.opSbis(a, b)
	case "in":
		return c.opIn(a, b)
	case "ldi":
		return c.opLdi(a, b)
	case "mov":
		return c.opMov(a, b)
	case "out":
		return c.opOut(a, b)
	default:
		panic(fmt.Sprintf("unknown binary instruction %q", mnemonic))
	}
}

// tickTimers is a deliberate no-op: the naive simulator models no
// timer/counter peripherals.
func (c *Chip) tickTimers() {}
