package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDumpProgramFormat(t *testing.T) {
	code := CodeImage{
		0: {Arity: Binary, Mnemonic: "ldi", A: 16, B: 5},
		1: {Arity: Nullary, Mnemonic: "nop"},
	}
	data := DataImage{0: 7}

	out := DumpProgram(code, data)

	assert.Contains(t, out, "--- DSEG ---\n")
	assert.Contains(t, out, "0: 07\n")
	assert.Contains(t, out, "--- CSEG ---\n")
	assert.Contains(t, out, "0: LDI 16 5\n")
	assert.Contains(t, out, "1: NOP\n")
}

func TestDumpProgramOrdersByAddress(t *testing.T) {
	code := CodeImage{
		5: {Arity: Nullary, Mnemonic: "ret"},
		0: {Arity: Nullary, Mnemonic: "nop"},
	}

	out := DumpProgram(code, nil)
	nopIdx := indexOf(out, "0: NOP")
	retIdx := indexOf(out, "5: RET")
	if nopIdx == -1 || retIdx == -1 || nopIdx > retIdx {
		t.Fatalf("expected NOP before RET in %q", out)
	}
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
