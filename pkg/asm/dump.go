package asm

import (
	"fmt"
	"sort"
	"strings"
)

// DumpProgram renders code and data in the same human-readable listing
// format the reference toolchain writes to its output file: a DSEG
// section of "addr: value" pairs followed by a CSEG section of
// "addr: MNEMONIC operand..." lines, both sorted by address.
func DumpProgram(code CodeImage, data DataImage) string {
	var b strings.Builder

	b.WriteString("--- DSEG ---\n")
	for _, addr := range sortedKeys(data) {
		fmt.Fprintf(&b, "%d: %02d\n", addr, data[addr])
	}

	b.WriteString("\n--- CSEG ---\n")
	for _, addr := range sortedOpKeys(code) {
		op := code[addr]
		fmt.Fprintf(&b, "%d: %s%s\n", addr, strings.ToUpper(op.Mnemonic), formatOperands(op))
	}

	return b.String()
}

func formatOperands(op Op) string {
	switch op.Arity {
	case Unary:
		return fmt.Sprintf(" %d", op.A)
	case Binary:
		return fmt.Sprintf(" %d %d", op.A, op.B)
	case Ternary:
		return fmt.Sprintf(" %d %d %d", op.A, op.B, op.C)
	default:
		return ""
	}
}

func sortedKeys(m DataImage) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedOpKeys(m CodeImage) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
