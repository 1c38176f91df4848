// Package asm implements the megasim assembly dialect: a lexer-backed
// recursive-descent parser and a two-pass code generator that produces
// the decoded program image consumed by pkg/chip.
package asm

import "github.com/avrtools/megasim/pkg/token"

// Compile lexes, parses, and generates code for an assembly source
// string in one call, seeding the symbol table with the ATmega16A
// register and I/O constants. It panics on any malformed input —
// assembly failures are not recoverable at this layer (spec §7).
func Compile(source string) (CodeImage, DataImage) {
	toks := token.Lex(source)
	stmts := Parse(toks)
	sym := NewATmega16ASymbols()
	return Generate(stmts, sym)
}
